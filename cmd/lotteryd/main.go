package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/big"
	"math/rand"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"coinsino/config"
	"coinsino/core/events"
	"coinsino/core/types"
	"coinsino/native/lottery"
	"coinsino/observability/logging"
	"coinsino/observability/metrics"
)

// observer bridges engine events into structured logs and prometheus
// collectors.
type observer struct {
	log     *slog.Logger
	metrics *metrics.LotteryMetrics
}

func (o *observer) Emit(evt events.Event) {
	payload := evt.Event()
	args := make([]any, 0, len(payload.Attributes)*2)
	for key, value := range payload.Attributes {
		args = append(args, key, value)
	}
	o.log.Info(payload.Type, args...)

	switch evt.EventType() {
	case lottery.EventTypeRoundOpened:
		o.metrics.RoundOpened()
	case lottery.EventTypeRoundClosed:
		o.metrics.RoundClosed()
	case lottery.EventTypeFinalNumberDrawn:
		o.metrics.RoundDrawn()
	case lottery.EventTypeTicketsPurchased:
		if e, ok := evt.(lottery.TicketsPurchased); ok {
			o.metrics.TicketsSold(e.Count)
		}
	case lottery.EventTypeTicketsClaimed:
		if e, ok := evt.(lottery.TicketsClaimed); ok {
			payout, _ := new(big.Float).SetInt(e.Amount).Float64()
			o.metrics.ClaimSettled(payout)
		}
	}
}

func address(fill byte) [20]byte {
	var addr [20]byte
	for i := range addr {
		addr[i] = fill
	}
	return addr
}

func randomTickets(rng *rand.Rand, count int) []uint32 {
	numbers := make([]uint32, count)
	for i := range numbers {
		numbers[i] = uint32(rng.Intn(lottery.MaxTicketNumber-lottery.MinTicketNumber+1)) + lottery.MinTicketNumber
	}
	return numbers
}

func main() {
	configPath := flag.String("config", "lotteryd.toml", "path to the lotteryd configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.Setup("lotteryd", cfg.Environment)

	lotteryMetrics := metrics.Lottery()
	if err := lotteryMetrics.Register(prometheus.DefaultRegisterer); err != nil {
		logger.Error("register metrics", "err", err)
		os.Exit(1)
	}

	operator := address(0x01)
	treasury := address(0x02)
	injector := address(0x03)
	vault := address(0xF0)
	buyers := [][20]byte{address(0x11), address(0x12), address(0x13)}

	ledger := lottery.NewMemoryLedger()
	for _, addr := range append([][20]byte{injector}, buyers...) {
		if err := ledger.PutAccount(addr, &types.Account{Balance: big.NewInt(1_000_000)}); err != nil {
			logger.Error("fund account", "err", err)
			os.Exit(1)
		}
	}

	clock := int64(1_700_000_000)
	engine := lottery.NewEngine()
	engine.SetState(ledger)
	engine.SetVault(vault)
	engine.SetRoles(operator, treasury, injector)
	engine.SetEmitter(&observer{log: logger, metrics: lotteryMetrics})
	engine.SetNowFunc(func() int64 { return clock })

	price, _ := cfg.Price()
	round, err := engine.StartRound(operator, clock+cfg.RoundDuration, price, cfg.DiscountDivisor, cfg.Breakdown(), cfg.TreasuryFeeBps)
	if err != nil {
		logger.Error("start round", "err", err)
		os.Exit(1)
	}

	if err := engine.InjectFunds(injector, round.ID, big.NewInt(3000)); err != nil {
		logger.Error("inject funds", "err", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(clock))
	batchSizes := []int{20, 30, 31}
	for i, buyer := range buyers {
		numbers := randomTickets(rng, batchSizes[i])
		cost := lottery.BatchPrice(price, cfg.DiscountDivisor, len(numbers))
		if _, err := engine.BuyTickets(buyer, round.ID, numbers, cost); err != nil {
			logger.Error("buy tickets", "err", err)
			os.Exit(1)
		}
	}

	info, err := engine.RoundInfo(round.ID)
	if err != nil {
		logger.Error("round info", "err", err)
		os.Exit(1)
	}
	lotteryMetrics.SetRoundPool(round.ID, toFloat(info.TotalPool()))

	clock += cfg.RoundDuration + 1
	seed := []byte(cfg.DrawSeed)
	if err := engine.CloseRound(operator, round.ID, seed); err != nil {
		logger.Error("close round", "err", err)
		os.Exit(1)
	}
	drawn, err := engine.DrawFinalNumber(operator, round.ID, cfg.AutoInject, seed)
	if err != nil {
		logger.Error("draw final number", "err", err)
		os.Exit(1)
	}
	lotteryMetrics.SetRoundDust(round.ID, toFloat(lottery.RoundDust(drawn)))

	for _, buyer := range buyers {
		view, err := engine.UserTickets(buyer, round.ID, 0, 100)
		if err != nil {
			logger.Error("user tickets", "err", err)
			os.Exit(1)
		}
		ids := make([]uint64, 0, len(view.IDs))
		brackets := make([]int, 0, len(view.IDs))
		for _, id := range view.IDs {
			ids = append(ids, id)
			brackets = append(brackets, 0)
		}
		if len(ids) == 0 {
			continue
		}
		paid, err := engine.Claim(buyer, round.ID, ids, brackets)
		if err != nil {
			logger.Error("claim", "err", err)
			os.Exit(1)
		}
		logger.Info("claim settled",
			"buyer", fmt.Sprintf("%x", buyer[:4]),
			"tickets", len(ids),
			"paid", paid.String(),
		)
	}

	logger.Info("round complete",
		"roundId", drawn.ID,
		"finalNumber", drawn.FinalNumber,
		"vault", engine.EngineBalance().String(),
		"treasury", engine.BalanceOf(treasury).String(),
	)
}

func toFloat(v *big.Int) float64 {
	f, _ := new(big.Float).SetInt(v).Float64()
	return f
}
