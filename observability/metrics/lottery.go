package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// LotteryMetrics aggregates the collectors exposed by the lottery engine.
type LotteryMetrics struct {
	roundsOpened  prometheus.Counter
	roundsClosed  prometheus.Counter
	roundsDrawn   prometheus.Counter
	ticketsSold   prometheus.Counter
	claimsSettled prometheus.Counter
	payoutTotal   prometheus.Counter
	roundPool     *prometheus.GaugeVec
	roundDust     *prometheus.GaugeVec
}

var (
	lotteryOnce     sync.Once
	lotteryRegistry *LotteryMetrics
)

// Lottery returns the process-wide lottery metric set.
func Lottery() *LotteryMetrics {
	lotteryOnce.Do(func() {
		lotteryRegistry = &LotteryMetrics{
			roundsOpened: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "lottery_rounds_opened_total",
				Help: "Count of rounds opened for ticket sales.",
			}),
			roundsClosed: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "lottery_rounds_closed_total",
				Help: "Count of rounds whose sales window was frozen.",
			}),
			roundsDrawn: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "lottery_rounds_drawn_total",
				Help: "Count of rounds with a drawn final number.",
			}),
			ticketsSold: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "lottery_tickets_sold_total",
				Help: "Number of tickets issued across all rounds.",
			}),
			claimsSettled: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "lottery_claims_settled_total",
				Help: "Count of settled claim batches.",
			}),
			payoutTotal: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "lottery_payout_units_total",
				Help: "Total native units paid out to claimants.",
			}),
			roundPool: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Name: "lottery_round_pool",
				Help: "Collected plus injected funds per round.",
			}, []string{"round"}),
			roundDust: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Name: "lottery_round_dust",
				Help: "Truncation remainder retained in the vault per round.",
			}, []string{"round"}),
		}
	})
	return lotteryRegistry
}

// Register attaches the collectors to the supplied registry.
func (m *LotteryMetrics) Register(reg prometheus.Registerer) error {
	if m == nil || reg == nil {
		return nil
	}
	collectors := []prometheus.Collector{
		m.roundsOpened, m.roundsClosed, m.roundsDrawn,
		m.ticketsSold, m.claimsSettled, m.payoutTotal,
		m.roundPool, m.roundDust,
	}
	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// RoundOpened records a round entering the open state.
func (m *LotteryMetrics) RoundOpened() {
	if m != nil {
		m.roundsOpened.Inc()
	}
}

// RoundClosed records a frozen sales window.
func (m *LotteryMetrics) RoundClosed() {
	if m != nil {
		m.roundsClosed.Inc()
	}
}

// RoundDrawn records a completed draw.
func (m *LotteryMetrics) RoundDrawn() {
	if m != nil {
		m.roundsDrawn.Inc()
	}
}

// TicketsSold adds a purchase batch to the issuance counter.
func (m *LotteryMetrics) TicketsSold(count int) {
	if m != nil && count > 0 {
		m.ticketsSold.Add(float64(count))
	}
}

// ClaimSettled records one settled batch and its payout.
func (m *LotteryMetrics) ClaimSettled(payoutUnits float64) {
	if m == nil {
		return
	}
	m.claimsSettled.Inc()
	if payoutUnits > 0 {
		m.payoutTotal.Add(payoutUnits)
	}
}

// SetRoundPool publishes the current pool size for a round.
func (m *LotteryMetrics) SetRoundPool(roundID uint64, units float64) {
	if m != nil {
		m.roundPool.WithLabelValues(fmt.Sprintf("%d", roundID)).Set(units)
	}
}

// SetRoundDust publishes the retained truncation remainder for a round.
func (m *LotteryMetrics) SetRoundDust(roundID uint64, units float64) {
	if m != nil {
		m.roundDust.WithLabelValues(fmt.Sprintf("%d", roundID)).Set(units)
	}
}
