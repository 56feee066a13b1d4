package lottery

import (
	"fmt"
	"math/big"
	"sync"
	"time"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"coinsino/core/events"
)

// Engine owns the round lifecycle, ticket issuance and claim settlement. All
// funds sit in ledger accounts; the engine moves them between buyers, its own
// vault, the treasury and claimants. Mutating operations are serialized by an
// internal mutex and apply all-or-nothing.
type Engine struct {
	mu       sync.Mutex
	state    engineState
	emitter  events.Emitter
	oracle   Oracle
	params   Params
	nowFn    func() int64
	vault    [20]byte
	operator [20]byte
	treasury [20]byte
	injector [20]byte
}

// NewEngine creates a lottery engine with default params, a keccak oracle and
// a no-op emitter. Callers wire state, roles and overrides before use.
func NewEngine() *Engine {
	return &Engine{
		emitter: events.NoopEmitter{},
		oracle:  KeccakOracle{},
		params:  DefaultParams(),
		nowFn:   func() int64 { return time.Now().Unix() },
	}
}

// SetState configures the state backend used by the engine.
func (e *Engine) SetState(state engineState) { e.state = state }

// SetVault configures the address holding pooled funds.
func (e *Engine) SetVault(addr [20]byte) { e.vault = addr }

// SetRoles configures the operator, treasury and injector addresses in one
// call, mirroring the deployment flow of the reference system.
func (e *Engine) SetRoles(operator, treasury, injector [20]byte) {
	e.operator = operator
	e.treasury = treasury
	e.injector = injector
}

// SetParams overrides the engine limits.
func (e *Engine) SetParams(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	e.params = p
	return nil
}

// SetOracle overrides the randomness oracle. Passing nil restores the keccak
// default.
func (e *Engine) SetOracle(o Oracle) {
	if o == nil {
		e.oracle = KeccakOracle{}
		return
	}
	e.oracle = o
}

// SetEmitter configures the event emitter. Passing nil resets it to a no-op
// implementation.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// SetNowFunc overrides the time source used by the engine. Primarily intended
// for tests to provide deterministic timestamps.
func (e *Engine) SetNowFunc(now func() int64) {
	if now == nil {
		e.nowFn = func() int64 { return time.Now().Unix() }
		return
	}
	e.nowFn = now
}

func (e *Engine) emit(evt events.Event) {
	if e == nil || e.emitter == nil || evt == nil {
		return
	}
	e.emitter.Emit(evt)
}

func (e *Engine) now() int64 {
	if e == nil || e.nowFn == nil {
		return time.Now().Unix()
	}
	return e.nowFn()
}

func (e *Engine) loadRound(id uint64) (*Round, error) {
	if e == nil || e.state == nil {
		return nil, ErrNilState
	}
	round, ok := e.state.RoundGet(id)
	if !ok {
		return nil, ErrRoundNotFound
	}
	return round, nil
}

// transfer moves amount between ledger accounts, refusing negative amounts
// and overdrafts. Zero amounts are a no-op.
func (e *Engine) transfer(from, to [20]byte, amount *big.Int) error {
	if e == nil || e.state == nil {
		return ErrNilState
	}
	if amount == nil || amount.Sign() == 0 {
		return nil
	}
	if amount.Sign() < 0 {
		return fmt.Errorf("lottery: negative transfer amount")
	}
	fromAcc, err := e.state.GetAccount(from)
	if err != nil {
		return err
	}
	if fromAcc.Balance.Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}
	toAcc, err := e.state.GetAccount(to)
	if err != nil {
		return err
	}
	fromAcc.Balance = new(big.Int).Sub(fromAcc.Balance, amount)
	fromAcc.Nonce++
	toAcc.Balance = new(big.Int).Add(toAcc.Balance, amount)
	if err := e.state.PutAccount(from, fromAcc); err != nil {
		return err
	}
	return e.state.PutAccount(to, toAcc)
}

// StartRound opens a new round selling tickets immediately. The previous
// round, if any, must already be claimable. Any pending rollover from an
// auto-injecting draw is folded into the new round's injected amount.
func (e *Engine) StartRound(caller [20]byte, endTime int64, pricePerTicket *big.Int, discountDivisor uint32, breakdown [Brackets]uint32, treasuryFeeBps uint32) (*Round, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == nil {
		return nil, ErrNilState
	}
	if caller != e.operator {
		return nil, ErrNotOperator
	}
	now := e.now()
	if endTime <= now {
		return nil, fmt.Errorf("%w: end time not after start", ErrInvalidConfiguration)
	}
	if pricePerTicket == nil ||
		pricePerTicket.Cmp(e.params.MinPricePerTicket) < 0 ||
		pricePerTicket.Cmp(e.params.MaxPricePerTicket) > 0 {
		return nil, fmt.Errorf("%w: ticket price outside limits", ErrInvalidConfiguration)
	}
	if discountDivisor < e.params.MinDiscountDivisor {
		return nil, fmt.Errorf("%w: discount divisor below minimum", ErrInvalidConfiguration)
	}
	if treasuryFeeBps > e.params.MaxTreasuryFeeBps {
		return nil, fmt.Errorf("%w: treasury fee above maximum", ErrInvalidConfiguration)
	}
	var sum uint64
	for _, bps := range breakdown {
		if bps > BpsDenominator {
			return nil, fmt.Errorf("%w: breakdown entry above denominator", ErrInvalidConfiguration)
		}
		sum += uint64(bps)
	}
	if sum != BpsDenominator {
		return nil, fmt.Errorf("%w: breakdown must sum to %d", ErrInvalidConfiguration, BpsDenominator)
	}
	if current := e.state.CurrentRoundID(); current != 0 {
		prev, ok := e.state.RoundGet(current)
		if !ok {
			return nil, ErrRoundNotFound
		}
		if prev.Status != StatusClaimable {
			return nil, ErrPreviousRoundOpen
		}
	}
	injected := e.state.PendingInjection()
	round := &Round{
		ID:               e.state.NextRoundID(),
		Status:           StatusOpen,
		StartTime:        now,
		EndTime:          endTime,
		PricePerTicket:   copyBigInt(pricePerTicket),
		DiscountDivisor:  discountDivisor,
		RewardsBreakdown: breakdown,
		TreasuryFeeBps:   treasuryFeeBps,
		AmountCollected:  big.NewInt(0),
		AmountInjected:   injected,
		AmountRolledOver: big.NewInt(0),
	}
	if err := e.state.RoundPut(round); err != nil {
		return nil, err
	}
	if err := e.state.SetPendingInjection(big.NewInt(0)); err != nil {
		return nil, err
	}
	e.emit(RoundOpened{RoundID: round.ID, EndTime: endTime, PricePerTicket: round.PricePerTicket, Injected: injected})
	return round.Clone(), nil
}

// InjectFunds tops up the round's pool. It may be called repeatedly by the
// injector or the operator on any round that has not been drawn yet and never
// issues tickets.
func (e *Engine) InjectFunds(caller [20]byte, roundID uint64, amount *big.Int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if caller != e.injector && caller != e.operator {
		return ErrNotInjector
	}
	if amount == nil || amount.Sign() <= 0 {
		return fmt.Errorf("lottery: injection amount must be positive")
	}
	round, err := e.loadRound(roundID)
	if err != nil {
		return err
	}
	if round.Status == StatusClaimable {
		return ErrRoundAlreadyDrawn
	}
	if err := e.transfer(caller, e.vault, amount); err != nil {
		return err
	}
	round.AmountInjected = new(big.Int).Add(round.AmountInjected, amount)
	if err := e.state.RoundPut(round); err != nil {
		return err
	}
	e.emit(FundsInjected{RoundID: roundID, From: caller, Amount: copyBigInt(amount)})
	return nil
}

// BuyTickets purchases one ticket per supplied number. The payment must equal
// the discounted batch price exactly; the charge is added to the round's
// collected amount and every ticket lands in the buyer's index in purchase
// order.
func (e *Engine) BuyTickets(buyer [20]byte, roundID uint64, numbers []uint32, payment *big.Int) ([]uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	round, err := e.loadRound(roundID)
	if err != nil {
		return nil, err
	}
	if round.Status != StatusOpen || e.now() >= round.EndTime {
		return nil, ErrRoundNotOpen
	}
	if len(numbers) == 0 {
		return nil, ErrEmptyPurchase
	}
	if len(numbers) > e.params.MaxTicketsPerBatch {
		return nil, ErrTooManyTickets
	}
	for _, n := range numbers {
		if !ValidTicketNumber(n) {
			return nil, fmt.Errorf("%w: %d", ErrInvalidTicketNumber, n)
		}
	}
	cost := BatchPrice(round.PricePerTicket, round.DiscountDivisor, len(numbers))
	if payment == nil || payment.Cmp(cost) != 0 {
		return nil, ErrInsufficientPayment
	}
	if err := e.transfer(buyer, e.vault, cost); err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(numbers))
	for _, n := range numbers {
		id, err := e.state.TicketAppend(&Ticket{RoundID: roundID, Owner: buyer, Number: n})
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	round.AmountCollected = new(big.Int).Add(round.AmountCollected, cost)
	round.TicketsSold += uint64(len(numbers))
	if err := e.state.RoundPut(round); err != nil {
		return nil, err
	}
	e.emit(TicketsPurchased{RoundID: roundID, Buyer: buyer, Count: len(numbers), Cost: cost})
	return ids, nil
}

// CloseRound freezes ticket sales once the round's end time has passed and
// commits to the draw seed: the later draw must present the preimage of the
// commitment recorded here.
func (e *Engine) CloseRound(caller [20]byte, roundID uint64, seed []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if caller != e.operator {
		return ErrNotOperator
	}
	if len(seed) == 0 {
		return ErrEmptySeed
	}
	round, err := e.loadRound(roundID)
	if err != nil {
		return err
	}
	if round.Status != StatusOpen {
		return ErrRoundNotOpen
	}
	if e.now() < round.EndTime {
		return ErrRoundNotOver
	}
	round.Status = StatusClosed
	copy(round.SeedCommitment[:], ethcrypto.Keccak256(seed))
	if err := e.state.RoundPut(round); err != nil {
		return err
	}
	e.emit(RoundClosed{RoundID: roundID, AmountCollected: round.AmountCollected, TicketsSold: round.TicketsSold})
	return nil
}

// DrawFinalNumber consumes the oracle, scans the round's tickets once to fill
// the inclusive per-bracket winner counts, routes the treasury cut plus any
// zero-winner pools, and marks the round claimable. With autoInject set,
// orphaned pools wait as a pending injection for the next round instead of
// going to the treasury.
func (e *Engine) DrawFinalNumber(caller [20]byte, roundID uint64, autoInject bool, seed []byte) (*Round, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if caller != e.operator {
		return nil, ErrNotOperator
	}
	if e.oracle == nil {
		return nil, ErrNilOracle
	}
	round, err := e.loadRound(roundID)
	if err != nil {
		return nil, err
	}
	if round.Status != StatusClosed {
		return nil, ErrRoundNotClosed
	}
	var commitment [32]byte
	copy(commitment[:], ethcrypto.Keccak256(seed))
	if commitment != round.SeedCommitment {
		return nil, ErrSeedMismatch
	}
	final, err := e.oracle.Draw(roundID, seed)
	if err != nil {
		return nil, err
	}
	if !ValidTicketNumber(final) {
		return nil, fmt.Errorf("%w: oracle produced %d", ErrInvalidTicketNumber, final)
	}

	counts := CountWinners(final, e.state.RoundTicketNumbers(roundID))
	distributable := DistributablePool(round.AmountCollected, round.AmountInjected, round.TreasuryFeeBps)
	pools := BracketPools(distributable, round.RewardsBreakdown)

	treasuryAmount := new(big.Int).Sub(round.TotalPool(), distributable)
	rolledOver := big.NewInt(0)
	policy := RolloverToTreasury
	if autoInject {
		policy = RolloverToNextRound
	}
	for k := range pools {
		if counts[k] != 0 {
			continue
		}
		rolledOver.Add(rolledOver, pools[k])
		if policy == RolloverToTreasury {
			treasuryAmount.Add(treasuryAmount, pools[k])
		}
		pools[k] = big.NewInt(0)
	}
	if err := e.transfer(e.vault, e.treasury, treasuryAmount); err != nil {
		return nil, err
	}
	if policy == RolloverToNextRound && rolledOver.Sign() > 0 {
		pending := e.state.PendingInjection()
		if err := e.state.SetPendingInjection(pending.Add(pending, rolledOver)); err != nil {
			return nil, err
		}
	}

	round.Status = StatusClaimable
	round.FinalNumber = final
	round.FinalNumberSet = true
	round.WinnerCounts = counts
	round.BracketPools = pools
	round.AmountRolledOver = rolledOver
	round.Rollover = policy
	if err := e.state.RoundPut(round); err != nil {
		return nil, err
	}
	e.emit(FinalNumberDrawn{
		RoundID:        roundID,
		FinalNumber:    final,
		Distributable:  distributable,
		TreasuryAmount: treasuryAmount,
		RolledOver:     rolledOver,
	})
	return round.Clone(), nil
}

// Claim settles a batch of (ticket id, bracket) pairs for the caller. Every
// referenced ticket is marked claimed before the single outward transfer; if
// the transfer fails the claimed flags are restored and the batch fails as a
// whole. A ticket may appear several times with distinct brackets to collect
// from more than one tier; declared brackets the ticket does not satisfy pay
// zero without failing the claim, and zero-reward tickets are still marked
// claimed so they cannot be resubmitted.
func (e *Engine) Claim(caller [20]byte, roundID uint64, ticketIDs []uint64, brackets []int) (*big.Int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	round, err := e.loadRound(roundID)
	if err != nil {
		return nil, err
	}
	if round.Status != StatusClaimable {
		return nil, ErrRoundNotClaimable
	}
	if len(ticketIDs) == 0 {
		return nil, ErrEmptyClaim
	}
	if len(ticketIDs) != len(brackets) {
		return nil, ErrClaimLengthMismatch
	}

	type pair struct {
		ticketID uint64
		bracket  int
	}
	seen := make(map[pair]struct{}, len(ticketIDs))
	claiming := make(map[uint64]*Ticket)
	total := big.NewInt(0)
	for i, id := range ticketIDs {
		p := pair{ticketID: id, bracket: brackets[i]}
		if _, dup := seen[p]; dup {
			return nil, ErrTicketAlreadyClaimed
		}
		seen[p] = struct{}{}
		ticket, ok := claiming[id]
		if !ok {
			stored, found := e.state.TicketGet(id)
			if !found {
				return nil, ErrTicketNotFound
			}
			if stored.Owner != caller {
				return nil, ErrNotTicketOwner
			}
			if stored.RoundID != roundID {
				return nil, ErrWrongRound
			}
			if stored.Claimed {
				return nil, ErrTicketAlreadyClaimed
			}
			claiming[id] = stored
			ticket = stored
		}
		total.Add(total, TicketReward(round, ticket.Number, brackets[i]))
	}

	marked := make([]*Ticket, 0, len(claiming))
	for _, ticket := range claiming {
		ticket.Claimed = true
		if err := e.state.TicketPut(ticket); err != nil {
			return nil, err
		}
		marked = append(marked, ticket)
	}
	if err := e.transfer(e.vault, caller, total); err != nil {
		for _, ticket := range marked {
			ticket.Claimed = false
			if putErr := e.state.TicketPut(ticket); putErr != nil {
				return nil, fmt.Errorf("lottery: claim rollback failed: %w", putErr)
			}
		}
		return nil, err
	}
	e.emit(TicketsClaimed{RoundID: roundID, Claimer: caller, Count: len(claiming), Amount: copyBigInt(total)})
	return total, nil
}
