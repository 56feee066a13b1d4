package lottery

import "math/big"

// Status represents the lifecycle states of a lottery round. Transitions are
// forward-only; Claimable is terminal.
type Status uint8

const (
	StatusPending Status = iota
	StatusOpen
	StatusClosed
	StatusClaimable
)

// Valid reports whether the status value is within the supported range.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusOpen, StatusClosed, StatusClaimable:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusOpen:
		return "open"
	case StatusClosed:
		return "closed"
	case StatusClaimable:
		return "claimable"
	default:
		return "unknown"
	}
}

// RolloverPolicy fixes where the pool of a zero-winner bracket goes at draw
// time.
type RolloverPolicy uint8

const (
	// RolloverToTreasury forwards orphaned bracket pools to the treasury
	// together with the fee cut. This is the default policy.
	RolloverToTreasury RolloverPolicy = iota
	// RolloverToNextRound accumulates orphaned bracket pools as a pending
	// injection absorbed by the next round opened.
	RolloverToNextRound
)

const (
	// Brackets is the number of prize tiers per round, tier k matching the
	// trailing k+1 digits of the final number.
	Brackets = 6
	// BpsDenominator is the fixed denominator for all basis-point math.
	BpsDenominator = 10_000
	// MinTicketNumber and MaxTicketNumber bound the six digit ticket space.
	MinTicketNumber = 100_000
	MaxTicketNumber = 999_999
)

// Round is the per-round ledger record. Rounds are retained indefinitely for
// audit once created; only the status, collection totals and draw results
// mutate, and only through the engine.
type Round struct {
	ID               uint64
	Status           Status
	StartTime        int64
	EndTime          int64
	PricePerTicket   *big.Int
	DiscountDivisor  uint32
	RewardsBreakdown [Brackets]uint32
	TreasuryFeeBps   uint32
	AmountCollected  *big.Int
	AmountInjected   *big.Int
	TicketsSold      uint64
	SeedCommitment   [32]byte
	FinalNumber      uint32
	FinalNumberSet   bool
	WinnerCounts     [Brackets]uint64
	BracketPools     [Brackets]*big.Int
	AmountRolledOver *big.Int
	Rollover         RolloverPolicy
}

// Clone returns a deep copy of the round so callers can safely mutate the
// copy without affecting the stored instance.
func (r *Round) Clone() *Round {
	if r == nil {
		return nil
	}
	clone := *r
	clone.PricePerTicket = copyBigInt(r.PricePerTicket)
	clone.AmountCollected = copyBigInt(r.AmountCollected)
	clone.AmountInjected = copyBigInt(r.AmountInjected)
	clone.AmountRolledOver = copyBigInt(r.AmountRolledOver)
	for k, pool := range r.BracketPools {
		if pool != nil {
			clone.BracketPools[k] = new(big.Int).Set(pool)
		}
	}
	return &clone
}

// TotalPool returns collected plus injected funds for the round.
func (r *Round) TotalPool() *big.Int {
	total := copyBigInt(r.AmountCollected)
	if r.AmountInjected != nil {
		total.Add(total, r.AmountInjected)
	}
	return total
}

// Ticket is immutable after purchase except for the claimed flag, which is
// set exactly once and never reverts.
type Ticket struct {
	ID      uint64
	RoundID uint64
	Owner   [20]byte
	Number  uint32
	Claimed bool
}

// Clone returns a copy of the ticket.
func (t *Ticket) Clone() *Ticket {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func copyBigInt(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(v)
}
