package lottery

import (
	"fmt"
	"math/big"
	"sync"

	"coinsino/core/types"
)

// engineState is the storage surface the engine runs against. Implementations
// must return clones so engine-side mutation never leaks into the store
// before the corresponding Put.
type engineState interface {
	CurrentRoundID() uint64
	NextRoundID() uint64
	RoundGet(id uint64) (*Round, bool)
	RoundPut(*Round) error
	TicketAppend(*Ticket) (uint64, error)
	TicketGet(id uint64) (*Ticket, bool)
	TicketPut(*Ticket) error
	RoundTicketNumbers(roundID uint64) []uint32
	OwnerTicketIDs(owner [20]byte, roundID uint64) []uint64
	PendingInjection() *big.Int
	SetPendingInjection(*big.Int) error
	GetAccount(addr [20]byte) (*types.Account, error)
	PutAccount(addr [20]byte, account *types.Account) error
}

type ownerKey struct {
	owner   [20]byte
	roundID uint64
}

// MemoryLedger is the in-process ledger: a registry of rounds keyed by id, a
// global append-only ticket arena, and a purchase-ordered index per
// (owner, round). Rounds and tickets are never deleted. One mutex serializes
// every access, giving the engine its single global ordering.
type MemoryLedger struct {
	mu           sync.Mutex
	rounds       map[uint64]*Round
	tickets      []*Ticket
	ticketsByRnd map[uint64][]uint64
	ownerIndex   map[ownerKey][]uint64
	accounts     map[[20]byte]*types.Account
	pending      *big.Int
	lastRoundID  uint64
}

// NewMemoryLedger returns an empty ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		rounds:       make(map[uint64]*Round),
		ticketsByRnd: make(map[uint64][]uint64),
		ownerIndex:   make(map[ownerKey][]uint64),
		accounts:     make(map[[20]byte]*types.Account),
		pending:      big.NewInt(0),
	}
}

// CurrentRoundID returns the id of the most recently created round, zero when
// none exists yet.
func (l *MemoryLedger) CurrentRoundID() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastRoundID
}

// NextRoundID allocates the next sequential round id.
func (l *MemoryLedger) NextRoundID() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastRoundID++
	return l.lastRoundID
}

// RoundGet returns a clone of the stored round.
func (l *MemoryLedger) RoundGet(id uint64) (*Round, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	round, ok := l.rounds[id]
	if !ok {
		return nil, false
	}
	return round.Clone(), true
}

// RoundPut stores a clone of the round.
func (l *MemoryLedger) RoundPut(r *Round) error {
	if r == nil {
		return fmt.Errorf("lottery: nil round")
	}
	if !r.Status.Valid() {
		return fmt.Errorf("lottery: invalid round status %d", r.Status)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rounds[r.ID] = r.Clone()
	return nil
}

// TicketAppend assigns the next global ticket id, stores the ticket and
// extends both the round arena and the owner index.
func (l *MemoryLedger) TicketAppend(t *Ticket) (uint64, error) {
	if t == nil {
		return 0, fmt.Errorf("lottery: nil ticket")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	clone := t.Clone()
	clone.ID = uint64(len(l.tickets))
	l.tickets = append(l.tickets, clone)
	l.ticketsByRnd[clone.RoundID] = append(l.ticketsByRnd[clone.RoundID], clone.ID)
	key := ownerKey{owner: clone.Owner, roundID: clone.RoundID}
	l.ownerIndex[key] = append(l.ownerIndex[key], clone.ID)
	return clone.ID, nil
}

// TicketGet returns a clone of the stored ticket.
func (l *MemoryLedger) TicketGet(id uint64) (*Ticket, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if id >= uint64(len(l.tickets)) {
		return nil, false
	}
	return l.tickets[id].Clone(), true
}

// TicketPut overwrites an existing ticket; only the claimed flag ever changes
// in practice.
func (l *MemoryLedger) TicketPut(t *Ticket) error {
	if t == nil {
		return fmt.Errorf("lottery: nil ticket")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if t.ID >= uint64(len(l.tickets)) {
		return ErrTicketNotFound
	}
	l.tickets[t.ID] = t.Clone()
	return nil
}

// RoundTicketNumbers returns every ticket number sold in the round, in
// purchase order. The draw scan is the only caller walking a full round.
func (l *MemoryLedger) RoundTicketNumbers(roundID uint64) []uint32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := l.ticketsByRnd[roundID]
	numbers := make([]uint32, len(ids))
	for i, id := range ids {
		numbers[i] = l.tickets[id].Number
	}
	return numbers
}

// OwnerTicketIDs returns the owner's ticket ids for the round in purchase
// order.
func (l *MemoryLedger) OwnerTicketIDs(owner [20]byte, roundID uint64) []uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := l.ownerIndex[ownerKey{owner: owner, roundID: roundID}]
	out := make([]uint64, len(ids))
	copy(out, ids)
	return out
}

// PendingInjection returns the rollover balance waiting for the next round.
func (l *MemoryLedger) PendingInjection() *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return new(big.Int).Set(l.pending)
}

// SetPendingInjection replaces the rollover balance.
func (l *MemoryLedger) SetPendingInjection(v *big.Int) error {
	if v == nil || v.Sign() < 0 {
		return fmt.Errorf("lottery: pending injection must be non-negative")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending = new(big.Int).Set(v)
	return nil
}

// GetAccount returns a clone of the account, zero-valued when unknown.
func (l *MemoryLedger) GetAccount(addr [20]byte) (*types.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.accounts[addr].Clone(), nil
}

// PutAccount stores a clone of the account.
func (l *MemoryLedger) PutAccount(addr [20]byte, account *types.Account) error {
	if account == nil {
		return fmt.Errorf("lottery: nil account")
	}
	if account.Balance != nil && account.Balance.Sign() < 0 {
		return fmt.Errorf("lottery: negative account balance")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.accounts[addr] = account.Clone()
	return nil
}
