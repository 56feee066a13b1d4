package lottery

import "math/big"

// Read-only query surface. Views never mutate state; they take the engine
// lock only to observe a consistent snapshot of an operation's effects.

// UserTicketsView is one pagination window over an owner's purchase-ordered
// tickets in a round.
type UserTicketsView struct {
	IDs     []uint64
	Numbers []uint32
	Claimed []bool
	Total   uint64
}

// TicketStatusView reports a ticket's number, claim state and, once the round
// is drawn, the highest bracket it satisfies (-1 when nothing matches or the
// round is undrawn).
type TicketStatusView struct {
	ID             uint64
	Number         uint32
	Claimed        bool
	Drawn          bool
	HighestBracket int
}

// MaxRewardsView lists, per ticket in the window, the amount a claim
// declaring every satisfied bracket would transfer right now.
type MaxRewardsView struct {
	IDs     []uint64
	Rewards []*big.Int
}

// RoundInfo returns a copy of the round record.
func (e *Engine) RoundInfo(roundID uint64) (*Round, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadRound(roundID)
}

// CurrentRoundID returns the most recently started round id, zero before the
// first round.
func (e *Engine) CurrentRoundID() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == nil {
		return 0
	}
	return e.state.CurrentRoundID()
}

// UserTickets returns the [cursor, cursor+length) window of the owner's
// tickets for the round. Windows beyond the owned count clamp to what exists;
// they are never an error.
func (e *Engine) UserTickets(owner [20]byte, roundID uint64, cursor, length int) (*UserTicketsView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == nil {
		return nil, ErrNilState
	}
	ids := e.state.OwnerTicketIDs(owner, roundID)
	view := &UserTicketsView{Total: uint64(len(ids))}
	for _, id := range clampWindow(ids, cursor, length) {
		ticket, ok := e.state.TicketGet(id)
		if !ok {
			return nil, ErrTicketNotFound
		}
		view.IDs = append(view.IDs, ticket.ID)
		view.Numbers = append(view.Numbers, ticket.Number)
		view.Claimed = append(view.Claimed, ticket.Claimed)
	}
	return view, nil
}

// UserTicketCount returns how many tickets the owner bought in the round,
// independent of pagination.
func (e *Engine) UserTicketCount(owner [20]byte, roundID uint64) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == nil {
		return 0
	}
	return uint64(len(e.state.OwnerTicketIDs(owner, roundID)))
}

// TicketBracketStatus resolves an arbitrary list of ticket ids to their
// numbers, claim state and highest satisfied bracket against their round's
// final number.
func (e *Engine) TicketBracketStatus(ticketIDs []uint64) ([]TicketStatusView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == nil {
		return nil, ErrNilState
	}
	views := make([]TicketStatusView, 0, len(ticketIDs))
	for _, id := range ticketIDs {
		ticket, ok := e.state.TicketGet(id)
		if !ok {
			return nil, ErrTicketNotFound
		}
		round, ok := e.state.RoundGet(ticket.RoundID)
		if !ok {
			return nil, ErrRoundNotFound
		}
		view := TicketStatusView{
			ID:             ticket.ID,
			Number:         ticket.Number,
			Claimed:        ticket.Claimed,
			Drawn:          round.FinalNumberSet,
			HighestBracket: -1,
		}
		if round.FinalNumberSet {
			view.HighestBracket = HighestBracket(round.FinalNumber, ticket.Number)
		}
		views = append(views, view)
	}
	return views, nil
}

// MaxRewardForUser returns, for the owner's tickets in the window, the reward
// each would yield if claimed now: zero before the draw and for tickets
// already claimed. Fails when the owner holds no tickets in the round.
func (e *Engine) MaxRewardForUser(owner [20]byte, roundID uint64, cursor, length int) (*MaxRewardsView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	round, err := e.loadRound(roundID)
	if err != nil {
		return nil, err
	}
	ids := e.state.OwnerTicketIDs(owner, roundID)
	if len(ids) == 0 {
		return nil, ErrNoTicketsForOwner
	}
	view := &MaxRewardsView{}
	for _, id := range clampWindow(ids, cursor, length) {
		ticket, ok := e.state.TicketGet(id)
		if !ok {
			return nil, ErrTicketNotFound
		}
		reward := big.NewInt(0)
		if !ticket.Claimed {
			reward = MaxTicketReward(round, ticket.Number)
		}
		view.IDs = append(view.IDs, ticket.ID)
		view.Rewards = append(view.Rewards, reward)
	}
	return view, nil
}

// EngineBalance returns the funds currently held by the engine vault.
func (e *Engine) EngineBalance() *big.Int {
	return e.BalanceOf(e.vault)
}

// BalanceOf returns the ledger balance of an arbitrary address.
func (e *Engine) BalanceOf(addr [20]byte) *big.Int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == nil {
		return big.NewInt(0)
	}
	account, err := e.state.GetAccount(addr)
	if err != nil || account == nil || account.Balance == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(account.Balance)
}

func clampWindow(ids []uint64, cursor, length int) []uint64 {
	if cursor < 0 || length <= 0 || cursor >= len(ids) {
		return nil
	}
	end := cursor + length
	if end > len(ids) {
		end = len(ids)
	}
	return ids[cursor:end]
}
