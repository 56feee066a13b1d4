package lottery

import (
	"encoding/hex"
	"math/big"
	"strconv"

	"coinsino/core/types"
)

const (
	EventTypeRoundOpened      = "lottery.round_opened"
	EventTypeFundsInjected    = "lottery.funds_injected"
	EventTypeTicketsPurchased = "lottery.tickets_purchased"
	EventTypeRoundClosed      = "lottery.round_closed"
	EventTypeFinalNumberDrawn = "lottery.final_number_drawn"
	EventTypeTicketsClaimed   = "lottery.tickets_claimed"
)

// RoundOpened is emitted when a new round starts selling tickets.
type RoundOpened struct {
	RoundID        uint64
	EndTime        int64
	PricePerTicket *big.Int
	Injected       *big.Int
}

func (RoundOpened) EventType() string { return EventTypeRoundOpened }

func (e RoundOpened) Event() *types.Event {
	return &types.Event{
		Type: EventTypeRoundOpened,
		Attributes: map[string]string{
			"roundId":  formatUint(e.RoundID),
			"endTime":  strconv.FormatInt(e.EndTime, 10),
			"price":    formatAmount(e.PricePerTicket),
			"injected": formatAmount(e.Injected),
		},
	}
}

// FundsInjected is emitted for every external pool top-up.
type FundsInjected struct {
	RoundID uint64
	From    [20]byte
	Amount  *big.Int
}

func (FundsInjected) EventType() string { return EventTypeFundsInjected }

func (e FundsInjected) Event() *types.Event {
	return &types.Event{
		Type: EventTypeFundsInjected,
		Attributes: map[string]string{
			"roundId": formatUint(e.RoundID),
			"from":    hex.EncodeToString(e.From[:]),
			"amount":  formatAmount(e.Amount),
		},
	}
}

// TicketsPurchased is emitted once per buy batch.
type TicketsPurchased struct {
	RoundID uint64
	Buyer   [20]byte
	Count   int
	Cost    *big.Int
}

func (TicketsPurchased) EventType() string { return EventTypeTicketsPurchased }

func (e TicketsPurchased) Event() *types.Event {
	return &types.Event{
		Type: EventTypeTicketsPurchased,
		Attributes: map[string]string{
			"roundId": formatUint(e.RoundID),
			"buyer":   hex.EncodeToString(e.Buyer[:]),
			"count":   strconv.Itoa(e.Count),
			"cost":    formatAmount(e.Cost),
		},
	}
}

// RoundClosed is emitted when ticket sales freeze.
type RoundClosed struct {
	RoundID         uint64
	AmountCollected *big.Int
	TicketsSold     uint64
}

func (RoundClosed) EventType() string { return EventTypeRoundClosed }

func (e RoundClosed) Event() *types.Event {
	return &types.Event{
		Type: EventTypeRoundClosed,
		Attributes: map[string]string{
			"roundId":   formatUint(e.RoundID),
			"collected": formatAmount(e.AmountCollected),
			"tickets":   formatUint(e.TicketsSold),
		},
	}
}

// FinalNumberDrawn is emitted when a round becomes claimable.
type FinalNumberDrawn struct {
	RoundID        uint64
	FinalNumber    uint32
	Distributable  *big.Int
	TreasuryAmount *big.Int
	RolledOver     *big.Int
}

func (FinalNumberDrawn) EventType() string { return EventTypeFinalNumberDrawn }

func (e FinalNumberDrawn) Event() *types.Event {
	return &types.Event{
		Type: EventTypeFinalNumberDrawn,
		Attributes: map[string]string{
			"roundId":       formatUint(e.RoundID),
			"finalNumber":   strconv.FormatUint(uint64(e.FinalNumber), 10),
			"distributable": formatAmount(e.Distributable),
			"treasury":      formatAmount(e.TreasuryAmount),
			"rolledOver":    formatAmount(e.RolledOver),
		},
	}
}

// TicketsClaimed is emitted once per settled claim batch.
type TicketsClaimed struct {
	RoundID uint64
	Claimer [20]byte
	Count   int
	Amount  *big.Int
}

func (TicketsClaimed) EventType() string { return EventTypeTicketsClaimed }

func (e TicketsClaimed) Event() *types.Event {
	return &types.Event{
		Type: EventTypeTicketsClaimed,
		Attributes: map[string]string{
			"roundId": formatUint(e.RoundID),
			"claimer": hex.EncodeToString(e.Claimer[:]),
			"count":   strconv.Itoa(e.Count),
			"amount":  formatAmount(e.Amount),
		},
	}
}

func formatUint(v uint64) string { return strconv.FormatUint(v, 10) }

func formatAmount(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
