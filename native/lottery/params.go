package lottery

import (
	"errors"
	"math/big"
)

// Params bound the round configurations the engine accepts. The defaults
// mirror the reference deployment limits.
type Params struct {
	MinDiscountDivisor uint32
	MaxTreasuryFeeBps  uint32
	MaxTicketsPerBatch int
	MinPricePerTicket  *big.Int
	MaxPricePerTicket  *big.Int
}

// DefaultParams returns the engine limits used when none are configured.
func DefaultParams() Params {
	return Params{
		MinDiscountDivisor: 300,
		MaxTreasuryFeeBps:  3000,
		MaxTicketsPerBatch: 100,
		MinPricePerTicket:  big.NewInt(1),
		MaxPricePerTicket:  new(big.Int).Exp(big.NewInt(10), big.NewInt(24), nil),
	}
}

// Validate ensures the limit values fall within acceptable bounds.
func (p Params) Validate() error {
	if p.MinDiscountDivisor == 0 {
		return errors.New("lottery: min discount divisor must be positive")
	}
	if p.MaxTreasuryFeeBps > BpsDenominator {
		return errors.New("lottery: max treasury fee above denominator")
	}
	if p.MaxTicketsPerBatch <= 0 {
		return errors.New("lottery: max tickets per batch must be positive")
	}
	if p.MinPricePerTicket == nil || p.MinPricePerTicket.Sign() <= 0 {
		return errors.New("lottery: min ticket price must be positive")
	}
	if p.MaxPricePerTicket == nil || p.MaxPricePerTicket.Cmp(p.MinPricePerTicket) < 0 {
		return errors.New("lottery: max ticket price below minimum")
	}
	return nil
}
