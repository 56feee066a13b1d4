package lottery

import "math/big"

// BatchPrice computes the discounted cost of count tickets:
//
//	price * count * (divisor + 1 - count) / divisor
//
// The divisor floor enforced at round creation keeps the discount factor
// above (divisor + 1 - maxBatch) / divisor, so a batch never sells below that
// fraction of its linear price. A single ticket pays exactly the list price.
func BatchPrice(pricePerTicket *big.Int, discountDivisor uint32, count int) *big.Int {
	if pricePerTicket == nil || count <= 0 {
		return big.NewInt(0)
	}
	total := new(big.Int).Mul(pricePerTicket, big.NewInt(int64(count)))
	if discountDivisor == 0 || count <= 1 {
		return total
	}
	factor := int64(discountDivisor) + 1 - int64(count)
	if factor < 1 {
		factor = 1
	}
	total.Mul(total, big.NewInt(factor))
	return total.Div(total, big.NewInt(int64(discountDivisor)))
}
