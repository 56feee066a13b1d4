package lottery

import "math/big"

// Reward math is pure: everything below is a function of the round's frozen
// draw results and never touches the ledger. Integer division truncates at
// every step; the remainders stay in the vault as ledger dust and are
// reported, not redistributed.

// DistributablePool returns the share of collected plus injected funds left
// for bracket payouts once the treasury fee is carved out.
func DistributablePool(collected, injected *big.Int, treasuryFeeBps uint32) *big.Int {
	total := copyBigInt(collected)
	if injected != nil {
		total.Add(total, injected)
	}
	keep := big.NewInt(int64(BpsDenominator - treasuryFeeBps))
	total.Mul(total, keep)
	return total.Div(total, big.NewInt(BpsDenominator))
}

// BracketPools splits the distributable pool across the six brackets
// according to the basis-point breakdown.
func BracketPools(distributable *big.Int, breakdown [Brackets]uint32) [Brackets]*big.Int {
	var pools [Brackets]*big.Int
	for k, bps := range breakdown {
		pool := new(big.Int).Mul(distributable, big.NewInt(int64(bps)))
		pools[k] = pool.Div(pool, big.NewInt(BpsDenominator))
	}
	return pools
}

// TicketReward returns the payout one ticket earns from bracket k of a drawn
// round. A declared bracket the ticket does not actually satisfy yields zero,
// as does a bracket without winners (its pool was rolled over at draw time).
func TicketReward(r *Round, ticketNumber uint32, k int) *big.Int {
	if r == nil || !r.FinalNumberSet || !ValidBracket(k) {
		return big.NewInt(0)
	}
	if !BracketMatches(r.FinalNumber, ticketNumber, k) {
		return big.NewInt(0)
	}
	if r.WinnerCounts[k] == 0 || r.BracketPools[k] == nil {
		return big.NewInt(0)
	}
	reward := new(big.Int).Set(r.BracketPools[k])
	return reward.Div(reward, new(big.Int).SetUint64(r.WinnerCounts[k]))
}

// MaxTicketReward sums the ticket's payout across every bracket it satisfies,
// the amount a claim declaring all satisfied brackets would transfer.
func MaxTicketReward(r *Round, ticketNumber uint32) *big.Int {
	total := big.NewInt(0)
	if r == nil || !r.FinalNumberSet {
		return total
	}
	for k := 0; k <= HighestBracket(r.FinalNumber, ticketNumber); k++ {
		total.Add(total, TicketReward(r, ticketNumber, k))
	}
	return total
}

// RoundDust reports the truncation remainder locked in the vault for a drawn
// round: the slice of the distributable pool that neither the bracket pools
// nor the per-winner division could hand out.
func RoundDust(r *Round) *big.Int {
	dust := big.NewInt(0)
	if r == nil || !r.FinalNumberSet {
		return dust
	}
	distributable := DistributablePool(r.AmountCollected, r.AmountInjected, r.TreasuryFeeBps)
	for k, pool := range r.BracketPools {
		if pool == nil {
			continue
		}
		distributable.Sub(distributable, pool)
		if r.WinnerCounts[k] == 0 {
			continue
		}
		count := new(big.Int).SetUint64(r.WinnerCounts[k])
		per := new(big.Int).Div(pool, count)
		paid := per.Mul(per, count)
		dust.Add(dust, new(big.Int).Sub(pool, paid))
	}
	// Remainder of the bps split itself. Pools of zero-winner brackets were
	// zeroed and routed at draw time, so back their total out first.
	if r.AmountRolledOver != nil {
		distributable.Sub(distributable, r.AmountRolledOver)
	}
	if distributable.Sign() > 0 {
		dust.Add(dust, distributable)
	}
	return dust
}
