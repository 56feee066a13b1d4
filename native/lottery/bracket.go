package lottery

// Bracket membership is pure digit arithmetic over the six digit number
// space: bracket k is satisfied when the trailing k+1 digits of the ticket
// equal the trailing k+1 digits of the final number. Satisfaction is
// monotonic downward, so a full match sits in every bracket at once.

var pow10 = [Brackets + 1]uint32{1, 10, 100, 1_000, 10_000, 100_000, 1_000_000}

// ValidTicketNumber reports whether n has exactly six digits.
func ValidTicketNumber(n uint32) bool {
	return n >= MinTicketNumber && n <= MaxTicketNumber
}

// ValidBracket reports whether k names one of the six prize tiers.
func ValidBracket(k int) bool {
	return k >= 0 && k < Brackets
}

// BracketMatches reports whether the ticket satisfies bracket k against the
// final number.
func BracketMatches(finalNumber, ticket uint32, k int) bool {
	if !ValidBracket(k) {
		return false
	}
	mod := pow10[k+1]
	return finalNumber%mod == ticket%mod
}

// HighestBracket returns the highest bracket the ticket satisfies against the
// final number, or -1 when even the last digit differs.
func HighestBracket(finalNumber, ticket uint32) int {
	highest := -1
	for k := 0; k < Brackets; k++ {
		if !BracketMatches(finalNumber, ticket, k) {
			break
		}
		highest = k
	}
	return highest
}

// CountWinners scans ticket numbers against the final number and returns the
// inclusive per-bracket winner counts: a ticket contributes to every bracket
// it satisfies, not only its highest.
func CountWinners(finalNumber uint32, numbers []uint32) [Brackets]uint64 {
	var counts [Brackets]uint64
	for _, n := range numbers {
		for k := 0; k <= HighestBracket(finalNumber, n); k++ {
			counts[k]++
		}
	}
	return counts
}
