package lottery

import "testing"

func TestValidTicketNumber(t *testing.T) {
	cases := []struct {
		number uint32
		valid  bool
	}{
		{99_999, false},
		{100_000, true},
		{123_456, true},
		{999_999, true},
		{1_000_000, false},
		{0, false},
	}
	for _, tc := range cases {
		if got := ValidTicketNumber(tc.number); got != tc.valid {
			t.Fatalf("ValidTicketNumber(%d) = %v, want %v", tc.number, got, tc.valid)
		}
	}
}

func TestBracketMatches(t *testing.T) {
	const final = 345_678
	cases := []struct {
		name    string
		ticket  uint32
		bracket int
		want    bool
	}{
		{"last digit", 111_118, 0, true},
		{"last digit miss", 111_117, 0, false},
		{"two digits", 999_978, 1, true},
		{"two digits miss", 999_968, 1, false},
		{"full match", 345_678, 5, true},
		{"full match lower tier", 345_678, 0, true},
		{"five of six", 145_678, 4, true},
		{"five of six not full", 145_678, 5, false},
		{"bracket out of range", 345_678, 6, false},
		{"negative bracket", 345_678, -1, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BracketMatches(final, tc.ticket, tc.bracket); got != tc.want {
				t.Fatalf("BracketMatches(%d, %d, %d) = %v, want %v", final, tc.ticket, tc.bracket, got, tc.want)
			}
		})
	}
}

func TestHighestBracketMonotonic(t *testing.T) {
	const final = 345_678
	cases := []struct {
		ticket uint32
		want   int
	}{
		{345_678, 5},
		{145_678, 4},
		{115_678, 3},
		{111_678, 2},
		{111_178, 1},
		{111_118, 0},
		{111_111, -1},
	}
	for _, tc := range cases {
		got := HighestBracket(final, tc.ticket)
		if got != tc.want {
			t.Fatalf("HighestBracket(%d, %d) = %d, want %d", final, tc.ticket, got, tc.want)
		}
		// Every bracket at or below the highest must also be satisfied.
		for k := 0; k <= got; k++ {
			if !BracketMatches(final, tc.ticket, k) {
				t.Fatalf("ticket %d satisfies bracket %d but not lower bracket %d", tc.ticket, got, k)
			}
		}
	}
}

func TestCountWinnersInclusive(t *testing.T) {
	const final = 123_456
	numbers := []uint32{
		123_456, // all six brackets
		223_456, // brackets 0..4
		993_456, // brackets 0..3
		111_111, // no bracket
	}
	counts := CountWinners(final, numbers)
	want := [Brackets]uint64{3, 3, 3, 3, 2, 1}
	if counts != want {
		t.Fatalf("CountWinners = %v, want %v", counts, want)
	}
}

func TestCountWinnersEmptyRound(t *testing.T) {
	counts := CountWinners(123_456, nil)
	if counts != [Brackets]uint64{} {
		t.Fatalf("expected zero counts for empty round, got %v", counts)
	}
}
