package lottery

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserTicketsPagination(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, buyerOne, 10_000)
	round := env.openRound(t)
	numbers := []uint32{100_001, 100_002, 100_003, 100_004, 100_005}
	ids := env.buy(t, buyerOne, round.ID, numbers)

	view, err := env.engine.UserTickets(buyerOne, round.ID, 0, 2)
	require.NoError(t, err)
	require.Equal(t, ids[:2], view.IDs)
	require.Equal(t, numbers[:2], view.Numbers)
	require.Equal(t, uint64(5), view.Total)

	// Windows beyond the owned count clamp rather than fail.
	view, err = env.engine.UserTickets(buyerOne, round.ID, 4, 10)
	require.NoError(t, err)
	require.Equal(t, ids[4:], view.IDs)

	view, err = env.engine.UserTickets(buyerOne, round.ID, 5, 3)
	require.NoError(t, err)
	require.Empty(t, view.IDs)

	// Adjacent windows never overlap.
	first, err := env.engine.UserTickets(buyerOne, round.ID, 0, 3)
	require.NoError(t, err)
	second, err := env.engine.UserTickets(buyerOne, round.ID, 3, 3)
	require.NoError(t, err)
	seen := map[uint64]bool{}
	for _, id := range append(append([]uint64{}, first.IDs...), second.IDs...) {
		require.False(t, seen[id], "ticket %d duplicated across windows", id)
		seen[id] = true
	}

	// An owner with no tickets gets an empty window, not an error.
	view, err = env.engine.UserTickets(strangerAddr, round.ID, 0, 10)
	require.NoError(t, err)
	require.Empty(t, view.IDs)
	require.Zero(t, view.Total)

	require.Equal(t, uint64(5), env.engine.UserTicketCount(buyerOne, round.ID))
	require.Zero(t, env.engine.UserTicketCount(strangerAddr, round.ID))
}

func TestTicketBracketStatus(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, buyerOne, 10_000)
	round := env.openRound(t)
	ids := env.buy(t, buyerOne, round.ID, []uint32{123_456, 993_456, 111_111})

	// Before the draw the bracket column is meaningless and flagged so.
	views, err := env.engine.TicketBracketStatus(ids)
	require.NoError(t, err)
	for _, view := range views {
		require.False(t, view.Drawn)
		require.Equal(t, -1, view.HighestBracket)
	}

	env.closeAndDraw(t, round.ID, 123_456, false)

	views, err = env.engine.TicketBracketStatus(ids)
	require.NoError(t, err)
	require.Equal(t, 5, views[0].HighestBracket)
	require.Equal(t, 3, views[1].HighestBracket)
	require.Equal(t, -1, views[2].HighestBracket)
	for _, view := range views {
		require.True(t, view.Drawn)
		require.False(t, view.Claimed)
	}

	_, err = env.engine.TicketBracketStatus([]uint64{404})
	require.ErrorIs(t, err, ErrTicketNotFound)
}

func TestMaxRewardForUser(t *testing.T) {
	env := newTestEnv(t)
	env.fund(t, buyerOne, 10_000)
	env.fund(t, injectorAddr, 10_000)
	round := env.openRound(t)
	ids := env.buy(t, buyerOne, round.ID, []uint32{123_456, 111_111})
	require.NoError(t, env.engine.InjectFunds(injectorAddr, round.ID, big.NewInt(1000)))

	// Before the draw every ticket is worth zero if claimed now.
	view, err := env.engine.MaxRewardForUser(buyerOne, round.ID, 0, 10)
	require.NoError(t, err)
	for _, reward := range view.Rewards {
		require.Zero(t, reward.Sign())
	}

	_, err = env.engine.MaxRewardForUser(strangerAddr, round.ID, 0, 10)
	require.ErrorIs(t, err, ErrNoTicketsForOwner)

	env.closeAndDraw(t, round.ID, 123_456, false)

	view, err = env.engine.MaxRewardForUser(buyerOne, round.ID, 0, 10)
	require.NoError(t, err)
	require.Equal(t, ids, view.IDs)
	require.Positive(t, view.Rewards[0].Sign())
	require.Zero(t, view.Rewards[1].Sign())

	// Claimed tickets drop to zero in the view.
	_, err = env.engine.Claim(buyerOne, round.ID, []uint64{ids[0]}, []int{5})
	require.NoError(t, err)
	view, err = env.engine.MaxRewardForUser(buyerOne, round.ID, 0, 10)
	require.NoError(t, err)
	require.Zero(t, view.Rewards[0].Sign())
}
