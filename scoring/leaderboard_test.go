package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golf-tournament-system/models"
)

func TestAssembleLeaderboardRanksEveryone(t *testing.T) {
	strategy, err := StrategyFor(models.ScoringTypeStroke)
	require.NoError(t, err)

	div := models.Division{ID: "div-1", Name: "Open", Type: models.DivisionMixed, Active: true}
	rounds := []ParticipantRound{
		BuildRound(models.Participant{ID: "pa", PlayerName: "Alice"}, &div, roundOf(74)),
		BuildRound(models.Participant{ID: "pb", PlayerName: "Bob"}, &div, roundOf(70)),
		BuildRound(models.Participant{ID: "pc", PlayerName: "Cara"}, &div, nil),
		BuildRound(models.Participant{ID: "pd", PlayerName: "Dan"}, &div, partialRound(10, 4)),
	}

	board := AssembleLeaderboard(strategy, models.TieBreakCountback, rounds, LeaderboardFilter{})
	require.Len(t, board, 4)

	assert.Equal(t, "pd", board[0].ParticipantID, "10 holes of par is the lowest gross")
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, 10, board[0].HolesCompleted)
	assert.Equal(t, "pb", board[1].ParticipantID)
	assert.Equal(t, "pa", board[2].ParticipantID)

	// Zero holes sorts last, unranked.
	assert.Equal(t, "pc", board[3].ParticipantID)
	assert.Zero(t, board[3].Rank)
	assert.Zero(t, board[3].HolesCompleted)
}

// A participant excluded from winner calculation by an incomplete round still
// shows on the board with what they recorded.
func TestAssembleLeaderboardIgnoresEligibility(t *testing.T) {
	strategy, err := StrategyFor(models.ScoringTypeStroke)
	require.NoError(t, err)

	div := models.Division{ID: "div-1", Name: "Open", Type: models.DivisionMixed, Active: true}
	cfg := models.WinnerConfiguration{
		TieBreakMethod:          models.TieBreakCountback,
		ExcludeIncompleteRounds: true,
		MinimumHolesForRanking:  18,
		DivisionWinners:         3,
	}
	rounds := []ParticipantRound{
		BuildRound(models.Participant{ID: "pa", PlayerName: "Alice"}, &div, roundOf(74)),
		BuildRound(models.Participant{ID: "pb", PlayerName: "Bob"}, &div, partialRound(10, 5)),
	}

	results, _ := CalculateWinners(strategy, cfg, []models.Division{div}, rounds, nil)
	for _, r := range results {
		assert.NotEqual(t, "pb", r.ParticipantID, "incomplete round must not win")
	}

	board := AssembleLeaderboard(strategy, models.TieBreakCountback, rounds, LeaderboardFilter{})
	require.Len(t, board, 2)
	found := false
	for _, e := range board {
		if e.ParticipantID == "pb" {
			found = true
			assert.Equal(t, 10, e.HolesCompleted)
			assert.NotZero(t, e.Rank)
		}
	}
	assert.True(t, found)
}

func TestAssembleLeaderboardFilters(t *testing.T) {
	strategy, err := StrategyFor(models.ScoringTypeStroke)
	require.NoError(t, err)

	divA := models.Division{ID: "div-a", Name: "A", Type: models.DivisionMixed, Active: true}
	divB := models.Division{ID: "div-b", Name: "B", Type: models.DivisionMixed, Active: true}
	rounds := []ParticipantRound{
		BuildRound(models.Participant{ID: "pa", PlayerName: "Alice"}, &divA, roundOf(70)),
		BuildRound(models.Participant{ID: "pb", PlayerName: "Bob"}, &divB, roundOf(72)),
		BuildRound(models.Participant{ID: "pc", PlayerName: "Cara"}, &divA, roundOf(74)),
		BuildRound(models.Participant{ID: "pd", PlayerName: "Dan"}, &divB, partialRound(5, 4)),
	}

	// Division filter keeps event-wide ranks.
	board := AssembleLeaderboard(strategy, models.TieBreakCountback, rounds, LeaderboardFilter{DivisionID: "div-a"})
	require.Len(t, board, 2)
	assert.Equal(t, "pa", board[0].ParticipantID)
	assert.Equal(t, 2, board[0].Rank, "rank is event-wide, not renumbered per division")
	assert.Equal(t, "pc", board[1].ParticipantID)
	assert.Equal(t, 4, board[1].Rank)

	board = AssembleLeaderboard(strategy, models.TieBreakCountback, rounds, LeaderboardFilter{MinHoles: 18})
	require.Len(t, board, 3)
	for _, e := range board {
		assert.GreaterOrEqual(t, e.HolesCompleted, 18)
	}

	board = AssembleLeaderboard(strategy, models.TieBreakCountback, rounds, LeaderboardFilter{MaxRank: 2})
	require.Len(t, board, 2)
}

func TestAssembleLeaderboardTiesShareRank(t *testing.T) {
	strategy, err := StrategyFor(models.ScoringTypeStroke)
	require.NoError(t, err)

	div := models.Division{ID: "div-1", Name: "Open", Type: models.DivisionMixed, Active: true}
	rounds := []ParticipantRound{
		BuildRound(models.Participant{ID: "pa", PlayerName: "Alice"}, &div, roundOf(72)),
		BuildRound(models.Participant{ID: "pb", PlayerName: "Bob"}, &div, roundOf(72)),
		BuildRound(models.Participant{ID: "pc", PlayerName: "Cara"}, &div, roundOf(74)),
	}

	board := AssembleLeaderboard(strategy, models.TieBreakShare, rounds, LeaderboardFilter{})
	require.Len(t, board, 3)
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, 1, board[1].Rank)
	assert.True(t, board[0].Tied)
	assert.True(t, board[1].Tied)
	assert.Equal(t, 3, board[2].Rank)
	assert.False(t, board[2].Tied)
}

// The random method must not reorder tied players between reads.
func TestAssembleLeaderboardRandomIsStable(t *testing.T) {
	strategy, err := StrategyFor(models.ScoringTypeStroke)
	require.NoError(t, err)

	div := models.Division{ID: "div-1", Name: "Open", Type: models.DivisionMixed, Active: true}
	rounds := []ParticipantRound{
		BuildRound(models.Participant{ID: "pa", PlayerName: "Alice"}, &div, roundOf(72)),
		BuildRound(models.Participant{ID: "pb", PlayerName: "Bob"}, &div, roundOf(72)),
	}

	first := AssembleLeaderboard(strategy, models.TieBreakRandom, rounds, LeaderboardFilter{})
	second := AssembleLeaderboard(strategy, models.TieBreakRandom, rounds, LeaderboardFilter{})
	assert.Equal(t, first, second)
}
