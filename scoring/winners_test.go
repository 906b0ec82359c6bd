package scoring

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golf-tournament-system/models"
)

// roundOf spreads a target gross over 18 holes, loading the surplus over
// par 72 onto the back nine so countback totals differ with gross.
func roundOf(gross int) []models.HoleScore {
	scores := fullRound(4)
	extra := gross - 72
	for i := 17; extra > 0 && i >= 0; i-- {
		scores[i].Strokes++
		scores[i].NetScore++
		extra--
	}
	for ; extra < 0; extra++ {
		scores[extra+18].Strokes--
		scores[extra+18].NetScore--
	}
	return scores
}

func strokePool(t *testing.T, div *models.Division, grosses map[string]int) []ParticipantRound {
	t.Helper()
	ids := make([]string, 0, len(grosses))
	for id := range grosses {
		ids = append(ids, id)
	}
	// Deterministic input order.
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if ids[j] < ids[i] {
				ids[i], ids[j] = ids[j], ids[i]
			}
		}
	}
	rounds := make([]ParticipantRound, 0, len(ids))
	for _, id := range ids {
		rounds = append(rounds, BuildRound(
			models.Participant{ID: id, PlayerName: "Player " + id},
			div,
			roundOf(grosses[id]),
		))
	}
	return rounds
}

func resultsByCategory(results []models.WinnerResult) map[models.AwardCategory][]models.WinnerResult {
	byCat := make(map[models.AwardCategory][]models.WinnerResult)
	for _, r := range results {
		byCat[r.Category] = append(byCat[r.Category], r)
	}
	return byCat
}

func TestCalculateWinnersCascadingExclusion(t *testing.T) {
	strategy, err := StrategyFor(models.ScoringTypeStroke)
	require.NoError(t, err)

	div := models.Division{ID: "div-1", Name: "Open", Type: models.DivisionMixed, Active: true}
	cfg := models.WinnerConfiguration{
		TieBreakMethod:  models.TieBreakCountback,
		BestGrossAward:  true,
		OverallWinners:  1,
		DivisionWinners: 2,
	}
	rounds := strokePool(t, &div, map[string]int{
		"pa": 70, "pb": 72, "pc": 74, "pd": 76, "pe": 78,
	})

	results, reassignments := CalculateWinners(strategy, cfg, []models.Division{div}, rounds, nil)
	assert.Empty(t, reassignments)

	byCat := resultsByCategory(results)

	require.Len(t, byCat[models.AwardBestGross], 1)
	assert.Equal(t, "pa", byCat[models.AwardBestGross][0].ParticipantID)
	assert.Equal(t, 70, byCat[models.AwardBestGross][0].GrossScore)

	require.Len(t, byCat[models.AwardOverall], 1)
	assert.Equal(t, "pb", byCat[models.AwardOverall][0].ParticipantID)
	assert.Equal(t, 1, byCat[models.AwardOverall][0].Rank)

	require.Len(t, byCat[models.AwardDivision], 2)
	assert.Equal(t, "pc", byCat[models.AwardDivision][0].ParticipantID)
	assert.Equal(t, 1, byCat[models.AwardDivision][0].Rank)
	assert.Equal(t, "pd", byCat[models.AwardDivision][1].ParticipantID)
	assert.Equal(t, 2, byCat[models.AwardDivision][1].Rank)

	// One person, one category.
	seen := make(map[string]int)
	for _, r := range results {
		seen[r.ParticipantID]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "participant %s appears in %d categories", id, n)
	}
}

func TestCalculateWinnersTieExtensionPastCutoff(t *testing.T) {
	strategy, err := StrategyFor(models.ScoringTypeStroke)
	require.NoError(t, err)

	div := models.Division{ID: "div-1", Name: "Open", Type: models.DivisionMixed, Active: true}
	cfg := models.WinnerConfiguration{
		TieBreakMethod:  models.TieBreakShare,
		DivisionWinners: 3,
	}
	rounds := strokePool(t, &div, map[string]int{
		"pa": 70, "pb": 72, "pc": 74, "pd": 74, "pe": 76,
	})

	results, _ := CalculateWinners(strategy, cfg, []models.Division{div}, rounds, nil)
	byCat := resultsByCategory(results)

	// The tie at rank 3 extends the list to four winners; 76 stays out.
	divisionRows := byCat[models.AwardDivision]
	require.Len(t, divisionRows, 4)
	assert.Equal(t, []int{1, 2, 3, 3}, []int{divisionRows[0].Rank, divisionRows[1].Rank, divisionRows[2].Rank, divisionRows[3].Rank})

	assert.True(t, divisionRows[2].Tied)
	assert.True(t, divisionRows[3].Tied)
	assert.Equal(t, divisionRows[3].ParticipantID, divisionRows[2].TiedWith)
	assert.Equal(t, divisionRows[2].ParticipantID, divisionRows[3].TiedWith)
	assert.False(t, divisionRows[0].Tied)
}

func TestCalculateWinnersCountbackSeparates(t *testing.T) {
	strategy, err := StrategyFor(models.ScoringTypeStroke)
	require.NoError(t, err)

	div := models.Division{ID: "div-1", Name: "Open", Type: models.DivisionMixed, Active: true}
	cfg := models.WinnerConfiguration{
		TieBreakMethod:  models.TieBreakCountback,
		DivisionWinners: 2,
	}

	// Both on gross 80; pa's extra strokes sit on the front nine, so pa's back
	// nine of 38 beats pb's 40.
	paScores := fullRound(4)
	for i := 0; i < 6; i++ {
		paScores[i].Strokes++
		paScores[i].NetScore++
	}
	paScores[9].Strokes += 2 // hole 10
	paScores[9].NetScore += 2
	pbScores := roundOf(80)

	rounds := []ParticipantRound{
		BuildRound(models.Participant{ID: "pa", PlayerName: "Player A"}, &div, paScores),
		BuildRound(models.Participant{ID: "pb", PlayerName: "Player B"}, &div, pbScores),
	}
	require.Equal(t, 80, rounds[0].Totals.Gross)
	require.Equal(t, 80, rounds[1].Totals.Gross)
	require.Equal(t, 38, rounds[0].Totals.BackNineGross)
	require.Equal(t, 44, rounds[1].Totals.BackNineGross)

	results, _ := CalculateWinners(strategy, cfg, []models.Division{div}, rounds, nil)
	byCat := resultsByCategory(results)

	divisionRows := byCat[models.AwardDivision]
	require.Len(t, divisionRows, 2)
	assert.Equal(t, "pa", divisionRows[0].ParticipantID)
	assert.Equal(t, 1, divisionRows[0].Rank)
	assert.False(t, divisionRows[0].Tied)
	assert.Equal(t, "pb", divisionRows[1].ParticipantID)
	assert.Equal(t, 2, divisionRows[1].Rank)
}

func TestCalculateWinnersRetainsDisqualified(t *testing.T) {
	strategy, err := StrategyFor(models.ScoringTypeSystem36Mod)
	require.NoError(t, err)

	divA := mensDivision("div-a", "Men A", 0, 12)
	divisions := []models.Division{divA}
	cfg := models.WinnerConfiguration{
		TieBreakMethod:  models.TieBreakCountback,
		DivisionWinners: 3,
	}

	// Zero points on every hole: computed handicap 36, above the maximum.
	badScores := fullRound(9)
	goodScores := fullRound(4)
	for i := range goodScores {
		goodScores[i].NetScore = 4
		goodScores[i].Points = 2
	}

	rounds := []ParticipantRound{
		BuildRound(models.Participant{ID: "pa", PlayerName: "Player A"}, &divA, goodScores),
		BuildRound(models.Participant{ID: "pb", PlayerName: "Player B"}, &divA, badScores),
	}

	results, _ := CalculateWinners(strategy, cfg, divisions, rounds, nil)
	byCat := resultsByCategory(results)

	require.Len(t, byCat[models.AwardDisqualified], 1)
	dq := byCat[models.AwardDisqualified][0]
	assert.Equal(t, "pb", dq.ParticipantID)
	assert.Zero(t, dq.Rank)
	assert.Contains(t, dq.Reason, "above division")

	for _, r := range byCat[models.AwardDivision] {
		assert.NotEqual(t, "pb", r.ParticipantID)
	}
}

func TestCalculateWinnersReassignment(t *testing.T) {
	strategy, err := StrategyFor(models.ScoringTypeSystem36Mod)
	require.NoError(t, err)

	divA := mensDivision("div-a", "Men A", 0, 12)
	divB := mensDivision("div-b", "Men B", 13, 24)
	divisions := []models.Division{divA, divB}
	cfg := models.WinnerConfiguration{
		TieBreakMethod:  models.TieBreakCountback,
		DivisionWinners: 3,
	}

	// All net pars: 36 points, computed handicap 0, below Men B's minimum.
	scores := fullRound(4)
	for i := range scores {
		scores[i].Points = 2
	}
	rounds := []ParticipantRound{
		BuildRound(models.Participant{ID: "pa", PlayerName: "Sandbagger"}, &divB, scores),
	}

	results, reassignments := CalculateWinners(strategy, cfg, divisions, rounds, nil)

	require.Len(t, reassignments, 1)
	assert.Equal(t, "pa", reassignments[0].ParticipantID)
	assert.Equal(t, "div-b", reassignments[0].FromDivisionID)
	assert.Equal(t, "div-a", reassignments[0].ToDivisionID)

	byCat := resultsByCategory(results)
	require.Len(t, byCat[models.AwardDivision], 1)
	row := byCat[models.AwardDivision][0]
	require.NotNil(t, row.DivisionID)
	assert.Equal(t, "div-a", *row.DivisionID)
	require.NotNil(t, row.OriginalDivisionID)
	assert.Equal(t, "div-b", *row.OriginalDivisionID)
	assert.NotEmpty(t, row.Reason)
}

// Two runs over identical inputs must produce identical output, including tie
// flags and ordering.
func TestCalculateWinnersIdempotent(t *testing.T) {
	strategy, err := StrategyFor(models.ScoringTypeStroke)
	require.NoError(t, err)

	div := models.Division{ID: "div-1", Name: "Open", Type: models.DivisionMixed, Active: true}
	cfg := models.WinnerConfiguration{
		TieBreakMethod:  models.TieBreakShare,
		BestGrossAward:  true,
		OverallWinners:  1,
		DivisionWinners: 3,
	}
	rounds := strokePool(t, &div, map[string]int{
		"pa": 74, "pb": 74, "pc": 74, "pd": 76, "pe": 78,
	})

	first, _ := CalculateWinners(strategy, cfg, []models.Division{div}, rounds, nil)
	second, _ := CalculateWinners(strategy, cfg, []models.Division{div}, rounds, nil)
	assert.Equal(t, first, second)
}

func TestCalculateWinnersBestNetSkippedForStroke(t *testing.T) {
	strategy, err := StrategyFor(models.ScoringTypeStroke)
	require.NoError(t, err)

	div := models.Division{ID: "div-1", Name: "Open", Type: models.DivisionMixed, Active: true}
	cfg := models.WinnerConfiguration{
		TieBreakMethod:  models.TieBreakCountback,
		BestNetAward:    true,
		DivisionWinners: 1,
	}
	rounds := strokePool(t, &div, map[string]int{"pa": 70, "pb": 72})

	results, _ := CalculateWinners(strategy, cfg, []models.Division{div}, rounds, nil)
	byCat := resultsByCategory(results)
	assert.Empty(t, byCat[models.AwardBestNet], "best net is meaningless under raw stroke play")
	assert.Len(t, byCat[models.AwardDivision], 1)
}

func TestCalculateWinnersInactiveDivisionSkipped(t *testing.T) {
	strategy, err := StrategyFor(models.ScoringTypeStroke)
	require.NoError(t, err)

	div := models.Division{ID: "div-1", Name: "Retired", Type: models.DivisionMixed, Active: false}
	cfg := models.WinnerConfiguration{TieBreakMethod: models.TieBreakCountback, DivisionWinners: 3}
	rounds := strokePool(t, &div, map[string]int{"pa": 70})

	results, _ := CalculateWinners(strategy, cfg, []models.Division{div}, rounds, nil)
	byCat := resultsByCategory(results)
	assert.Empty(t, byCat[models.AwardDivision])
}

func TestRankPoolRandomAssignsDistinctRanks(t *testing.T) {
	div := models.Division{ID: "div-1", Name: "Open", Type: models.DivisionMixed, Active: true}
	rounds := strokePool(t, &div, map[string]int{
		"pa": 74, "pb": 74, "pc": 74, "pd": 74,
	})
	keyFn := func(rec ParticipantRound) []int { return []int{rec.Totals.Gross} }

	rng := rand.New(rand.NewSource(1))
	ranked := rankPool(rounds, keyFn, models.TieBreakRandom, 4, rng)
	require.Len(t, ranked, 4)
	seen := make(map[int]bool)
	for _, e := range ranked {
		assert.False(t, seen[e.rank], "duplicate rank %d", e.rank)
		seen[e.rank] = true
		assert.False(t, e.tied)
	}
}

func TestSelectSpecialAwardEmptyPool(t *testing.T) {
	winner, remaining := SelectSpecialAward(nil, grossAwardKey(models.TieBreakCountback), models.TieBreakCountback, nil)
	assert.Nil(t, winner)
	assert.Empty(t, remaining)
}
