package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golf-tournament-system/models"
)

func TestStrategyFor(t *testing.T) {
	for _, st := range []models.ScoringType{
		models.ScoringTypeStroke,
		models.ScoringTypeNetStroke,
		models.ScoringTypeSystem36,
		models.ScoringTypeSystem36Mod,
	} {
		s, err := StrategyFor(st)
		require.NoError(t, err)
		assert.Equal(t, st, s.Type())
	}

	_, err := StrategyFor(models.ScoringTypeStableford)
	assert.ErrorIs(t, err, ErrUnsupportedScoringType)

	_, err = StrategyFor(models.ScoringType("match_play"))
	assert.ErrorIs(t, err, ErrUnsupportedScoringType)
}

func TestStrokeCompute(t *testing.T) {
	s, err := StrategyFor(models.ScoringTypeStroke)
	require.NoError(t, err)

	d := s.Compute(5, 4, 1)
	assert.Equal(t, 5, d.NetScore, "stroke play ignores handicap strokes")
	assert.Zero(t, d.Points)
	assert.False(t, s.FullRoundRequired())
}

func TestNetStrokeCompute(t *testing.T) {
	s, err := StrategyFor(models.ScoringTypeNetStroke)
	require.NoError(t, err)

	d := s.Compute(5, 4, 1)
	assert.Equal(t, 4, d.NetScore)
	assert.Zero(t, d.Points)

	d = s.Compute(3, 4, 2)
	assert.Equal(t, 1, d.NetScore)
}

func TestSystem36Points(t *testing.T) {
	s, err := StrategyFor(models.ScoringTypeSystem36)
	require.NoError(t, err)
	require.True(t, s.FullRoundRequired())

	tests := []struct {
		name            string
		strokes, par    int
		handicapStrokes int
		wantNet         int
		wantPoints      int
	}{
		{"eagle", 2, 4, 0, 2, 2},
		{"birdie", 3, 4, 0, 3, 2},
		{"par", 4, 4, 0, 4, 2},
		{"bogey", 5, 4, 0, 5, 1},
		{"double bogey", 6, 4, 0, 6, 0},
		{"quad", 8, 4, 0, 8, 0},
		{"net par via stroke", 5, 4, 1, 4, 2},
		{"net bogey via stroke", 6, 4, 1, 5, 1},
		{"two strokes rescue double", 6, 4, 2, 4, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := s.Compute(tt.strokes, tt.par, tt.handicapStrokes)
			assert.Equal(t, tt.wantNet, d.NetScore)
			assert.Equal(t, tt.wantPoints, d.Points)
		})
	}
}

// Points never increase as strokes increase on the same hole.
func TestSystem36PointsMonotone(t *testing.T) {
	s, err := StrategyFor(models.ScoringTypeSystem36)
	require.NoError(t, err)

	for par := 3; par <= 5; par++ {
		prev := 2
		for strokes := 1; strokes <= 15; strokes++ {
			p := s.Compute(strokes, par, 0).Points
			assert.LessOrEqual(t, p, prev, "par %d strokes %d", par, strokes)
			prev = p
		}
	}
}

func TestModifiedDivisionRules(t *testing.T) {
	assert.True(t, ModifiedDivisionRules(models.ScoringTypeSystem36Mod))
	assert.False(t, ModifiedDivisionRules(models.ScoringTypeSystem36))
	assert.False(t, ModifiedDivisionRules(models.ScoringTypeStroke))
	assert.False(t, ModifiedDivisionRules(models.ScoringTypeNetStroke))
}

// A full worked round: 18 par-4 holes, difficulty indices 1..18 in hole order,
// declared handicap 9 so holes 1-9 each receive one stroke.
func TestSystem36WorkedRound(t *testing.T) {
	s, err := StrategyFor(models.ScoringTypeSystem36)
	require.NoError(t, err)

	strokes := []int{4, 5, 4, 5, 4, 5, 4, 3, 5, 5, 4, 4, 5, 6, 4, 5, 4, 4}
	var scores []models.HoleScore
	for i, raw := range strokes {
		hole := i + 1
		hs := StrokesReceived(9, hole, 18)
		d := s.Compute(raw, 4, hs)
		scores = append(scores, models.HoleScore{
			HoleNumber: hole,
			Strokes:    raw,
			NetScore:   d.NetScore,
			Points:     d.Points,
		})
	}

	totals := AggregateRound(scores)
	assert.Equal(t, 80, totals.Gross)
	assert.Equal(t, 18, totals.HolesCompleted)

	// Holes 1-9 all play to net par or better (2 points each); the back nine
	// earns 13 on raw strokes.
	assert.Equal(t, 31, totals.Points)

	hc := totals.System36Handicap()
	require.NotNil(t, hc)
	assert.Equal(t, 5, *hc)

	// Round net = gross minus the computed handicap.
	assert.Equal(t, totals.Gross-*hc, s.PrimaryMetric(totals))
}
