package scoring

import (
	"fmt"

	"golf-tournament-system/models"
)

// Derived is what a strategy produces for one hole at entry time. It is stored
// alongside the raw strokes and never recomputed on read.
type Derived struct {
	NetScore int
	Points   int
}

// Strategy converts raw strokes into derived values and defines the ranking
// order for its scoring type. Strategies hold no state; the factory returns
// shared value instances.
type Strategy interface {
	Type() models.ScoringType

	// Compute derives the stored values for a single hole.
	Compute(strokes, par, handicapStrokes int) Derived

	// FullRoundRequired reports whether ranking demands all 18 holes.
	FullRoundRequired() bool

	// PrimaryMetric is the dominant ranking value, oriented so lower is better.
	PrimaryMetric(t RoundTotals) int

	// SortKey builds the comparable tie-break tuple for this scoring type
	// under the configured method. Tuples compare element by element,
	// ascending, best first.
	SortKey(t RoundTotals, declaredHandicap float64, method models.TieBreakMethod) []int
}

// StrategyFor maps the persisted scoring-type enum to its strategy. Stableford
// is a reserved value and fails until implemented.
func StrategyFor(st models.ScoringType) (Strategy, error) {
	switch st {
	case models.ScoringTypeStroke:
		return strokeStrategy{}, nil
	case models.ScoringTypeNetStroke:
		return netStrokeStrategy{}, nil
	case models.ScoringTypeSystem36, models.ScoringTypeSystem36Mod:
		return system36Strategy{scoringType: st}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScoringType, st)
	}
}

// ModifiedDivisionRules reports whether the scoring type enforces
// handicap-range division validation (reassignment/disqualification) after
// the round.
func ModifiedDivisionRules(st models.ScoringType) bool {
	return st == models.ScoringTypeSystem36Mod
}

// --- Stroke play: raw strokes, lowest gross wins ---

type strokeStrategy struct{}

func (strokeStrategy) Type() models.ScoringType { return models.ScoringTypeStroke }

func (strokeStrategy) Compute(strokes, par, handicapStrokes int) Derived {
	return Derived{NetScore: strokes}
}

func (strokeStrategy) FullRoundRequired() bool { return false }

func (strokeStrategy) PrimaryMetric(t RoundTotals) int { return t.Gross }

func (s strokeStrategy) SortKey(t RoundTotals, declaredHandicap float64, method models.TieBreakMethod) []int {
	return buildSortKey(t.Gross, false, t.grossCountback(), declaredHandicap, method)
}

// --- Net stroke play: handicap-adjusted, lowest net wins ---

type netStrokeStrategy struct{}

func (netStrokeStrategy) Type() models.ScoringType { return models.ScoringTypeNetStroke }

func (netStrokeStrategy) Compute(strokes, par, handicapStrokes int) Derived {
	return Derived{NetScore: strokes - handicapStrokes}
}

func (netStrokeStrategy) FullRoundRequired() bool { return false }

func (netStrokeStrategy) PrimaryMetric(t RoundTotals) int { return t.Net }

func (s netStrokeStrategy) SortKey(t RoundTotals, declaredHandicap float64, method models.TieBreakMethod) []int {
	return buildSortKey(t.Net, false, t.netCountback(), declaredHandicap, method)
}

// --- System 36: points per hole derive a round handicap of 36 - points ---

type system36Strategy struct {
	scoringType models.ScoringType
}

func (s system36Strategy) Type() models.ScoringType { return s.scoringType }

// Compute awards 2 points for net par or better, 1 for a net bogey, 0 for
// worse. The net score is stored for reference and export.
func (system36Strategy) Compute(strokes, par, handicapStrokes int) Derived {
	net := strokes - handicapStrokes
	points := 0
	switch diff := net - par; {
	case diff <= 0:
		points = 2
	case diff == 1:
		points = 1
	}
	return Derived{NetScore: net, Points: points}
}

// FullRoundRequired is true: the System 36 handicap is undefined unless
// exactly 18 holes are recorded, so partial rounds must not be ranked.
func (system36Strategy) FullRoundRequired() bool { return true }

// PrimaryMetric is the round net score: gross minus the computed handicap
// (36 - points), i.e. gross + points - 36.
func (system36Strategy) PrimaryMetric(t RoundTotals) int {
	return t.Gross + t.Points - 36
}

// SortKey ranks by net score but counts back on gross sub-totals. The gross
// basis mirrors the long-standing behavior of the product; it is intentional
// even though the primary metric is net.
func (s system36Strategy) SortKey(t RoundTotals, declaredHandicap float64, method models.TieBreakMethod) []int {
	return buildSortKey(s.PrimaryMetric(t), false, t.grossCountback(), declaredHandicap, method)
}
