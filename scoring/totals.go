package scoring

import (
	"golf-tournament-system/models"
)

// RoundTotals aggregates a participant's stored derived values into the sums
// the ranking and tie-break logic needs. It is recomputed on demand from
// HoleScore rows and never persisted.
//
// Countback sub-totals are kept in both gross and net form so each strategy
// can pick its basis. Hole classification is by ordinal: back nine = holes
// 10-18, last six = 13-18, last three = 16-18, last hole = 18, regardless of
// play order or how many holes were actually completed.
type RoundTotals struct {
	Gross          int
	Net            int
	Points         int
	HolesCompleted int

	FrontNineGross int
	BackNineGross  int
	LastSixGross   int
	LastThreeGross int
	LastHoleGross  int

	FrontNineNet int
	BackNineNet  int
	LastSixNet   int
	LastThreeNet int
	LastHoleNet  int
}

// AggregateRound folds the stored hole scores of one participant into totals.
// Holes with no entry contribute zero and are excluded from HolesCompleted.
func AggregateRound(scores []models.HoleScore) RoundTotals {
	var t RoundTotals
	for _, s := range scores {
		n := s.HoleNumber
		if n < 1 || n > 18 {
			continue
		}
		t.Gross += s.Strokes
		t.Net += s.NetScore
		t.Points += s.Points
		t.HolesCompleted++

		if n <= 9 {
			t.FrontNineGross += s.Strokes
			t.FrontNineNet += s.NetScore
		} else {
			t.BackNineGross += s.Strokes
			t.BackNineNet += s.NetScore
		}
		if n >= 13 {
			t.LastSixGross += s.Strokes
			t.LastSixNet += s.NetScore
		}
		if n >= 16 {
			t.LastThreeGross += s.Strokes
			t.LastThreeNet += s.NetScore
		}
		if n == 18 {
			t.LastHoleGross = s.Strokes
			t.LastHoleNet = s.NetScore
		}
	}
	return t
}

// System36Handicap returns 36 minus total points, defined only when exactly
// 18 holes are recorded. Partial rounds yield nil and must not be ranked.
func (t RoundTotals) System36Handicap() *int {
	if t.HolesCompleted != 18 {
		return nil
	}
	h := 36 - t.Points
	return &h
}

func (t RoundTotals) grossCountback() [4]int {
	return [4]int{t.BackNineGross, t.LastSixGross, t.LastThreeGross, t.LastHoleGross}
}

func (t RoundTotals) netCountback() [4]int {
	return [4]int{t.BackNineNet, t.LastSixNet, t.LastThreeNet, t.LastHoleNet}
}
