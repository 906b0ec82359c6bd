package scoring

import (
	"math"

	"golf-tournament-system/models"
)

// buildSortKey composes the comparable tuple for one participant under the
// configured tie-break method. Tuples compare element by element, ascending,
// best first. For point-maximizing strategies only the primary metric is
// negated so ascending comparison still yields best-first.
//
//	countback / playoff: (primary, back nine, last six, last three, last hole, declared handicap)
//	lowest_handicap:     (primary, declared handicap)
//	share / random:      (primary) only; equal primaries always compare equal
//	                     and the random method separates them at rank time.
func buildSortKey(primary int, maximize bool, countback [4]int, declaredHandicap float64, method models.TieBreakMethod) []int {
	if maximize {
		primary = -primary
	}
	switch method {
	case models.TieBreakShare, models.TieBreakRandom:
		return []int{primary}
	case models.TieBreakLowestHandicap:
		return []int{primary, handicapTenths(declaredHandicap)}
	default: // countback and scorecard playoff share the comparison
		return []int{
			primary,
			countback[0],
			countback[1],
			countback[2],
			countback[3],
			handicapTenths(declaredHandicap),
		}
	}
}

// handicapTenths makes a declared handicap comparable as an integer without
// losing its single decimal place.
func handicapTenths(h float64) int {
	return int(math.Round(h * 10))
}

// compareKeys orders two sort keys element by element. A shorter key that is a
// prefix of a longer one compares equal on the shared elements; keys produced
// by the same method always have equal length.
func compareKeys(a, b []int) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func keysEqual(a, b []int) bool {
	return compareKeys(a, b) == 0
}
