package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"golf-tournament-system/models"
)

func TestBuildSortKeyMethods(t *testing.T) {
	cb := [4]int{40, 26, 13, 5}

	key := buildSortKey(80, false, cb, 12.5, models.TieBreakCountback)
	assert.Equal(t, []int{80, 40, 26, 13, 5, 125}, key)

	// Scorecard playoff compares the same tuple as countback.
	assert.Equal(t, key, buildSortKey(80, false, cb, 12.5, models.TieBreakPlayoff))

	assert.Equal(t, []int{80, 125}, buildSortKey(80, false, cb, 12.5, models.TieBreakLowestHandicap))
	assert.Equal(t, []int{80}, buildSortKey(80, false, cb, 12.5, models.TieBreakShare))
	assert.Equal(t, []int{80}, buildSortKey(80, false, cb, 12.5, models.TieBreakRandom))
}

// Only the primary metric is negated for point-maximizing comparison; the
// countback sub-totals stay ascending.
func TestBuildSortKeyMaximize(t *testing.T) {
	key := buildSortKey(31, true, [4]int{40, 26, 13, 5}, 9, models.TieBreakCountback)
	assert.Equal(t, []int{-31, 40, 26, 13, 5, 90}, key)
}

// Two players on gross 80: back nine 38 must rank ahead of back nine 40.
func TestCountbackSeparatesEqualGross(t *testing.T) {
	a := buildSortKey(80, false, [4]int{38, 25, 12, 4}, 10, models.TieBreakCountback)
	b := buildSortKey(80, false, [4]int{40, 25, 12, 4}, 10, models.TieBreakCountback)
	assert.Equal(t, -1, compareKeys(a, b))
	assert.Equal(t, 1, compareKeys(b, a))

	// Under share they remain tied.
	sa := buildSortKey(80, false, [4]int{38, 25, 12, 4}, 10, models.TieBreakShare)
	sb := buildSortKey(80, false, [4]int{40, 25, 12, 4}, 10, models.TieBreakShare)
	assert.True(t, keysEqual(sa, sb))
}

func TestCountbackFallsThroughToHandicap(t *testing.T) {
	a := buildSortKey(80, false, [4]int{40, 26, 13, 5}, 8.4, models.TieBreakCountback)
	b := buildSortKey(80, false, [4]int{40, 26, 13, 5}, 8.5, models.TieBreakCountback)
	assert.Equal(t, -1, compareKeys(a, b))
}

func TestHandicapTenths(t *testing.T) {
	assert.Equal(t, 125, handicapTenths(12.5))
	assert.Equal(t, 0, handicapTenths(0))
	assert.Equal(t, 90, handicapTenths(9.0))
	assert.Equal(t, 181, handicapTenths(18.1))
}

func TestCompareKeys(t *testing.T) {
	assert.Equal(t, 0, compareKeys([]int{1, 2}, []int{1, 2}))
	assert.Equal(t, -1, compareKeys([]int{1, 1}, []int{1, 2}))
	assert.Equal(t, 1, compareKeys([]int{2}, []int{1}))
}
