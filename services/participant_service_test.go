package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"golf-tournament-system/models"
)

func TestCourseHandicap(t *testing.T) {
	tests := []struct {
		name     string
		declared float64
		teebox   models.Teebox
		want     int
	}{
		{
			name:     "standard slope neutral rating",
			declared: 10,
			teebox:   models.Teebox{SlopeRating: 113, CourseRating: 72.0, Par: 72},
			want:     10,
		},
		{
			name:     "steep slope adds strokes",
			declared: 10,
			teebox:   models.Teebox{SlopeRating: 135, CourseRating: 72.0, Par: 72},
			want:     12,
		},
		{
			name:     "rating above par adds strokes",
			declared: 10,
			teebox:   models.Teebox{SlopeRating: 113, CourseRating: 74.5, Par: 72},
			want:     13, // 10 + 2.5 rounds to 13
		},
		{
			name:     "rating below par removes strokes",
			declared: 10,
			teebox:   models.Teebox{SlopeRating: 113, CourseRating: 70.0, Par: 72},
			want:     8,
		},
		{
			name:     "zero slope falls back to standard",
			declared: 18,
			teebox:   models.Teebox{CourseRating: 72.0, Par: 72},
			want:     18,
		},
		{
			name:     "scratch player",
			declared: 0,
			teebox:   models.Teebox{SlopeRating: 130, CourseRating: 73.1, Par: 72},
			want:     1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CourseHandicap(tt.declared, tt.teebox))
		})
	}
}

func TestNormalizePlayerName(t *testing.T) {
	assert.Equal(t, "Jane Doe", normalizePlayerName("  Jane   Doe "))
	assert.Equal(t, "José García", normalizePlayerName("José García"))
	assert.Equal(t, "", normalizePlayerName("   "))
}
