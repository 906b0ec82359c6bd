package models

import (
	"time"
)

// Course represents a golf course. Hole layouts (par, stroke index, yardage)
// belong to a Teebox because different tee sets rate the same hole differently.
type Course struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Slug      string    `json:"slug" gorm:"uniqueIndex"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	HoleCount int       `json:"hole_count" gorm:"default:18"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Teeboxes []Teebox `json:"teeboxes,omitempty" gorm:"foreignKey:CourseID"`
}

// TeeGender indicates which players a tee set is rated for.
type TeeGender string

const (
	TeeGenderMens   TeeGender = "mens"
	TeeGenderWomens TeeGender = "womens"
	TeeGenderUnisex TeeGender = "unisex"
)

// Teebox is one set of tees on a course (e.g. "Blue", "White", "Red").
// CourseRating and SlopeRating drive the course-handicap conversion.
type Teebox struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	CourseID     string    `json:"course_id" gorm:"not null;index"`
	Name         string    `json:"name" gorm:"not null"`
	Gender       TeeGender `json:"gender" gorm:"default:'unisex'"`
	CourseRating float64   `json:"course_rating" gorm:"type:decimal(4,1)"` // expected score for a scratch golfer, e.g. 72.4
	SlopeRating  int       `json:"slope_rating" gorm:"default:113"`        // 55–155; 113 = standard difficulty
	Par          int       `json:"par" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`

	Holes []Hole `json:"holes,omitempty" gorm:"foreignKey:TeeboxID"`
}

// Hole stores per-hole details for one teebox. StrokeIndex is the handicap
// allocation order: index 1 is the hardest hole and receives the first
// handicap stroke. Immutable once the course is defined.
type Hole struct {
	ID          string `json:"id" gorm:"primaryKey"`
	TeeboxID    string `json:"teebox_id" gorm:"not null;uniqueIndex:idx_teebox_hole"`
	Number      int    `json:"number" gorm:"not null;uniqueIndex:idx_teebox_hole"` // 1–18
	Par         int    `json:"par" gorm:"not null"`
	StrokeIndex int    `json:"stroke_index" gorm:"not null"` // 1 = hardest
	Yardage     *int   `json:"yardage,omitempty"`
}
