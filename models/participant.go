package models

import (
	"time"
)

// DivisionType groups competitors for separate winner determination.
type DivisionType string

const (
	DivisionMen    DivisionType = "men"
	DivisionWomen  DivisionType = "women"
	DivisionSenior DivisionType = "senior"
	DivisionVIP    DivisionType = "vip"
	DivisionMixed  DivisionType = "mixed"
)

// Division is configuration: created before or during an event and referenced
// by participants. Never deleted while referenced, only deactivated.
type Division struct {
	ID                 string       `json:"id" gorm:"primaryKey"`
	EventID            string       `json:"event_id" gorm:"not null;index"`
	Name               string       `json:"name" gorm:"not null"`
	Type               DivisionType `json:"type" gorm:"not null;default:'mixed'"`
	MinHandicap        *float64     `json:"min_handicap,omitempty"` // nil = open at the bottom
	MaxHandicap        *float64     `json:"max_handicap,omitempty"` // nil = open at the top
	Capacity           *int         `json:"capacity,omitempty"`
	ParentDivisionID   *string      `json:"parent_division_id,omitempty" gorm:"index"` // sub-division support
	UsesCourseHandicap bool         `json:"uses_course_handicap" gorm:"default:false"` // assignment checks course handicap instead of declared
	Active             bool         `json:"active" gorm:"default:true"`
	CreatedAt          time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
}

// HasRange reports whether the division defines a handicap band on both ends.
func (d *Division) HasRange() bool {
	return d.MinHandicap != nil && d.MaxHandicap != nil
}

// Contains reports whether a handicap falls inside the division's band.
// Open ends always match.
func (d *Division) Contains(h float64) bool {
	if d.MinHandicap != nil && h < *d.MinHandicap {
		return false
	}
	if d.MaxHandicap != nil && h > *d.MaxHandicap {
		return false
	}
	return true
}

// Participant is one player in one event. DeclaredHandicap is player-reported;
// CourseHandicap is converted from the teebox rating/slope and supplied by the
// participant service. A participant's set of hole scores is their round.
type Participant struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	EventID          string    `json:"event_id" gorm:"not null;index"`
	PlayerName       string    `json:"player_name" gorm:"not null"`
	Email            string    `json:"email"`
	DeclaredHandicap float64   `json:"declared_handicap" gorm:"type:decimal(4,1);default:0"`
	CourseHandicap   int       `json:"course_handicap" gorm:"default:0"`
	DivisionID       *string   `json:"division_id,omitempty" gorm:"index"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Division *Division   `json:"division,omitempty" gorm:"foreignKey:DivisionID"`
	Scores   []HoleScore `json:"scores,omitempty" gorm:"foreignKey:ParticipantID"`
}
