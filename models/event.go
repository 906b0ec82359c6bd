package models

import (
	"time"
)

// ScoringType selects the scoring strategy an event plays under. The value is
// persisted on the event and drives derivation at score-entry time, so editing
// it requires re-deriving every stored score.
type ScoringType string

const (
	ScoringTypeStroke      ScoringType = "stroke"
	ScoringTypeNetStroke   ScoringType = "net_stroke"
	ScoringTypeSystem36    ScoringType = "system36"
	ScoringTypeSystem36Mod ScoringType = "system36_modified" // System 36 with handicap-range division validation
	ScoringTypeStableford  ScoringType = "stableford"        // reserved, not yet supported
)

// TieBreakMethod controls how equal primary metrics are separated when ranking.
type TieBreakMethod string

const (
	TieBreakCountback      TieBreakMethod = "countback"       // back nine, last six, last three, last hole, handicap
	TieBreakPlayoff        TieBreakMethod = "playoff"         // scorecard playoff, same comparison as countback
	TieBreakShare          TieBreakMethod = "share"           // equal primary metric always ties
	TieBreakLowestHandicap TieBreakMethod = "lowest_handicap" // straight to declared handicap
	TieBreakRandom         TieBreakMethod = "random"          // non-deterministic draw
)

// EventStatus tracks the lifecycle of an event.
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusActive    EventStatus = "active"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

// Event is the top-level container for a tournament: one course/teebox, one
// scoring type, a set of divisions and participants, and a winner configuration.
type Event struct {
	ID          string      `json:"id" gorm:"primaryKey"`
	Name        string      `json:"name" gorm:"not null"`
	Slug        string      `json:"slug" gorm:"uniqueIndex"`
	Description string      `json:"description"`
	Status      EventStatus `json:"status" gorm:"default:'draft'"`
	ScoringType ScoringType `json:"scoring_type" gorm:"not null;default:'stroke'"`
	CourseID    string      `json:"course_id" gorm:"not null"`
	TeeboxID    string      `json:"teebox_id" gorm:"not null"`
	StartTime   time.Time   `json:"start_time" gorm:"not null"`
	EndTime     time.Time   `json:"end_time"`
	CreatedAt   time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time   `json:"updated_at" gorm:"autoUpdateTime"`

	Course        Course               `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Teebox        Teebox               `json:"teebox,omitempty" gorm:"foreignKey:TeeboxID"`
	Configuration *WinnerConfiguration `json:"configuration,omitempty" gorm:"foreignKey:EventID"`
	Divisions     []Division           `json:"divisions,omitempty" gorm:"foreignKey:EventID"`
	Participants  []Participant        `json:"participants,omitempty" gorm:"foreignKey:EventID"`

	// Calculated, not stored
	ParticipantCount int64 `json:"participant_count,omitempty" gorm:"-"`
}

// WinnerConfiguration is read-only input to the winner engine; the engine never
// mutates it. A row is created with defaults when the event is created so
// winner calculation can rely on its existence.
type WinnerConfiguration struct {
	ID                      string         `json:"id" gorm:"primaryKey"`
	EventID                 string         `json:"event_id" gorm:"not null;uniqueIndex"`
	TieBreakMethod          TieBreakMethod `json:"tie_break_method" gorm:"default:'countback'"`
	DivisionWinners         int            `json:"division_winners" gorm:"default:3"`
	OverallWinners          int            `json:"overall_winners" gorm:"default:1"`
	BestGrossAward          bool           `json:"best_gross_award" gorm:"default:true"`
	BestNetAward            bool           `json:"best_net_award" gorm:"default:false"`
	ExcludeIncompleteRounds bool           `json:"exclude_incomplete_rounds" gorm:"default:false"`
	MinimumHolesForRanking  int            `json:"minimum_holes_for_ranking" gorm:"default:18"`
	CreatedAt               time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt               time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}
