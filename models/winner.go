package models

import (
	"time"
)

// AwardCategory identifies what a WinnerResult row was awarded for.
type AwardCategory string

const (
	AwardBestGross    AwardCategory = "best_gross"
	AwardBestNet      AwardCategory = "best_net"
	AwardOverall      AwardCategory = "overall"
	AwardDivision     AwardCategory = "division"
	AwardDisqualified AwardCategory = "disqualified" // retained for transparency, never ranked
)

// WinnerResult is a snapshot row produced by winner calculation. The full set
// for an event is discarded and regenerated on every recalculation; rows are
// never updated in place.
type WinnerResult struct {
	ID            string        `json:"id" gorm:"primaryKey"`
	EventID       string        `json:"event_id" gorm:"not null;index"`
	ParticipantID string        `json:"participant_id" gorm:"not null"`
	PlayerName    string        `json:"player_name"`
	Category      AwardCategory `json:"category" gorm:"not null"`
	Rank          int           `json:"rank" gorm:"default:0"` // 0 for unranked rows (special awards, DQ)
	DivisionID    *string       `json:"division_id,omitempty"`
	DivisionName  string        `json:"division_name,omitempty"`

	GrossScore       int  `json:"gross_score"`
	NetScore         int  `json:"net_score"`
	TotalPoints      int  `json:"total_points"`
	HolesCompleted   int  `json:"holes_completed"`
	ComputedHandicap *int `json:"computed_handicap,omitempty"` // System 36 only; nil unless 18 holes recorded

	Tied     bool   `json:"tied" gorm:"default:false"`
	TiedWith string `json:"tied_with,omitempty"` // comma-joined participant ids sharing the tuple

	OriginalDivisionID *string `json:"original_division_id,omitempty"` // set when the player was reassigned
	Reason             string  `json:"reason,omitempty"`               // human-readable, for reassignment/DQ

	CalculatedAt time.Time `json:"calculated_at" gorm:"autoCreateTime"`
}
