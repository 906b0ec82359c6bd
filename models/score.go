package models

import (
	"time"
)

// HoleScore is one raw stroke entry plus the values derived from it at entry
// time by the event's scoring strategy. Derivation happens exactly once per
// write ("calculate once, store, display many"): read paths trust NetScore and
// Points as stored, and a correction or a scoring-type change re-derives them.
type HoleScore struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	EventID       string    `json:"event_id" gorm:"not null;index"`
	ParticipantID string    `json:"participant_id" gorm:"not null;uniqueIndex:idx_participant_hole"`
	HoleNumber    int       `json:"hole_number" gorm:"not null;uniqueIndex:idx_participant_hole"` // 1–18
	Strokes       int       `json:"strokes" gorm:"not null"`                                      // raw, 1–15
	NetScore      int       `json:"net_score" gorm:"not null"`                                    // derived
	Points        int       `json:"points" gorm:"default:0"`                                      // derived; only point-based strategies
	EnteredBy     string    `json:"entered_by"`
	EnteredAt     time.Time `json:"entered_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// ScoreAudit is an append-only trail of score entries and corrections.
// Rows older than the retention window are purged by the scheduler.
type ScoreAudit struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	EventID       string    `json:"event_id" gorm:"index"`
	ParticipantID string    `json:"participant_id" gorm:"index"`
	HoleNumber    int       `json:"hole_number"`
	OldStrokes    *int      `json:"old_strokes,omitempty"` // nil on first entry
	NewStrokes    int       `json:"new_strokes"`
	ActorID       string    `json:"actor_id"`
	RecordedAt    time.Time `json:"recorded_at" gorm:"autoCreateTime;index"`
}
