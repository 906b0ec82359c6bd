// services/scheduler.go
package services

import (
	"log"
	"time"

	"golf-tournament-system/models"

	"github.com/go-co-op/gocron/v2"
)

// auditRetention is how long score audit rows are kept before the nightly
// purge removes them.
const auditRetention = 90 * 24 * time.Hour

func (s *EventService) StartEventScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every minute: activate draft events whose start time has passed.
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			now := time.Now()
			var events []models.Event
			err := s.DB.Where("status = ? AND start_time <= ?", models.EventStatusDraft, now).
				Find(&events).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}
			for _, e := range events {
				e.Status = models.EventStatusActive
				if err := s.DB.Save(&e).Error; err != nil {
					log.Printf("[Scheduler] Failed to activate event %s: %v", e.ID, err)
				} else {
					log.Printf("[Scheduler] Auto-activated event: %s", e.Name)
				}
			}
		}),
	)

	// Nightly: purge audit rows past the retention window.
	_, _ = sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(func() {
			cutoff := time.Now().Add(-auditRetention)
			result := s.DB.Where("recorded_at < ?", cutoff).Delete(&models.ScoreAudit{})
			if result.Error != nil {
				log.Printf("[Scheduler] Audit purge failed: %v", result.Error)
			} else if result.RowsAffected > 0 {
				log.Printf("[Scheduler] Purged %d audit rows older than %s", result.RowsAffected, cutoff.Format(time.RFC3339))
			}
		}),
	)
}
