package workers

import (
	"context"
	"log"
	"time"

	"golf-tournament-system/models"
	"golf-tournament-system/services"

	"gorm.io/gorm"
)

// WarmLeaderboards periodically rebuilds the leaderboard cache for every
// active event so interactive reads during play hit a warm board instead of
// paying the full recompute.
func WarmLeaderboards(ctx context.Context, db *gorm.DB, leaderboard *services.LeaderboardService, pollInterval time.Duration) {
	log.Println("Starting leaderboard warm worker...")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Leaderboard warm worker stopped.")
			return
		case <-ticker.C:
			var events []models.Event
			if err := db.Where("status = ?", models.EventStatusActive).Find(&events).Error; err != nil {
				log.Printf("Warm worker DB error: %v", err)
				continue
			}
			for _, e := range events {
				if _, err := leaderboard.Rebuild(e.ID); err != nil {
					log.Printf("Warm worker failed to rebuild board for event %s: %v", e.ID, err)
				}
			}
		}
	}
}
