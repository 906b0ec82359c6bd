package services

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"golf-tournament-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StreamLeaderboardSSE streams leaderboard snapshots for one event. The board
// is re-read on a short ticker and pushed only when a new score entry has
// landed since the last push, so idle events cost a single cursor query per
// tick.
func (s *LeaderboardService) StreamLeaderboardSSE(c *fiber.Ctx) error {
	eventID := c.Params("id")

	if err := s.DB.First(&models.Event{}, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "event not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	// SSE headers
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no") // nginx

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		var lastAuditAt time.Time

		// Initialize cursor from the newest audit row so only entries made
		// after connecting trigger a push.
		var latest models.ScoreAudit
		if err := s.DB.
			Where("event_id = ?", eventID).
			Order("recorded_at DESC").
			First(&latest).Error; err == nil {
			lastAuditAt = latest.RecordedAt
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("SSE init error for event %s: %v", eventID, err)
		}

		// Initial snapshot so the client has a board immediately.
		if entries, err := s.board(eventID); err == nil {
			payload, _ := json.Marshal(entries)
			fmt.Fprintf(w, "event: leaderboard\ndata: %s\n\n", payload)
		}
		if err := w.Flush(); err != nil {
			return
		}

		for {
			select {
			case <-ticker.C:
				var count int64
				err := s.DB.Model(&models.ScoreAudit{}).
					Where("event_id = ? AND recorded_at > ?", eventID, lastAuditAt).
					Count(&count).Error
				if err != nil {
					log.Printf("SSE query error for event %s: %v", eventID, err)
					continue
				}
				if count == 0 {
					// Keepalive comment so proxies don't drop the connection.
					w.WriteString(":\n\n")
					if err := w.Flush(); err != nil {
						return
					}
					continue
				}

				lastAuditAt = time.Now()
				s.Invalidate(eventID)
				entries, err := s.board(eventID)
				if err != nil {
					log.Printf("SSE rebuild error for event %s: %v", eventID, err)
					continue
				}

				payload, _ := json.Marshal(entries)
				fmt.Fprintf(w, "event: leaderboard\ndata: %s\n\n", payload)
				if err := w.Flush(); err != nil {
					// Client disconnected
					return
				}

			case <-c.Context().Done():
				return
			}
		}
	})

	return nil
}
