package services

import (
	"errors"
	"log"
	"math"
	"strings"

	"golf-tournament-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

type ParticipantService struct {
	DB *gorm.DB
}

func NewParticipantService(db *gorm.DB) *ParticipantService {
	return &ParticipantService{DB: db}
}

// CourseHandicap converts a declared handicap for a specific teebox:
// handicap × slope/113 + (rating − par), rounded to the nearest integer.
func CourseHandicap(declared float64, teebox models.Teebox) int {
	slope := teebox.SlopeRating
	if slope == 0 {
		slope = 113
	}
	ch := declared*float64(slope)/113.0 + (teebox.CourseRating - float64(teebox.Par))
	return int(math.Round(ch))
}

// normalizePlayerName collapses whitespace and applies Unicode NFC so the same
// player entered from different clients compares equal.
func normalizePlayerName(name string) string {
	return norm.NFC.String(strings.Join(strings.Fields(name), " "))
}

// RegisterParticipant adds a player to an event. The course handicap is
// computed from the event teebox at registration; division assignment is
// matched on handicap band when no explicit division is given.
func (s *ParticipantService) RegisterParticipant(c *fiber.Ctx) error {
	type Req struct {
		PlayerName       string  `json:"player_name"`
		Email            string  `json:"email"`
		DeclaredHandicap float64 `json:"declared_handicap"`
		DivisionID       *string `json:"division_id"`
	}
	eventID := c.Params("id")

	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	req.PlayerName = normalizePlayerName(req.PlayerName)
	if req.PlayerName == "" {
		return c.Status(400).JSON(fiber.Map{"error": "player_name is required"})
	}
	if req.DeclaredHandicap < -10 || req.DeclaredHandicap > 54 {
		return c.Status(400).JSON(fiber.Map{"error": "declared_handicap must be between -10 and 54"})
	}

	var event models.Event
	if err := s.DB.Preload("Teebox").First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "event not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error fetching event"})
	}

	var existing models.Participant
	if err := s.DB.Where("event_id = ? AND player_name = ?", eventID, req.PlayerName).
		First(&existing).Error; err == nil {
		return c.Status(409).JSON(fiber.Map{
			"error":       "player already registered",
			"participant": existing,
		})
	}

	courseHandicap := CourseHandicap(req.DeclaredHandicap, event.Teebox)

	divisionID := req.DivisionID
	if divisionID != nil {
		var division models.Division
		if err := s.DB.First(&division, "id = ? AND event_id = ?", *divisionID, eventID).Error; err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "division_id not found in this event"})
		}
		if !division.Active {
			return c.Status(400).JSON(fiber.Map{"error": "division is deactivated"})
		}
		if division.Capacity != nil {
			var count int64
			s.DB.Model(&models.Participant{}).Where("division_id = ?", division.ID).Count(&count)
			if int(count) >= *division.Capacity {
				return c.Status(403).JSON(fiber.Map{"error": "division is full"})
			}
		}
	} else {
		divisionID = s.matchDivision(eventID, req.DeclaredHandicap, courseHandicap)
	}

	participant := &models.Participant{
		ID:               uuid.NewString(),
		EventID:          eventID,
		PlayerName:       req.PlayerName,
		Email:            req.Email,
		DeclaredHandicap: req.DeclaredHandicap,
		CourseHandicap:   courseHandicap,
		DivisionID:       divisionID,
	}
	if err := s.DB.Create(participant).Error; err != nil {
		log.Printf("ERROR registering participant for event %s: %v", eventID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to register participant"})
	}

	s.DB.Preload("Division").First(participant, "id = ?", participant.ID)
	return c.Status(201).JSON(participant)
}

// matchDivision finds the first active division whose handicap band contains
// the player's handicap, respecting each division's choice of declared vs
// course handicap. Returns nil when nothing matches; unassigned participants
// still rank overall and on the leaderboard.
func (s *ParticipantService) matchDivision(eventID string, declared float64, course int) *string {
	var divisions []models.Division
	if err := s.DB.Where("event_id = ? AND active = true", eventID).
		Order("created_at ASC").
		Find(&divisions).Error; err != nil {
		return nil
	}
	for i := range divisions {
		d := &divisions[i]
		if !d.HasRange() {
			continue
		}
		h := declared
		if d.UsesCourseHandicap {
			h = float64(course)
		}
		if !d.Contains(h) {
			continue
		}
		if d.Capacity != nil {
			var count int64
			s.DB.Model(&models.Participant{}).Where("division_id = ?", d.ID).Count(&count)
			if int(count) >= *d.Capacity {
				continue
			}
		}
		return &d.ID
	}
	return nil
}

func (s *ParticipantService) GetEventParticipants(c *fiber.Ctx) error {
	eventID := c.Params("id")
	var participants []models.Participant
	if err := s.DB.Preload("Division").
		Where("event_id = ?", eventID).
		Order("player_name ASC").
		Find(&participants).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch participants"})
	}
	return c.JSON(participants)
}

// UpdateParticipant edits registration details. A handicap change recomputes
// the course handicap but does not touch stored scores; scores derive from the
// handicap in force when they were entered, and a recalculation request is the
// explicit way to re-rank.
func (s *ParticipantService) UpdateParticipant(c *fiber.Ctx) error {
	eventID := c.Params("id")
	participantID := c.Params("participant_id")
	type Req struct {
		PlayerName       *string  `json:"player_name"`
		Email            *string  `json:"email"`
		DeclaredHandicap *float64 `json:"declared_handicap"`
		DivisionID       *string  `json:"division_id"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	var participant models.Participant
	if err := s.DB.First(&participant, "id = ? AND event_id = ?", participantID, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "participant not found in this event"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	if req.PlayerName != nil {
		name := normalizePlayerName(*req.PlayerName)
		if name == "" {
			return c.Status(400).JSON(fiber.Map{"error": "player_name cannot be empty"})
		}
		participant.PlayerName = name
	}
	if req.Email != nil {
		participant.Email = *req.Email
	}
	if req.DeclaredHandicap != nil {
		if *req.DeclaredHandicap < -10 || *req.DeclaredHandicap > 54 {
			return c.Status(400).JSON(fiber.Map{"error": "declared_handicap must be between -10 and 54"})
		}
		participant.DeclaredHandicap = *req.DeclaredHandicap
		var event models.Event
		if err := s.DB.Preload("Teebox").First(&event, "id = ?", eventID).Error; err == nil {
			participant.CourseHandicap = CourseHandicap(*req.DeclaredHandicap, event.Teebox)
		}
	}
	if req.DivisionID != nil {
		if *req.DivisionID == "" {
			participant.DivisionID = nil
		} else {
			var division models.Division
			if err := s.DB.First(&division, "id = ? AND event_id = ?", *req.DivisionID, eventID).Error; err != nil {
				return c.Status(400).JSON(fiber.Map{"error": "division_id not found in this event"})
			}
			participant.DivisionID = req.DivisionID
		}
	}

	if err := s.DB.Save(&participant).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "update failed"})
	}
	s.DB.Preload("Division").First(&participant, "id = ?", participant.ID)
	return c.JSON(participant)
}

func (s *ParticipantService) RemoveParticipant(c *fiber.Ctx) error {
	eventID := c.Params("id")
	participantID := c.Params("participant_id")

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("participant_id = ?", participantID).Delete(&models.HoleScore{}).Error; err != nil {
			return err
		}
		if err := tx.Where("participant_id = ?", participantID).Delete(&models.ScoreAudit{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Participant{}, "id = ? AND event_id = ?", participantID, eventID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fiber.NewError(404, "participant not found")
		}
		return nil
	})
}
