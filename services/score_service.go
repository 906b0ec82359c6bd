package services

import (
	"errors"
	"fmt"
	"log"

	"golf-tournament-system/models"
	"golf-tournament-system/scoring"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScoreService struct {
	DB *gorm.DB
}

func NewScoreService(db *gorm.DB) *ScoreService {
	return &ScoreService{DB: db}
}

// RecordHoleScore records or corrects a participant's strokes on one hole.
// Derived values are computed once here and stored; read paths never
// recompute them. Corrections overwrite the row and leave an audit entry.
func (s *ScoreService) RecordHoleScore(c *fiber.Ctx) error {
	type Req struct {
		HoleNumber int `json:"hole_number"`
		Strokes    int `json:"strokes"`
	}

	eventID := c.Params("id")
	participantID := c.Params("participant_id")

	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	// Raw strokes are validated before any strategy runs.
	if req.Strokes < 1 || req.Strokes > 15 {
		return c.Status(400).JSON(fiber.Map{"error": scoring.ErrInvalidStrokes.Error()})
	}

	var event models.Event
	if err := s.DB.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "event not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error fetching event"})
	}
	if event.Status == models.EventStatusCompleted || event.Status == models.EventStatusCancelled {
		return c.Status(409).JSON(fiber.Map{"error": fmt.Sprintf("event is %s, scores are closed", event.Status)})
	}

	var participant models.Participant
	if err := s.DB.First(&participant, "id = ? AND event_id = ?", participantID, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "participant not found in this event"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error fetching participant"})
	}

	var hole models.Hole
	if err := s.DB.First(&hole, "teebox_id = ? AND number = ?", event.TeeboxID, req.HoleNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": fmt.Sprintf("%v: hole %d not defined for this event's teebox", scoring.ErrUnknownHole, req.HoleNumber)})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error fetching hole"})
	}

	strategy, err := scoring.StrategyFor(event.ScoringType)
	if err != nil {
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}

	handicapStrokes := scoring.StrokesReceived(participant.DeclaredHandicap, hole.StrokeIndex, 18)
	derived := strategy.Compute(req.Strokes, hole.Par, handicapStrokes)

	actorID, _ := c.Locals("user_id").(string)

	var score models.HoleScore
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var oldStrokes *int
		var existing models.HoleScore
		findErr := tx.First(&existing, "participant_id = ? AND hole_number = ?", participantID, req.HoleNumber).Error
		switch {
		case findErr == nil:
			old := existing.Strokes
			oldStrokes = &old
			existing.Strokes = req.Strokes
			existing.NetScore = derived.NetScore
			existing.Points = derived.Points
			existing.EnteredBy = actorID
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			score = existing
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			score = models.HoleScore{
				ID:            uuid.NewString(),
				EventID:       eventID,
				ParticipantID: participantID,
				HoleNumber:    req.HoleNumber,
				Strokes:       req.Strokes,
				NetScore:      derived.NetScore,
				Points:        derived.Points,
				EnteredBy:     actorID,
			}
			if err := tx.Create(&score).Error; err != nil {
				return err
			}
		default:
			return findErr
		}

		audit := models.ScoreAudit{
			ID:            uuid.NewString(),
			EventID:       eventID,
			ParticipantID: participantID,
			HoleNumber:    req.HoleNumber,
			OldStrokes:    oldStrokes,
			NewStrokes:    req.Strokes,
			ActorID:       actorID,
		}
		return tx.Create(&audit).Error
	})
	if err != nil {
		log.Printf("ERROR recording score for participant %s hole %d: %v", participantID, req.HoleNumber, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to record score"})
	}

	return c.Status(201).JSON(score)
}

// GetParticipantScores returns a participant's stored hole scores plus the
// aggregated round totals.
func (s *ScoreService) GetParticipantScores(c *fiber.Ctx) error {
	eventID := c.Params("id")
	participantID := c.Params("participant_id")

	var participant models.Participant
	if err := s.DB.First(&participant, "id = ? AND event_id = ?", participantID, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "participant not found in this event"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	var scores []models.HoleScore
	if err := s.DB.Where("participant_id = ?", participantID).
		Order("hole_number ASC").
		Find(&scores).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch scores"})
	}

	totals := scoring.AggregateRound(scores)
	return c.JSON(fiber.Map{
		"participant_id":    participantID,
		"scores":            scores,
		"gross_score":       totals.Gross,
		"net_score":         totals.Net,
		"total_points":      totals.Points,
		"holes_completed":   totals.HolesCompleted,
		"computed_handicap": totals.System36Handicap(),
	})
}

// DeleteHoleScore removes one hole entry and records the removal in the audit
// trail.
func (s *ScoreService) DeleteHoleScore(c *fiber.Ctx) error {
	eventID := c.Params("id")
	participantID := c.Params("participant_id")
	holeNumber, err := c.ParamsInt("hole_number")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid hole number"})
	}

	actorID, _ := c.Locals("user_id").(string)

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.HoleScore
		if err := tx.First(&existing, "participant_id = ? AND hole_number = ?", participantID, holeNumber).Error; err != nil {
			return err
		}
		if err := tx.Delete(&existing).Error; err != nil {
			return err
		}
		old := existing.Strokes
		audit := models.ScoreAudit{
			ID:            uuid.NewString(),
			EventID:       eventID,
			ParticipantID: participantID,
			HoleNumber:    holeNumber,
			OldStrokes:    &old,
			NewStrokes:    0,
			ActorID:       actorID,
		}
		return tx.Create(&audit).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "score not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "failed to delete score"})
	}
	return c.JSON(fiber.Map{"message": "score deleted"})
}

// RederiveEventScores recomputes the stored derived values for every score in
// an event. Called when the event's scoring type is edited so "calculate once,
// store" stays true under the new strategy.
func (s *ScoreService) RederiveEventScores(tx *gorm.DB, event *models.Event) error {
	strategy, err := scoring.StrategyFor(event.ScoringType)
	if err != nil {
		return err
	}

	var holes []models.Hole
	if err := tx.Where("teebox_id = ?", event.TeeboxID).Find(&holes).Error; err != nil {
		return err
	}
	holeByNumber := make(map[int]models.Hole, len(holes))
	for _, h := range holes {
		holeByNumber[h.Number] = h
	}

	var participants []models.Participant
	if err := tx.Where("event_id = ?", event.ID).Find(&participants).Error; err != nil {
		return err
	}

	for _, p := range participants {
		var scores []models.HoleScore
		if err := tx.Where("participant_id = ?", p.ID).Find(&scores).Error; err != nil {
			return err
		}
		for i := range scores {
			hole, ok := holeByNumber[scores[i].HoleNumber]
			if !ok {
				continue
			}
			handicapStrokes := scoring.StrokesReceived(p.DeclaredHandicap, hole.StrokeIndex, 18)
			derived := strategy.Compute(scores[i].Strokes, hole.Par, handicapStrokes)
			if err := tx.Model(&scores[i]).Updates(map[string]interface{}{
				"net_score": derived.NetScore,
				"points":    derived.Points,
			}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
