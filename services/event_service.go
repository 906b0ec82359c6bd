package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golf-tournament-system/models"
	"golf-tournament-system/scoring"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type EventService struct {
	DB     *gorm.DB
	Scores *ScoreService
}

func NewEventService(db *gorm.DB, scores *ScoreService) *EventService {
	return &EventService{DB: db, Scores: scores}
}

func validScoringType(st models.ScoringType) bool {
	switch st {
	case models.ScoringTypeStroke, models.ScoringTypeNetStroke,
		models.ScoringTypeSystem36, models.ScoringTypeSystem36Mod:
		return true
	}
	return false
}

func validTieBreakMethod(m models.TieBreakMethod) bool {
	switch m {
	case models.TieBreakCountback, models.TieBreakPlayoff, models.TieBreakShare,
		models.TieBreakLowestHandicap, models.TieBreakRandom:
		return true
	}
	return false
}

func (s *EventService) CreateEvent(c *fiber.Ctx) error {
	type Req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		ScoringType string `json:"scoring_type"`
		CourseID    string `json:"course_id"`
		TeeboxID    string `json:"teebox_id"`
		StartTime   string `json:"start_time"` // RFC3339
		EndTime     string `json:"end_time"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.Name == "" || req.CourseID == "" || req.TeeboxID == "" || req.StartTime == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name, course_id, teebox_id and start_time are required"})
	}

	scoringType := models.ScoringType(req.ScoringType)
	if req.ScoringType == "" {
		scoringType = models.ScoringTypeStroke
	}
	if !validScoringType(scoringType) {
		return c.Status(422).JSON(fiber.Map{"error": fmt.Sprintf("unsupported scoring type %q", req.ScoringType)})
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid start_time (use RFC3339)"})
	}
	var endTime time.Time
	if req.EndTime != "" {
		endTime, err = time.Parse(time.RFC3339, req.EndTime)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid end_time (use RFC3339)"})
		}
	}

	var teebox models.Teebox
	if err := s.DB.First(&teebox, "id = ? AND course_id = ?", req.TeeboxID, req.CourseID).Error; err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "teebox_id not found on this course"})
	}

	event := &models.Event{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Description: req.Description,
		Status:      models.EventStatusDraft,
		ScoringType: scoringType,
		CourseID:    req.CourseID,
		TeeboxID:    req.TeeboxID,
		StartTime:   startTime,
		EndTime:     endTime,
	}

	// Configuration is created with defaults alongside the event so winner
	// calculation never has to handle a missing row.
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		cfg := &models.WinnerConfiguration{
			ID:                     uuid.NewString(),
			EventID:                event.ID,
			TieBreakMethod:         models.TieBreakCountback,
			DivisionWinners:        3,
			OverallWinners:         1,
			BestGrossAward:         true,
			BestNetAward:           false,
			MinimumHolesForRanking: 18,
		}
		return tx.Create(cfg).Error
	})
	if err != nil {
		log.Printf("ERROR creating event: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "DB insert failed"})
	}

	s.DB.Preload("Course").Preload("Teebox").Preload("Configuration").
		First(event, "id = ?", event.ID)
	return c.Status(201).JSON(event)
}

func (s *EventService) GetAllEvents(c *fiber.Ctx) error {
	var events []models.Event
	query := s.DB.Preload("Course").Preload("Configuration").Order("start_time DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&events).Error; err != nil {
		log.Printf("ERROR fetching events: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch events"})
	}
	for i := range events {
		s.DB.Model(&models.Participant{}).
			Where("event_id = ?", events[i].ID).
			Count(&events[i].ParticipantCount)
	}
	return c.JSON(events)
}

func (s *EventService) GetEventByID(c *fiber.Ctx) error {
	id := c.Params("id")
	var event models.Event
	err := s.DB.
		Preload("Course").
		Preload("Teebox").
		Preload("Teebox.Holes", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		Preload("Configuration").
		Preload("Divisions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("player_name ASC")
		}).
		First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "event not found"})
		}
		log.Printf("ERROR fetching event %s: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	event.ParticipantCount = int64(len(event.Participants))
	return c.JSON(event)
}

// UpdateEvent edits event fields. Changing the scoring type re-derives every
// stored score under the new strategy in the same transaction.
func (s *EventService) UpdateEvent(c *fiber.Ctx) error {
	id := c.Params("id")
	type Req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		ScoringType string `json:"scoring_type"`
		StartTime   string `json:"start_time"`
		EndTime     string `json:"end_time"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	var event models.Event
	if err := s.DB.First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "event not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = strings.TrimSpace(req.Name)
		updates["slug"] = slug.Make(req.Name)
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.StartTime != "" {
		t, err := time.Parse(time.RFC3339, req.StartTime)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid start_time (use RFC3339)"})
		}
		updates["start_time"] = t
	}
	if req.EndTime != "" {
		t, err := time.Parse(time.RFC3339, req.EndTime)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid end_time (use RFC3339)"})
		}
		updates["end_time"] = t
	}

	scoringChanged := false
	if req.ScoringType != "" && models.ScoringType(req.ScoringType) != event.ScoringType {
		newType := models.ScoringType(req.ScoringType)
		if !validScoringType(newType) {
			return c.Status(422).JSON(fiber.Map{"error": fmt.Sprintf("unsupported scoring type %q", req.ScoringType)})
		}
		updates["scoring_type"] = newType
		scoringChanged = true
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&event).Updates(updates).Error; err != nil {
			return err
		}
		if scoringChanged {
			event.ScoringType = models.ScoringType(req.ScoringType)
			if err := s.Scores.RederiveEventScores(tx, &event); err != nil {
				return err
			}
			// Stale results computed under the old strategy are worse than no
			// results.
			if err := tx.Where("event_id = ?", id).Delete(&models.WinnerResult{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("ERROR updating event %s: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to update event"})
	}

	s.DB.Preload("Course").Preload("Teebox").Preload("Configuration").
		First(&event, "id = ?", id)
	return c.JSON(event)
}

func (s *EventService) UpdateEventStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	type Req struct {
		Status string `json:"status"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	switch models.EventStatus(req.Status) {
	case models.EventStatusDraft, models.EventStatusActive, models.EventStatusCompleted, models.EventStatusCancelled:
	default:
		return c.Status(400).JSON(fiber.Map{"error": "invalid status"})
	}

	result := s.DB.Model(&models.Event{}).Where("id = ?", id).Update("status", req.Status)
	if result.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB update failed"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "event not found"})
	}

	var updated models.Event
	s.DB.Preload("Configuration").First(&updated, "id = ?", id)
	return c.JSON(updated)
}

func (s *EventService) DeleteEvent(c *fiber.Ctx) error {
	id := c.Params("id")
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.WinnerResult{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.ScoreAudit{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.HoleScore{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.Participant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.Division{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.WinnerConfiguration{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Event{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fiber.NewError(404, "event not found")
		}
		return nil
	})
}

// UpdateConfiguration edits the event's winner configuration.
func (s *EventService) UpdateConfiguration(c *fiber.Ctx) error {
	eventID := c.Params("id")
	type Req struct {
		TieBreakMethod          *string `json:"tie_break_method"`
		DivisionWinners         *int    `json:"division_winners"`
		OverallWinners          *int    `json:"overall_winners"`
		BestGrossAward          *bool   `json:"best_gross_award"`
		BestNetAward            *bool   `json:"best_net_award"`
		ExcludeIncompleteRounds *bool   `json:"exclude_incomplete_rounds"`
		MinimumHolesForRanking  *int    `json:"minimum_holes_for_ranking"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	var cfg models.WinnerConfiguration
	if err := s.DB.First(&cfg, "event_id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": scoring.ErrConfigurationMissing.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	updates := map[string]interface{}{}
	if req.TieBreakMethod != nil {
		method := models.TieBreakMethod(*req.TieBreakMethod)
		if !validTieBreakMethod(method) {
			return c.Status(400).JSON(fiber.Map{"error": fmt.Sprintf("invalid tie_break_method %q", *req.TieBreakMethod)})
		}
		updates["tie_break_method"] = method
	}
	if req.DivisionWinners != nil {
		if *req.DivisionWinners < 0 {
			return c.Status(400).JSON(fiber.Map{"error": "division_winners must be non-negative"})
		}
		updates["division_winners"] = *req.DivisionWinners
	}
	if req.OverallWinners != nil {
		if *req.OverallWinners < 0 {
			return c.Status(400).JSON(fiber.Map{"error": "overall_winners must be non-negative"})
		}
		updates["overall_winners"] = *req.OverallWinners
	}
	if req.BestGrossAward != nil {
		updates["best_gross_award"] = *req.BestGrossAward
	}
	if req.BestNetAward != nil {
		updates["best_net_award"] = *req.BestNetAward
	}
	if req.ExcludeIncompleteRounds != nil {
		updates["exclude_incomplete_rounds"] = *req.ExcludeIncompleteRounds
	}
	if req.MinimumHolesForRanking != nil {
		if *req.MinimumHolesForRanking < 1 || *req.MinimumHolesForRanking > 18 {
			return c.Status(400).JSON(fiber.Map{"error": "minimum_holes_for_ranking must be between 1 and 18"})
		}
		updates["minimum_holes_for_ranking"] = *req.MinimumHolesForRanking
	}

	if err := s.DB.Model(&cfg).Updates(updates).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "update failed"})
	}
	s.DB.First(&cfg, "event_id = ?", eventID)
	return c.JSON(cfg)
}

// CreateDivision adds a division to an event.
func (s *EventService) CreateDivision(c *fiber.Ctx) error {
	eventID := c.Params("id")
	type Req struct {
		Name               string   `json:"name"`
		Type               string   `json:"type"`
		MinHandicap        *float64 `json:"min_handicap"`
		MaxHandicap        *float64 `json:"max_handicap"`
		Capacity           *int     `json:"capacity"`
		ParentDivisionID   *string  `json:"parent_division_id"`
		UsesCourseHandicap bool     `json:"uses_course_handicap"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name is required"})
	}
	divType := models.DivisionType(req.Type)
	if req.Type == "" {
		divType = models.DivisionMixed
	}
	switch divType {
	case models.DivisionMen, models.DivisionWomen, models.DivisionSenior, models.DivisionVIP, models.DivisionMixed:
	default:
		return c.Status(400).JSON(fiber.Map{"error": "invalid division type"})
	}
	if req.MinHandicap != nil && req.MaxHandicap != nil && *req.MinHandicap > *req.MaxHandicap {
		return c.Status(400).JSON(fiber.Map{"error": "min_handicap must not exceed max_handicap"})
	}

	if err := s.DB.First(&models.Event{}, "id = ?", eventID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "event not found"})
	}
	if req.ParentDivisionID != nil {
		if err := s.DB.First(&models.Division{}, "id = ? AND event_id = ?", *req.ParentDivisionID, eventID).Error; err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "parent_division_id not found in this event"})
		}
	}

	division := &models.Division{
		ID:                 uuid.NewString(),
		EventID:            eventID,
		Name:               req.Name,
		Type:               divType,
		MinHandicap:        req.MinHandicap,
		MaxHandicap:        req.MaxHandicap,
		Capacity:           req.Capacity,
		ParentDivisionID:   req.ParentDivisionID,
		UsesCourseHandicap: req.UsesCourseHandicap,
		Active:             true,
	}
	if err := s.DB.Create(division).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to create division"})
	}
	return c.Status(201).JSON(division)
}

func (s *EventService) UpdateDivision(c *fiber.Ctx) error {
	divisionID := c.Params("division_id")
	type Req struct {
		Name        string   `json:"name"`
		MinHandicap *float64 `json:"min_handicap"`
		MaxHandicap *float64 `json:"max_handicap"`
		Capacity    *int     `json:"capacity"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	var division models.Division
	if err := s.DB.First(&division, "id = ?", divisionID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "division not found"})
	}

	if req.Name != "" {
		division.Name = req.Name
	}
	if req.MinHandicap != nil {
		division.MinHandicap = req.MinHandicap
	}
	if req.MaxHandicap != nil {
		division.MaxHandicap = req.MaxHandicap
	}
	if req.Capacity != nil {
		division.Capacity = req.Capacity
	}
	if division.MinHandicap != nil && division.MaxHandicap != nil && *division.MinHandicap > *division.MaxHandicap {
		return c.Status(400).JSON(fiber.Map{"error": "min_handicap must not exceed max_handicap"})
	}

	if err := s.DB.Save(&division).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "update failed"})
	}
	return c.JSON(division)
}

// DeactivateDivision soft-deactivates a division. Divisions referenced by
// participants are never deleted.
func (s *EventService) DeactivateDivision(c *fiber.Ctx) error {
	divisionID := c.Params("division_id")

	result := s.DB.Model(&models.Division{}).Where("id = ?", divisionID).Update("active", false)
	if result.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "division not found"})
	}
	return c.JSON(fiber.Map{"message": "division deactivated"})
}
