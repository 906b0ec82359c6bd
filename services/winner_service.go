package services

import (
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"golf-tournament-system/models"
	"golf-tournament-system/scoring"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WinnerService struct {
	DB *gorm.DB

	// One lock per event so concurrent recalculation requests conflict
	// instead of racing each other.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewWinnerService(db *gorm.DB) *WinnerService {
	return &WinnerService{DB: db, locks: make(map[string]*sync.Mutex)}
}

func (s *WinnerService) eventLock(eventID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[eventID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[eventID] = l
	}
	return l
}

// CalculateWinners runs the winner pipeline for an event and replaces the
// persisted result set. A second request while one is running gets 409 rather
// than queueing behind it.
func (s *WinnerService) CalculateWinners(c *fiber.Ctx) error {
	eventID := c.Params("id")

	lock := s.eventLock(eventID)
	if !lock.TryLock() {
		return c.Status(409).JSON(fiber.Map{"error": scoring.ErrRecalculationInProgress.Error()})
	}
	defer lock.Unlock()

	var event models.Event
	if err := s.DB.Preload("Configuration").Preload("Divisions").
		First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "event not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error fetching event"})
	}
	if event.Configuration == nil {
		return c.Status(422).JSON(fiber.Map{"error": scoring.ErrConfigurationMissing.Error()})
	}

	strategy, err := scoring.StrategyFor(event.ScoringType)
	if err != nil {
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}

	rounds, err := s.buildRounds(eventID, event.Divisions)
	if err != nil {
		log.Printf("ERROR building rounds for event %s: %v", eventID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to load round data"})
	}

	var rng *rand.Rand
	if event.Configuration.TieBreakMethod == models.TieBreakRandom {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	results, reassignments := scoring.CalculateWinners(strategy, *event.Configuration, event.Divisions, rounds, rng)

	calculatedAt := time.Now()
	for i := range results {
		results[i].ID = uuid.NewString()
		results[i].EventID = eventID
		results[i].CalculatedAt = calculatedAt
	}

	// Replace-all in one transaction: a failure leaves the previous set intact.
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", eventID).Delete(&models.WinnerResult{}).Error; err != nil {
			return err
		}
		for i := range results {
			if err := tx.Create(&results[i]).Error; err != nil {
				return err
			}
		}
		for _, r := range reassignments {
			if err := tx.Model(&models.Participant{}).
				Where("id = ?", r.ParticipantID).
				Update("division_id", r.ToDivisionID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("ERROR persisting winners for event %s: %v", eventID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to persist winner results"})
	}

	return c.JSON(fiber.Map{
		"event_id":      eventID,
		"calculated_at": calculatedAt,
		"winners":       results,
		"reassignments": reassignments,
	})
}

// GetWinners returns the last persisted winner set, grouped by category.
func (s *WinnerService) GetWinners(c *fiber.Ctx) error {
	eventID := c.Params("id")

	if err := s.DB.First(&models.Event{}, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "event not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	var results []models.WinnerResult
	if err := s.DB.Where("event_id = ?", eventID).
		Order("category ASC, rank ASC, player_name ASC").
		Find(&results).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch winners"})
	}

	grouped := make(map[models.AwardCategory][]models.WinnerResult)
	for _, r := range results {
		grouped[r.Category] = append(grouped[r.Category], r)
	}
	var calculatedAt *time.Time
	if len(results) > 0 {
		calculatedAt = &results[0].CalculatedAt
	}

	return c.JSON(fiber.Map{
		"event_id":      eventID,
		"calculated_at": calculatedAt,
		"best_gross":    grouped[models.AwardBestGross],
		"best_net":      grouped[models.AwardBestNet],
		"overall":       grouped[models.AwardOverall],
		"divisions":     grouped[models.AwardDivision],
		"disqualified":  grouped[models.AwardDisqualified],
	})
}

// buildRounds materializes every participant's round for the pipeline.
func (s *WinnerService) buildRounds(eventID string, divisions []models.Division) ([]scoring.ParticipantRound, error) {
	divByID := make(map[string]*models.Division, len(divisions))
	for i := range divisions {
		divByID[divisions[i].ID] = &divisions[i]
	}

	var participants []models.Participant
	if err := s.DB.Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&participants).Error; err != nil {
		return nil, err
	}

	var allScores []models.HoleScore
	if err := s.DB.Where("event_id = ?", eventID).Find(&allScores).Error; err != nil {
		return nil, err
	}
	scoresByParticipant := make(map[string][]models.HoleScore)
	for _, sc := range allScores {
		scoresByParticipant[sc.ParticipantID] = append(scoresByParticipant[sc.ParticipantID], sc)
	}

	rounds := make([]scoring.ParticipantRound, 0, len(participants))
	for _, p := range participants {
		var division *models.Division
		if p.DivisionID != nil {
			division = divByID[*p.DivisionID]
		}
		rounds = append(rounds, scoring.BuildRound(p, division, scoresByParticipant[p.ID]))
	}
	return rounds, nil
}
