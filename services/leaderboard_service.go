package services

import (
	"errors"
	"log"
	"sync"
	"time"

	"golf-tournament-system/models"
	"golf-tournament-system/scoring"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// leaderboardTTL bounds staleness on the interactive read path. The board is
// recomputed from stored scores when the cached copy is older than this.
const leaderboardTTL = 5 * time.Second

type cachedBoard struct {
	entries []scoring.LeaderboardEntry
	builtAt time.Time
}

type LeaderboardService struct {
	DB *gorm.DB

	mu    sync.RWMutex
	cache map[string]cachedBoard // unfiltered board per event
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{DB: db, cache: make(map[string]cachedBoard)}
}

// GetLeaderboard returns the ranked board for an event. Query params:
// division_id, min_holes, max_rank. All are applied after ranking so a
// filtered view keeps event-wide ranks.
func (s *LeaderboardService) GetLeaderboard(c *fiber.Ctx) error {
	eventID := c.Params("id")

	entries, err := s.board(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "event not found"})
		}
		log.Printf("ERROR assembling leaderboard for event %s: %v", eventID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to assemble leaderboard"})
	}

	filter := scoring.LeaderboardFilter{
		DivisionID: c.Query("division_id"),
		MinHoles:   c.QueryInt("min_holes"),
		MaxRank:    c.QueryInt("max_rank"),
	}
	filtered := applyBoardFilter(entries, filter)

	return c.JSON(fiber.Map{
		"event_id": eventID,
		"entries":  filtered,
	})
}

// board returns the unfiltered board, serving from cache inside the TTL.
func (s *LeaderboardService) board(eventID string) ([]scoring.LeaderboardEntry, error) {
	s.mu.RLock()
	cached, ok := s.cache[eventID]
	s.mu.RUnlock()
	if ok && time.Since(cached.builtAt) < leaderboardTTL {
		return cached.entries, nil
	}

	entries, err := s.Rebuild(eventID)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Rebuild recomputes and caches the full board for an event. Also used by the
// warm worker for active events.
func (s *LeaderboardService) Rebuild(eventID string) ([]scoring.LeaderboardEntry, error) {
	var event models.Event
	if err := s.DB.Preload("Configuration").Preload("Divisions").
		First(&event, "id = ?", eventID).Error; err != nil {
		return nil, err
	}

	strategy, err := scoring.StrategyFor(event.ScoringType)
	if err != nil {
		return nil, err
	}
	method := models.TieBreakCountback
	if event.Configuration != nil {
		method = event.Configuration.TieBreakMethod
	}

	divByID := make(map[string]*models.Division, len(event.Divisions))
	for i := range event.Divisions {
		divByID[event.Divisions[i].ID] = &event.Divisions[i]
	}

	var participants []models.Participant
	if err := s.DB.Where("event_id = ?", eventID).Find(&participants).Error; err != nil {
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

	entries := scoring.AssembleLeaderboard(strategy, method, rounds, scoring.LeaderboardFilter{})

	s.mu.Lock()
	s.cache[eventID] = cachedBoard{entries: entries, builtAt: time.Now()}
	s.mu.Unlock()
	return entries, nil
}

// Invalidate drops the cached board, forcing the next read to recompute.
func (s *LeaderboardService) Invalidate(eventID string) {
	s.mu.Lock()
	delete(s.cache, eventID)
	s.mu.Unlock()
}

func applyBoardFilter(entries []scoring.LeaderboardEntry, filter scoring.LeaderboardFilter) []scoring.LeaderboardEntry {
	if filter.DivisionID == "" && filter.MinHoles == 0 && filter.MaxRank == 0 {
		return entries
	}
	out := make([]scoring.LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		if filter.DivisionID != "" && (e.DivisionID == nil || *e.DivisionID != filter.DivisionID) {
			continue
		}
		if filter.MinHoles > 0 && e.HolesCompleted < filter.MinHoles {
			continue
		}
		if filter.MaxRank > 0 && (e.Rank == 0 || e.Rank > filter.MaxRank) {
			continue
		}
		out = append(out, e)
	}
	return out
}
