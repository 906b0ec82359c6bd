package handlers

import (
	"golf-tournament-system/middleware"
	"golf-tournament-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupEventRoutes(
	app *fiber.App,
	events *services.EventService,
	participants *services.ParticipantService,
	scores *services.ScoreService,
	winners *services.WinnerService,
	leaderboard *services.LeaderboardService,
	export *services.ExportService,
) {
	// Public read-only routes: live boards and results.
	app.Get("/events/:id/leaderboard", leaderboard.GetLeaderboard)
	app.Get("/events/:id/leaderboard/stream", leaderboard.StreamLeaderboardSSE)
	app.Get("/events/:id/winners", winners.GetWinners)

	// Authenticated routes
	secured := app.Group("/", middleware.UserContextMiddleware())

	// Event CRUD
	secured.Post("/events", events.CreateEvent)
	secured.Get("/events", events.GetAllEvents)
	secured.Get("/events/:id", events.GetEventByID)
	secured.Put("/events/:id", events.UpdateEvent)
	secured.Delete("/events/:id", events.DeleteEvent)
	secured.Patch("/events/:id/status", events.UpdateEventStatus)

	// Winner configuration
	secured.Patch("/events/:id/configuration", events.UpdateConfiguration)

	// Divisions
	secured.Post("/events/:id/divisions", events.CreateDivision)
	secured.Put("/events/:id/divisions/:division_id", events.UpdateDivision)
	secured.Patch("/events/:id/divisions/:division_id/deactivate", events.DeactivateDivision)

	// Participants
	secured.Post("/events/:id/participants", participants.RegisterParticipant)
	secured.Get("/events/:id/participants", participants.GetEventParticipants)
	secured.Put("/events/:id/participants/:participant_id", participants.UpdateParticipant)
	secured.Delete("/events/:id/participants/:participant_id", participants.RemoveParticipant)

	// Score entry and corrections
	secured.Post("/events/:id/participants/:participant_id/scores", scores.RecordHoleScore)
	secured.Get("/events/:id/participants/:participant_id/scores", scores.GetParticipantScores)
	secured.Delete("/events/:id/participants/:participant_id/scores/:hole_number", scores.DeleteHoleScore)

	// Winner calculation and export
	secured.Post("/events/:id/winners/calculate", winners.CalculateWinners)
	secured.Get("/events/:id/export", export.ExportEvent)
}
