package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golf-tournament-system/handlers"
	"golf-tournament-system/middleware"
	"golf-tournament-system/models"
	"golf-tournament-system/services"
	"golf-tournament-system/utils"
	"golf-tournament-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB
	})

	// Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-User-ID, X-User-Roles",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}
	if !utils.StorageConfigured() {
		log.Println("⚠️  R2 credentials not set, exports will be served as direct downloads")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Course{},
		&models.Teebox{},
		&models.Hole{},
		&models.Event{},
		&models.WinnerConfiguration{},
		&models.Division{},
		&models.Participant{},
		&models.HoleScore{},
		&models.ScoreAudit{},
		&models.WinnerResult{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	scoreService := services.NewScoreService(db)
	eventService := services.NewEventService(db, scoreService)
	courseService := services.NewCourseService(db)
	participantService := services.NewParticipantService(db)
	winnerService := services.NewWinnerService(db)
	leaderboardService := services.NewLeaderboardService(db)
	exportService := services.NewExportService(db, leaderboardService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go workers.WarmLeaderboards(ctx, db, leaderboardService, 10*time.Second)

	eventService.StartEventScheduler()

	handlers.SetupEventRoutes(app, eventService, participantService, scoreService, winnerService, leaderboardService, exportService)
	handlers.SetupCourseRoutes(app, courseService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Leaderboard warm worker running (every 10s)")
	log.Println("✅ Event scheduler running")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
