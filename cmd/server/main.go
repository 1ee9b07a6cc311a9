package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/foxxcyber/breakfast-club/internal/config"
	"github.com/foxxcyber/breakfast-club/internal/database"
	"github.com/foxxcyber/breakfast-club/internal/handlers"
	"github.com/foxxcyber/breakfast-club/internal/models"
	"github.com/foxxcyber/breakfast-club/internal/services"
	"github.com/foxxcyber/breakfast-club/internal/store"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.IsDevelopment() && cfg.UsesDefaultJWTSecret() {
		log.Println("Warning: kitchen tokens are signed with the default JWT_SECRET")
	}
	ctx := context.Background()

	// Persistence is optional; without a database state lives in memory
	var repo services.StateRepository
	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := database.RunMigrations(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		repo = db
	} else {
		log.Println("DATABASE_URL not set, attendance and leftovers will not survive a restart")
	}

	st := store.New(models.Attendance{
		Monday:  cfg.DefaultMonday,
		Tuesday: cfg.DefaultTuesday,
	})
	feed := services.NewFeedService(cfg.FeedBaseURL, cfg.FeedLive, cfg.FeedTimeout, cfg.FeedRatePerMinute)
	planning := services.NewPlanningService(st, feed, repo)

	if err := planning.Restore(ctx); err != nil {
		log.Printf("Warning: Could not restore saved state: %v", err)
	}

	// Fetch vendor data for the starting attendance in the background
	go planning.CommitAttendance(ctx)

	var publisher handlers.PlanPublisher
	if cfg.StorageConfigured() {
		p, err := services.NewPlanPublisher(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3Region, cfg.S3PlanKey, cfg.S3UseSSL)
		if err != nil {
			log.Printf("Warning: Failed to initialize plan publisher: %v", err)
		} else {
			if err := p.EnsureBucket(ctx); err != nil {
				log.Printf("Warning: Failed to ensure S3 bucket exists: %v", err)
			}
			publisher = p
			log.Printf("Plan publishing enabled (bucket %s)", p.GetBucketName())
		}
	} else {
		log.Println("Plan publishing is disabled")
	}

	var ocr handlers.TextRecognizer
	if cfg.OCREnabled {
		ocrService, err := services.NewOCRService()
		if err != nil {
			log.Printf("Warning: Failed to initialize OCR service: %v", err)
		} else {
			defer ocrService.Close()
			ocr = ocrService
			log.Println("Stock-take scanning service initialized")
		}
	}

	if !cfg.AuthEnabled() {
		log.Println("KITCHEN_PASSPHRASE_HASH not set, write endpoints are open")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	h := handlers.New(cfg, planning, publisher, ocr)
	handlers.RegisterRoutes(app, h)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
