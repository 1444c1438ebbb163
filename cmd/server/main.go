package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/hearthstack/household-backend/internal/config"
	"github.com/hearthstack/household-backend/internal/database"
	"github.com/hearthstack/household-backend/internal/handlers"
	"github.com/hearthstack/household-backend/internal/logging"
	"github.com/hearthstack/household-backend/internal/middleware"
	"github.com/hearthstack/household-backend/internal/models"
	"github.com/hearthstack/household-backend/internal/routes"
	"github.com/hearthstack/household-backend/internal/scheduler"
	"github.com/hearthstack/household-backend/internal/services"
	"github.com/hearthstack/household-backend/internal/storage"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Object storage for household documents
	var store *storage.ObjectStore
	if cfg.S3Bucket != "" {
		var err error
		store, err = storage.NewObjectStore(context.Background(), cfg)
		if err != nil {
			slog.Error("object store init failed", "bucket", cfg.S3Bucket, "error", err)
			os.Exit(1)
		}
		slog.Info("object store ready", "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("S3_BUCKET not set, document uploads disabled")
	}

	// Services
	settingsService := services.NewSettingsService(database.DB, cfg.PlatformFeeDefault)
	billingService := services.NewBillingService(database.DB, settingsService)
	billingProcessor := services.NewBillingProcessor(database.DB, billingService)
	authService := services.NewAuthService(database.DB, cfg)
	toolService := services.NewToolService(database.DB)
	subscriptionService := services.NewSubscriptionService(database.DB, billingService, cfg.TrialDays)
	calendarService := services.NewCalendarService(database.DB)
	documentService := services.NewDocumentService(database.DB, store)
	petService := services.NewPetService(database.DB)
	goalService := services.NewGoalService(database.DB)
	shoppingService := services.NewShoppingService(database.DB)

	// Seed the platform fee so admins see the effective value
	if _, err := settingsService.Get(models.SettingPlatformFeeAmount); err != nil {
		val := strconv.FormatFloat(cfg.PlatformFeeDefault, 'f', 2, 64)
		if err := settingsService.Set(models.SettingPlatformFeeAmount, val); err != nil {
			slog.Error("failed to seed platform fee setting", "error", err)
		}
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, cfg)
	healthHandler := handlers.NewHealthHandler()
	toolHandler := handlers.NewToolHandler(toolService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	billingHandler := handlers.NewBillingHandler(billingService, billingProcessor)
	calendarHandler := handlers.NewCalendarHandler(calendarService)
	documentHandler := handlers.NewDocumentHandler(documentService)
	petHandler := handlers.NewPetHandler(petService)
	goalHandler := handlers.NewGoalHandler(goalService)
	shoppingHandler := handlers.NewShoppingHandler(shoppingService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    25 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, database.DB,
		authHandler, healthHandler, toolHandler, subscriptionHandler,
		billingHandler, calendarHandler, documentHandler, petHandler,
		goalHandler, shoppingHandler, settingsHandler)

	// In-process nightly billing, if enabled
	var sched *scheduler.Scheduler
	if cfg.CronEnabled {
		sched = scheduler.New(billingProcessor)
		if err := sched.Start(cfg.CronSchedule); err != nil {
			slog.Error("scheduler start failed", "schedule", cfg.CronSchedule, "error", err)
			os.Exit(1)
		}
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if sched != nil {
		sched.Stop()
	}
	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
