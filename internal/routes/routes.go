package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/hearthstack/household-backend/internal/config"
	"github.com/hearthstack/household-backend/internal/handlers"
	"github.com/hearthstack/household-backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	toolHandler *handlers.ToolHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
	billingHandler *handlers.BillingHandler,
	calendarHandler *handlers.CalendarHandler,
	documentHandler *handlers.DocumentHandler,
	petHandler *handlers.PetHandler,
	goalHandler *handlers.GoalHandler,
	shoppingHandler *handlers.ShoppingHandler,
	settingsHandler *handlers.SettingsHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (public)
	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected auth actions
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	// Tool catalog — browsing is public, listing defaults to active tools
	api.Get("/tools", toolHandler.List)
	api.Get("/tools/:id", toolHandler.Get)

	// Everything below requires a session
	protected := api.Group("", middleware.JWTProtected(cfg))

	// Subscriptions
	protected.Get("/subscriptions", subscriptionHandler.List)
	protected.Post("/subscriptions", subscriptionHandler.Purchase)
	protected.Post("/subscriptions/:id/cancel", subscriptionHandler.Cancel)

	// Billing
	protected.Get("/billing", billingHandler.ListActive)
	protected.Get("/billing/history", billingHandler.ListHistory)
	protected.Post("/billing/sync", billingHandler.Sync)

	// Calendar
	protected.Get("/calendar/events", calendarHandler.List)
	protected.Post("/calendar/events", calendarHandler.Create)
	protected.Delete("/calendar/events/:id", calendarHandler.Delete)
	protected.Get("/calendar/:year/:month", calendarHandler.Month)

	// Documents
	protected.Get("/documents", documentHandler.List)
	protected.Post("/documents", documentHandler.Upload)
	protected.Get("/documents/:id/download", documentHandler.Download)
	protected.Delete("/documents/:id", documentHandler.Delete)

	// Pets
	protected.Get("/pets", petHandler.List)
	protected.Post("/pets", petHandler.Create)
	protected.Put("/pets/:id", petHandler.Update)
	protected.Delete("/pets/:id", petHandler.Delete)

	// Goals
	protected.Get("/goals", goalHandler.List)
	protected.Post("/goals", goalHandler.Create)
	protected.Put("/goals/:id/progress", goalHandler.UpdateProgress)
	protected.Delete("/goals/:id", goalHandler.Delete)

	// Shopping lists
	protected.Get("/shopping/lists", shoppingHandler.Lists)
	protected.Post("/shopping/lists", shoppingHandler.CreateList)
	protected.Post("/shopping/lists/:id/items", shoppingHandler.AddItem)
	protected.Put("/shopping/lists/:id/items/:itemId/toggle", shoppingHandler.ToggleItem)
	protected.Delete("/shopping/lists/:id", shoppingHandler.DeleteList)

	// Admin (protected + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Post("/tools", toolHandler.Create)
	admin.Put("/tools/:id", toolHandler.Update)
	admin.Delete("/tools/:id", toolHandler.Delete)
	admin.Post("/subscriptions/activate-trials", subscriptionHandler.ActivateExpiredTrials)
	admin.Post("/subscriptions/:id/activate", subscriptionHandler.Activate)
	admin.Get("/settings/:key", settingsHandler.Get)
	admin.Put("/settings/:key", settingsHandler.Set)

	// Internal — nightly billing run, guarded by the cron secret
	internal := app.Group("/internal", middleware.CronSecretRequired(cfg))
	internal.Post("/billing/run", billingHandler.RunNightly)
}
