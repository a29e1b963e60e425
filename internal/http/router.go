package http

import (
	"time"

	"github.com/frontend-dashboard/backend/internal/config"
	"github.com/frontend-dashboard/backend/internal/http/handlers"
	"github.com/frontend-dashboard/backend/internal/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	memberHandler *handlers.MemberHandler,
	taxonomyHandler *handlers.TaxonomyHandler,
	logHandler *handlers.LogHandler,
	summaryHandler *handlers.SummaryHandler,
	activityHandler *handlers.ActivityHandler,
	optionsHandler *handlers.OptionsHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Auth (public)
	api.Post("/auth/login", authHandler.Login)

	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	// Members
	protected.Get("/members", memberHandler.List)
	protected.Post("/members", memberHandler.Create)
	protected.Put("/members/:id", memberHandler.Update)

	// Taxonomy settings
	protected.Get("/convention-types", taxonomyHandler.ListTypes)
	protected.Post("/convention-types", taxonomyHandler.CreateType)
	protected.Put("/convention-types/:id", taxonomyHandler.UpdateType)
	protected.Delete("/convention-types/:id", taxonomyHandler.DeleteType)

	protected.Get("/topics", taxonomyHandler.ListTopics)
	protected.Post("/topics", taxonomyHandler.CreateTopic)
	protected.Put("/topics/:id", taxonomyHandler.UpdateTopic)
	protected.Delete("/topics/:id", taxonomyHandler.DeleteTopic)

	protected.Get("/rules", taxonomyHandler.ListRules)
	protected.Post("/rules", taxonomyHandler.CreateRule)
	protected.Put("/rules/:id", taxonomyHandler.UpdateRule)
	protected.Delete("/rules/:id", taxonomyHandler.DeleteRule)

	protected.Get("/actions", taxonomyHandler.ListActions)
	protected.Post("/actions", taxonomyHandler.CreateAction)
	protected.Put("/actions/:id", taxonomyHandler.UpdateAction)
	protected.Delete("/actions/:id", taxonomyHandler.DeleteAction)

	// Logging form options
	protected.Get("/options/form", optionsHandler.Snapshot)
	protected.Get("/options/topics", optionsHandler.TopicsForType)
	protected.Get("/options/actions", optionsHandler.ActionsForTopic)

	// Convention logs
	protected.Post("/convention-logs", logHandler.Create)
	protected.Put("/convention-logs/:id", logHandler.Update)
	protected.Delete("/convention-logs/:id", logHandler.Delete)
	protected.Get("/convention-logs/latest", logHandler.Latest)
	protected.Get("/convention-logs", logHandler.ByDateRange)
	protected.Get("/convention-logs/export", logHandler.Export)

	// Summary table
	protected.Get("/summary", summaryHandler.List)

	// Activity trail
	protected.Get("/activity-log", activityHandler.List)
	protected.Get("/activity-log/export", activityHandler.Export)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
