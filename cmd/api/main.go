package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/frontend-dashboard/backend/internal/config"
	"github.com/frontend-dashboard/backend/internal/db"
	"github.com/frontend-dashboard/backend/internal/events"
	apphttp "github.com/frontend-dashboard/backend/internal/http"
	"github.com/frontend-dashboard/backend/internal/http/handlers"
	"github.com/frontend-dashboard/backend/internal/repositories"
	"github.com/frontend-dashboard/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	memberRepo := repositories.NewMemberRepo(pool)
	typeRepo := repositories.NewTypeRepo(pool)
	topicRepo := repositories.NewTopicRepo(pool)
	ruleRepo := repositories.NewRuleRepo(pool)
	actionRepo := repositories.NewActionRepo(pool)
	logRepo := repositories.NewLogRepo(pool)
	summaryRepo := repositories.NewSummaryRepo(pool)
	activityRepo := repositories.NewActivityRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Services
	optionsService := services.NewFormOptionsService(memberRepo, typeRepo, topicRepo, actionRepo, rdb, cfg.FormOptionsCacheTTL, log)
	taxonomyService := services.NewTaxonomyService(typeRepo, topicRepo, ruleRepo, actionRepo, activityRepo, optionsService, publisher, log)
	logService := services.NewLogService(logRepo, summaryRepo, memberRepo, topicRepo, actionRepo, activityRepo, publisher, log)
	summaryService := services.NewSummaryService(memberRepo, summaryRepo)
	activityService := services.NewActivityService(activityRepo, cfg.ReportLocation(), cfg.ActivityDefaultLimit, cfg.ActivityExportLimit)
	memberService := services.NewMemberService(memberRepo, activityRepo, optionsService)

	// Handlers
	authHandler := handlers.NewAuthHandler(memberService, cfg, log)
	memberHandler := handlers.NewMemberHandler(memberService, log)
	taxonomyHandler := handlers.NewTaxonomyHandler(taxonomyService, log)
	logHandler := handlers.NewLogHandler(logService, cfg, log)
	summaryHandler := handlers.NewSummaryHandler(summaryService, log)
	activityHandler := handlers.NewActivityHandler(activityService, log)
	optionsHandler := handlers.NewOptionsHandler(optionsService, log)
	wsHub := handlers.NewWSHub(cfg, subscriber, log)

	// Start WS hub
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb,
		authHandler, memberHandler, taxonomyHandler, logHandler,
		summaryHandler, activityHandler, optionsHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
