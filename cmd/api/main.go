package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/siports/event-service/internal/api/http"
	"github.com/siports/event-service/internal/api/http/handlers"
	"github.com/siports/event-service/internal/auth"
	"github.com/siports/event-service/internal/chatbot"
	"github.com/siports/event-service/internal/config"
	"github.com/siports/event-service/internal/events"
	"github.com/siports/event-service/internal/observability"
	"github.com/siports/event-service/internal/persistence"
	"github.com/siports/event-service/internal/repository"
	"github.com/siports/event-service/internal/service"
	"github.com/siports/event-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	statusRepo := repository.NewStatusRepository(pool)
	packageRepo := repository.NewPackageRepository(pool)
	chatRepo := repository.NewChatRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	profileRepo := repository.NewMatchProfileRepository(pool)
	interactionRepo := repository.NewInteractionRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg.Auth, userRepo, dispatcher)
	adminService := service.NewAdminService(userRepo, dispatcher, redis.Handle(), cfg.Chat.StatsTTL())
	statusService := service.NewStatusService(statusRepo)
	packageService := service.NewPackageService(packageRepo, userRepo, dispatcher)
	chatService := service.NewChatService(chatbot.NewRuleset(), chatRepo, redis.Handle(), cfg.Chat.SessionTTL(), logger)
	messageService := service.NewMessageService(messageRepo, userRepo, dispatcher)
	matchService := service.NewMatchService(profileRepo, interactionRepo, userRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notify)

	if err := authService.SeedAccounts(ctx, logger); err != nil {
		logger.Warn("account seeding failed", zap.Error(err))
	}

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.App.CORSAllowOrigins)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, chatService, cfg.App.HealthTimeout()),
		Status:         handlers.NewStatusHandler(statusService),
		Auth:           handlers.NewAuthHandler(authService),
		Admin:          handlers.NewAdminHandler(adminService),
		Packages:       handlers.NewPackageHandler(packageService),
		Chat:           handlers.NewChatHandler(chatService),
		Messages:       handlers.NewMessageHandler(messageService),
		Matching:       handlers.NewMatchHandler(matchService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
