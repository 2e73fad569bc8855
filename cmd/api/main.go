package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/devconnector/api/internal/api/http"
	"github.com/devconnector/api/internal/api/http/handlers"
	"github.com/devconnector/api/internal/auth"
	"github.com/devconnector/api/internal/config"
	"github.com/devconnector/api/internal/events"
	"github.com/devconnector/api/internal/observability"
	"github.com/devconnector/api/internal/persistence"
	"github.com/devconnector/api/internal/repository"
	"github.com/devconnector/api/internal/service"
	"github.com/devconnector/api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	tokens, err := auth.NewTokenManager(cfg.Auth)
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dependencies := map[string]handlers.Pinger{"redis": redis}

	var (
		userRepo    repository.UserRepository
		profileRepo repository.ProfileRepository
		postRepo    repository.PostRepository
	)
	if pool := pg.PoolHandle(); pool != nil {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		userRepo = repository.NewUserRepository(pool)
		profileRepo = repository.NewProfileRepository(pool)
		postRepo = repository.NewPostRepository(pool)
		dependencies["postgres"] = pg
	} else {
		logger.Warn("using in-memory storage; data will not survive a restart")
		store := repository.NewMemoryStore()
		userRepo, profileRepo, postRepo = store.Users(), store.Profiles(), store.Posts()
	}

	dispatcher := events.NewInMemoryDispatcher()
	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:    userRepo,
		ProfileRepo: profileRepo,
		Dispatcher:  dispatcher,
		Tokens:      tokens,
		Logger:      logger,
	})
	profileService := service.NewProfileService(profileRepo)
	postService := service.NewPostService(postRepo, userRepo, dispatcher, logger)
	githubService := service.NewGitHubService(cfg.GitHub, redis, logger)

	worker.StartEventWorkers(postService, service.NewActivityService(dispatcher, logger))

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, metrics, dependencies),
		Users:          handlers.NewUsersHandler(authService),
		Auth:           handlers.NewAuthHandler(authService),
		Profiles:       handlers.NewProfileHandler(profileService, authService, githubService),
		Posts:          handlers.NewPostsHandler(postService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, logger),
	})

	go func() {
		logger.Info("server starting", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
