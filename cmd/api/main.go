// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/paywall-api/internal/admin"
	"github.com/carterperez-dev/paywall-api/internal/auth"
	"github.com/carterperez-dev/paywall-api/internal/behavior"
	"github.com/carterperez-dev/paywall-api/internal/config"
	"github.com/carterperez-dev/paywall-api/internal/content"
	"github.com/carterperez-dev/paywall-api/internal/core"
	"github.com/carterperez-dev/paywall-api/internal/health"
	"github.com/carterperez-dev/paywall-api/internal/middleware"
	"github.com/carterperez-dev/paywall-api/internal/paywall"
	"github.com/carterperez-dev/paywall-api/internal/server"
	"github.com/carterperez-dev/paywall-api/internal/subscription"
	"github.com/carterperez-dev/paywall-api/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	contentRepo := content.NewRepository(db.DB)
	contentSvc := content.NewService(contentRepo)

	subRepo := subscription.NewRepository(db.DB)
	charger := subscription.NewStripeCharger(cfg.Payment.StripeAPIKey)
	subSvc := subscription.NewService(subRepo, charger, cfg.Payment.Currency)
	subHandler := subscription.NewHandler(subSvc)

	behaviorRepo := behavior.NewRepository(db.DB)
	behaviorSvc := behavior.NewService(behaviorRepo, subSvc)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo, user.ProfileDeps{
		ActiveSubscription: subSvc.ActiveSummaryForUser,
		InteractionStats:   behaviorSvc.InteractionStats,
	})
	userHandler := user.NewHandler(userSvc)

	authSvc := auth.NewService(jwtManager, userSvc)
	authHandler := auth.NewHandler(authSvc)

	model := paywall.NewDecisionTree(cfg.Model.MaxDepth)
	var source paywall.TrainingDataSource
	switch cfg.Model.Source {
	case "historical":
		source = paywall.HistoricalSource{Store: behaviorSvc}
	default:
		source = paywall.SyntheticSource{
			Samples: cfg.Model.SyntheticSamples,
			Seed:    cfg.Model.Seed,
		}
	}

	trainStart := time.Now()
	if err := model.TrainFrom(ctx, source); err != nil {
		return fmt.Errorf("train fallback model: %w", err)
	}
	logger.Info("fallback model trained",
		"source", cfg.Model.Source,
		"max_depth", cfg.Model.MaxDepth,
		"duration", time.Since(trainStart).String(),
	)

	verdictCache := paywall.NewRedisVerdictCache(
		redis.Client,
		cfg.Cache.KeyPrefix,
	)

	engine := paywall.NewEngine(
		contentSvc,
		subSvc,
		verdictCache,
		paywall.NewExtractor(behaviorSvc),
		model,
		behaviorSvc,
		logger,
	)
	contentHandler := content.NewHandler(engine)

	healthHandler := health.NewHandler(db, redis, model.Trained)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		CacheStats: verdictCache.Stats,
		ContentSvc: contentSvc,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(jwtManager)
	adminOnly := middleware.RequireAdmin

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterRoutes(r, authenticator)
		contentHandler.RegisterRoutes(r, authenticator)
		subHandler.RegisterRoutes(r, authenticator)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
