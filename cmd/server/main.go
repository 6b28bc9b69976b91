package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	docs "reputation_server/docs"
	"reputation_server/internal/config"
	"reputation_server/internal/infra/db"
	applogger "reputation_server/internal/infra/logger"
	"reputation_server/internal/infra/privacyclient"
	"reputation_server/internal/infra/repository"
	"reputation_server/internal/ratelimit"
	httptransport "reputation_server/internal/transport/http"
	"reputation_server/internal/usecase"
)

// @title Agent Reputation Server API
// @version 1.0
// @description API for trading-agent metrics aggregation, privacy-preserving proofs, and reputation scoring.
// @BasePath /api/v1

func main() {
	rootCtx := context.Background()

	applogger.Init("info") // Initialize with default level first
	logger := applogger.Logger

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	applogger.Init(cfg.LogLevel)
	logger = applogger.Logger
	logger.Info().Str("level", cfg.LogLevel).Msg("logger initialized")

	docs.SwaggerInfo.Title = "Agent Reputation Server API"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Description = "API for trading-agent metrics aggregation, privacy-preserving proofs, and reputation scoring."
	docs.SwaggerInfo.BasePath = "/api/v1"

	conn := connectDatabase(rootCtx, cfg.Database.DSN, logger)
	if conn != nil {
		if sqlDB, err := conn.DB(); err == nil {
			defer sqlDB.Close()
		}
	}

	privacy, err := privacyclient.New(cfg.Privacy.URL, cfg.Privacy.Timeout)
	if err != nil {
		logger.Fatal().Err(err).Msg("init privacy client")
	}
	logger.Info().Str("url", cfg.Privacy.URL).Dur("timeout", cfg.Privacy.Timeout).Msg("privacy client initialized")

	store, err := repository.NewStore(repository.NewMemoryStore(), conn, cfg.Privacy.Timeout, applogger.Component("store"))
	if err != nil {
		logger.Fatal().Err(err).Msg("init store")
	}

	vault := usecase.NewVaultService(bcrypt.DefaultCost)

	metricsService, err := usecase.NewMetricsService(store, store, vault, privacy, applogger.Component("metrics"))
	if err != nil {
		logger.Fatal().Err(err).Msg("init metrics service")
	}
	proofService, err := usecase.NewProofService(store, store, privacy, applogger.Component("proofs"))
	if err != nil {
		logger.Fatal().Err(err).Msg("init proof service")
	}
	reputationService, err := usecase.NewReputationService(store, store, store, privacy, applogger.Component("reputation"))
	if err != nil {
		logger.Fatal().Err(err).Msg("init reputation service")
	}

	if store.DurableEnabled() {
		if err := store.Warm(rootCtx); err != nil {
			logger.Warn().Err(err).Msg("cache hydration failed, starting empty")
		} else if err := metricsService.Warm(rootCtx); err != nil {
			logger.Warn().Err(err).Msg("credential vault warm failed")
		}
	}

	logger.Info().Msg("all services initialized")

	limiter := ratelimit.New(cfg.RateLimit.Max, cfg.RateLimit.Window, cfg.RateLimit.BlockFor)

	router := httptransport.New(metricsService, proofService, reputationService, store, limiter)

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal().Err(err).Msg("init scheduler")
	}
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			logger.Error().Err(err).Msg("scheduler shutdown error")
		}
	}()

	_, err = scheduler.NewJob(
		gocron.DurationJob(cfg.Sweep.ProofInterval),
		gocron.NewTask(func(ctx context.Context) {
			if _, err := proofService.SweepExpired(ctx); err != nil {
				logger.Error().Err(err).Msg("proof sweep error")
			}
		}),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("schedule proof sweep")
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(cfg.Sweep.RateLimitInterval),
		gocron.NewTask(func() {
			if evicted := limiter.Sweep(); evicted > 0 {
				logger.Debug().Int("evicted", evicted).Msg("rate limiter entries evicted")
			}
		}),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("schedule rate limit sweep")
	}

	scheduler.Start()
	logger.Info().
		Dur("proof_sweep", cfg.Sweep.ProofInterval).
		Dur("ratelimit_sweep", cfg.Sweep.RateLimitInterval).
		Msg("scheduler started")

	serverErr := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info().Str("addr", addr).Msg("server listening")
		serverErr <- router.App().Listen(addr)
	}()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Fatal().Err(err).Msg("fiber server error")
		}
	case sig := <-signalCh:
		logger.Info().Str("signal", sig.String()).Msg("received signal, shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := router.App().ShutdownWithContext(ctx); err != nil {
			logger.Error().Err(err).Msg("server shutdown error")
		}
		logger.Info().Msg("server shutdown complete")
	}
}

// connectDatabase opens and migrates the durable backend. Any failure logs a
// warning and returns nil; the store then runs cache-only.
func connectDatabase(ctx context.Context, dsn string, logger zerolog.Logger) *gorm.DB {
	logger.Info().Str("dsn", maskDSN(dsn)).Msg("connecting to database")

	conn, err := db.Connect(ctx, dsn)
	if err != nil {
		logger.Warn().Err(err).Msg("database unavailable, running cache-only")
		return nil
	}

	if err := db.ApplyMigrations(ctx, conn); err != nil {
		logger.Warn().Err(err).Msg("migrations failed, running cache-only")
		if sqlDB, derr := conn.DB(); derr == nil {
			_ = sqlDB.Close()
		}
		return nil
	}

	logger.Info().Msg("database connected successfully")
	return conn
}

func maskDSN(dsn string) string {
	// Simple masking to hide credentials in logs
	if len(dsn) > 20 {
		return dsn[:10] + "***" + dsn[len(dsn)-10:]
	}
	return "***"
}
