package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Manohar-jami/Job-Portal-Api/internal/auth"
	"github.com/Manohar-jami/Job-Portal-Api/internal/config"
	"github.com/Manohar-jami/Job-Portal-Api/internal/database"
	"github.com/Manohar-jami/Job-Portal-Api/internal/logger"
	"github.com/Manohar-jami/Job-Portal-Api/internal/middleware"
	"github.com/Manohar-jami/Job-Portal-Api/internal/repository"
	"github.com/Manohar-jami/Job-Portal-Api/internal/server"
	"github.com/Manohar-jami/Job-Portal-Api/internal/services"
	"github.com/Manohar-jami/Job-Portal-Api/internal/tracing"
)

func main() {
	// 1. Load Environment Variables (.env is optional)
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Init("info", "console")
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		log.Warn().Err(envErr).Msg("Could not read .env file")
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		shutdown, err := tracing.InitTracer("job-portal-api", os.Stdout)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialise tracing")
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(sctx)
		}()
	}

	// 2. Storage
	store, closeStore := openStore(cfg)
	defer closeStore()

	// 3. Optional collaborators
	var llmService *services.LLMService
	if cfg.GeminiAPIKey != "" {
		llmService, err = services.NewLLMService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Warn().Err(err).Msg("Job extraction disabled")
		}
	} else {
		log.Info().Msg("GEMINI_API_KEY not set, job extraction disabled")
	}

	var limiter middleware.Limiter
	switch {
	case cfg.ApplyRatePerMinute == 0:
		log.Info().Msg("APPLY_RATE_PER_MINUTE is 0, apply rate limiting disabled")
	case cfg.RedisURL != "":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid REDIS_URL")
		}
		client := redis.NewClient(opts)
		defer client.Close()
		limiter = middleware.NewRedisLimiter(client, cfg.ApplyRatePerMinute, time.Minute)
	default:
		memLimiter := middleware.NewMemoryLimiter(cfg.ApplyRatePerMinute)
		memLimiter.StartCleanup(ctx, time.Minute)
		limiter = memLimiter
	}

	// 4. Router
	router, err := server.NewRouter(server.Dependencies{
		Store:               store,
		Tokens:              auth.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		LLM:                 llmService,
		ApplyLimiter:        limiter,
		EnforceJobOwnership: cfg.EnforceJobOwnership,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build router")
	}

	var handler http.Handler = router
	if cfg.TracingEnabled {
		handler = otelhttp.NewHandler(router, "job-portal-api")
	}
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           http.TimeoutHandler(handler, cfg.RequestTimeout, `{"error":"Request timed out"}`),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("store", cfg.Store).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

func openStore(cfg *config.Config) (*repository.Store, func()) {
	if cfg.Store == config.StoreMemory {
		log.Warn().Msg("Using in-memory store; data is lost on restart")
		return repository.NewMemoryStore(), func() {}
	}
	db, err := database.Connect(database.Options{
		DSN:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	return repository.NewGormStore(db), func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
