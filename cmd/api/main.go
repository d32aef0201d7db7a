package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brandongraves08/packstack/config"
	httpHandler "github.com/brandongraves08/packstack/internal/adapter/http/handler"
	redisStorage "github.com/brandongraves08/packstack/internal/adapter/storage/redis"
	"github.com/brandongraves08/packstack/internal/core/ports"
	"github.com/brandongraves08/packstack/internal/service"
	"github.com/brandongraves08/packstack/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting PackStack gateway")

	ctx := context.Background()

	// Redis is optional: without it the gateway runs with caching and rate
	// limiting disabled.
	var searchCache ports.SearchCache
	var rateLimitStore *redisStorage.RateLimitStore
	var healthCheckers []ports.HealthChecker
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()

		searchCache = redisStorage.NewSearchCache(rdb)
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
	} else {
		log.Info().Msg("Redis disabled, running without cache and rate limiting")
	}

	// Provider clients share one retry policy but keep separate credentials.
	amazonClient := service.NewAmazonClient(cfg.Amazon, service.NewRetryClient(nil, log), log)
	walmartClient := service.NewWalmartClient(cfg.Walmart, service.NewRetryClient(nil, log), log)
	providers := service.NewProviderSet(amazonClient, walmartClient)

	if !cfg.Amazon.Configured() {
		log.Warn().Msg("Amazon credentials not configured, catalog requests will be rejected")
	}
	if !cfg.Walmart.Configured() {
		log.Warn().Msg("Walmart credentials not configured, catalog requests will be rejected")
	}

	// Core services
	comparisonSvc := service.NewPriceComparisonService(providers, searchCache, cfg.Redis.CacheTTL, log)
	assistantSvc := service.NewOpenAIAssistant(cfg.OpenAI, service.NewRetryClient(nil, log), log)
	contentFilter := service.NewPatternContentFilter()
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	authSvc := service.NewAuthService(hashSvc, tokenSvc)
	weatherSvc := service.NewStaticWeatherService()

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Providers:      providers,
		ComparisonSvc:  comparisonSvc,
		AssistantSvc:   assistantSvc,
		ContentFilter:  contentFilter,
		AuthSvc:        authSvc,
		TokenSvc:       tokenSvc,
		WeatherSvc:     weatherSvc,
		SearchCache:    searchCache,
		CacheTTL:       cfg.Redis.CacheTTL,
		RateLimitStore: rateLimitStore,
		HealthCheckers: healthCheckers,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
