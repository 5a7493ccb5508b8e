package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Baaaki/store-rating/internal/config"
	"github.com/Baaaki/store-rating/internal/database"
	"github.com/Baaaki/store-rating/internal/handler"
	"github.com/Baaaki/store-rating/internal/middleware"
	"github.com/Baaaki/store-rating/internal/observability"
	"github.com/Baaaki/store-rating/internal/repository"
	"github.com/Baaaki/store-rating/internal/service"
	"github.com/Baaaki/store-rating/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	serviceName    = "store-rating"
	devJWTSecret   = "dev-only-insecure-secret"
	shutdownPeriod = 10 * time.Second
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := logger.Init(!cfg.IsProduction(), cfg.LogFile); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.JWTSecret == "" {
		logger.Log.Warn("JWT_SECRET not set, using insecure development secret")
		cfg.JWTSecret = devJWTSecret
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to connect database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Log.Warn("Failed to close database", zap.Error(err))
		}
	}()

	if err := database.Migrate(db); err != nil {
		logger.Log.Fatal("Failed to migrate database", zap.Error(err))
	}

	opts := handler.RouterOptions{
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		IsProduction:   cfg.IsProduction(),
		ServiceName:    serviceName,
	}

	// Metrics
	if cfg.MetricsEnabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		prom := observability.NewProm(registry)
		if err := prom.InstrumentDB(db); err != nil {
			logger.Log.Fatal("Failed to instrument database", zap.Error(err))
		}
		opts.Prom = prom
		opts.Gatherer = registry
	}

	// Tracing
	if cfg.OTLPEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(ctx, serviceName, cfg.OTLPEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
			defer cancel()
			if err := shutdownTracer(shutdownCtx); err != nil {
				logger.Log.Warn("Failed to flush traces", zap.Error(err))
			}
		}()
		opts.Tracing = true
	}

	// Rate limiting on the auth endpoints
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Log.Fatal("Invalid REDIS_URL", zap.Error(err))
		}
		redisClient := redis.NewClient(redisOpts)
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Log.Warn("Redis unreachable, rate limiter will fail open", zap.Error(err))
		}

		opts.RateLimiter = middleware.NewRateLimiter(redisClient, middleware.RateLimiterConfig{
			MaxRequests: cfg.RateLimitMaxRequests,
			Window:      cfg.RateLimitWindow,
			KeyPrefix:   "ratelimit:auth",
		})
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry, cfg.BcryptCost)
	storeService := service.NewStoreService(storeRepo, userRepo)
	ratingService := service.NewRatingService(ratingRepo, storeRepo)
	adminService := service.NewAdminService(userRepo, storeRepo, ratingRepo, authService, storeService)

	router := handler.NewRouter(handler.Handlers{
		Auth:   handler.NewAuthHandler(authService),
		User:   handler.NewUserHandler(authService),
		Admin:  handler.NewAdminHandler(adminService),
		Store:  handler.NewStoreHandler(storeService),
		Rating: handler.NewRatingHandler(ratingService),
		Health: handler.NewHealthHandler(db),
	}, opts)

	srv := &http.Server{
		Addr:              cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Log.Info("Server starting",
			zap.String("addr", cfg.ServerPort),
			zap.String("environment", cfg.Environment),
			zap.Bool("metrics", cfg.MetricsEnabled),
			zap.Bool("rate_limit", opts.RateLimiter != nil),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Graceful shutdown failed", zap.Error(err))
	}
	logger.Log.Info("Server stopped")
}
