package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketReviews/app/echo-server/router"
	"marketReviews/business/review"
	"marketReviews/internal/middleware"
	psqlRepo "marketReviews/internal/repository/postgres"
	redisRepo "marketReviews/internal/repository/redis"
	"marketReviews/internal/rest"
	"marketReviews/pkg/config"
	"marketReviews/pkg/database"
	redisdb "marketReviews/pkg/database/redis"
	"marketReviews/pkg/logger"
	"marketReviews/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Market Reviews", "version", cfg.App.Version)

	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Auth middleware: validate sessions against Redis when available,
	// fall back to plain JWT checks otherwise.
	authRequired := middleware.AuthMiddleware()
	if cfg.Redis.RedisEnabled {
		redisClient, err := redisdb.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}
		defer func() {
			if err := redisdb.CloseRedisClient(redisClient); err != nil {
				logger.Error("Failed to close Redis client", "error", err)
			}
		}()

		tokenRepo := redisRepo.NewTokenRepository(redisClient)
		authRequired = middleware.AuthMiddlewareWithRedis(tokenRepo)
		logger.Info("Redis session validation enabled")
	}

	// Init validate
	validate := validator.New()

	// Init repo
	reviewRepo := psqlRepo.NewReviewRepository(db)
	summaryRepo := psqlRepo.NewSummaryRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)

	// Init service
	reviewCache := review.NewReviewCache(cfg.Cache.ReviewTTL)
	reviewService := review.NewReviewService(reviewRepo, summaryRepo, ordersRepo, reviewCache, validate)

	// Init handler
	reviewHandler := rest.NewReviewHandler(reviewService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupReviewRoutes(api, reviewHandler, authRequired)
	router.SetupAdminReviewRoutes(api, reviewHandler, authRequired)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
