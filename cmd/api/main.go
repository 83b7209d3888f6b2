package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/codeforge/backend/internal/codeforces"
	"github.com/codeforge/backend/internal/data"
	"github.com/codeforge/backend/internal/handler"
	"github.com/codeforge/backend/internal/infrastructure"
	"github.com/codeforge/backend/internal/middleware"
	"github.com/codeforge/backend/internal/repository"
	"github.com/codeforge/backend/internal/service"
)

func main() {
	// Load configuration
	config := infrastructure.LoadConfig()

	// Initialize logger
	logger, err := infrastructure.NewLogger(config.Server.Environment)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer infrastructure.SyncLogger(logger)

	logger.Info("Starting CodeForge API",
		zap.String("environment", config.Server.Environment),
		zap.Int("port", config.Server.Port),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize telemetry
	telemetry, err := infrastructure.NewTelemetry(ctx, &config.Telemetry, logger)
	if err != nil {
		logger.Error("Failed to initialize telemetry", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		telemetry.Shutdown(shutdownCtx)
	}()

	// Create metrics
	metrics, err := telemetry.CreateMetrics()
	if err != nil {
		logger.Error("Failed to create metrics", zap.Error(err))
		os.Exit(1)
	}

	// Initialize database
	database, err := infrastructure.NewDatabase(&config.Database, logger)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer database.Close()

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		os.Exit(1)
	}

	// Seed a demo contest for local development
	if config.Server.Environment != "production" {
		seeder := data.NewSeeder(database.DB, logger)
		if err := seeder.SeedDemoContest(); err != nil {
			logger.Error("Failed to seed demo contest", zap.Error(err))
			os.Exit(1)
		}
	}

	// External judge client
	cfClient := codeforces.NewClient(&codeforces.Config{
		BaseURL:          config.Codeforces.BaseURL,
		SubmissionWindow: config.Codeforces.SubmissionWindow,
		RequestTimeout:   config.Codeforces.RequestTimeout,
	}, logger)

	// Initialize repositories
	contestRepo := repository.NewContestRepository(database.DB)

	// Initialize services
	contestService := service.NewContestService(contestRepo, cfClient, telemetry.Tracer, logger)
	standingsService := service.NewStandingsService(contestRepo, cfClient, config.Standings, telemetry.Tracer, logger, metrics)

	// Initialize handlers
	contestHandler := handler.NewContestHandler(contestService)
	standingsHandler := handler.NewStandingsHandler(standingsService)

	// Setup Gin router
	if config.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Add global middleware
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig()))
	router.Use(middleware.TracingMiddleware(telemetry.Tracer))
	router.Use(middleware.MetricsMiddleware(metrics))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database connection failed",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": config.Telemetry.ServiceVersion,
		})
	})

	// Metrics endpoint for Prometheus
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api")
	{
		contests := api.Group("/contests")
		{
			contests.POST("", contestHandler.CreateContest)
			contests.GET("", contestHandler.GetContests)
			// Slug routes before ID routes so "slug" never parses as an ID
			contests.GET("/slug/:slug", contestHandler.GetContestBySlug)
			contests.GET("/slug/:slug/leaderboard", standingsHandler.GetLeaderboard)
			contests.GET("/:id", contestHandler.GetContest)
			contests.POST("/:id/problems", contestHandler.AddProblem)
			contests.POST("/:id/problems/random", contestHandler.AddRandomProblem)
			contests.POST("/:id/join", contestHandler.JoinContest)
			contests.POST("/:id/join-team", contestHandler.JoinTeam)
		}
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler:      router,
		ReadTimeout:  config.Server.ReadTimeout,
		WriteTimeout: config.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("HTTP server starting",
			zap.String("address", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
