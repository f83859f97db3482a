package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gitprofile/insight/internal/handlers"
	"github.com/gitprofile/insight/internal/middleware"
	"github.com/gitprofile/insight/internal/repositories"
	"github.com/gitprofile/insight/internal/services"
	"github.com/gitprofile/insight/internal/workers"
	"github.com/gitprofile/insight/pkg/config"
	"github.com/gitprofile/insight/pkg/database"
	"github.com/gitprofile/insight/pkg/logger"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.AppConfig

	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	if err := database.Init(cfg.Database.Path); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize GitHub client
	githubClient, err := services.NewGitHubClient(cfg.GitHub)
	if err != nil {
		logger.Fatalf("Failed to initialize GitHub client: %v", err)
	}

	// Initialize services
	repoService := services.NewRepoService(githubClient, cfg.GitHub.RepoCap, cfg.GitHub.ReposPerPage)
	activityService := services.NewActivityService(githubClient, cfg.GitHub.ActivitySource)
	profileService := services.NewProfileService(githubClient, repoService, activityService)
	techStackService := services.NewTechStackService(githubClient, repoService)

	insightRepo := repositories.NewInsightRepository(database.DB)

	generator, err := services.NewGeminiGenerator(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		logger.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	insightService := services.NewInsightService(generator, services.NewInsightExtractor(), insightRepo)

	// Initialize worker manager
	workerManager := workers.NewWorkerManager(insightRepo, time.Duration(cfg.Insight.TTLHours)*time.Hour)

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	setupRoutes(router, profileService, insightService, techStackService)

	// Start workers
	if err := workerManager.StartAll(); err != nil {
		logger.Fatalf("Failed to start workers: %v", err)
	}
	defer workerManager.StopAll()

	// Setup server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Infof("Server starting on :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server shutdown failed")
	}

	logger.Info("Server stopped")
}

func setupRoutes(router *gin.Engine, profileService *services.ProfileService,
	insightService *services.InsightService, techStackService *services.TechStackService) {
	// Initialize handlers
	profileHandler := handlers.NewProfileHandler(profileService)
	insightHandler := handlers.NewInsightHandler(insightService)
	techStackHandler := handlers.NewTechStackHandler(techStackService)
	healthHandler := handlers.NewHealthHandler()

	api := router.Group("/api")
	{
		api.POST("/profile", profileHandler.Analyze)
		api.POST("/insight", insightHandler.Analyze)
		api.POST("/tech-stack", techStackHandler.Aggregate)
	}

	// Health check endpoint
	router.GET("/health", healthHandler.HealthCheck)
}
