package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"algoview/internal/config"
	"algoview/internal/handlers"
	"algoview/internal/jobs"
	"algoview/internal/llm"
	_ "algoview/internal/llm/gemini"
	"algoview/internal/metrics"
	"algoview/internal/orchestrator"
	"algoview/internal/problems"
	"algoview/internal/prompts"
	"algoview/internal/realtime"
	"algoview/internal/review"
	"algoview/internal/routers"
	"algoview/internal/store"
)

func registerRoutes(router *chi.Mux, sessionHandler *handlers.SessionHandler, wsHandler *handlers.WSHandler, healthHandler *handlers.HealthHandler) {
	routers.HealthRoutes(router, healthHandler)
	routers.SessionRoutes(router, sessionHandler, wsHandler)
}

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider),
		zap.Int("review_threshold", cfg.ReviewLineThreshold),
		zap.Duration("interview_duration", cfg.InterviewDuration))

	// prompt manager
	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	// problem catalog
	catalog, err := problems.NewCatalog()
	if err != nil {
		logger.Fatal("Failed to load problem catalog", zap.Error(err))
	}

	// AI provider based on configuration
	aiProvider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		logger.Fatal("Failed to initialize AI provider", zap.Error(err))
	}

	// realtime conversation gateway, configured with the interviewer
	// instructions prompt
	realtimeConfig, err := realtime.NewConfig()
	if err != nil {
		logger.Fatal("Failed to load realtime configuration", zap.Error(err))
	}
	instructions, err := promptManager.BuildPrompt("interviewer", "default", nil)
	if err != nil {
		logger.Fatal("Failed to build interviewer instructions", zap.Error(err))
	}
	gateway := realtime.NewClient(realtimeConfig, instructions, logger)

	sessionStore := store.NewSessionStore()
	reviewer := review.NewReviewer(aiProvider, promptManager, logger)
	orch := orchestrator.New(sessionStore, catalog, reviewer, gateway,
		cfg.ReviewLineThreshold, cfg.InterviewDuration, logger)

	sessionHandler := handlers.NewSessionHandler(sessionStore, catalog, orch, gateway, logger)
	wsHandler := handlers.NewWSHandler(sessionStore, orch, logger)
	healthHandler := handlers.NewHealthHandler(aiProvider, promptManager, cfg)

	// periodic session reporting (optional)
	var reporterJob *jobs.SessionReporterJob
	if cfg.ReportEnabled {
		reporterJob = jobs.NewSessionReporterJob(sessionStore, orch, cfg.ReportSchedule, logger)
		if err := reporterJob.Start(); err != nil {
			logger.Error("Failed to start session reporter", zap.Error(err))
		}
	}

	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	router.Use(metrics.Middleware("algoview"))

	registerRoutes(router, sessionHandler, wsHandler, healthHandler)

	serverAddr := ":" + cfg.Port

	// http server with timeouts; no write timeout so websocket
	// connections can outlive request deadlines
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     router,
		ReadTimeout: 0,
		IdleTimeout: 60 * time.Second,
	}

	// starting server in a goroutine
	go func() {
		logger.Info("Interview service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Interview service shutting down...")

	if reporterJob != nil {
		reporterJob.Stop()
	}

	// graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("Interview service exited")
}
