package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"smartats/ats-evaluator/internal/config"
	"smartats/ats-evaluator/internal/handlers"
	"smartats/ats-evaluator/internal/repositories"
	"smartats/ats-evaluator/internal/server"
	"smartats/ats-evaluator/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := config.NewLogger(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Info("✅ Config loaded successfully")

	// History is optional
	var evalRepo repositories.EvaluationRepository
	if cfg.History.Enabled {
		db, err := config.InitDatabase(cfg, log)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}
		evalRepo = repositories.NewEvaluationRepository(db)
		log.Info("✅ Evaluation history enabled")
	}

	// Initialize generation backend
	generator, err := services.NewGenerator(context.Background(), cfg, log)
	if err != nil {
		log.Fatalf("❌ Failed to initialize generation provider: %v", err)
	}
	log.Infof("✅ Generation provider initialized: %s", generator.Name())

	evaluatorService := services.NewEvaluatorService(
		evalRepo,
		generator,
		services.NewPDFParserService(),
		cfg.Generation.Timeout,
		cfg.Summary.WrapWidth,
		log,
	)
	log.Info("✅ Evaluator service initialized")

	// Initialize Handlers
	evaluateHandler := handlers.NewEvaluationHandler(
		evaluatorService,
		services.NewUploadReader(cfg.Upload.MaxFileSize),
		log,
	)

	var historyHandler *handlers.HistoryHandler
	if evalRepo != nil {
		historyHandler = handlers.NewHistoryHandler(evalRepo, log)
	}
	log.Info("✅ Handlers initialized")

	app := server.New(cfg, evaluateHandler, historyHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Errorf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Infof("🚀 Server starting on %s", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
