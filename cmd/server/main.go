package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/bhyulljz/rakt-matching/internal/config"
	"github.com/bhyulljz/rakt-matching/pkg/clients/predictor"
	"github.com/bhyulljz/rakt-matching/pkg/core/matching"
	"github.com/bhyulljz/rakt-matching/pkg/core/services"
	"github.com/bhyulljz/rakt-matching/pkg/db"
	"github.com/bhyulljz/rakt-matching/pkg/handlers"
	"github.com/bhyulljz/rakt-matching/pkg/utils/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for local development, ignored when absent
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.InitLogger(cfg.Environment)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("Starting server", zap.String("environment", cfg.Environment), zap.Int("port", cfg.Port))

	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure database schema: %w", err)
	}

	var pred services.Predictor
	if cfg.PredictorURL != "" {
		logger.Info("Using external predictor", zap.String("url", cfg.PredictorURL))
		pred = predictor.NewClient(cfg.PredictorURL)
	}

	engine := matching.NewEngine(matching.StrategyByName(cfg.ScoringStrategy))
	logger.Info("Scoring strategy selected", zap.String("strategy", engine.Strategy().Name()))

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	h := &handlers.Handler{
		Store:     database,
		Predictor: pred,
		Engine:    engine,
		Logger:    logger,
	}

	r := gin.Default()
	h.RegisterRoutes(r)

	return r.Run(fmt.Sprintf(":%d", cfg.Port))
}
