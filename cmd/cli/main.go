package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bhyulljz/rakt-matching/cmd/cli/commands"
	"github.com/bhyulljz/rakt-matching/internal/config"
	"github.com/bhyulljz/rakt-matching/pkg/clients/predictor"
	"github.com/bhyulljz/rakt-matching/pkg/core/matching"
	"github.com/bhyulljz/rakt-matching/pkg/db"
	"github.com/bhyulljz/rakt-matching/pkg/utils/logging"
)

var (
	env string
	app = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rakt",
		Short: "RAKT CLI - Match blood donors with recipients",
		Long:  `A CLI tool for registering donors, tracking recipient requests, and running donor-recipient compatibility matching.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.Database != nil {
					app.Database.Close()
				}
				if app.Logger != nil {
					app.Logger.Sync()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment suffix for the config file (e.g. test, prod)")

	rootCmd.AddCommand(commands.MatchCmd(app))
	rootCmd.AddCommand(commands.MatchAllCmd(app))
	rootCmd.AddCommand(commands.ListDonorsCmd(app))
	rootCmd.AddCommand(commands.ListRequestsCmd(app))
	rootCmd.AddCommand(commands.RegisterDonorCmd(app))
	rootCmd.AddCommand(commands.AddRequestCmd(app))
	rootCmd.AddCommand(commands.DonationScheduleCmd(app))
	rootCmd.AddCommand(commands.CheckPairCmd(app))
	rootCmd.AddCommand(commands.ViewRunsCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, predictor client, engine, and database
func initApp() error {
	var err error

	// Optional .env for local development, ignored when absent
	_ = godotenv.Load()

	cfg, err := config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.InitLogger(cfg.Environment)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Starting application", zap.String("environment", cfg.Environment))

	ctx := context.Background()

	logger.Info("Connecting to database")
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Ensuring database schema")
	if err := database.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure database schema: %w", err)
	}

	var predictorClient *predictor.Client
	if cfg.PredictorURL != "" {
		logger.Info("Using external predictor", zap.String("url", cfg.PredictorURL))
		predictorClient = predictor.NewClient(cfg.PredictorURL)
	}

	engine := matching.NewEngine(matching.StrategyByName(cfg.ScoringStrategy))
	logger.Debug("Scoring strategy selected", zap.String("strategy", engine.Strategy().Name()))

	app.Cfg = cfg
	app.Database = database
	app.Predictor = predictorClient
	app.Engine = engine
	app.Logger = logger
	app.Ctx = ctx

	return nil
}
