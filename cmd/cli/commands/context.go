// Package commands contains the CLI command definitions.
package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/bhyulljz/rakt-matching/internal/config"
	"github.com/bhyulljz/rakt-matching/pkg/clients/predictor"
	"github.com/bhyulljz/rakt-matching/pkg/core/matching"
	"github.com/bhyulljz/rakt-matching/pkg/db"
)

// AppContext holds the shared application dependencies passed to each command
type AppContext struct {
	Cfg       *config.Config
	Database  *db.DB
	Predictor *predictor.Client
	Engine    *matching.Engine
	Logger    *zap.Logger
	Ctx       context.Context
}
