// Package logging builds the application's zap logger.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// InitLogger creates a logger for the given environment. Production gets
// sampled JSON output, everything else a human-readable development logger.
func InitLogger(environment string) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return logger, nil
}
