package services

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bhyulljz/rakt-matching/pkg/core/matching"
	"github.com/bhyulljz/rakt-matching/pkg/core/model"
)

// maxConcurrentMatches bounds the number of requests matched in parallel so a
// large backlog cannot exhaust the predictor or the connection pool.
const maxConcurrentMatches = 4

// MatchAllStore defines the database operations needed to match every active request
type MatchAllStore interface {
	MatchRequestStore
	GetActiveRecipientRequests(ctx context.Context) ([]model.RecipientRequest, error)
}

// RequestFailure records one request that could not be matched
type RequestFailure struct {
	RequestID string
	Err       error
}

// MatchAllResult summarizes a batch matching run
type MatchAllResult struct {
	Outcomes []*MatchOutcome
	Failures []RequestFailure
}

// MatchAllRequests matches every active recipient request against the donor
// pool. Requests are processed concurrently with a bounded limit, and a
// failure on one request never aborts the others.
func MatchAllRequests(
	ctx context.Context,
	database MatchAllStore,
	pred Predictor,
	engine *matching.Engine,
	logger *zap.Logger,
	dryRun bool,
) (*MatchAllResult, error) {
	logger.Info("Starting matchAllRequests", zap.Bool("dry_run", dryRun))

	requests, err := database.GetActiveRecipientRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active requests: %w", err)
	}
	logger.Info("Found active requests", zap.Int("count", len(requests)))

	result := &MatchAllResult{
		Outcomes: make([]*MatchOutcome, 0, len(requests)),
		Failures: make([]RequestFailure, 0),
	}

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentMatches)

	for _, request := range requests {
		requestID := request.ID
		group.Go(func() error {
			outcome, err := MatchRequest(groupCtx, database, pred, engine, logger, requestID, dryRun)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Error("Failed to match request", zap.String("request_id", requestID), zap.Error(err))
				result.Failures = append(result.Failures, RequestFailure{RequestID: requestID, Err: err})
				return nil
			}
			result.Outcomes = append(result.Outcomes, outcome)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("batch matching aborted: %w", err)
	}

	logger.Info("Batch matching complete",
		zap.Int("matched", len(result.Outcomes)),
		zap.Int("failed", len(result.Failures)))

	return result, nil
}
