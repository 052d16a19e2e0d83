package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bhyulljz/rakt-matching/pkg/clients/predictor"
	"github.com/bhyulljz/rakt-matching/pkg/core/matching"
	"github.com/bhyulljz/rakt-matching/pkg/core/model"
	"github.com/bhyulljz/rakt-matching/pkg/db"
)

// MatchRequestStore defines the database operations needed to match a request
type MatchRequestStore interface {
	GetRecipientRequest(ctx context.Context, id string) (*model.RecipientRequest, error)
	GetDonors(ctx context.Context) ([]model.DonorProfile, error)
	InsertMatchRun(ctx context.Context, run *db.MatchRun) error
}

// Predictor defines the external predictor operations the service depends on
type Predictor interface {
	Health(ctx context.Context) (*predictor.HealthStatus, error)
	MatchDonors(ctx context.Context, request model.RecipientRequest, donors []model.DonorProfile) (*model.MatchingResponse, error)
}

// MatchOutcome is the result of matching one request
type MatchOutcome struct {
	Response      *model.MatchingResponse
	PredictorUsed bool
	RunID         string
}

// MatchRequest runs the matching pipeline for one recipient request.
// It fetches the request and the donor pool, scores donors via the external
// predictor when available, falls back to the local engine otherwise, and
// persists the run unless dryRun is set.
func MatchRequest(
	ctx context.Context,
	database MatchRequestStore,
	pred Predictor,
	engine *matching.Engine,
	logger *zap.Logger,
	requestID string,
	dryRun bool,
) (*MatchOutcome, error) {
	logger.Info("Starting matchRequest", zap.String("request_id", requestID), zap.Bool("dry_run", dryRun))

	// Step 1: Fetch the recipient request
	request, err := database.GetRecipientRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipient request: %w", err)
	}
	logger.Debug("Found recipient request",
		zap.String("blood_type", string(request.BloodType)),
		zap.String("urgency", string(request.Urgency)))

	// Step 2: Fetch the donor pool
	donors, err := database.GetDonors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch donors: %w", err)
	}
	logger.Debug("Found donors", zap.Int("count", len(donors)))

	// Step 3: Score donors, preferring the external predictor
	response, predictorUsed := scoreDonors(ctx, pred, engine, logger, *request, donors)
	logger.Info("Matching complete",
		zap.Int("total_matches", response.TotalMatchesFound),
		zap.String("model_used", response.ModelUsed),
		zap.Bool("predictor_used", predictorUsed))

	outcome := &MatchOutcome{
		Response:      response,
		PredictorUsed: predictorUsed,
	}

	if dryRun {
		return outcome, nil
	}

	// Step 4: Persist the run
	raw, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to encode matching response: %w", err)
	}

	run := &db.MatchRun{
		ID:            uuid.New().String(),
		RequestID:     requestID,
		Strategy:      response.ModelUsed,
		PredictorUsed: predictorUsed,
		TotalMatches:  response.TotalMatchesFound,
		Response:      raw,
	}
	if err := database.InsertMatchRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to insert match run: %w", err)
	}
	outcome.RunID = run.ID
	logger.Info("Match run persisted", zap.String("run_id", run.ID))

	return outcome, nil
}

// scoreDonors tries the predictor first and falls back to the local engine on
// any predictor failure. The fallback is silent to callers apart from the
// PredictorUsed flag.
func scoreDonors(
	ctx context.Context,
	pred Predictor,
	engine *matching.Engine,
	logger *zap.Logger,
	request model.RecipientRequest,
	donors []model.DonorProfile,
) (*model.MatchingResponse, bool) {
	if pred != nil {
		status, err := pred.Health(ctx)
		switch {
		case err != nil:
			logger.Warn("Predictor unreachable, falling back to local engine", zap.Error(err))
		case !status.ModelLoaded:
			logger.Warn("Predictor has no model loaded, falling back to local engine")
		default:
			response, err := pred.MatchDonors(ctx, request, donors)
			if err == nil {
				return response, true
			}
			logger.Warn("Predictor match failed, falling back to local engine", zap.Error(err))
		}
	}

	response := engine.Match(request, donors)
	return &response, false
}
