package db

import (
	"context"

	"github.com/bhyulljz/rakt-matching/pkg/core/model"
)

// DonorStore defines the donor database operations.
type DonorStore interface {
	GetDonors(ctx context.Context) ([]model.DonorProfile, error)
	InsertDonor(ctx context.Context, donor model.DonorProfile) error
}

// RequestStore defines the recipient request database operations.
type RequestStore interface {
	GetRecipientRequest(ctx context.Context, id string) (*model.RecipientRequest, error)
	GetActiveRecipientRequests(ctx context.Context) ([]model.RecipientRequest, error)
	GetRecipientRequests(ctx context.Context) ([]model.RecipientRequest, error)
	InsertRecipientRequest(ctx context.Context, request model.RecipientRequest, status string) error
}

// MatchRunStore defines the match run database operations.
type MatchRunStore interface {
	InsertMatchRun(ctx context.Context, run *MatchRun) error
	GetMatchRuns(ctx context.Context, requestID string) ([]MatchRun, error)
}
