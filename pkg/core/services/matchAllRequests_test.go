package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bhyulljz/rakt-matching/pkg/core/matching"
	"github.com/bhyulljz/rakt-matching/pkg/core/model"
)

// flakyStore fails GetRecipientRequest for one specific id.
type flakyStore struct {
	mockStore
	failID string
}

func (f *flakyStore) GetRecipientRequest(ctx context.Context, id string) (*model.RecipientRequest, error) {
	if id == f.failID {
		return nil, errors.New("simulated store failure")
	}
	return f.mockStore.GetRecipientRequest(ctx, id)
}

func TestMatchAllRequests_MatchesEveryActiveRequest(t *testing.T) {
	store := &mockStore{
		requests: map[string]*model.RecipientRequest{
			"req-1": {ID: "req-1", BloodType: model.BloodTypeAPos, Urgency: model.UrgencyHigh, Units: 1},
			"req-2": {ID: "req-2", BloodType: model.BloodTypeONeg, Urgency: model.UrgencyCritical, Units: 2},
			"req-3": {ID: "req-3", BloodType: model.BloodTypeBPos, Urgency: model.UrgencyStandard, Units: 1},
		},
		donors: []model.DonorProfile{
			{ID: "donor-1", Name: "Ravi", BloodType: model.BloodTypeONeg},
		},
	}

	result, err := MatchAllRequests(context.Background(), store, nil, matching.NewEngine(nil), zap.NewNop(), false)

	require.NoError(t, err)
	assert.Empty(t, result.Failures)
	require.Len(t, result.Outcomes, 3)

	// O- donates to everyone, so each request persisted a run with one match.
	require.Len(t, store.insertedRuns, 3)
	seen := map[string]bool{}
	for _, run := range store.insertedRuns {
		seen[run.RequestID] = true
		assert.Equal(t, 1, run.TotalMatches)
	}
	assert.Len(t, seen, 3)
}

func TestMatchAllRequests_OneFailureDoesNotAbortOthers(t *testing.T) {
	store := &flakyStore{
		mockStore: mockStore{
			requests: map[string]*model.RecipientRequest{
				"req-ok":  {ID: "req-ok", BloodType: model.BloodTypeAPos, Urgency: model.UrgencyHigh, Units: 1},
				"req-bad": {ID: "req-bad", BloodType: model.BloodTypeBPos, Urgency: model.UrgencyHigh, Units: 1},
			},
			donors: []model.DonorProfile{
				{ID: "donor-1", Name: "Ravi", BloodType: model.BloodTypeONeg},
			},
		},
		failID: "req-bad",
	}

	result, err := MatchAllRequests(context.Background(), store, nil, matching.NewEngine(nil), zap.NewNop(), false)

	require.NoError(t, err)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "req-bad", result.Failures[0].RequestID)
	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, "req-ok", result.Outcomes[0].Response.RequestID)
}

func TestMatchAllRequests_NoActiveRequests(t *testing.T) {
	store := &mockStore{requests: map[string]*model.RecipientRequest{}}

	result, err := MatchAllRequests(context.Background(), store, nil, matching.NewEngine(nil), zap.NewNop(), false)

	require.NoError(t, err)
	assert.Empty(t, result.Outcomes)
	assert.Empty(t, result.Failures)
}

func TestMatchAllRequests_DryRun(t *testing.T) {
	store := &mockStore{
		requests: map[string]*model.RecipientRequest{
			"req-1": {ID: "req-1", BloodType: model.BloodTypeAPos, Urgency: model.UrgencyHigh, Units: 1},
		},
		donors: []model.DonorProfile{
			{ID: "donor-1", Name: "Ravi", BloodType: model.BloodTypeAPos},
		},
	}

	result, err := MatchAllRequests(context.Background(), store, nil, matching.NewEngine(nil), zap.NewNop(), true)

	require.NoError(t, err)
	require.Len(t, result.Outcomes, 1)
	assert.Empty(t, store.insertedRuns)
}
