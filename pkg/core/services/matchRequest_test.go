package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bhyulljz/rakt-matching/pkg/clients/predictor"
	"github.com/bhyulljz/rakt-matching/pkg/core/matching"
	"github.com/bhyulljz/rakt-matching/pkg/core/model"
	"github.com/bhyulljz/rakt-matching/pkg/db"
)

type mockStore struct {
	requests     map[string]*model.RecipientRequest
	donors       []model.DonorProfile
	insertedRuns []*db.MatchRun

	requestErr error
	donorErr   error
	insertErr  error
}

func (m *mockStore) GetRecipientRequest(ctx context.Context, id string) (*model.RecipientRequest, error) {
	if m.requestErr != nil {
		return nil, m.requestErr
	}
	request, ok := m.requests[id]
	if !ok {
		return nil, db.ErrRequestNotFound
	}
	return request, nil
}

func (m *mockStore) GetDonors(ctx context.Context) ([]model.DonorProfile, error) {
	if m.donorErr != nil {
		return nil, m.donorErr
	}
	return m.donors, nil
}

func (m *mockStore) InsertMatchRun(ctx context.Context, run *db.MatchRun) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.insertedRuns = append(m.insertedRuns, run)
	return nil
}

func (m *mockStore) GetActiveRecipientRequests(ctx context.Context) ([]model.RecipientRequest, error) {
	active := make([]model.RecipientRequest, 0, len(m.requests))
	for _, request := range m.requests {
		active = append(active, *request)
	}
	return active, nil
}

type mockPredictor struct {
	healthStatus *predictor.HealthStatus
	healthErr    error
	response     *model.MatchingResponse
	matchErr     error
	matchCalls   int
}

func (m *mockPredictor) Health(ctx context.Context) (*predictor.HealthStatus, error) {
	if m.healthErr != nil {
		return nil, m.healthErr
	}
	return m.healthStatus, nil
}

func (m *mockPredictor) MatchDonors(ctx context.Context, request model.RecipientRequest, donors []model.DonorProfile) (*model.MatchingResponse, error) {
	m.matchCalls++
	if m.matchErr != nil {
		return nil, m.matchErr
	}
	return m.response, nil
}

func testRequest() *model.RecipientRequest {
	return &model.RecipientRequest{
		ID:        "req-1",
		UserName:  "Priya",
		BloodType: model.BloodTypeAPos,
		Urgency:   model.UrgencyHigh,
		Units:     2,
		Location:  "Mumbai",
	}
}

func testDonors() []model.DonorProfile {
	return []model.DonorProfile{
		{
			ID:             "donor-1",
			Name:           "Ravi",
			BloodType:      model.BloodTypeAPos,
			Location:       "Mumbai",
			TotalDonations: 6,
		},
		{
			ID:        "donor-2",
			Name:      "Meera",
			BloodType: model.BloodTypeBNeg,
		},
	}
}

func TestMatchRequest_EngineFallbackWhenNoPredictor(t *testing.T) {
	store := &mockStore{
		requests: map[string]*model.RecipientRequest{"req-1": testRequest()},
		donors:   testDonors(),
	}
	engine := matching.NewEngine(nil)

	outcome, err := MatchRequest(context.Background(), store, nil, engine, zap.NewNop(), "req-1", false)

	require.NoError(t, err)
	assert.False(t, outcome.PredictorUsed)
	assert.Equal(t, "primary", outcome.Response.ModelUsed)
	require.Len(t, outcome.Response.Matches, 1)
	assert.Equal(t, "donor-1", outcome.Response.Matches[0].DonorID)

	require.Len(t, store.insertedRuns, 1)
	run := store.insertedRuns[0]
	assert.Equal(t, "req-1", run.RequestID)
	assert.Equal(t, "primary", run.Strategy)
	assert.False(t, run.PredictorUsed)
	assert.Equal(t, 1, run.TotalMatches)
	assert.NotEmpty(t, run.Response)
	assert.Equal(t, run.ID, outcome.RunID)
}

func TestMatchRequest_PredictorPreferred(t *testing.T) {
	store := &mockStore{
		requests: map[string]*model.RecipientRequest{"req-1": testRequest()},
		donors:   testDonors(),
	}
	pred := &mockPredictor{
		healthStatus: &predictor.HealthStatus{Status: "healthy", ModelLoaded: true},
		response: &model.MatchingResponse{
			RequestID:         "req-1",
			TotalMatchesFound: 2,
			ModelUsed:         "ml-predictor-v1",
			Timestamp:         time.Now().UTC(),
		},
	}

	outcome, err := MatchRequest(context.Background(), store, pred, matching.NewEngine(nil), zap.NewNop(), "req-1", false)

	require.NoError(t, err)
	assert.True(t, outcome.PredictorUsed)
	assert.Equal(t, "ml-predictor-v1", outcome.Response.ModelUsed)
	assert.Equal(t, 1, pred.matchCalls)

	require.Len(t, store.insertedRuns, 1)
	assert.True(t, store.insertedRuns[0].PredictorUsed)
	assert.Equal(t, "ml-predictor-v1", store.insertedRuns[0].Strategy)
}

func TestMatchRequest_FallsBackWhenPredictorUnhealthy(t *testing.T) {
	store := &mockStore{
		requests: map[string]*model.RecipientRequest{"req-1": testRequest()},
		donors:   testDonors(),
	}
	pred := &mockPredictor{healthErr: errors.New("connection refused")}

	outcome, err := MatchRequest(context.Background(), store, pred, matching.NewEngine(nil), zap.NewNop(), "req-1", false)

	require.NoError(t, err)
	assert.False(t, outcome.PredictorUsed)
	assert.Zero(t, pred.matchCalls)
	assert.Equal(t, "primary", outcome.Response.ModelUsed)
}

func TestMatchRequest_FallsBackWhenModelNotLoaded(t *testing.T) {
	store := &mockStore{
		requests: map[string]*model.RecipientRequest{"req-1": testRequest()},
		donors:   testDonors(),
	}
	pred := &mockPredictor{
		healthStatus: &predictor.HealthStatus{Status: "degraded", ModelLoaded: false},
	}

	outcome, err := MatchRequest(context.Background(), store, pred, matching.NewEngine(nil), zap.NewNop(), "req-1", false)

	require.NoError(t, err)
	assert.False(t, outcome.PredictorUsed)
	assert.Zero(t, pred.matchCalls)
}

func TestMatchRequest_FallsBackWhenPredictorMatchFails(t *testing.T) {
	store := &mockStore{
		requests: map[string]*model.RecipientRequest{"req-1": testRequest()},
		donors:   testDonors(),
	}
	pred := &mockPredictor{
		healthStatus: &predictor.HealthStatus{Status: "healthy", ModelLoaded: true},
		matchErr:     errors.New("timeout"),
	}

	outcome, err := MatchRequest(context.Background(), store, pred, matching.NewEngine(nil), zap.NewNop(), "req-1", false)

	require.NoError(t, err)
	assert.False(t, outcome.PredictorUsed)
	assert.Equal(t, 1, pred.matchCalls)
	assert.Equal(t, "primary", outcome.Response.ModelUsed)
}

func TestMatchRequest_DryRunSkipsPersistence(t *testing.T) {
	store := &mockStore{
		requests: map[string]*model.RecipientRequest{"req-1": testRequest()},
		donors:   testDonors(),
	}

	outcome, err := MatchRequest(context.Background(), store, nil, matching.NewEngine(nil), zap.NewNop(), "req-1", true)

	require.NoError(t, err)
	assert.Empty(t, store.insertedRuns)
	assert.Empty(t, outcome.RunID)
}

func TestMatchRequest_UnknownRequest(t *testing.T) {
	store := &mockStore{requests: map[string]*model.RecipientRequest{}}

	_, err := MatchRequest(context.Background(), store, nil, matching.NewEngine(nil), zap.NewNop(), "missing", false)

	require.Error(t, err)
	assert.ErrorIs(t, err, db.ErrRequestNotFound)
}

func TestMatchRequest_InsertFailure(t *testing.T) {
	store := &mockStore{
		requests:  map[string]*model.RecipientRequest{"req-1": testRequest()},
		donors:    testDonors(),
		insertErr: errors.New("connection lost"),
	}

	_, err := MatchRequest(context.Background(), store, nil, matching.NewEngine(nil), zap.NewNop(), "req-1", false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert match run")
}
