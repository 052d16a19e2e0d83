package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bhyulljz/rakt-matching/pkg/core/matching"
	"github.com/bhyulljz/rakt-matching/pkg/core/model"
	"github.com/bhyulljz/rakt-matching/pkg/db"
)

type mockStore struct {
	donors       []model.DonorProfile
	requests     map[string]*model.RecipientRequest
	runs         []db.MatchRun
	insertedRuns []*db.MatchRun
}

func (m *mockStore) GetDonors(ctx context.Context) ([]model.DonorProfile, error) {
	return m.donors, nil
}

func (m *mockStore) InsertDonor(ctx context.Context, donor model.DonorProfile) error {
	m.donors = append(m.donors, donor)
	return nil
}

func (m *mockStore) GetRecipientRequest(ctx context.Context, id string) (*model.RecipientRequest, error) {
	request, ok := m.requests[id]
	if !ok {
		return nil, db.ErrRequestNotFound
	}
	return request, nil
}

func (m *mockStore) GetActiveRecipientRequests(ctx context.Context) ([]model.RecipientRequest, error) {
	active := make([]model.RecipientRequest, 0, len(m.requests))
	for _, request := range m.requests {
		active = append(active, *request)
	}
	return active, nil
}

func (m *mockStore) GetRecipientRequests(ctx context.Context) ([]model.RecipientRequest, error) {
	return m.GetActiveRecipientRequests(ctx)
}

func (m *mockStore) InsertRecipientRequest(ctx context.Context, request model.RecipientRequest, status string) error {
	if m.requests == nil {
		m.requests = make(map[string]*model.RecipientRequest)
	}
	m.requests[request.ID] = &request
	return nil
}

func (m *mockStore) InsertMatchRun(ctx context.Context, run *db.MatchRun) error {
	m.insertedRuns = append(m.insertedRuns, run)
	return nil
}

func (m *mockStore) GetMatchRuns(ctx context.Context, requestID string) ([]db.MatchRun, error) {
	return m.runs, nil
}

func newTestRouter(store *mockStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{
		Store:  store,
		Engine: matching.NewEngine(nil),
		Logger: zap.NewNop(),
	}
	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

func performJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&mockStore{})

	w := performJSON(t, r, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "primary", body["strategy"])
}

func TestMatchInline(t *testing.T) {
	r := newTestRouter(&mockStore{})

	input := map[string]any{
		"recipientRequest": model.RecipientRequest{
			ID:        "req-1",
			UserName:  "Priya",
			BloodType: model.BloodTypeAPos,
			Urgency:   model.UrgencyHigh,
			Units:     1,
		},
		"availableDonors": []model.DonorProfile{
			{ID: "donor-1", Name: "Ravi", BloodType: model.BloodTypeAPos},
			{ID: "donor-2", Name: "Meera", BloodType: model.BloodTypeBNeg},
		},
	}

	w := performJSON(t, r, http.MethodPost, "/api/match", input)

	require.Equal(t, http.StatusOK, w.Code)
	var response model.MatchingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "req-1", response.RequestID)
	require.Len(t, response.Matches, 1)
	assert.Equal(t, "donor-1", response.Matches[0].DonorID)
}

func TestMatchInline_InvalidBloodType(t *testing.T) {
	r := newTestRouter(&mockStore{})

	input := map[string]any{
		"recipientRequest": map[string]any{"bloodType": "Z+"},
	}

	w := performJSON(t, r, http.MethodPost, "/api/match", input)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMatchStoredRequest(t *testing.T) {
	store := &mockStore{
		requests: map[string]*model.RecipientRequest{
			"req-1": {ID: "req-1", BloodType: model.BloodTypeAPos, Urgency: model.UrgencyHigh, Units: 1},
		},
		donors: []model.DonorProfile{
			{ID: "donor-1", Name: "Ravi", BloodType: model.BloodTypeONeg},
		},
	}
	r := newTestRouter(store)

	w := performJSON(t, r, http.MethodPost, "/api/requests/req-1/match", nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.insertedRuns, 1)
	assert.Equal(t, "req-1", store.insertedRuns[0].RequestID)
}

func TestMatchStoredRequest_NotFound(t *testing.T) {
	r := newTestRouter(&mockStore{requests: map[string]*model.RecipientRequest{}})

	w := performJSON(t, r, http.MethodPost, "/api/requests/missing/match", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMatchStoredRequest_DryRun(t *testing.T) {
	store := &mockStore{
		requests: map[string]*model.RecipientRequest{
			"req-1": {ID: "req-1", BloodType: model.BloodTypeAPos, Urgency: model.UrgencyHigh, Units: 1},
		},
	}
	r := newTestRouter(store)

	w := performJSON(t, r, http.MethodPost, "/api/requests/req-1/match?dryRun=true", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.insertedRuns)
}

func TestRegisterDonor(t *testing.T) {
	store := &mockStore{}
	r := newTestRouter(store)

	w := performJSON(t, r, http.MethodPost, "/api/donors", model.DonorProfile{
		Name:      "Ravi",
		BloodType: model.BloodTypeOPos,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.donors, 1)
	assert.NotEmpty(t, store.donors[0].ID)
}

func TestRegisterDonor_InvalidBloodType(t *testing.T) {
	r := newTestRouter(&mockStore{})

	w := performJSON(t, r, http.MethodPost, "/api/donors", model.DonorProfile{
		Name:      "Ravi",
		BloodType: "Z+",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddRequest(t *testing.T) {
	store := &mockStore{}
	r := newTestRouter(store)

	w := performJSON(t, r, http.MethodPost, "/api/requests", model.RecipientRequest{
		UserName:  "Priya",
		BloodType: model.BloodTypeABPos,
		Urgency:   model.UrgencyCritical,
		Units:     2,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.requests, 1)
}

func TestAddRequest_RejectsZeroUnits(t *testing.T) {
	r := newTestRouter(&mockStore{})

	w := performJSON(t, r, http.MethodPost, "/api/requests", model.RecipientRequest{
		UserName:  "Priya",
		BloodType: model.BloodTypeABPos,
		Urgency:   model.UrgencyCritical,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListDonors(t *testing.T) {
	store := &mockStore{
		donors: []model.DonorProfile{
			{ID: "donor-1", Name: "Ravi", BloodType: model.BloodTypeOPos},
		},
	}
	r := newTestRouter(store)

	w := performJSON(t, r, http.MethodGet, "/api/donors", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Donors []model.DonorProfile `json:"donors"`
		Count  int                  `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "donor-1", body.Donors[0].ID)
}

func TestListRuns(t *testing.T) {
	store := &mockStore{
		runs: []db.MatchRun{{ID: "run-1", RequestID: "req-1", TotalMatches: 3}},
	}
	r := newTestRouter(store)

	w := performJSON(t, r, http.MethodGet, "/api/requests/req-1/runs", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
}
