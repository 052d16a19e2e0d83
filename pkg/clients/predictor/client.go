// Package predictor is an HTTP client for the external match predictor
// service. The predictor exposes a small JSON API and scores a recipient
// request against a pool of donors in one call.
package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bhyulljz/rakt-matching/pkg/core/model"
)

// Client calls the predictor service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a predictor client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type matchRequestBody struct {
	RecipientRequest model.RecipientRequest `json:"recipientRequest"`
	AvailableDonors  []model.DonorProfile   `json:"availableDonors"`
}

// HealthStatus reports the predictor's readiness.
type HealthStatus struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	ModelID     string `json:"model_id"`
}

// PairPrediction is the predictor's verdict on a single donor-recipient pair.
type PairPrediction struct {
	Compatible bool     `json:"compatible"`
	Score      float64  `json:"score"`
	Warnings   []string `json:"warnings"`
	ModelUsed  bool     `json:"model_used"`
	Reason     string   `json:"reason"`
}

// Health checks whether the predictor is up and has its model loaded.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("predictor health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("predictor health check returned status %d", resp.StatusCode)
	}

	var status HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode health response: %w", err)
	}

	return &status, nil
}

type predictRequestBody struct {
	Donor     model.DonorProfile     `json:"donor"`
	Recipient model.RecipientRequest `json:"recipient"`
}

// Predict scores a single donor-recipient pair.
func (c *Client) Predict(ctx context.Context, donor model.DonorProfile, recipient model.RecipientRequest) (*PairPrediction, error) {
	body, err := json.Marshal(predictRequestBody{Donor: donor, Recipient: recipient})
	if err != nil {
		return nil, fmt.Errorf("failed to encode predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("predictor predict call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("predictor predict returned status %d: %s", resp.StatusCode, string(raw))
	}

	var prediction PairPrediction
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return nil, fmt.Errorf("failed to decode predict response: %w", err)
	}

	return &prediction, nil
}

// MatchDonors asks the predictor to score the donor pool for a request.
func (c *Client) MatchDonors(ctx context.Context, request model.RecipientRequest, donors []model.DonorProfile) (*model.MatchingResponse, error) {
	body, err := json.Marshal(matchRequestBody{
		RecipientRequest: request,
		AvailableDonors:  donors,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode match request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/match", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build match request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("predictor match call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("predictor match returned status %d: %s", resp.StatusCode, string(raw))
	}

	var response model.MatchingResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode match response: %w", err)
	}

	return &response, nil
}
