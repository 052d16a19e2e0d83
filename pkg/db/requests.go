package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bhyulljz/rakt-matching/pkg/core/model"
)

// ErrRequestNotFound is returned when a recipient request id is unknown.
var ErrRequestNotFound = errors.New("recipient request not found")

// GetRecipientRequest returns one request by id.
func (db *DB) GetRecipientRequest(ctx context.Context, id string) (*model.RecipientRequest, error) {
	var raw []byte
	err := db.pool.QueryRow(ctx, `SELECT profile FROM recipient_requests WHERE id = $1`, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query recipient request: %w", err)
	}

	var request model.RecipientRequest
	if err := json.Unmarshal(raw, &request); err != nil {
		return nil, fmt.Errorf("failed to decode recipient request: %w", err)
	}

	return &request, nil
}

// GetActiveRecipientRequests returns every request still awaiting donors.
func (db *DB) GetActiveRecipientRequests(ctx context.Context) ([]model.RecipientRequest, error) {
	return db.queryRequests(ctx, `SELECT profile FROM recipient_requests WHERE status = $1 ORDER BY created_at, id`, RequestStatusActive)
}

// GetRecipientRequests returns all requests regardless of status.
func (db *DB) GetRecipientRequests(ctx context.Context) ([]model.RecipientRequest, error) {
	return db.queryRequests(ctx, `SELECT profile FROM recipient_requests ORDER BY created_at, id`)
}

func (db *DB) queryRequests(ctx context.Context, query string, args ...any) ([]model.RecipientRequest, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipient requests: %w", err)
	}
	defer rows.Close()

	requests := make([]model.RecipientRequest, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan request row: %w", err)
		}

		var request model.RecipientRequest
		if err := json.Unmarshal(raw, &request); err != nil {
			return nil, fmt.Errorf("failed to decode recipient request: %w", err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate request rows: %w", err)
	}

	return requests, nil
}

// InsertRecipientRequest stores a request with the given lifecycle status,
// replacing any existing record with the same id.
func (db *DB) InsertRecipientRequest(ctx context.Context, request model.RecipientRequest, status string) error {
	if status == "" {
		status = RequestStatusActive
	}

	profile, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to encode recipient request: %w", err)
	}

	_, err = db.pool.Exec(ctx, `
		INSERT INTO recipient_requests (id, blood_type, urgency, status, profile)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET blood_type = EXCLUDED.blood_type,
		    urgency = EXCLUDED.urgency,
		    status = EXCLUDED.status,
		    profile = EXCLUDED.profile`,
		request.ID, string(request.BloodType), string(request.Urgency), status, profile)
	if err != nil {
		return fmt.Errorf("failed to insert recipient request: %w", err)
	}

	return nil
}
