package db

import (
	"context"
	"fmt"
)

// Donor and request records arrive as self-describing documents from the
// dashboard, so profiles are stored as jsonb with the fields the store
// queries on lifted into columns.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS donors (
		id          text PRIMARY KEY,
		blood_type  text NOT NULL DEFAULT '',
		location    text NOT NULL DEFAULT '',
		profile     jsonb NOT NULL,
		created_at  timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS recipient_requests (
		id          text PRIMARY KEY,
		blood_type  text NOT NULL DEFAULT '',
		urgency     text NOT NULL DEFAULT 'standard',
		status      text NOT NULL DEFAULT 'active',
		profile     jsonb NOT NULL,
		created_at  timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS match_runs (
		id             text PRIMARY KEY,
		request_id     text NOT NULL,
		strategy       text NOT NULL,
		predictor_used boolean NOT NULL DEFAULT false,
		total_matches  integer NOT NULL DEFAULT 0,
		response       jsonb NOT NULL,
		created_at     timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_match_runs_request_id ON match_runs (request_id)`,
	`CREATE INDEX IF NOT EXISTS idx_recipient_requests_status ON recipient_requests (status)`,
}

// EnsureSchema creates the tables and indexes if they do not exist yet.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
