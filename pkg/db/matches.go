package db

import (
	"context"
	"fmt"
)

// InsertMatchRun persists one matching execution.
func (db *DB) InsertMatchRun(ctx context.Context, run *MatchRun) error {
	_, err := db.pool.Exec(ctx, `
		INSERT INTO match_runs (id, request_id, strategy, predictor_used, total_matches, response)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		run.ID, run.RequestID, run.Strategy, run.PredictorUsed, run.TotalMatches, run.Response)
	if err != nil {
		return fmt.Errorf("failed to insert match run: %w", err)
	}
	return nil
}

// GetMatchRuns returns the persisted runs for a request, newest first.
func (db *DB) GetMatchRuns(ctx context.Context, requestID string) ([]MatchRun, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, request_id, strategy, predictor_used, total_matches, response, created_at
		FROM match_runs
		WHERE request_id = $1
		ORDER BY created_at DESC`, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query match runs: %w", err)
	}
	defer rows.Close()

	runs := make([]MatchRun, 0)
	for rows.Next() {
		var run MatchRun
		if err := rows.Scan(&run.ID, &run.RequestID, &run.Strategy, &run.PredictorUsed,
			&run.TotalMatches, &run.Response, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match run row: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate match run rows: %w", err)
	}

	return runs, nil
}
