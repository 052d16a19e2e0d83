package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bhyulljz/rakt-matching/pkg/core/model"
)

// GetDonors returns every registered donor profile, oldest first so engine
// tie-breaking stays stable across runs.
func (db *DB) GetDonors(ctx context.Context) ([]model.DonorProfile, error) {
	rows, err := db.pool.Query(ctx, `SELECT profile FROM donors ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query donors: %w", err)
	}
	defer rows.Close()

	donors := make([]model.DonorProfile, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan donor row: %w", err)
		}

		var donor model.DonorProfile
		if err := json.Unmarshal(raw, &donor); err != nil {
			return nil, fmt.Errorf("failed to decode donor profile: %w", err)
		}
		donors = append(donors, donor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate donor rows: %w", err)
	}

	return donors, nil
}

// InsertDonor stores a donor profile, replacing any existing record with the
// same id.
func (db *DB) InsertDonor(ctx context.Context, donor model.DonorProfile) error {
	profile, err := json.Marshal(donor)
	if err != nil {
		return fmt.Errorf("failed to encode donor profile: %w", err)
	}

	_, err = db.pool.Exec(ctx, `
		INSERT INTO donors (id, blood_type, location, profile)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET blood_type = EXCLUDED.blood_type,
		    location = EXCLUDED.location,
		    profile = EXCLUDED.profile`,
		donor.ID, string(donor.BloodType), donor.Location, profile)
	if err != nil {
		return fmt.Errorf("failed to insert donor: %w", err)
	}

	return nil
}
