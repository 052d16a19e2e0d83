package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bhyulljz/rakt-matching/pkg/core/model"
)

// RegisterDonorStore defines the database operations needed to register a donor
type RegisterDonorStore interface {
	InsertDonor(ctx context.Context, donor model.DonorProfile) error
}

// RegisterDonor validates and stores a donor profile, assigning an id when
// none is given. It returns the stored profile.
func RegisterDonor(
	ctx context.Context,
	database RegisterDonorStore,
	logger *zap.Logger,
	donor model.DonorProfile,
) (*model.DonorProfile, error) {
	if donor.ID == "" {
		donor.ID = uuid.New().String()
	}

	if donor.Name == "" {
		return nil, fmt.Errorf("donor name is required")
	}
	if !donor.BloodType.IsValid() {
		return nil, fmt.Errorf("invalid blood type %q", donor.BloodType)
	}

	validate := validator.New()
	if err := validate.Struct(donor); err != nil {
		return nil, fmt.Errorf("invalid donor profile: %w", err)
	}

	if err := database.InsertDonor(ctx, donor); err != nil {
		return nil, fmt.Errorf("failed to insert donor: %w", err)
	}

	logger.Info("Donor registered",
		zap.String("donor_id", donor.ID),
		zap.String("blood_type", string(donor.BloodType)))

	return &donor, nil
}
