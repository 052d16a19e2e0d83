package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bhyulljz/rakt-matching/pkg/core/model"
)

func TestCheckAntigenCompatibility_NoPreferences(t *testing.T) {
	donor := model.DonorProfile{
		RhVariants: model.RhVariants{BigC: true, SmallE: true},
		Kell:       true,
	}

	// Recipient requests nothing, so donor antigens are irrelevant
	result := CheckAntigenCompatibility(donor, model.RecipientRequest{})
	assert.True(t, result.Compatible)
	assert.Empty(t, result.MatchReasons)
	assert.Empty(t, result.Warnings)
}

func TestCheckAntigenCompatibility_AllRequestedPresent(t *testing.T) {
	donor := model.DonorProfile{
		RhVariants: model.RhVariants{BigC: true, SmallC: true, BigE: true, SmallE: true},
		Kell:       true,
		Duffy:      true,
		Kidd:       true,
	}
	recipient := model.RecipientRequest{
		RhVariants: model.RhVariants{BigC: true, SmallC: true, BigE: true, SmallE: true},
		Kell:       true,
		Duffy:      true,
		Kidd:       true,
	}

	result := CheckAntigenCompatibility(donor, recipient)
	assert.True(t, result.Compatible)
	assert.Equal(t, []string{
		"Rh-C antigen match",
		"Rh-c antigen match",
		"Rh-E antigen match",
		"Rh-e antigen match",
		"Kell antigen match",
		"Duffy antigen match",
		"Kidd antigen match",
	}, result.MatchReasons)
	assert.Empty(t, result.Warnings)
}

func TestCheckAntigenCompatibility_MissingAntigenWarnsOnly(t *testing.T) {
	donor := model.DonorProfile{
		RhVariants: model.RhVariants{BigC: true},
	}
	recipient := model.RecipientRequest{
		RhVariants: model.RhVariants{BigC: true, BigE: true},
		Kell:       true,
	}

	result := CheckAntigenCompatibility(donor, recipient)
	assert.False(t, result.Compatible)
	assert.Equal(t, []string{"Rh-C antigen match"}, result.MatchReasons)
	assert.Equal(t, []string{"Rh-E antigen mismatch", "Kell antigen mismatch"}, result.Warnings)
}

func TestCheckAntigenCompatibility_DonorExtrasIgnored(t *testing.T) {
	// Donor antigens the recipient did not request produce neither reasons nor warnings
	donor := model.DonorProfile{
		RhVariants: model.RhVariants{SmallC: true, SmallE: true},
		Duffy:      true,
	}
	recipient := model.RecipientRequest{Kidd: true}

	result := CheckAntigenCompatibility(donor, recipient)
	assert.False(t, result.Compatible)
	assert.Empty(t, result.MatchReasons)
	assert.Equal(t, []string{"Kidd antigen mismatch"}, result.Warnings)
}
