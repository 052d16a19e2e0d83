package matching

import (
	"fmt"

	"github.com/bhyulljz/rakt-matching/pkg/core/model"
)

// AntigenResult is the outcome of the extended antigen comparison.
type AntigenResult struct {
	Compatible   bool
	MatchReasons []string
	Warnings     []string
}

// antigenPair is one recipient preference checked against the donor.
type antigenPair struct {
	name      string
	requested bool
	present   bool
}

// CheckAntigenCompatibility compares the donor's extended antigens (Rh
// C/c/E/e, Kell, Duffy, Kidd) against the recipient's stated preferences.
// Antigens the recipient does not request are skipped entirely. A requested
// antigen the donor has produces a match reason; one the donor lacks produces
// a warning. Unmet preferences are soft: they never exclude the donor.
func CheckAntigenCompatibility(donor model.DonorProfile, recipient model.RecipientRequest) AntigenResult {
	pairs := []antigenPair{
		{"Rh-C", recipient.RhVariants.BigC, donor.RhVariants.BigC},
		{"Rh-c", recipient.RhVariants.SmallC, donor.RhVariants.SmallC},
		{"Rh-E", recipient.RhVariants.BigE, donor.RhVariants.BigE},
		{"Rh-e", recipient.RhVariants.SmallE, donor.RhVariants.SmallE},
		{"Kell", recipient.Kell, donor.Kell},
		{"Duffy", recipient.Duffy, donor.Duffy},
		{"Kidd", recipient.Kidd, donor.Kidd},
	}

	result := AntigenResult{
		MatchReasons: []string{},
		Warnings:     []string{},
	}

	for _, pair := range pairs {
		if !pair.requested {
			continue
		}
		if pair.present {
			result.MatchReasons = append(result.MatchReasons, fmt.Sprintf("%s antigen match", pair.name))
		} else {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s antigen mismatch", pair.name))
		}
	}

	result.Compatible = len(result.Warnings) == 0
	return result
}
