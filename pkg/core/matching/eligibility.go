package matching

import (
	"fmt"
	"strings"
	"time"

	"github.com/bhyulljz/rakt-matching/pkg/core/model"
)

const (
	// MinDonationIntervalDays is the minimum whole-day gap required between
	// consecutive donations.
	MinDonationIntervalDays = 56

	// Minimum hemoglobin levels (g/dL) by donor gender.
	MinHemoglobinFemale = 12.5
	MinHemoglobinMale   = 13.0
)

// HardStopResult is the outcome of the absolute eligibility screen.
type HardStopResult struct {
	Eligible bool
	Reasons  []string
}

// TemporaryResult is the outcome of the temporary deferral screen.
type TemporaryResult struct {
	Eligible bool
	Warnings []string
}

// CheckHardStopEligibility evaluates the five permanent deferral flags.
// Any flag set makes the donor absolutely ineligible: no other score
// component can outweigh a disease-transmission risk.
func CheckHardStopEligibility(donor model.DonorProfile) HardStopResult {
	reasons := []string{}

	if donor.HIVStatus {
		reasons = append(reasons, "HIV positive")
	}
	if donor.HepatitisB {
		reasons = append(reasons, "Hepatitis B")
	}
	if donor.HepatitisC {
		reasons = append(reasons, "Hepatitis C")
	}
	if donor.HTLV {
		reasons = append(reasons, "HTLV positive")
	}
	if donor.IVDrugUse {
		reasons = append(reasons, "IV drug use history")
	}

	return HardStopResult{
		Eligible: len(reasons) == 0,
		Reasons:  reasons,
	}
}

// CheckTemporaryEligibility evaluates the temporary deferral flags, the
// minimum donation interval and the hemoglobin threshold. Each finding adds a
// warning; the donor remains matchable but is marked ineligible until the
// warnings clear.
func CheckTemporaryEligibility(donor model.DonorProfile, now time.Time) TemporaryResult {
	warnings := []string{}

	if donor.RecentColdFlu {
		warnings = append(warnings, "Recent cold/flu")
	}
	if donor.RecentTattoo {
		warnings = append(warnings, "Recent tattoo")
	}
	if donor.RecentSurgery {
		warnings = append(warnings, "Recent surgery")
	}
	if donor.Pregnant {
		warnings = append(warnings, "Pregnant")
	}
	if donor.RecentVaccination {
		warnings = append(warnings, "Recent vaccination")
	}
	if donor.RecentTravel {
		warnings = append(warnings, "Recent travel")
	}

	if donor.LastDonationDate != nil {
		daysSince := int(now.Sub(*donor.LastDonationDate).Hours() / 24)
		if daysSince < MinDonationIntervalDays {
			warnings = append(warnings, fmt.Sprintf("Last donation was %d days ago (min %d required)", daysSince, MinDonationIntervalDays))
		}
	}

	// Hemoglobin of 0 means not reported; skip the check rather than warn.
	if donor.HemoglobinLevel > 0 {
		threshold := hemoglobinThreshold(donor.Gender)
		if donor.HemoglobinLevel < threshold {
			warnings = append(warnings, fmt.Sprintf("Hemoglobin %.1f g/dL below %.1f g/dL minimum", donor.HemoglobinLevel, threshold))
		}
	}

	return TemporaryResult{
		Eligible: len(warnings) == 0,
		Warnings: warnings,
	}
}

// hemoglobinThreshold returns the minimum hemoglobin for the donor's gender.
// Unrecognized or absent gender falls back to the male threshold.
func hemoglobinThreshold(gender string) float64 {
	if strings.EqualFold(gender, "female") {
		return MinHemoglobinFemale
	}
	return MinHemoglobinMale
}
