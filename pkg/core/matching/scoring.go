package matching

import (
	"strings"
	"time"

	"github.com/bhyulljz/rakt-matching/pkg/core/model"
)

// Score components shared by the scoring strategies.
const (
	// PointsBloodTypeCompatible is awarded to every donor whose blood type
	// can supply the recipient at all.
	PointsBloodTypeCompatible = 40

	// PointsExactBloodTypeMatch is awarded on top when donor and recipient
	// share the same blood type.
	PointsExactBloodTypeMatch = 10

	// PointsTemporaryEligible is the ceiling for the temporary eligibility
	// component; each warning costs PenaltyPerTemporaryWarning.
	PointsTemporaryEligible    = 20
	PenaltyPerTemporaryWarning = 5

	// PointsAntigenEligible is the ceiling for the antigen eligibility
	// component in the primary strategy; each antigen warning costs
	// PenaltyPerAntigenWarning.
	PointsAntigenEligible    = 15
	PenaltyPerAntigenWarning = 3

	// PointsPerAntigenMatch is awarded per individual matched antigen in the
	// primary strategy, on top of the eligibility component.
	PointsPerAntigenMatch = 2

	// PointsPerAntigenCategory is the flat bonus per matched antigen category
	// (rhVariants, Kell, Duffy, Kidd) in the simplified strategy.
	PointsPerAntigenCategory = 3

	PointsLocationMatch    = 10
	PointsEmergencyWilling = 5

	// MaxDonationHistoryPoints caps the donation-history bonus; each prior
	// donation is worth one point up to the cap.
	MaxDonationHistoryPoints = 10

	// MinimumViableScore is the match threshold: donors scoring below it are
	// not considered real candidates even when mechanically compatible.
	MinimumViableScore = 40

	// MaxScore clamps the final compatibility score.
	MaxScore = 100
)

// ScoringStrategy computes a 0-100 compatibility score for one donor-recipient
// pair. Implementations must be pure: no I/O, no mutation of the inputs.
//
// Two divergent scoring formulas are in circulation with the dashboard; both
// are kept selectable rather than reconciled. PrimaryStrategy is the default.
type ScoringStrategy interface {
	Name() string
	Compute(donor model.DonorProfile, recipient model.RecipientRequest, now time.Time) int
}

// PrimaryStrategy is the full additive scoring model: blood-type base points,
// temporary eligibility component, antigen eligibility component plus a
// per-antigen bonus, then location, emergency and donation-history bonuses.
//
// The antigen contribution double-counts matches as both a flat eligibility
// bonus and a per-antigen bonus. Scores in circulation depend on this, so it
// must not be "fixed".
type PrimaryStrategy struct{}

func NewPrimaryStrategy() *PrimaryStrategy {
	return &PrimaryStrategy{}
}

func (s *PrimaryStrategy) Name() string {
	return "primary"
}

func (s *PrimaryStrategy) Compute(donor model.DonorProfile, recipient model.RecipientRequest, now time.Time) int {
	// Hard gate A: blood type must be able to supply the recipient at all.
	if !CanDonateTo(donor.BloodType, recipient.BloodType) || !donor.BloodType.IsValid() {
		return 0
	}

	// Hard gate B: permanent deferrals zero the score unconditionally.
	if hardStop := CheckHardStopEligibility(donor); !hardStop.Eligible {
		return 0
	}

	score := PointsBloodTypeCompatible
	if donor.BloodType == recipient.BloodType {
		score += PointsExactBloodTypeMatch
	}

	temporary := CheckTemporaryEligibility(donor, now)
	score += penalizedComponent(PointsTemporaryEligible, PenaltyPerTemporaryWarning, len(temporary.Warnings))

	antigen := CheckAntigenCompatibility(donor, recipient)
	score += penalizedComponent(PointsAntigenEligible, PenaltyPerAntigenWarning, len(antigen.Warnings))
	score += PointsPerAntigenMatch * len(antigen.MatchReasons)

	if LocationsMatch(donor.Location, recipient.Location) {
		score += PointsLocationMatch
	}

	if donor.WillingForEmergency && recipient.Urgency == model.UrgencyCritical {
		score += PointsEmergencyWilling
	}

	score += donationHistoryPoints(donor.TotalDonations)

	return clampScore(score)
}

// SimplifiedStrategy is the coarser scorer: no antigen eligibility component,
// a flat bonus per matched antigen category instead of per individual antigen,
// otherwise the same gates and bonuses as the primary strategy.
type SimplifiedStrategy struct{}

func NewSimplifiedStrategy() *SimplifiedStrategy {
	return &SimplifiedStrategy{}
}

func (s *SimplifiedStrategy) Name() string {
	return "simplified"
}

func (s *SimplifiedStrategy) Compute(donor model.DonorProfile, recipient model.RecipientRequest, now time.Time) int {
	if !CanDonateTo(donor.BloodType, recipient.BloodType) || !donor.BloodType.IsValid() {
		return 0
	}

	if hardStop := CheckHardStopEligibility(donor); !hardStop.Eligible {
		return 0
	}

	score := PointsBloodTypeCompatible
	if donor.BloodType == recipient.BloodType {
		score += PointsExactBloodTypeMatch
	}

	temporary := CheckTemporaryEligibility(donor, now)
	score += penalizedComponent(PointsTemporaryEligible, PenaltyPerTemporaryWarning, len(temporary.Warnings))

	score += PointsPerAntigenCategory * matchedAntigenCategories(donor, recipient)

	if LocationsMatch(donor.Location, recipient.Location) {
		score += PointsLocationMatch
	}

	if donor.WillingForEmergency && recipient.Urgency == model.UrgencyCritical {
		score += PointsEmergencyWilling
	}

	score += donationHistoryPoints(donor.TotalDonations)

	return clampScore(score)
}

// matchedAntigenCategories counts the matched categories for the simplified
// strategy: the four Rh sub-antigens count together as one "rhVariants"
// category, then Kell, Duffy and Kidd each count on their own.
func matchedAntigenCategories(donor model.DonorProfile, recipient model.RecipientRequest) int {
	count := 0

	rhMatched := (recipient.RhVariants.BigC && donor.RhVariants.BigC) ||
		(recipient.RhVariants.SmallC && donor.RhVariants.SmallC) ||
		(recipient.RhVariants.BigE && donor.RhVariants.BigE) ||
		(recipient.RhVariants.SmallE && donor.RhVariants.SmallE)
	if rhMatched {
		count++
	}

	if recipient.Kell && donor.Kell {
		count++
	}
	if recipient.Duffy && donor.Duffy {
		count++
	}
	if recipient.Kidd && donor.Kidd {
		count++
	}

	return count
}

// LocationsMatch applies the crude location heuristic: case-insensitive
// substring containment in either direction. It is not a geo-distance
// calculation. Empty locations never match.
func LocationsMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	la := strings.ToLower(a)
	lb := strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

// penalizedComponent computes max(0, ceiling - penalty*warnings).
func penalizedComponent(ceiling, penalty, warningCount int) int {
	value := ceiling - penalty*warningCount
	if value < 0 {
		return 0
	}
	return value
}

func donationHistoryPoints(totalDonations int) int {
	if totalDonations > MaxDonationHistoryPoints {
		return MaxDonationHistoryPoints
	}
	if totalDonations < 0 {
		return 0
	}
	return totalDonations
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// StrategyByName resolves a configured strategy name. Unknown or empty names
// fall back to the primary strategy.
func StrategyByName(name string) ScoringStrategy {
	if strings.EqualFold(name, "simplified") {
		return NewSimplifiedStrategy()
	}
	return NewPrimaryStrategy()
}
