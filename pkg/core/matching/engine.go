package matching

import (
	"fmt"
	"sort"
	"time"

	"github.com/bhyulljz/rakt-matching/pkg/core/model"
)

// Engine is the deterministic donor-recipient compatibility engine. It is a
// pure, synchronous computation over in-memory inputs: no I/O, no shared
// state, safe for concurrent use with distinct inputs. It never mutates its
// arguments and allocates only per-call data.
type Engine struct {
	strategy ScoringStrategy

	// now is injectable for deterministic tests.
	now func() time.Time
}

// NewEngine creates an engine using the given scoring strategy. A nil
// strategy selects the primary one.
func NewEngine(strategy ScoringStrategy) *Engine {
	if strategy == nil {
		strategy = NewPrimaryStrategy()
	}
	return &Engine{
		strategy: strategy,
		now:      time.Now,
	}
}

// NewEngineAt creates an engine with a fixed clock.
func NewEngineAt(strategy ScoringStrategy, now func() time.Time) *Engine {
	e := NewEngine(strategy)
	if now != nil {
		e.now = now
	}
	return e
}

// Strategy returns the engine's scoring strategy.
func (e *Engine) Strategy() ScoringStrategy {
	return e.strategy
}

// Match evaluates every donor against the request and returns the ranked,
// explained, filtered matches.
//
// Malformed donor records never abort the run: a donor with a missing or
// unrecognized blood type is silently excluded. A request without a valid
// blood type produces a valid, empty response.
func (e *Engine) Match(request model.RecipientRequest, donors []model.DonorProfile) model.MatchingResponse {
	now := e.now()
	matches := make([]model.MatchResult, 0, len(donors))

	for _, donor := range donors {
		// Incompatible or garbage blood types are skipped, not errored.
		if !donor.BloodType.IsValid() || !CanDonateTo(donor.BloodType, request.BloodType) {
			continue
		}

		// Hard stops exclude the donor entirely regardless of any bonus.
		if hardStop := CheckHardStopEligibility(donor); !hardStop.Eligible {
			continue
		}

		temporary := CheckTemporaryEligibility(donor, now)
		antigen := CheckAntigenCompatibility(donor, request)
		score := e.strategy.Compute(donor, request, now)

		if score < MinimumViableScore {
			continue
		}

		matches = append(matches, e.buildResult(donor, request, score, temporary, antigen))
	}

	// Stable sort keeps input order for equal scores.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CompatibilityScore > matches[j].CompatibilityScore
	})

	return model.MatchingResponse{
		RequestID:         request.ID,
		RecipientName:     request.UserName,
		BloodTypeNeeded:   request.BloodType,
		Urgency:           request.Urgency,
		Matches:           matches,
		TotalMatchesFound: len(matches),
		ModelUsed:         e.strategy.Name(),
		Timestamp:         now.UTC(),
	}
}

// buildResult assembles the denormalized match record with its explanation
// strings, eligibility flag and priority bucket.
func (e *Engine) buildResult(
	donor model.DonorProfile,
	request model.RecipientRequest,
	score int,
	temporary TemporaryResult,
	antigen AntigenResult,
) model.MatchResult {
	reasons := []string{
		fmt.Sprintf("Blood type %s compatible with %s", donor.BloodType, request.BloodType),
	}
	if donor.BloodType == request.BloodType {
		reasons = append(reasons, "Exact blood type match")
	}
	reasons = append(reasons, antigen.MatchReasons...)
	if LocationsMatch(donor.Location, request.Location) {
		reasons = append(reasons, "Location proximity match")
	}
	if donor.WillingForEmergency && request.Urgency == model.UrgencyCritical {
		reasons = append(reasons, "Available for emergency donation")
	}
	if donor.TotalDonations >= 5 {
		reasons = append(reasons, fmt.Sprintf("Experienced donor (%d donations)", donor.TotalDonations))
	}

	warnings := make([]string, 0, len(temporary.Warnings)+len(antigen.Warnings))
	warnings = append(warnings, temporary.Warnings...)
	warnings = append(warnings, antigen.Warnings...)

	return model.MatchResult{
		DonorID:           donor.ID,
		DonorName:         donor.Name,
		DonorBloodType:    donor.BloodType,
		DonorLocation:     donor.Location,
		DonorContact:      donor.ContactNumber,
		DonorAvailability: donor.Availability,
		RhVariants:        donor.RhVariants,
		Kell:              donor.Kell,
		Duffy:             donor.Duffy,
		Kidd:              donor.Kidd,
		TotalDonations:    donor.TotalDonations,
		LastDonationDate:  donor.LastDonationDate,

		CompatibilityScore: score,
		MatchReasons:       reasons,
		Warnings:           warnings,
		IsEligible:         temporary.Eligible && antigen.Compatible,
		Priority:           ClassifyPriority(score, request.Urgency),
	}
}
