package matching

import "github.com/bhyulljz/rakt-matching/pkg/core/model"

// Urgency multipliers used only for priority classification. The adjusted
// value never replaces the stored compatibility score.
const (
	multiplierCritical = 1.5
	multiplierHigh     = 1.2
	multiplierMedium   = 1.0
	multiplierStandard = 0.8

	priorityHighThreshold   = 80.0
	priorityMediumThreshold = 50.0
)

// ClassifyPriority buckets a score into high/medium/low after weighting it by
// the request urgency.
func ClassifyPriority(score int, urgency model.Urgency) model.Priority {
	adjusted := float64(score) * urgencyMultiplier(urgency)

	switch {
	case adjusted >= priorityHighThreshold:
		return model.PriorityHigh
	case adjusted >= priorityMediumThreshold:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

func urgencyMultiplier(urgency model.Urgency) float64 {
	switch urgency {
	case model.UrgencyCritical:
		return multiplierCritical
	case model.UrgencyHigh:
		return multiplierHigh
	case model.UrgencyMedium:
		return multiplierMedium
	default:
		return multiplierStandard
	}
}
