package db

import "time"

// Request lifecycle states.
const (
	RequestStatusActive    = "active"
	RequestStatusFulfilled = "fulfilled"
	RequestStatusCancelled = "cancelled"
)

// MatchRun is one persisted execution of the matching pipeline for a request.
// Response holds the full MatchingResponse as JSON for display and audit.
type MatchRun struct {
	ID            string
	RequestID     string
	Strategy      string
	PredictorUsed bool
	TotalMatches  int
	Response      []byte
	CreatedAt     time.Time
}
