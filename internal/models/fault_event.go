package models

import "time"

// Fault severities.
const (
	SeverityHigh   = "High"
	SeverityMedium = "Medium"
	SeverityLow    = "Low"
)

// FaultEvent is one immutable entry in the fault history. Events are only
// ever appended; there is no update or delete path.
type FaultEvent struct {
	ID         string    `json:"id"`
	Message    string    `json:"message"`
	Code       string    `json:"code"`
	Severity   string    `json:"severity"` // High | Medium | Low
	RecordedAt time.Time `json:"recorded_at"`
}
