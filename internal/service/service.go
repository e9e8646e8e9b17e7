package service

import (
	"context"
	"time"

	"pumpstation/internal/models"
	"pumpstation/internal/repository"
)

// Commands is the device's read path: the operating instructions derived
// from the shared state record.
type Commands interface {
	ReadInstructions(ctx context.Context) (Instructions, error)
}

// Telemetry is the device's write path: level reports and pump
// confirmations, both of which double as heartbeats.
type Telemetry interface {
	ReportLevel(ctx context.Context, level int) error
	ConfirmPump(ctx context.Context, active bool) error
}

// Faults records fault reports into the history log and mirrors the
// latest one into the live alert projection.
type Faults interface {
	Report(ctx context.Context, f FaultReport) error
	ClearActive(ctx context.Context) error
}

// Control is the dashboard's write path into the shared record.
type Control interface {
	SetAutomaticMode(ctx context.Context, enabled bool) error
	RequestPump(ctx context.Context, active bool) error
}

// Monitoring is the dashboard's read path: the full state snapshot with
// derived liveness.
type Monitoring interface {
	Snapshot(ctx context.Context) (StateSnapshot, error)
}

// FaultLog exposes the append-only fault history with filtering.
type FaultLog interface {
	List(ctx context.Context, f FaultFilter) ([]models.FaultEvent, error)
}

// Instructions is what the device polls for. Missing record or missing
// fields resolve to the safe default: everything off.
type Instructions struct {
	AutomaticMode bool `json:"automatic_mode"`
	PumpActive    bool `json:"pump_active"`
}

// FaultReport is a device-submitted fault.
type FaultReport struct {
	Message  string
	Code     string
	Severity string // High | Medium | Low, case-insensitive on input
}

// FaultFilter narrows fault history queries.
type FaultFilter struct {
	From     time.Time // inclusive; zero means no lower bound
	To       time.Time // inclusive; zero means no upper bound
	Severity string    // "", or one of the severity levels
}

// StateSnapshot is the dashboard read model: the record with defaults
// resolved, plus liveness derived from the heartbeat timestamp.
type StateSnapshot struct {
	AutomaticMode bool       `json:"automatic_mode"`
	PumpActive    bool       `json:"pump_active"`
	WaterLevel    int        `json:"water_level"`
	LastSeenAt    *time.Time `json:"last_seen_at,omitempty"`
	ActiveError   *string    `json:"active_error,omitempty"`
	Online        bool       `json:"online"`
}

// Service aggregates all sub-services.
type Service struct {
	Commands
	Telemetry
	Faults
	Control
	Monitoring
	FaultLog
}

// NewService wires the repository layer into concrete services.
// offlineAfter is the dashboard-side staleness threshold used to derive
// the online flag; it is never enforced against the device paths.
func NewService(repos *repository.Repository, offlineAfter time.Duration) *Service {
	return &Service{
		Commands:   NewCommandsService(repos.State),
		Telemetry:  NewTelemetryService(repos.State),
		Faults:     NewFaultsService(repos.State, repos.Faults),
		Control:    NewControlService(repos.State),
		Monitoring: NewMonitoringService(repos.State, offlineAfter),
		FaultLog:   NewFaultLogService(repos.Faults),
	}
}
