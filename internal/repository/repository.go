package repository

import (
	"context"
	"database/sql"
	"time"

	"pumpstation/internal/models"
)

// StateRepo mutates the singleton system_state record. Every write is a
// single-statement merge restricted to the columns the operation declares,
// so concurrent writers touching disjoint fields never conflict.
type StateRepo interface {
	// Get loads the record. found=false (and no error) when it was never
	// written; reading must not create it.
	Get(ctx context.Context) (models.SystemState, bool, error)

	// MergeWaterLevel sets water_level and refreshes last_seen_at with a
	// store-assigned timestamp, creating the record if absent.
	MergeWaterLevel(ctx context.Context, level int) error

	// MergePumpActive sets pump_active and refreshes last_seen_at with a
	// store-assigned timestamp, creating the record if absent.
	MergePumpActive(ctx context.Context, active bool) error

	// SetAutomaticMode and SetPumpRequest are the dashboard-side writes.
	// They never touch last_seen_at: a dashboard write is not a heartbeat.
	SetAutomaticMode(ctx context.Context, enabled bool) error
	SetPumpRequest(ctx context.Context, active bool) error

	// SetActiveError overwrites the live alert projection unconditionally.
	SetActiveError(ctx context.Context, text string) error

	// ClearActiveError nulls the projection. Clearing an absent record or
	// an already-clear field is a no-op.
	ClearActiveError(ctx context.Context) error
}

// FaultRepo is the append-only fault history.
type FaultRepo interface {
	Append(ctx context.Context, e models.FaultEvent) error
	List(ctx context.Context, from, to time.Time, severity string) ([]models.FaultEvent, error)
}

type Repository struct {
	State  StateRepo
	Faults FaultRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		State:  NewStateSQLite(db),
		Faults: NewFaultSQLite(db),
	}
}
