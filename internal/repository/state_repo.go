package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pumpstation/internal/models"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

const (
	systemStateRowID = 1

	// Store-assigned timestamp: evaluated by the SQLite engine, never taken
	// from the caller, so device clocks are irrelevant. %f keeps millisecond
	// precision so rapid heartbeats stay distinguishable.
	sqlNow = `strftime('%Y-%m-%d %H:%M:%f','now')`

	// Timestamps are persisted as UTC text in these layouts. The milli
	// layout pads to three digits, matching strftime %f, so that text
	// comparison in range filters agrees with time ordering.
	timeLayoutMilli = "2006-01-02 15:04:05.000"
	timeLayoutSec   = "2006-01-02 15:04:05"
)

// Each merge statement is a field-scoped upsert: it creates the singleton
// row on first contact and otherwise updates only the columns it names.

const mergeWaterLevelSQL = `
	INSERT INTO system_state (id, water_level, last_seen_at)
	VALUES (?, ?, ` + sqlNow + `)
	ON CONFLICT(id) DO UPDATE SET
		water_level=excluded.water_level,
		last_seen_at=excluded.last_seen_at
`

const mergePumpActiveSQL = `
	INSERT INTO system_state (id, pump_active, last_seen_at)
	VALUES (?, ?, ` + sqlNow + `)
	ON CONFLICT(id) DO UPDATE SET
		pump_active=excluded.pump_active,
		last_seen_at=excluded.last_seen_at
`

const setAutomaticModeSQL = `
	INSERT INTO system_state (id, automatic_mode)
	VALUES (?, ?)
	ON CONFLICT(id) DO UPDATE SET
		automatic_mode=excluded.automatic_mode
`

const setPumpRequestSQL = `
	INSERT INTO system_state (id, pump_active)
	VALUES (?, ?)
	ON CONFLICT(id) DO UPDATE SET
		pump_active=excluded.pump_active
`

const setActiveErrorSQL = `
	INSERT INTO system_state (id, active_error)
	VALUES (?, ?)
	ON CONFLICT(id) DO UPDATE SET
		active_error=excluded.active_error
`

// Clearing uses a plain UPDATE: if the record was never created there is
// nothing to clear, and creating one as a side effect would be wrong.
const clearActiveErrorSQL = `
	UPDATE system_state SET active_error=NULL WHERE id=?
`

const selectStateSQL = `
	SELECT automatic_mode, pump_active, water_level, last_seen_at, active_error
	FROM system_state WHERE id=?
`

func (r *StateSQLite) MergeWaterLevel(ctx context.Context, level int) error {
	_, err := r.db.ExecContext(ctx, mergeWaterLevelSQL, systemStateRowID, level)
	return err
}

func (r *StateSQLite) MergePumpActive(ctx context.Context, active bool) error {
	_, err := r.db.ExecContext(ctx, mergePumpActiveSQL, systemStateRowID, active)
	return err
}

func (r *StateSQLite) SetAutomaticMode(ctx context.Context, enabled bool) error {
	_, err := r.db.ExecContext(ctx, setAutomaticModeSQL, systemStateRowID, enabled)
	return err
}

func (r *StateSQLite) SetPumpRequest(ctx context.Context, active bool) error {
	_, err := r.db.ExecContext(ctx, setPumpRequestSQL, systemStateRowID, active)
	return err
}

func (r *StateSQLite) SetActiveError(ctx context.Context, text string) error {
	_, err := r.db.ExecContext(ctx, setActiveErrorSQL, systemStateRowID, text)
	return err
}

func (r *StateSQLite) ClearActiveError(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, clearActiveErrorSQL, systemStateRowID)
	return err
}

// Get loads the singleton record. A missing row is not an error: the
// record only exists after the first write.
func (r *StateSQLite) Get(ctx context.Context) (models.SystemState, bool, error) {
	row := r.db.QueryRowContext(ctx, selectStateSQL, systemStateRowID)

	var (
		automaticMode sql.NullBool
		pumpActive    sql.NullBool
		waterLevel    sql.NullInt64
		lastSeenAt    sql.NullString
		activeError   sql.NullString
	)
	if err := row.Scan(&automaticMode, &pumpActive, &waterLevel, &lastSeenAt, &activeError); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SystemState{}, false, nil
		}
		return models.SystemState{}, false, err
	}

	var st models.SystemState
	if automaticMode.Valid {
		st.AutomaticMode = &automaticMode.Bool
	}
	if pumpActive.Valid {
		st.PumpActive = &pumpActive.Bool
	}
	if waterLevel.Valid {
		lvl := int(waterLevel.Int64)
		st.WaterLevel = &lvl
	}
	if lastSeenAt.Valid && lastSeenAt.String != "" {
		ts, err := parseStoreTime(lastSeenAt.String)
		if err != nil {
			return models.SystemState{}, false, err
		}
		st.LastSeenAt = &ts
	}
	if activeError.Valid {
		st.ActiveError = &activeError.String
	}
	return st, true, nil
}

// parseStoreTime reads the UTC text timestamps written by sqlNow.
func parseStoreTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(timeLayoutMilli, s, time.UTC)
	if err == nil {
		return t, nil
	}
	return time.ParseInLocation(timeLayoutSec, s, time.UTC)
}
