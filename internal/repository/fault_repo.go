package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"pumpstation/internal/models"

	"github.com/google/uuid"
)

type FaultSQLite struct {
	db *sql.DB
}

func NewFaultSQLite(db *sql.DB) *FaultSQLite { return &FaultSQLite{db: db} }

const insertFaultSQL = `
	INSERT INTO fault_events (id, message, code, severity, recorded_at)
	VALUES (?, ?, ?, ?, ` + sqlNow + `)
`

// Append inserts a new fault event. The id is generated when empty;
// recorded_at is always assigned by the store.
func (r *FaultSQLite) Append(ctx context.Context, e models.FaultEvent) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, insertFaultSQL, e.ID, e.Message, e.Code, e.Severity)
	return err
}

// List returns fault events filtered by [from, to] (inclusive) and/or
// severity, ordered by recorded_at ASC.
func (r *FaultSQLite) List(ctx context.Context, from, to time.Time, severity string) ([]models.FaultEvent, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "recorded_at >= ?")
		args = append(args, from.UTC().Format(timeLayoutMilli))
	}
	if !to.IsZero() {
		conds = append(conds, "recorded_at <= ?")
		args = append(args, to.UTC().Format(timeLayoutMilli))
	}
	if severity = strings.TrimSpace(severity); severity != "" {
		conds = append(conds, "severity = ?")
		args = append(args, severity)
	}

	q := `SELECT id, message, code, severity, recorded_at FROM fault_events`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY recorded_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.FaultEvent, 0, 32)
	for rows.Next() {
		var (
			ev         models.FaultEvent
			recordedAt string
		)
		if err := rows.Scan(&ev.ID, &ev.Message, &ev.Code, &ev.Severity, &recordedAt); err != nil {
			return nil, err
		}
		ts, err := parseStoreTime(recordedAt)
		if err != nil {
			return nil, err
		}
		ev.RecordedAt = ts
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
