package service

import (
	"context"
	"testing"
	"time"

	"pumpstation/internal/models"
	"pumpstation/internal/repository"
)

// memoryStore is an in-memory stand-in for the real store with the same
// contract: lazy record creation, field-scoped merges, store-assigned
// heartbeat timestamps, append-only fault history.
type memoryStore struct {
	record *models.SystemState
	faults []models.FaultEvent
	clock  time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{clock: time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)}
}

func (m *memoryStore) now() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memoryStore) ensureRecord() *models.SystemState {
	if m.record == nil {
		m.record = &models.SystemState{}
	}
	return m.record
}

func (m *memoryStore) Get(ctx context.Context) (models.SystemState, bool, error) {
	if m.record == nil {
		return models.SystemState{}, false, nil
	}
	return *m.record, true, nil
}

func (m *memoryStore) MergeWaterLevel(ctx context.Context, level int) error {
	r := m.ensureRecord()
	ts := m.now()
	r.WaterLevel = &level
	r.LastSeenAt = &ts
	return nil
}

func (m *memoryStore) MergePumpActive(ctx context.Context, active bool) error {
	r := m.ensureRecord()
	ts := m.now()
	r.PumpActive = &active
	r.LastSeenAt = &ts
	return nil
}

func (m *memoryStore) SetAutomaticMode(ctx context.Context, enabled bool) error {
	m.ensureRecord().AutomaticMode = &enabled
	return nil
}

func (m *memoryStore) SetPumpRequest(ctx context.Context, active bool) error {
	m.ensureRecord().PumpActive = &active
	return nil
}

func (m *memoryStore) SetActiveError(ctx context.Context, text string) error {
	m.ensureRecord().ActiveError = &text
	return nil
}

func (m *memoryStore) ClearActiveError(ctx context.Context) error {
	if m.record != nil {
		m.record.ActiveError = nil
	}
	return nil
}

func (m *memoryStore) Append(ctx context.Context, e models.FaultEvent) error {
	e.RecordedAt = m.now()
	m.faults = append(m.faults, e)
	return nil
}

func (m *memoryStore) List(ctx context.Context, from, to time.Time, severity string) ([]models.FaultEvent, error) {
	out := make([]models.FaultEvent, 0, len(m.faults))
	for _, e := range m.faults {
		if !from.IsZero() && e.RecordedAt.Before(from) {
			continue
		}
		if !to.IsZero() && e.RecordedAt.After(to) {
			continue
		}
		if severity != "" && e.Severity != severity {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// TestDeviceLifecycle walks the whole protocol against a fresh store:
// default commands, first telemetry, a fault, and the clear.
func TestDeviceLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	repos := &repository.Repository{State: store, Faults: store}
	svc := NewService(repos, 30*time.Second)

	// fresh store: commands read returns defaults and creates nothing
	inst, err := svc.Commands.ReadInstructions(ctx)
	if err != nil {
		t.Fatalf("ReadInstructions: %v", err)
	}
	if inst.AutomaticMode || inst.PumpActive {
		t.Fatalf("expected defaults on fresh store, got %+v", inst)
	}
	if store.record != nil {
		t.Fatalf("read must not create the record")
	}

	// first telemetry creates the record and sets the heartbeat
	if err := svc.Telemetry.ReportLevel(ctx, 42); err != nil {
		t.Fatalf("ReportLevel: %v", err)
	}
	if store.record == nil || store.record.WaterLevel == nil || *store.record.WaterLevel != 42 {
		t.Fatalf("expected water level 42, got %+v", store.record)
	}
	if store.record.LastSeenAt == nil {
		t.Fatalf("expected heartbeat to be set")
	}
	firstSeen := *store.record.LastSeenAt

	// pump confirmation is also a heartbeat
	if err := svc.Telemetry.ConfirmPump(ctx, true); err != nil {
		t.Fatalf("ConfirmPump: %v", err)
	}
	if !store.record.LastSeenAt.After(firstSeen) {
		t.Fatalf("expected heartbeat to advance")
	}

	// a fault raises the live alert and lands in history
	err = svc.Faults.Report(ctx, FaultReport{Message: "Dry run", Code: "E02", Severity: "Medium"})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if store.record.ActiveError == nil || *store.record.ActiveError != "E02: Dry run" {
		t.Fatalf("unexpected active error: %+v", store.record.ActiveError)
	}
	faults, err := svc.FaultLog.List(ctx, FaultFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(faults) != 1 {
		t.Fatalf("expected 1 fault in history, got %d", len(faults))
	}

	// clearing drops the alert but never the history
	if err := svc.Faults.ClearActive(ctx); err != nil {
		t.Fatalf("ClearActive: %v", err)
	}
	if store.record.ActiveError != nil {
		t.Fatalf("expected active error cleared")
	}
	faults, _ = svc.FaultLog.List(ctx, FaultFilter{})
	if len(faults) != 1 {
		t.Fatalf("clearing must not touch history, got %d entries", len(faults))
	}

	// dashboard orders reach the device on the next poll
	if err := svc.Control.SetAutomaticMode(ctx, true); err != nil {
		t.Fatalf("SetAutomaticMode: %v", err)
	}
	if err := svc.Control.RequestPump(ctx, false); err != nil {
		t.Fatalf("RequestPump: %v", err)
	}
	inst, err = svc.Commands.ReadInstructions(ctx)
	if err != nil {
		t.Fatalf("ReadInstructions: %v", err)
	}
	if !inst.AutomaticMode || inst.PumpActive {
		t.Fatalf("expected automatic=true pump=false, got %+v", inst)
	}

	// the snapshot reflects everything, including derived liveness
	snap, err := svc.Monitoring.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.WaterLevel != 42 || !snap.AutomaticMode || snap.ActiveError != nil {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}
