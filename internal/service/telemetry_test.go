package service

import (
	"context"
	"errors"
	"testing"
)

func TestTelemetryService_ReportLevel_MergesLevel(t *testing.T) {
	repo := &stubStateRepo{}
	svc := NewTelemetryService(repo)

	if err := svc.ReportLevel(context.Background(), 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.levels) != 1 || repo.levels[0] != 42 {
		t.Fatalf("expected one merge with level 42, got %v", repo.levels)
	}
}

func TestTelemetryService_ConfirmPump_LastWriteWins(t *testing.T) {
	repo := &stubStateRepo{}
	svc := NewTelemetryService(repo)

	if err := svc.ConfirmPump(context.Background(), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.ConfirmPump(context.Background(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// two writes, two heartbeats; the last value stands
	if len(repo.pumpConfirms) != 2 {
		t.Fatalf("expected 2 pump writes, got %d", len(repo.pumpConfirms))
	}
	if repo.pumpConfirms[1] != false {
		t.Fatalf("expected last write false, got %v", repo.pumpConfirms)
	}
}

func TestTelemetryService_StoreFailuresAreStoreErrors(t *testing.T) {
	repo := &stubStateRepo{
		mergeLevelErr: errors.New("db down"),
		mergePumpErr:  errors.New("db down"),
	}
	svc := NewTelemetryService(repo)

	var storeErr *StoreError
	if err := svc.ReportLevel(context.Background(), 1); !errors.As(err, &storeErr) {
		t.Fatalf("ReportLevel: expected StoreError, got %v", err)
	}
	if err := svc.ConfirmPump(context.Background(), true); !errors.As(err, &storeErr) {
		t.Fatalf("ConfirmPump: expected StoreError, got %v", err)
	}
}
