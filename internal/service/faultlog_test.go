package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pumpstation/internal/models"
)

func TestFaultLogService_List_PassesNormalizedFilter(t *testing.T) {
	repo := &stubFaultRepo{events: []models.FaultEvent{{ID: "e1", Severity: models.SeverityHigh}}}
	svc := NewFaultLogService(repo)

	loc, _ := time.LoadLocation("Asia/Tokyo")
	from := time.Date(2026, 8, 1, 9, 0, 0, 0, loc)

	events, err := svc.List(context.Background(), FaultFilter{
		From:     from,
		Severity: "high",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if repo.lastFrom.Location() != time.UTC {
		t.Fatalf("expected from to be normalized to UTC")
	}
	if repo.lastSeverity != models.SeverityHigh {
		t.Fatalf("expected canonical severity, got %q", repo.lastSeverity)
	}
}

func TestFaultLogService_List_RejectsInvertedRange(t *testing.T) {
	svc := NewFaultLogService(&stubFaultRepo{})
	now := time.Now().UTC()

	_, err := svc.List(context.Background(), FaultFilter{From: now, To: now.Add(-time.Hour)})
	if err == nil {
		t.Fatalf("expected error for inverted range")
	}
}

func TestFaultLogService_List_RejectsUnknownSeverity(t *testing.T) {
	svc := NewFaultLogService(&stubFaultRepo{})

	_, err := svc.List(context.Background(), FaultFilter{Severity: "bogus"})
	if !errors.Is(err, ErrInvalidSeverity) {
		t.Fatalf("expected ErrInvalidSeverity, got %v", err)
	}
}

func TestFaultLogService_List_WrapsStoreFailure(t *testing.T) {
	svc := NewFaultLogService(&stubFaultRepo{listErr: errors.New("db down")})

	_, err := svc.List(context.Background(), FaultFilter{})
	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected StoreError, got %v", err)
	}
}
