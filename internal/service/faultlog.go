package service

import (
	"context"
	"errors"
	"time"

	"pumpstation/internal/models"
	"pumpstation/internal/repository"
)

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

type FaultLogService struct {
	faultRepo repository.FaultRepo
}

func NewFaultLogService(faultRepo repository.FaultRepo) *FaultLogService {
	return &FaultLogService{faultRepo: faultRepo}
}

// List returns fault history entries matching the filter, oldest first.
func (s *FaultLogService) List(ctx context.Context, f FaultFilter) ([]models.FaultEvent, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, errInvalidTimeRange
	}

	severity := ""
	if f.Severity != "" {
		var err error
		severity, err = NormalizeSeverity(f.Severity)
		if err != nil {
			return nil, err
		}
	}

	events, err := s.faultRepo.List(ctx, from, to, severity)
	if err != nil {
		return nil, storeErr("list faults", err)
	}
	return events, nil
}

// normalizeToUTC returns t in UTC, preserving zero values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
