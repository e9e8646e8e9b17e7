package service

import (
	"context"
	"errors"
	"strings"

	"pumpstation/internal/models"
	"pumpstation/internal/repository"
)

var ErrInvalidSeverity = errors.New("invalid severity: must be High, Medium, or Low")

// FaultsService appends fault reports to the immutable history and keeps
// the single-slot live alert projection in sync.
type FaultsService struct {
	stateRepo repository.StateRepo
	faultRepo repository.FaultRepo
}

func NewFaultsService(stateRepo repository.StateRepo, faultRepo repository.FaultRepo) *FaultsService {
	return &FaultsService{stateRepo: stateRepo, faultRepo: faultRepo}
}

// Report performs the two-step fault write: history append first, then
// the projection merge. The steps are not transactional; if the merge
// fails after the append succeeded, the fault is durably recorded but the
// live alert is not raised, and the merge failure is surfaced as-is.
// Reports are not deduplicated.
func (s *FaultsService) Report(ctx context.Context, f FaultReport) error {
	severity, err := NormalizeSeverity(f.Severity)
	if err != nil {
		return err
	}

	if err := s.faultRepo.Append(ctx, models.FaultEvent{
		Message:  f.Message,
		Code:     f.Code,
		Severity: severity,
	}); err != nil {
		return storeErr("append fault", err)
	}

	projection := f.Code + ": " + f.Message
	return storeErr("set active error", s.stateRepo.SetActiveError(ctx, projection))
}

// ClearActive drops the live alert. The fault history is untouched;
// clearing is a dashboard signal, never a retraction. Idempotent.
func (s *FaultsService) ClearActive(ctx context.Context) error {
	return storeErr("clear active error", s.stateRepo.ClearActiveError(ctx))
}

// NormalizeSeverity validates a reported severity case-insensitively and
// returns its canonical form.
func NormalizeSeverity(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return models.SeverityHigh, nil
	case "medium":
		return models.SeverityMedium, nil
	case "low":
		return models.SeverityLow, nil
	default:
		return "", ErrInvalidSeverity
	}
}
