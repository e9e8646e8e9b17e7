package service

import (
	"context"

	"pumpstation/internal/repository"
)

// TelemetryService handles the device's write path. Both operations
// refresh the heartbeat timestamp; any of them counts as "device online".
type TelemetryService struct {
	stateRepo repository.StateRepo
}

func NewTelemetryService(stateRepo repository.StateRepo) *TelemetryService {
	return &TelemetryService{stateRepo: stateRepo}
}

// ReportLevel stores the latest water level. Re-sending the same level is
// harmless, but the heartbeat is always refreshed.
func (s *TelemetryService) ReportLevel(ctx context.Context, level int) error {
	return storeErr("report level", s.stateRepo.MergeWaterLevel(ctx, level))
}

// ConfirmPump records the physical pump state as the device observed it,
// overriding any pending dashboard request. The protocol is stateless
// about why the pump changed; a confirmation and an autonomous decision
// in automatic mode produce the identical write.
func (s *TelemetryService) ConfirmPump(ctx context.Context, active bool) error {
	return storeErr("confirm pump", s.stateRepo.MergePumpActive(ctx, active))
}
