package service

import (
	"context"

	"pumpstation/internal/repository"
)

// ControlService carries the dashboard's writes into the shared record.
// Neither write is a heartbeat: only the device refreshes last_seen_at.
type ControlService struct {
	stateRepo repository.StateRepo
}

func NewControlService(stateRepo repository.StateRepo) *ControlService {
	return &ControlService{stateRepo: stateRepo}
}

func (s *ControlService) SetAutomaticMode(ctx context.Context, enabled bool) error {
	return storeErr("set automatic mode", s.stateRepo.SetAutomaticMode(ctx, enabled))
}

// RequestPump writes the desired pump state. The value holds until the
// device's next confirmation overwrites it with ground truth; concurrent
// writes resolve by arrival order.
func (s *ControlService) RequestPump(ctx context.Context, active bool) error {
	return storeErr("request pump", s.stateRepo.SetPumpRequest(ctx, active))
}
