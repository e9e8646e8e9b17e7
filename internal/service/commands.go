package service

import (
	"context"

	"pumpstation/internal/repository"
)

// CommandsService serves the device's polling read. It never mutates
// state, so the device can call it at arbitrary frequency.
type CommandsService struct {
	stateRepo repository.StateRepo
}

func NewCommandsService(stateRepo repository.StateRepo) *CommandsService {
	return &CommandsService{stateRepo: stateRepo}
}

// ReadInstructions returns the dashboard's current orders for the device.
// A record that does not exist yet, or fields that were never written,
// resolve to the safe default: manual mode, pump off.
func (s *CommandsService) ReadInstructions(ctx context.Context) (Instructions, error) {
	st, found, err := s.stateRepo.Get(ctx)
	if err != nil {
		return Instructions{}, storeErr("read instructions", err)
	}
	if !found {
		return Instructions{}, nil
	}
	return Instructions{
		AutomaticMode: boolOrFalse(st.AutomaticMode),
		PumpActive:    boolOrFalse(st.PumpActive),
	}, nil
}

func boolOrFalse(b *bool) bool {
	return b != nil && *b
}
