package service

import (
	"context"
	"time"

	"pumpstation/internal/models"
)

// stubStateRepo records every write it receives and answers reads from a
// canned state.
type stubStateRepo struct {
	state  models.SystemState
	found  bool
	getErr error

	mergeLevelErr error
	mergePumpErr  error
	setModeErr    error
	setPumpErr    error
	setErrorErr   error
	clearErrorErr error

	levels       []int
	pumpConfirms []bool
	modes        []bool
	pumpRequests []bool
	activeErrors []string
	clears       int
}

func (s *stubStateRepo) Get(ctx context.Context) (models.SystemState, bool, error) {
	return s.state, s.found, s.getErr
}

func (s *stubStateRepo) MergeWaterLevel(ctx context.Context, level int) error {
	s.levels = append(s.levels, level)
	return s.mergeLevelErr
}

func (s *stubStateRepo) MergePumpActive(ctx context.Context, active bool) error {
	s.pumpConfirms = append(s.pumpConfirms, active)
	return s.mergePumpErr
}

func (s *stubStateRepo) SetAutomaticMode(ctx context.Context, enabled bool) error {
	s.modes = append(s.modes, enabled)
	return s.setModeErr
}

func (s *stubStateRepo) SetPumpRequest(ctx context.Context, active bool) error {
	s.pumpRequests = append(s.pumpRequests, active)
	return s.setPumpErr
}

func (s *stubStateRepo) SetActiveError(ctx context.Context, text string) error {
	s.activeErrors = append(s.activeErrors, text)
	return s.setErrorErr
}

func (s *stubStateRepo) ClearActiveError(ctx context.Context) error {
	s.clears++
	return s.clearErrorErr
}

// stubFaultRepo collects appended events.
type stubFaultRepo struct {
	appendErr error
	listErr   error
	events    []models.FaultEvent

	lastFrom     time.Time
	lastTo       time.Time
	lastSeverity string
}

func (s *stubFaultRepo) Append(ctx context.Context, e models.FaultEvent) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.events = append(s.events, e)
	return nil
}

func (s *stubFaultRepo) List(ctx context.Context, from, to time.Time, severity string) ([]models.FaultEvent, error) {
	s.lastFrom, s.lastTo, s.lastSeverity = from, to, severity
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.events, nil
}

func boolPtr(b bool) *bool           { return &b }
func intPtr(i int) *int              { return &i }
func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }
