package handlers

import (
	"context"

	"pumpstation/internal/models"
	"pumpstation/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockCommands struct {
	inst  service.Instructions
	err   error
	calls int
}

func (m *mockCommands) ReadInstructions(ctx context.Context) (service.Instructions, error) {
	m.calls++
	return m.inst, m.err
}

type mockTelemetry struct {
	levelErr error
	pumpErr  error

	lastLevel  int
	levelCalls int
	lastActive bool
	pumpCalls  int
}

func (m *mockTelemetry) ReportLevel(ctx context.Context, level int) error {
	m.levelCalls++
	m.lastLevel = level
	return m.levelErr
}

func (m *mockTelemetry) ConfirmPump(ctx context.Context, active bool) error {
	m.pumpCalls++
	m.lastActive = active
	return m.pumpErr
}

type mockFaults struct {
	reportErr error
	clearErr  error

	lastReport  service.FaultReport
	reportCalls int
	clearCalls  int
}

func (m *mockFaults) Report(ctx context.Context, f service.FaultReport) error {
	m.reportCalls++
	m.lastReport = f
	return m.reportErr
}

func (m *mockFaults) ClearActive(ctx context.Context) error {
	m.clearCalls++
	return m.clearErr
}

type mockControl struct {
	modeErr error
	pumpErr error

	lastMode   bool
	modeCalls  int
	lastActive bool
	pumpCalls  int
}

func (m *mockControl) SetAutomaticMode(ctx context.Context, enabled bool) error {
	m.modeCalls++
	m.lastMode = enabled
	return m.modeErr
}

func (m *mockControl) RequestPump(ctx context.Context, active bool) error {
	m.pumpCalls++
	m.lastActive = active
	return m.pumpErr
}

type mockMonitoring struct {
	snap service.StateSnapshot
	err  error
}

func (m *mockMonitoring) Snapshot(ctx context.Context) (service.StateSnapshot, error) {
	return m.snap, m.err
}

type mockFaultLog struct {
	resp       []models.FaultEvent
	err        error
	lastFilter service.FaultFilter
}

func (m *mockFaultLog) List(ctx context.Context, f service.FaultFilter) ([]models.FaultEvent, error) {
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
