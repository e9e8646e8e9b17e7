package service

import (
	"context"
	"time"

	"pumpstation/internal/repository"
)

const defaultOfflineAfter = 30 * time.Second

// MonitoringService builds the dashboard read model. The staleness
// threshold is dashboard-side policy; the device paths never consult it.
type MonitoringService struct {
	stateRepo    repository.StateRepo
	offlineAfter time.Duration
	now          func() time.Time // injectable for tests
}

func NewMonitoringService(stateRepo repository.StateRepo, offlineAfter time.Duration) *MonitoringService {
	if offlineAfter <= 0 {
		offlineAfter = defaultOfflineAfter
	}
	return &MonitoringService{
		stateRepo:    stateRepo,
		offlineAfter: offlineAfter,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Snapshot returns the current state with missing fields resolved to
// defaults and the online flag derived from the last heartbeat. A store
// that was never written yields the all-defaults snapshot.
func (s *MonitoringService) Snapshot(ctx context.Context) (StateSnapshot, error) {
	st, found, err := s.stateRepo.Get(ctx)
	if err != nil {
		return StateSnapshot{}, storeErr("load state", err)
	}
	if !found {
		return StateSnapshot{}, nil
	}

	snap := StateSnapshot{
		AutomaticMode: boolOrFalse(st.AutomaticMode),
		PumpActive:    boolOrFalse(st.PumpActive),
		ActiveError:   st.ActiveError,
	}
	if st.WaterLevel != nil {
		snap.WaterLevel = *st.WaterLevel
	}
	if st.LastSeenAt != nil {
		ts := st.LastSeenAt.UTC()
		snap.LastSeenAt = &ts
		snap.Online = s.now().Sub(ts) < s.offlineAfter
	}
	return snap, nil
}
