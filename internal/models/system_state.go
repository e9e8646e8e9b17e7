package models

import "time"

// SystemState is the singleton record shared between the device and the
// dashboard. Fields are pointers because the record is created lazily: a
// field that was never written is absent, not zero. Defaults are resolved
// at the read boundary, never at write time.
type SystemState struct {
	AutomaticMode *bool      `json:"automatic_mode,omitempty"` // dashboard-owned
	PumpActive    *bool      `json:"pump_active,omitempty"`    // requested by dashboard, confirmed by device
	WaterLevel    *int       `json:"water_level,omitempty"`    // device-owned
	LastSeenAt    *time.Time `json:"last_seen_at,omitempty"`   // store-assigned heartbeat
	ActiveError   *string    `json:"active_error,omitempty"`   // "CODE: message", nil when clear
}
