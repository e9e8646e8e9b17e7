package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Device protocol metrics
	DeviceRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pumpstation_device_requests_total",
			Help: "Total number of device API requests by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	FaultsReportedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pumpstation_faults_reported_total",
			Help: "Total number of fault reports by severity",
		},
		[]string{"severity"},
	)

	// Process state metrics
	WaterLevel = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pumpstation_water_level",
			Help: "Last water level reported by the device",
		},
	)

	LastHeartbeat = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pumpstation_last_heartbeat_timestamp_seconds",
			Help: "Unix time of the last device heartbeat observed by this process",
		},
	)
)

func init() {
	prometheus.MustRegister(DeviceRequestsTotal)
	prometheus.MustRegister(FaultsReportedTotal)
	prometheus.MustRegister(WaterLevel)
	prometheus.MustRegister(LastHeartbeat)
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
