package state

import "time"

// MetricsState tracks per-service tick durations, keyed by service
// name, so stats and alerting can surface which service is slow.
type MetricsState struct {
	ServicesTickTime map[string]time.Duration
}

// NewMetricsState constructs an empty metrics registry.
func NewMetricsState() *MetricsState {
	return &MetricsState{ServicesTickTime: make(map[string]time.Duration)}
}

// RecordTick stores how long a single service's tick took.
func (m *MetricsState) RecordTick(service string, d time.Duration) {
	m.ServicesTickTime[service] = d
}
