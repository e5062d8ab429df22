package state

import (
	"time"

	"github.com/google/uuid"
)

// AlertRetention is how long an alert stays visible before
// PurgeOldAlerts removes it.
const AlertRetention = 30 * time.Minute

// AlertSource identifies what raised an alert: the operator itself,
// or a specific agent.
type AlertSource struct {
	Operator bool
	AgentID  *uuid.UUID
}

// Alert is an operator- or agent-raised notice surfaced to operators
// of the fleet.
type Alert struct {
	Source      AlertSource `json:"source"`
	Description string      `json:"description"`
	Timestamp   time.Time   `json:"timestamp"`
}

// AlertState is the append-only, retention-pruned log of alerts.
type AlertState struct {
	alerts []Alert
	now    func() time.Time
}

// NewAlertState constructs an empty alert log.
func NewAlertState() *AlertState {
	return &AlertState{now: time.Now}
}

// AddAlert appends a new alert, stamped with the current time.
func (s *AlertState) AddAlert(source AlertSource, description string) Alert {
	alert := Alert{Source: source, Description: description, Timestamp: s.now()}
	s.alerts = append(s.alerts, alert)
	return alert
}

// Iter returns every stored alert, i.e. every alert not yet removed by
// PurgeOldAlerts.
func (s *AlertState) Iter() []Alert {
	out := make([]Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}

// PurgeOldAlerts drops alerts older than AlertRetention.
func (s *AlertState) PurgeOldAlerts() {
	cutoff := s.now().Add(-AlertRetention)
	kept := s.alerts[:0]
	for _, alert := range s.alerts {
		if alert.Timestamp.After(cutoff) {
			kept = append(kept, alert)
		}
	}
	s.alerts = kept
}
