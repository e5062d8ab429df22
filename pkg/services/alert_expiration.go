package services

import (
	"github.com/SamMauldin/super-sorting-system/pkg/config"
	"github.com/SamMauldin/super-sorting-system/pkg/state"
)

// AlertExpiration delegates to the alert log's own retention sweep.
type AlertExpiration struct{}

// NewAlertExpiration constructs an AlertExpiration service.
func NewAlertExpiration(_ *config.Config) *AlertExpiration { return &AlertExpiration{} }

func (s *AlertExpiration) Name() string { return "alert_expiration" }

func (s *AlertExpiration) Tick(st *state.State) {
	st.Alerts.PurgeOldAlerts()
}
