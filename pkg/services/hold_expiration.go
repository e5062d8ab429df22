package services

import (
	"time"

	"github.com/SamMauldin/super-sorting-system/pkg/config"
	"github.com/SamMauldin/super-sorting-system/pkg/state"
)

// HoldExpiration keeps holds referenced by non-terminal operations
// alive, then reaps everything else past its TTL.
type HoldExpiration struct{}

// NewHoldExpiration constructs a HoldExpiration service.
func NewHoldExpiration(_ *config.Config) *HoldExpiration { return &HoldExpiration{} }

func (s *HoldExpiration) Name() string { return "hold_expiration" }

func (s *HoldExpiration) Tick(st *state.State) {
	for _, op := range st.Operations.Iter(state.InProgress) {
		for _, h := range op.Holds() {
			st.Holds.Renew(h)
		}
	}
	for _, op := range st.Operations.Iter(state.Pending) {
		for _, h := range op.Holds() {
			st.Holds.Renew(h)
		}
	}

	now := time.Now()
	for _, hold := range st.Holds.Iter() {
		if hold.ValidUntil.Before(now) {
			st.Holds.Remove(hold.ID)
		}
	}
}
