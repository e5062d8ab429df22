package state

import "sync"

// State is the single aggregate owning every registry the operator
// tracks. It is guarded by one exclusive mutex: every request
// handler and every service tick locks State for its whole duration,
// matching the single-writer model the rest of the system assumes.
// The only lock below this is SignConfigState's own mutex around its
// sign list and compiled-topology cache.
type State struct {
	mu sync.Mutex

	Inventories *InventoryState
	Operations  *OperationState
	Agents      *AgentState
	Alerts      *AlertState
	Holds       *HoldState
	SignConfig  *SignConfigState
	Metrics     *MetricsState
}

// New constructs an empty State with every registry initialized.
func New() *State {
	return &State{
		Inventories: NewInventoryState(),
		Operations:  NewOperationState(),
		Agents:      NewAgentState(),
		Alerts:      NewAlertState(),
		Holds:       NewHoldState(),
		SignConfig:  NewSignConfigState(),
		Metrics:     NewMetricsState(),
	}
}

// With runs fn while holding the exclusive lock over every registry.
// Callers must not retain pointers obtained from fn past its return.
func (s *State) With(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
}
