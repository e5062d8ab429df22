package services

import (
	"fmt"
	"time"

	"github.com/SamMauldin/super-sorting-system/pkg/config"
	"github.com/SamMauldin/super-sorting-system/pkg/state"
)

const agentTimeout = time.Minute

// AgentExpiration removes agents that have stopped polling and aborts
// whatever they had in flight.
type AgentExpiration struct{}

// NewAgentExpiration constructs an AgentExpiration service.
func NewAgentExpiration(_ *config.Config) *AgentExpiration { return &AgentExpiration{} }

func (s *AgentExpiration) Name() string { return "agent_expiration" }

func (s *AgentExpiration) Tick(st *state.State) {
	cutoff := time.Now().Add(-agentTimeout)

	var toRemove []state.Agent
	for _, agent := range st.Agents.Iter() {
		if agent.LastSeen.Before(cutoff) {
			toRemove = append(toRemove, agent)
		}
	}

	for _, agent := range toRemove {
		st.Agents.Remove(agent.ID)

		if agent.CurrentOperation == nil {
			continue
		}
		op, err := st.Operations.SetOperationStatus(*agent.CurrentOperation, state.Aborted)
		if err != nil {
			continue
		}
		st.Alerts.AddAlert(state.AlertSource{Operator: true},
			fmt.Sprintf("agent %s timed out while operation %s was in progress", agent.ID, op.ID))
	}
}
