package state

import (
	"time"

	"github.com/google/uuid"
)

// Agent is a worker process polling the operator for work. At most
// one operation is in flight per agent at a time.
type Agent struct {
	ID               uuid.UUID  `json:"id"`
	LastSeen         time.Time  `json:"last_seen"`
	CurrentOperation *uuid.UUID `json:"current_operation,omitempty"`
}

// AgentState is the registry of every registered agent.
type AgentState struct {
	agents map[uuid.UUID]*Agent
	now    func() time.Time
}

// NewAgentState constructs an empty agent registry.
func NewAgentState() *AgentState {
	return &AgentState{agents: make(map[uuid.UUID]*Agent), now: time.Now}
}

// NewAgentStateWithClock constructs an empty agent registry backed by
// a caller-supplied clock, letting tests of timeout-driven behavior
// (agent_expiration) control LastSeen without sleeping.
func NewAgentStateWithClock(now func() time.Time) *AgentState {
	return &AgentState{agents: make(map[uuid.UUID]*Agent), now: now}
}

// Register creates and returns a brand new agent identity.
func (s *AgentState) Register() Agent {
	agent := &Agent{ID: uuid.New(), LastSeen: s.now()}
	s.agents[agent.ID] = agent
	return *agent
}

// GetAndMarkSeen returns the agent for id, stamping LastSeen with the
// current time, or ErrAgentNotFound if unknown.
func (s *AgentState) GetAndMarkSeen(id uuid.UUID) (Agent, error) {
	agent, ok := s.agents[id]
	if !ok {
		return Agent{}, ErrAgentNotFound
	}
	agent.LastSeen = s.now()
	return *agent, nil
}

// Get returns the agent for id without updating LastSeen.
func (s *AgentState) Get(id uuid.UUID) (Agent, bool) {
	agent, ok := s.agents[id]
	if !ok {
		return Agent{}, false
	}
	return *agent, true
}

// Remove deletes the agent for id.
func (s *AgentState) Remove(id uuid.UUID) (Agent, error) {
	agent, ok := s.agents[id]
	if !ok {
		return Agent{}, ErrAgentNotFound
	}
	delete(s.agents, id)
	return *agent, nil
}

// SetOperation records which operation (if any) an agent is currently
// working.
func (s *AgentState) SetOperation(id uuid.UUID, op *uuid.UUID) error {
	agent, ok := s.agents[id]
	if !ok {
		return ErrAgentNotFound
	}
	agent.CurrentOperation = op
	return nil
}

// Iter returns every registered agent.
func (s *AgentState) Iter() []Agent {
	out := make([]Agent, 0, len(s.agents))
	for _, agent := range s.agents {
		out = append(out, *agent)
	}
	return out
}
