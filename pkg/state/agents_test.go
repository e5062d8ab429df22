package state

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentRegisterAndMarkSeen(t *testing.T) {
	s := NewAgentState()
	agent := s.Register()

	got, err := s.GetAndMarkSeen(agent.ID)
	require.NoError(t, err)
	assert.Equal(t, agent.ID, got.ID)

	_, err = s.GetAndMarkSeen(uuid.New())
	assert.ErrorIs(t, err, ErrAgentNotFound)
}

func TestAgentSetOperationAndRemove(t *testing.T) {
	s := NewAgentState()
	agent := s.Register()
	opID := uuid.New()

	require.NoError(t, s.SetOperation(agent.ID, &opID))
	got, _ := s.Get(agent.ID)
	require.NotNil(t, got.CurrentOperation)
	assert.Equal(t, opID, *got.CurrentOperation)

	_, err := s.Remove(agent.ID)
	require.NoError(t, err)
	_, ok := s.Get(agent.ID)
	assert.False(t, ok)
}
