package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamMauldin/super-sorting-system/pkg/state"
)

// TestAgentExpirationAbortsOperationAndAlerts replays spec.md's aborted
// recovery precondition: an agent two minutes stale is removed, its
// in-flight operation moves to Aborted, and an operator alert is added.
func TestAgentExpirationAbortsOperationAndAlerts(t *testing.T) {
	st := state.New()
	staleNow := time.Now().Add(-2 * time.Minute)
	st.Agents = state.NewAgentStateWithClock(func() time.Time { return staleNow })

	agent := st.Agents.Register()
	op := st.Operations.QueueOperation(state.Background, state.OperationKind{Tag: state.KindScanSigns})
	_, err := st.Operations.SetOperationStatus(op.ID, state.InProgress)
	require.NoError(t, err)
	require.NoError(t, st.Agents.SetOperation(agent.ID, &op.ID))

	svc := NewAgentExpiration(nil)
	svc.Tick(st)

	assert.Empty(t, st.Agents.Iter())

	got, ok := st.Operations.Get(op.ID)
	require.True(t, ok)
	assert.Equal(t, state.Aborted, got.Status)

	alerts := st.Alerts.Iter()
	require.Len(t, alerts, 1)
	assert.True(t, alerts[0].Source.Operator)
}

// TestAgentExpirationLeavesFreshAgentsAlone confirms a recently-seen
// agent survives a tick untouched.
func TestAgentExpirationLeavesFreshAgentsAlone(t *testing.T) {
	st := state.New()
	agent := st.Agents.Register()

	NewAgentExpiration(nil).Tick(st)

	_, ok := st.Agents.Get(agent.ID)
	assert.True(t, ok)
}
