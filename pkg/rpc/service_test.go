package rpc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamMauldin/super-sorting-system/pkg/geometry"
	"github.com/SamMauldin/super-sorting-system/pkg/state"
)

func TestGetStatsReflectsLiveState(t *testing.T) {
	st := state.New()
	srv := &adminServer{state: st}

	st.With(func(st *state.State) {
		st.Agents.Register()
	})

	resp, err := srv.getStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Stats.AgentsConnected)
}

func TestListOperationsFiltersByStatus(t *testing.T) {
	st := state.New()
	srv := &adminServer{state: st}

	loc := geometry.Location{Vec3: geometry.Vec3{X: 0, Y: 0, Z: 0}, Dim: geometry.Overworld}
	st.With(func(st *state.State) {
		st.Operations.QueueOperation(state.Background, state.OperationKind{Tag: state.KindScanSigns, Location: loc})
		op := st.Operations.QueueOperation(state.Background, state.OperationKind{Tag: state.KindScanSigns, Location: loc})
		_, _ = st.Operations.SetOperationStatus(op.ID, state.Complete)
	})

	all, err := srv.listOperations(context.Background(), &ListOperationsRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Operations, 2)

	pending := state.Pending
	onlyPending, err := srv.listOperations(context.Background(), &ListOperationsRequest{Status: &pending})
	require.NoError(t, err)
	assert.Len(t, onlyPending.Operations, 1)
}

func TestPollAlertsSinceOnlyReturnsNewerAlerts(t *testing.T) {
	st := state.New()
	srv := &adminServer{state: st}

	st.With(func(st *state.State) {
		st.Alerts.AddAlert(state.AlertSource{Operator: true}, "first")
	})

	first, newest := srv.pollAlertsSince(time.Time{})
	require.Len(t, first, 1)
	assert.Equal(t, "first", first[0].Description)

	second, _ := srv.pollAlertsSince(newest)
	assert.Empty(t, second)
}
