package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamMauldin/super-sorting-system/pkg/geometry"
	"github.com/SamMauldin/super-sorting-system/pkg/state"
)

// TestAbortedOperationRecoveryTakesOverHoldsAndRescans replays spec.md's
// literal aborted-recovery scenario: an aborted MoveItems op with two
// holds at distinct locations yields one SystemCritical ScanInventory
// op per location, and the original holds are taken over (new ids,
// same location/slot).
func TestAbortedOperationRecoveryTakesOverHoldsAndRescans(t *testing.T) {
	st := state.New()

	src, err := st.Holds.Create(loc(0, 64, 0), 0, geometry.Vec3{})
	require.NoError(t, err)
	dst, err := st.Holds.Create(loc(1, 64, 0), 0, geometry.Vec3{})
	require.NoError(t, err)

	op := st.Operations.QueueOperation(state.Background, state.OperationKind{
		Tag:              state.KindMoveItems,
		SourceHolds:      []uuid.UUID{src.ID},
		DestinationHolds: []uuid.UUID{dst.ID},
		Counts:           []uint32{10},
	})
	_, err = st.Operations.SetOperationStatus(op.ID, state.Aborted)
	require.NoError(t, err)

	NewAbortedOperationRecovery(nil).Tick(st)

	_, ok := st.Holds.Get(src.ID)
	assert.False(t, ok, "original source hold id must be replaced by takeover")
	_, ok = st.Holds.Get(dst.ID)
	assert.False(t, ok, "original destination hold id must be replaced by takeover")

	var scanOps []state.Operation
	for _, o := range st.Operations.Iter(state.Pending) {
		if o.Kind.Tag == state.KindScanInventory {
			scanOps = append(scanOps, o)
		}
	}
	require.Len(t, scanOps, 2, "one rescan per distinct hold location")
	for _, o := range scanOps {
		assert.Equal(t, state.SystemCritical, o.Priority)
	}

	liveHolds := st.Holds.Iter()
	require.Len(t, liveHolds, 2)
	seen := map[geometry.Location]bool{}
	for _, h := range liveHolds {
		seen[h.Location] = true
	}
	assert.True(t, seen[loc(0, 64, 0)])
	assert.True(t, seen[loc(1, 64, 0)])
}

// TestAbortedOperationRecoveryReleasesHoldsOnceRescanCompletes confirms
// the taken-over holds are released once their rescan op terminates,
// and the op is never double-processed.
func TestAbortedOperationRecoveryReleasesHoldsOnceRescanCompletes(t *testing.T) {
	st := state.New()

	src, err := st.Holds.Create(loc(0, 64, 0), 0, geometry.Vec3{})
	require.NoError(t, err)

	op := st.Operations.QueueOperation(state.Background, state.OperationKind{
		Tag:         state.KindMoveItems,
		SourceHolds: []uuid.UUID{src.ID},
	})
	_, err = st.Operations.SetOperationStatus(op.ID, state.Aborted)
	require.NoError(t, err)

	svc := NewAbortedOperationRecovery(nil)
	svc.Tick(st)

	require.Len(t, st.Holds.Iter(), 1)
	takenOver := st.Holds.Iter()[0]

	rescans := st.Operations.Iter(state.Pending)
	require.Len(t, rescans, 1)
	_, err = st.Operations.SetOperationStatus(rescans[0].ID, state.Complete)
	require.NoError(t, err)

	svc.Tick(st)
	_, ok := st.Holds.Get(takenOver.ID)
	assert.False(t, ok, "hold must be released once its rescan op completes")

	// A second tick with the same already-terminal op must not
	// reprocess it (no new holds created, no duplicate rescans).
	before := len(st.Operations.Iter(state.Pending))
	svc.Tick(st)
	assert.Equal(t, before, len(st.Operations.Iter(state.Pending)))
}
