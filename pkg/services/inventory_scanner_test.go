package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamMauldin/super-sorting-system/pkg/geometry"
	"github.com/SamMauldin/super-sorting-system/pkg/item"
	"github.com/SamMauldin/super-sorting-system/pkg/state"
)

func flatFloorComplex(t *testing.T, st *state.State, name string, dim geometry.Dimension) {
	t.Helper()
	st.SignConfig.AddSign(state.Sign{
		Lines:    [4]string{"SSS", "storage complex", "1,0,0", name},
		Location: geometry.Location{Vec3: geometry.Vec3{X: 0, Y: 64, Z: 0}, Dim: dim},
	})
}

// TestInventoryScannerDiscoversComplexAndQueuesFirstScan replays the
// first half of spec.md's scan + defrag scenario: a single FlatFloor
// complex covering (0,64,0)..(1,64,0) yields SystemCritical
// ScanInventory ops for every never-scanned location in it.
func TestInventoryScannerDiscoversComplexAndQueuesFirstScan(t *testing.T) {
	st := state.New()
	flatFloorComplex(t, st, "floor1", geometry.Overworld)

	NewInventoryScanner(nil).Tick(st)

	pending := st.Operations.Iter(state.Pending)
	require.Len(t, pending, 2)
	for _, op := range pending {
		assert.Equal(t, state.SystemCritical, op.Priority)
		assert.Equal(t, state.KindScanInventory, op.Kind.Tag)
	}
}

// TestInventoryScannerSkipsFreshSnapshot confirms a recently-scanned
// location isn't requeued.
func TestInventoryScannerSkipsFreshSnapshot(t *testing.T) {
	st := state.New()
	flatFloorComplex(t, st, "floor1", geometry.Overworld)

	loc00 := geometry.Location{Vec3: geometry.Vec3{X: 0, Y: 64, Z: 0}, Dim: geometry.Overworld}
	loc10 := geometry.Location{Vec3: geometry.Vec3{X: 1, Y: 64, Z: 0}, Dim: geometry.Overworld}
	st.Inventories.SetInventoryAt(loc00, []*item.Item{}, geometry.Vec3{})
	st.Inventories.SetInventoryAt(loc10, []*item.Item{}, geometry.Vec3{})

	NewInventoryScanner(nil).Tick(st)

	assert.Empty(t, st.Operations.Iter(state.Pending))
}

// TestInventoryScannerWaitsForOutstandingScan confirms it won't
// requeue a location whose scan op is still pending/in-progress.
func TestInventoryScannerWaitsForOutstandingScan(t *testing.T) {
	st := state.New()
	flatFloorComplex(t, st, "floor1", geometry.Overworld)

	svc := NewInventoryScanner(nil)
	svc.Tick(st)
	first := len(st.Operations.Iter(state.Pending))
	require.Equal(t, 2, first)

	svc.Tick(st)
	assert.Equal(t, first, len(st.Operations.Iter(state.Pending)))
}
