package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SamMauldin/super-sorting-system/pkg/geometry"
	"github.com/SamMauldin/super-sorting-system/pkg/item"
	"github.com/SamMauldin/super-sorting-system/pkg/state"
)

func TestCalculateCountsSlotsAndOperationsByStatus(t *testing.T) {
	st := state.New()

	loc := geometry.Location{Vec3: geometry.Vec3{X: 0, Y: 64, Z: 0}, Dim: geometry.Overworld}
	full := item.UnhashedItem{ItemID: 1, StackSize: 64, Count: 10}.Hash()
	st.Inventories.SetInventoryAt(loc, []*item.Item{&full, nil, nil}, geometry.Vec3{})

	st.Agents.Register()

	pendingOp := st.Operations.QueueOperation(state.Background, state.OperationKind{Tag: state.KindScanSigns, Location: loc})
	inProgressOp := st.Operations.QueueOperation(state.Background, state.OperationKind{Tag: state.KindScanSigns, Location: loc})
	st.Operations.TakeNextOperation(loc, true)
	_ = pendingOp
	_, _ = st.Operations.SetOperationStatus(inProgressOp.ID, state.InProgress)

	snapshot := Calculate(st)

	assert.Equal(t, 1, snapshot.InventoriesInMem)
	assert.Equal(t, 3, snapshot.TotalSlots)
	assert.Equal(t, 2, snapshot.FreeSlots)
	assert.Equal(t, 1, snapshot.AgentsConnected)
	assert.GreaterOrEqual(t, snapshot.OperationsPending+snapshot.OperationsInProgress, 1)
}

func TestCalculateReportsServiceTickTimes(t *testing.T) {
	st := state.New()
	st.Metrics.RecordTick("defragger", 1500000)

	snapshot := Calculate(st)

	assert.Equal(t, int64(1500), snapshot.ServicesTickTimesMicros["defragger"])
}
