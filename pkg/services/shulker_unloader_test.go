package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamMauldin/super-sorting-system/pkg/geometry"
	"github.com/SamMauldin/super-sorting-system/pkg/item"
	"github.com/SamMauldin/super-sorting-system/pkg/state"
)

func fullSingleItemShulker() *item.Item {
	contained := make([]item.Item, shulkerSlotCount)
	for i := range contained {
		contained[i] = bulkItem()
	}
	it := item.UnhashedItem{ItemID: 100, StackSize: 1}.Hash()
	it.Count = 1
	it.ShulkerData = &item.ShulkerData{ContainedItems: contained}
	return &it
}

// TestShulkerUnloaderUnpacksFullShulker confirms a full, unnamed,
// single-item shulker with 27 empty destination slots and a shulker
// station available is queued for unpacking.
func TestShulkerUnloaderUnpacksFullShulker(t *testing.T) {
	st := state.New()

	st.Inventories.SetInventoryAt(loc(0, 64, 0), []*item.Item{fullSingleItemShulker()}, geometry.Vec3{})
	dest := make([]*item.Item, shulkerSlotCount)
	st.Inventories.SetInventoryAt(loc(1, 64, 0), dest, geometry.Vec3{})
	addShulkerStation(t, st, "station1", loc(10, 10, 10))

	NewShulkerUnloader(nil).Tick(st)

	pending := st.Operations.Iter(state.Pending)
	require.Len(t, pending, 1)
	op := pending[0]
	require.Equal(t, state.KindUnloadShulker, op.Kind.Tag)
	assert.Len(t, op.Kind.DestinationHolds, shulkerSlotCount)
	assert.Equal(t, loc(10, 10, 10), op.Kind.ShulkerStationLocation)
	assert.Len(t, op.Holds(), shulkerSlotCount+1)
}

// TestShulkerUnloaderSkipsWhenBulkStockAlreadyExists confirms the
// unloader leaves a full shulker packed when the network already holds
// a full shulker's worth of that item loose.
func TestShulkerUnloaderSkipsWhenBulkStockAlreadyExists(t *testing.T) {
	st := state.New()

	st.Inventories.SetInventoryAt(loc(0, 64, 0), []*item.Item{fullSingleItemShulker()}, geometry.Vec3{})

	surplus := make([]*item.Item, shulkerSlotCount)
	for i := range surplus {
		it := bulkItem()
		surplus[i] = &it
	}
	st.Inventories.SetInventoryAt(loc(2, 64, 0), surplus, geometry.Vec3{})

	dest := make([]*item.Item, shulkerSlotCount)
	st.Inventories.SetInventoryAt(loc(1, 64, 0), dest, geometry.Vec3{})
	addShulkerStation(t, st, "station1", loc(10, 10, 10))

	NewShulkerUnloader(nil).Tick(st)

	assert.Empty(t, st.Operations.Iter(state.Pending))
}
