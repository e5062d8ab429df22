package services

import (
	"github.com/google/uuid"

	"github.com/SamMauldin/super-sorting-system/pkg/config"
	"github.com/SamMauldin/super-sorting-system/pkg/geometry"
	"github.com/SamMauldin/super-sorting-system/pkg/state"
)

const shulkerSlotCount = 27

// ShulkerLoader packs 27 full stacks of a single bulky item into an
// empty, unnamed shulker at a shulker station.
type ShulkerLoader struct {
	outstanding *uuid.UUID
}

// NewShulkerLoader constructs an idle ShulkerLoader.
func NewShulkerLoader(_ *config.Config) *ShulkerLoader { return &ShulkerLoader{} }

func (s *ShulkerLoader) Name() string { return "shulker_loader" }

func (s *ShulkerLoader) Tick(st *state.State) {
	if s.outstanding != nil {
		op, ok := st.Operations.Get(*s.outstanding)
		if ok {
			if op.Status == state.Pending || op.Status == state.InProgress {
				return
			}
			for _, h := range op.Holds() {
				st.Holds.Remove(h)
			}
		}
		s.outstanding = nil
	}

	listing := st.Inventories.GetListing(state.ShulkerUnpackingNone)

	for _, entry := range listing {
		if entry.Sample.ShulkerData != nil {
			continue
		}
		if entry.Count < 2*entry.Sample.StackSize*shulkerSlotCount {
			continue
		}

		var fullStacks []state.SlotRef
		for _, slot := range st.Inventories.IterSlots() {
			if len(fullStacks) == shulkerSlotCount {
				break
			}
			if slot.Item == nil || slot.Item.StackableHash != entry.StackableHash {
				continue
			}
			if slot.Item.Count != slot.Item.StackSize {
				continue
			}
			if _, held := st.Holds.ExistingHold(slot.Location, slot.Slot); held {
				continue
			}
			fullStacks = append(fullStacks, slot)
		}

		if len(fullStacks) != shulkerSlotCount {
			continue
		}

		stationLoc, ok := findShulkerStation(st)
		if !ok {
			return
		}

		emptyShulker, ok := findEmptyUnnamedShulker(st)
		if !ok {
			return
		}
		shulkerHold, err := st.Holds.Create(emptyShulker.Location, emptyShulker.Slot, emptyShulker.OpenFrom)
		if err != nil {
			return
		}

		sourceHolds := make([]*uuid.UUID, 0, shulkerSlotCount)
		for _, slot := range fullStacks {
			hold, err := st.Holds.Create(slot.Location, slot.Slot, slot.OpenFrom)
			if err != nil {
				continue
			}
			id := hold.ID
			sourceHolds = append(sourceHolds, &id)
		}

		op := st.Operations.QueueOperation(state.Background, state.OperationKind{
			Tag:                    state.KindLoadShulker,
			ShulkerStationLocation: stationLoc,
			ShulkerHold:            shulkerHold.ID,
			LoadSourceHolds:        sourceHolds,
		})
		s.outstanding = &op.ID
		return
	}
}

func findShulkerStation(st *state.State) (geometry.Location, bool) {
	cfg := st.SignConfig.GetConfig()
	for _, node := range cfg.Nodes {
		if node.ShulkerStation {
			return node.Location, true
		}
	}
	return geometry.Location{}, false
}

func findEmptyUnnamedShulker(st *state.State) (state.SlotRef, bool) {
	for _, slot := range st.Inventories.IterSlots() {
		if slot.Item == nil || slot.Item.ShulkerData == nil {
			continue
		}
		if !slot.Item.ShulkerData.Empty || slot.Item.ShulkerData.Name != nil {
			continue
		}
		if _, held := st.Holds.ExistingHold(slot.Location, slot.Slot); held {
			continue
		}
		return slot, true
	}
	return state.SlotRef{}, false
}
