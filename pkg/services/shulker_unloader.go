package services

import (
	"github.com/google/uuid"

	"github.com/SamMauldin/super-sorting-system/pkg/config"
	"github.com/SamMauldin/super-sorting-system/pkg/state"
)

// ShulkerUnloader finds unnamed, non-empty shulkers and unpacks them
// back into the network. A full, single-item shulker is left packed
// when the network already holds a full shulker's worth of that item
// in bulk.
type ShulkerUnloader struct {
	outstanding *uuid.UUID
}

// NewShulkerUnloader constructs an idle ShulkerUnloader.
func NewShulkerUnloader(_ *config.Config) *ShulkerUnloader { return &ShulkerUnloader{} }

func (s *ShulkerUnloader) Name() string { return "shulker_unloader" }

func (s *ShulkerUnloader) Tick(st *state.State) {
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

	for _, slot := range st.Inventories.IterSlots() {
		if slot.Item == nil || slot.Item.ShulkerData == nil {
			continue
		}
		shulker := slot.Item.ShulkerData
		if shulker.Name != nil {
			continue
		}
		if _, held := st.Holds.ExistingHold(slot.Location, slot.Slot); held {
			continue
		}
		if len(shulker.ContainedItems) == 0 {
			continue
		}

		firstHash := shulker.ContainedItems[0].StackableHash
		containsOneType := true
		for _, item := range shulker.ContainedItems {
			if item.StackableHash != firstHash {
				containsOneType = false
				break
			}
		}

		isFull := len(shulker.ContainedItems) == shulkerSlotCount
		if isFull {
			for _, item := range shulker.ContainedItems {
				if item.Count != item.StackSize {
					isFull = false
					break
				}
			}
		}

		if containsOneType && isFull {
			skip := false
			for _, entry := range listing {
				if entry.StackableHash == firstHash && entry.Count >= entry.Sample.StackSize*shulkerSlotCount {
					skip = true
					break
				}
			}
			if skip {
				continue
			}
		}

		shulkerHold, err := st.Holds.Create(slot.Location, slot.Slot, slot.OpenFrom)
		if err != nil {
			continue
		}

		var destinationHolds []uuid.UUID
		for range make([]struct{}, shulkerSlotCount) {
			found := false
			for _, candidate := range st.Inventories.IterSlots() {
				if candidate.Item != nil {
					continue
				}
				if _, held := st.Holds.ExistingHold(candidate.Location, candidate.Slot); held {
					continue
				}
				hold, err := st.Holds.Create(candidate.Location, candidate.Slot, candidate.OpenFrom)
				if err != nil {
					continue
				}
				destinationHolds = append(destinationHolds, hold.ID)
				found = true
				break
			}
			if !found {
				break
			}
		}

		if len(destinationHolds) < shulkerSlotCount {
			for _, h := range destinationHolds {
				st.Holds.Remove(h)
			}
			st.Holds.Remove(shulkerHold.ID)
			return
		}

		stationLoc, ok := findShulkerStation(st)
		if !ok {
			for _, h := range destinationHolds {
				st.Holds.Remove(h)
			}
			st.Holds.Remove(shulkerHold.ID)
			return
		}

		op := st.Operations.QueueOperation(state.Background, state.OperationKind{
			Tag:                    state.KindUnloadShulker,
			ShulkerStationLocation: stationLoc,
			ShulkerHold:            shulkerHold.ID,
			DestinationHolds:       destinationHolds,
		})
		s.outstanding = &op.ID
		return
	}
}
