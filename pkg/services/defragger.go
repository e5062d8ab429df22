package services

import (
	"github.com/google/uuid"

	"github.com/SamMauldin/super-sorting-system/pkg/config"
	"github.com/SamMauldin/super-sorting-system/pkg/state"
)

// Defragger merges partially-filled stacks sharing the same
// stackable hash, one MoveItems operation at a time.
type Defragger struct {
	outstanding *uuid.UUID
}

// NewDefragger constructs an idle Defragger.
func NewDefragger(_ *config.Config) *Defragger { return &Defragger{} }

func (s *Defragger) Name() string { return "defragger" }

func (s *Defragger) Tick(st *state.State) {
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

	type partial struct {
		slot state.SlotRef
	}
	seen := make(map[string]partial)

	for _, slot := range st.Inventories.IterSlots() {
		if slot.Item == nil || slot.Item.Count >= slot.Item.StackSize {
			continue
		}
		if _, held := st.Holds.ExistingHold(slot.Location, slot.Slot); held {
			continue
		}

		pair, ok := seen[slot.Item.StackableHash]
		if !ok {
			seen[slot.Item.StackableHash] = partial{slot: slot}
			continue
		}

		src, dst := pair.slot, slot
		remainingSpace := dst.Item.StackSize - dst.Item.Count
		itemsToMove := src.Item.Count
		if remainingSpace < itemsToMove {
			itemsToMove = remainingSpace
		}

		srcHold, err := st.Holds.Create(src.Location, src.Slot, src.OpenFrom)
		if err != nil {
			continue
		}
		dstHold, err := st.Holds.Create(dst.Location, dst.Slot, dst.OpenFrom)
		if err != nil {
			st.Holds.Remove(srcHold.ID)
			continue
		}

		op := st.Operations.QueueOperation(state.Background, state.OperationKind{
			Tag:              state.KindMoveItems,
			SourceHolds:      []uuid.UUID{srcHold.ID},
			DestinationHolds: []uuid.UUID{dstHold.ID},
			Counts:           []uint32{itemsToMove},
		})
		s.outstanding = &op.ID
		return
	}
}
