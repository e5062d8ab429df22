package services

import (
	"github.com/google/uuid"

	"github.com/SamMauldin/super-sorting-system/pkg/config"
	"github.com/SamMauldin/super-sorting-system/pkg/geometry"
	"github.com/SamMauldin/super-sorting-system/pkg/state"
)

// AbortedOperationRecovery reclaims holds left behind by aborted
// operations: it takes over every referenced hold, groups the
// results by location, and enqueues a rescan per location so the
// operator's view of the world catches up with whatever the agent
// left mid-task.
type AbortedOperationRecovery struct {
	processed   map[uuid.UUID]struct{}
	outstanding map[uuid.UUID][]uuid.UUID
}

// NewAbortedOperationRecovery constructs an AbortedOperationRecovery
// service with no processed operations yet.
func NewAbortedOperationRecovery(_ *config.Config) *AbortedOperationRecovery {
	return &AbortedOperationRecovery{
		processed:   make(map[uuid.UUID]struct{}),
		outstanding: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (s *AbortedOperationRecovery) Name() string { return "aborted_operation_recovery" }

func (s *AbortedOperationRecovery) Tick(st *state.State) {
	aborted := st.Operations.Iter(state.Aborted)
	newProcessed := make(map[uuid.UUID]struct{}, len(aborted))

	for _, op := range aborted {
		newProcessed[op.ID] = struct{}{}
		if _, already := s.processed[op.ID]; already {
			continue
		}

		var takenHoldIDs []uuid.UUID
		for _, holdID := range op.Holds() {
			newHold, ok := st.Holds.Takeover(holdID)
			if ok {
				takenHoldIDs = append(takenHoldIDs, newHold.ID)
			}
		}

		byLocation := make(map[geometry.Location][]uuid.UUID)
		rescanOps := make(map[geometry.Location]uuid.UUID)
		for _, holdID := range takenHoldIDs {
			hold, ok := st.Holds.Get(holdID)
			if !ok {
				continue
			}
			if _, exists := byLocation[hold.Location]; !exists {
				rescanOp := st.Operations.QueueOperation(state.SystemCritical, state.OperationKind{
					Tag:      state.KindScanInventory,
					Location: hold.Location,
					OpenFrom: hold.OpenFrom,
				})
				rescanOps[hold.Location] = rescanOp.ID
			}
			byLocation[hold.Location] = append(byLocation[hold.Location], holdID)
		}

		for loc, holdIDs := range byLocation {
			s.outstanding[rescanOps[loc]] = holdIDs
		}
	}
	s.processed = newProcessed

	var finished []uuid.UUID
	for opID, holdIDs := range s.outstanding {
		op, ok := st.Operations.Get(opID)
		if !ok {
			for _, h := range holdIDs {
				st.Holds.Remove(h)
			}
			finished = append(finished, opID)
			continue
		}

		switch op.Status {
		case state.Complete, state.Aborted:
			for _, h := range holdIDs {
				st.Holds.Remove(h)
			}
			finished = append(finished, opID)
		default:
		}
	}

	for _, opID := range finished {
		delete(s.outstanding, opID)
	}
}
