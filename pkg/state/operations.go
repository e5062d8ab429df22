package state

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/SamMauldin/super-sorting-system/pkg/geometry"
)

// OperationPriority is the coarse SLA dial the scheduler sorts on.
// Lower ordinal sorts first (higher priority).
type OperationPriority int

const (
	SystemCritical OperationPriority = iota
	UserInteractive
	Background
	LowPriority
)

// OperationStatus is the lifecycle state of an Operation.
// Pending -> InProgress -> {Complete, Aborted} only.
type OperationStatus int

const (
	Pending OperationStatus = iota
	InProgress
	Complete
	Aborted
)

// OperationKindTag identifies which variant of OperationKind is set.
type OperationKindTag string

const (
	KindScanInventory    OperationKindTag = "ScanInventory"
	KindScanSigns        OperationKindTag = "ScanSigns"
	KindMoveItems        OperationKindTag = "MoveItems"
	KindDropItems        OperationKindTag = "DropItems"
	KindImportInventory  OperationKindTag = "ImportInventory"
	KindCraft            OperationKindTag = "Craft"
	KindLoadShulker      OperationKindTag = "LoadShulker"
	KindUnloadShulker    OperationKindTag = "UnloadShulker"
)

// OperationKind is a closed tagged union over the eight kinds of work
// an agent can be assigned. Exactly one field cluster is meaningful,
// selected by Tag; every derived query below is an exhaustive switch
// over Tag rather than a virtual dispatch, since the variant set is
// small and closed.
type OperationKind struct {
	Tag OperationKindTag

	// ScanInventory
	Location geometry.Location
	OpenFrom geometry.Vec3

	// ScanSigns
	TakePortal *geometry.Vec3

	// MoveItems
	SourceHolds      []uuid.UUID
	DestinationHolds []uuid.UUID
	Counts           []uint32

	// DropItems
	DropFrom    geometry.Location
	AimTowards  geometry.Vec3

	// ImportInventory
	ChestLocation geometry.Vec3
	NodeLocation  geometry.Location

	// Craft
	RecipeSourceHolds []*uuid.UUID

	// LoadShulker / UnloadShulker
	ShulkerStationLocation geometry.Location
	ShulkerHold            uuid.UUID
	LoadSourceHolds        []*uuid.UUID
}

// Operation is a unit of scheduled work.
type Operation struct {
	ID          uuid.UUID         `json:"id"`
	Priority    OperationPriority `json:"priority"`
	Status      OperationStatus   `json:"status"`
	Kind        OperationKind     `json:"kind"`
	FinalizedAt *time.Time        `json:"finalized_at,omitempty"`
}

// Holds returns every hold id referenced by the operation's kind.
func (op Operation) Holds() []uuid.UUID {
	switch op.Kind.Tag {
	case KindScanInventory, KindScanSigns:
		return nil
	case KindMoveItems:
		out := make([]uuid.UUID, 0, len(op.Kind.SourceHolds)+len(op.Kind.DestinationHolds))
		out = append(out, op.Kind.SourceHolds...)
		out = append(out, op.Kind.DestinationHolds...)
		return out
	case KindDropItems:
		return op.Kind.SourceHolds
	case KindImportInventory:
		return op.Kind.DestinationHolds
	case KindCraft:
		var out []uuid.UUID
		for _, h := range op.Kind.RecipeSourceHolds {
			if h != nil {
				out = append(out, *h)
			}
		}
		out = append(out, op.Kind.DestinationHolds...)
		return out
	case KindLoadShulker:
		var out []uuid.UUID
		for _, h := range op.Kind.LoadSourceHolds {
			if h != nil {
				out = append(out, *h)
			}
		}
		out = append(out, op.Kind.ShulkerHold)
		return out
	case KindUnloadShulker:
		out := append([]uuid.UUID{}, op.Kind.DestinationHolds...)
		out = append(out, op.Kind.ShulkerHold)
		return out
	default:
		return nil
	}
}

// StartingLocation returns the physical point work begins at.
// Currently only ScanInventory defines one.
func (op Operation) StartingLocation() (geometry.Location, bool) {
	if op.Kind.Tag == KindScanInventory {
		return op.Kind.Location, true
	}
	return geometry.Location{}, false
}

// ShulkerStationLocation returns the station location this operation
// occupies, for LoadShulker/UnloadShulker kinds.
func (op Operation) ShulkerStationLocation() (geometry.Location, bool) {
	if op.Kind.Tag == KindLoadShulker || op.Kind.Tag == KindUnloadShulker {
		return op.Kind.ShulkerStationLocation, true
	}
	return geometry.Location{}, false
}

// RequiresClearInventory reports whether the assigned agent must be
// carrying nothing before starting this operation. True for every
// kind except ScanSigns and ScanInventory.
func (op Operation) RequiresClearInventory() bool {
	return op.Kind.Tag != KindScanSigns && op.Kind.Tag != KindScanInventory
}

// OperationState is the registry of every operation, pending through
// terminal.
type OperationState struct {
	operations map[uuid.UUID]*Operation
	now        func() time.Time
}

// NewOperationState constructs an empty operation registry.
func NewOperationState() *OperationState {
	return &OperationState{operations: make(map[uuid.UUID]*Operation), now: time.Now}
}

// QueueOperation enqueues a new Pending operation.
func (s *OperationState) QueueOperation(priority OperationPriority, kind OperationKind) Operation {
	op := &Operation{ID: uuid.New(), Priority: priority, Status: Pending, Kind: kind}
	s.operations[op.ID] = op
	return *op
}

// Get returns the operation for id, if known.
func (s *OperationState) Get(id uuid.UUID) (Operation, bool) {
	op, ok := s.operations[id]
	if !ok {
		return Operation{}, false
	}
	return *op, true
}

// Iter returns every operation with the given status.
func (s *OperationState) Iter(status OperationStatus) []Operation {
	var out []Operation
	for _, op := range s.operations {
		if op.Status == status {
			out = append(out, *op)
		}
	}
	return out
}

// SetOperationStatus transitions an operation, stamping FinalizedAt
// when the new status is terminal (Complete or Aborted). It does not
// check the lifecycle order: any status is accepted from any other.
func (s *OperationState) SetOperationStatus(id uuid.UUID, status OperationStatus) (Operation, error) {
	op, ok := s.operations[id]
	if !ok {
		return Operation{}, ErrOperationNotFound
	}

	op.Status = status
	if status == Complete || status == Aborted {
		now := s.now()
		op.FinalizedAt = &now
	}
	return *op, nil
}

// PurgeOldOperations evicts terminal operations whose FinalizedAt is
// older than 15 minutes. Non-terminal operations are never purged.
func (s *OperationState) PurgeOldOperations() {
	cutoff := s.now().Add(-15 * time.Minute)
	for id, op := range s.operations {
		if op.FinalizedAt != nil && op.FinalizedAt.Before(cutoff) {
			delete(s.operations, id)
		}
	}
}

// TakeNextOperation is the scheduler's heart: given the requesting
// agent's current location and whether it is carrying nothing, picks
// the leading eligible pending operation, transitions it to
// InProgress, and returns it.
//
// Eligibility requires the clear-inventory gate to be satisfied and
// the operation's shulker station (if any) to not already be in use
// by an in-progress operation. Among eligible operations, priority
// sorts ascending first, then estimated distance cost from the
// agent's current location ascending.
func (s *OperationState) TakeNextOperation(startingLoc geometry.Location, hasClearInventory bool) (Operation, bool) {
	inUseStations := make(map[geometry.Location]struct{})
	for _, op := range s.operations {
		if op.Status != InProgress {
			continue
		}
		if loc, ok := op.ShulkerStationLocation(); ok {
			inUseStations[loc] = struct{}{}
		}
	}

	var candidates []*Operation
	for _, op := range s.operations {
		if op.Status != Pending {
			continue
		}
		if !hasClearInventory && op.RequiresClearInventory() {
			continue
		}
		if loc, ok := op.ShulkerStationLocation(); ok {
			if _, busy := inUseStations[loc]; busy {
				continue
			}
		}
		candidates = append(candidates, op)
	}

	if len(candidates) == 0 {
		return Operation{}, false
	}

	distCost := func(op *Operation) float64 {
		loc, ok := op.StartingLocation()
		if !ok {
			return 0
		}
		return loc.DistanceHeuristic(startingLoc)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Priority != candidates[j].Priority {
			return candidates[i].Priority < candidates[j].Priority
		}
		return distCost(candidates[i]) < distCost(candidates[j])
	})

	leader := candidates[0]
	leader.Status = InProgress
	return *leader, true
}
