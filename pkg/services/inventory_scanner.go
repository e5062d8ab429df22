package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/SamMauldin/super-sorting-system/pkg/config"
	"github.com/SamMauldin/super-sorting-system/pkg/geometry"
	"github.com/SamMauldin/super-sorting-system/pkg/state"
)

const inventoryRescanInterval = 2 * time.Hour

type trackedInventory struct {
	openFrom      geometry.Vec3
	currentScanOp *uuid.UUID
}

// InventoryScanner enumerates every container coordinate implied by
// the compiled storage complexes and keeps each one's scan fresh.
type InventoryScanner struct {
	tracked map[geometry.Location]*trackedInventory
}

// NewInventoryScanner constructs an InventoryScanner with no tracked
// inventories yet; they accumulate as complexes are discovered.
func NewInventoryScanner(_ *config.Config) *InventoryScanner {
	return &InventoryScanner{tracked: make(map[geometry.Location]*trackedInventory)}
}

func (s *InventoryScanner) Name() string { return "inventory_scanner" }

func (s *InventoryScanner) Tick(st *state.State) {
	cfg := st.SignConfig.GetConfig()

	for _, complex := range cfg.Complexes {
		s.discover(complex)
	}

	rescanCutoff := time.Now().Add(-inventoryRescanInterval)

	for loc, tracked := range s.tracked {
		if tracked.currentScanOp != nil {
			op, ok := st.Operations.Get(*tracked.currentScanOp)
			switch {
			case !ok:
				tracked.currentScanOp = nil
			case op.Status == state.Complete || op.Status == state.Aborted:
				tracked.currentScanOp = nil
			default:
				continue
			}
		}

		existing, hasSnapshot := st.Inventories.InventoryContentsAt(loc)
		needsRescan := !hasSnapshot || existing.ScannedAt.Before(rescanCutoff)
		if !needsRescan {
			continue
		}

		priority := state.Background
		if !hasSnapshot {
			priority = state.SystemCritical
		}

		op := st.Operations.QueueOperation(priority, state.OperationKind{
			Tag:      state.KindScanInventory,
			Location: loc,
			OpenFrom: tracked.openFrom,
		})
		tracked.currentScanOp = &op.ID
	}
}

// discover registers every tracked-inventory location a complex
// implies, without ever removing an entry once added (a complex's
// deletion leaves its inventories tracked but stale, an accepted
// limitation).
func (s *InventoryScanner) discover(complex state.StorageComplex) {
	switch complex.Kind {
	case state.ComplexFlatFloor:
		x1, x2 := complex.Bounds[0].X, complex.Bounds[1].X
		z1, z2 := complex.Bounds[0].Z, complex.Bounds[1].Z
		for x := minI32(x1, x2); x <= maxI32(x1, x2); x++ {
			for z := minI32(z1, z2); z <= maxI32(z1, z2); z++ {
				loc := geometry.Location{Vec3: geometry.Vec3{X: x, Y: complex.YLevel, Z: z}, Dim: complex.Dim}
				if _, ok := s.tracked[loc]; ok {
					continue
				}
				s.tracked[loc] = &trackedInventory{openFrom: geometry.Vec3{X: x, Y: complex.YLevel + 1, Z: z}}
			}
		}

	case state.ComplexTower:
		origin := complex.Origin
		for y := origin.Y; y <= origin.Y+int32(complex.Height)-1; y++ {
			for x := origin.X - 4; x <= origin.X+4; x++ {
				for z := origin.Z - 4; z <= origin.Z+4; z++ {
					if x == origin.X && z == origin.Z {
						continue
					}
					loc := geometry.Location{Vec3: geometry.Vec3{X: x, Y: y, Z: z}, Dim: complex.Dim}
					if _, ok := s.tracked[loc]; ok {
						continue
					}
					s.tracked[loc] = &trackedInventory{openFrom: geometry.Vec3{X: origin.X, Y: y, Z: origin.Z}}
				}
			}
		}
	}
}

func minI32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func maxI32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
