package state

import (
	"sort"
	"time"

	"github.com/SamMauldin/super-sorting-system/pkg/geometry"
	"github.com/SamMauldin/super-sorting-system/pkg/item"
)

// Inventory is the most recent scan of a container at a Location.
type Inventory struct {
	Slots     []*item.Item  `json:"slots"`
	ScannedAt time.Time     `json:"scanned_at"`
	OpenFrom  geometry.Vec3 `json:"open_from"`
}

// ShulkerUnpacking controls whether InventoryState.GetListing recurses
// into shulker box contents when aggregating counts.
type ShulkerUnpacking int

const (
	// ShulkerUnpackingNone counts shulkers as a single stack, never
	// unpacking their contained items.
	ShulkerUnpackingNone ShulkerUnpacking = iota
	// ShulkerUnpackingUnnamedOnly unpacks shulkers with no custom name.
	ShulkerUnpackingUnnamedOnly
	// ShulkerUnpackingFull unpacks every non-empty shulker.
	ShulkerUnpackingFull
)

// ListingEntry is one aggregated row of InventoryState.GetListing: the
// total count of items sharing a stackable hash, plus a representative
// sample item (for display of item_id/metadata/nbt).
type ListingEntry struct {
	StackableHash string
	Count         uint32
	Sample        item.Item
}

// InventoryState is the registry of every known container's contents,
// keyed by Location.
type InventoryState struct {
	byLocation map[geometry.Location]*Inventory
	now        func() time.Time
}

// NewInventoryState constructs an empty inventory registry.
func NewInventoryState() *InventoryState {
	return &InventoryState{byLocation: make(map[geometry.Location]*Inventory), now: time.Now}
}

// SetInventoryAt replaces the inventory snapshot at location, stamping
// ScannedAt with the current time.
func (s *InventoryState) SetInventoryAt(location geometry.Location, slots []*item.Item, openFrom geometry.Vec3) {
	s.byLocation[location] = &Inventory{
		Slots:     slots,
		ScannedAt: s.now(),
		OpenFrom:  openFrom,
	}
}

// InventoryContentsAt returns the inventory at location, if known.
func (s *InventoryState) InventoryContentsAt(location geometry.Location) (*Inventory, bool) {
	inv, ok := s.byLocation[location]
	return inv, ok
}

// IterInventories returns every known (Location, *Inventory) pair.
func (s *InventoryState) IterInventories() map[geometry.Location]*Inventory {
	out := make(map[geometry.Location]*Inventory, len(s.byLocation))
	for loc, inv := range s.byLocation {
		out[loc] = inv
	}
	return out
}

// IterSlots yields every slot across every known inventory, ordered by
// (Location, Slot) so callers that pick a first/second match (e.g. the
// defragger choosing a destination vs a source) get a stable result
// instead of depending on Go's randomized map iteration order.
func (s *InventoryState) IterSlots() []SlotRef {
	locs := make([]geometry.Location, 0, len(s.byLocation))
	for loc := range s.byLocation {
		locs = append(locs, loc)
	}
	sort.Slice(locs, func(i, j int) bool {
		return locationLess(locs[i], locs[j])
	})

	var out []SlotRef
	for _, loc := range locs {
		inv := s.byLocation[loc]
		for idx, it := range inv.Slots {
			out = append(out, SlotRef{Location: loc, Slot: uint32(idx), Item: it, OpenFrom: inv.OpenFrom})
		}
	}
	return out
}

// locationLess orders locations by dimension then by X, Y, Z, giving
// IterSlots and anything built on it a total, deterministic ordering.
func locationLess(a, b geometry.Location) bool {
	if a.Dim != b.Dim {
		return a.Dim < b.Dim
	}
	if a.Vec3.X != b.Vec3.X {
		return a.Vec3.X < b.Vec3.X
	}
	if a.Vec3.Y != b.Vec3.Y {
		return a.Vec3.Y < b.Vec3.Y
	}
	return a.Vec3.Z < b.Vec3.Z
}

// GetListing aggregates item counts across every known slot, keyed by
// stackable hash, optionally recursing into shulker contents per
// unpacking.
func (s *InventoryState) GetListing(unpacking ShulkerUnpacking) []ListingEntry {
	totals := make(map[string]*ListingEntry)

	var visit func(it *item.Item)
	visit = func(it *item.Item) {
		if it == nil {
			return
		}

		shouldUnpack := it.ShulkerData != nil && len(it.ShulkerData.ContainedItems) > 0 &&
			(unpacking == ShulkerUnpackingFull ||
				(unpacking == ShulkerUnpackingUnnamedOnly && it.ShulkerData.Name == nil))

		if shouldUnpack {
			for i := range it.ShulkerData.ContainedItems {
				visit(&it.ShulkerData.ContainedItems[i])
			}
			return
		}

		entry, ok := totals[it.StackableHash]
		if !ok {
			entry = &ListingEntry{StackableHash: it.StackableHash, Sample: *it}
			totals[it.StackableHash] = entry
		}
		entry.Count += it.Count
	}

	for _, slot := range s.IterSlots() {
		visit(slot.Item)
	}

	out := make([]ListingEntry, 0, len(totals))
	for _, entry := range totals {
		out = append(out, *entry)
	}
	return out
}
