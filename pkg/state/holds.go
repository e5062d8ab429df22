package state

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/SamMauldin/super-sorting-system/pkg/geometry"
	"github.com/SamMauldin/super-sorting-system/pkg/item"
)

// HoldTTL is how long a hold stays valid after creation or renewal.
const HoldTTL = 5 * time.Minute

// Hold is an exclusive claim on a single inventory slot. At most one
// live hold exists for any (Location, Slot) pair at a time.
type Hold struct {
	ID         uuid.UUID         `json:"id"`
	Location   geometry.Location `json:"location"`
	Slot       uint32            `json:"slot"`
	OpenFrom   geometry.Vec3     `json:"open_from"`
	ValidUntil time.Time         `json:"valid_until"`
}

// HoldState is the registry of every live hold.
type HoldState struct {
	holds map[uuid.UUID]Hold
	now   func() time.Time
}

// NewHoldState constructs an empty hold registry.
func NewHoldState() *HoldState {
	return &HoldState{holds: make(map[uuid.UUID]Hold), now: time.Now}
}

// NewHoldStateWithClock constructs an empty hold registry backed by a
// caller-supplied clock, letting tests of TTL-driven behavior
// (hold_expiration) control ValidUntil without sleeping.
func NewHoldStateWithClock(now func() time.Time) *HoldState {
	return &HoldState{holds: make(map[uuid.UUID]Hold), now: now}
}

// Iter returns every live hold in unspecified order.
func (h *HoldState) Iter() []Hold {
	out := make([]Hold, 0, len(h.holds))
	for _, hold := range h.holds {
		out = append(out, hold)
	}
	return out
}

// Get returns the hold for id, if any.
func (h *HoldState) Get(id uuid.UUID) (Hold, bool) {
	hold, ok := h.holds[id]
	return hold, ok
}

// Remove deletes the hold for id, returning it if it existed.
func (h *HoldState) Remove(id uuid.UUID) (Hold, bool) {
	hold, ok := h.holds[id]
	if ok {
		delete(h.holds, id)
	}
	return hold, ok
}

// ExistingHold returns the live hold at (location, slot), if any.
func (h *HoldState) ExistingHold(location geometry.Location, slot uint32) (Hold, bool) {
	for _, hold := range h.holds {
		if hold.Location == location && hold.Slot == slot {
			return hold, true
		}
	}
	return Hold{}, false
}

// Create establishes a new hold over (location, slot), failing with
// ErrAlreadyHeld if one already exists there.
func (h *HoldState) Create(location geometry.Location, slot uint32, openFrom geometry.Vec3) (Hold, error) {
	if _, ok := h.ExistingHold(location, slot); ok {
		return Hold{}, ErrAlreadyHeld
	}

	hold := Hold{
		ID:         uuid.New(),
		Location:   location,
		Slot:       slot,
		OpenFrom:   openFrom,
		ValidUntil: h.now().Add(HoldTTL),
	}
	h.holds[hold.ID] = hold
	return hold, nil
}

// Renew extends a hold's TTL to now+HoldTTL, returning the updated
// hold, or false if id is unknown.
func (h *HoldState) Renew(id uuid.UUID) (Hold, bool) {
	hold, ok := h.holds[id]
	if !ok {
		return Hold{}, false
	}
	hold.ValidUntil = h.now().Add(HoldTTL)
	h.holds[id] = hold
	return hold, true
}

// Takeover reissues an existing hold under a new id, preserving
// (location, slot, open_from) and refreshing its TTL. Used by
// aborted-operation recovery to reclaim holds from an agent that is
// no longer working them.
func (h *HoldState) Takeover(id uuid.UUID) (Hold, bool) {
	previous, ok := h.holds[id]
	if !ok {
		return Hold{}, false
	}
	delete(h.holds, id)

	previous.ID = uuid.New()
	previous.ValidUntil = h.now().Add(HoldTTL)
	h.holds[previous.ID] = previous
	return previous, true
}

// HoldRequestFilter selects which matching strategy CreateMatching
// should use to satisfy an automation hold request.
type HoldRequestFilter struct {
	EmptySlot *struct{}

	ItemMatch *struct {
		StackableHash string
		Total         uint32
	}

	SlotLocation *struct {
		Location geometry.Location
		Slot     uint32
		OpenFrom geometry.Vec3
	}
}

// SlotLookup is the subset of inventory state CreateMatching needs to
// find candidate slots, kept narrow so HoldState doesn't depend on
// the inventory package directly.
type SlotLookup interface {
	IterSlots() []SlotRef
}

// SlotRef is a single inventory slot as seen by the hold matcher.
type SlotRef struct {
	Location geometry.Location
	Slot     uint32
	OpenFrom geometry.Vec3
	Item     *item.Item
}

// CreateMatching attempts to satisfy filter against the current
// inventory contents, creating one or more holds and returning them.
// Returns ErrNoMatch if the filter cannot be satisfied at all, and
// ErrAlreadyHeld for a SlotLocation filter whose slot is occupied.
func (h *HoldState) CreateMatching(lookup SlotLookup, filter HoldRequestFilter) ([]Hold, error) {
	switch {
	case filter.EmptySlot != nil:
		for _, slot := range lookup.IterSlots() {
			if slot.Item != nil {
				continue
			}
			if _, held := h.ExistingHold(slot.Location, slot.Slot); held {
				continue
			}
			hold, err := h.Create(slot.Location, slot.Slot, slot.OpenFrom)
			if err != nil {
				continue
			}
			return []Hold{hold}, nil
		}
		return nil, ErrNoMatch

	case filter.ItemMatch != nil:
		criteria := *filter.ItemMatch
		var candidates []SlotRef
		for _, slot := range lookup.IterSlots() {
			if slot.Item == nil || slot.Item.StackableHash != criteria.StackableHash {
				continue
			}
			if _, held := h.ExistingHold(slot.Location, slot.Slot); held {
				continue
			}
			candidates = append(candidates, slot)
		}
		sort.Slice(candidates, func(i, j int) bool {
			return candidates[i].Item.Count > candidates[j].Item.Count
		})

		var holds []Hold
		var accumulated uint32
		for _, slot := range candidates {
			if accumulated >= criteria.Total {
				break
			}
			hold, err := h.Create(slot.Location, slot.Slot, slot.OpenFrom)
			if err != nil {
				continue
			}
			holds = append(holds, hold)
			accumulated += slot.Item.Count
		}
		if len(holds) == 0 {
			return nil, ErrNoMatch
		}
		return holds, nil

	case filter.SlotLocation != nil:
		target := *filter.SlotLocation
		hold, err := h.Create(target.Location, target.Slot, target.OpenFrom)
		if err != nil {
			return nil, err
		}
		return []Hold{hold}, nil

	default:
		return nil, ErrNoMatch
	}
}
