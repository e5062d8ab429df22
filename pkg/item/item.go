// Package item defines the item/stack primitives flowing across the
// agent <-> operator boundary, and the stackable-hash that lets the
// operator treat two item stacks as mergeable.
package item

import (
	"encoding/json"
)

// ShulkerData carries the decoded contents of a shulker box item, when
// the item's nbt encodes one. Present only on items that are shulkers.
type ShulkerData struct {
	Name           *string `json:"name,omitempty"`
	Color          *string `json:"color,omitempty"`
	ContainedItems []Item  `json:"contained_items"`
	Empty          bool    `json:"empty"`
}

// Item is a single inventory slot's contents, as held authoritatively
// by the operator after ingress hashing.
type Item struct {
	ItemID        uint32          `json:"item_id"`
	Count         uint32          `json:"count"`
	Metadata      uint32          `json:"metadata"`
	NBT           json.RawMessage `json:"nbt"`
	StackSize     uint32          `json:"stack_size"`
	StackableHash string          `json:"stackable_hash"`
	ShulkerData   *ShulkerData    `json:"shulker_data,omitempty"`
}

// UnhashedItem is the wire shape agents submit scan results in: the
// same fields as Item, minus the hash the operator computes on
// ingress.
type UnhashedItem struct {
	ItemID    uint32          `json:"item_id"`
	Count     uint32          `json:"count"`
	Metadata  uint32          `json:"metadata"`
	NBT       json.RawMessage `json:"nbt"`
	StackSize uint32          `json:"stack_size"`
}

// Hash computes the item's stackable_hash and returns the fully
// hashed Item. Two items with identical item_id, metadata, and
// canonical nbt encoding always produce the same hash (stable across
// runs of the same binary, per spec.md's hashing-stability note).
func (u UnhashedItem) Hash() Item {
	return Item{
		ItemID:        u.ItemID,
		Count:         u.Count,
		Metadata:      u.Metadata,
		NBT:           u.NBT,
		StackSize:     u.StackSize,
		StackableHash: StackableHash(u.ItemID, u.Metadata, u.NBT),
		ShulkerData:   decodeShulkerData(u.NBT),
	}
}
