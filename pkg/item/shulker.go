package item

import "encoding/json"

// shulkerNBT is the subset of a shulker box's nbt payload this
// operator cares about: its display name/color and its contained
// items, each re-encoded with the same UnhashedItem shape agents use.
type shulkerNBT struct {
	ShulkerBox *struct {
		Name  *string        `json:"name"`
		Color *string        `json:"color"`
		Items []UnhashedItem `json:"items"`
	} `json:"shulker_box"`
}

// decodeShulkerData extracts ShulkerData from an item's nbt, or
// returns nil if the nbt doesn't describe a shulker box.
func decodeShulkerData(nbt json.RawMessage) *ShulkerData {
	if len(nbt) == 0 {
		return nil
	}

	var parsed shulkerNBT
	if err := json.Unmarshal(nbt, &parsed); err != nil || parsed.ShulkerBox == nil {
		return nil
	}

	contained := make([]Item, 0, len(parsed.ShulkerBox.Items))
	for _, u := range parsed.ShulkerBox.Items {
		contained = append(contained, u.Hash())
	}

	return &ShulkerData{
		Name:           parsed.ShulkerBox.Name,
		Color:          parsed.ShulkerBox.Color,
		ContainedItems: contained,
		Empty:          len(contained) == 0,
	}
}
