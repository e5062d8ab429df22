// Package assets embeds the static Minecraft data tables the data API
// scope serves verbatim: item, enchantment, and recipe definitions.
package assets

import _ "embed"

//go:embed minecraft-data/items.json
var ItemsJSON []byte

//go:embed minecraft-data/enchantments.json
var EnchantmentsJSON []byte

//go:embed minecraft-data/recipes.json
var RecipesJSON []byte
