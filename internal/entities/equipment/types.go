// Package equipment defines owned equipment items and their stat blocks.
package equipment

import (
	"github.com/KirkDiggler/rpg-raid/internal/entities/combat"
	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
)

// MaxLevel is the equipment level cap
const MaxLevel = 100

// Item is one owned piece of equipment
type Item struct {
	ID       string               `json:"id"`
	OwnerID  string               `json:"owner_id"`
	Name     string               `json:"name"`
	Category enchantment.Category `json:"category"`
	Level    int                  `json:"level"`
	Stats    combat.Stats         `json:"stats"`
}

// Validate reports whether the item can be stored
func (i *Item) Validate() bool {
	return i.ID != "" && i.OwnerID != "" && i.Category.Valid() && i.Level >= 1 && i.Level <= MaxLevel
}

// Loadout maps each category to the equipped item ID
type Loadout map[enchantment.Category]string

// TotalStats sums the stat blocks of the given items
func TotalStats(items []*Item) combat.Stats {
	var total combat.Stats
	for _, it := range items {
		if it != nil {
			total = total.Add(it.Stats)
		}
	}
	return total
}
