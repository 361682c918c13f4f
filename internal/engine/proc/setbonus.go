package proc

import (
	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
)

// SetBonusMultiplier is the outgoing damage multiplier of a complete mythical set
const SetBonusMultiplier = 1.25

// SetBonus returns the mythical enchantment bound on every equipment category,
// if there is one. Partial sets confer nothing.
func SetBonus(bindings []*enchantment.Binding) (enchantment.ID, bool) {
	byCategory := make(map[enchantment.Category]*enchantment.Binding, len(bindings))
	for _, b := range bindings {
		if b != nil {
			byCategory[b.Category] = b
		}
	}

	var id enchantment.ID
	for _, c := range enchantment.AllCategories {
		b, ok := byCategory[c]
		if !ok || b.Tier != enchantment.TierMythical {
			return "", false
		}
		if id == "" {
			id = b.EnchantmentID
		} else if b.EnchantmentID != id {
			return "", false
		}
	}
	return id, true
}
