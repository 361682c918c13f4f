// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/rpg-raid/internal/entities/combat"
	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
	"github.com/KirkDiggler/rpg-raid/internal/entities/equipment"
)

// ItemBuilder provides a fluent interface for building test equipment items
type ItemBuilder struct {
	item *equipment.Item
}

// NewItemBuilder creates a new builder for a level 1 weapon
func NewItemBuilder() *ItemBuilder {
	return &ItemBuilder{
		item: &equipment.Item{
			ID:       "item-test-123",
			OwnerID:  "player-test-123",
			Name:     "Test Item",
			Category: enchantment.CategoryWeapon,
			Level:    1,
			Stats:    combat.Stats{Level: 1},
		},
	}
}

// WithID sets the item ID and name
func (b *ItemBuilder) WithID(id string) *ItemBuilder {
	b.item.ID = id
	b.item.Name = id
	return b
}

// WithOwner sets the owning player
func (b *ItemBuilder) WithOwner(playerID string) *ItemBuilder {
	b.item.OwnerID = playerID
	return b
}

// WithCategory sets the equipment category
func (b *ItemBuilder) WithCategory(category enchantment.Category) *ItemBuilder {
	b.item.Category = category
	return b
}

// WithLevel sets the item level and the level in its stat block
func (b *ItemBuilder) WithLevel(level int) *ItemBuilder {
	b.item.Level = level
	b.item.Stats.Level = level
	return b
}

// WithDamage sets the damage stat
func (b *ItemBuilder) WithDamage(damage int) *ItemBuilder {
	b.item.Stats.Damage = damage
	return b
}

// WithDefense sets the defense stat
func (b *ItemBuilder) WithDefense(defense int) *ItemBuilder {
	b.item.Stats.Defense = defense
	return b
}

// Build returns the built item
func (b *ItemBuilder) Build() *equipment.Item {
	return b.item
}
