// Package equipment provides the interface for equipment persistence
package equipment

//go:generate mockgen -destination=mock/mock_repository.go -package=equipmentmock github.com/KirkDiggler/rpg-raid/internal/repositories/equipment Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-raid/internal/entities/combat"
	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
	"github.com/KirkDiggler/rpg-raid/internal/entities/equipment"
)

// Repository defines the interface for equipment persistence. The combat core
// only reads through GetEquipped and GetStats.
type Repository interface {
	// Get retrieves one owned item
	// Returns errors.InvalidTarget if the item does not exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save creates or replaces an owned item
	// Returns errors.InvalidArgument for validation failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Equip puts an owned item into its category slot of the owner's loadout
	// Returns errors.InvalidTarget if the item does not exist
	Equip(ctx context.Context, input EquipInput) (*EquipOutput, error)

	// GetEquipped returns the item equipped in a category, or a nil Item
	GetEquipped(ctx context.Context, input GetEquippedInput) (*GetEquippedOutput, error)

	// GetLoadout returns every equipped item keyed by category
	GetLoadout(ctx context.Context, input GetLoadoutInput) (*GetLoadoutOutput, error)

	// GetStats returns the stat block of one item
	// Returns errors.InvalidTarget if the item does not exist
	GetStats(ctx context.Context, input GetStatsInput) (*GetStatsOutput, error)
}

// GetInput defines the input for getting an item
type GetInput struct {
	EquipmentID string
}

// GetOutput defines the output for getting an item
type GetOutput struct {
	Item *equipment.Item
}

// SaveInput defines the input for saving an item
type SaveInput struct {
	Item *equipment.Item
}

// SaveOutput defines the output for saving an item
type SaveOutput struct {
	Item *equipment.Item
}

// EquipInput defines the input for equipping an item
type EquipInput struct {
	PlayerID    string
	EquipmentID string
}

// EquipOutput defines the output for equipping an item
type EquipOutput struct {
	Category enchantment.Category
	// Replaced is the previously equipped item ID, if any
	Replaced string
}

// GetEquippedInput defines the input for reading one equipped slot
type GetEquippedInput struct {
	PlayerID string
	Category enchantment.Category
}

// GetEquippedOutput holds the equipped item, nil when the slot is empty
type GetEquippedOutput struct {
	Item *equipment.Item
}

// GetLoadoutInput defines the input for reading a loadout
type GetLoadoutInput struct {
	PlayerID string
}

// GetLoadoutOutput holds the equipped items by category
type GetLoadoutOutput struct {
	Items map[enchantment.Category]*equipment.Item
}

// Stats returns the combined stat block of the loadout
func (o *GetLoadoutOutput) Stats() combat.Stats {
	items := make([]*equipment.Item, 0, len(o.Items))
	for _, c := range enchantment.AllCategories {
		items = append(items, o.Items[c])
	}
	return equipment.TotalStats(items)
}

// GetStatsInput defines the input for reading item stats
type GetStatsInput struct {
	EquipmentID string
}

// GetStatsOutput holds an item's stats
type GetStatsOutput struct {
	Stats combat.Stats
}
