package equipment

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
	"github.com/KirkDiggler/rpg-raid/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-raid/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu       sync.RWMutex
	items    map[string]equipment.Item
	loadouts map[string]equipment.Loadout
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		items:    make(map[string]equipment.Item),
		loadouts: make(map[string]equipment.Loadout),
	}
}

// Get retrieves one owned item
func (r *InMemoryRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.EquipmentID == "" {
		return nil, errors.InvalidArgument(errEquipmentIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	item, err := r.item(input.EquipmentID)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Item: item}, nil
}

// Save stores a copy of the item
func (r *InMemoryRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Item == nil || !input.Item.Validate() {
		return nil, errors.InvalidArgument("item is invalid")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[input.Item.ID] = *input.Item

	return &SaveOutput{Item: input.Item}, nil
}

// Equip records the item in its owner's loadout
func (r *InMemoryRepository) Equip(ctx context.Context, input EquipInput) (*EquipOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}
	if input.EquipmentID == "" {
		return nil, errors.InvalidArgument(errEquipmentIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item, err := r.item(input.EquipmentID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != input.PlayerID {
		return nil, errors.InvalidTarget("equipment %s is not owned by %s", input.EquipmentID, input.PlayerID)
	}

	loadout, ok := r.loadouts[input.PlayerID]
	if !ok {
		loadout = make(equipment.Loadout)
		r.loadouts[input.PlayerID] = loadout
	}

	replaced := loadout[item.Category]
	if replaced == item.ID {
		replaced = ""
	}
	loadout[item.Category] = item.ID

	return &EquipOutput{Category: item.Category, Replaced: replaced}, nil
}

// GetEquipped returns the item in one category slot
func (r *InMemoryRepository) GetEquipped(ctx context.Context, input GetEquippedInput) (*GetEquippedOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}
	if !input.Category.Valid() {
		return nil, errors.InvalidTarget("unknown equipment category %q", input.Category)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.loadouts[input.PlayerID][input.Category]
	if !ok {
		return &GetEquippedOutput{}, nil
	}

	item, err := r.item(id)
	if err != nil {
		return nil, err
	}

	return &GetEquippedOutput{Item: item}, nil
}

// GetLoadout returns all equipped items
func (r *InMemoryRepository) GetLoadout(ctx context.Context, input GetLoadoutInput) (*GetLoadoutOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make(map[enchantment.Category]*equipment.Item)
	for category, id := range r.loadouts[input.PlayerID] {
		item, err := r.item(id)
		if err != nil {
			return nil, err
		}
		items[category] = item
	}

	return &GetLoadoutOutput{Items: items}, nil
}

// GetStats returns an item's stat block
func (r *InMemoryRepository) GetStats(ctx context.Context, input GetStatsInput) (*GetStatsOutput, error) {
	if input.EquipmentID == "" {
		return nil, errors.InvalidArgument(errEquipmentIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	item, err := r.item(input.EquipmentID)
	if err != nil {
		return nil, err
	}

	return &GetStatsOutput{Stats: item.Stats}, nil
}

// item returns a copy; callers hold the lock
func (r *InMemoryRepository) item(id string) (*equipment.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, errors.InvalidTarget("equipment %s not found", id)
	}
	return &item, nil
}
