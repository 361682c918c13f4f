package enchantments

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
	"github.com/KirkDiggler/rpg-raid/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]enchantment.Binding
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]enchantment.Binding),
	}
}

// Get returns a copy of the item's binding
func (r *InMemoryRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.EquipmentID == "" {
		return nil, errors.InvalidArgument("equipment ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.store[input.EquipmentID]
	if !ok {
		return &GetOutput{}, nil
	}
	return &GetOutput{Binding: &b}, nil
}

// Put writes a binding unless it would downgrade a mythical one
func (r *InMemoryRepository) Put(ctx context.Context, input *PutInput) (*PutOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateBinding(input.Binding); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var replaced *enchantment.Binding
	if prev, ok := r.store[input.Binding.EquipmentID]; ok {
		if !enchantment.CanReplace(&prev, input.Binding.Tier) {
			return nil, replaceRefused(input.Binding)
		}
		replaced = &prev
	}
	r.store[input.Binding.EquipmentID] = *input.Binding

	return &PutOutput{Replaced: replaced}, nil
}

// List returns copies of the bindings that exist
func (r *InMemoryRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]*enchantment.Binding, len(input.EquipmentIDs))
	for _, id := range input.EquipmentIDs {
		if b, ok := r.store[id]; ok {
			out[id] = &b
		}
	}
	return &ListOutput{Bindings: out}, nil
}
