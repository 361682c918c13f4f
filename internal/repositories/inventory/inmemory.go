package inventory

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/rpg-raid/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.Mutex
	store map[string]map[string]int
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]map[string]int),
	}
}

// Get returns an item count
func (r *InMemoryRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateKey(input.PlayerID, input.ItemID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return &GetOutput{Count: r.store[input.PlayerID][input.ItemID]}, nil
}

// Increment changes an item count, refusing to go below zero
func (r *InMemoryRepository) Increment(ctx context.Context, input *IncrementInput) (*IncrementOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateKey(input.PlayerID, input.ItemID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.items(input.PlayerID)
	cur := items[input.ItemID]
	n := cur + input.Delta
	if n < 0 {
		return nil, shortfall(input.ItemID, cur, -input.Delta)
	}
	set(items, input.ItemID, n)

	return &IncrementOutput{Count: n}, nil
}

// HasAtLeast reports whether a count reaches N
func (r *InMemoryRepository) HasAtLeast(ctx context.Context, input *HasAtLeastInput) (*HasAtLeastOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := r.Get(ctx, &GetInput{PlayerID: input.PlayerID, ItemID: input.ItemID})
	if err != nil {
		return nil, err
	}

	return &HasAtLeastOutput{OK: out.Count >= input.N, Count: out.Count}, nil
}

// Consume removes all costs or none
func (r *InMemoryRepository) Consume(ctx context.Context, input *ConsumeInput) (*ConsumeOutput, error) {
	if err := validateCosts(input); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.items(input.PlayerID)

	keys := make([]string, 0, len(input.Costs))
	for item := range input.Costs {
		keys = append(keys, item)
	}
	sort.Strings(keys)

	for _, item := range keys {
		if need := input.Costs[item]; items[item] < need {
			return nil, shortfall(item, items[item], need)
		}
	}

	remaining := make(map[string]int, len(keys))
	for _, item := range keys {
		if input.Costs[item] == 0 {
			continue
		}
		n := items[item] - input.Costs[item]
		set(items, item, n)
		remaining[item] = n
	}

	return &ConsumeOutput{Remaining: remaining}, nil
}

// List returns every non-zero count
func (r *InMemoryRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]int, len(r.store[input.PlayerID]))
	for item, n := range r.store[input.PlayerID] {
		out[item] = n
	}

	return &ListOutput{Items: out}, nil
}

func (r *InMemoryRepository) items(playerID string) map[string]int {
	items, ok := r.store[playerID]
	if !ok {
		items = make(map[string]int)
		r.store[playerID] = items
	}
	return items
}

func set(items map[string]int, item string, n int) {
	if n == 0 {
		delete(items, item)
		return
	}
	items[item] = n
}
