package raidresults

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/rpg-raid/internal/entities/raid"
	"github.com/KirkDiggler/rpg-raid/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu     sync.RWMutex
	byID   map[string]raid.Result
	byRaid map[string]string
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		byID:   make(map[string]raid.Result),
		byRaid: make(map[string]string),
	}
}

// Create records a result once
func (r *InMemoryRepository) Create(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateResult(input.Result); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	res := input.Result
	raidKey := res.RaidID + "/" + res.PlayerID
	if _, ok := r.byID[res.ID]; ok {
		return nil, duplicate(res)
	}
	if _, ok := r.byRaid[raidKey]; ok {
		return nil, duplicate(res)
	}
	r.byID[res.ID] = *res
	r.byRaid[raidKey] = res.ID

	return &CreateOutput{Result: res}, nil
}

// Get returns a copy of one result
func (r *InMemoryRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("result ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.byID[input.ID]
	if !ok {
		return nil, errors.NotFoundf("raid result %s not found", input.ID)
	}
	return &GetOutput{Result: &res}, nil
}

// ListByPlayer returns copies, newest first
func (r *InMemoryRepository) ListByPlayer(ctx context.Context, input *ListByPlayerInput) (*ListByPlayerOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []*raid.Result
	for _, res := range r.byID {
		if res.PlayerID == input.PlayerID {
			results = append(results, &res)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].CreatedAt.Equal(results[j].CreatedAt) {
			return results[i].ID > results[j].ID
		}
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	if limit := limitOrDefault(input.Limit); len(results) > limit {
		results = results[:limit]
	}

	return &ListByPlayerOutput{Results: results}, nil
}
