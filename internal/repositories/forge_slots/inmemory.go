package forgeslots

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rpg-raid/internal/entities/forge"
	"github.com/KirkDiggler/rpg-raid/internal/errors"
)

type slotKey struct {
	playerID string
	index    int
}

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu   sync.Mutex
	jobs map[slotKey]forge.Job
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		jobs: make(map[slotKey]forge.Job),
	}
}

// Get returns one slot
func (r *InMemoryRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSlot(input.PlayerID, input.Index); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return &GetOutput{Slot: r.slot(input.PlayerID, input.Index)}, nil
}

// List returns Count slots
func (r *InMemoryRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSlot(input.PlayerID, input.Count); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	slots := make([]*forge.Slot, input.Count)
	for i := range slots {
		slots[i] = r.slot(input.PlayerID, i)
	}
	return &ListOutput{Slots: slots}, nil
}

// Put stores a job in an idle slot
func (r *InMemoryRepository) Put(ctx context.Context, input *PutInput) (*PutOutput, error) {
	if input == nil || input.Job == nil {
		return nil, errors.InvalidArgument("job is required")
	}
	if err := validateSlot(input.PlayerID, input.Index); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := slotKey{playerID: input.PlayerID, index: input.Index}
	if _, busy := r.jobs[key]; busy {
		return nil, slotBusy(input.PlayerID, input.Index)
	}
	r.jobs[key] = *input.Job

	return &PutOutput{Slot: r.slot(input.PlayerID, input.Index)}, nil
}

// Clear empties a slot
func (r *InMemoryRepository) Clear(ctx context.Context, input *ClearInput) (*ClearOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSlot(input.PlayerID, input.Index); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := slotKey{playerID: input.PlayerID, index: input.Index}
	job, ok := r.jobs[key]
	if !ok {
		return &ClearOutput{}, nil
	}
	delete(r.jobs, key)

	return &ClearOutput{Job: &job}, nil
}

// slot builds a copy; callers hold the lock
func (r *InMemoryRepository) slot(playerID string, index int) *forge.Slot {
	s := &forge.Slot{Index: index}
	if job, ok := r.jobs[slotKey{playerID: playerID, index: index}]; ok {
		s.Job = &job
	}
	return s
}
