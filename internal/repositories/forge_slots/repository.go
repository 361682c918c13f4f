// Package forgeslots persists each player's forge slots.
package forgeslots

//go:generate mockgen -destination=mock/mock_repository.go -package=forgeslotsmock github.com/KirkDiggler/rpg-raid/internal/repositories/forge_slots Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-raid/internal/entities/forge"
	"github.com/KirkDiggler/rpg-raid/internal/errors"
)

// Repository stores at most one job per slot
type Repository interface {
	// Get returns one slot; an idle slot has a nil Job
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// List returns Count slots in index order
	List(ctx context.Context, input *ListInput) (*ListOutput, error)

	// Put stores a job in an idle slot.
	// Returns errors.AlreadyActive when the slot already holds a job.
	Put(ctx context.Context, input *PutInput) (*PutOutput, error)

	// Clear empties a slot and returns the job it held. Clearing an idle slot
	// returns a nil Job, so concurrent completions see the job exactly once.
	Clear(ctx context.Context, input *ClearInput) (*ClearOutput, error)
}

// GetInput identifies a slot
type GetInput struct {
	PlayerID string
	Index    int
}

// GetOutput holds the slot
type GetOutput struct {
	Slot *forge.Slot
}

// ListInput identifies a player's slot pool
type ListInput struct {
	PlayerID string
	Count    int
}

// ListOutput holds the slots
type ListOutput struct {
	Slots []*forge.Slot
}

// PutInput holds the job to store
type PutInput struct {
	PlayerID string
	Index    int
	Job      *forge.Job
}

// PutOutput holds the stored slot
type PutOutput struct {
	Slot *forge.Slot
}

// ClearInput identifies a slot
type ClearInput struct {
	PlayerID string
	Index    int
}

// ClearOutput holds the removed job, nil when the slot was idle
type ClearOutput struct {
	Job *forge.Job
}

func validateSlot(playerID string, index int) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("PlayerID", playerID, vb)
	if index < 0 {
		vb.Field("Index", "cannot be negative")
	}
	return vb.Build()
}

func slotBusy(playerID string, index int) error {
	return errors.AlreadyActive("forge slot %d is already forging", index).
		WithMeta("player_id", playerID).
		WithMeta("slot", index)
}
