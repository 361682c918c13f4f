// Package raidresults is the write-once ledger of finished raids.
package raidresults

//go:generate mockgen -destination=mock/mock_repository.go -package=raidresultsmock github.com/KirkDiggler/rpg-raid/internal/repositories/raid_results Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-raid/internal/entities/raid"
	"github.com/KirkDiggler/rpg-raid/internal/errors"
)

// DefaultListLimit caps ListByPlayer when no limit is given
const DefaultListLimit = 50

// Repository stores raid results. A raid produces at most one result per player.
type Repository interface {
	// Create records a result
	// Returns errors.AlreadyExists if the raid already has a result for the player
	Create(ctx context.Context, input *CreateInput) (*CreateOutput, error)

	// Get returns one result by ID
	// Returns errors.NotFound if it does not exist
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// ListByPlayer returns a player's results, newest first
	ListByPlayer(ctx context.Context, input *ListByPlayerInput) (*ListByPlayerOutput, error)
}

// CreateInput holds the result to record
type CreateInput struct {
	Result *raid.Result
}

// CreateOutput holds the recorded result
type CreateOutput struct {
	Result *raid.Result
}

// GetInput identifies a result
type GetInput struct {
	ID string
}

// GetOutput holds the result
type GetOutput struct {
	Result *raid.Result
}

// ListByPlayerInput identifies a player
type ListByPlayerInput struct {
	PlayerID string
	Limit    int
}

// ListByPlayerOutput holds the results
type ListByPlayerOutput struct {
	Results []*raid.Result
}

func validateResult(r *raid.Result) error {
	if r == nil {
		return errors.InvalidArgument("result is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("ID", r.ID, vb)
	errors.ValidateRequired("RaidID", r.RaidID, vb)
	errors.ValidateRequired("PlayerID", r.PlayerID, vb)
	errors.ValidateRequired("BossID", r.BossID, vb)
	if r.CreatedAt.IsZero() {
		vb.RequiredField("CreatedAt")
	}
	if r.Victory && (r.Placement < 1 || r.Placement > 3) {
		vb.Fieldf("Placement", "must be 1..3 for a victory, got %d", r.Placement)
	}
	if !r.Victory && r.RatingDelta != 0 {
		vb.Field("RatingDelta", "a defeat carries no rating change")
	}
	return vb.Build()
}

func duplicate(r *raid.Result) error {
	return errors.AlreadyExists("result already recorded for raid " + r.RaidID).
		WithMeta("raid_id", r.RaidID).
		WithMeta("player_id", r.PlayerID)
}

func limitOrDefault(n int) int {
	if n <= 0 || n > DefaultListLimit {
		return DefaultListLimit
	}
	return n
}
