// Package inventory stores per-player item counts and stats counters.
package inventory

//go:generate mockgen -destination=mock/mock_repository.go -package=inventorymock github.com/KirkDiggler/rpg-raid/internal/repositories/inventory Repository

import (
	"context"
)

// Well known item and stat keys
const (
	ItemGreenOrbs  = "greenOrbs"
	ItemBlueOrbs   = "blueOrbs"
	ItemPurpleOrbs = "purpleOrbs"
	ItemCrystals   = "crystals"

	StatRating      = "stat:rating"
	StatRaidsWon    = "stat:raids_won"
	StatRaidsLost   = "stat:raids_lost"
	StatTotalDamage = "stat:total_damage"
)

// Repository is the key-value inventory and stats store for one player.
// Counts never go below zero.
type Repository interface {
	// Get returns the count of an item, zero when the player has none
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Increment adds Delta (which may be negative) to an item count.
	// A decrement below zero is rejected with InsufficientResources.
	Increment(ctx context.Context, input *IncrementInput) (*IncrementOutput, error)

	// HasAtLeast reports whether the player owns at least N of an item
	HasAtLeast(ctx context.Context, input *HasAtLeastInput) (*HasAtLeastOutput, error)

	// Consume removes every listed cost at once, or nothing if any is short
	Consume(ctx context.Context, input *ConsumeInput) (*ConsumeOutput, error)

	// List returns all non-zero counts for a player
	List(ctx context.Context, input *ListInput) (*ListOutput, error)
}

// GetInput identifies one item count
type GetInput struct {
	PlayerID string
	ItemID   string
}

// GetOutput holds the item count
type GetOutput struct {
	Count int
}

// IncrementInput changes one item count
type IncrementInput struct {
	PlayerID string
	ItemID   string
	Delta    int
}

// IncrementOutput holds the count after the change
type IncrementOutput struct {
	Count int
}

// HasAtLeastInput asks for a minimum count
type HasAtLeastInput struct {
	PlayerID string
	ItemID   string
	N        int
}

// HasAtLeastOutput answers HasAtLeast
type HasAtLeastOutput struct {
	OK    bool
	Count int
}

// ConsumeInput lists the costs to remove together
type ConsumeInput struct {
	PlayerID string
	Costs    map[string]int
}

// ConsumeOutput holds the remaining counts of the consumed items
type ConsumeOutput struct {
	Remaining map[string]int
}

// ListInput identifies a player
type ListInput struct {
	PlayerID string
}

// ListOutput holds every non-zero count
type ListOutput struct {
	Items map[string]int
}
