// Package enchantments persists the enchantment bound to each equipment item.
package enchantments

//go:generate mockgen -destination=mock/mock_repository.go -package=enchantmentsmock github.com/KirkDiggler/rpg-raid/internal/repositories/enchantments Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
	"github.com/KirkDiggler/rpg-raid/internal/errors"
)

// Repository stores at most one binding per equipment item
type Repository interface {
	// Get returns the binding for an item, or a nil Binding when unenchanted
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Put writes a binding. The write is refused with IneligibleReplacement when
	// it would overwrite a mythical binding with a lower tier.
	Put(ctx context.Context, input *PutInput) (*PutOutput, error)

	// List returns the bindings of several items keyed by equipment ID.
	// Items without a binding are absent from the map.
	List(ctx context.Context, input *ListInput) (*ListOutput, error)
}

// GetInput identifies an item
type GetInput struct {
	EquipmentID string
}

// GetOutput holds the item's binding
type GetOutput struct {
	Binding *enchantment.Binding
}

// PutInput holds the binding to write
type PutInput struct {
	Binding *enchantment.Binding
}

// PutOutput reports what was overwritten
type PutOutput struct {
	Replaced *enchantment.Binding
}

// ListInput identifies items
type ListInput struct {
	EquipmentIDs []string
}

// ListOutput holds the bindings found
type ListOutput struct {
	Bindings map[string]*enchantment.Binding
}

func validateBinding(b *enchantment.Binding) error {
	if b == nil {
		return errors.InvalidArgument("binding is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("EquipmentID", b.EquipmentID, vb)
	errors.ValidateRequired("EnchantmentID", string(b.EnchantmentID), vb)
	if !b.Category.Valid() {
		vb.Fieldf("Category", "unknown category %q", b.Category)
	}
	if !b.Tier.Valid() {
		vb.Fieldf("Tier", "unknown tier %q", b.Tier)
	}
	if b.Power < 0 {
		vb.Field("Power", "cannot be negative")
	}
	return vb.Build()
}

func replaceRefused(b *enchantment.Binding) error {
	return errors.IneligibleReplacement("equipment %s holds a mythical enchantment; %s binding refused",
		b.EquipmentID, b.Tier).
		WithMeta("equipment_id", b.EquipmentID)
}
