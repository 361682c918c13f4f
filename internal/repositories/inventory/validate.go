package inventory

import (
	"github.com/KirkDiggler/rpg-raid/internal/errors"
)

func validateKey(playerID, itemID string) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("PlayerID", playerID, vb)
	errors.ValidateRequired("ItemID", itemID, vb)
	return vb.Build()
}

func validateCosts(input *ConsumeInput) error {
	if input == nil {
		return errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("PlayerID", input.PlayerID, vb)
	for item, n := range input.Costs {
		if item == "" {
			vb.Field("Costs", "item ID cannot be empty")
		}
		if n < 0 {
			vb.Fieldf("Costs", "cost of %s cannot be negative", item)
		}
	}
	return vb.Build()
}

func shortfall(item string, have, need int) error {
	return errors.InsufficientResources("need %d %s, have %d", need, item, have).
		WithMeta("item_id", item).
		WithMeta("have", have).
		WithMeta("need", need)
}
