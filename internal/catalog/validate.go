package catalog

import (
	"fmt"

	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
	"github.com/KirkDiggler/rpg-raid/internal/entities/raid"
	"github.com/KirkDiggler/rpg-raid/internal/errors"
)

func validateEnchantment(i int, e *enchantment.Enchantment, vb *errors.ValidationBuilder) {
	field := fmt.Sprintf("enchantments[%d]", i)
	errors.ValidateRequired(field+".id", string(e.ID), vb)
	if !e.Tier.Valid() {
		vb.Fieldf(field+".tier", "unknown tier %q", e.Tier)
	}
	if !e.Family.Valid() {
		vb.Fieldf(field+".family", "unknown family %q", e.Family)
	}
	switch e.Trigger {
	case enchantment.TriggerOnHit, enchantment.TriggerOnHitTaken, enchantment.TriggerBoth:
	default:
		vb.Fieldf(field+".trigger", "unknown trigger %q", e.Trigger)
	}
	switch e.Effect.Chance {
	case enchantment.ChancePower, enchantment.ChanceDamage, enchantment.ChanceStateful:
	default:
		vb.Fieldf(field+".effect.chance", "unknown chance model %q", e.Effect.Chance)
	}
	if e.Effect.Chance == enchantment.ChanceStateful && e.Family != enchantment.FamilyStatefulStack {
		vb.Field(field+".effect.chance", "stateful chance requires the stateful_stack family")
	}

	if len(e.Categories) == 0 {
		vb.RequiredField(field + ".categories")
	}
	for _, c := range e.Categories {
		if !c.Valid() {
			vb.Fieldf(field+".categories", "unknown category %q", c)
		}
	}
	if len(e.OrbCost) == 0 {
		vb.RequiredField(field + ".orb_cost")
	}
	for orb, n := range e.OrbCost {
		if n <= 0 {
			vb.Fieldf(field+".orb_cost", "%s must be positive", orb)
		}
	}

	errors.ValidatePositive(field+".forge_seconds", e.ForgeSeconds, vb)
	errors.ValidatePositive(field+".skip_cost", e.SkipCost, vb)
	errors.ValidatePositive(field+".power_per_level", e.PowerPerLevel, vb)

	if e.Effect.DurationSeconds < 0 || e.Effect.TickSeconds < 0 {
		vb.Field(field+".effect", "durations must not be negative")
	}
}

func validateBoss(i int, b *raid.Boss, vb *errors.ValidationBuilder) {
	field := fmt.Sprintf("bosses[%d]", i)
	errors.ValidateRequired(field+".id", b.ID, vb)
	errors.ValidatePositive(field+".shield", b.Shield, vb)
	if _, err := raid.ParseTimeLimit(b.TimeLimit); err != nil {
		vb.Field(field+".time_limit", errors.GetMessage(err))
	}
	errors.ValidatePositive(field+".raid_duration_seconds", b.RaidDuration, vb)
	errors.ValidatePositive(field+".max_party_size", b.MaxPartySize, vb)
	if b.KeyItem != "" && b.KeyQuantity <= 0 {
		vb.Field(field+".key_quantity", "must be positive when key_item is set")
	}
	if b.FinalBattleHP < 0 {
		vb.Field(field+".final_battle_hp", "must not be negative")
	}
}

func validateCharge(i int, c *raid.Charge, vb *errors.ValidationBuilder) {
	field := fmt.Sprintf("charges[%d]", i)
	errors.ValidateRequired(field+".id", c.ID, vb)
	errors.ValidatePositive(field+".min", c.Min, vb)
	if c.Max < c.Min {
		vb.Fieldf(field+".max", "must be at least min (%d)", c.Min)
	}
}

func validateElixir(i int, e *raid.Elixir, vb *errors.ValidationBuilder) {
	field := fmt.Sprintf("elixirs[%d]", i)
	errors.ValidateRequired(field+".id", e.ID, vb)
	if len(e.Effects) == 0 {
		vb.RequiredField(field + ".effects")
	}
	for _, eff := range e.Effects {
		if !eff.Kind.Valid() {
			vb.Fieldf(field+".effects", "unknown kind %q", eff.Kind)
		}
		if eff.Value <= 0 {
			vb.Fieldf(field+".effects", "%s value must be positive", eff.Kind)
		}
	}
}
