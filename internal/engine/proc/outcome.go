package proc

import (
	"github.com/KirkDiggler/rpg-raid/internal/entities/combat"
	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
)

// Special effect tags reported in Outcome.SpecialEffects
const (
	EffectBloodrageSkipped = "bloodrage_skipped"
	EffectStackGained      = "stack_gained"
	EffectStackLost        = "stack_lost"
	EffectStackReset       = "stack_reset"
	EffectKarmaHeal        = "karma_heal"
	EffectKarmaDamage      = "karma_damage"
)

// Outcome is the result of resolving one enchantment against one combat event.
//
// Status effects, stack transitions, Bloodrage's self cost and Karma's heal are
// already applied to the entities when the resolver returns. Damage, Reflected
// and Negated are for the caller to apply, since the target may be a shield pool
// rather than an entity's health.
type Outcome struct {
	Enchantment enchantment.ID
	// Damage is the hit amount after the enchantment is applied
	Damage    int
	Triggered bool

	AppliedBuff   *combat.Buff
	AppliedDebuff *combat.Debuff

	SelfDamage int
	Heal       int
	// Reflected is damage to return to the attacker of a hit taken
	Reflected int
	// Negated means the incoming hit is absorbed entirely
	Negated bool

	SpecialEffects []string
}

func noop(damage int) *Outcome {
	return &Outcome{Damage: damage}
}

func (o *Outcome) special(tag string) {
	o.SpecialEffects = append(o.SpecialEffects, tag)
}
