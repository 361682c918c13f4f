package proc

import (
	"github.com/KirkDiggler/rpg-raid/internal/entities/combat"
)

// Tempest Rage: hits build rage, hits taken drain it.
const (
	tempestRageGainChance = 60.0
	tempestRageLossChance = 70.0
	tempestRageMax        = 4
)

func tempestRageOnHit(r *Resolver, ev *event) error {
	ok, err := r.chance(tempestRageGainChance)
	if err != nil || !ok {
		return err
	}

	key := string(ev.def.ID)
	stacks := ev.owner.Stack(key) + 1
	if stacks >= tempestRageMax {
		ev.owner.SetStack(key, 0)
		ev.out.Triggered = true
		ev.out.Damage = scale(ev.damage, ev.def.Effect.Multiplier)
		ev.out.special(EffectStackReset)
		return nil
	}

	ev.owner.SetStack(key, stacks)
	ev.out.special(EffectStackGained)
	return nil
}

func tempestRageOnHitTaken(r *Resolver, ev *event) error {
	key := string(ev.def.ID)
	stacks := ev.owner.Stack(key)
	if stacks == 0 {
		return nil
	}

	ok, err := r.chance(tempestRageLossChance)
	if err != nil || !ok {
		return err
	}
	ev.owner.SetStack(key, stacks-1)
	ev.out.special(EffectStackLost)
	return nil
}

// Crimson Corruption: damage taken charges it, the owner's next hit discharges
// the charge as a damage over time scaled by stack count.
const (
	crimsonDamagePerStack = 25
	crimsonMaxStacks      = 3
)

var crimsonDotPercent = map[int]float64{1: 3, 2: 4.5, 3: 6}

func crimsonCorruptionOnHitTaken(_ *Resolver, ev *event) error {
	gained := ev.damage / crimsonDamagePerStack
	if gained == 0 {
		return nil
	}

	key := string(ev.def.ID)
	stacks := min(ev.owner.Stack(key)+gained, crimsonMaxStacks)
	ev.owner.SetStack(key, stacks)
	ev.out.special(EffectStackGained)
	return nil
}

func crimsonCorruptionOnHit(_ *Resolver, ev *event) error {
	key := string(ev.def.ID)
	stacks := ev.owner.Stack(key)
	if stacks == 0 {
		return nil
	}

	debuff := combat.Debuff{
		Kind:      combat.DebuffDot,
		Source:    key,
		Effect:    crimsonDotPercent[min(stacks, crimsonMaxStacks)],
		Remaining: ev.def.Effect.DurationSeconds,
		TickRate:  ev.def.Effect.TickSeconds,
	}
	ev.opponent.AddDebuff(debuff)
	ev.owner.SetStack(key, 0)

	ev.out.Triggered = true
	ev.out.AppliedDebuff = &debuff
	ev.out.special(EffectStackReset)
	return nil
}

// Karma: consecutive hits build a combo; any hit taken breaks it.
const (
	karmaMinCombo = 3
	karmaMaxCombo = 9
)

// karmaTier maps the combo to a tier index: 3+ → 0, 6+ → 1, 9 → 2
func karmaTier(combo int) int {
	switch {
	case combo >= 9:
		return 2
	case combo >= 6:
		return 1
	default:
		return 0
	}
}

var (
	karmaHealPercent = [3]float64{10, 15, 25}
	karmaMultiplier  = [3]float64{1.5, 2, 3}
)

func karmaOnHit(r *Resolver, ev *event) error {
	key := string(ev.def.ID)
	combo := min(ev.owner.Stack(key)+1, karmaMaxCombo)
	ev.owner.SetStack(key, combo)

	if combo < karmaMinCombo {
		return nil
	}
	ok, err := r.procs(ev)
	if err != nil || !ok {
		return err
	}

	tier := karmaTier(combo)
	ev.out.Triggered = true
	if ev.owner.HealthPercent() < 50 {
		ev.out.Heal = ev.owner.Heal(ev.owner.PercentOfMax(karmaHealPercent[tier]))
		ev.out.special(EffectKarmaHeal)
		return nil
	}
	ev.out.Damage = scale(ev.damage, karmaMultiplier[tier])
	ev.out.special(EffectKarmaDamage)
	return nil
}

func karmaOnHitTaken(_ *Resolver, ev *event) error {
	key := string(ev.def.ID)
	if ev.owner.Stack(key) == 0 {
		return nil
	}
	ev.owner.SetStack(key, 0)
	ev.out.special(EffectStackReset)
	return nil
}
