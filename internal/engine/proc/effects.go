package proc

import (
	"math"

	"github.com/KirkDiggler/rpg-raid/internal/entities/combat"
)

func precision(r *Resolver, ev *event) error {
	ok, err := r.procs(ev)
	if err != nil || !ok {
		return err
	}
	ev.out.Triggered = true
	ev.out.Damage = scale(ev.damage, ev.def.Effect.Multiplier)
	return nil
}

// overheat grants a buff that doubles the owner's next hit, not this one
func overheat(r *Resolver, ev *event) error {
	ok, err := r.procs(ev)
	if err != nil || !ok {
		return err
	}
	buff := combat.Buff{
		Kind:       combat.BuffDamageMultiplier,
		Source:     string(ev.def.ID),
		Multiplier: ev.def.Effect.Multiplier,
		Remaining:  ev.def.Effect.DurationSeconds,
		SingleUse:  true,
	}
	ev.owner.AddBuff(buff)
	ev.out.Triggered = true
	ev.out.AppliedBuff = &buff
	return nil
}

// bloodrage is skipped entirely when its self cost would be lethal
func bloodrage(r *Resolver, ev *event) error {
	ok, err := r.procs(ev)
	if err != nil || !ok {
		return err
	}

	boosted := scale(ev.damage, ev.def.Effect.Multiplier)
	cost := int(math.Ceil(float64(boosted) * ev.def.Effect.SelfCostPercent / 100))
	if ev.owner.CurrentHealth-cost <= 0 {
		ev.out.special(EffectBloodrageSkipped)
		return nil
	}

	ev.owner.TakeDamage(cost)
	ev.out.Triggered = true
	ev.out.Damage = boosted
	ev.out.SelfDamage = cost
	return nil
}

func damageOverTime(r *Resolver, ev *event) error {
	ok, err := r.procs(ev)
	if err != nil || !ok {
		return err
	}
	debuff := combat.Debuff{
		Kind:      combat.DebuffDot,
		Source:    string(ev.def.ID),
		Effect:    ev.def.Effect.Percent,
		Remaining: ev.def.Effect.DurationSeconds,
		TickRate:  ev.def.Effect.TickSeconds,
	}
	ev.opponent.AddDebuff(debuff)
	ev.out.Triggered = true
	ev.out.AppliedDebuff = &debuff
	return nil
}

func concussion(r *Resolver, ev *event) error {
	return debuffOpponent(r, ev, combat.DebuffStun, 0)
}

func weakness(r *Resolver, ev *event) error {
	return debuffOpponent(r, ev, combat.DebuffWeaken, ev.def.Effect.Multiplier)
}

func enfeeble(r *Resolver, ev *event) error {
	return debuffOpponent(r, ev, combat.DebuffSlow, 0)
}

func debuffOpponent(r *Resolver, ev *event, kind combat.DebuffKind, multiplier float64) error {
	ok, err := r.procs(ev)
	if err != nil || !ok {
		return err
	}
	debuff := combat.Debuff{
		Kind:       kind,
		Source:     string(ev.def.ID),
		Multiplier: multiplier,
		Remaining:  ev.def.Effect.DurationSeconds,
	}
	ev.opponent.AddDebuff(debuff)
	ev.out.Triggered = true
	ev.out.AppliedDebuff = &debuff
	return nil
}

func shielding(r *Resolver, ev *event) error {
	return buffOwner(r, ev, combat.BuffDefenseMultiplier)
}

func rejuvenation(r *Resolver, ev *event) error {
	return buffOwner(r, ev, combat.BuffMagicRecharge)
}

func regeneration(r *Resolver, ev *event) error {
	return buffOwner(r, ev, combat.BuffHealOverTime)
}

func buffOwner(r *Resolver, ev *event, kind combat.BuffKind) error {
	ok, err := r.procs(ev)
	if err != nil || !ok {
		return err
	}
	buff := combat.Buff{
		Kind:       kind,
		Source:     string(ev.def.ID),
		Effect:     ev.def.Effect.Percent,
		Multiplier: ev.def.Effect.Multiplier,
		Remaining:  ev.def.Effect.DurationSeconds,
		TickRate:   ev.def.Effect.TickSeconds,
	}
	ev.owner.AddBuff(buff)
	ev.out.Triggered = true
	ev.out.AppliedBuff = &buff
	return nil
}

func damageReturn(r *Resolver, ev *event) error {
	ok, err := r.procs(ev)
	if err != nil || !ok {
		return err
	}
	ev.out.Triggered = true
	ev.out.Reflected = int(float64(ev.damage) * ev.def.Effect.Percent / 100)
	return nil
}

func damageAbsorption(r *Resolver, ev *event) error {
	ok, err := r.procs(ev)
	if err != nil || !ok {
		return err
	}
	ev.out.Triggered = true
	ev.out.Negated = true
	return nil
}
