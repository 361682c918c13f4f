// Package proc decides whether an equipped enchantment activates on a combat
// event and computes what it does.
package proc

import (
	"log/slog"
	"math"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-raid/internal/catalog"
	"github.com/KirkDiggler/rpg-raid/internal/entities/combat"
	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
	"github.com/KirkDiggler/rpg-raid/internal/errors"
	"github.com/KirkDiggler/rpg-raid/internal/pkg/roller"
)

// Config holds the dependencies for the resolver
type Config struct {
	Catalog catalog.Reader
	Roller  dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

// Resolver resolves enchantment procs
type Resolver struct {
	catalog catalog.Reader
	roller  dice.Roller
}

// NewResolver creates a resolver with the provided dependencies
func NewResolver(cfg *Config) (*Resolver, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Resolver{
		catalog: cfg.Catalog,
		roller:  cfg.Roller,
	}, nil
}

// event is one side of a combat exchange from the binding owner's point of view
type event struct {
	owner    *combat.Entity
	opponent *combat.Entity
	damage   int
	power    int
	def      *enchantment.Enchantment
	out      *Outcome
}

type handlerFunc func(r *Resolver, ev *event) error

type handler struct {
	onHit      handlerFunc
	onHitTaken handlerFunc
}

var handlers = map[enchantment.ID]handler{
	enchantment.Precision:  {onHit: precision},
	enchantment.Overheat:   {onHit: overheat},
	enchantment.Bloodrage:  {onHit: bloodrage},
	enchantment.Poisoning:  {onHit: damageOverTime},
	enchantment.Bleeding:   {onHit: damageOverTime},
	enchantment.TimeBomb:   {onHit: damageOverTime},
	enchantment.Concussion: {onHit: concussion},

	enchantment.Weakness:         {onHitTaken: weakness},
	enchantment.Enfeeble:         {onHitTaken: enfeeble},
	enchantment.Shielding:        {onHitTaken: shielding},
	enchantment.DamageReturn:     {onHitTaken: damageReturn},
	enchantment.Rejuvenation:     {onHitTaken: rejuvenation},
	enchantment.Regeneration:     {onHitTaken: regeneration},
	enchantment.DamageAbsorption: {onHitTaken: damageAbsorption},

	enchantment.TempestRage:       {onHit: tempestRageOnHit, onHitTaken: tempestRageOnHitTaken},
	enchantment.CrimsonCorruption: {onHit: crimsonCorruptionOnHit, onHitTaken: crimsonCorruptionOnHitTaken},
	enchantment.Karma:             {onHit: karmaOnHit, onHitTaken: karmaOnHitTaken},
}

// ResolveOnHit resolves the attacker's enchantment for a hit dealing baseDamage.
// A nil binding or an enchantment unknown to the catalog resolves to a no-op.
func (r *Resolver) ResolveOnHit(attacker, defender *combat.Entity, baseDamage int, b *enchantment.Binding) (*Outcome, error) {
	return r.resolve(attacker, defender, baseDamage, b, func(h handler) handlerFunc { return h.onHit })
}

// ResolveOnHitTaken resolves the defender's enchantment for an incoming hit.
// The returned Damage is what the defender should actually take.
func (r *Resolver) ResolveOnHitTaken(defender, attacker *combat.Entity, incoming int, b *enchantment.Binding) (*Outcome, error) {
	out, err := r.resolve(defender, attacker, incoming, b, func(h handler) handlerFunc { return h.onHitTaken })
	if err != nil {
		return nil, err
	}
	if out.Negated {
		out.Damage = 0
	}
	return out, nil
}

func (r *Resolver) resolve(owner, opponent *combat.Entity, damage int, b *enchantment.Binding, pick func(handler) handlerFunc) (*Outcome, error) {
	if owner == nil || opponent == nil {
		return nil, errors.InvalidArgument("owner and opponent are required")
	}
	if damage < 0 {
		damage = 0
	}
	if b == nil || b.EnchantmentID == "" {
		return noop(damage), nil
	}

	h, ok := handlers[b.EnchantmentID]
	if !ok {
		return noop(damage), nil
	}
	fn := pick(h)
	if fn == nil {
		return noop(damage), nil
	}

	def, err := r.catalog.Enchantment(b.EnchantmentID)
	if err != nil {
		if errors.IsInvalidTarget(err) {
			return noop(damage), nil
		}
		return nil, errors.Wrapf(err, "failed to look up enchantment %s", b.EnchantmentID)
	}

	ev := &event{
		owner:    owner,
		opponent: opponent,
		damage:   damage,
		power:    b.Power,
		def:      def,
		out:      &Outcome{Enchantment: def.ID, Damage: damage},
	}
	if err := fn(r, ev); err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", def.ID)
	}

	if ev.out.Triggered {
		slog.Debug("Enchantment triggered",
			"enchantment", def.ID,
			"owner", owner.ID,
			"damage", ev.out.Damage,
		)
	}
	return ev.out, nil
}

// procs rolls the enchantment's chance model for ev
func (r *Resolver) procs(ev *event) (bool, error) {
	var chance float64
	switch ev.def.Effect.Chance {
	case enchantment.ChanceDamage:
		chance = DamageScaledChance(ev.damage, ev.def.Effect.BaseChance)
	default:
		chance = TriggerChance(ev.power)
	}
	return roller.Chance(r.roller, chance)
}

func (r *Resolver) chance(percent float64) (bool, error) {
	return roller.Chance(r.roller, percent)
}

func scale(damage int, multiplier float64) int {
	return int(math.Round(float64(damage) * multiplier))
}
