// Package enchantment defines enchantment catalog entries and the bindings that
// attach them to owned equipment.
package enchantment

import (
	"time"
)

// ID identifies an enchantment in the catalog
type ID string

// Known enchantments. The proc resolver dispatches on these.
const (
	Precision  ID = "precision"
	Overheat   ID = "overheat"
	Bloodrage  ID = "bloodrage"
	Poisoning  ID = "poisoning"
	Bleeding   ID = "bleeding"
	TimeBomb   ID = "time_bomb"
	Concussion ID = "concussion"

	Weakness         ID = "weakness"
	Enfeeble         ID = "enfeeble"
	Shielding        ID = "shielding"
	DamageReturn     ID = "damage_return"
	Rejuvenation     ID = "rejuvenation"
	Regeneration     ID = "regeneration"
	DamageAbsorption ID = "damage_absorption"

	TempestRage       ID = "tempest_rage"
	CrimsonCorruption ID = "crimson_corruption"
	Karma             ID = "karma"
)

// Tier is the rarity of an enchantment
type Tier string

// Tiers
const (
	TierSimple   Tier = "simple"
	TierMedium   Tier = "medium"
	TierMythical Tier = "mythical"
)

// Valid reports whether t is a known tier
func (t Tier) Valid() bool {
	switch t {
	case TierSimple, TierMedium, TierMythical:
		return true
	}
	return false
}

// Family groups enchantments by the shape of their effect
type Family string

// Families
const (
	FamilyDamageMultiplier Family = "damage_multiplier"
	FamilyDot              Family = "dot"
	FamilySelfBuff         Family = "self_buff"
	FamilyHeal             Family = "heal"
	FamilyDebuff           Family = "debuff"
	FamilyStun             Family = "stun"
	FamilyReflect          Family = "reflect"
	FamilyAbsorb           Family = "absorb"
	FamilyStatefulStack    Family = "stateful_stack"
)

// Valid reports whether f is a known family
func (f Family) Valid() bool {
	switch f {
	case FamilyDamageMultiplier, FamilyDot, FamilySelfBuff, FamilyHeal, FamilyDebuff,
		FamilyStun, FamilyReflect, FamilyAbsorb, FamilyStatefulStack:
		return true
	}
	return false
}

// Trigger is the combat event an enchantment reacts to
type Trigger string

// Triggers
const (
	TriggerOnHit      Trigger = "on_hit"
	TriggerOnHitTaken Trigger = "on_hit_taken"
	// TriggerBoth is used by stateful mythics that count hits in both directions
	TriggerBoth Trigger = "both"
)

// ChanceModel selects how the proc chance is computed
type ChanceModel string

// Chance models
const (
	// ChancePower scales with binding power, capped at 50%
	ChancePower ChanceModel = "power"
	// ChanceDamage scales with the damage of the triggering hit
	ChanceDamage ChanceModel = "damage"
	// ChanceStateful means the reducer rolls its own fixed odds
	ChanceStateful ChanceModel = "stateful"
)

// Category is an equipment slot an enchantment can be bound to
type Category string

// Equipment categories
const (
	CategoryWeapon Category = "weapon"
	CategoryHelmet Category = "helmet"
	CategoryArmor  Category = "armor"
	CategoryGloves Category = "gloves"
	CategoryBoots  Category = "boots"
)

// AllCategories lists every equipment category in display order
var AllCategories = []Category{CategoryWeapon, CategoryHelmet, CategoryArmor, CategoryGloves, CategoryBoots}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Effect holds the numeric parameters of an enchantment
type Effect struct {
	Multiplier      float64     `yaml:"multiplier,omitempty" json:"multiplier,omitempty"`
	Percent         float64     `yaml:"percent,omitempty" json:"percent,omitempty"`
	DurationSeconds int         `yaml:"duration_seconds,omitempty" json:"duration_seconds,omitempty"`
	TickSeconds     int         `yaml:"tick_seconds,omitempty" json:"tick_seconds,omitempty"`
	SelfCostPercent float64     `yaml:"self_cost_percent,omitempty" json:"self_cost_percent,omitempty"`
	BaseChance      float64     `yaml:"base_chance,omitempty" json:"base_chance,omitempty"`
	Chance          ChanceModel `yaml:"chance" json:"chance"`
}

// Enchantment is an immutable catalog entry
type Enchantment struct {
	ID            ID             `yaml:"id" json:"id"`
	Name          string         `yaml:"name" json:"name"`
	Description   string         `yaml:"description,omitempty" json:"description,omitempty"`
	Tier          Tier           `yaml:"tier" json:"tier"`
	Family        Family         `yaml:"family" json:"family"`
	Trigger       Trigger        `yaml:"trigger" json:"trigger"`
	Categories    []Category     `yaml:"categories" json:"categories"`
	OrbCost       map[string]int `yaml:"orb_cost" json:"orb_cost"`
	ForgeSeconds  int            `yaml:"forge_seconds" json:"forge_seconds"`
	SkipCost      int            `yaml:"skip_cost" json:"skip_cost"`
	PowerPerLevel int            `yaml:"power_per_level" json:"power_per_level"`
	Effect        Effect         `yaml:"effect" json:"effect"`
}

// ForgeDuration returns how long a forge job for this enchantment takes
func (e *Enchantment) ForgeDuration() time.Duration {
	return time.Duration(e.ForgeSeconds) * time.Second
}

// Eligible reports whether the enchantment may be bound to category c
func (e *Enchantment) Eligible(c Category) bool {
	for _, allowed := range e.Categories {
		if allowed == c {
			return true
		}
	}
	return false
}

// PowerAt returns the binding power for equipment of the given level
func (e *Enchantment) PowerAt(level int) int {
	if level <= 0 {
		return 0
	}
	return e.PowerPerLevel * level
}

// Binding attaches one enchantment to one owned equipment item
type Binding struct {
	EquipmentID   string    `json:"equipment_id"`
	Category      Category  `json:"category"`
	EnchantmentID ID        `json:"enchantment_id"`
	Tier          Tier      `json:"tier"`
	Power         int       `json:"power"`
	BoundAt       time.Time `json:"bound_at"`
}

// CanReplace reports whether a job of tier incoming may overwrite existing.
// A mythical binding is only ever replaced by another mythical one.
func CanReplace(existing *Binding, incoming Tier) bool {
	if existing == nil {
		return true
	}
	if existing.Tier == TierMythical {
		return incoming == TierMythical
	}
	return true
}
