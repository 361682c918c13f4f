// Package combat holds the mutable participant records used during a battle.
package combat

import (
	"math"
)

// Stats is the stat block of a combat participant
type Stats struct {
	Damage       int `json:"damage"`
	Defense      int `json:"defense"`
	MagicPower   int `json:"magic_power"`
	RangedDamage int `json:"ranged_damage"`
	Level        int `json:"level"`
}

// Add returns the sum of two stat blocks
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Damage:       s.Damage + o.Damage,
		Defense:      s.Defense + o.Defense,
		MagicPower:   s.MagicPower + o.MagicPower,
		RangedDamage: s.RangedDamage + o.RangedDamage,
		Level:        max(s.Level, o.Level),
	}
}

// Entity is a combat participant. It lives for one battle; only health is
// carried between rounds, and only when the caller chooses to.
type Entity struct {
	ID            string         `json:"id"`
	MaxHealth     int            `json:"max_health"`
	CurrentHealth int            `json:"current_health"`
	Stats         Stats          `json:"stats"`
	Buffs         []Buff         `json:"buffs"`
	Debuffs       []Debuff       `json:"debuffs"`
	Stacks        map[string]int `json:"stacks"`
}

// NewEntity creates an entity at full health
func NewEntity(id string, maxHealth int, stats Stats) *Entity {
	if maxHealth < 0 {
		maxHealth = 0
	}
	return &Entity{
		ID:            id,
		MaxHealth:     maxHealth,
		CurrentHealth: maxHealth,
		Stats:         stats,
		Stacks:        make(map[string]int),
	}
}

// IsAlive reports whether the entity has health left
func (e *Entity) IsAlive() bool {
	return e.CurrentHealth > 0
}

// HealthPercent returns current health as a percentage of max
func (e *Entity) HealthPercent() float64 {
	if e.MaxHealth == 0 {
		return 0
	}
	return float64(e.CurrentHealth) / float64(e.MaxHealth) * 100
}

// TakeDamage removes up to amount health and returns what was actually removed
func (e *Entity) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	if amount > e.CurrentHealth {
		amount = e.CurrentHealth
	}
	e.CurrentHealth -= amount
	return amount
}

// Heal restores up to amount health and returns what was actually restored
func (e *Entity) Heal(amount int) int {
	if amount <= 0 || !e.IsAlive() {
		return 0
	}
	if missing := e.MaxHealth - e.CurrentHealth; amount > missing {
		amount = missing
	}
	e.CurrentHealth += amount
	return amount
}

// PercentOfMax returns pct percent of max health, rounded up so small pools still tick
func (e *Entity) PercentOfMax(pct float64) int {
	if pct <= 0 {
		return 0
	}
	return int(math.Ceil(float64(e.MaxHealth) * pct / 100))
}

// Stack returns the stack counter for a stateful enchantment
func (e *Entity) Stack(key string) int {
	return e.Stacks[key]
}

// SetStack stores a stack counter, dropping it at zero
func (e *Entity) SetStack(key string, n int) {
	if e.Stacks == nil {
		e.Stacks = make(map[string]int)
	}
	if n <= 0 {
		delete(e.Stacks, key)
		return
	}
	e.Stacks[key] = n
}

// Clone returns a deep copy safe to hand out in snapshots
func (e *Entity) Clone() *Entity {
	if e == nil {
		return nil
	}
	out := *e
	out.Buffs = append([]Buff(nil), e.Buffs...)
	out.Debuffs = append([]Debuff(nil), e.Debuffs...)
	out.Stacks = make(map[string]int, len(e.Stacks))
	for k, v := range e.Stacks {
		out.Stacks[k] = v
	}
	return &out
}
