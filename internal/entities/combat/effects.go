package combat

// BuffKind is a beneficial timed effect
type BuffKind string

// Buff kinds
const (
	BuffDamageMultiplier  BuffKind = "damage_multiplier"
	BuffDefenseMultiplier BuffKind = "defense_multiplier"
	BuffHealOverTime      BuffKind = "heal_over_time"
	BuffMagicRecharge     BuffKind = "magic_recharge"
)

// DebuffKind is a harmful timed effect
type DebuffKind string

// Debuff kinds
const (
	DebuffDot    DebuffKind = "dot"
	DebuffWeaken DebuffKind = "weaken"
	DebuffStun   DebuffKind = "stun"
	DebuffSlow   DebuffKind = "slow"
)

// Buff is a timed beneficial effect. Remaining counts whole seconds; a buff
// reaching zero is removed. SingleUse buffs are consumed by the next hit.
type Buff struct {
	Kind       BuffKind `json:"kind"`
	Source     string   `json:"source"`
	Effect     float64  `json:"effect"`
	Multiplier float64  `json:"multiplier"`
	Remaining  int      `json:"remaining"`
	TickRate   int      `json:"tick_rate,omitempty"`
	SingleUse  bool     `json:"single_use,omitempty"`
	Elapsed    int      `json:"elapsed,omitempty"`
}

// Debuff is a timed harmful effect. For DebuffDot, Effect is the percent of
// the carrier's max health removed every TickRate seconds.
type Debuff struct {
	Kind       DebuffKind `json:"kind"`
	Source     string     `json:"source"`
	Effect     float64    `json:"effect"`
	Multiplier float64    `json:"multiplier"`
	Remaining  int        `json:"remaining"`
	TickRate   int        `json:"tick_rate,omitempty"`
	Elapsed    int        `json:"elapsed,omitempty"`
}

// TickResult is what one second of effects produced. The caller applies the
// amounts so damage flows through the same path as attacks.
type TickResult struct {
	DotDamage     int
	Heal          int
	MagicRecharge int
}

// AddBuff stores a buff, refreshing an existing one from the same source.
// Zero-duration buffs are instant and never stored.
func (e *Entity) AddBuff(b Buff) {
	if b.Remaining <= 0 {
		return
	}
	if b.TickRate <= 0 {
		b.TickRate = 1
	}
	b.Elapsed = 0
	for i := range e.Buffs {
		if e.Buffs[i].Kind == b.Kind && e.Buffs[i].Source == b.Source {
			e.Buffs[i] = b
			return
		}
	}
	e.Buffs = append(e.Buffs, b)
}

// AddDebuff stores a debuff, refreshing an existing one from the same source
func (e *Entity) AddDebuff(d Debuff) {
	if d.Remaining <= 0 {
		return
	}
	if d.TickRate <= 0 {
		d.TickRate = 1
	}
	d.Elapsed = 0
	for i := range e.Debuffs {
		if e.Debuffs[i].Kind == d.Kind && e.Debuffs[i].Source == d.Source {
			e.Debuffs[i] = d
			return
		}
	}
	e.Debuffs = append(e.Debuffs, d)
}

// HasDebuff reports whether any debuff of kind is active
func (e *Entity) HasDebuff(kind DebuffKind) bool {
	for _, d := range e.Debuffs {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

// OutgoingMultiplier combines persistent damage buffs with weaken debuffs.
// Single-use buffs are not included; see ConsumeSingleUse.
func (e *Entity) OutgoingMultiplier() float64 {
	m := 1.0
	for _, b := range e.Buffs {
		if b.Kind == BuffDamageMultiplier && !b.SingleUse && b.Multiplier > 0 {
			m *= b.Multiplier
		}
	}
	for _, d := range e.Debuffs {
		if d.Kind == DebuffWeaken && d.Multiplier > 0 {
			m *= d.Multiplier
		}
	}
	return m
}

// DefenseMultiplier returns the factor applied to incoming damage (lower is better)
func (e *Entity) DefenseMultiplier() float64 {
	m := 1.0
	for _, b := range e.Buffs {
		if b.Kind == BuffDefenseMultiplier && b.Multiplier > 0 {
			m /= b.Multiplier
		}
	}
	return m
}

// ConsumeSingleUse removes every single-use damage buff and returns their
// combined multiplier
func (e *Entity) ConsumeSingleUse() float64 {
	m := 1.0
	kept := e.Buffs[:0]
	for _, b := range e.Buffs {
		if b.Kind == BuffDamageMultiplier && b.SingleUse {
			m *= b.Multiplier
			continue
		}
		kept = append(kept, b)
	}
	e.Buffs = kept
	return m
}

// Tick advances every effect by one second and drops the expired ones
func (e *Entity) Tick() TickResult {
	var res TickResult

	buffs := e.Buffs[:0]
	for _, b := range e.Buffs {
		b.Elapsed++
		if b.Elapsed%b.TickRate == 0 {
			switch b.Kind {
			case BuffHealOverTime:
				res.Heal += e.PercentOfMax(b.Effect)
			case BuffMagicRecharge:
				res.MagicRecharge += int(b.Effect)
			}
		}
		b.Remaining--
		if b.Remaining > 0 {
			buffs = append(buffs, b)
		}
	}
	e.Buffs = buffs

	debuffs := e.Debuffs[:0]
	for _, d := range e.Debuffs {
		d.Elapsed++
		if d.Kind == DebuffDot && d.Elapsed%d.TickRate == 0 {
			res.DotDamage += e.PercentOfMax(d.Effect)
		}
		d.Remaining--
		if d.Remaining > 0 {
			debuffs = append(debuffs, d)
		}
	}
	e.Debuffs = debuffs

	return res
}
