package raid

// Charge is a single-use burst damage consumable. Its ID doubles as the inventory item key.
type Charge struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	Min  int    `yaml:"min" json:"min"`
	Max  int    `yaml:"max" json:"max"`
}

// Charge tiers shipped with the default catalog
const (
	ChargeMinor  = "minor-charge"
	ChargeMedium = "medium-charge"
	ChargeLarge  = "large-charge"
)

// ElixirEffectKind is what an elixir changes for the round it is active
type ElixirEffectKind string

// Elixir effect kinds
const (
	// ElixirDamageBoost multiplies outgoing damage
	ElixirDamageBoost ElixirEffectKind = "damage_boost"
	// ElixirDamageReduction reduces boss damage by a percent
	ElixirDamageReduction ElixirEffectKind = "damage_reduction"
	// ElixirReflect returns a percent of damage taken to the boss
	ElixirReflect ElixirEffectKind = "reflect"
	// ElixirMagicBoost multiplies magic charge gain
	ElixirMagicBoost ElixirEffectKind = "magic_boost"
)

// Valid reports whether k is a known elixir effect kind
func (k ElixirEffectKind) Valid() bool {
	switch k {
	case ElixirDamageBoost, ElixirDamageReduction, ElixirReflect, ElixirMagicBoost:
		return true
	}
	return false
}

// ElixirEffect is one effect granted by an elixir. Multiplier kinds use Value as a
// factor, percent kinds as a percentage.
type ElixirEffect struct {
	Kind  ElixirEffectKind `yaml:"kind" json:"kind"`
	Value float64          `yaml:"value" json:"value"`
}

// Elixir is a consumable that lasts exactly one round
type Elixir struct {
	ID      string         `yaml:"id" json:"id"`
	Name    string         `yaml:"name" json:"name"`
	Effects []ElixirEffect `yaml:"effects" json:"effects"`
}

// ActiveElixir is an elixir in effect during a battle
type ActiveElixir struct {
	ElixirID        string         `json:"elixir_id"`
	RoundsRemaining int            `json:"rounds_remaining"`
	Effects         []ElixirEffect `json:"effects"`
}

// Activate returns the active form of an elixir. Elixirs last exactly one round.
func (e *Elixir) Activate() ActiveElixir {
	return ActiveElixir{
		ElixirID:        e.ID,
		RoundsRemaining: 1,
		Effects:         append([]ElixirEffect(nil), e.Effects...),
	}
}
