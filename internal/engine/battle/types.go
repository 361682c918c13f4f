package battle

import (
	"github.com/KirkDiggler/rpg-raid/internal/entities/combat"
	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
	"github.com/KirkDiggler/rpg-raid/internal/entities/raid"
)

// Pool is the boss resource a battle depletes
type Pool string

// Pools
const (
	PoolShield Pool = "shield"
	PoolFinal  Pool = "final"
)

// EndReason records why a battle completed
type EndReason string

// End reasons
const (
	EndNone           EndReason = ""
	EndPoolDepleted   EndReason = "pool_depleted"
	EndTimeExpired    EndReason = "time_expired"
	EndPlayerDefeated EndReason = "player_defeated"
	EndRoundCap       EndReason = "round_cap"
)

// Action names reported in State.LastAction
const (
	ActionStart      = "start"
	ActionAttack     = "attack"
	ActionBossAttack = "boss_attack"
	ActionCharge     = "charge"
	ActionElixir     = "elixir"
	ActionMagic      = "magic"
	ActionEndRound   = "end_round"
	ActionTick       = "tick"
)

// Battle defaults
const (
	DefaultMaxRounds          = 3
	DefaultBossAttackInterval = 3
	MaxMagicCharge            = 100
	MagicChargePerAttack      = 10
)

// Damage ranges
const (
	attackMin     = 80
	attackMax     = 130
	bossAttackMin = 60
	bossAttackMax = 140
	magicMin      = 250
	magicMax      = 350
)

// Loadout is the player's enchantment bindings keyed by equipment category
type Loadout map[enchantment.Category]*enchantment.Binding

// Bindings returns the bindings in category order
func (l Loadout) Bindings() []*enchantment.Binding {
	out := make([]*enchantment.Binding, 0, len(l))
	for _, c := range enchantment.AllCategories {
		if b, ok := l[c]; ok && b != nil {
			out = append(out, b)
		}
	}
	return out
}

// State is an immutable snapshot of a battle
type State struct {
	BossID        string              `json:"boss_id"`
	Pool          Pool                `json:"pool"`
	Shield        int                 `json:"shield"`
	MaxShield     int                 `json:"max_shield"`
	Round         int                 `json:"round"`
	MaxRounds     int                 `json:"max_rounds"`
	TimeRemaining int                 `json:"time_remaining"`
	TimeBudget    int                 `json:"time_budget"`
	Player        *combat.Entity      `json:"player"`
	Boss          *combat.Entity      `json:"boss"`
	ActiveElixirs []raid.ActiveElixir `json:"active_elixirs"`
	DamageDealt   int                 `json:"damage_dealt"`
	Hits          int                 `json:"hits"`
	MagicCharge   int                 `json:"magic_charge"`
	Complete      bool                `json:"complete"`
	Victory       bool                `json:"victory"`
	EndReason     EndReason           `json:"end_reason,omitempty"`
	SetBonus      enchantment.ID      `json:"set_bonus,omitempty"`

	// LastAction and LastDamage describe the action that produced this snapshot
	LastAction string `json:"last_action"`
	LastDamage int    `json:"last_damage"`
	// LastProcs lists the enchantments that triggered during that action
	LastProcs []enchantment.ID `json:"last_procs,omitempty"`
}

// UsedFullBudget reports whether the battle ran out its whole time budget
func (s *State) UsedFullBudget() bool {
	return s.TimeRemaining == 0
}
