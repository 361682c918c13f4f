package raid

import (
	"time"

	"github.com/KirkDiggler/rpg-raid/internal/engine/battle"
	entities "github.com/KirkDiggler/rpg-raid/internal/entities/raid"
)

// Raid is a snapshot of one player's raid
type Raid struct {
	ID       string            `json:"id"`
	PlayerID string            `json:"player_id"`
	BossID   string            `json:"boss_id"`
	Phase    entities.Phase    `json:"phase"`
	Party    []entities.Member `json:"party"`

	// Shield is the committed boss shield and only ever goes down. Once it is
	// gone the next battle fights the final HP pool instead.
	Shield     int         `json:"shield"`
	MaxShield  int         `json:"max_shield"`
	FinalHP    int         `json:"final_hp"`
	MaxFinalHP int         `json:"max_final_hp"`
	Pool       battle.Pool `json:"pool"`

	// TimeRemaining is the global raid timer. It only runs in the lobby.
	TimeRemaining     time.Duration `json:"time_remaining"`
	CooldownRemaining time.Duration `json:"cooldown_remaining"`
	MatchReadyAt      time.Time     `json:"match_ready_at"`
	StartedAt         time.Time     `json:"started_at"`

	Rounds      int `json:"rounds"`
	DamageDealt int `json:"damage_dealt"`

	// Battle is the live battle, or the last finished one while in Result
	Battle *battle.State `json:"battle,omitempty"`

	Result  *entities.Result `json:"result,omitempty"`
	Rewards map[string]int   `json:"rewards,omitempty"`
}

// StartRaidInput defines the request for starting a raid
type StartRaidInput struct {
	PlayerID string
	BossID   string
}

// StartRaidOutput defines the response for starting a raid
type StartRaidOutput struct {
	Raid *Raid
}

// StartBattleInput defines the request for entering a battle round.
// ChargeID and ElixirID are optional and used as the round opens.
type StartBattleInput struct {
	RaidID   string
	ChargeID string
	ElixirID string
}

// StartBattleOutput defines the response for entering a battle round
type StartBattleOutput struct {
	Raid *Raid
}

// AttackInput defines the request for a basic attack
type AttackInput struct {
	RaidID string
}

// AttackOutput defines the response for a basic attack
type AttackOutput struct {
	Raid *Raid
}

// UseChargeInput defines the request for using a charge
type UseChargeInput struct {
	RaidID   string
	ChargeID string
}

// UseChargeOutput defines the response for using a charge
type UseChargeOutput struct {
	Raid *Raid
}

// UseElixirInput defines the request for drinking an elixir
type UseElixirInput struct {
	RaidID   string
	ElixirID string
}

// UseElixirOutput defines the response for drinking an elixir
type UseElixirOutput struct {
	Raid *Raid
}

// CastMagicInput defines the request for casting magic
type CastMagicInput struct {
	RaidID string
}

// CastMagicOutput defines the response for casting magic
type CastMagicOutput struct {
	Raid *Raid
}

// EndRoundInput defines the request for ending a battle round
type EndRoundInput struct {
	RaidID string
}

// EndRoundOutput defines the response for ending a battle round
type EndRoundOutput struct {
	Raid *Raid
}

// RetreatInput defines the request for leaving the current battle or raid
type RetreatInput struct {
	RaidID string
}

// RetreatOutput defines the response for a retreat
type RetreatOutput struct {
	Raid *Raid
}

// ContinueToLobbyInput defines the request for leaving the round result screen
type ContinueToLobbyInput struct {
	RaidID string
}

// ContinueToLobbyOutput defines the response for returning to the lobby
type ContinueToLobbyOutput struct {
	Raid *Raid
}

// ClaimRewardInput defines the request for claiming a victory reward
type ClaimRewardInput struct {
	RaidID string
}

// ClaimRewardOutput defines the response for claiming a reward
type ClaimRewardOutput struct {
	Raid    *Raid
	Rewards map[string]int
}

// AdvanceInput defines the request for applying elapsed clock time to a raid
type AdvanceInput struct {
	RaidID string
}

// AdvanceOutput defines the response for an advance
type AdvanceOutput struct {
	Raid *Raid
}

// GetRaidInput defines the request for reading a raid
type GetRaidInput struct {
	RaidID string
}

// GetRaidOutput defines the response for reading a raid
type GetRaidOutput struct {
	Raid *Raid
}
