// Package raid implements the raid orchestrator. It owns the raid phase state
// machine and the committed boss shield, and runs each battle round through a
// battle.Simulator.
package raid

//go:generate mockgen -destination=mock/mock_service.go -package=raidmock github.com/KirkDiggler/rpg-raid/internal/orchestrators/raid Service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-raid/internal/catalog"
	"github.com/KirkDiggler/rpg-raid/internal/engine/battle"
	"github.com/KirkDiggler/rpg-raid/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/rpg-raid/internal/entities/combat"
	entities "github.com/KirkDiggler/rpg-raid/internal/entities/raid"
	"github.com/KirkDiggler/rpg-raid/internal/errors"
	"github.com/KirkDiggler/rpg-raid/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-raid/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-raid/internal/pkg/roller"
	"github.com/KirkDiggler/rpg-raid/internal/repositories/enchantments"
	"github.com/KirkDiggler/rpg-raid/internal/repositories/equipment"
	"github.com/KirkDiggler/rpg-raid/internal/repositories/inventory"
	raidresults "github.com/KirkDiggler/rpg-raid/internal/repositories/raid_results"
)

// Defaults for Config
const (
	DefaultMatchmakingDelay = 5 * time.Second
	DefaultShortCooldown    = 15 * time.Second
	DefaultLongCooldown     = 60 * time.Second
	DefaultFinalBattleHP    = 5000
	DefaultPlayerHealth     = 2000
)

// Service defines the interface for raid operations
type Service interface {
	// StartRaid checks the level gate, consumes the boss key and starts matchmaking
	StartRaid(ctx context.Context, input *StartRaidInput) (*StartRaidOutput, error)

	// StartBattle enters a battle round from the lobby once the cooldown is over
	StartBattle(ctx context.Context, input *StartBattleInput) (*StartBattleOutput, error)

	// Attack performs a basic attack in the current battle
	Attack(ctx context.Context, input *AttackInput) (*AttackOutput, error)

	// UseCharge spends one charge from the inventory for burst damage
	UseCharge(ctx context.Context, input *UseChargeInput) (*UseChargeOutput, error)

	// UseElixir spends one elixir and activates it for the rest of the round
	UseElixir(ctx context.Context, input *UseElixirInput) (*UseElixirOutput, error)

	// CastMagic spends a full magic charge
	CastMagic(ctx context.Context, input *CastMagicInput) (*CastMagicOutput, error)

	// EndRound ends the current battle round
	EndRound(ctx context.Context, input *EndRoundInput) (*EndRoundOutput, error)

	// Retreat discards the current battle, or abandons the raid from outside a battle
	Retreat(ctx context.Context, input *RetreatInput) (*RetreatOutput, error)

	// ContinueToLobby leaves the round result for the lobby
	ContinueToLobby(ctx context.Context, input *ContinueToLobbyInput) (*ContinueToLobbyOutput, error)

	// ClaimReward grants the boss rewards after a victory and completes the raid
	ClaimReward(ctx context.Context, input *ClaimRewardInput) (*ClaimRewardOutput, error)

	// Advance applies the time that has passed on the clock
	Advance(ctx context.Context, input *AdvanceInput) (*AdvanceOutput, error)

	// GetRaid returns the raid without applying elapsed time
	GetRaid(ctx context.Context, input *GetRaidInput) (*GetRaidOutput, error)
}

// Config holds the dependencies for the raid orchestrator
type Config struct {
	Catalog       catalog.Reader
	Resolver      battle.ProcResolver
	Roller        dice.Roller
	InventoryRepo inventory.Repository
	EquipmentRepo equipment.Repository
	BindingRepo   enchantments.Repository
	ResultRepo    raidresults.Repository
	Clock         clock.Clock
	IDGenerator   idgen.Generator
	// Publisher is optional
	Publisher *rpgtoolkit.Publisher

	// Zero values select the package defaults
	MatchmakingDelay   time.Duration
	ShortCooldown      time.Duration
	LongCooldown       time.Duration
	FinalBattleHP      int
	PlayerHealth       int
	MaxRounds          int
	BossAttackInterval int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Resolver == nil {
		vb.RequiredField("Resolver")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.InventoryRepo == nil {
		vb.RequiredField("InventoryRepo")
	}
	if c.EquipmentRepo == nil {
		vb.RequiredField("EquipmentRepo")
	}
	if c.BindingRepo == nil {
		vb.RequiredField("BindingRepo")
	}
	if c.ResultRepo == nil {
		vb.RequiredField("ResultRepo")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.MatchmakingDelay < 0 || c.ShortCooldown < 0 || c.LongCooldown < 0 {
		vb.Field("Cooldowns", "cannot be negative")
	}
	if c.FinalBattleHP < 0 {
		vb.Field("FinalBattleHP", "cannot be negative")
	}
	if c.PlayerHealth < 0 {
		vb.Field("PlayerHealth", "cannot be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	catalog       catalog.Reader
	resolver      battle.ProcResolver
	roller        dice.Roller
	inventoryRepo inventory.Repository
	equipmentRepo equipment.Repository
	bindingRepo   enchantments.Repository
	resultRepo    raidresults.Repository
	clock         clock.Clock
	idGen         idgen.Generator
	publisher     *rpgtoolkit.Publisher

	matchmakingDelay   time.Duration
	shortCooldown      time.Duration
	longCooldown       time.Duration
	finalBattleHP      int
	playerHealth       int
	maxRounds          int
	bossAttackInterval int

	// one lock for every raid keeps each player action a single mutation
	mu     sync.Mutex
	raids  map[string]*raidState
	active map[string]string // player ID -> raid ID
}

// raidState is the mutable record behind a Raid snapshot
type raidState struct {
	raid *Raid
	boss *entities.Boss

	// timer is the global raid timer as of lobbySince
	timer         time.Duration
	lobbySince    time.Time
	cooldownUntil time.Time

	sim          *battle.Simulator
	battleSynced time.Time
}

// NewOrchestrator creates a new raid orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		catalog:            cfg.Catalog,
		resolver:           cfg.Resolver,
		roller:             cfg.Roller,
		inventoryRepo:      cfg.InventoryRepo,
		equipmentRepo:      cfg.EquipmentRepo,
		bindingRepo:        cfg.BindingRepo,
		resultRepo:         cfg.ResultRepo,
		clock:              cfg.Clock,
		idGen:              cfg.IDGenerator,
		publisher:          cfg.Publisher,
		matchmakingDelay:   orDefault(cfg.MatchmakingDelay, DefaultMatchmakingDelay),
		shortCooldown:      orDefault(cfg.ShortCooldown, DefaultShortCooldown),
		longCooldown:       orDefault(cfg.LongCooldown, DefaultLongCooldown),
		finalBattleHP:      orDefault(cfg.FinalBattleHP, DefaultFinalBattleHP),
		playerHealth:       orDefault(cfg.PlayerHealth, DefaultPlayerHealth),
		maxRounds:          cfg.MaxRounds,
		bossAttackInterval: cfg.BossAttackInterval,
		raids:              make(map[string]*raidState),
		active:             make(map[string]string),
	}, nil
}

// StartRaid starts matchmaking for a boss
func (o *orchestrator) StartRaid(ctx context.Context, input *StartRaidInput) (*StartRaidOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("PlayerID", input.PlayerID, vb)
	errors.ValidateRequired("BossID", input.BossID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	boss, err := o.catalog.Boss(input.BossID)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if id, ok := o.active[input.PlayerID]; ok {
		return nil, errors.AlreadyActive("player %s is already in raid %s", input.PlayerID, id).
			WithMeta("raid_id", id)
	}

	loadout, err := o.equipmentRepo.GetLoadout(ctx, equipment.GetLoadoutInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read loadout")
	}
	level := loadout.Stats().Level
	if level < boss.MinLevel {
		return nil, errors.FailedPreconditionf("%s requires level %d", boss.Name, boss.MinLevel).
			WithMeta("min_level", boss.MinLevel).
			WithMeta("level", level)
	}

	if boss.KeyItem != "" && boss.KeyQuantity > 0 {
		if _, err := o.inventoryRepo.Consume(ctx, &inventory.ConsumeInput{
			PlayerID: input.PlayerID,
			Costs:    map[string]int{boss.KeyItem: boss.KeyQuantity},
		}); err != nil {
			return nil, err
		}
	}

	now := o.clock.Now()
	raidID := o.idGen.Generate()
	st := &raidState{
		boss:  boss,
		timer: boss.RaidTimer(),
		raid: &Raid{
			ID:           raidID,
			PlayerID:     input.PlayerID,
			BossID:       boss.ID,
			Phase:        entities.PhaseMatchmaking,
			Party:        o.matchParty(raidID, input.PlayerID, level, boss),
			Shield:       boss.Shield,
			MaxShield:    boss.Shield,
			FinalHP:      o.finalPool(boss),
			MaxFinalHP:   o.finalPool(boss),
			Pool:         battle.PoolShield,
			MatchReadyAt: now.Add(o.matchmakingDelay),
			StartedAt:    now,
		},
	}
	o.raids[raidID] = st
	o.active[input.PlayerID] = raidID

	slog.Info("Raid started",
		"raid_id", raidID,
		"player_id", input.PlayerID,
		"boss_id", boss.ID,
		"party_size", len(st.raid.Party),
	)
	o.publisher.Publish(ctx, rpgtoolkit.EventRaidStarted,
		rpgtoolkit.Player(input.PlayerID), rpgtoolkit.Raid(raidID),
		map[string]any{rpgtoolkit.KeyShield: boss.Shield})

	return &StartRaidOutput{Raid: o.snapshot(st, now)}, nil
}

// StartBattle opens a battle round. The optional charge and elixir are paid
// for together and only once every other check has passed.
func (o *orchestrator) StartBattle(ctx context.Context, input *StartBattleInput) (*StartBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	st, now, err := o.load(ctx, input.RaidID)
	if err != nil {
		return nil, err
	}
	if err := requirePhase(st, entities.PhaseLobby); err != nil {
		return nil, err
	}
	if now.Before(st.cooldownUntil) {
		wait := st.cooldownUntil.Sub(now)
		return nil, errors.FailedPreconditionf("battle cooldown has %s left", wait.Round(time.Second)).
			WithMeta("cooldown_seconds", int(wait.Seconds()))
	}

	costs := make(map[string]int)
	if input.ChargeID != "" {
		if _, err := o.catalog.Charge(input.ChargeID); err != nil {
			return nil, err
		}
		costs[input.ChargeID] = 1
	}
	if input.ElixirID != "" {
		if _, err := o.catalog.Elixir(input.ElixirID); err != nil {
			return nil, err
		}
		costs[input.ElixirID]++
	}

	sim, err := o.newSimulator(ctx, st)
	if err != nil {
		return nil, err
	}

	if len(costs) > 0 {
		if _, err := o.inventoryRepo.Consume(ctx, &inventory.ConsumeInput{
			PlayerID: st.raid.PlayerID,
			Costs:    costs,
		}); err != nil {
			return nil, err
		}
	}

	st.timer -= now.Sub(st.lobbySince)
	st.sim = sim
	st.battleSynced = now
	st.raid.Battle = nil
	o.setPhase(ctx, st, entities.PhaseBattle)

	if input.ElixirID != "" {
		if _, err := sim.UseElixir(input.ElixirID); err != nil {
			return nil, err
		}
	}
	if input.ChargeID != "" {
		state, err := sim.UseCharge(input.ChargeID)
		if err != nil {
			return nil, err
		}
		if err := o.afterAction(ctx, st, state, now); err != nil {
			return nil, err
		}
	}

	return &StartBattleOutput{Raid: o.snapshot(st, now)}, nil
}

// Attack performs a basic attack
func (o *orchestrator) Attack(ctx context.Context, input *AttackInput) (*AttackOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	r, err := o.battleAction(ctx, input.RaidID, func(st *raidState) (*battle.State, error) {
		return st.sim.Attack()
	})
	if err != nil {
		return nil, err
	}

	return &AttackOutput{Raid: r}, nil
}

// UseCharge spends one charge. The count is checked and decremented before the
// charge hits, so a player without charges never changes the shield.
func (o *orchestrator) UseCharge(ctx context.Context, input *UseChargeInput) (*UseChargeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ChargeID == "" {
		return nil, errors.InvalidArgument("charge ID is required")
	}

	r, err := o.battleAction(ctx, input.RaidID, func(st *raidState) (*battle.State, error) {
		if _, err := o.catalog.Charge(input.ChargeID); err != nil {
			return nil, err
		}
		if err := o.spend(ctx, st.raid.PlayerID, input.ChargeID); err != nil {
			return nil, err
		}
		return st.sim.UseCharge(input.ChargeID)
	})
	if err != nil {
		return nil, err
	}

	return &UseChargeOutput{Raid: r}, nil
}

// UseElixir drinks one elixir. An elixir already active this round is refused
// before anything is spent.
func (o *orchestrator) UseElixir(ctx context.Context, input *UseElixirInput) (*UseElixirOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ElixirID == "" {
		return nil, errors.InvalidArgument("elixir ID is required")
	}

	r, err := o.battleAction(ctx, input.RaidID, func(st *raidState) (*battle.State, error) {
		if _, err := o.catalog.Elixir(input.ElixirID); err != nil {
			return nil, err
		}
		for _, active := range st.sim.Snapshot().ActiveElixirs {
			if active.ElixirID == input.ElixirID {
				return nil, errors.AlreadyActive("elixir %s is already active", input.ElixirID)
			}
		}
		if err := o.spend(ctx, st.raid.PlayerID, input.ElixirID); err != nil {
			return nil, err
		}
		return st.sim.UseElixir(input.ElixirID)
	})
	if err != nil {
		return nil, err
	}

	return &UseElixirOutput{Raid: r}, nil
}

// CastMagic spends a full magic charge
func (o *orchestrator) CastMagic(ctx context.Context, input *CastMagicInput) (*CastMagicOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	r, err := o.battleAction(ctx, input.RaidID, func(st *raidState) (*battle.State, error) {
		return st.sim.CastMagic()
	})
	if err != nil {
		return nil, err
	}

	return &CastMagicOutput{Raid: r}, nil
}

// EndRound ends the current battle round
func (o *orchestrator) EndRound(ctx context.Context, input *EndRoundInput) (*EndRoundOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	r, err := o.battleAction(ctx, input.RaidID, func(st *raidState) (*battle.State, error) {
		return st.sim.EndRound()
	})
	if err != nil {
		return nil, err
	}

	return &EndRoundOutput{Raid: r}, nil
}

// Retreat leaves a battle for the lobby without committing any of its damage.
// Outside a battle it abandons the raid.
func (o *orchestrator) Retreat(ctx context.Context, input *RetreatInput) (*RetreatOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	st, now, err := o.load(ctx, input.RaidID)
	if err != nil {
		return nil, err
	}

	switch phase := st.raid.Phase; {
	case phase.Terminal():
		return nil, errors.Terminal("raid is %s", phase)
	case phase == entities.PhaseVictory:
		return nil, errors.FailedPrecondition("raid is won; claim the reward instead")
	case phase == entities.PhaseBattle:
		st.sim = nil
		st.cooldownUntil = now.Add(o.longCooldown)
		o.enterLobby(ctx, st, now)
		slog.Info("Retreated from battle",
			"raid_id", st.raid.ID,
			"shield", st.raid.Shield,
		)
	default:
		if phase == entities.PhaseLobby {
			st.timer -= now.Sub(st.lobbySince)
		}
		o.setPhase(ctx, st, entities.PhaseAbandoned)
		delete(o.active, st.raid.PlayerID)
	}

	return &RetreatOutput{Raid: o.snapshot(st, now)}, nil
}

// ContinueToLobby moves a finished round back to the lobby
func (o *orchestrator) ContinueToLobby(ctx context.Context, input *ContinueToLobbyInput) (*ContinueToLobbyOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	st, now, err := o.load(ctx, input.RaidID)
	if err != nil {
		return nil, err
	}
	if err := requirePhase(st, entities.PhaseResult); err != nil {
		return nil, err
	}

	o.enterLobby(ctx, st, now)

	return &ContinueToLobbyOutput{Raid: o.snapshot(st, now)}, nil
}

// ClaimReward grants the boss rewards
func (o *orchestrator) ClaimReward(ctx context.Context, input *ClaimRewardInput) (*ClaimRewardOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	st, now, err := o.load(ctx, input.RaidID)
	if err != nil {
		return nil, err
	}
	if err := requirePhase(st, entities.PhaseVictory); err != nil {
		return nil, err
	}

	o.setPhase(ctx, st, entities.PhaseReward)
	granted := make(map[string]int, len(st.boss.Rewards))
	for item, n := range st.boss.Rewards {
		if n <= 0 {
			continue
		}
		if _, err := o.inventoryRepo.Increment(ctx, &inventory.IncrementInput{
			PlayerID: st.raid.PlayerID,
			ItemID:   item,
			Delta:    n,
		}); err != nil {
			return nil, errors.Wrapf(err, "failed to grant %s", item)
		}
		granted[item] = n
	}
	st.raid.Rewards = granted
	o.setPhase(ctx, st, entities.PhaseComplete)
	delete(o.active, st.raid.PlayerID)

	slog.Info("Raid reward claimed",
		"raid_id", st.raid.ID,
		"player_id", st.raid.PlayerID,
		"rewards", granted,
	)

	return &ClaimRewardOutput{Raid: o.snapshot(st, now), Rewards: granted}, nil
}

// Advance applies elapsed time
func (o *orchestrator) Advance(ctx context.Context, input *AdvanceInput) (*AdvanceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	st, now, err := o.load(ctx, input.RaidID)
	if err != nil {
		return nil, err
	}

	return &AdvanceOutput{Raid: o.snapshot(st, now)}, nil
}

// GetRaid returns a raid snapshot
func (o *orchestrator) GetRaid(_ context.Context, input *GetRaidInput) (*GetRaidOutput, error) {
	if input == nil || input.RaidID == "" {
		return nil, errors.InvalidArgument("raid ID is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	st, ok := o.raids[input.RaidID]
	if !ok {
		return nil, errors.NotFoundf("raid %s not found", input.RaidID)
	}

	return &GetRaidOutput{Raid: o.snapshot(st, o.clock.Now())}, nil
}

// battleAction runs fn against the live simulator under the lock and settles
// the round if it ended.
func (o *orchestrator) battleAction(ctx context.Context, raidID string, fn func(*raidState) (*battle.State, error)) (*Raid, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	st, now, err := o.load(ctx, raidID)
	if err != nil {
		return nil, err
	}

	switch phase := st.raid.Phase; phase {
	case entities.PhaseBattle:
	case entities.PhaseResult, entities.PhaseVictory:
		return nil, errors.Terminal("battle is complete")
	default:
		if phase.Terminal() {
			return nil, errors.Terminal("raid is %s", phase)
		}
		return nil, errors.FailedPreconditionf("raid is in %s, not in battle", phase)
	}

	state, err := fn(st)
	if err != nil {
		return nil, err
	}
	if err := o.afterAction(ctx, st, state, now); err != nil {
		return nil, err
	}

	return o.snapshot(st, now), nil
}

func (o *orchestrator) afterAction(ctx context.Context, st *raidState, state *battle.State, now time.Time) error {
	for _, id := range state.LastProcs {
		o.publisher.Publish(ctx, rpgtoolkit.EventProcTriggered,
			rpgtoolkit.Player(st.raid.PlayerID), rpgtoolkit.Boss(st.boss.ID),
			map[string]any{
				rpgtoolkit.KeyEnchantment: string(id),
				rpgtoolkit.KeyDamage:      state.LastDamage,
			})
	}
	if state.Complete {
		return o.completeRound(ctx, st, now)
	}
	return nil
}

// load fetches a raid and applies elapsed time to it
func (o *orchestrator) load(ctx context.Context, raidID string) (*raidState, time.Time, error) {
	if raidID == "" {
		return nil, time.Time{}, errors.InvalidArgument("raid ID is required")
	}
	st, ok := o.raids[raidID]
	if !ok {
		return nil, time.Time{}, errors.NotFoundf("raid %s not found", raidID)
	}

	now := o.clock.Now()
	if err := o.sync(ctx, st, now); err != nil {
		return nil, time.Time{}, err
	}
	return st, now, nil
}

// sync moves a raid forward to now. Matchmaking ends after its delay, the
// global timer runs down in the lobby and the battle clock in battle.
func (o *orchestrator) sync(ctx context.Context, st *raidState, now time.Time) error {
	for {
		switch st.raid.Phase {
		case entities.PhaseMatchmaking:
			if now.Before(st.raid.MatchReadyAt) {
				return nil
			}
			o.enterLobby(ctx, st, st.raid.MatchReadyAt)

		case entities.PhaseLobby:
			if now.Sub(st.lobbySince) < st.timer {
				return nil
			}
			expired := st.lobbySince.Add(st.timer)
			st.timer = 0
			return o.defeat(ctx, st, expired)

		case entities.PhaseBattle:
			secs := int(now.Sub(st.battleSynced) / time.Second)
			if secs <= 0 {
				return nil
			}
			state, err := st.sim.Advance(secs)
			if err != nil {
				return errors.Wrap(err, "failed to advance battle")
			}
			st.battleSynced = st.battleSynced.Add(time.Duration(secs) * time.Second)
			if !state.Complete {
				return nil
			}
			if err := o.completeRound(ctx, st, st.battleSynced); err != nil {
				return err
			}

		default:
			return nil
		}
	}
}

// completeRound commits a finished battle. The simulator's pool value is the
// only thing that moves the committed shield, and only downwards.
func (o *orchestrator) completeRound(ctx context.Context, st *raidState, at time.Time) error {
	state := st.sim.Snapshot()
	st.sim = nil

	r := st.raid
	r.Battle = state
	r.Rounds++
	r.DamageDealt += state.DamageDealt

	switch state.Pool {
	case battle.PoolShield:
		r.Shield = min(r.Shield, max(state.Shield, 0))
		if r.Shield == 0 {
			r.Pool = battle.PoolFinal
		}
	case battle.PoolFinal:
		r.FinalHP = min(r.FinalHP, max(state.Shield, 0))
	}

	slog.Info("Battle round finished",
		"raid_id", r.ID,
		"round", r.Rounds,
		"pool", state.Pool,
		"victory", state.Victory,
		"end_reason", state.EndReason,
		"damage", state.DamageDealt,
		"shield", r.Shield,
	)
	o.publisher.Publish(ctx, rpgtoolkit.EventBattleFinished,
		rpgtoolkit.Raid(r.ID), rpgtoolkit.Boss(st.boss.ID),
		map[string]any{
			rpgtoolkit.KeyVictory: state.Victory,
			rpgtoolkit.KeyDamage:  state.DamageDealt,
			rpgtoolkit.KeyShield:  r.Shield,
			rpgtoolkit.KeyReason:  string(state.EndReason),
		})

	if state.Victory && state.Pool == battle.PoolFinal {
		return o.victory(ctx, st, at)
	}

	cooldown := o.longCooldown
	if state.Victory || state.UsedFullBudget() {
		cooldown = o.shortCooldown
	}
	st.cooldownUntil = at.Add(cooldown)
	o.setPhase(ctx, st, entities.PhaseResult)
	return nil
}

func (o *orchestrator) victory(ctx context.Context, st *raidState, at time.Time) error {
	placement, err := roller.Between(o.roller, 1, len(entities.PlacementBase))
	if err != nil {
		return errors.Wrap(err, "failed to roll placement")
	}

	r := st.raid
	result := &entities.Result{
		ID:          o.idGen.Generate(),
		RaidID:      r.ID,
		PlayerID:    r.PlayerID,
		BossID:      r.BossID,
		Victory:     true,
		DamageDealt: r.DamageDealt,
		RoundsUsed:  r.Rounds,
		RatingDelta: entities.RatingGain(placement, r.DamageDealt, st.boss.Shield),
		Placement:   placement,
		CreatedAt:   at,
	}
	if err := o.record(ctx, st, result); err != nil {
		return err
	}

	o.setPhase(ctx, st, entities.PhaseVictory)
	return nil
}

// defeat ends the raid on timer expiry. Rating is untouched.
func (o *orchestrator) defeat(ctx context.Context, st *raidState, at time.Time) error {
	r := st.raid
	result := &entities.Result{
		ID:          o.idGen.Generate(),
		RaidID:      r.ID,
		PlayerID:    r.PlayerID,
		BossID:      r.BossID,
		DamageDealt: r.DamageDealt,
		RoundsUsed:  r.Rounds,
		CreatedAt:   at,
	}
	if err := o.record(ctx, st, result); err != nil {
		return err
	}

	o.setPhase(ctx, st, entities.PhaseDefeat)
	delete(o.active, r.PlayerID)
	return nil
}

// record persists the result and updates the player's stats. A raid that
// already has a result keeps the stored one.
func (o *orchestrator) record(ctx context.Context, st *raidState, result *entities.Result) error {
	if st.raid.Result != nil {
		return nil
	}

	if _, err := o.resultRepo.Create(ctx, &raidresults.CreateInput{Result: result}); err != nil {
		if !errors.IsAlreadyExists(err) {
			return errors.Wrap(err, "failed to record raid result")
		}
		slog.Warn("Raid result already recorded", "raid_id", result.RaidID)
	}
	st.raid.Result = result

	stats := map[string]int{inventory.StatTotalDamage: result.DamageDealt}
	if result.Victory {
		stats[inventory.StatRaidsWon] = 1
		stats[inventory.StatRating] = result.RatingDelta
	} else {
		stats[inventory.StatRaidsLost] = 1
	}
	for stat, delta := range stats {
		if delta == 0 {
			continue
		}
		if _, err := o.inventoryRepo.Increment(ctx, &inventory.IncrementInput{
			PlayerID: result.PlayerID,
			ItemID:   stat,
			Delta:    delta,
		}); err != nil {
			slog.Error("Failed to update player stat",
				"player_id", result.PlayerID,
				"stat", stat,
				"error", err,
			)
		}
	}

	slog.Info("Raid finished",
		"raid_id", result.RaidID,
		"player_id", result.PlayerID,
		"victory", result.Victory,
		"damage", result.DamageDealt,
		"rating_delta", result.RatingDelta,
		"placement", result.Placement,
	)
	o.publisher.Publish(ctx, rpgtoolkit.EventRaidFinished,
		rpgtoolkit.Raid(result.RaidID), rpgtoolkit.Player(result.PlayerID),
		map[string]any{
			rpgtoolkit.KeyVictory:   result.Victory,
			rpgtoolkit.KeyDamage:    result.DamageDealt,
			rpgtoolkit.KeyRating:    result.RatingDelta,
			rpgtoolkit.KeyPlacement: result.Placement,
		})
	return nil
}

func (o *orchestrator) newSimulator(ctx context.Context, st *raidState) (*battle.Simulator, error) {
	playerID := st.raid.PlayerID

	items, err := o.equipmentRepo.GetLoadout(ctx, equipment.GetLoadoutInput{PlayerID: playerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read loadout")
	}

	ids := make([]string, 0, len(items.Items))
	for _, item := range items.Items {
		ids = append(ids, item.ID)
	}
	bound, err := o.bindingRepo.List(ctx, &enchantments.ListInput{EquipmentIDs: ids})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read enchantments")
	}

	loadout := make(battle.Loadout, len(items.Items))
	for category, item := range items.Items {
		if b, ok := bound.Bindings[item.ID]; ok {
			loadout[category] = b
		}
	}

	pool, poolMax, poolLeft := battle.PoolShield, st.raid.MaxShield, st.raid.Shield
	if st.raid.Shield <= 0 {
		pool, poolMax, poolLeft = battle.PoolFinal, st.raid.MaxFinalHP, st.raid.FinalHP
	}

	return battle.New(&battle.Config{
		Catalog:            o.catalog,
		Resolver:           o.resolver,
		Roller:             o.roller,
		Boss:               st.boss,
		Player:             combat.NewEntity(playerID, o.playerHealth, items.Stats()),
		Loadout:            loadout,
		Pool:               pool,
		PoolMax:            poolMax,
		PoolRemaining:      poolLeft,
		MaxRounds:          o.maxRounds,
		BossAttackInterval: o.bossAttackInterval,
	})
}

// spend removes one consumable after checking the player has it
func (o *orchestrator) spend(ctx context.Context, playerID, itemID string) error {
	has, err := o.inventoryRepo.HasAtLeast(ctx, &inventory.HasAtLeastInput{
		PlayerID: playerID,
		ItemID:   itemID,
		N:        1,
	})
	if err != nil {
		return err
	}
	if !has.OK {
		return errors.InsufficientResources("no %s left", itemID).
			WithMeta("item_id", itemID).
			WithMeta("have", has.Count).
			WithMeta("need", 1)
	}

	_, err = o.inventoryRepo.Increment(ctx, &inventory.IncrementInput{
		PlayerID: playerID,
		ItemID:   itemID,
		Delta:    -1,
	})
	return err
}

func (o *orchestrator) enterLobby(ctx context.Context, st *raidState, at time.Time) {
	st.lobbySince = at
	o.setPhase(ctx, st, entities.PhaseLobby)
}

func (o *orchestrator) setPhase(ctx context.Context, st *raidState, to entities.Phase) {
	from := st.raid.Phase
	if from == to {
		return
	}
	st.raid.Phase = to

	slog.Debug("Raid phase changed",
		"raid_id", st.raid.ID,
		"from", from,
		"to", to,
	)
	o.publisher.Publish(ctx, rpgtoolkit.EventRaidPhaseChanged,
		rpgtoolkit.Raid(st.raid.ID), rpgtoolkit.Player(st.raid.PlayerID),
		map[string]any{
			rpgtoolkit.KeyPhaseFrom: string(from),
			rpgtoolkit.KeyPhaseTo:   string(to),
		})
}

// snapshot copies the raid with its timers read at now
func (o *orchestrator) snapshot(st *raidState, now time.Time) *Raid {
	r := *st.raid
	r.Party = append([]entities.Member(nil), st.raid.Party...)

	r.TimeRemaining = st.timer
	if r.Phase == entities.PhaseLobby {
		r.TimeRemaining = max(st.timer-now.Sub(st.lobbySince), 0)
	}
	r.CooldownRemaining = max(st.cooldownUntil.Sub(now), 0)

	if st.sim != nil {
		r.Battle = st.sim.Snapshot()
	}
	if st.raid.Result != nil {
		res := *st.raid.Result
		r.Result = &res
	}
	if st.raid.Rewards != nil {
		r.Rewards = make(map[string]int, len(st.raid.Rewards))
		for k, v := range st.raid.Rewards {
			r.Rewards[k] = v
		}
	}
	return &r
}

// matchParty fills the party with bots at the boss's minimum level
func (o *orchestrator) matchParty(raidID, playerID string, level int, boss *entities.Boss) []entities.Member {
	size := max(boss.MaxPartySize, 1)
	party := make([]entities.Member, 0, size)
	party = append(party, entities.Member{ID: playerID, Name: playerID, Level: level})
	for i := 1; i < size; i++ {
		party = append(party, entities.Member{
			ID:    fmt.Sprintf("%s-bot-%d", raidID, i),
			Name:  fmt.Sprintf("Bot %d", i),
			Bot:   true,
			Level: max(boss.MinLevel, 1),
		})
	}
	return party
}

func (o *orchestrator) finalPool(boss *entities.Boss) int {
	if boss.FinalBattleHP > 0 {
		return boss.FinalBattleHP
	}
	return o.finalBattleHP
}

func requirePhase(st *raidState, want entities.Phase) error {
	phase := st.raid.Phase
	if phase == want {
		return nil
	}
	if phase.Terminal() {
		return errors.Terminal("raid is %s", phase)
	}
	return errors.FailedPreconditionf("raid is in %s, not %s", phase, want)
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
