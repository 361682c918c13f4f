package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-raid/internal/config"
	"github.com/KirkDiggler/rpg-raid/internal/engine/battle"
	"github.com/KirkDiggler/rpg-raid/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/rpg-raid/internal/entities/combat"
	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
	entities "github.com/KirkDiggler/rpg-raid/internal/entities/raid"
	equipmententities "github.com/KirkDiggler/rpg-raid/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-raid/internal/errors"
	"github.com/KirkDiggler/rpg-raid/internal/orchestrators/forge"
	"github.com/KirkDiggler/rpg-raid/internal/orchestrators/raid"
	"github.com/KirkDiggler/rpg-raid/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-raid/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-raid/internal/pkg/roller"
	"github.com/KirkDiggler/rpg-raid/internal/repositories/equipment"
	"github.com/KirkDiggler/rpg-raid/internal/repositories/inventory"
	raidresults "github.com/KirkDiggler/rpg-raid/internal/repositories/raid_results"
)

const (
	simPlayer = "sim-player"
	// maxSimSteps bounds the main loop in case a raid never settles
	maxSimSteps = 10000
)

var (
	simSeed       uint64
	simBoss       string
	simLevel      int
	simDamage     int
	simAttacks    int
	simCharges    int
	simCatalogDir string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a scripted raid and print the outcome as JSON",
	Long: `Run one raid end to end against in-memory storage with a manual clock and a
seeded roller. The same seed and flags always produce the same output.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().Uint64Var(&simSeed, "seed", 1, "roller seed")
	simulateCmd.Flags().StringVar(&simBoss, "boss", "ashen-colossus", "boss to raid")
	simulateCmd.Flags().IntVar(&simLevel, "level", 0, "equipment level (default the boss minimum)")
	simulateCmd.Flags().IntVar(&simDamage, "damage", 40, "weapon damage stat")
	simulateCmd.Flags().IntVar(&simAttacks, "attacks-per-second", 2, "attacks made each simulated second")
	simulateCmd.Flags().IntVar(&simCharges, "charges", 3, "minor charges in the starting inventory")
	simulateCmd.Flags().StringVar(&simCatalogDir, "catalog", "", "catalog directory instead of the embedded one")
}

// simulation drives one scripted player through the forge and a raid
type simulation struct {
	eng    *engine
	clock  *clock.Manual
	counts map[string]int
	// chargedAfter is the completed round count when a charge was last used
	chargedAfter int
}

// simulationReport is printed as JSON
type simulationReport struct {
	Seed      uint64                 `json:"seed"`
	Boss      string                 `json:"boss"`
	Bindings  []*enchantment.Binding `json:"bindings"`
	Raid      *raid.Raid             `json:"raid"`
	Results   []*entities.Result     `json:"results"`
	Inventory map[string]int         `json:"inventory"`
	Events    map[string]int         `json:"events"`
	Elapsed   string                 `json:"elapsed"`
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	// simulations never touch shared storage
	cfg.RedisAddr = ""
	cfg.RedisClusterAddrs = nil
	cfg.ResultsDB = ""
	if cmd.Flags().Changed("catalog") {
		cfg.CatalogDir = simCatalogDir
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx := context.Background()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	manual := clock.NewManual(start)

	eng, err := newEngine(ctx, cfg, engineOptions{
		Clock:  manual,
		Roller: roller.NewSeeded(simSeed),
		IDs:    idgen.NewSequential("raid"),
	})
	if err != nil {
		return err
	}
	defer eng.Close()

	sim := &simulation{eng: eng, clock: manual, counts: make(map[string]int), chargedAfter: -1}
	sim.countEvents()

	report, err := sim.run(ctx)
	if err != nil {
		return err
	}
	report.Seed = simSeed
	report.Elapsed = manual.Now().Sub(start).String()

	output, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	fmt.Println(string(output))
	return nil
}

func (s *simulation) countEvents() {
	for _, eventType := range rpgtoolkit.AllEventTypes {
		s.eng.bus.SubscribeFunc(eventType, 0, func(_ context.Context, e events.Event) error {
			s.counts[e.Type()]++
			return nil
		})
	}
}

func (s *simulation) run(ctx context.Context) (*simulationReport, error) {
	boss, err := s.eng.store.Boss(simBoss)
	if err != nil {
		return nil, err
	}

	level := simLevel
	if level <= 0 {
		level = max(boss.MinLevel, 1)
	}

	if err := s.equip(ctx, level); err != nil {
		return nil, err
	}
	if err := s.stock(ctx, boss); err != nil {
		return nil, err
	}

	bindings, err := s.forgeLoadout(ctx)
	if err != nil {
		return nil, err
	}

	r, err := s.raid(ctx, boss.ID)
	if err != nil {
		return nil, err
	}

	results, err := s.eng.results.ListByPlayer(ctx, &raidresults.ListByPlayerInput{PlayerID: simPlayer})
	if err != nil {
		return nil, err
	}
	inv, err := s.eng.inventory.List(ctx, &inventory.ListInput{PlayerID: simPlayer})
	if err != nil {
		return nil, err
	}

	return &simulationReport{
		Boss:      boss.ID,
		Bindings:  bindings,
		Raid:      r,
		Results:   results.Results,
		Inventory: inv.Items,
		Events:    s.counts,
	}, nil
}

func (s *simulation) equip(ctx context.Context, level int) error {
	items := []*equipmententities.Item{
		{
			ID:       "sim-sword",
			OwnerID:  simPlayer,
			Name:     "Simulated Sword",
			Category: enchantment.CategoryWeapon,
			Level:    level,
			Stats:    combat.Stats{Damage: simDamage, Level: level},
		},
		{
			ID:       "sim-gloves",
			OwnerID:  simPlayer,
			Name:     "Simulated Gloves",
			Category: enchantment.CategoryGloves,
			Level:    level,
			Stats:    combat.Stats{Defense: 5, Level: level},
		},
	}

	for _, item := range items {
		if _, err := s.eng.equipment.Save(ctx, equipment.SaveInput{Item: item}); err != nil {
			return errors.Wrapf(err, "failed to save %s", item.ID)
		}
		if _, err := s.eng.equipment.Equip(ctx, equipment.EquipInput{PlayerID: simPlayer, EquipmentID: item.ID}); err != nil {
			return errors.Wrapf(err, "failed to equip %s", item.ID)
		}
	}
	return nil
}

func (s *simulation) stock(ctx context.Context, boss *entities.Boss) error {
	stock := map[string]int{
		boss.KeyItem:            max(boss.KeyQuantity, 1),
		inventory.ItemGreenOrbs: 6,
		inventory.ItemCrystals:  10,
		"minor-charge":          simCharges,
		"berserker":             1,
	}

	for item, n := range stock {
		if n <= 0 {
			continue
		}
		_, err := s.eng.inventory.Increment(ctx, &inventory.IncrementInput{
			PlayerID: simPlayer,
			ItemID:   item,
			Delta:    n,
		})
		if err != nil {
			return errors.Wrapf(err, "failed to stock %s", item)
		}
	}
	return nil
}

// forgeLoadout buys precision on the sword and lets poisoning finish on the gloves
func (s *simulation) forgeLoadout(ctx context.Context) ([]*enchantment.Binding, error) {
	_, err := s.eng.forge.StartForging(ctx, &forge.StartForgingInput{
		PlayerID:      simPlayer,
		Slot:          0,
		EnchantmentID: "precision",
		EquipmentID:   "sim-sword",
	})
	if err != nil {
		return nil, err
	}
	sped, err := s.eng.forge.SpeedUpForging(ctx, &forge.SpeedUpForgingInput{PlayerID: simPlayer, Slot: 0})
	if err != nil {
		return nil, err
	}

	started, err := s.eng.forge.StartForging(ctx, &forge.StartForgingInput{
		PlayerID:      simPlayer,
		Slot:          1,
		EnchantmentID: "poisoning",
		EquipmentID:   "sim-gloves",
	})
	if err != nil {
		return nil, err
	}
	s.clock.Advance(started.Slot.Remaining)

	expired, err := s.eng.forge.CheckExpired(ctx, &forge.CheckExpiredInput{PlayerID: simPlayer})
	if err != nil {
		return nil, err
	}

	return append([]*enchantment.Binding{sped.Binding}, expired.Completed...), nil
}

func (s *simulation) raid(ctx context.Context, bossID string) (*raid.Raid, error) {
	started, err := s.eng.raid.StartRaid(ctx, &raid.StartRaidInput{PlayerID: simPlayer, BossID: bossID})
	if err != nil {
		return nil, err
	}
	r := started.Raid
	firstBattle := true

	for step := 0; step < maxSimSteps; step++ {
		switch r.Phase {
		case entities.PhaseMatchmaking:
			s.clock.Set(r.MatchReadyAt)
			r, err = s.advance(ctx, r.ID)

		case entities.PhaseLobby:
			s.clock.Advance(r.CooldownRemaining)
			in := &raid.StartBattleInput{RaidID: r.ID}
			if firstBattle {
				in.ElixirID = "berserker"
				firstBattle = false
			}
			var out *raid.StartBattleOutput
			out, err = s.eng.raid.StartBattle(ctx, in)
			if err == nil {
				r = out.Raid
			} else if errors.IsFailedPrecondition(err) || errors.IsTerminal(err) {
				// the global timer ran out while waiting on the cooldown
				r, err = s.advance(ctx, r.ID)
			}

		case entities.PhaseBattle:
			r, err = s.fight(ctx, r)

		case entities.PhaseResult:
			var out *raid.ContinueToLobbyOutput
			out, err = s.eng.raid.ContinueToLobby(ctx, &raid.ContinueToLobbyInput{RaidID: r.ID})
			if err == nil {
				r = out.Raid
			}

		case entities.PhaseVictory:
			var out *raid.ClaimRewardOutput
			out, err = s.eng.raid.ClaimReward(ctx, &raid.ClaimRewardInput{RaidID: r.ID})
			if err == nil {
				r = out.Raid
			}

		default:
			return r, nil
		}

		if err != nil {
			return nil, err
		}
	}

	return nil, errors.Internalf("raid %s did not finish in %d steps", r.ID, maxSimSteps)
}

// fight plays one simulated second of battle
func (s *simulation) fight(ctx context.Context, r *raid.Raid) (*raid.Raid, error) {
	// open every battle with a charge while any are left
	if s.chargedAfter != r.Rounds {
		s.chargedAfter = r.Rounds
		out, err := s.eng.raid.UseCharge(ctx, &raid.UseChargeInput{RaidID: r.ID, ChargeID: "minor-charge"})
		switch {
		case err == nil:
			r = out.Raid
		case !errors.IsInsufficientResources(err):
			return nil, err
		}
	}

	for i := 0; i < simAttacks && r.Phase == entities.PhaseBattle; i++ {
		if r.Battle != nil && r.Battle.MagicCharge >= battle.MaxMagicCharge {
			out, err := s.eng.raid.CastMagic(ctx, &raid.CastMagicInput{RaidID: r.ID})
			if err != nil {
				return nil, err
			}
			r = out.Raid
			continue
		}
		out, err := s.eng.raid.Attack(ctx, &raid.AttackInput{RaidID: r.ID})
		if err != nil {
			return nil, err
		}
		r = out.Raid
	}

	if r.Phase != entities.PhaseBattle {
		return r, nil
	}
	s.clock.Advance(time.Second)
	return s.advance(ctx, r.ID)
}

func (s *simulation) advance(ctx context.Context, raidID string) (*raid.Raid, error) {
	out, err := s.eng.raid.Advance(ctx, &raid.AdvanceInput{RaidID: raidID})
	if err != nil {
		return nil, err
	}
	return out.Raid, nil
}
