package main

import (
	"context"
	"fmt"
	"log"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-raid/internal/catalog"
	"github.com/KirkDiggler/rpg-raid/internal/config"
	"github.com/KirkDiggler/rpg-raid/internal/engine/proc"
	"github.com/KirkDiggler/rpg-raid/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/rpg-raid/internal/orchestrators/forge"
	"github.com/KirkDiggler/rpg-raid/internal/orchestrators/raid"
	"github.com/KirkDiggler/rpg-raid/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-raid/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-raid/internal/redis"
	"github.com/KirkDiggler/rpg-raid/internal/repositories/enchantments"
	"github.com/KirkDiggler/rpg-raid/internal/repositories/equipment"
	forgeslots "github.com/KirkDiggler/rpg-raid/internal/repositories/forge_slots"
	"github.com/KirkDiggler/rpg-raid/internal/repositories/inventory"
	raidresults "github.com/KirkDiggler/rpg-raid/internal/repositories/raid_results"
)

// engine is the wired set of repositories and orchestrators
type engine struct {
	store     *catalog.Store
	bus       events.EventBus
	inventory inventory.Repository
	equipment equipment.Repository
	results   raidresults.Repository
	raid      raid.Service
	forge     forge.Service

	closers []func() error
}

type engineOptions struct {
	Clock  clock.Clock
	Roller dice.Roller
	IDs    idgen.Generator
}

type repositories struct {
	inventory inventory.Repository
	equipment equipment.Repository
	bindings  enchantments.Repository
	slots     forgeslots.Repository
}

func newEngine(ctx context.Context, cfg *config.Config, opts engineOptions) (*engine, error) {
	e := &engine{}

	cat, err := loadCatalog(cfg.CatalogDir)
	if err != nil {
		return nil, err
	}
	e.store = catalog.NewStore(cat)

	repos, err := e.newRepositories(cfg)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.inventory = repos.inventory
	e.equipment = repos.equipment

	if cfg.ResultsDB != "" {
		results, err := raidresults.NewSQLite(ctx, &raidresults.SQLiteConfig{Path: cfg.ResultsDB})
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("failed to open results ledger: %w", err)
		}
		e.closers = append(e.closers, results.Close)
		e.results = results
	} else {
		e.results = raidresults.NewInMemory()
	}

	e.bus = events.NewBus()
	publisher, err := rpgtoolkit.NewPublisher(&rpgtoolkit.PublisherConfig{EventBus: e.bus})
	if err != nil {
		e.Close()
		return nil, err
	}

	resolver, err := proc.NewResolver(&proc.Config{
		Catalog: e.store,
		Roller:  opts.Roller,
	})
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to create proc resolver: %w", err)
	}

	e.raid, err = raid.NewOrchestrator(&raid.Config{
		Catalog:            e.store,
		Resolver:           resolver,
		Roller:             opts.Roller,
		InventoryRepo:      repos.inventory,
		EquipmentRepo:      repos.equipment,
		BindingRepo:        repos.bindings,
		ResultRepo:         e.results,
		Clock:              opts.Clock,
		IDGenerator:        opts.IDs,
		Publisher:          publisher,
		MatchmakingDelay:   cfg.MatchmakingDelay,
		ShortCooldown:      cfg.ShortCooldown,
		LongCooldown:       cfg.LongCooldown,
		FinalBattleHP:      cfg.FinalBattleHP,
		PlayerHealth:       cfg.PlayerHealth,
		MaxRounds:          cfg.MaxRounds,
		BossAttackInterval: cfg.BossAttackInterval,
	})
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to create raid orchestrator: %w", err)
	}

	e.forge, err = forge.NewOrchestrator(&forge.Config{
		Catalog:       e.store,
		InventoryRepo: repos.inventory,
		EquipmentRepo: repos.equipment,
		BindingRepo:   repos.bindings,
		SlotRepo:      repos.slots,
		Clock:         opts.Clock,
		Publisher:     publisher,
		SlotCount:     cfg.ForgeSlots,
	})
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to create forge orchestrator: %w", err)
	}

	return e, nil
}

func (e *engine) newRepositories(cfg *config.Config) (*repositories, error) {
	if !cfg.UsesRedis() {
		return &repositories{
			inventory: inventory.NewInMemory(),
			equipment: equipment.NewInMemory(),
			bindings:  enchantments.NewInMemory(),
			slots:     forgeslots.NewInMemory(),
		}, nil
	}

	client, err := newRedisClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	e.closers = append(e.closers, client.Close)

	repos := &repositories{}
	if repos.inventory, err = inventory.NewRedis(&inventory.RedisConfig{Client: client}); err != nil {
		return nil, err
	}
	if repos.equipment, err = equipment.NewRedis(&equipment.RedisConfig{Client: client}); err != nil {
		return nil, err
	}
	if repos.bindings, err = enchantments.NewRedis(&enchantments.RedisConfig{Client: client}); err != nil {
		return nil, err
	}
	if repos.slots, err = forgeslots.NewRedis(&forgeslots.RedisConfig{Client: client}); err != nil {
		return nil, err
	}
	return repos, nil
}

func newRedisClient(cfg *config.Config) (redisclient.Client, error) {
	opts := &redisclient.Options{
		PoolSize: cfg.RedisPoolSize,
		UseTLS:   cfg.RedisTLS,
	}
	if len(cfg.RedisClusterAddrs) > 0 {
		return redisclient.NewClusterClient(cfg.RedisClusterAddrs, opts)
	}
	return redisclient.NewClient(cfg.RedisAddr, opts)
}

func loadCatalog(dir string) (*catalog.Catalog, error) {
	if dir == "" {
		cat, err := catalog.LoadDefault()
		if err != nil {
			return nil, fmt.Errorf("failed to load embedded catalog: %w", err)
		}
		return cat, nil
	}
	cat, err := catalog.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %s: %w", dir, err)
	}
	return cat, nil
}

// Close releases the redis client and the results ledger
func (e *engine) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			log.Printf("Failed to close resource: %v", err)
		}
	}
	e.closers = nil
}
