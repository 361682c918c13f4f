// Package config loads engine settings from the environment.
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-raid/internal/errors"
)

// Config holds the settings for the server and simulate commands. Cobra flags
// override whatever the environment sets.
type Config struct {
	Port int `env:"RPG_RAID_PORT" envDefault:"50051"`

	// RedisAddr selects the redis repositories; empty keeps everything in memory
	RedisAddr string `env:"RPG_RAID_REDIS_ADDR"`
	// RedisClusterAddrs selects a redis cluster instead of a single instance
	RedisClusterAddrs []string `env:"RPG_RAID_REDIS_CLUSTER_ADDRS" envSeparator:","`
	RedisTLS          bool     `env:"RPG_RAID_REDIS_TLS"`
	RedisPoolSize     int      `env:"RPG_RAID_REDIS_POOL_SIZE"`
	// ResultsDB is the sqlite file for the result ledger; empty keeps it in memory
	ResultsDB string `env:"RPG_RAID_RESULTS_DB"`
	// CatalogDir overrides the embedded catalog and is watched for changes
	CatalogDir string `env:"RPG_RAID_CATALOG_DIR"`

	ForgeSlots       int           `env:"RPG_RAID_FORGE_SLOTS"        envDefault:"3"`
	FinalBattleHP    int           `env:"RPG_RAID_FINAL_BATTLE_HP"    envDefault:"5000"`
	PlayerHealth     int           `env:"RPG_RAID_PLAYER_HEALTH"      envDefault:"2000"`
	MatchmakingDelay time.Duration `env:"RPG_RAID_MATCHMAKING_DELAY"  envDefault:"5s"`
	ShortCooldown    time.Duration `env:"RPG_RAID_SHORT_COOLDOWN"     envDefault:"15s"`
	LongCooldown     time.Duration `env:"RPG_RAID_LONG_COOLDOWN"      envDefault:"60s"`

	// MaxRounds caps the rounds in one battle
	MaxRounds int `env:"RPG_RAID_MAX_ROUNDS" envDefault:"3"`
	// BossAttackInterval is the seconds between passive boss attacks
	BossAttackInterval int `env:"RPG_RAID_BOSS_ATTACK_INTERVAL" envDefault:"3"`

	LogLevel string `env:"RPG_RAID_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return errors.Wrap(err, "parse env")
	}
	return nil
}

// Load parses a Config from the environment and validates it
func Load() (*Config, error) {
	cfg := &Config{}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the numeric settings
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidatePositive("Port", c.Port, vb)
	errors.ValidatePositive("ForgeSlots", c.ForgeSlots, vb)
	errors.ValidatePositive("FinalBattleHP", c.FinalBattleHP, vb)
	errors.ValidatePositive("PlayerHealth", c.PlayerHealth, vb)
	if c.MatchmakingDelay < 0 {
		vb.Field("MatchmakingDelay", "must not be negative")
	}
	if c.ShortCooldown < 0 || c.LongCooldown < 0 {
		vb.Field("Cooldown", "must not be negative")
	}
	errors.ValidatePositive("MaxRounds", c.MaxRounds, vb)
	errors.ValidatePositive("BossAttackInterval", c.BossAttackInterval, vb)
	if c.RedisAddr != "" && len(c.RedisClusterAddrs) > 0 {
		vb.Field("RedisAddr", "cannot be combined with RedisClusterAddrs")
	}
	if c.RedisPoolSize < 0 {
		vb.Field("RedisPoolSize", "must not be negative")
	}
	if _, ok := levels[strings.ToLower(c.LogLevel)]; !ok {
		vb.Fieldf("LogLevel", "unknown level %q", c.LogLevel)
	}

	return vb.Build()
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// SlogLevel returns the configured log level, info when unknown
func (c *Config) SlogLevel() slog.Level {
	if l, ok := levels[strings.ToLower(c.LogLevel)]; ok {
		return l
	}
	return slog.LevelInfo
}

// UsesRedis reports whether a single instance or a cluster is configured
func (c *Config) UsesRedis() bool {
	return c.RedisAddr != "" || len(c.RedisClusterAddrs) > 0
}
