package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-raid/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 50051, cfg.Port)
	assert.Equal(t, 3, cfg.ForgeSlots)
	assert.Equal(t, 5000, cfg.FinalBattleHP)
	assert.Equal(t, 15*time.Second, cfg.ShortCooldown)
	assert.Equal(t, time.Minute, cfg.LongCooldown)
	assert.Equal(t, 3, cfg.MaxRounds)
	assert.Equal(t, 3, cfg.BossAttackInterval)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.UsesRedis())
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("RPG_RAID_PORT", "6000")
	t.Setenv("RPG_RAID_REDIS_ADDR", "localhost:6379")
	t.Setenv("RPG_RAID_LONG_COOLDOWN", "2m")
	t.Setenv("RPG_RAID_LOG_LEVEL", "DEBUG")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 6000, cfg.Port)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2*time.Minute, cfg.LongCooldown)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.True(t, cfg.UsesRedis())
}

func TestLoadRedisCluster(t *testing.T) {
	t.Setenv("RPG_RAID_REDIS_CLUSTER_ADDRS", "redis-0:6379,redis-1:6379")
	t.Setenv("RPG_RAID_REDIS_TLS", "true")
	t.Setenv("RPG_RAID_REDIS_POOL_SIZE", "20")
	t.Setenv("RPG_RAID_MAX_ROUNDS", "5")
	t.Setenv("RPG_RAID_BOSS_ATTACK_INTERVAL", "2")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"redis-0:6379", "redis-1:6379"}, cfg.RedisClusterAddrs)
	assert.True(t, cfg.RedisTLS)
	assert.Equal(t, 20, cfg.RedisPoolSize)
	assert.True(t, cfg.UsesRedis())
	assert.Equal(t, 5, cfg.MaxRounds)
	assert.Equal(t, 2, cfg.BossAttackInterval)
}

func TestLoadRejectsBothRedisModes(t *testing.T) {
	t.Setenv("RPG_RAID_REDIS_ADDR", "localhost:6379")
	t.Setenv("RPG_RAID_REDIS_CLUSTER_ADDRS", "redis-0:6379")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "malformed duration", key: "RPG_RAID_SHORT_COOLDOWN", val: "soon"},
		{name: "zero slots", key: "RPG_RAID_FORGE_SLOTS", val: "0"},
		{name: "negative delay", key: "RPG_RAID_MATCHMAKING_DELAY", val: "-1s"},
		{name: "unknown level", key: "RPG_RAID_LOG_LEVEL", val: "loud"},
		{name: "zero rounds", key: "RPG_RAID_MAX_ROUNDS", val: "0"},
		{name: "zero attack interval", key: "RPG_RAID_BOSS_ATTACK_INTERVAL", val: "0"},
		{name: "negative pool size", key: "RPG_RAID_REDIS_POOL_SIZE", val: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
