package equipment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
	"github.com/KirkDiggler/rpg-raid/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-raid/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-raid/internal/redis"
)

const (
	itemKeyPrefix    = "equipment:item:"
	loadoutKeyPrefix = "equipment:loadout:"

	// Error messages
	errPlayerIDEmpty    = "player ID cannot be empty"
	errEquipmentIDEmpty = "equipment ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis equipment repository.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed equipment repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
	}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.EquipmentID == "" {
		return nil, errors.InvalidArgument(errEquipmentIDEmpty)
	}

	item, err := r.getItem(ctx, input.EquipmentID)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Item: item}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Item == nil || !input.Item.Validate() {
		return nil, errors.InvalidArgument("item is invalid")
	}

	jsonData, err := json.Marshal(input.Item)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal equipment data")
	}

	if err := r.client.Set(ctx, GetItemKey(input.Item.ID), jsonData, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to save equipment %s", input.Item.ID)
	}

	return &SaveOutput{Item: input.Item}, nil
}

func (r *redisRepository) Equip(ctx context.Context, input EquipInput) (*EquipOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}
	if input.EquipmentID == "" {
		return nil, errors.InvalidArgument(errEquipmentIDEmpty)
	}

	item, err := r.getItem(ctx, input.EquipmentID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != input.PlayerID {
		return nil, errors.InvalidTarget("equipment %s is not owned by %s", input.EquipmentID, input.PlayerID)
	}

	key := GetLoadoutKey(input.PlayerID)
	field := string(item.Category)

	// HSET after HGET in one round trip, the previous value is only informational
	pipe := r.client.TxPipeline()
	prev := pipe.HGet(ctx, key, field)
	pipe.HSet(ctx, key, field, item.ID)
	if _, err := pipe.Exec(ctx); err != nil && err != redisclient.Nil {
		return nil, errors.Wrapf(err, "failed to equip %s", item.ID)
	}

	replaced, _ := prev.Result()
	if replaced == item.ID {
		replaced = ""
	}

	return &EquipOutput{Category: item.Category, Replaced: replaced}, nil
}

func (r *redisRepository) GetEquipped(ctx context.Context, input GetEquippedInput) (*GetEquippedOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}
	if !input.Category.Valid() {
		return nil, errors.InvalidTarget("unknown equipment category %q", input.Category)
	}

	id, err := r.client.HGet(ctx, GetLoadoutKey(input.PlayerID), string(input.Category)).Result()
	if err != nil {
		if err == redisclient.Nil {
			return &GetEquippedOutput{}, nil
		}
		return nil, errors.Wrapf(err, "failed to read loadout for player %s", input.PlayerID)
	}

	item, err := r.getItem(ctx, id)
	if err != nil {
		return nil, err
	}

	return &GetEquippedOutput{Item: item}, nil
}

func (r *redisRepository) GetLoadout(ctx context.Context, input GetLoadoutInput) (*GetLoadoutOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	ids, err := r.client.HGetAll(ctx, GetLoadoutKey(input.PlayerID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read loadout for player %s", input.PlayerID)
	}

	items := make(map[enchantment.Category]*equipment.Item, len(ids))
	for category, id := range ids {
		item, err := r.getItem(ctx, id)
		if err != nil {
			return nil, err
		}
		items[enchantment.Category(category)] = item
	}

	return &GetLoadoutOutput{Items: items}, nil
}

func (r *redisRepository) GetStats(ctx context.Context, input GetStatsInput) (*GetStatsOutput, error) {
	if input.EquipmentID == "" {
		return nil, errors.InvalidArgument(errEquipmentIDEmpty)
	}

	item, err := r.getItem(ctx, input.EquipmentID)
	if err != nil {
		return nil, err
	}

	return &GetStatsOutput{Stats: item.Stats}, nil
}

func (r *redisRepository) getItem(ctx context.Context, id string) (*equipment.Item, error) {
	result, err := r.client.Get(ctx, GetItemKey(id)).Result()
	if err != nil {
		if err == redisclient.Nil {
			return nil, errors.InvalidTarget("equipment %s not found", id)
		}
		return nil, errors.Wrapf(err, "failed to get equipment %s", id)
	}

	var item equipment.Item
	if err := json.Unmarshal([]byte(result), &item); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal equipment data")
	}

	return &item, nil
}

// GetItemKey returns the Redis key for an item
// Exposed for testing purposes
func GetItemKey(equipmentID string) string {
	return fmt.Sprintf("%s%s", itemKeyPrefix, equipmentID)
}

// GetLoadoutKey returns the Redis key for a player's loadout hash
func GetLoadoutKey(playerID string) string {
	return fmt.Sprintf("%s%s", loadoutKeyPrefix, playerID)
}
