package enchantments

import (
	"context"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
	"github.com/KirkDiggler/rpg-raid/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-raid/internal/redis"
)

const bindingKeyPrefix = "enchantment:binding:"

// Binding hash fields
const (
	fieldEquipmentID   = "equipment_id"
	fieldCategory      = "category"
	fieldEnchantmentID = "enchantment_id"
	fieldTier          = "tier"
	fieldPower         = "power"
	fieldBoundAt       = "bound_at"
)

// putScript refuses to overwrite a mythical binding with a lower tier.
// ARGV[1] is the incoming tier, the rest are field/value pairs.
var putScript = redis.NewScript(`
local existing = redis.call('HGET', KEYS[1], 'tier')
if existing == 'mythical' and ARGV[1] ~= 'mythical' then
	return 0
end
local fields = {}
for i = 2, #ARGV do
	table.insert(fields, ARGV[i])
end
redis.call('HSET', KEYS[1], unpack(fields))
return 1
`)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis binding repository
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a Redis-backed binding repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.EquipmentID == "" {
		return nil, errors.InvalidArgument("equipment ID is required")
	}

	fields, err := r.client.HGetAll(ctx, GetKey(input.EquipmentID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get binding for %s", input.EquipmentID)
	}

	b, err := decode(fields)
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt binding for %s", input.EquipmentID)
	}

	return &GetOutput{Binding: b}, nil
}

func (r *redisRepository) Put(ctx context.Context, input *PutInput) (*PutOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateBinding(input.Binding); err != nil {
		return nil, err
	}

	prev, err := r.Get(ctx, &GetInput{EquipmentID: input.Binding.EquipmentID})
	if err != nil {
		return nil, err
	}

	b := input.Binding
	args := []interface{}{
		string(b.Tier),
		fieldEquipmentID, b.EquipmentID,
		fieldCategory, string(b.Category),
		fieldEnchantmentID, string(b.EnchantmentID),
		fieldTier, string(b.Tier),
		fieldPower, b.Power,
		fieldBoundAt, b.BoundAt.UnixMilli(),
	}

	ok, err := putScript.Run(ctx, r.client, []string{GetKey(b.EquipmentID)}, args...).Int()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to put binding for %s", b.EquipmentID)
	}
	if ok == 0 {
		return nil, replaceRefused(b)
	}

	return &PutOutput{Replaced: prev.Binding}, nil
}

func (r *redisRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out := make(map[string]*enchantment.Binding, len(input.EquipmentIDs))
	if len(input.EquipmentIDs) == 0 {
		return &ListOutput{Bindings: out}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(input.EquipmentIDs))
	for i, id := range input.EquipmentIDs {
		cmds[i] = pipe.HGetAll(ctx, GetKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to list bindings")
	}

	for i, cmd := range cmds {
		b, err := decode(cmd.Val())
		if err != nil {
			return nil, errors.Wrapf(err, "corrupt binding for %s", input.EquipmentIDs[i])
		}
		if b != nil {
			out[input.EquipmentIDs[i]] = b
		}
	}

	return &ListOutput{Bindings: out}, nil
}

func decode(fields map[string]string) (*enchantment.Binding, error) {
	if len(fields) == 0 {
		return nil, nil
	}

	power, err := strconv.Atoi(fields[fieldPower])
	if err != nil {
		return nil, err
	}
	boundAt, err := strconv.ParseInt(fields[fieldBoundAt], 10, 64)
	if err != nil {
		return nil, err
	}

	return &enchantment.Binding{
		EquipmentID:   fields[fieldEquipmentID],
		Category:      enchantment.Category(fields[fieldCategory]),
		EnchantmentID: enchantment.ID(fields[fieldEnchantmentID]),
		Tier:          enchantment.Tier(fields[fieldTier]),
		Power:         power,
		BoundAt:       time.UnixMilli(boundAt).UTC(),
	}, nil
}

// GetKey returns the Redis hash key for an item's binding
func GetKey(equipmentID string) string {
	return bindingKeyPrefix + equipmentID
}
