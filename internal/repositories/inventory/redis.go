package inventory

import (
	"context"
	"sort"
	"strconv"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-raid/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-raid/internal/redis"
)

const inventoryKeyPrefix = "inventory:player:"

// incrementScript applies a delta unless the result would be negative.
// Returns {1, new} on success or {0, current} when short.
var incrementScript = redis.NewScript(`
local cur = tonumber(redis.call('HGET', KEYS[1], ARGV[1]) or '0')
local n = cur + tonumber(ARGV[2])
if n < 0 then
	return {0, cur}
end
if n == 0 then
	redis.call('HDEL', KEYS[1], ARGV[1])
else
	redis.call('HSET', KEYS[1], ARGV[1], n)
end
return {1, n}
`)

// consumeScript checks every item/cost pair in ARGV before removing any.
// Returns {1, item, remaining, ...} on success or {0, item, have, need}.
var consumeScript = redis.NewScript(`
for i = 1, #ARGV, 2 do
	local have = tonumber(redis.call('HGET', KEYS[1], ARGV[i]) or '0')
	local need = tonumber(ARGV[i + 1])
	if have < need then
		return {0, ARGV[i], have, need}
	end
end
local out = {1}
for i = 1, #ARGV, 2 do
	local n = redis.call('HINCRBY', KEYS[1], ARGV[i], -tonumber(ARGV[i + 1]))
	if n == 0 then
		redis.call('HDEL', KEYS[1], ARGV[i])
	end
	table.insert(out, ARGV[i])
	table.insert(out, n)
end
return out
`)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis inventory repository
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

// NewRedis creates a Redis-backed inventory repository. Counts live in one
// hash per player so multi-item consumption can run in a single script.
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateKey(input.PlayerID, input.ItemID); err != nil {
		return nil, err
	}

	n, err := r.client.HGet(ctx, GetKey(input.PlayerID), input.ItemID).Int()
	if err != nil {
		if err == redisclient.Nil {
			return &GetOutput{Count: 0}, nil
		}
		return nil, errors.Wrapf(err, "failed to get %s for player %s", input.ItemID, input.PlayerID)
	}

	return &GetOutput{Count: n}, nil
}

func (r *redisRepository) Increment(ctx context.Context, input *IncrementInput) (*IncrementOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateKey(input.PlayerID, input.ItemID); err != nil {
		return nil, err
	}

	res, err := incrementScript.Run(ctx, r.client, []string{GetKey(input.PlayerID)}, input.ItemID, input.Delta).Slice()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to increment %s for player %s", input.ItemID, input.PlayerID)
	}
	if len(res) != 2 {
		return nil, errors.Internalf("unexpected increment reply length %d", len(res))
	}

	ok, _ := res[0].(int64)
	n, _ := res[1].(int64)
	if ok == 0 {
		return nil, shortfall(input.ItemID, int(n), -input.Delta)
	}

	return &IncrementOutput{Count: int(n)}, nil
}

func (r *redisRepository) HasAtLeast(ctx context.Context, input *HasAtLeastInput) (*HasAtLeastOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := r.Get(ctx, &GetInput{PlayerID: input.PlayerID, ItemID: input.ItemID})
	if err != nil {
		return nil, err
	}

	return &HasAtLeastOutput{OK: out.Count >= input.N, Count: out.Count}, nil
}

func (r *redisRepository) Consume(ctx context.Context, input *ConsumeInput) (*ConsumeOutput, error) {
	if err := validateCosts(input); err != nil {
		return nil, err
	}

	items := make([]string, 0, len(input.Costs))
	for item, n := range input.Costs {
		if n > 0 {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return &ConsumeOutput{Remaining: map[string]int{}}, nil
	}
	sort.Strings(items)

	args := make([]interface{}, 0, len(items)*2)
	for _, item := range items {
		args = append(args, item, input.Costs[item])
	}

	res, err := consumeScript.Run(ctx, r.client, []string{GetKey(input.PlayerID)}, args...).Slice()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to consume items for player %s", input.PlayerID)
	}
	if len(res) == 0 {
		return nil, errors.Internal("empty consume reply")
	}

	if ok, _ := res[0].(int64); ok == 0 {
		if len(res) != 4 {
			return nil, errors.Internalf("unexpected consume reply length %d", len(res))
		}
		item, _ := res[1].(string)
		have, _ := res[2].(int64)
		need, _ := res[3].(int64)
		return nil, shortfall(item, int(have), int(need))
	}

	remaining := make(map[string]int, len(items))
	for i := 1; i+1 < len(res); i += 2 {
		item, _ := res[i].(string)
		n, _ := res[i+1].(int64)
		remaining[item] = int(n)
	}

	return &ConsumeOutput{Remaining: remaining}, nil
}

func (r *redisRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	raw, err := r.client.HGetAll(ctx, GetKey(input.PlayerID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list inventory for player %s", input.PlayerID)
	}

	items := make(map[string]int, len(raw))
	for item, v := range raw {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Wrapf(err, "corrupt count for %s", item)
		}
		if n != 0 {
			items[item] = n
		}
	}

	return &ListOutput{Items: items}, nil
}

// GetKey returns the Redis hash key holding a player's inventory
func GetKey(playerID string) string {
	return inventoryKeyPrefix + playerID
}
