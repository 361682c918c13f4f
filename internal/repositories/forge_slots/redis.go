package forgeslots

import (
	"context"
	"encoding/json"
	"strconv"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-raid/internal/entities/forge"
	"github.com/KirkDiggler/rpg-raid/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-raid/internal/redis"
)

const slotsKeyPrefix = "forge:slots:"

// clearScript removes a slot field and returns what it held
var clearScript = redis.NewScript(`
local v = redis.call('HGET', KEYS[1], ARGV[1])
if v then
	redis.call('HDEL', KEYS[1], ARGV[1])
end
return v
`)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis forge slot repository
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

// NewRedis creates a Redis-backed forge slot repository. A player's slots
// share one hash keyed by slot index; idle slots have no field.
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
	if err := validateSlot(input.PlayerID, input.Index); err != nil {
		return nil, err
	}

	raw, err := r.client.HGet(ctx, GetKey(input.PlayerID), strconv.Itoa(input.Index)).Result()
	if err != nil {
		if err == redisclient.Nil {
			return &GetOutput{Slot: &forge.Slot{Index: input.Index}}, nil
		}
		return nil, errors.Wrapf(err, "failed to get forge slot %d", input.Index)
	}

	job, err := decodeJob(raw)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Slot: &forge.Slot{Index: input.Index, Job: job}}, nil
}

func (r *redisRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSlot(input.PlayerID, input.Count); err != nil {
		return nil, err
	}

	raw, err := r.client.HGetAll(ctx, GetKey(input.PlayerID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list forge slots for %s", input.PlayerID)
	}

	slots := make([]*forge.Slot, input.Count)
	for i := range slots {
		slots[i] = &forge.Slot{Index: i}
		v, ok := raw[strconv.Itoa(i)]
		if !ok {
			continue
		}
		job, err := decodeJob(v)
		if err != nil {
			return nil, err
		}
		slots[i].Job = job
	}

	return &ListOutput{Slots: slots}, nil
}

func (r *redisRepository) Put(ctx context.Context, input *PutInput) (*PutOutput, error) {
	if input == nil || input.Job == nil {
		return nil, errors.InvalidArgument("job is required")
	}
	if err := validateSlot(input.PlayerID, input.Index); err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Job)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal forge job")
	}

	set, err := r.client.HSetNX(ctx, GetKey(input.PlayerID), strconv.Itoa(input.Index), data).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to put forge slot %d", input.Index)
	}
	if !set {
		return nil, slotBusy(input.PlayerID, input.Index)
	}

	return &PutOutput{Slot: &forge.Slot{Index: input.Index, Job: input.Job}}, nil
}

func (r *redisRepository) Clear(ctx context.Context, input *ClearInput) (*ClearOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSlot(input.PlayerID, input.Index); err != nil {
		return nil, err
	}

	raw, err := clearScript.Run(ctx, r.client, []string{GetKey(input.PlayerID)}, strconv.Itoa(input.Index)).Text()
	if err != nil {
		if err == redisclient.Nil {
			return &ClearOutput{}, nil
		}
		return nil, errors.Wrapf(err, "failed to clear forge slot %d", input.Index)
	}

	job, err := decodeJob(raw)
	if err != nil {
		return nil, err
	}

	return &ClearOutput{Job: job}, nil
}

func decodeJob(raw string) (*forge.Job, error) {
	var job forge.Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal forge job")
	}
	return &job, nil
}

// GetKey returns the Redis hash key of a player's slots
func GetKey(playerID string) string {
	return slotsKeyPrefix + playerID
}
