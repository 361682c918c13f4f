package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the Redis surface repositories use. Single-node and cluster
// clients both satisfy it.
type Client interface {
	redis.UniversalClient
}

// Nil is returned by reads of a missing key
const Nil = redis.Nil
