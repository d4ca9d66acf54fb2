package server

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const minuteWindow = time.Minute

// Limiter gates the public write endpoints per client key.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter is a fixed-window counter: first hit in a window sets the
// expiry, hits past Limit inside the window are rejected. Counting happens
// in redis so the limit holds across replicas.
type RedisLimiter struct {
	Rdb    *redis.Client
	Prefix string
	Limit  int
	Window time.Duration
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	full := l.Prefix + ":" + key
	n, err := l.Rdb.Incr(ctx, full).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		// Best effort: a lost expiry leaves a counter that blocks the key
		// until redis restarts, which the next deploy clears.
		_ = l.Rdb.Expire(ctx, full, l.Window).Err()
	}
	return n <= int64(l.Limit), nil
}
