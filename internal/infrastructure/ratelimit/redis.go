package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter counts points in a shared Redis instance so all replicas of a
// service draw from one budget. INCR is atomic at the store, so concurrent
// requests from the same key never lose updates.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	points int
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, prefix string, points int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: prefix, points: points, window: window}
}

func (l *RedisLimiter) key(clientKey string) string {
	return fmt.Sprintf("ratelimit:%s:%s", l.prefix, clientKey)
}

func (l *RedisLimiter) Allow(ctx context.Context, clientKey string) (Decision, error) {
	key := l.key(clientKey)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("ratelimit incr: %w", err)
	}
	// First hit opens the window; the key expires with it.
	if count == 1 {
		if err := l.client.PExpire(ctx, key, l.window).Err(); err != nil {
			return Decision{}, fmt.Errorf("ratelimit expire: %w", err)
		}
	}

	if count > int64(l.points) {
		ttl, err := l.client.PTTL(ctx, key).Result()
		if err != nil || ttl < 0 {
			ttl = l.window
		}
		return Decision{Allowed: false, Remaining: 0, RetryAfter: ttl}, nil
	}

	return Decision{Allowed: true, Remaining: l.points - int(count)}, nil
}
