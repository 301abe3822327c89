package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/payflex/banking-system/internal/api/metrics"
	"github.com/payflex/banking-system/internal/core/domain"
)

// IdentityCache stores denormalized identity snapshots under user:<id>.
// Snapshots never include the credential hash. Absence is a normal miss, not
// an error; the durable store remains ground truth.
type IdentityCache struct {
	client *redis.Client
}

func NewIdentityCache(client *redis.Client) *IdentityCache {
	return &IdentityCache{client: client}
}

func (c *IdentityCache) key(userID string) string {
	return "user:" + userID
}

// Get returns the cached snapshot or domain.ErrCacheMiss.
func (c *IdentityCache) Get(ctx context.Context, userID string) (*domain.User, error) {
	raw, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.IdentityCacheTotal.WithLabelValues("miss").Inc()
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		// A corrupt entry behaves like a miss; the next Set repairs it.
		metrics.IdentityCacheTotal.WithLabelValues("miss").Inc()
		return nil, domain.ErrCacheMiss
	}

	metrics.IdentityCacheTotal.WithLabelValues("hit").Inc()
	return &user, nil
}

func (c *IdentityCache) Set(ctx context.Context, user *domain.User, ttl time.Duration) error {
	snapshot := *user
	snapshot.PasswordHash = ""

	raw, err := json.Marshal(&snapshot)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, c.key(user.ID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *IdentityCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("cache del: %w", err)
	}
	return nil
}
