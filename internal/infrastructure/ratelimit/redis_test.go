package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisLimiter(t *testing.T, points int, window time.Duration) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLimiter(client, "test", points, window), mr
}

func TestRedisLimiter_BudgetAndDeny(t *testing.T) {
	l, _ := newTestRedisLimiter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		d, err := l.Allow(context.Background(), "1.2.3.4")
		if err != nil {
			t.Fatalf("Allow returned error: %v", err)
		}
		if !d.Allowed {
			t.Fatalf("request %d within budget must be allowed", i+1)
		}
	}

	d, err := l.Allow(context.Background(), "1.2.3.4")
	if err != nil {
		t.Fatalf("Allow returned error: %v", err)
	}
	if d.Allowed {
		t.Fatalf("request over budget must be denied")
	}
	if d.RetryAfter <= 0 || d.RetryAfter > time.Minute {
		t.Fatalf("unexpected retry-after: %v", d.RetryAfter)
	}
}

func TestRedisLimiter_KeysAreIndependent(t *testing.T) {
	l, _ := newTestRedisLimiter(t, 1, time.Minute)

	if d, _ := l.Allow(context.Background(), "1.2.3.4"); !d.Allowed {
		t.Fatalf("first key must be allowed")
	}
	if d, _ := l.Allow(context.Background(), "1.2.3.4"); d.Allowed {
		t.Fatalf("first key must be exhausted")
	}
	if d, _ := l.Allow(context.Background(), "5.6.7.8"); !d.Allowed {
		t.Fatalf("second key must have its own budget")
	}
}

func TestRedisLimiter_WindowResets(t *testing.T) {
	l, mr := newTestRedisLimiter(t, 1, time.Minute)

	if d, _ := l.Allow(context.Background(), "1.2.3.4"); !d.Allowed {
		t.Fatalf("first request must be allowed")
	}
	if d, _ := l.Allow(context.Background(), "1.2.3.4"); d.Allowed {
		t.Fatalf("second request must be denied")
	}

	mr.FastForward(time.Minute)
	if d, _ := l.Allow(context.Background(), "1.2.3.4"); !d.Allowed {
		t.Fatalf("budget must reset once the key expires")
	}
}

func TestRedisLimiter_BackendDown(t *testing.T) {
	l, mr := newTestRedisLimiter(t, 1, time.Minute)
	mr.Close()

	if _, err := l.Allow(context.Background(), "1.2.3.4"); err == nil {
		t.Fatalf("expected error when the backend is unreachable")
	}
}
