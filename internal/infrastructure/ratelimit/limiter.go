// Package ratelimit implements fixed-window admission control. Each client
// key gets a point budget per window; every request consumes one point. The
// redis backend shares counters across replicas, the memory backend keeps
// them in-process; both expose identical externally observed semantics.
package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of consuming one point for a key.
type Decision struct {
	Allowed   bool
	Remaining int
	// RetryAfter is the time until the window resets. Only set on deny.
	RetryAfter time.Duration
}

// Limiter admits or denies a request for the given client key.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// RetryAfterSeconds renders the deny delay for clients, rounding the
// remaining milliseconds up to whole seconds.
func RetryAfterSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}
