// Package metrics defines and registers the custom Prometheus metrics shared
// by the banking services. It is the single source of truth for metric names,
// labels, and help strings; registration happens at import via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "banking"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "invalid_credentials"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRefreshTotal counts refresh-token rotations.
// Label:
//   - result: "success", "invalid", or "missing"
var TokenRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "Total number of refresh token rotations, by result.",
	},
	[]string{"result"},
)

// IdentityCacheTotal counts identity snapshot cache lookups.
// Label:
//   - result: "hit" or "miss"
var IdentityCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "identity_cache_total",
		Help:      "Total number of identity cache lookups, by result.",
	},
	[]string{"result"},
)

// ── Admission metrics ─────────────────────────────────────────────────────────

// RateLimitTotal counts admission decisions.
// Labels:
//   - limiter: the counter group (e.g. "gateway", "identity")
//   - decision: "allow" or "deny"
var RateLimitTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_total",
		Help:      "Total number of admission control decisions.",
	},
	[]string{"limiter", "decision"},
)

// ── Mail metrics ──────────────────────────────────────────────────────────────

// EmailsSentTotal counts emails handed to the relay successfully.
// Label:
//   - kind: "otp" or "welcome"
var EmailsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of emails delivered, by kind.",
	},
	[]string{"kind"},
)

// EmailErrorsTotal counts failed email deliveries.
// Label:
//   - kind: "otp" or "welcome"
var EmailErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "email_errors_total",
		Help:      "Total number of failed email deliveries, by kind.",
	},
	[]string{"kind"},
)
