package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/payflex/banking-system/internal/api/metrics"
	"github.com/payflex/banking-system/internal/infrastructure/ratelimit"
)

// RateLimit applies fixed-window admission control keyed by client IP, ahead
// of authentication and business logic. name labels the counter group so a
// request crossing the gateway and an origin service is counted against two
// independent budgets.
//
// A limiter backend failure fails open: admission control protects capacity
// and must never take the service down with it.
func RateLimit(name string, limiter ratelimit.Limiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()

			decision, err := limiter.Allow(c.Request().Context(), key)
			if err != nil {
				log.Error().Err(err).Str("limiter", name).Str("client_key", key).
					Msg("rate limiter unavailable, admitting request")
				return next(c)
			}

			if !decision.Allowed {
				secs := ratelimit.RetryAfterSeconds(decision.RetryAfter)
				metrics.RateLimitTotal.WithLabelValues(name, "deny").Inc()
				log.Warn().Str("limiter", name).Str("client_key", key).
					Int("retry_after_s", secs).
					Msg("rate limit exceeded")
				return c.JSON(http.StatusTooManyRequests, map[string]any{
					"success": false,
					"message": fmt.Sprintf("Rate limit exceeded. Try again in %ds", secs),
				})
			}

			metrics.RateLimitTotal.WithLabelValues(name, "allow").Inc()
			log.Debug().Str("limiter", name).Str("client_key", key).
				Int("remaining", decision.Remaining).
				Msg("request admitted")
			return next(c)
		}
	}
}
