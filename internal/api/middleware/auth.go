package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/payflex/banking-system/internal/core/domain"
	"github.com/payflex/banking-system/internal/core/ports"
)

// Context keys set by the auth middlewares for downstream handlers.
const (
	ContextUserKey  = "user"
	ContextTokenKey = "token"
)

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// Auth resolves the bearer token to an identity via the local resolver
// (signature check, then cache, then durable store) and attaches both the
// identity and the raw token to the request context. Failure is terminal for
// the request; the error handler maps the sentinels to 401 envelopes.
func Auth(resolver ports.IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return domain.ErrNoToken
			}

			user, err := resolver.Resolve(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(ContextUserKey, user)
			c.Set(ContextTokenKey, token)
			return next(c)
		}
	}
}
