package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/payflex/banking-system/internal/api/middleware"
	"github.com/payflex/banking-system/internal/core/domain"
)

// ctxUser extracts the identity attached by the auth middleware. Its absence
// means the route was wired without auth; treat it as an unauthenticated
// request rather than panic.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.ContextUserKey).(*domain.User)
	if user == nil {
		return nil, domain.ErrNoToken
	}
	return user, nil
}
