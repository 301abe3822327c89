// Package gateway builds the edge router: admission control, CORS, request
// logging and reverse proxying to the origin services. Auth is not enforced
// here — each origin service verifies tokens itself — but the gateway's
// admission budget is the first one every request is counted against.
package gateway

import (
	"fmt"
	"net/url"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/payflex/banking-system/internal/api"
	"github.com/payflex/banking-system/internal/api/handler"
	"github.com/payflex/banking-system/internal/api/middleware"
	"github.com/payflex/banking-system/internal/infrastructure/config"
	"github.com/payflex/banking-system/internal/infrastructure/ratelimit"
)

// New builds the gateway Echo instance. Public routes live under /v1 and are
// rewritten to the origins' /api/v1 prefix.
func New(rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("gateway"))

	limiter := ratelimit.NewRedisLimiter(rdb, "gateway", cfg.Gateway.Points, cfg.Gateway.Window)
	e.Use(middleware.RateLimit("gateway", limiter, log))

	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)

	routes := map[string]string{
		"/v1/auth":         cfg.IdentityServiceURL,
		"/v1/users":        cfg.IdentityServiceURL,
		"/v1/banking":      cfg.Gateway.BankingURL,
		"/v1/transactions": cfg.Gateway.TransactionsURL,
	}
	for prefix, target := range routes {
		proxy, err := proxyTo(target)
		if err != nil {
			return nil, err
		}
		e.Group(prefix, proxy)
	}

	return e, nil
}

// proxyTo returns proxy middleware forwarding to target, rewriting the public
// /v1 prefix to the origins' /api/v1.
func proxyTo(target string) (echo.MiddlewareFunc, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("parse proxy target %q: %w", target, err)
	}

	return echomiddleware.ProxyWithConfig(echomiddleware.ProxyConfig{
		Balancer: echomiddleware.NewRoundRobinBalancer([]*echomiddleware.ProxyTarget{{URL: u}}),
		Rewrite: map[string]string{
			"/v1/*": "/api/v1/$1",
		},
	}), nil
}
