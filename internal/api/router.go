package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/payflex/banking-system/internal/api/handler"
	"github.com/payflex/banking-system/internal/api/middleware"
	"github.com/payflex/banking-system/internal/core/domain"
	"github.com/payflex/banking-system/internal/core/ports"
	"github.com/payflex/banking-system/internal/core/service"
	"github.com/payflex/banking-system/internal/infrastructure/config"
	mongostore "github.com/payflex/banking-system/internal/infrastructure/db/mongo"
	redisstore "github.com/payflex/banking-system/internal/infrastructure/db/redis"
	"github.com/payflex/banking-system/internal/infrastructure/ratelimit"
)

// newEcho builds an Echo instance with the middleware every service shares:
// panic recovery, request IDs, request logging, prometheus instrumentation,
// and admission control ahead of everything else.
func newEcho(serviceName string, limiter ratelimit.Limiter, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware(serviceName))
	e.Use(middleware.RateLimit(serviceName, limiter, log))

	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

// NewIdentityRouter wires the identity service: the token issuer, session
// store, resolver and the full auth surface.
func NewIdentityRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, mail ports.MailDispatcher, log zerolog.Logger) *echo.Echo {
	limiter := ratelimit.NewRedisLimiter(rdb, "identity", cfg.RateLimit.Points, cfg.RateLimit.Window)
	e := newEcho("identity", limiter, log)

	// --- Dependencies ---
	users := mongostore.NewUserRepository(db)
	tokens := mongostore.NewRefreshTokenRepository(db)
	codes := mongostore.NewVerificationCodeRepository(db)
	transactions := mongostore.NewTransactionRepository(db)
	cache := redisstore.NewIdentityCache(rdb)

	issuer := service.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authService := service.NewAuthService(users, tokens, codes, cache, issuer, mail, log)
	resolver := service.NewIdentityResolver(issuer, cache, users, log)

	authHandler := handler.NewAuthHandler(authService, cfg.RefreshTokenTTL, cfg.Env != "development")
	userHandler := handler.NewUserHandler(users, transactions)
	authMiddleware := middleware.Auth(resolver)

	// --- Auth routes ---
	auth := e.Group("/api/v1/auth")
	auth.POST("/request-code", authHandler.RequestCode)
	auth.POST("/verify-email", authHandler.VerifyEmail)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh-token", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/update-password", authHandler.ResetPassword)

	// --- User routes (protected) ---
	usersGroup := e.Group("/api/v1/users", authMiddleware)
	usersGroup.GET("/get-current-user", userHandler.CurrentUser)
	usersGroup.GET("/get-current-user/:id", userHandler.CurrentUser)
	usersGroup.GET("/dashboard", userHandler.Dashboard)

	// --- Admin routes ---
	admin := e.Group("/api/v1/admin", authMiddleware, middleware.RBAC(domain.RoleAdmin, domain.RoleSuperAdmin))
	admin.GET("/users/:id", userHandler.UserByID)

	registerHealth(e, db, rdb)
	return e
}

// NewBankingRouter wires the banking service. It holds no signing secret:
// bearer tokens are verified through the identity service.
func NewBankingRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	limiter := ratelimit.NewRedisLimiter(rdb, "banking", cfg.RateLimit.Points, cfg.RateLimit.Window)
	e := newEcho("banking", limiter, log)

	accounts := mongostore.NewAccountRepository(db)
	bankingService := service.NewBankingService(accounts)
	accountHandler := handler.NewAccountHandler(bankingService)
	remoteAuth := middleware.RemoteAuth(cfg.IdentityServiceURL, log)

	banking := e.Group("/api/v1/banking", remoteAuth)
	banking.GET("/accounts", accountHandler.Accounts)

	registerHealth(e, db, rdb)
	return e
}

// NewTransactionRouter wires the transaction-history service.
func NewTransactionRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	limiter := ratelimit.NewRedisLimiter(rdb, "transactions", cfg.RateLimit.Points, cfg.RateLimit.Window)
	e := newEcho("transactions", limiter, log)

	transactions := mongostore.NewTransactionRepository(db)
	txService := service.NewTransactionService(transactions)
	txHandler := handler.NewTransactionHandler(txService)
	remoteAuth := middleware.RemoteAuth(cfg.IdentityServiceURL, log)

	tx := e.Group("/api/v1/transactions", remoteAuth)
	tx.GET("", txHandler.History)
	tx.GET("/:id", txHandler.Transaction)

	registerHealth(e, db, rdb)
	return e
}

func registerHealth(e *echo.Echo, db *mongo.Database, rdb *redis.Client) {
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
}
