package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds the environment-provided settings shared by the service
// binaries. Each binary reads only the sections it needs.
type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	JWTSecret string `env:"JWT_SECRET"`

	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL,  default=15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL, default=168h"`

	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Gateway   GatewayConfig
	SMTP      SMTPConfig

	// IdentityServiceURL is where downstream services verify bearer tokens.
	IdentityServiceURL string `env:"IDENTITY_SERVICE_URL, default=http://localhost:4001"`

	// CORSOrigins is the per-deployment origin allowlist applied at the gateway.
	CORSOrigins []string `env:"CORS_ORIGINS, default=*"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=payflex"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// RateLimitConfig is the per-service admission budget. The gateway carries its
// own, larger budget in GatewayConfig.
type RateLimitConfig struct {
	Points int           `env:"RATE_LIMIT_POINTS, default=20"`
	Window time.Duration `env:"RATE_LIMIT_WINDOW, default=60s"`
}

type GatewayConfig struct {
	Points          int           `env:"GATEWAY_RATE_LIMIT_POINTS, default=100"`
	Window          time.Duration `env:"GATEWAY_RATE_LIMIT_WINDOW, default=60s"`
	BankingURL      string        `env:"BANKING_SERVICE_URL,      default=http://localhost:4002"`
	TransactionsURL string        `env:"TRANSACTION_SERVICE_URL,  default=http://localhost:4003"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST, default=localhost"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM, default=no-reply@payflex.io"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
