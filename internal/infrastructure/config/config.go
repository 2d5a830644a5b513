package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT      JWTConfig
	Password PasswordConfig
	Throttle ThrottleConfig

	Postgres PostgresConfig
	Redis    RedisConfig
	Mongo    MongoConfig
}

type JWTConfig struct {
	// Secret is the HS256 signing key. Mandatory: issuance and verification
	// are impossible without it, so startup aborts when it is missing.
	Secret   string        `env:"JWT_SECRET"`
	TTL      time.Duration `env:"JWT_TTL,      default=60m"`
	Issuer   string        `env:"JWT_ISSUER,   default=verseyou"`
	Audience string        `env:"JWT_AUDIENCE, default=verseyou-app"`
	// Leeway tolerates clock skew when validating issued-at.
	Leeway time.Duration `env:"JWT_LEEWAY, default=0s"`
}

type PasswordConfig struct {
	MinLength  int `env:"PASSWORD_MIN_LENGTH, default=6"`
	BcryptCost int `env:"BCRYPT_COST,         default=10"`
}

type ThrottleConfig struct {
	// MaxFailures sign-in failures per email within Window before 429s.
	MaxFailures int           `env:"SIGNIN_MAX_FAILURES, default=5"`
	Window      time.Duration `env:"SIGNIN_WINDOW,       default=15m"`
}

type PostgresConfig struct {
	DSN string `env:"POSTGRES_DSN, default=postgres://localhost:5432/verseyou?sslmode=disable"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=verseyou_audit"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the process cannot safely run with.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	if c.Password.MinLength < 1 {
		return fmt.Errorf("config: PASSWORD_MIN_LENGTH must be positive")
	}
	return nil
}
