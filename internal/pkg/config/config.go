package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=5000"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET, default=helpconnect-dev-secret"`
	JWTTTL    time.Duration `env:"JWT_TTL,   default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	// CORSAllowOrigins is a comma separated origin list.
	CORSAllowOrigins string `env:"CORS_ALLOW_ORIGINS, default=*"`

	Log      LogConfig
	Database DatabaseConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

type LogConfig struct {
	File       string `env:"LOG_FILE"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB,  default=50"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS,  default=5"`
	MaxAgeDays int    `env:"LOG_MAX_AGE_DAYS, default=30"`
}

type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER, default=sqlite"`
	DSN    string `env:"DB_DSN,    default=helpconnect.db"`
}

// MongoConfig enables the job audit trail when URI is set.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=helpconnect"`
}

// RedisConfig enables Idempotency-Key replay when Addr is set.
type RedisConfig struct {
	Addr           string        `env:"REDIS_ADDR"`
	Password       string        `env:"REDIS_PASSWORD"`
	DB             int           `env:"REDIS_DB,        default=0"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL, default=24h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("config: DB_DRIVER must be sqlite or postgres, got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("config: DB_DSN is required")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// AllowOrigins splits CORSAllowOrigins into trimmed, non-empty entries.
func (c *Config) AllowOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
