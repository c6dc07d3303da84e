package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Token store backends.
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	Locale   string `env:"LOCALE,    default=en"`

	API   APIConfig
	Token TokenConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// APIConfig points the transport at the knowledge-card backend.
type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=http://localhost:8000/api/v1"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=15s"`
}

// TokenConfig selects where the bearer token survives restarts.
type TokenConfig struct {
	Store string `env:"TOKEN_STORE, default=file"`
	Key   string `env:"TOKEN_KEY,   default=token"`
	// File overrides the default $XDG_STATE_HOME/appshell/<key> location.
	File string `env:"TOKEN_FILE"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=appshell"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// IsDevelopment reports whether the shell runs with development defaults
// (pretty logs, verbose errors).
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate rejects combinations envconfig cannot express with tags.
func (c *Config) Validate() error {
	switch c.Token.Store {
	case StoreFile, StoreRedis, StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("config: unknown TOKEN_STORE %q", c.Token.Store)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("config: API_BASE_URL must not be empty")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("config: API_TIMEOUT must be positive")
	}
	return nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration from an arbitrary lookuper; tests pass
// envconfig.MapLookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
