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

	// WelcomeMessage is rendered by the public /hello3 and / endpoints.
	WelcomeMessage string `env:"WELCOME_MESSAGE, default=test"`

	Auth   AuthConfig
	Access AccessConfig
	Mongo  MongoConfig
	Redis  RedisConfig
}

type AuthConfig struct {
	Realm      string `env:"AUTH_REALM,  default=greeting-service"`
	BcryptCost int    `env:"BCRYPT_COST, default=10"`
	// FilterEffectiveRoles grants only the roles effective at request time.
	// Off by default: every assigned role grants its code.
	FilterEffectiveRoles bool `env:"AUTH_FILTER_EFFECTIVE_ROLES, default=false"`
	EventWorkers         int  `env:"AUTH_EVENT_WORKERS,          default=4"`
}

type AccessConfig struct {
	// DefaultAllow lets paths matching no rule through without credentials.
	DefaultAllow bool `env:"ACCESS_DEFAULT_ALLOW, default=true"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=greeting_service"`
}

type RedisConfig struct {
	Addr           string        `env:"REDIS_ADDR,      default=localhost:6379"`
	Password       string        `env:"REDIS_PASSWORD"`
	DB             int           `env:"REDIS_DB,        default=0"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL, default=1h"`
}

// IsDevelopment reports whether pretty console logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration through l and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.EventWorkers < 1 {
		return fmt.Errorf("AUTH_EVENT_WORKERS must be at least 1, got %d", c.Auth.EventWorkers)
	}
	if c.Redis.IdempotencyTTL <= 0 {
		return fmt.Errorf("IDEMPOTENCY_TTL must be positive, got %s", c.Redis.IdempotencyTTL)
	}
	return nil
}
