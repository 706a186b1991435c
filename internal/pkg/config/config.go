package config

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// EphemeralJWTSecret is set when development runs without JWT_SECRET and
	// a random per-process secret was generated instead.
	EphemeralJWTSecret bool

	Session SessionConfig
	Audit   AuditConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type SessionConfig struct {
	TokenTTL     time.Duration `env:"TOKEN_TTL,     default=24h"`
	TTL          time.Duration `env:"SESSION_TTL,   default=0s"`
	CookieSecure bool          `env:"COOKIE_SECURE, default=false"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=institute_console"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Development reports whether the service runs with developer defaults.
func (c *Config) Development() bool {
	return c.Env == "development"
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" && !c.Development() {
		return errors.New("JWT_SECRET is required outside development")
	}
	if c.Session.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.Session.TokenTTL)
	}
	if c.Session.TTL < 0 {
		return fmt.Errorf("SESSION_TTL must not be negative, got %s", c.Session.TTL)
	}
	if c.Audit.Workers < 1 {
		return fmt.Errorf("AUDIT_WORKERS must be at least 1, got %d", c.Audit.Workers)
	}
	return nil
}

// Load reads an optional .env file, then configuration from environment
// variables using go-envconfig. Variables already set in the environment win
// over the file.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Sprintf("config: failed to read .env: %v", err))
	}

	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith builds and validates a Config from the given lookuper. Tokens
// are never signed with an empty key: development without JWT_SECRET gets a
// random secret that lasts until the process exits.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = rand.Text()
		cfg.EphemeralJWTSecret = true
	}
	return &cfg, nil
}
