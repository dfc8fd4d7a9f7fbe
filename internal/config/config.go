// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store backends
const (
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the process configuration
type Config struct {
	// PartyID is the key of the party snapshot this process serves
	PartyID string `env:"PARTY_ID" envDefault:"default"`

	StoreBackend  string `env:"STORE_BACKEND" envDefault:"redis"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"partybac.db"`

	// HTTPAddr is the REST listen address. Empty disables the API.
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// DiscordToken enables the Discord bot when set
	DiscordToken  string `env:"DISCORD_TOKEN"`
	ApplicationID string `env:"APPLICATION_ID"`
	GuildID       string `env:"GUILD_ID"`

	// ResetPasswordHash is a bcrypt hash. Empty disables reset.
	ResetPasswordHash string `env:"RESET_PASSWORD_HASH"`

	LookupBaseURL string        `env:"LOOKUP_BASE_URL" envDefault:"https://world.openfoodfacts.org"`
	LookupTimeout time.Duration `env:"LOOKUP_TIMEOUT" envDefault:"10s"`

	ActivityCapacity int `env:"ACTIVITY_CAPACITY" envDefault:"50"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads an optional .env file and parses the environment. Variables
// already set in the environment win over the file.
func Load(dotenvPaths ...string) (*Config, error) {
	if len(dotenvPaths) == 0 {
		dotenvPaths = []string{".env"}
	}
	for _, path := range dotenvPaths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values env parsing cannot
func (c *Config) Validate() error {
	if strings.TrimSpace(c.PartyID) == "" {
		return errors.New("PARTY_ID cannot be empty")
	}
	switch c.StoreBackend {
	case StoreRedis, StoreSQLite:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.ActivityCapacity <= 0 {
		return errors.New("ACTIVITY_CAPACITY must be positive")
	}
	if c.LookupTimeout <= 0 {
		return errors.New("LOOKUP_TIMEOUT must be positive")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("unknown LOG_FORMAT %q", c.LogFormat)
	}
	return nil
}

// SlogLevel converts LogLevel to a slog level
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// DiscordEnabled reports whether a bot token is configured
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != ""
}
