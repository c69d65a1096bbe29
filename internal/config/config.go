package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/fadedpez/cardroyale/internal/types"
)

// Storage backends for the ledger snapshot.
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	// Environment
	Environment string `env:"ENVIRONMENT" envDefault:"development" validate:"oneof=development production"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`

	// Persistence
	DataDir     string `env:"DATA_DIR"`
	StorageType string `env:"STORAGE_TYPE" envDefault:"file" validate:"oneof=memory file sqlite"`
	StorageKey  string `env:"STORAGE_KEY" envDefault:"card-royale-user" validate:"required"`
	AccountID   string `env:"ACCOUNT_ID" envDefault:"local" validate:"required"`

	// Tables
	Seed               int64 `env:"RNG_SEED" envDefault:"0"`
	BlackjackDecks     int   `env:"BLACKJACK_DECKS" envDefault:"6" validate:"min=1,max=8"`
	ReshuffleThreshold int   `env:"RESHUFFLE_THRESHOLD" envDefault:"15" validate:"min=0"`

	// Dealer pacing
	RevealDelay time.Duration `env:"DEALER_REVEAL_DELAY" envDefault:"600ms"`
	StepDelay   time.Duration `env:"DEALER_STEP_DELAY" envDefault:"800ms"`
	ResultDelay time.Duration `env:"RESULT_DELAY" envDefault:"500ms"`

	// Sessions and history
	SessionCacheSize      int           `env:"SESSION_CACHE_SIZE" envDefault:"128" validate:"min=1"`
	HistoryKeepPerAccount int           `env:"HISTORY_KEEP_PER_ACCOUNT" envDefault:"500" validate:"min=1"`
	HistoryPruneInterval  time.Duration `env:"HISTORY_PRUNE_INTERVAL" envDefault:"1h"`

	Elasticsearch ElasticsearchConfig `envPrefix:"ES_"`
}

// ElasticsearchConfig configures optional round-history indexing.
type ElasticsearchConfig struct {
	Enabled         bool   `env:"ENABLED" envDefault:"false"`
	URL             string `env:"URL" validate:"required_if=Enabled true"`
	Username        string `env:"USERNAME"`
	Password        string `env:"PASSWORD"`
	IndexPrefix     string `env:"INDEX_PREFIX" envDefault:"cardroyale"`
	RetentionMonths int    `env:"RETENTION_MONTHS" envDefault:"12" validate:"min=1"`
}

// Load reads the configuration from the process environment and an optional .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Only return error if file exists but couldn't be loaded
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg, err := Parse(nil)
	if err != nil {
		return nil, err
	}

	if cfg.StorageType != StorageMemory {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// Parse builds a Config from environ, or from the process environment when
// environ is nil. It does not touch the filesystem.
func Parse(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, types.WrapError(types.ErrInvalidConfig, "parse env", err)
	}

	if cfg.DataDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		cfg.DataDir = filepath.Join(wd, "data")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return types.WrapError(types.ErrInvalidConfig, "invalid configuration", err)
	}
	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// SnapshotPath is where the file store keeps the ledger snapshot.
func (c *Config) SnapshotPath() string {
	return filepath.Join(c.DataDir, "ledger.json")
}

// DatabasePath is the sqlite file used by the sqlite store, history and journal.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "cardroyale.db")
}
