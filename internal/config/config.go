package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Discord configuration
	Token   string
	AppID   string
	GuildID string

	// Storage
	DataDir     string
	StorageType string // "memory" or "sqlite"

	// Elasticsearch, enabled when ESURL is set
	ESURL         string
	ESUsername    string
	ESPassword    string
	ESIndexPrefix string

	// Maintenance
	RetentionDays int
	PruneInterval time.Duration

	// Logging
	LogLevel string

	// ShuffleSeed makes deals reproducible; 0 means a random seed
	ShuffleSeed int64

	// Environment
	Environment string // "development" or "production"
}

const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

// Load reads the configuration from environment variables, after an optional .env file
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// Only return error if file exists but couldn't be loaded
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env
func FromEnv() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg := &Config{
		Token:         os.Getenv("DISCORD_TOKEN"),
		AppID:         os.Getenv("APP_ID"),
		GuildID:       os.Getenv("GUILD_ID"),
		Environment:   getEnvWithDefault("ENVIRONMENT", "development"),
		DataDir:       getEnvWithDefault("DATA_DIR", filepath.Join(wd, "data")),
		StorageType:   strings.ToLower(getEnvWithDefault("STORAGE_TYPE", StorageMemory)),
		ESURL:         os.Getenv("ES_URL"),
		ESUsername:    os.Getenv("ES_USERNAME"),
		ESPassword:    os.Getenv("ES_PASSWORD"),
		ESIndexPrefix: getEnvWithDefault("ES_INDEX_PREFIX", "cardsharp"),
		LogLevel:      getEnvWithDefault("LOG_LEVEL", "info"),
	}

	if cfg.RetentionDays, err = getIntWithDefault("RETENTION_DAYS", 90); err != nil {
		return nil, err
	}
	if cfg.RetentionDays < 1 {
		return nil, fmt.Errorf("RETENTION_DAYS must be positive, got %d", cfg.RetentionDays)
	}

	if cfg.PruneInterval, err = getDurationWithDefault("PRUNE_INTERVAL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.PruneInterval <= 0 {
		return nil, fmt.Errorf("PRUNE_INTERVAL must be positive, got %s", cfg.PruneInterval)
	}

	seed, err := getIntWithDefault("SHUFFLE_SEED", 0)
	if err != nil {
		return nil, err
	}
	cfg.ShuffleSeed = int64(seed)

	if cfg.StorageType != StorageMemory && cfg.StorageType != StorageSQLite {
		return nil, fmt.Errorf("STORAGE_TYPE must be %q or %q, got %q", StorageMemory, StorageSQLite, cfg.StorageType)
	}

	return cfg, nil
}

// ValidateBot checks that everything the Discord bot needs is present
func (c *Config) ValidateBot() error {
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.AppID == "" {
		return fmt.Errorf("APP_ID is required")
	}
	if c.GuildID == "" {
		return fmt.Errorf("GUILD_ID is required")
	}
	return nil
}

// EnsureDataDir creates the data directory if it doesn't exist
func (c *Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// DatabasePath is where the SQLite store lives
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "cardsharp.db")
}

// ElasticsearchEnabled reports whether resolutions should also be indexed
func (c *Config) ElasticsearchEnabled() bool {
	return c.ESURL != ""
}

// Retention is how long resolutions are kept
func (c *Config) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnvWithDefault returns environment variable value or default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntWithDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

func getDurationWithDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration such as 12h: %w", key, err)
	}
	return parsed, nil
}
