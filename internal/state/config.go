package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/steviee/go-ore/internal/ore"
	"gopkg.in/yaml.v3"
)

// Config represents the user configuration for go-ore.
type Config struct {
	API     APIConfig     `yaml:"api" mapstructure:"api"`
	Search  SearchConfig  `yaml:"search" mapstructure:"search"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// APIConfig holds Ore API connection settings.
type APIConfig struct {
	BaseURL   string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent string        `yaml:"user_agent" mapstructure:"user_agent"`
}

// SearchConfig holds defaults applied to every search.
type SearchConfig struct {
	Limit      int      `yaml:"limit" mapstructure:"limit"`
	Sort       string   `yaml:"sort" mapstructure:"sort"`
	Categories []string `yaml:"categories" mapstructure:"categories"`
}

// OutputConfig holds presentation settings.
type OutputConfig struct {
	SizeFormat string `yaml:"size_format" mapstructure:"size_format"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// Size formats understood by OutputConfig.SizeFormat.
const (
	SizeFormatHuman = "human"
	SizeFormatBytes = "bytes"
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   ore.DefaultBaseURL,
			Timeout:   ore.DefaultTimeout,
			UserAgent: ore.UserAgent,
		},
		Search: SearchConfig{
			Limit:      ore.DefaultLimit,
			Sort:       ore.DefaultSort.Name(),
			Categories: []string{},
		},
		Output: OutputConfig{
			SizeFormat: SizeFormatHuman,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfigFile loads the configuration file at configPath. A missing file
// yields the defaults without touching disk. A corrupted file is moved
// aside to <path>.corrupted and replaced with the defaults.
func LoadConfigFile(ctx context.Context, configPath string) (*Config, error) {
	//nolint:gosec // G304: config path is chosen by the user
	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		backupPath := configPath + ".corrupted"
		if backupErr := os.Rename(configPath, backupPath); backupErr != nil {
			return nil, fmt.Errorf("config file is corrupted and failed to create backup: %w (original error: %v)", backupErr, err)
		}

		slog.Warn("config file was corrupted, replaced with defaults",
			"path", configPath,
			"backup", backupPath,
			"error", err)

		fresh := DefaultConfig()
		if saveErr := WriteConfigFile(ctx, configPath, fresh); saveErr != nil {
			return nil, fmt.Errorf("config file was corrupted (backed up to %s), failed to save fresh config: %w (original error: %v)", backupPath, saveErr, err)
		}

		return fresh, nil
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// WriteConfigFile validates cfg and writes it to configPath atomically
// while holding the lock file next to it.
func WriteConfigFile(_ context.Context, configPath string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := ValidateConfig(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	lock, err := lockConfigDir(filepath.Dir(configPath))
	if err != nil {
		return fmt.Errorf("failed to lock config: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	if err := AtomicWrite(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// lockConfigDir takes the config lock in dir, waiting for any other writer.
func lockConfigDir(dir string) (*FileLock, error) {
	lockPath := filepath.Join(dir, LockFileName)

	lock, err := TryLockFile(lockPath)
	if !errors.Is(err, ErrLockHeld) {
		return lock, err
	}

	slog.Info("waiting for another go-ore process to release the config lock", "path", lockPath)
	return LockFile(lockPath)
}

// ValidateConfig validates the configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := ValidateBaseURL(cfg.API.BaseURL); err != nil {
		return fmt.Errorf("invalid api base url: %w", err)
	}

	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api timeout must be positive, got %v", cfg.API.Timeout)
	}

	if cfg.Search.Limit < 1 {
		return fmt.Errorf("search limit must be >= 1, got %d", cfg.Search.Limit)
	}

	if _, err := ore.ParseSortName(cfg.Search.Sort); err != nil {
		return fmt.Errorf("invalid search sort: %w", err)
	}

	if _, err := ParseCategories(cfg.Search.Categories); err != nil {
		return fmt.Errorf("invalid search categories: %w", err)
	}

	if err := ValidateSizeFormat(cfg.Output.SizeFormat); err != nil {
		return err
	}

	if err := ValidateLogLevel(cfg.Logging.Level); err != nil {
		return err
	}

	return nil
}
