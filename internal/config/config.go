package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"invoicer/internal/logger"
	"invoicer/internal/storage"
)

// EnvPrefix is prepended to every environment variable, e.g. INVOICER_STORE_DRIVER.
const EnvPrefix = "INVOICER"

type Config struct {
	// Storage Configuration
	StoreDriver string `validate:"oneof=file sqlite memory"`
	StorePath   string `validate:"required_unless=StoreDriver memory"`

	// Output Configuration
	OutputDir      string `validate:"required"`
	CurrencySymbol string `validate:"required"`
	LogoWidth      int    `validate:"gte=16,lte=2000"`

	// Reference time zone for calendar-day arithmetic
	Timezone string `validate:"required"`
	Location *time.Location

	// Logging Configuration
	LogLevel      string `validate:"oneof=trace debug info warn error fatal panic disabled"`
	LogFormat     string `validate:"oneof=console json"`
	LogTimeFormat string
	LogOutput     string
}

// Load reads configuration from INVOICER_* environment variables and an
// optional invoicer.yaml in the working directory or ~/.invoicer.
// Environment variables win over the file; both win over defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("invoicer")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir := dataDir(); dir != "" {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("store_driver", storage.DriverFile)
	v.SetDefault("store_path", "")
	v.SetDefault("output_dir", ".")
	v.SetDefault("currency_symbol", "£")
	v.SetDefault("logo_width", 300)
	v.SetDefault("timezone", "Europe/London")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "console")
	v.SetDefault("log_time_format", time.RFC3339)
	v.SetDefault("log_output", "stderr")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		StoreDriver:    v.GetString("store_driver"),
		StorePath:      v.GetString("store_path"),
		OutputDir:      v.GetString("output_dir"),
		CurrencySymbol: v.GetString("currency_symbol"),
		LogoWidth:      v.GetInt("logo_width"),
		Timezone:       v.GetString("timezone"),
		LogLevel:       v.GetString("log_level"),
		LogFormat:      v.GetString("log_format"),
		LogTimeFormat:  v.GetString("log_time_format"),
		LogOutput:      v.GetString("log_output"),
	}
	if config.StorePath == "" {
		config.StorePath = DefaultStorePath(config.StoreDriver)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate checks field constraints and resolves the time zone.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	c.Location = loc
	return nil
}

// StoreOptions returns the storage backend selection.
func (c *Config) StoreOptions() storage.Options {
	return storage.Options{Driver: c.StoreDriver, Path: c.StorePath}
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

// DefaultStorePath is ~/.invoicer/store.json for the file driver and
// ~/.invoicer/invoicer.db for sqlite.
func DefaultStorePath(driver string) string {
	dir := dataDir()
	if dir == "" {
		dir = "."
	}
	switch driver {
	case storage.DriverSQLite:
		return filepath.Join(dir, "invoicer.db")
	case storage.DriverMemory:
		return ""
	default:
		return filepath.Join(dir, "store.json")
	}
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".invoicer")
}
