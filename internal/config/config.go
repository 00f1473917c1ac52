// Package config provides configuration management for the seeder.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration.
type Config struct {
	Generator GeneratorConfig `mapstructure:"generator"`
	Output    OutputConfig    `mapstructure:"output"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Log       LogConfig       `mapstructure:"log"`
}

// GeneratorConfig controls how many events are produced and over which
// trailing window.
type GeneratorConfig struct {
	Count      int   `mapstructure:"count"`
	WindowDays int   `mapstructure:"window_days"`
	Seed       int64 `mapstructure:"seed"` // 0 = derive from wall clock
}

// OutputConfig holds the CSV artifact settings.
type OutputConfig struct {
	Path string `mapstructure:"path"`
}

// DatabaseConfig holds the optional SQLite sink settings. An empty path
// disables the sink.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load reads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("generator.count", 1000)
	v.SetDefault("generator.window_days", 90)
	v.SetDefault("generator.seed", 0)
	v.SetDefault("output.path", "test_events.csv")
	v.SetDefault("database.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	// Read config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Read environment variables
	v.SetEnvPrefix("SEEDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks ranges on the generation parameters. A zero count is
// allowed and yields a header-only artifact.
func (c *Config) Validate() error {
	if c.Generator.Count < 0 {
		return fmt.Errorf("generator count must not be negative, got %d", c.Generator.Count)
	}
	if c.Generator.WindowDays <= 0 {
		return fmt.Errorf("generator window must be at least one day, got %d", c.Generator.WindowDays)
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output path is required")
	}
	return nil
}
