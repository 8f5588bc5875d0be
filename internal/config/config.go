// Package config provides configuration management for formrunner.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Submit  SubmitConfig  `mapstructure:"submit"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig configures the form service client
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// Timeout of zero waits indefinitely
	Timeout time.Duration `mapstructure:"timeout"`
}

// SubmitConfig configures where completed forms go
type SubmitConfig struct {
	Mode   string `mapstructure:"mode"`
	Output string `mapstructure:"output"`
}

// LoggingConfig configures logging behavior
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

var envKeyReplacer = strings.NewReplacer(".", "_")

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(".formrunner")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "formrunner"))
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay, we'll use defaults
	}

	// FORMRUNNER_API_BASE_URL overrides api.base_url, and so on
	v.SetEnvPrefix("FORMRUNNER")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "https://dynamic-form-generator-9rl7.onrender.com")
	v.SetDefault("api.timeout", time.Duration(0))

	v.SetDefault("submit.mode", "log")
	v.SetDefault("submit.output", ".formrunner/submission.json")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}

	validModes := map[string]bool{"log": true, "file": true}
	if !validModes[c.Submit.Mode] {
		return fmt.Errorf("submit.mode must be one of: log, file")
	}
	if c.Submit.Mode == "file" && c.Submit.Output == "" {
		return fmt.Errorf("submit.output is required when submit.mode is file")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"console": true, "json": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: console, json")
	}
	if c.Logging.Output == "" {
		return fmt.Errorf("logging.output is required")
	}

	return nil
}

// GetLogLevel returns the zerolog level based on config
func (c *Config) GetLogLevel() zerolog.Level {
	switch c.Logging.Level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// IsJSONFormat returns true if logging format is JSON
func (c *Config) IsJSONFormat() bool {
	return c.Logging.Format == "json"
}

// LogsToStderr reports whether log output goes to the terminal
func (c *Config) LogsToStderr() bool {
	return c.Logging.Output == "stderr"
}
