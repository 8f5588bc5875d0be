package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: info\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://dynamic-form-generator-9rl7.onrender.com", cfg.API.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.API.Timeout)
	assert.Equal(t, "log", cfg.Submit.Mode)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, zerolog.InfoLevel, cfg.GetLogLevel())
	assert.False(t, cfg.IsJSONFormat())
	assert.True(t, cfg.LogsToStderr())
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: http://localhost:9000
  timeout: 15s
submit:
  mode: file
  output: out/answers.json
logging:
  level: debug
  format: json
  output: formrunner.log
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, "file", cfg.Submit.Mode)
	assert.Equal(t, "out/answers.json", cfg.Submit.Output)
	assert.Equal(t, zerolog.DebugLevel, cfg.GetLogLevel())
	assert.True(t, cfg.IsJSONFormat())
	assert.False(t, cfg.LogsToStderr())
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: info\n")
	t.Setenv("FORMRUNNER_API_BASE_URL", "http://env.example")
	t.Setenv("FORMRUNNER_SUBMIT_MODE", "file")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env.example", cfg.API.BaseURL)
	assert.Equal(t, "file", cfg.Submit.Mode)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, "submit:\n  mode: fax\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "submit.mode")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			API:     APIConfig{BaseURL: "http://x"},
			Submit:  SubmitConfig{Mode: "log"},
			Logging: LoggingConfig{Level: "info", Format: "console", Output: "stderr"},
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		errContains string
	}{
		{"missing base url", func(c *Config) { c.API.BaseURL = "" }, "api.base_url"},
		{"negative timeout", func(c *Config) { c.API.Timeout = -time.Second }, "api.timeout"},
		{"bad submit mode", func(c *Config) { c.Submit.Mode = "email" }, "submit.mode"},
		{"file without output", func(c *Config) { c.Submit.Mode = "file"; c.Submit.Output = "" }, "submit.output"},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"empty output", func(c *Config) { c.Logging.Output = "" }, "logging.output"},
	}

	assert.NoError(t, valid().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}
