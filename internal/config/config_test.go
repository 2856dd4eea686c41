package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 3, cfg.WindowDays)
	assert.Equal(t, 10, cfg.TopComponents)
	assert.Equal(t, 4000, cfg.Narrative.MaxTokens)
	assert.NotEmpty(t, cfg.Narrative.Model)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
window_days: 7
narrative:
  max_tokens: 1024
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 7, cfg.WindowDays)
	// Values absent from the file keep their defaults.
	assert.Equal(t, 10, cfg.TopComponents)
	assert.Equal(t, 1024, cfg.Narrative.MaxTokens)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "log_level: [unclosed")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults valid", func(*Config) {}, ""},
		{"window too small", func(c *Config) { c.WindowDays = 0 }, "window_days"},
		{"components too small", func(c *Config) { c.TopComponents = -1 }, "top_components"},
		{"max tokens too small", func(c *Config) { c.Narrative.MaxTokens = 0 }, "max_tokens"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
