package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "0.0.0.0:2053", cfg.Server.Address)
	assert.Equal(t, ModeIterative, cfg.Resolver.Mode)
	assert.Len(t, cfg.Resolver.RootServers, 13)
}

func TestLoadFromFileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recursor.yaml")
	content := `
server:
  address: "127.0.0.1:5353"
resolver:
  mode: forward
  upstreams:
    - "1.1.1.1:53"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:5353", cfg.Server.Address)
	assert.Equal(t, ModeForward, cfg.Resolver.Mode)
	assert.Equal(t, []string{"1.1.1.1:53"}, cfg.Resolver.Upstreams)

	// Unnamed settings keep their defaults.
	assert.Equal(t, 5*time.Second, cfg.Resolver.Timeout)
	assert.Equal(t, 10, cfg.Resolver.MaxDepth)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsBrokenConfigs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty address", func(c *Config) { c.Server.Address = "" }},
		{"address without port", func(c *Config) { c.Server.Address = "127.0.0.1" }},
		{"bad port", func(c *Config) { c.Server.Address = "127.0.0.1:99999" }},
		{"unknown mode", func(c *Config) { c.Resolver.Mode = "divination" }},
		{"forward without upstreams", func(c *Config) {
			c.Resolver.Mode = ModeForward
			c.Resolver.Upstreams = nil
		}},
		{"iterative without roots", func(c *Config) { c.Resolver.RootServers = nil }},
		{"upstream without port", func(c *Config) {
			c.Resolver.Mode = ModeForward
			c.Resolver.Upstreams = []string{"8.8.8.8"}
		}},
		{"zero timeout", func(c *Config) { c.Resolver.Timeout = 0 }},
		{"negative retries", func(c *Config) { c.Resolver.Retries = -1 }},
		{"zero max depth", func(c *Config) { c.Resolver.MaxDepth = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
