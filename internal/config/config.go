package config

import (
	"time"

	"github.com/dnslab/recursor/internal/resolver"
)

// Resolution modes.
const (
	ModeForward   = "forward"
	ModeIterative = "iterative"
)

// Config is the full process configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Resolver ResolverConfig `yaml:"resolver"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds the UDP listener settings.
type ServerConfig struct {
	Address      string        `yaml:"address"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// ResolverConfig holds the resolution engine settings.
type ResolverConfig struct {
	Mode        string        `yaml:"mode"` // "forward" or "iterative"
	Upstreams   []string      `yaml:"upstreams"`
	RootServers []string      `yaml:"root_servers"`
	Timeout     time.Duration `yaml:"timeout"`
	Retries     int           `yaml:"retries"`
	MaxDepth    int           `yaml:"max_depth"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error"
}

// DefaultConfig returns a configuration usable without a config file:
// an iterative resolver on the unprivileged DNS port.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address:      "0.0.0.0:2053",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		Resolver: ResolverConfig{
			Mode:        ModeIterative,
			Upstreams:   []string{"8.8.8.8:53", "8.8.4.4:53"},
			RootServers: resolver.RootServers(),
			Timeout:     5 * time.Second,
			Retries:     2,
			MaxDepth:    10,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ResolverSettings converts the YAML-facing resolver section into the
// engine's own configuration type.
func (c *Config) ResolverSettings() *resolver.Config {
	return &resolver.Config{
		Timeout:     c.Resolver.Timeout,
		Retries:     c.Resolver.Retries,
		Upstreams:   c.Resolver.Upstreams,
		RootServers: c.Resolver.RootServers,
		MaxDepth:    c.Resolver.MaxDepth,
	}
}
