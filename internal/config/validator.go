package config

import (
	"fmt"
	"net"
	"strconv"
)

// Validate checks the configuration for values the server cannot run
// with.
func (c *Config) Validate() error {
	if err := c.Server.validate(); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}
	if err := c.Resolver.validate(); err != nil {
		return fmt.Errorf("resolver config validation failed: %w", err)
	}
	return nil
}

func (c *ServerConfig) validate() error {
	if c.Address == "" {
		return fmt.Errorf("server address cannot be empty")
	}
	host, port, err := net.SplitHostPort(c.Address)
	if err != nil {
		return fmt.Errorf("invalid server address format: %w", err)
	}
	if net.ParseIP(host) == nil && host != "localhost" && host != "" {
		return fmt.Errorf("invalid server host: %s", host)
	}
	portNum, err := strconv.Atoi(port)
	if err != nil || portNum < 1 || portNum > 65535 {
		return fmt.Errorf("invalid server port: %s", port)
	}
	return nil
}

func (c *ResolverConfig) validate() error {
	switch c.Mode {
	case ModeForward:
		if len(c.Upstreams) == 0 {
			return fmt.Errorf("forward mode requires at least one upstream")
		}
		if err := validateAddrs(c.Upstreams); err != nil {
			return err
		}
	case ModeIterative:
		if len(c.RootServers) == 0 {
			return fmt.Errorf("iterative mode requires at least one root server")
		}
		if err := validateAddrs(c.RootServers); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown resolver mode %q", c.Mode)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("resolver timeout must be positive")
	}
	if c.Retries < 0 {
		return fmt.Errorf("resolver retries cannot be negative")
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("resolver max depth must be at least 1")
	}
	return nil
}

func validateAddrs(addrs []string) error {
	for _, addr := range addrs {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return fmt.Errorf("invalid server address %q: %w", addr, err)
		}
	}
	return nil
}
