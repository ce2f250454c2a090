// Package config loads LeapGraph configuration from file, environment and
// CLI flags.
package config

import (
	"fmt"
	"strings"
)

// Default configuration values.
const (
	// DefaultStatePath is where snapshot history is stored.
	DefaultStatePath = ".leapgraph/snapshots.db"
	// DefaultSeverity is the minimum severity reported by diff commands.
	DefaultSeverity = "minor"
	// DefaultFormat selects automatic output mode detection.
	DefaultFormat = "auto"
)

// EndpointConfig describes one schema endpoint.
type EndpointConfig struct {
	// URL is the endpoint URL introspection is fetched from.
	URL string `koanf:"url"`
}

// Config is the resolved LeapGraph configuration.
type Config struct {
	// Endpoints maps endpoint names to their configuration.
	Endpoints map[string]EndpointConfig `koanf:"endpoints"`

	// CustomScalars extends the built-in scalar set (e.g. DateTime, JSON).
	CustomScalars []string `koanf:"custom_scalars"`

	// Severity is the minimum severity included in diff output.
	Severity string `koanf:"severity"`

	// StatePath is the snapshot database path.
	StatePath string `koanf:"state"`

	// Format is the output format: auto, table, markdown, json, yaml.
	Format string `koanf:"format"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
}

// ApplyDefaults fills unset fields with default values.
func (c *Config) ApplyDefaults() {
	if c.StatePath == "" {
		c.StatePath = DefaultStatePath
	}
	if c.Severity == "" {
		c.Severity = DefaultSeverity
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
}

// Endpoint resolves a name to its endpoint config. A name that parses as a
// URL (contains "://") is accepted directly, so commands work without a
// config file.
func (c *Config) Endpoint(name string) (EndpointConfig, error) {
	if ep, ok := c.Endpoints[name]; ok {
		return ep, nil
	}
	if strings.Contains(name, "://") {
		return EndpointConfig{URL: name}, nil
	}
	return EndpointConfig{}, fmt.Errorf("endpoint %q is not configured", name)
}
