// Package config loads the copybara configuration file: the workdir
// and the declared feedback migrations. Action bodies are not part of
// the file; the config only names registered actions and binds their
// parameters.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EndpointSpec declares an origin or destination binding.
type EndpointSpec struct {
	Type string `yaml:"type"`
	URL  string `yaml:"url"`
	// RefsFile points at the YAML refs file used as the snapshot
	// source. Only meaningful on origins.
	RefsFile string `yaml:"refs_file,omitempty"`
}

// ActionSpec names a registered action and its bound parameters.
// Validating params against the action's declared schema is the
// caller's concern.
type ActionSpec struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params,omitempty"`
}

// MigrationSpec declares one feedback migration.
type MigrationSpec struct {
	Name        string       `yaml:"name"`
	Origin      EndpointSpec `yaml:"origin"`
	Destination EndpointSpec `yaml:"destination"`
	Actions     []ActionSpec `yaml:"actions"`
}

// Config is the root of the configuration file.
type Config struct {
	Workdir    string          `yaml:"workdir"`
	Migrations []MigrationSpec `yaml:"migrations"`
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks structural requirements of the configuration.
func (c *Config) Validate() error {
	if len(c.Migrations) == 0 {
		return fmt.Errorf("no migrations declared")
	}

	seen := make(map[string]bool, len(c.Migrations))
	for i, m := range c.Migrations {
		if m.Name == "" {
			return fmt.Errorf("migration #%d has no name", i)
		}
		if seen[m.Name] {
			return fmt.Errorf("duplicate migration %q", m.Name)
		}
		seen[m.Name] = true

		if m.Origin.RefsFile == "" {
			return fmt.Errorf("migration %q: origin requires a refs_file", m.Name)
		}
		if m.Destination.Type == "" {
			return fmt.Errorf("migration %q: destination requires a type", m.Name)
		}
		if len(m.Actions) == 0 {
			return fmt.Errorf("migration %q declares no actions", m.Name)
		}
		for _, a := range m.Actions {
			if a.Name == "" {
				return fmt.Errorf("migration %q has an unnamed action", m.Name)
			}
		}
	}
	return nil
}

// Migration returns the spec with the given name.
func (c *Config) Migration(name string) (*MigrationSpec, bool) {
	for i := range c.Migrations {
		if c.Migrations[i].Name == name {
			return &c.Migrations[i], true
		}
	}
	return nil, false
}
