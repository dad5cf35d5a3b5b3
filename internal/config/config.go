package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config models strata.yml.
type Config struct {
	DBPath        string
	Timezone      string
	SweepInterval time.Duration
}

// rawConfig is the YAML shape; the sweep interval travels as a Go duration
// string ("15m", "1h30m").
type rawConfig struct {
	DBPath        string `yaml:"db_path"`
	Timezone      string `yaml:"timezone"`
	SweepInterval string `yaml:"sweep_interval"`
}

// UnmarshalYAML fills only the fields present in the document, so values
// already set (the defaults) survive.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	var raw rawConfig
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if raw.DBPath != "" || present(node, "db_path") {
		c.DBPath = raw.DBPath
	}
	if raw.Timezone != "" {
		c.Timezone = raw.Timezone
	}
	if raw.SweepInterval != "" {
		d, err := time.ParseDuration(raw.SweepInterval)
		if err != nil {
			return fmt.Errorf("invalid sweep_interval %q: %w", raw.SweepInterval, err)
		}
		c.SweepInterval = d
	}
	return nil
}

// present reports whether a mapping key appears in the YAML node, which lets
// an explicit empty value be distinguished from an omitted one.
func present(node *yaml.Node, key string) bool {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}

// Default returns the configuration used when no file is present: database
// under the user's home directory, UTC, hourly sweep.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		DBPath:        filepath.Join(home, ".strata", "strata.db"),
		Timezone:      "UTC",
		SweepInterval: time.Hour,
	}
}

// Load reads the config file at path, filling any omitted field from
// Default. A missing file is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return FromYAML(data)
}

// FromYAML parses and validates config from raw YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures the config meets required structure.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("config.db_path is required")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("config.timezone %q is not a valid IANA zone", c.Timezone)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("config.sweep_interval must be positive")
	}
	return nil
}

// Zone resolves the configured timezone. Validate guarantees it loads.
func (c *Config) Zone() *time.Location {
	zone, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return zone
}
