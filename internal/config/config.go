package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when --config is not given.
const DefaultPath = "architect.yml"

// EnvPrefix prefixes every environment override. Keys follow the field path,
// e.g. ARCHITECT_STORE_BACKEND or ARCHITECT_STORE_REDIS_URL.
const EnvPrefix = "ARCHITECT"

// Store backends
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// ArchitectConfig represents the top-level architect.yml configuration
type ArchitectConfig struct {
	Version   string        `yaml:"version" ignored:"true"`
	Workspace string        `yaml:"workspace"` // Namespaces the stored blueprint
	Store     StoreConfig   `yaml:"store"`
	Output    OutputConfig  `yaml:"output"`
	Logging   LoggingConfig `yaml:"logging"`
	Serve     ServeConfig   `yaml:"serve"`
	Watch     WatchConfig   `yaml:"watch"`
}

// StoreConfig selects where the blueprint slot lives
type StoreConfig struct {
	Backend  string `yaml:"backend"`                      // "file" or "redis"
	Path     string `yaml:"path"`                         // file backend only
	RedisURL string `yaml:"redis_url" split_words:"true"` // redis backend only
}

// OutputConfig controls where compiled artefacts are written
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig controls diagnostic logging
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// ServeConfig controls the HTTP surface
type ServeConfig struct {
	Addr string `yaml:"addr"`
}

// WatchConfig controls how often the file backend is polled for changes
type WatchConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// Default returns the configuration used when architect.yml is absent.
func Default() *ArchitectConfig {
	cfg := &ArchitectConfig{Version: "1.0"}
	cfg.applyDefaults()
	return cfg
}

func (c *ArchitectConfig) applyDefaults() {
	if c.Workspace == "" {
		c.Workspace = "default"
	}
	if c.Store.Backend == "" {
		c.Store.Backend = BackendFile
	}
	if c.Store.Path == "" {
		c.Store.Path = ".architect/blueprint.json"
	}
	if c.Store.RedisURL == "" {
		c.Store.RedisURL = "redis://localhost:6379/0"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "dist"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = ":8080"
	}
	if c.Watch.Interval == 0 {
		c.Watch.Interval = 2 * time.Second
	}
}

// Validate applies defaults and performs strict validation on the configuration
func (c *ArchitectConfig) Validate() error {
	// Required: version
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	c.applyDefaults()

	// Workspace becomes part of Redis keys
	if strings.ContainsAny(c.Workspace, ": \t\n") {
		return fmt.Errorf("invalid workspace '%s': must not contain ':' or whitespace", c.Workspace)
	}

	switch c.Store.Backend {
	case BackendFile, BackendRedis:
	default:
		return fmt.Errorf("invalid store.backend: %s (must be 'file' or 'redis')", c.Store.Backend)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %s (must be 'debug', 'info', 'warn', or 'error')", c.Logging.Level)
	}

	if c.Watch.Interval < 0 {
		return fmt.Errorf("watch.interval must be positive, got %s", c.Watch.Interval)
	}

	return nil
}

// Load reads architect.yml from the specified path, applies ARCHITECT_* environment
// overrides and validates the result. A missing file yields the defaults.
func Load(path string) (*ArchitectConfig, error) {
	config := &ArchitectConfig{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		config.Version = "1.0"
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}
