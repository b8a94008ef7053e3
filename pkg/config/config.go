// Package config defines the configuration surface for surf.
//
// Configuration is loaded from a YAML file and validated before use.
// Every field has a sensible default so an empty file (or no file at
// all) yields a working headless setup.
package config

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values for browser configuration
const (
	DefaultHeadless  = true
	DefaultTimeoutMs = 30000
)

// Config represents the browser automation configuration.
type Config struct {
	// Enabled is the master toggle for the browser tool surface
	Enabled bool `yaml:"enabled" json:"enabled"`

	// Headless controls whether the browser runs without a visible window
	Headless bool `yaml:"headless" json:"headless"`

	// TimeoutMs is the default per-operation timeout in milliseconds
	TimeoutMs int `yaml:"timeout_ms" json:"timeout_ms"`

	// ProxyServer is an explicit proxy URL. When empty, the HTTPS_PROXY
	// and HTTP_PROXY environment variables are consulted at launch time.
	ProxyServer string `yaml:"proxy_server" json:"proxy_server"`

	// StorageStatePath is the file where cookies and local storage are
	// persisted. When empty, it is derived from the workspace directory.
	StorageStatePath string `yaml:"storage_state_path" json:"storage_state_path"`

	// WorkspaceDir is the agent workspace root, used to derive the
	// default storage state location.
	WorkspaceDir string `yaml:"workspace_dir" json:"workspace_dir"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Enabled:   false,
		Headless:  DefaultHeadless,
		TimeoutMs: DefaultTimeoutMs,
	}
}

// LoadFile reads and parses a YAML configuration file. Fields absent
// from the file keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.TimeoutMs <= 0 {
		return fmt.Errorf("timeout_ms must be positive, got %d", c.TimeoutMs)
	}

	if c.ProxyServer != "" {
		u, err := url.Parse(c.ProxyServer)
		if err != nil {
			return fmt.Errorf("invalid proxy_server: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid proxy_server: %q (expected scheme://host[:port])", c.ProxyServer)
		}
	}

	return nil
}
