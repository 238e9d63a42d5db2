// Package config handles CLI configuration loading and management.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration.
type Config struct {
	DefaultHost string                `yaml:"default_host"`
	Hosts       map[string]HostConfig `yaml:"hosts"`
}

// HostConfig holds configuration for one search service deployment.
type HostConfig struct {
	URL       string `yaml:"url"`
	APIKeyRef string `yaml:"api_key_ref,omitempty"`
}

// DefaultConfigPath returns the default configuration file path for the current platform.
// - macOS/Linux: ~/.loupe/config.yaml
// - Windows: %USERPROFILE%\.loupe\config.yaml
func DefaultConfigPath() string {
	var homeDir string

	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}

	if homeDir == "" {
		// Fallback to current directory
		return "config.yaml"
	}

	return filepath.Join(homeDir, ".loupe", "config.yaml")
}

// LoadConfig loads configuration from the specified path.
// If the file doesn't exist, returns an empty config without error.
// Returns an error only if the file exists but cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Hosts: make(map[string]HostConfig),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Missing config file is not an error
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Ensure Hosts map is initialized
	if cfg.Hosts == nil {
		cfg.Hosts = make(map[string]HostConfig)
	}

	return cfg, nil
}

// GetHost returns the host config for the given alias.
// Returns nil if the alias is not configured.
func (c *Config) GetHost(alias string) *HostConfig {
	if c.Hosts == nil {
		return nil
	}
	if hc, ok := c.Hosts[alias]; ok {
		return &hc
	}
	return nil
}
