package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// LoadFile reads and parses the configuration from a YAML file.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var cfg Config
	if err := mapstructure.Decode(rawConfig, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// FindConfigFile returns the given path, or the default config file in the
// working directory when path is empty.
func FindConfigFile(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	if _, err := os.Stat(DefaultConfigFile); err != nil {
		return "", fmt.Errorf("no config file found: specify one with --config or create %s", DefaultConfigFile)
	}
	return DefaultConfigFile, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Storage == "" {
		cfg.Storage = "local-lvm"
	}
	if cfg.Instance.Cores == 0 {
		cfg.Instance.Cores = 2
	}
	if cfg.Instance.MemoryMB == 0 {
		cfg.Instance.MemoryMB = 2048
	}
	if cfg.Instance.DiskGB == 0 {
		cfg.Instance.DiskGB = 16
	}
	if cfg.Instance.Bridge == "" {
		cfg.Instance.Bridge = "vmbr0"
	}
	if cfg.App.ComposeDir == "" {
		cfg.App.ComposeDir = "."
	}
}
