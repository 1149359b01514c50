package config

import (
	"fmt"
	"strings"
)

// DefaultConfigFile is the config file looked up in the working directory
// when no --config flag is given.
const DefaultConfigFile = "pvestack.yaml"

// Config is the top-level pvestack configuration.
type Config struct {
	// App describes the containerized workload to install.
	App AppConfig `yaml:"app" mapstructure:"app"`

	// Node is the Proxmox VE node name instances are created on.
	Node string `yaml:"node" mapstructure:"node"`

	// Storage is the storage pool for instance root disks. Its content
	// listing is one of the two namespaces checked during id allocation.
	Storage string `yaml:"storage" mapstructure:"storage"`

	// Instance is the nominal resource sizing, shared by the primary and
	// the fallback instance.
	Instance InstanceConfig `yaml:"instance" mapstructure:"instance"`

	// CleanupFailedPrimary destroys a primary instance whose installation
	// failed before the fallback is attempted. Off by default: the failed
	// instance is preserved for debugging.
	CleanupFailedPrimary bool `yaml:"cleanup_failed_primary" mapstructure:"cleanup_failed_primary"`
}

// AppConfig describes the workload installed inside the instance.
type AppConfig struct {
	// Name is used for the instance hostname and the operating user.
	Name string `yaml:"name" mapstructure:"name"`

	// RepoURL is the git repository holding the workload's compose stack.
	RepoURL string `yaml:"repo_url" mapstructure:"repo_url"`

	// Branch to clone; empty means the repository default.
	Branch string `yaml:"branch" mapstructure:"branch"`

	// ComposeDir is the path of the compose file's directory relative to
	// the repository root.
	ComposeDir string `yaml:"compose_dir" mapstructure:"compose_dir"`
}

// InstanceConfig is the resource sizing for a created instance.
type InstanceConfig struct {
	Cores      int    `yaml:"cores" mapstructure:"cores"`
	MemoryMB   int    `yaml:"memory_mb" mapstructure:"memory_mb"`
	DiskGB     int    `yaml:"disk_gb" mapstructure:"disk_gb"`
	Bridge     string `yaml:"bridge" mapstructure:"bridge"`
	OSTemplate string `yaml:"os_template" mapstructure:"os_template"`
}

// RepoName returns the directory name a clone of RepoURL produces.
func (a AppConfig) RepoName() string {
	url := strings.TrimSuffix(a.RepoURL, ".git")
	url = strings.TrimSuffix(url, "/")
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[i+1:]
	}
	return url
}

// Validate checks the configuration for missing or inconsistent values.
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}
	if strings.ContainsAny(c.App.Name, " /\\") {
		return fmt.Errorf("app.name %q must be a valid hostname fragment", c.App.Name)
	}
	if c.App.RepoURL == "" {
		return fmt.Errorf("app.repo_url is required")
	}
	if c.Node == "" {
		return fmt.Errorf("node is required")
	}
	if c.Instance.Cores < 1 {
		return fmt.Errorf("instance.cores must be >= 1, got %d", c.Instance.Cores)
	}
	if c.Instance.MemoryMB < 128 {
		return fmt.Errorf("instance.memory_mb must be >= 128, got %d", c.Instance.MemoryMB)
	}
	if c.Instance.DiskGB < 1 {
		return fmt.Errorf("instance.disk_gb must be >= 1, got %d", c.Instance.DiskGB)
	}
	if c.Instance.OSTemplate == "" {
		return fmt.Errorf("instance.os_template is required")
	}
	return nil
}
