package proxmox

import (
	"context"
)

// InstanceCreateOpts holds all parameters for creating an LXC instance.
type InstanceCreateOpts struct {
	ID           int
	Hostname     string
	OSTemplate   string
	Cores        int
	MemoryMB     int
	DiskGB       int
	Storage      string
	Bridge       string
	Unprivileged bool
	// Nesting enables container nesting, required for running a container
	// runtime inside the instance.
	Nesting      bool
	SSHPublicKey string
}

// InstanceState is the lifecycle state of an instance as reported by the node.
type InstanceState string

const (
	StateRunning InstanceState = "running"
	StateStopped InstanceState = "stopped"
	// StateUnknown is reported when the node cannot be queried or the
	// readiness bound was exhausted.
	StateUnknown InstanceState = "unknown"
)

// ExecResult is the outcome of a command executed inside an instance.
type ExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// InstanceProvisioner defines the interface for instance lifecycle operations.
type InstanceProvisioner interface {
	// CreateInstance creates a new LXC container with the given specification
	// and waits for the creation task to finish.
	CreateInstance(ctx context.Context, opts InstanceCreateOpts) error
	StartInstance(ctx context.Context, id int) error
	InstanceStatus(ctx context.Context, id int) (InstanceState, error)
	DestroyInstance(ctx context.Context, id int) error
	// WaitForAddress polls until the instance reports a non-loopback IPv4
	// address, bounded by the configured poll interval and attempt count.
	WaitForAddress(ctx context.Context, id int) (string, error)
}

// RegistryQuerier defines the interface for querying the two namespaces an
// instance identifier must be free in: existing guest configuration records
// and storage volume names.
type RegistryQuerier interface {
	ExistingConfigIDs(ctx context.Context) (map[int]struct{}, error)
	ExistingVolumeNames(ctx context.Context) ([]string, error)
	// NextID returns the cluster's suggested next free identifier.
	NextID(ctx context.Context) (int, error)
}

// RemoteExecutor defines the interface for running a script inside an
// instance. A non-zero exit code is reported in the result, not as an error;
// the error return is reserved for transport failures.
type RemoteExecutor interface {
	Exec(ctx context.Context, id int, script string) (ExecResult, error)
}

// HostManager combines all host-facing interfaces.
type HostManager interface {
	InstanceProvisioner
	RegistryQuerier
	RemoteExecutor
}
