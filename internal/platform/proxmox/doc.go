// Package proxmox provides a wrapper around the Proxmox VE REST API.
//
// The package exposes narrow interfaces for the three concerns the
// provisioning core needs — instance lifecycle, registry queries for
// identifier allocation, and remote command execution inside an
// instance — plus a RealClient implementation and a MockClient for tests.
//
// Proxmox has no synchronous exec endpoint for LXC containers, so the
// exec path runs `pct exec` on the host through an injected host shell
// (normally an SSH session to the node).
package proxmox
