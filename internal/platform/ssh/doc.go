// Package ssh provides an SSH client for executing commands on the
// Proxmox VE host.
//
// It is the transport behind remote execution: install steps run inside a
// container through `pct exec`, which itself runs on the host over this
// client. Connections use key-based authentication with configurable retry
// logic, and command exit codes are reported separately from transport
// errors so callers can classify failures.
package ssh
