// Package main is the entry point for the pvestack CLI.
//
// pvestack provisions an application stack into an LXC container on a
// Proxmox VE node. It first attempts a rootless (unprivileged) install and
// falls back to a privileged container when the rootless path fails.
//
// Commands: create, update.
//
// For detailed usage information, run:
//
//	pvestack --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/pvestack/cmd/pvestack/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
