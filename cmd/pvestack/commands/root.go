// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated to
// handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the pvestack CLI.
//
// A bare invocation provisions, same as the create subcommand; update must
// be asked for explicitly.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pvestack",
		Short: "Provision application stacks into Proxmox VE containers",
	}
	bindCreate(cmd)

	cmd.AddCommand(Create())
	cmd.AddCommand(Update())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
