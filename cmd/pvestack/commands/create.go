package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/pvestack/cmd/pvestack/handlers"
)

// Create returns the command for provisioning a new stack instance.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect pvestack.yaml)
//	--interactive, -i: Pick instance sizing through an interactive wizard
//	--ssh-pubkey: Public key seeded into the instance (default: generate a keypair)
//
// Environment variables:
//
//	PVE_API_URL: Proxmox API endpoint, e.g. https://pve1.example:8006 (required)
//	PVE_TOKEN_ID / PVE_TOKEN_SECRET: API token credentials (required)
//	PVE_SSH_HOST / PVE_SSH_USER / PVE_SSH_KEY_FILE: node shell access (required)
//	PVE_INSECURE_SKIP_VERIFY: accept the node's self-signed certificate
func Create() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Provision a new stack instance",
		Long: `Provision an application stack into a new LXC container.

The run allocates a free container id (checked against both existing
container configs and storage volume names), creates an unprivileged
container, and installs the stack rootless with podman. When a critical
install step fails, a separate privileged container is created and the
stack is installed there with docker instead. The failed container is left
running for inspection unless cleanup_failed_primary is set in the config.

Examples:
  # Provision using pvestack.yaml in the current directory
  pvestack create

  # Provision using a specific config file, sizing chosen interactively
  pvestack create -c media.yaml --interactive`,
	}
	bindCreate(cmd)

	return cmd
}

// bindCreate attaches the create flags and run function to cmd. The root
// command binds it too: a bare pvestack invocation provisions.
func bindCreate(cmd *cobra.Command) {
	var configPath string
	var interactive bool
	var pubkeyPath string

	cmd.RunE = func(c *cobra.Command, _ []string) error {
		return handlers.Create(c.Context(), handlers.CreateOptions{
			ConfigPath:  configPath,
			Interactive: interactive,
			PubkeyPath:  pubkeyPath,
		})
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: pvestack.yaml)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Choose instance sizing interactively")
	cmd.Flags().StringVar(&pubkeyPath, "ssh-pubkey", "", "Public key file to seed into the instance")
}
