package commands

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/imamik/pvestack/cmd/pvestack/handlers"
)

// Update returns the command for updating a previously provisioned stack.
//
// The instance ids come from flags or from the environment variables a
// previous create run printed (PVESTACK_CTID, PVESTACK_FALLBACK_CTID).
// When both a primary and a fallback id are known, the fallback is the one
// updated: it is the instance the last successful install landed on.
func Update() *cobra.Command {
	var configPath string
	var ctid int
	var fallbackCTID int

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Pull the latest workload revision and restart the stack",
		Long: `Update a previously provisioned stack instance.

Pulls the latest revision of the workload repository, re-pulls its images,
and restarts the compose stack inside the authoritative instance. The
update uses the container tooling matching how the instance was
provisioned (podman for rootless, docker for privileged).

Examples:
  # Update the instance recorded by the last create run
  PVESTACK_CTID=110 pvestack update

  # Update an explicit fallback instance
  pvestack update --fallback-ctid 111`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ctid == 0 {
				ctid = ctidFromEnv("PVESTACK_CTID")
			}
			if fallbackCTID == 0 {
				fallbackCTID = ctidFromEnv("PVESTACK_FALLBACK_CTID")
			}
			return handlers.Update(cmd.Context(), handlers.UpdateOptions{
				ConfigPath:   configPath,
				CTID:         ctid,
				FallbackCTID: fallbackCTID,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: pvestack.yaml)")
	cmd.Flags().IntVar(&ctid, "ctid", 0, "Primary container id (default: $PVESTACK_CTID)")
	cmd.Flags().IntVar(&fallbackCTID, "fallback-ctid", 0, "Fallback container id (default: $PVESTACK_FALLBACK_CTID)")

	return cmd
}

// ctidFromEnv reads a container id from the environment. Unset or
// malformed values are treated as unknown.
func ctidFromEnv(key string) int {
	raw := os.Getenv(key)
	if raw == "" {
		return 0
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}
