// Package handlers implements the CLI command logic.
//
// Handlers wire configuration, environment credentials, and the platform
// client together and run the provisioning core. Platform construction
// goes through package-level factory variables so tests can substitute a
// mock client.
package handlers

import (
	"fmt"
	"os"

	"github.com/imamik/pvestack/internal/config"
	"github.com/imamik/pvestack/internal/platform/proxmox"
	"github.com/imamik/pvestack/internal/platform/ssh"
	"github.com/imamik/pvestack/internal/provisioning"
)

// Factory function variables - can be replaced in tests.
var (
	// newHostClient builds the platform client from the environment.
	newHostClient = buildHostClient

	// newObserver builds the run's observer.
	newObserver = func() provisioning.Observer { return provisioning.NewConsoleObserver() }
)

// loadConfig resolves and loads the configuration file.
func loadConfig(path string) (*config.Config, error) {
	resolved, err := config.FindConfigFile(path)
	if err != nil {
		return nil, err
	}
	return config.LoadFile(resolved)
}

// buildHostClient constructs a RealClient from PVE_* environment
// variables. The SSH connection to the node carries the exec path; the
// REST API carries everything else.
func buildHostClient(cfg *config.Config) (proxmox.HostManager, error) {
	apiURL := os.Getenv("PVE_API_URL")
	if apiURL == "" {
		return nil, fmt.Errorf("PVE_API_URL environment variable is required")
	}
	tokenID := os.Getenv("PVE_TOKEN_ID")
	tokenSecret := os.Getenv("PVE_TOKEN_SECRET")
	if tokenID == "" || tokenSecret == "" {
		return nil, fmt.Errorf("PVE_TOKEN_ID and PVE_TOKEN_SECRET environment variables are required")
	}

	shell, err := buildHostShell()
	if err != nil {
		return nil, err
	}

	return proxmox.NewRealClient(proxmox.RealClientOpts{
		APIURL:             apiURL,
		TokenID:            tokenID,
		TokenSecret:        tokenSecret,
		Node:               cfg.Node,
		Storage:            cfg.Storage,
		InsecureSkipVerify: os.Getenv("PVE_INSECURE_SKIP_VERIFY") == "1",
		Shell:              shell,
	}), nil
}

// buildHostShell constructs the SSH shell to the Proxmox node.
func buildHostShell() (proxmox.HostShell, error) {
	host := os.Getenv("PVE_SSH_HOST")
	if host == "" {
		return nil, fmt.Errorf("PVE_SSH_HOST environment variable is required")
	}

	keyFile := os.Getenv("PVE_SSH_KEY_FILE")
	if keyFile == "" {
		return nil, fmt.Errorf("PVE_SSH_KEY_FILE environment variable is required")
	}
	key, err := os.ReadFile(keyFile) // #nosec G304 -- path comes from the operator's environment
	if err != nil {
		return nil, fmt.Errorf("failed to read SSH key %s: %w", keyFile, err)
	}

	user := os.Getenv("PVE_SSH_USER")
	if user == "" {
		user = "root"
	}

	shell, err := ssh.NewClient(&ssh.Config{
		Host:       host,
		User:       user,
		PrivateKey: key,
	})
	if err != nil {
		return nil, err
	}
	return shell, nil
}
