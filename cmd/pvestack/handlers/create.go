package handlers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/imamik/pvestack/internal/config"
	"github.com/imamik/pvestack/internal/provisioning"
	"github.com/imamik/pvestack/internal/util/keygen"
)

const (
	// generatedKeyFile is where a generated instance key pair is written
	// when no --ssh-pubkey is supplied.
	generatedKeyFile = "pvestack_id_rsa"

	instanceKeyBits = 4096
)

// CreateOptions carries the create command's flag values.
type CreateOptions struct {
	ConfigPath  string
	Interactive bool
	PubkeyPath  string
}

// Create handles the create command.
//
// It loads the configuration, builds the platform client from the
// environment, and runs one provisioning attempt: rootless first, then a
// privileged fallback if a critical rootless step fails. On success the
// printed summary includes the environment lines a later update run needs.
func Create(ctx context.Context, opts CreateOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	if opts.Interactive {
		if err := config.RunSizingWizard(cfg); err != nil {
			return fmt.Errorf("sizing wizard failed: %w", err)
		}
	}

	pubkey, err := instancePublicKey(opts.PubkeyPath)
	if err != nil {
		return err
	}

	host, err := newHostClient(cfg)
	if err != nil {
		return err
	}

	orch := provisioning.NewOrchestrator(host, cfg, newObserver())
	orch.SSHPublicKey = pubkey

	result, err := orch.Provision(ctx)
	printProvisionSummary(cfg, result)
	if err != nil {
		return err
	}
	return nil
}

// instancePublicKey returns the public key to seed into created
// instances. With no path given a fresh key pair is generated and written
// next to the config so the operator can reach the instance afterwards.
func instancePublicKey(path string) (string, error) {
	if path != "" {
		key, err := os.ReadFile(path) // #nosec G304 -- path comes from a CLI flag
		if err != nil {
			return "", fmt.Errorf("failed to read public key %s: %w", path, err)
		}
		return strings.TrimSpace(string(key)), nil
	}

	if _, err := os.Stat(generatedKeyFile); err == nil {
		pub, err := os.ReadFile(generatedKeyFile + ".pub")
		if err != nil {
			return "", fmt.Errorf("failed to read existing key %s.pub: %w", generatedKeyFile, err)
		}
		return strings.TrimSpace(string(pub)), nil
	}

	pair, err := keygen.GenerateRSAKeyPair(instanceKeyBits)
	if err != nil {
		return "", fmt.Errorf("failed to generate instance key pair: %w", err)
	}
	if err := os.WriteFile(generatedKeyFile, pair.PrivateKey, 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", generatedKeyFile, err)
	}
	if err := os.WriteFile(generatedKeyFile+".pub", pair.PublicKey, 0o644); err != nil { // #nosec G306 -- public half
		return "", fmt.Errorf("failed to write %s.pub: %w", generatedKeyFile, err)
	}
	return strings.TrimSpace(string(pair.PublicKey)), nil
}
