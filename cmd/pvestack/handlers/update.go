package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/pvestack/internal/provisioning"
	"github.com/imamik/pvestack/internal/util/naming"
)

// UpdateOptions carries the update command's resolved inputs. Zero ids
// mean the corresponding target is unknown.
type UpdateOptions struct {
	ConfigPath   string
	CTID         int
	FallbackCTID int
}

// Update handles the update command.
//
// The known targets are rebuilt from the supplied ids, the authoritative
// one is resolved (fallback over primary), and the pull-and-restart plan
// runs against it. An instance whose workload directory is missing was
// never provisioned by this tool and fails the run.
func Update(ctx context.Context, opts UpdateOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	var primary, fallback *provisioning.Target
	if opts.CTID > 0 {
		primary = &provisioning.Target{
			ID:           opts.CTID,
			Tier:         provisioning.TierUnprivileged,
			Hostname:     naming.Hostname(cfg.App.Name),
			WorkloadRoot: provisioning.RootlessStrategy(cfg.App).WorkloadRoot,
		}
	}
	if opts.FallbackCTID > 0 {
		fallback = &provisioning.Target{
			ID:           opts.FallbackCTID,
			Tier:         provisioning.TierPrivileged,
			Hostname:     naming.FallbackHostname(naming.Hostname(cfg.App.Name)),
			WorkloadRoot: provisioning.PrivilegedStrategy(cfg.App).WorkloadRoot,
		}
	}

	target, err := provisioning.ResolveAuthoritative(primary, fallback)
	if err != nil {
		return fmt.Errorf("no instance to update: %w (set --ctid or PVESTACK_CTID)", err)
	}

	host, err := newHostClient(cfg)
	if err != nil {
		return err
	}

	updater := provisioning.NewUpdater(host, cfg.App, newObserver())
	if err := updater.Update(ctx, target); err != nil {
		return err
	}

	printUpdateSummary(cfg, target)
	return nil
}
