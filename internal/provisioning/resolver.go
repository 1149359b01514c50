package provisioning

import (
	"context"
	"fmt"

	"github.com/imamik/pvestack/internal/config"
	"github.com/imamik/pvestack/internal/platform/proxmox"
)

// ResolveAuthoritative picks the instance update operations act upon. A
// known fallback always wins: it represents the strategy that actually
// succeeded, or the latest attempt. With neither target known there is
// nothing to update.
func ResolveAuthoritative(primary, fallback *Target) (*Target, error) {
	if fallback != nil {
		return fallback, nil
	}
	if primary != nil {
		return primary, nil
	}
	return nil, ErrNotProvisioned
}

// Updater runs pull-latest-and-restart operations against a target.
type Updater struct {
	exec     StepExecutor
	observer Observer
	app      config.AppConfig
}

// NewUpdater creates an Updater executing through the given host.
func NewUpdater(host proxmox.RemoteExecutor, app config.AppConfig, observer Observer) *Updater {
	timeouts := config.LoadTimeouts()
	return &Updater{
		exec: &RemoteStepExecutor{
			Exec:        host,
			StepTimeout: timeouts.Step,
			Observer:    observer,
		},
		observer: observer,
		app:      app,
	}
}

// Update pulls the latest workload revision, re-pulls images, and restarts
// the compose stack on the target, using the tooling pairing recorded in
// the target's privilege tier. A missing workload directory means the
// target was never provisioned.
func (u *Updater) Update(ctx context.Context, target *Target) error {
	steps := UpdateSteps(u.app, target)

	for i, step := range steps {
		result := u.exec.RunStep(ctx, target.ID, step)
		if result.OK {
			continue
		}

		// The presence check is always first; a genuine non-zero exit from
		// it means the workload directory does not exist at the expected
		// path. Exit code -1 is a transport failure, not a missing
		// directory, and reports as a step failure like any other.
		if i == 0 && result.ExitCode != -1 {
			return fmt.Errorf("%w: %s missing on instance %d", ErrNotProvisioned, target.WorkloadRoot, target.ID)
		}
		return &StepError{Step: step.Name, ID: target.ID, ExitCode: result.ExitCode}
	}

	u.observer.Printf("instance %d updated", target.ID)
	return nil
}
