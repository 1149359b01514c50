package provisioning

import (
	"context"
	"fmt"

	"github.com/imamik/pvestack/internal/alloc"
	"github.com/imamik/pvestack/internal/config"
	"github.com/imamik/pvestack/internal/platform/proxmox"
	"github.com/imamik/pvestack/internal/util/naming"
)

// Orchestrator drives one provisioning run: allocate an id, install the
// rootless stack, and fall back to a privileged instance when a critical
// step fails. Each strategy is attempted exactly once per run.
type Orchestrator struct {
	host     proxmox.HostManager
	cfg      *config.Config
	executor StepExecutor
	observer Observer

	// SSHPublicKey, when set, is seeded into created instances.
	SSHPublicKey string

	phase Phase
}

// NewOrchestrator creates an orchestrator bound to a host and config.
func NewOrchestrator(host proxmox.HostManager, cfg *config.Config, observer Observer) *Orchestrator {
	timeouts := config.LoadTimeouts()
	return &Orchestrator{
		host: host,
		cfg:  cfg,
		executor: &RemoteStepExecutor{
			Exec:        host,
			StepTimeout: timeouts.Step,
			Observer:    observer,
		},
		observer: observer,
		phase:    PhaseInit,
	}
}

// Phase returns the orchestrator's current state-machine phase.
func (o *Orchestrator) Phase() Phase {
	return o.phase
}

// Provision runs the state machine to a terminal phase. The returned result
// holds every target that was created, even on abort, so the caller can
// report what is left running. The error is nil only in the Done phase.
func (o *Orchestrator) Provision(ctx context.Context) (*OrchestrationResult, error) {
	result := &OrchestrationResult{}

	o.transition(PhaseAllocatingPrimary)
	primaryID, err := alloc.Allocate(ctx, o.host, 0)
	if err != nil {
		return result, o.abort(fmt.Errorf("primary allocation: %w", err))
	}

	primary, err := o.bringUp(ctx, primaryID, naming.Hostname(o.cfg.App.Name), TierUnprivileged)
	if err != nil {
		return result, o.abort(err)
	}
	result.Primary = primary

	o.transition(PhaseInstallingPrimary)
	rootless := RootlessStrategy(o.cfg.App)
	primary.WorkloadRoot = rootless.WorkloadRoot
	attempt := runStrategy(ctx, o.executor, o.observer, primary, rootless)
	o.reportSwallowed(attempt)
	if attempt.Succeeded() {
		primary.Status = StatusInstallSucceeded
		result.Authoritative = primary
		o.transition(PhaseDone)
		return result, nil
	}
	primary.Status = StatusInstallFailed

	// The failed primary is preserved for debugging unless the cleanup
	// policy says otherwise.
	if o.cfg.CleanupFailedPrimary {
		if destroyErr := o.host.DestroyInstance(ctx, primary.ID); destroyErr != nil {
			o.observer.Printf("failed to clean up instance %d: %v", primary.ID, destroyErr)
		} else {
			o.observer.Event(Event{Type: EventInstanceDestroyed, Instance: primary.ID, Message: "failed primary removed"})
		}
	}

	o.transition(PhaseAllocatingFallback)
	fallbackID, err := alloc.Allocate(ctx, o.host, primary.ID+1)
	if err != nil {
		return result, o.abort(fmt.Errorf("fallback allocation: %w", err))
	}

	fallback, err := o.bringUp(ctx, fallbackID, naming.FallbackHostname(primary.Hostname), TierPrivileged)
	if err != nil {
		return result, o.abort(err)
	}
	result.Fallback = fallback

	o.transition(PhaseInstallingFallback)
	privileged := PrivilegedStrategy(o.cfg.App)
	fallback.WorkloadRoot = privileged.WorkloadRoot
	attempt = runStrategy(ctx, o.executor, o.observer, fallback, privileged)
	o.reportSwallowed(attempt)
	if attempt.Succeeded() {
		fallback.Status = StatusInstallSucceeded
		result.Authoritative = fallback
		o.transition(PhaseDone)
		return result, nil
	}
	fallback.Status = StatusInstallFailed

	// Both instances are left running for inspection.
	failed := attempt.FailedResult()
	return result, o.abort(&StepError{Step: failed.Name, ID: fallback.ID, ExitCode: failed.ExitCode})
}

// bringUp creates and starts one instance and waits for its address. The
// address wait is bounded; an instance that never reports one is still
// usable through the host's exec path, so only the wait's outcome is logged.
func (o *Orchestrator) bringUp(ctx context.Context, id int, hostname string, tier PrivilegeTier) (*Target, error) {
	opts := proxmox.InstanceCreateOpts{
		ID:           id,
		Hostname:     hostname,
		OSTemplate:   o.cfg.Instance.OSTemplate,
		Cores:        o.cfg.Instance.Cores,
		MemoryMB:     o.cfg.Instance.MemoryMB,
		DiskGB:       o.cfg.Instance.DiskGB,
		Storage:      o.cfg.Storage,
		Bridge:       o.cfg.Instance.Bridge,
		Unprivileged: tier == TierUnprivileged,
		Nesting:      true,
		SSHPublicKey: o.SSHPublicKey,
	}

	if err := o.host.CreateInstance(ctx, opts); err != nil {
		return nil, &CreationError{ID: id, Err: err}
	}
	o.observer.Event(Event{Type: EventInstanceCreated, Instance: id, Message: hostname, Fields: map[string]string{"tier": string(tier)}})

	target := &Target{
		ID:       id,
		Tier:     tier,
		Hostname: hostname,
		Status:   StatusCreated,
	}

	if err := o.host.StartInstance(ctx, id); err != nil {
		return nil, &CreationError{ID: id, Err: err}
	}
	target.Status = StatusStarted

	address, err := o.host.WaitForAddress(ctx, id)
	if err != nil {
		o.observer.Printf("instance %d address unknown: %v", id, err)
	} else {
		target.Address = address
	}

	return target, nil
}

func (o *Orchestrator) transition(phase Phase) {
	if phase == PhaseDone {
		o.observer.Event(Event{Type: EventPhaseCompleted, Phase: o.phase, Message: "completed"})
	}
	o.observer.Event(Event{Type: EventPhaseStarted, Phase: phase, Message: "entering"})
	o.phase = phase
}

// reportSwallowed logs best-effort failures an attempt accumulated, so
// they are visible to the operator even though they never fail a run.
func (o *Orchestrator) reportSwallowed(attempt *Attempt) {
	if attempt.BestEffortErrs == nil {
		return
	}
	o.observer.Printf("instance %d: optional steps failed: %v", attempt.Target.ID, attempt.BestEffortErrs)
}

func (o *Orchestrator) abort(err error) error {
	o.observer.Event(Event{Type: EventPhaseFailed, Phase: o.phase, Message: err.Error()})
	o.phase = PhaseAborted
	return err
}

// FailedResult returns the step result that failed the attempt, or nil for
// a successful attempt.
func (a *Attempt) FailedResult() *StepResult {
	if a.FailedStep == "" {
		return nil
	}
	for i := range a.Steps {
		if a.Steps[i].Name == a.FailedStep {
			return &a.Steps[i]
		}
	}
	return nil
}
