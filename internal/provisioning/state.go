package provisioning

// PrivilegeTier is the privilege level an instance's container runtime
// runs with.
type PrivilegeTier string

const (
	// TierUnprivileged runs the workload under a rootless runtime inside
	// an unprivileged container.
	TierUnprivileged PrivilegeTier = "unprivileged"
	// TierPrivileged runs the workload under the native runtime inside a
	// privileged container.
	TierPrivileged PrivilegeTier = "privileged"
)

// TargetStatus is the lifecycle status of a provisioning target.
type TargetStatus string

const (
	StatusCreated          TargetStatus = "created"
	StatusStarted          TargetStatus = "started"
	StatusInstallFailed    TargetStatus = "install-failed"
	StatusInstallSucceeded TargetStatus = "install-succeeded"
)

// Target is an instance the orchestrator provisioned. It is created right
// after successful instance creation and mutated only by the orchestrator
// as install steps complete. Targets are never destroyed automatically
// unless the cleanup policy is enabled.
type Target struct {
	ID           int
	Tier         PrivilegeTier
	Hostname     string
	WorkloadRoot string
	Address      string
	Status       TargetStatus
}

// StepResult records the outcome of a single named install step.
type StepResult struct {
	Name     string
	OK       bool
	ExitCode int
}

// Attempt is one run of an installation strategy against a target. It is
// discarded once its outcome is recorded into the target and the decision
// log; only the ordered step results survive for reporting.
type Attempt struct {
	Target *Target
	Steps  []StepResult

	// FailedStep names the critical step that failed the attempt; empty
	// on success.
	FailedStep string

	// BestEffortErrs aggregates swallowed best-effort failures. They never
	// fail the attempt.
	BestEffortErrs error
}

// Succeeded reports whether every critical step of the attempt passed.
func (a *Attempt) Succeeded() bool {
	return a.FailedStep == ""
}

// OrchestrationResult is the outcome of one orchestration run. It is the
// only state carried into later update invocations; a fresh process has no
// memory of past allocations.
type OrchestrationResult struct {
	Primary       *Target
	Fallback      *Target
	Authoritative *Target
}

// Phase is a state of the orchestrator's state machine.
type Phase string

const (
	PhaseInit               Phase = "init"
	PhaseAllocatingPrimary  Phase = "allocating-primary"
	PhaseInstallingPrimary  Phase = "installing-primary"
	PhaseAllocatingFallback Phase = "allocating-fallback"
	PhaseInstallingFallback Phase = "installing-fallback"
	PhaseDone               Phase = "done"
	PhaseAborted            Phase = "aborted"
)
