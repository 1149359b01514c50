package provisioning

import (
	"errors"
	"fmt"
)

// ErrNotProvisioned is returned by update operations when no target is
// known or the workload directory is missing on the target.
var ErrNotProvisioned = errors.New("workload is not provisioned")

// CreationError wraps a failure to create or start an instance.
type CreationError struct {
	ID  int
	Err error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("failed to bring up instance %d: %v", e.ID, e.Err)
}

func (e *CreationError) Unwrap() error {
	return e.Err
}

// StepError reports a failed critical install step on a specific instance.
type StepError struct {
	Step     string
	ID       int
	ExitCode int
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %q failed on instance %d (exit %d)", e.Step, e.ID, e.ExitCode)
}
