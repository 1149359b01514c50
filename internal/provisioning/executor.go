package provisioning

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/imamik/pvestack/internal/platform/proxmox"
)

// StepExecutor runs a single step inside an instance and classifies its
// outcome. It never retries; retry policy belongs to callers.
type StepExecutor interface {
	RunStep(ctx context.Context, id int, step Step) StepResult
}

// RemoteStepExecutor executes steps through the platform's remote exec
// path, imposing a fixed timeout per step.
type RemoteStepExecutor struct {
	Exec        proxmox.RemoteExecutor
	StepTimeout time.Duration
	Observer    Observer
}

// RunStep executes one step. A non-zero exit, a transport failure, and a
// timeout all classify as a failed result; the distinction is carried in
// the exit code (-1 for anything that never produced one).
func (e *RemoteStepExecutor) RunStep(ctx context.Context, id int, step Step) StepResult {
	if e.StepTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.StepTimeout)
		defer cancel()
	}

	e.Observer.Event(Event{Type: EventStepStarted, Instance: id, Message: step.Name})

	result, err := e.Exec.Exec(ctx, id, step.Script)
	if err != nil {
		e.Observer.Printf("step %q transport failure on instance %d: %v", step.Name, id, err)
		return StepResult{Name: step.Name, OK: false, ExitCode: -1}
	}

	if result.ExitCode != 0 {
		return StepResult{Name: step.Name, OK: false, ExitCode: result.ExitCode}
	}

	e.Observer.Event(Event{Type: EventStepCompleted, Instance: id, Message: step.Name})
	return StepResult{Name: step.Name, OK: true}
}

// runStrategy executes a strategy's steps in order against the target.
// Best-effort failures are swallowed into the attempt's error log; the
// first critical failure ends the attempt.
func runStrategy(ctx context.Context, exec StepExecutor, observer Observer, target *Target, strategy Strategy) *Attempt {
	observer = observer.WithFields(map[string]string{"strategy": strategy.Name})
	attempt := &Attempt{Target: target}

	for _, step := range strategy.Steps {
		result := exec.RunStep(ctx, target.ID, step)
		attempt.Steps = append(attempt.Steps, result)

		if result.OK {
			continue
		}

		if step.Criticality == BestEffort {
			observer.Event(Event{
				Type:     EventStepSwallowed,
				Instance: target.ID,
				Message:  fmt.Sprintf("%s (exit %d)", step.Name, result.ExitCode),
			})
			attempt.BestEffortErrs = multierror.Append(attempt.BestEffortErrs,
				&StepError{Step: step.Name, ID: target.ID, ExitCode: result.ExitCode})
			continue
		}

		observer.Event(Event{
			Type:     EventStepFailed,
			Instance: target.ID,
			Message:  fmt.Sprintf("%s (exit %d)", step.Name, result.ExitCode),
		})
		attempt.FailedStep = step.Name
		break
	}

	return attempt
}
