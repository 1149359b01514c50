package provisioning

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/pvestack/internal/platform/proxmox"
)

// scriptedExec fails the steps named in failures with the given exit code
// and succeeds everywhere else.
type scriptedExec struct {
	failures map[string]int
	ran      []string
}

func (s *scriptedExec) RunStep(_ context.Context, _ int, step Step) StepResult {
	s.ran = append(s.ran, step.Name)
	if code, ok := s.failures[step.Name]; ok {
		return StepResult{Name: step.Name, OK: false, ExitCode: code}
	}
	return StepResult{Name: step.Name, OK: true}
}

func TestRunStep_ExitCodeClassification(t *testing.T) {
	t.Parallel()

	mock := &proxmox.MockClient{
		ExecFunc: func(_ context.Context, _ int, _ string) (proxmox.ExecResult, error) {
			return proxmox.ExecResult{ExitCode: 127, Stderr: "sh: podman: not found\n"}, nil
		},
	}
	exec := &RemoteStepExecutor{Exec: mock, Observer: NewConsoleObserver()}

	result := exec.RunStep(context.Background(), 110, Step{Name: "install runtime", Script: "podman --version"})
	assert.False(t, result.OK)
	assert.Equal(t, 127, result.ExitCode)
}

func TestRunStep_TransportFailure(t *testing.T) {
	t.Parallel()

	mock := &proxmox.MockClient{
		ExecFunc: func(_ context.Context, _ int, _ string) (proxmox.ExecResult, error) {
			return proxmox.ExecResult{}, errors.New("connection reset")
		},
	}
	exec := &RemoteStepExecutor{Exec: mock, Observer: NewConsoleObserver()}

	result := exec.RunStep(context.Background(), 110, Step{Name: "clone workload", Script: "git clone"})
	assert.False(t, result.OK)
	assert.Equal(t, -1, result.ExitCode)
}

func TestRunStep_TimeoutIsFailure(t *testing.T) {
	t.Parallel()

	mock := &proxmox.MockClient{
		ExecFunc: func(ctx context.Context, _ int, _ string) (proxmox.ExecResult, error) {
			<-ctx.Done()
			return proxmox.ExecResult{}, ctx.Err()
		},
	}
	exec := &RemoteStepExecutor{Exec: mock, StepTimeout: 5 * time.Millisecond, Observer: NewConsoleObserver()}

	result := exec.RunStep(context.Background(), 110, Step{Name: "install runtime", Script: "sleep 600"})
	assert.False(t, result.OK)
	assert.Equal(t, -1, result.ExitCode)
}

func TestRunStrategy_BestEffortFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	exec := &scriptedExec{failures: map[string]int{
		"install runtime helpers": 100,
		"enable user lingering":   1,
	}}
	target := &Target{ID: 110, Tier: TierUnprivileged}

	attempt := runStrategy(context.Background(), exec, NewConsoleObserver(),
		target, RootlessStrategy(testConfig().App))

	assert.True(t, attempt.Succeeded())
	assert.Empty(t, attempt.FailedStep)

	var merr *multierror.Error
	require.ErrorAs(t, attempt.BestEffortErrs, &merr)
	assert.Len(t, merr.Errors, 2)

	// Every step still ran.
	assert.Equal(t, len(RootlessStrategy(testConfig().App).Steps), len(exec.ran))
}

func TestRunStrategy_CriticalFailureStopsTheAttempt(t *testing.T) {
	t.Parallel()

	exec := &scriptedExec{failures: map[string]int{"clone workload": 128}}
	target := &Target{ID: 110, Tier: TierUnprivileged}

	attempt := runStrategy(context.Background(), exec, NewConsoleObserver(),
		target, RootlessStrategy(testConfig().App))

	assert.False(t, attempt.Succeeded())
	assert.Equal(t, "clone workload", attempt.FailedStep)

	failed := attempt.FailedResult()
	require.NotNil(t, failed)
	assert.Equal(t, 128, failed.ExitCode)

	// Nothing after the failing step ran.
	assert.Equal(t, "clone workload", exec.ran[len(exec.ran)-1])
}
