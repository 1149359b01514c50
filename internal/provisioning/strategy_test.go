package provisioning

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/pvestack/internal/config"
)

func TestRootlessStrategy_Shape(t *testing.T) {
	t.Parallel()

	s := RootlessStrategy(testConfig().App)
	assert.Equal(t, TierUnprivileged, s.Tier)
	assert.Equal(t, "/home/appstack/appstack", s.WorkloadRoot)

	// The workload steps run as the operator user, not root.
	for _, step := range s.Steps {
		switch step.Name {
		case "install compose tool", "clone workload", "start workload":
			assert.Contains(t, step.Script, "su - appstack", step.Name)
		}
	}

	last := s.Steps[len(s.Steps)-1]
	assert.Equal(t, "start workload", last.Name)
	assert.Contains(t, last.Script, "podman-compose up -d")
}

func TestPrivilegedStrategy_Shape(t *testing.T) {
	t.Parallel()

	s := PrivilegedStrategy(testConfig().App)
	assert.Equal(t, TierPrivileged, s.Tier)
	assert.Equal(t, "/opt/appstack", s.WorkloadRoot)

	last := s.Steps[len(s.Steps)-1]
	assert.Equal(t, "start workload", last.Name)
	assert.Contains(t, last.Script, "docker-compose up -d")
}

func TestStrategies_CriticalityAssignments(t *testing.T) {
	t.Parallel()

	bestEffort := map[string]bool{
		"install runtime helpers": true,
		"enable user lingering":   true,
		"enable runtime service":  true,
	}

	for _, s := range []Strategy{RootlessStrategy(testConfig().App), PrivilegedStrategy(testConfig().App)} {
		for _, step := range s.Steps {
			want := Critical
			if bestEffort[step.Name] {
				want = BestEffort
			}
			assert.Equal(t, want, step.Criticality, "%s / %s", s.Name, step.Name)
		}
	}
}

func TestCloneOrPull_Idempotent(t *testing.T) {
	t.Parallel()

	script := cloneOrPull(testConfig().App, "/opt/appstack")
	assert.Contains(t, script, "if [ -d /opt/appstack/.git ]")
	assert.Contains(t, script, "git -C /opt/appstack pull --ff-only")
	assert.Contains(t, script, "git clone https://github.com/example/appstack.git /opt/appstack")
}

func TestCloneOrPull_BranchPinned(t *testing.T) {
	t.Parallel()

	app := testConfig().App
	app.Branch = "release-2.1"
	script := cloneOrPull(app, "/opt/appstack")
	assert.Contains(t, script, "git clone -b release-2.1")
}

func TestUpdateSteps_TierPairing(t *testing.T) {
	t.Parallel()

	app := testConfig().App

	rootless := UpdateSteps(app, &Target{ID: 110, Tier: TierUnprivileged, WorkloadRoot: "/home/appstack/appstack"})
	require.Len(t, rootless, 3)
	assert.Equal(t, "check workload present", rootless[0].Name)
	assert.Contains(t, rootless[0].Script, "test -d /home/appstack/appstack/.git")
	assert.Contains(t, rootless[1].Script, "su - appstack")
	assert.Contains(t, rootless[2].Script, "podman-compose pull")

	privileged := UpdateSteps(app, &Target{ID: 111, Tier: TierPrivileged, WorkloadRoot: "/opt/appstack"})
	require.Len(t, privileged, 3)
	assert.Contains(t, privileged[2].Script, "docker-compose pull")
	for _, step := range privileged {
		assert.False(t, strings.Contains(step.Script, "su - "), step.Name)
	}
}

func TestUpdateSteps_ComposeDirRespected(t *testing.T) {
	t.Parallel()

	app := config.AppConfig{Name: "appstack", RepoURL: "https://example.com/r.git", ComposeDir: "deploy"}
	steps := UpdateSteps(app, &Target{ID: 111, Tier: TierPrivileged, WorkloadRoot: "/opt/r"})
	assert.Contains(t, steps[2].Script, "cd /opt/r/deploy")
}
