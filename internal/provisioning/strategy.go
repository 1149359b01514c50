package provisioning

import (
	"fmt"
	"path"

	"github.com/imamik/pvestack/internal/config"
	"github.com/imamik/pvestack/internal/util/naming"
)

// Strategy is an ordered installation plan for one privilege tier.
type Strategy struct {
	Name  string
	Tier  PrivilegeTier
	Steps []Step

	// WorkloadRoot is where the strategy places the workload checkout.
	WorkloadRoot string
}

// RootlessStrategy installs a rootless container runtime and starts the
// workload under a dedicated unprivileged user's home directory.
func RootlessStrategy(app config.AppConfig) Strategy {
	user := naming.OperatorUser(app.Name)
	repo := app.RepoName()
	root := path.Join("/home", user, repo)
	composeDir := path.Join(root, app.ComposeDir)

	return Strategy{
		Name:         "rootless install",
		Tier:         TierUnprivileged,
		WorkloadRoot: root,
		Steps: []Step{
			{
				Name:        "install runtime",
				Criticality: Critical,
				Script: "export DEBIAN_FRONTEND=noninteractive; " +
					"apt-get update -qq && apt-get install -y podman uidmap python3-pip git",
			},
			{
				Name:        "install runtime helpers",
				Criticality: BestEffort,
				Script: "export DEBIAN_FRONTEND=noninteractive; " +
					"apt-get install -y slirp4netns fuse-overlayfs catatonit",
			},
			{
				Name:        "create operator user",
				Criticality: Critical,
				Script: fmt.Sprintf(
					"id -u %[1]s >/dev/null 2>&1 || useradd -m -s /bin/bash %[1]s; "+
						"printf '%[1]s ALL=(ALL) NOPASSWD:ALL\\n' > /etc/sudoers.d/%[1]s && chmod 0440 /etc/sudoers.d/%[1]s",
					user),
			},
			{
				Name:        "enable user lingering",
				Criticality: BestEffort,
				Script:      fmt.Sprintf("loginctl enable-linger %s", user),
			},
			{
				Name:        "install compose tool",
				Criticality: Critical,
				Script:      fmt.Sprintf("su - %s -c 'pip3 install --user --break-system-packages podman-compose'", user),
			},
			{
				Name:        "clone workload",
				Criticality: Critical,
				Script:      asUser(user, cloneOrPull(app, root)),
			},
			{
				Name:        "start workload",
				Criticality: Critical,
				Script:      asUser(user, fmt.Sprintf("cd %s && podman-compose up -d", composeDir)),
			},
		},
	}
}

// PrivilegedStrategy installs the native container runtime and starts the
// workload from a system-wide installation path.
func PrivilegedStrategy(app config.AppConfig) Strategy {
	user := naming.OperatorUser(app.Name)
	repo := app.RepoName()
	root := path.Join("/opt", repo)
	composeDir := path.Join(root, app.ComposeDir)

	return Strategy{
		Name:         "privileged install",
		Tier:         TierPrivileged,
		WorkloadRoot: root,
		Steps: []Step{
			{
				Name:        "install runtime",
				Criticality: Critical,
				Script: "export DEBIAN_FRONTEND=noninteractive; " +
					"apt-get update -qq && apt-get install -y docker.io docker-compose git",
			},
			{
				Name:        "enable runtime service",
				Criticality: BestEffort,
				Script:      "systemctl enable --now docker",
			},
			{
				Name:        "create operator user",
				Criticality: Critical,
				Script: fmt.Sprintf(
					"id -u %[1]s >/dev/null 2>&1 || useradd -m -s /bin/bash %[1]s; "+
						"usermod -aG docker %[1]s; "+
						"printf '%[1]s ALL=(ALL) NOPASSWD:ALL\\n' > /etc/sudoers.d/%[1]s && chmod 0440 /etc/sudoers.d/%[1]s",
					user),
			},
			{
				Name:        "clone workload",
				Criticality: Critical,
				Script:      cloneOrPull(app, root),
			},
			{
				Name:        "start workload",
				Criticality: Critical,
				Script:      fmt.Sprintf("cd %s && docker-compose up -d", composeDir),
			},
		},
	}
}

// UpdateSteps builds the pull-latest-and-restart plan for a target. The
// tooling pairing follows the target's privilege tier.
func UpdateSteps(app config.AppConfig, target *Target) []Step {
	composeDir := path.Join(target.WorkloadRoot, app.ComposeDir)
	user := naming.OperatorUser(app.Name)

	pull := fmt.Sprintf("git -C %s pull --ff-only", target.WorkloadRoot)
	var refresh string
	if target.Tier == TierUnprivileged {
		refresh = fmt.Sprintf("cd %s && podman-compose pull && podman-compose up -d", composeDir)
		pull = asUser(user, pull)
		refresh = asUser(user, refresh)
	} else {
		refresh = fmt.Sprintf("cd %s && docker-compose pull && docker-compose up -d", composeDir)
	}

	return []Step{
		{
			Name:        "check workload present",
			Criticality: Critical,
			Script:      fmt.Sprintf("test -d %s/.git", target.WorkloadRoot),
		},
		{
			Name:        "pull workload",
			Criticality: Critical,
			Script:      pull,
		},
		{
			Name:        "refresh workload",
			Criticality: Critical,
			Script:      refresh,
		},
	}
}

// cloneOrPull produces the idempotent clone-or-update script: a checkout
// that already exists is pulled, not treated as a failure.
func cloneOrPull(app config.AppConfig, root string) string {
	clone := fmt.Sprintf("git clone %s %s", app.RepoURL, root)
	if app.Branch != "" {
		clone = fmt.Sprintf("git clone -b %s %s %s", app.Branch, app.RepoURL, root)
	}
	return fmt.Sprintf("if [ -d %[1]s/.git ]; then git -C %[1]s pull --ff-only; else %[2]s; fi", root, clone)
}

// asUser wraps a script to run as the operator user via a login shell.
func asUser(user, script string) string {
	return fmt.Sprintf("su - %s -c '%s'", user, script)
}
