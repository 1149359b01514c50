package proxmox

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/imamik/pvestack/internal/util/retry"
)

// CreateInstance creates an LXC container and waits for the creation task
// to finish. Invalid-parameter responses are not retried.
func (c *RealClient) CreateInstance(ctx context.Context, opts InstanceCreateOpts) error {
	form := url.Values{}
	form.Set("vmid", strconv.Itoa(opts.ID))
	form.Set("hostname", opts.Hostname)
	form.Set("ostemplate", opts.OSTemplate)
	form.Set("cores", strconv.Itoa(opts.Cores))
	form.Set("memory", strconv.Itoa(opts.MemoryMB))
	form.Set("rootfs", fmt.Sprintf("%s:%d", opts.Storage, opts.DiskGB))
	form.Set("net0", fmt.Sprintf("name=eth0,bridge=%s,ip=dhcp", opts.Bridge))
	form.Set("start", "0")

	if opts.Unprivileged {
		form.Set("unprivileged", "1")
		// keyctl is required for rootless container runtimes inside LXC
		if opts.Nesting {
			form.Set("features", "nesting=1,keyctl=1")
		}
	} else {
		form.Set("unprivileged", "0")
		if opts.Nesting {
			form.Set("features", "nesting=1")
		}
	}

	if opts.SSHPublicKey != "" {
		form.Set("ssh-public-keys", opts.SSHPublicKey)
	}

	var upid string
	var landedEarlier bool
	err := retry.WithExponentialBackoff(ctx, func() error {
		createErr := c.do(ctx, http.MethodPost, fmt.Sprintf("/nodes/%s/lxc", c.node), form, &upid)
		if createErr != nil {
			// The POST is not idempotent: a request that timed out
			// client-side may have landed on the node, and the repeat then
			// reports the freshly allocated id as taken. That is success,
			// not a collision.
			if isAlreadyTaken(createErr, opts.ID) {
				landedEarlier = true
				return nil
			}
			if isInvalidParameter(createErr) {
				return retry.Fatal(createErr)
			}
			return createErr
		}
		return nil
	}, retry.WithMaxRetries(c.timeouts.RetryMaxAttempts), retry.WithInitialDelay(c.timeouts.RetryInitialDelay))
	if err != nil {
		return fmt.Errorf("failed to create instance %d: %w", opts.ID, err)
	}
	if landedEarlier {
		return nil
	}

	if err := c.waitForTask(ctx, upid); err != nil {
		return fmt.Errorf("instance %d creation task failed: %w", opts.ID, err)
	}
	return nil
}

// StartInstance starts a container and waits for the start task to finish.
func (c *RealClient) StartInstance(ctx context.Context, id int) error {
	var upid string
	path := fmt.Sprintf("/nodes/%s/lxc/%d/status/start", c.node, id)
	if err := c.do(ctx, http.MethodPost, path, url.Values{}, &upid); err != nil {
		return fmt.Errorf("failed to start instance %d: %w", id, err)
	}
	if err := c.waitForTask(ctx, upid); err != nil {
		return fmt.Errorf("instance %d start task failed: %w", id, err)
	}
	return nil
}

// InstanceStatus returns the container's current lifecycle state.
// Query failures are reported as StateUnknown alongside the error.
func (c *RealClient) InstanceStatus(ctx context.Context, id int) (InstanceState, error) {
	var status struct {
		Status string `json:"status"`
	}
	path := fmt.Sprintf("/nodes/%s/lxc/%d/status/current", c.node, id)
	if err := c.do(ctx, http.MethodGet, path, nil, &status); err != nil {
		return StateUnknown, fmt.Errorf("failed to query instance %d status: %w", id, err)
	}

	switch status.Status {
	case "running":
		return StateRunning, nil
	case "stopped":
		return StateStopped, nil
	default:
		return StateUnknown, nil
	}
}

// DestroyInstance deletes a container and its volumes.
func (c *RealClient) DestroyInstance(ctx context.Context, id int) error {
	var upid string
	path := fmt.Sprintf("/nodes/%s/lxc/%d?purge=1&destroy-unreferenced-disks=1", c.node, id)
	if err := c.do(ctx, http.MethodDelete, path, nil, &upid); err != nil {
		return fmt.Errorf("failed to destroy instance %d: %w", id, err)
	}
	if err := c.waitForTask(ctx, upid); err != nil {
		return fmt.Errorf("instance %d destroy task failed: %w", id, err)
	}
	return nil
}

// WaitForAddress polls the container's network interfaces until a
// non-loopback IPv4 address appears. The poll is bounded; exhaustion
// surfaces retry.ErrNotReady rather than blocking forever.
func (c *RealClient) WaitForAddress(ctx context.Context, id int) (string, error) {
	var address string
	path := fmt.Sprintf("/nodes/%s/lxc/%d/interfaces", c.node, id)

	err := retry.Poll(ctx, c.timeouts.PollInterval, c.timeouts.PollMaxAttempts, func(ctx context.Context) (bool, error) {
		var ifaces []struct {
			Name string `json:"name"`
			Inet string `json:"inet"`
		}
		if err := c.do(ctx, http.MethodGet, path, nil, &ifaces); err != nil {
			// The endpoint errors until the guest agent is up; keep polling.
			return false, nil
		}
		for _, iface := range ifaces {
			if iface.Name == "lo" || iface.Inet == "" {
				continue
			}
			address = strings.SplitN(iface.Inet, "/", 2)[0]
			return true, nil
		}
		return false, nil
	})
	if err != nil {
		return "", fmt.Errorf("instance %d has no address: %w", id, err)
	}
	return address, nil
}

// waitForTask polls a task UPID until it leaves the running state, then
// checks its exit status.
func (c *RealClient) waitForTask(ctx context.Context, upid string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.TaskWait)
	defer cancel()

	path := fmt.Sprintf("/nodes/%s/tasks/%s/status", c.node, url.PathEscape(upid))
	var exitStatus string

	err := retry.Poll(ctx, c.timeouts.PollInterval, c.timeouts.PollMaxAttempts, func(ctx context.Context) (bool, error) {
		var task struct {
			Status     string `json:"status"`
			ExitStatus string `json:"exitstatus"`
		}
		if err := c.do(ctx, http.MethodGet, path, nil, &task); err != nil {
			return false, err
		}
		if task.Status == "running" {
			return false, nil
		}
		exitStatus = task.ExitStatus
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("task %s did not finish: %w", upid, err)
	}

	if exitStatus != "OK" {
		return fmt.Errorf("task %s failed: %s", upid, exitStatus)
	}
	return nil
}
