package handlers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/pvestack/internal/platform/proxmox"
	"github.com/imamik/pvestack/internal/provisioning"
)

func TestUpdate_PrefersFallback(t *testing.T) {
	var execIDs []int
	mock := &proxmox.MockClient{
		ExecFunc: func(_ context.Context, id int, _ string) (proxmox.ExecResult, error) {
			execIDs = append(execIDs, id)
			return proxmox.ExecResult{ExitCode: 0}, nil
		},
	}
	installMockHost(t, mock)

	err := Update(context.Background(), UpdateOptions{
		ConfigPath:   writeTestConfig(t),
		CTID:         110,
		FallbackCTID: 111,
	})
	require.NoError(t, err)

	require.NotEmpty(t, execIDs)
	for _, id := range execIDs {
		assert.Equal(t, 111, id)
	}
}

func TestUpdate_PrimaryOnlyUsesRootlessTooling(t *testing.T) {
	var scripts []string
	mock := &proxmox.MockClient{
		ExecFunc: func(_ context.Context, _ int, script string) (proxmox.ExecResult, error) {
			scripts = append(scripts, script)
			return proxmox.ExecResult{ExitCode: 0}, nil
		},
	}
	installMockHost(t, mock)

	err := Update(context.Background(), UpdateOptions{
		ConfigPath: writeTestConfig(t),
		CTID:       110,
	})
	require.NoError(t, err)

	require.Len(t, scripts, 3)
	assert.Contains(t, scripts[2], "podman-compose")
}

func TestUpdate_NoKnownTarget(t *testing.T) {
	err := Update(context.Background(), UpdateOptions{
		ConfigPath: writeTestConfig(t),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, provisioning.ErrNotProvisioned)
}

func TestUpdate_MissingWorkload(t *testing.T) {
	mock := &proxmox.MockClient{
		ExecFunc: func(_ context.Context, _ int, script string) (proxmox.ExecResult, error) {
			if strings.Contains(script, "test -d") {
				return proxmox.ExecResult{ExitCode: 1}, nil
			}
			return proxmox.ExecResult{ExitCode: 0}, nil
		},
	}
	installMockHost(t, mock)

	err := Update(context.Background(), UpdateOptions{
		ConfigPath: writeTestConfig(t),
		CTID:       110,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, provisioning.ErrNotProvisioned)
}
