package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	cmd := Root()

	require.NotNil(t, cmd)
	assert.Equal(t, "pvestack", cmd.Use)
	assert.Equal(t, "Provision application stacks into Proxmox VE containers", cmd.Short)
}

func TestRoot_DefaultsToCreate(t *testing.T) {
	cmd := Root()

	// A bare invocation provisions instead of printing help.
	require.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Flags().Lookup("config"))
	assert.NotNil(t, cmd.Flags().Lookup("interactive"))
	assert.NotNil(t, cmd.Flags().Lookup("ssh-pubkey"))
}

func TestRoot_HasSubcommands(t *testing.T) {
	cmd := Root()

	expectedSubcommands := []string{
		"create",
		"update",
		"version",
		"completion",
	}

	subcommands := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}

	for _, expected := range expectedSubcommands {
		assert.True(t, subcommands[expected], "Expected subcommand %s not found", expected)
	}
}

func TestCreate_Flags(t *testing.T) {
	cmd := Create()

	assert.NotNil(t, cmd.Flags().Lookup("config"))
	assert.NotNil(t, cmd.Flags().Lookup("interactive"))
	assert.NotNil(t, cmd.Flags().Lookup("ssh-pubkey"))
}

func TestUpdate_Flags(t *testing.T) {
	cmd := Update()

	assert.NotNil(t, cmd.Flags().Lookup("config"))
	assert.NotNil(t, cmd.Flags().Lookup("ctid"))
	assert.NotNil(t, cmd.Flags().Lookup("fallback-ctid"))
}

func TestCtidFromEnv(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "unset", value: "", want: 0},
		{name: "valid", value: "110", want: 110},
		{name: "malformed", value: "one-ten", want: 0},
		{name: "negative", value: "-3", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("PVESTACK_CTID", tt.value)
			}
			assert.Equal(t, tt.want, ctidFromEnv("PVESTACK_CTID"))
		})
	}
}
