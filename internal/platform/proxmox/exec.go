package proxmox

import (
	"context"
	"fmt"
	"strings"
)

// Exec runs a script inside a container via `pct exec` on the host. The
// script's exit code is reported in the result; an error is returned only
// when the host shell itself is unreachable.
func (c *RealClient) Exec(ctx context.Context, id int, script string) (ExecResult, error) {
	if c.shell == nil {
		return ExecResult{}, fmt.Errorf("no host shell configured for exec")
	}

	command := fmt.Sprintf("pct exec %d -- sh -lc %s", id, shellQuote(script))
	output, exitCode, err := c.shell.RunCommand(ctx, command)
	if err != nil {
		return ExecResult{}, fmt.Errorf("failed to exec in instance %d: %w", id, err)
	}

	// pct merges the command's streams; everything arrives as stdout.
	return ExecResult{
		ExitCode: exitCode,
		Stdout:   output,
	}, nil
}

// shellQuote single-quotes s for safe interpolation into a shell command.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
