package util

import (
	"context"
	"errors"
	"fmt"
	"github.com/markusressel/smartfan/internal/ui"
	"os/exec"
	"strings"
	"time"
)

var ErrCommandTimeout = errors.New("command timed out")

// SafeCmdExecution is CmdExecution for executables that pass CheckFilePermissionsForExecution,
// since smartfan usually runs as root.
func SafeCmdExecution(ctx context.Context, executable string, args []string, timeout time.Duration) (string, error) {
	if _, err := CheckFilePermissionsForExecution(executable); err != nil {
		return "", fmt.Errorf("cannot execute %s: %w", executable, err)
	}
	return CmdExecution(ctx, executable, args, timeout)
}

// CmdExecution runs the given executable with the given arguments and returns its standard output.
// A non-zero exit code, a missing executable or exceeding the timeout are reported as errors.
func CmdExecution(ctx context.Context, executable string, args []string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, executable, args...)
	ui.Debug("Executing: %s %s", executable, strings.Join(args, " "))
	out, err := cmd.Output()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		ui.Warning("Command timed out: %s", executable)
		return "", fmt.Errorf("%s: %w after %s", executable, ErrCommandTimeout, timeout)
	}

	if err != nil {
		ui.Warning("Command failed to execute: %s", executable)
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			stderr := strings.TrimSpace(string(exitErr.Stderr))
			if len(stderr) > 0 {
				return "", fmt.Errorf("%s exited with code %d: %s: %w", executable, exitErr.ExitCode(), stderr, err)
			}
			return "", fmt.Errorf("%s exited with code %d: %w", executable, exitErr.ExitCode(), err)
		}
		return "", fmt.Errorf("%s: %w", executable, err)
	}

	strout := string(out)
	strout = strings.Trim(strout, "\n")

	return strout, nil
}
