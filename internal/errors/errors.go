package errors

import (
	"context"
	"errors"
	"os/exec"
	"syscall"

	"github.com/saltyorg/sb-exec/internal/executor"
	"github.com/saltyorg/sb-exec/internal/signals"
)

// ExitInterrupted is the standard exit code for SIGINT (128 + 2).
const ExitInterrupted = 130

// IsInterruptError checks if an error is due to user interrupt (Ctrl+C).
// It detects context cancellation and a child terminated by SIGINT or SIGKILL.
// Error text is never inspected since it may carry the child's own output.
func IsInterruptError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			return status.Signal() == syscall.SIGINT || status.Signal() == syscall.SIGKILL
		}
	}
	return false
}

// ExitCode maps an error returned by a command to the process exit code.
// A failed child propagates its own status so scripts can tell failures apart.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var execErr *executor.ExecError
	if errors.As(err, &execErr) && execErr.Code > 0 {
		return execErr.Code
	}
	if IsInterruptError(err) {
		return ExitInterrupted
	}
	return 1
}

// HandleInterruptError checks if the error is from a user interrupt and triggers shutdown via signal manager.
// Returns true if it was an interrupt error and shutdown was initiated.
func HandleInterruptError(err error) bool {
	if IsInterruptError(err) {
		signals.GetGlobalManager().Shutdown(ExitInterrupted)
		return true
	}
	return false
}
