// Package process sends termination signals to processes by PID.
package process

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	"github.com/shirou/gopsutil/v3/process"
)

// ErrProcessNotFound means the PID was gone before the signal was sent.
// Acting on an already-exited process is reported, not fatal.
var ErrProcessNotFound = errors.New("process not found")

// ErrPermissionDenied means the OS rejected the signal for lack of
// authority.
var ErrPermissionDenied = errors.New("permission denied")

// Terminate sends SIGTERM to the PID, or SIGKILL when force is set.
// The PID is checked against a fresh process snapshot first so a vanished
// process reports ErrProcessNotFound rather than a raw kill failure.
func Terminate(ctx context.Context, pid int32, force bool) error {
	exists, err := process.PidExistsWithContext(ctx, pid)
	if err == nil && !exists {
		return fmt.Errorf("pid %d: %w", pid, ErrProcessNotFound)
	}

	sig := syscall.SIGTERM
	if force {
		sig = syscall.SIGKILL
	}
	return Signal(pid, sig)
}

// Signal sends an arbitrary signal to the PID, translating OS errors into
// the package's error taxonomy.
func Signal(pid int32, sig syscall.Signal) error {
	err := syscall.Kill(int(pid), sig)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, syscall.ESRCH):
		return fmt.Errorf("pid %d: %w", pid, ErrProcessNotFound)
	case errors.Is(err, syscall.EPERM):
		return fmt.Errorf("pid %d: %w (try running with sudo)", pid, ErrPermissionDenied)
	default:
		return fmt.Errorf("signal pid %d: %w", pid, err)
	}
}
