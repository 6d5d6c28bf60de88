//go:build !windows

package daemon

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// IsAlive sends signal 0. EPERM still means the process exists.
func (OSProcess) IsAlive(pid int) bool {
	if pid <= 0 {
		return false
	}

	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}

// SpawnDetached starts exe in its own session so it survives the terminal.
func (OSProcess) SpawnDetached(exe string, args []string, logPath string) (int, error) {
	logFile, err := OpenLogFile(logPath, MaxLogSize)
	if err != nil {
		return 0, err
	}
	defer logFile.Close()

	devNull, err := os.Open(os.DevNull)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", os.DevNull, err)
	}
	defer devNull.Close()

	cmd := exec.Command(exe, args...)
	cmd.Stdin = devNull
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start daemon: %w", err)
	}

	// Reap the child if it exits while we are still around.
	go cmd.Wait()

	return cmd.Process.Pid, nil
}

// Terminate sends SIGTERM.
func (OSProcess) Terminate(pid int) error {
	return unix.Kill(pid, unix.SIGTERM)
}

// Kill sends SIGKILL.
func (OSProcess) Kill(pid int) error {
	return unix.Kill(pid, unix.SIGKILL)
}
