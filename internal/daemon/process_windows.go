//go:build windows

package daemon

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

const (
	detachedProcess = 0x00000008
	stillActive     = 259
)

// IsAlive reports whether pid is a process that has not exited yet.
func (OSProcess) IsAlive(pid int) bool {
	if pid <= 0 {
		return false
	}

	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(pid))
	if err != nil {
		return errors.Is(err, windows.ERROR_ACCESS_DENIED)
	}
	defer windows.CloseHandle(h)

	var code uint32
	if err := windows.GetExitCodeProcess(h, &code); err != nil {
		return true
	}
	return code == stillActive
}

// SpawnDetached starts exe without a console in a new process group.
func (OSProcess) SpawnDetached(exe string, args []string, logPath string) (int, error) {
	logFile, err := OpenLogFile(logPath, MaxLogSize)
	if err != nil {
		return 0, err
	}
	defer logFile.Close()

	cmd := exec.Command(exe, args...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_NEW_PROCESS_GROUP | detachedProcess,
	}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start daemon: %w", err)
	}

	pid := cmd.Process.Pid
	cmd.Process.Release()
	return pid, nil
}

// Terminate sets the daemon's stop event, which its signal handler turns
// into SIGTERM. A detached process has no console to receive CTRL_BREAK,
// so when the event does not exist (an older daemon, or one that has not
// finished starting) the error is returned and Controller.Stop falls back
// to Kill.
func (OSProcess) Terminate(pid int) error {
	name, err := windows.UTF16PtrFromString(stopEventName(pid))
	if err != nil {
		return err
	}
	event, err := windows.OpenEvent(windows.EVENT_MODIFY_STATE, false, name)
	if err != nil {
		return fmt.Errorf("open stop event for PID %d: %w", pid, err)
	}
	defer windows.CloseHandle(event)
	return windows.SetEvent(event)
}

// Kill terminates the process.
func (OSProcess) Kill(pid int) error {
	process, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	defer process.Release()
	return process.Kill()
}
