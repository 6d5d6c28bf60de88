// Package daemon runs the background keystroke monitor and manages its
// lifecycle from the CLI.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/keystr/keystr/internal/logging"
	"github.com/keystr/keystr/internal/storage"
)

// Registry records which process is the running daemon. It is advisory:
// a PID whose process is gone, or a file that cannot be parsed, is removed
// the next time it is read.
type Registry struct {
	path string
	proc Process
}

// NewRegistry creates a registry backed by the PID file at path.
func NewRegistry(path string, proc Process) *Registry {
	return &Registry{
		path: path,
		proc: proc,
	}
}

// Path returns the PID file path.
func (r *Registry) Path() string {
	return r.path
}

// RecordSelf writes pid, replacing whatever was recorded before.
func (r *Registry) RecordSelf(pid int) error {
	if err := storage.EnsureDirectory(filepath.Dir(r.path)); err != nil {
		return err
	}

	if err := os.WriteFile(r.path, []byte(strconv.Itoa(pid)), 0600); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// CurrentRunningPID returns the recorded PID if that process is alive.
func (r *Registry) CurrentRunningPID() (int, bool) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn("failed to read PID file", logging.KeyPath, r.path, logging.KeyError, err)
		}
		return 0, false
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		logging.DebugLog("removing unparsable PID file", logging.KeyPath, r.path)
		r.Clear()
		return 0, false
	}

	if !r.proc.IsAlive(pid) {
		logging.DebugLog("removing stale PID file", logging.KeyPath, r.path, logging.KeyPID, pid)
		r.Clear()
		return 0, false
	}

	return pid, true
}

// IsRunning reports whether a live daemon is recorded.
func (r *Registry) IsRunning() bool {
	_, ok := r.CurrentRunningPID()
	return ok
}

// Clear removes the PID file. A missing file is not an error, and other
// failures are only logged.
func (r *Registry) Clear() {
	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		logging.Warn("failed to remove PID file", logging.KeyPath, r.path, logging.KeyError, err)
	}
}
