package daemon

import (
	"fmt"
	"os"
	"time"

	"github.com/keystr/keystr/internal/config"
	"github.com/keystr/keystr/internal/errors"
	"github.com/keystr/keystr/internal/logging"
	"github.com/keystr/keystr/internal/storage"
)

// stopPollInterval is how often Stop checks whether the daemon has exited.
const stopPollInterval = 100 * time.Millisecond

// startPollInterval is how often Start checks whether the daemon is ready.
const startPollInterval = 100 * time.Millisecond

// Status represents the daemon status.
type Status struct {
	Running   bool      `json:"running"`
	PID       int       `json:"pid,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	StartedAt time.Time `json:"started_at,omitempty"`
	Uptime    string    `json:"uptime,omitempty"`
}

// Controller starts, stops and inspects the daemon from the CLI process.
type Controller struct {
	paths    storage.Paths
	proc     Process
	registry *Registry
	now      func() time.Time
	sleep    func(time.Duration)
}

// NewController creates a controller. A nil proc uses the host backend.
func NewController(paths storage.Paths, proc Process) *Controller {
	if proc == nil {
		proc = NewOSProcess()
	}
	return &Controller{
		paths:    paths,
		proc:     proc,
		registry: NewRegistry(paths.PIDFile(), proc),
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// Registry returns the PID registry.
func (c *Controller) Registry() *Registry {
	return c.registry
}

// IsRunning reports whether a live daemon is registered.
func (c *Controller) IsRunning() bool {
	return c.registry.IsRunning()
}

// Status returns the current daemon status.
func (c *Controller) Status() *Status {
	status := &Status{}

	pid, ok := c.registry.CurrentRunningPID()
	if !ok {
		return status
	}

	status.Running = true
	status.PID = pid

	if state, err := ReadState(c.paths.StateFile()); err == nil {
		status.SessionID = state.SessionID
		status.StartedAt = state.StartedAt
		status.Uptime = formatUptime(c.now().Sub(state.StartedAt))
	}

	return status
}

// Start spawns exe with args as a detached daemon and returns its PID once
// the daemon has registered and its keyboard hook is installed. It gives up
// when the spawned process exits or the startup and hook timeouts elapse.
func (c *Controller) Start(exe string, args []string) (int, error) {
	if pid, ok := c.registry.CurrentRunningPID(); ok {
		return pid, errors.NewUserErrorFrom(errors.ErrAlreadyRunning,
			fmt.Sprintf("monitor is already running (PID %d)", pid), "")
	}

	if err := c.paths.Ensure(); err != nil {
		return 0, errors.NewSystemErrorWithOp("start", "failed to create keystr directories", err)
	}

	logPath := c.paths.LogFile()
	spawned, err := c.proc.SpawnDetached(exe, args, logPath)
	if err != nil {
		return 0, errors.NewSystemErrorWithOp("start", "failed to spawn daemon", err)
	}
	logging.DebugLog("spawned daemon", logging.KeyPID, spawned)

	deadline := c.now().Add(config.Global.Daemon.StartupWait + config.Global.Daemon.HookTimeout)
	for {
		if pid, ok := c.ready(); ok {
			return pid, nil
		}
		if !c.proc.IsAlive(spawned) || !c.now().Before(deadline) {
			break
		}
		c.sleep(startPollInterval)
	}

	if msg := LastLogError(logPath); msg != "" {
		return 0, errors.NewSystemErrorWithOp("start", "daemon failed to start", fmt.Errorf("%s", msg))
	}
	return 0, errors.NewSystemErrorWithOp("start",
		fmt.Sprintf("daemon failed to start (check logs: %s)", logPath), nil)
}

// ready reports the PID of a registered daemon that has written its state
// file.
func (c *Controller) ready() (int, bool) {
	pid, ok := c.registry.CurrentRunningPID()
	if !ok {
		return 0, false
	}
	state, err := ReadState(c.paths.StateFile())
	if err != nil || state.PID != pid {
		return 0, false
	}
	return pid, true
}

// Stop asks the running daemon to exit, force-killing it if it is still
// alive after the configured kill timeout. It returns the stopped PID.
func (c *Controller) Stop() (int, error) {
	pid, ok := c.registry.CurrentRunningPID()
	if !ok {
		return 0, errors.ErrNotRunning
	}

	if err := c.proc.Terminate(pid); err != nil {
		logging.Warn("graceful stop failed, killing daemon", logging.KeyPID, pid, logging.KeyError, err)
		if err := c.proc.Kill(pid); err != nil {
			return pid, errors.NewSystemErrorWithOp("stop", "failed to stop daemon", err)
		}
	}

	deadline := c.now().Add(config.Global.Daemon.KillTimeout)
	for c.proc.IsAlive(pid) && c.now().Before(deadline) {
		c.sleep(stopPollInterval)
	}

	if c.proc.IsAlive(pid) {
		logging.Warn("daemon did not exit in time, killing it", logging.KeyPID, pid)
		if err := c.proc.Kill(pid); err != nil {
			return pid, errors.NewSystemErrorWithOp("stop", "failed to kill daemon", err)
		}
	}

	c.registry.Clear()
	removeState(c.paths.StateFile())
	return pid, nil
}

// Executable returns the path of the running binary for Start.
func Executable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errors.NewSystemErrorWithOp("start", "failed to locate executable", err)
	}
	return exe, nil
}
