package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/keystr/keystr/internal/clock"
	"github.com/keystr/keystr/internal/config"
	"github.com/keystr/keystr/internal/errors"
	"github.com/keystr/keystr/internal/hook"
	"github.com/keystr/keystr/internal/logging"
	"github.com/keystr/keystr/internal/storage"
)

// hookStopTimeout bounds how long shutdown waits for the hook to return
// after it has been cancelled.
const hookStopTimeout = 2 * time.Second

// State is the daemon lifecycle phase.
type State int32

const (
	StateStarting State = iota
	StateRunning
	StateStopping
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Options configures a Daemon.
type Options struct {
	Paths   storage.Paths
	Gateway storage.Gateway
	Source  hook.Source
	Process Process
	Clock   clock.Clock

	// SaveEvery overrides config.Global.Persistence.SaveEvery when non-zero.
	SaveEvery uint64
}

// Daemon is the long-running keystroke monitor.
type Daemon struct {
	paths    storage.Paths
	gateway  storage.Gateway
	source   hook.Source
	registry *Registry
	clock    clock.Clock
	signals  *SignalHandler
	metrics  *Metrics

	saveEvery uint64
	state     atomic.Int32
	counter   *Counter
}

// New creates a daemon. Gateway, Source and Process default to the real
// implementations.
func New(opts Options) *Daemon {
	if opts.Gateway == nil {
		opts.Gateway = storage.NewJSONFile(opts.Paths.DataFile())
	}
	if opts.Source == nil {
		opts.Source = hook.NewSystemSource(config.Global.Daemon.HookTimeout)
	}
	if opts.Process == nil {
		opts.Process = NewOSProcess()
	}
	if opts.Clock == nil {
		opts.Clock = clock.System
	}
	if opts.SaveEvery == 0 {
		opts.SaveEvery = config.Global.Persistence.SaveEvery
	}

	return &Daemon{
		paths:     opts.Paths,
		gateway:   opts.Gateway,
		source:    opts.Source,
		registry:  NewRegistry(opts.Paths.PIDFile(), opts.Process),
		clock:     opts.Clock,
		signals:   NewSignalHandler(),
		metrics:   NewMetrics(),
		saveEvery: opts.SaveEvery,
	}
}

// State returns the current lifecycle phase.
func (d *Daemon) State() State {
	return State(d.state.Load())
}

// Metrics returns the daemon's metrics.
func (d *Daemon) Metrics() *Metrics {
	return d.metrics
}

func (d *Daemon) setState(s State) {
	d.state.Store(int32(s))
	logging.DebugLog("daemon state changed", logging.KeyState, s.String())
}

// Run counts key presses until a shutdown signal arrives, ctx is cancelled
// or the hook fails. The store is saved before Run returns. A signal or
// cancellation returns nil; a hook or save failure is returned.
//
// The state file is written only once the hook reports that it is
// installed, so its presence marks a daemon that is actually counting.
func (d *Daemon) Run(ctx context.Context) error {
	d.setState(StateStarting)
	defer d.setState(StateTerminated)

	startedAt := d.clock()
	if _, err := clock.Timestamp(startedAt); err != nil {
		return errors.NewSystemErrorWithOp("start", "invalid system clock", err)
	}

	if err := d.paths.Ensure(); err != nil {
		return errors.NewSystemErrorWithOp("start", "failed to create keystr directories", err)
	}

	lock := storage.NewFileLock(d.paths.Dir)
	if err := lock.Acquire(); err != nil {
		if errors.Is(err, storage.ErrLockAlreadyHeld) {
			return errors.NewUserErrorFrom(errors.ErrAlreadyRunning, err.Error(), "")
		}
		return errors.NewSystemErrorWithOp("start", "failed to take instance lock", err)
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logging.Warn("failed to release instance lock", logging.KeyPath, lock.Path(), logging.KeyError, err)
		}
	}()

	pid := os.Getpid()
	if err := d.registry.RecordSelf(pid); err != nil {
		return errors.NewSystemErrorWithOp("start", "failed to record daemon PID", err)
	}
	defer d.registry.Clear()

	sessionID, err := uuid.NewV7()
	if err != nil {
		return errors.NewSystemErrorWithOp("start", "failed to create session id", err)
	}
	state := &SessionState{
		PID:       pid,
		SessionID: sessionID.String(),
		StartedAt: startedAt,
	}
	defer removeState(d.paths.StateFile())

	log := logging.With(logging.KeyPID, pid, logging.KeySession, state.SessionID)

	stats := d.gateway.Load()
	d.counter = NewCounter(stats, d.gateway, d.saveEvery, d.clock, d.metrics)

	d.signals.Setup()
	defer d.signals.Cleanup()

	hookCtx, cancelHook := context.WithCancel(ctx)
	defer cancelHook()

	hookReady := make(chan struct{})
	var readyOnce sync.Once
	markReady := func() { readyOnce.Do(func() { close(hookReady) }) }

	hookDone := make(chan error, 1)
	go func() {
		hookDone <- d.source.Listen(hookCtx, markReady, d.counter.Press)
	}()

	var runErr error
	hookFinished := false

	// Wait for the hook to install before announcing the session.
	installed := false
	select {
	case <-hookReady:
		installed = true
	case sig := <-d.signals.C():
		log.Info("received signal before the hook was ready", logging.KeySignal, sig.String())
	case <-ctx.Done():
		log.Info("context cancelled before the hook was ready")
	case err := <-hookDone:
		hookFinished = true
		runErr = hookStopped(err, hookReady)
		log.Error("keyboard hook stopped", logging.KeyError, runErr)
	}

	if installed {
		if err := writeState(d.paths.StateFile(), state); err != nil {
			runErr = errors.NewSystemErrorWithOp("start", "failed to write daemon state", err)
			log.Error("failed to write daemon state", logging.KeyError, err)
		} else {
			d.setState(StateRunning)
			log.Info("daemon started", logging.KeyTotal, stats.TotalCount)

			select {
			case sig := <-d.signals.C():
				log.Info("received signal", logging.KeySignal, sig.String())
			case <-ctx.Done():
				log.Info("context cancelled")
			case err := <-hookDone:
				hookFinished = true
				runErr = hookStopped(err, hookReady)
				log.Error("keyboard hook stopped", logging.KeyError, runErr)
			}
		}
	}

	d.setState(StateStopping)
	cancelHook()

	if !hookFinished {
		select {
		case err := <-hookDone:
			if err != nil {
				log.Warn("keyboard hook returned an error during shutdown", logging.KeyError, err)
			}
		case <-time.After(hookStopTimeout):
			log.Warn("keyboard hook did not stop in time")
		}
	}

	if err := d.counter.Flush(); err != nil {
		log.Error("final save failed", logging.KeyError, err)
		if runErr == nil {
			runErr = err
		}
	}

	snap := d.metrics.Snapshot()
	log.Info("daemon stopped",
		logging.KeyTotal, d.counter.Total(),
		"presses", snap.PressesTotal,
		"saves", snap.SavesTotal,
		"save_failures", snap.SaveFailuresTotal,
	)

	return runErr
}

// hookStopped turns an early return from Listen into the run error. A nil
// return is a failed install if ready never fired, and a lost hook after.
func hookStopped(err error, ready <-chan struct{}) error {
	if err != nil {
		return err
	}
	select {
	case <-ready:
		return errors.NewSystemErrorWithOp("listen", "keyboard hook returned", errors.ErrHookClosed)
	default:
		return errors.NewSystemErrorWithOp("listen", "keyboard hook returned before it was enabled", errors.ErrHookInstall)
	}
}

// SessionState is written to the state file while the daemon runs.
type SessionState struct {
	PID       int       `json:"pid"`
	SessionID string    `json:"session_id"`
	StartedAt time.Time `json:"started_at"`
}

func writeState(path string, state *SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return storage.SafeWrite(path, data, 0600)
}

// ReadState reads the daemon state file.
func ReadState(path string) (*SessionState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var state SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}

	return &state, nil
}

func removeState(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logging.Warn("failed to remove daemon state file", logging.KeyError, err, logging.KeyPath, path)
	}
}

// formatUptime formats a duration as uptime.
func formatUptime(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		hours := int(d.Hours())
		minutes := int(d.Minutes()) % 60
		if minutes > 0 {
			return fmt.Sprintf("%dh %dm", hours, minutes)
		}
		return fmt.Sprintf("%dh", hours)
	}

	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	if hours > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	return fmt.Sprintf("%dd", days)
}
