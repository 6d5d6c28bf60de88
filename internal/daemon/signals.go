package daemon

import (
	"fmt"
	"os"
	"os/signal"
)

// SignalHandler delivers shutdown requests on a channel: OS signals, plus
// the named stop event on platforms that have no SIGTERM for detached
// processes.
type SignalHandler struct {
	signals     chan os.Signal
	stopWatcher func()
}

// NewSignalHandler creates a new signal handler.
func NewSignalHandler() *SignalHandler {
	return &SignalHandler{
		signals: make(chan os.Signal, 1),
	}
}

// Setup starts delivery of shutdown requests for the current process.
func (h *SignalHandler) Setup() {
	signal.Notify(h.signals, shutdownSignals...)
	h.stopWatcher = watchStopRequest(os.Getpid(), h.signals)
}

// C returns the channel shutdown requests arrive on.
func (h *SignalHandler) C() <-chan os.Signal {
	return h.signals
}

// Cleanup stops delivery. It is safe to call more than once.
func (h *SignalHandler) Cleanup() {
	signal.Stop(h.signals)
	if h.stopWatcher != nil {
		h.stopWatcher()
		h.stopWatcher = nil
	}
}

// stopEventName is the session-local event a daemon with pid waits on.
func stopEventName(pid int) string {
	return fmt.Sprintf(`Local\keystr-stop-%d`, pid)
}
