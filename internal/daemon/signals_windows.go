//go:build windows

package daemon

import (
	"errors"
	"os"
	"syscall"

	"golang.org/x/sys/windows"

	"github.com/keystr/keystr/internal/logging"
)

var shutdownSignals = []os.Signal{
	os.Interrupt,
	syscall.SIGTERM, // console close
}

// stopPollMillis is how often the watcher checks for Cleanup.
const stopPollMillis = 250

// watchStopRequest creates the stop event for pid and turns a SetEvent from
// Terminate into SIGTERM on out. The returned func stops the watcher and
// closes the event.
func watchStopRequest(pid int, out chan<- os.Signal) func() {
	name, err := windows.UTF16PtrFromString(stopEventName(pid))
	if err != nil {
		logging.Warn("graceful stop unavailable", logging.KeyError, err)
		return func() {}
	}

	event, err := windows.CreateEvent(nil, 1, 0, name)
	if err != nil && !(event != 0 && errors.Is(err, windows.ERROR_ALREADY_EXISTS)) {
		logging.Warn("graceful stop unavailable", logging.KeyError, err)
		return func() {}
	}

	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		for {
			ev, err := windows.WaitForSingleObject(event, stopPollMillis)
			if err != nil {
				logging.Warn("waiting for stop event failed", logging.KeyError, err)
				return
			}
			if ev == windows.WAIT_OBJECT_0 {
				select {
				case out <- syscall.SIGTERM:
				default:
				}
				return
			}
			select {
			case <-done:
				return
			default:
			}
		}
	}()

	return func() {
		close(done)
		<-finished
		windows.CloseHandle(event)
	}
}
