//go:build !windows

package daemon

import (
	"os"

	"golang.org/x/sys/unix"
)

var shutdownSignals = []os.Signal{
	os.Interrupt, // Ctrl+C
	unix.SIGTERM, // keystr stop
	unix.SIGHUP,  // terminal hangup
}

// watchStopRequest is a no-op: Terminate delivers SIGTERM directly.
func watchStopRequest(int, chan<- os.Signal) func() {
	return func() {}
}
