package daemon

// Process is the operating-system process capability the daemon and the
// CLI depend on. OSProcess is the real backend; tests substitute a fake.
type Process interface {
	// IsAlive reports whether pid names a running process.
	IsAlive(pid int) bool
	// SpawnDetached starts exe in a new session with stdout and stderr
	// appended to logPath, and returns its PID without waiting for it.
	SpawnDetached(exe string, args []string, logPath string) (int, error)
	// Terminate asks pid to shut down gracefully.
	Terminate(pid int) error
	// Kill stops pid immediately.
	Kill(pid int) error
}

// OSProcess implements Process for the host platform.
type OSProcess struct{}

// NewOSProcess returns the host process backend.
func NewOSProcess() *OSProcess {
	return &OSProcess{}
}
