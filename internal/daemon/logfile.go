package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxLogSize is the size at which the daemon log is rotated on the next start.
const MaxLogSize = 1 << 20

// OpenLogFile opens the daemon log for appending. A log larger than maxSize
// is first moved to <path>.old, replacing any previous backup.
func OpenLogFile(path string, maxSize int64) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	if err := rotateLog(path, maxSize); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

func rotateLog(path string, maxSize int64) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if maxSize <= 0 || info.Size() < maxSize {
		return nil
	}

	backupPath := path + ".old"
	os.Remove(backupPath)

	if err := os.Rename(path, backupPath); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}
	return nil
}

// LastLogError scans the tail of the daemon log for the most recent error
// line, so start can explain why the daemon did not come up.
func LastLogError(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	lines := strings.Split(string(data), "\n")
	start := len(lines) - 10
	if start < 0 {
		start = 0
	}

	for i := len(lines) - 1; i >= start; i-- {
		line := strings.TrimSpace(lines[i])
		lower := strings.ToLower(line)
		if strings.Contains(lower, "level=error") ||
			strings.Contains(lower, `"level":"error"`) ||
			strings.Contains(lower, "failed to") {
			return line
		}
	}
	return ""
}
