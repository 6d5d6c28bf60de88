package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LockFileName is the daemon instance lock inside the keystr directory.
const LockFileName = "daemon.lock"

// ErrLockAlreadyHeld is returned when another process holds the lock.
var ErrLockAlreadyHeld = errors.New("instance lock is held by another process")

// FileLock is an advisory, exclusive lock held by the daemon for its whole
// life. The OS drops it when the holder exits, so the file itself is never
// removed and a leftover file is not a held lock.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock returns the instance lock for dir.
func NewFileLock(dir string) *FileLock {
	return &FileLock{path: filepath.Join(dir, LockFileName)}
}

// Path returns the lock file path.
func (l *FileLock) Path() string {
	return l.path
}

// Acquire takes the lock without blocking and records the caller's PID in
// the file. It fails with ErrLockAlreadyHeld while another process holds it.
func (l *FileLock) Acquire() error {
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("open instance lock: %w", err)
	}

	if err := lockFile(file); err != nil {
		file.Close()
		if errors.Is(err, ErrLockAlreadyHeld) {
			if pid := l.Holder(); pid > 0 {
				return fmt.Errorf("%w: PID %d", ErrLockAlreadyHeld, pid)
			}
		}
		return err
	}

	if err := recordHolder(file, os.Getpid()); err != nil {
		unlockFile(file)
		file.Close()
		return fmt.Errorf("record lock holder: %w", err)
	}

	l.file = file
	return nil
}

// Release drops the lock. The file stays on disk: unlinking it would let a
// second process lock a fresh inode while a third still waits on the old one.
// Release is safe to call more than once.
func (l *FileLock) Release() error {
	if l.file == nil {
		return nil
	}
	file := l.file
	l.file = nil

	unlockErr := unlockFile(file)
	closeErr := file.Close()
	return errors.Join(unlockErr, closeErr)
}

// Holder returns the PID last recorded in the lock file, or 0. It is only a
// diagnostic; whether the lock is held is decided by the OS lock alone.
func (l *FileLock) Holder() int {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0
	}
	return pid
}

func recordHolder(file *os.File, pid int) error {
	if err := file.Truncate(0); err != nil {
		return err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := file.WriteString(strconv.Itoa(pid)); err != nil {
		return err
	}
	return file.Sync()
}
