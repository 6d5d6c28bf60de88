package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/keystr/keystr/internal/config"
	"github.com/keystr/keystr/internal/errors"
)

// ensureFreeSpace fails with ErrDiskFull when the filesystem holding dir has
// less than the configured minimum available. If the free space cannot be
// read, the write itself decides.
func ensureFreeSpace(dir string) error {
	free, err := freeSpace(existingAncestor(dir))
	if err != nil {
		return nil
	}

	minFree := config.Global.Storage.MinFreeSpace
	if free < minFree {
		return errors.NewSystemError(
			fmt.Sprintf("insufficient disk space: %d KB free, need at least %d KB", free/1024, minFree/1024),
			errors.ErrDiskFull,
		)
	}
	return nil
}

// existingAncestor returns path or its nearest parent that exists.
func existingAncestor(path string) string {
	for {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(path)
		if parent == path {
			return path
		}
		path = parent
	}
}

// writeError maps a filesystem error to ErrDiskFull when the device is full.
func writeError(op string, err error) error {
	if isDiskFull(err) {
		return errors.NewSystemErrorWithOp(op, "disk full", errors.ErrDiskFull)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// SafeWrite writes data to path atomically.
// It checks disk space first, writes to a temp file in the same directory,
// syncs it and renames it over path, so readers never see a truncated file.
func SafeWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := ensureFreeSpace(dir); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, ".keystr-*.tmp")
	if err != nil {
		return writeError("create temp file", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return writeError("write", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return writeError("sync", err)
	}
	if err := tmpFile.Close(); err != nil {
		return writeError("close temp file", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}

// EnsureDirectory creates a directory with owner-only permissions if it
// doesn't exist.
func EnsureDirectory(path string) error {
	if err := os.MkdirAll(path, 0700); err != nil {
		return writeError("mkdir", err)
	}
	return nil
}
