// Package storage persists keystroke statistics and owns the per-user file
// layout.
package storage

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/keystr/keystr/internal/errors"
)

const (
	// AppDir is the directory name used under the XDG config and state roots.
	AppDir = "keystroke"

	// DataFileName holds the statistics.
	DataFileName = "data.json"
	// PIDFileName holds the daemon PID.
	PIDFileName = "daemon.pid"
	// StateFileName holds daemon session metadata.
	StateFileName = "daemon.json"
	// LogFileName is the daemon log.
	LogFileName = "daemon.log"
	// ConfigFileName is the optional YAML configuration.
	ConfigFileName = "config.yaml"

	// EnvHome overrides both directories, mainly for tests and portable installs.
	EnvHome = "KEYSTR_HOME"
)

// Paths lists every file keystr reads or writes.
type Paths struct {
	Dir      string
	StateDir string
}

// ResolvePaths returns the per-user file layout. KEYSTR_HOME, when set, holds
// everything; otherwise data lives under XDG_CONFIG_HOME and daemon
// bookkeeping under XDG_STATE_HOME.
func ResolvePaths() (Paths, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return PathsAt(home), nil
	}

	if xdg.ConfigHome == "" || xdg.StateHome == "" {
		return Paths{}, errors.ErrNoConfigDir
	}

	return Paths{
		Dir:      filepath.Join(xdg.ConfigHome, AppDir),
		StateDir: filepath.Join(xdg.StateHome, AppDir),
	}, nil
}

// PathsAt places every file in a single directory.
func PathsAt(dir string) Paths {
	return Paths{Dir: dir, StateDir: dir}
}

// DataFile returns the statistics file path.
func (p Paths) DataFile() string { return filepath.Join(p.Dir, DataFileName) }

// PIDFile returns the PID file path.
func (p Paths) PIDFile() string { return filepath.Join(p.Dir, PIDFileName) }

// ConfigFile returns the YAML config path.
func (p Paths) ConfigFile() string { return filepath.Join(p.Dir, ConfigFileName) }

// StateFile returns the daemon session file path.
func (p Paths) StateFile() string { return filepath.Join(p.StateDir, StateFileName) }

// LogFile returns the daemon log path.
func (p Paths) LogFile() string { return filepath.Join(p.StateDir, LogFileName) }

// Ensure creates both directories.
func (p Paths) Ensure() error {
	if err := EnsureDirectory(p.Dir); err != nil {
		return err
	}
	return EnsureDirectory(p.StateDir)
}
