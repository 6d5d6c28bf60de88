package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/keystr/keystr/internal/errors"
	"github.com/keystr/keystr/internal/logging"
	"github.com/keystr/keystr/internal/model"
)

// Gateway loads and saves the statistics store.
type Gateway interface {
	// Load never fails: missing or unreadable data yields an empty store.
	Load() *model.Statistics
	// Save persists a snapshot and reports every failure.
	Save(stats *model.Statistics) error
}

// CorruptSuffix is appended to a data file that could not be parsed.
const CorruptSuffix = ".corrupt"

// JSONFile stores statistics as indented JSON at a fixed path.
type JSONFile struct {
	path string
}

// NewJSONFile creates a gateway for the given file.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path returns the data file path.
func (f *JSONFile) Path() string {
	return f.path
}

// Exists reports whether the data file is present.
func (f *JSONFile) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// Load reads the data file. A corrupt file is moved aside to
// <path>.corrupt and an empty store is returned.
func (f *JSONFile) Load() *model.Statistics {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn("failed to read statistics, starting empty", logging.KeyPath, f.path, logging.KeyError, err)
		}
		return model.NewStatistics()
	}

	stats := model.NewStatistics()
	if err := json.Unmarshal(data, stats); err != nil {
		logging.Warn("statistics file is corrupt, starting empty", logging.KeyPath, f.path, logging.KeyError, err)
		f.quarantine()
		return model.NewStatistics()
	}

	if stats.DailyRecords == nil {
		stats.DailyRecords = []model.DailyRecord{}
	}
	return stats
}

// Save writes stats atomically.
func (f *JSONFile) Save(stats *model.Statistics) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return errors.NewSystemErrorWithOp("save", "failed to encode statistics", err)
	}

	if err := EnsureDirectory(filepath.Dir(f.path)); err != nil {
		return errors.NewSystemErrorWithOp("save", "failed to create data directory", err)
	}

	if err := SafeWrite(f.path, data, 0600); err != nil {
		return errors.NewSystemErrorWithOp("save", "failed to write statistics", err)
	}
	return nil
}

// quarantine keeps a corrupt file for manual recovery instead of letting the
// next save overwrite it.
func (f *JSONFile) quarantine() {
	dest := f.path + CorruptSuffix
	if err := os.Rename(f.path, dest); err != nil {
		logging.Warn("failed to move corrupt statistics aside", logging.KeyPath, f.path, logging.KeyError, err)
		return
	}
	logging.Warn(fmt.Sprintf("corrupt statistics kept at %s", dest))
}
