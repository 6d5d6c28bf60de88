package daemon

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks daemon operational metrics.
type Metrics struct {
	// Counters
	presses      atomic.Uint64
	saves        atomic.Uint64
	saveFailures atomic.Uint64

	// Gauges with mutex for complex types
	mu          sync.RWMutex
	lastSaveAt  time.Time
	lastSaved   uint64
	lastError   string
	lastErrorAt time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// MetricsSnapshot represents a point-in-time view of metrics.
type MetricsSnapshot struct {
	PressesTotal      uint64     `json:"presses_total"`
	SavesTotal        uint64     `json:"saves_total"`
	SaveFailuresTotal uint64     `json:"save_failures_total"`
	LastSavedTotal    uint64     `json:"last_saved_total"`
	LastSaveAt        *time.Time `json:"last_save_at,omitempty"`
	LastError         string     `json:"last_error,omitempty"`
	LastErrorAt       *time.Time `json:"last_error_at,omitempty"`
}

// Snapshot returns a copy of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := MetricsSnapshot{
		PressesTotal:      m.presses.Load(),
		SavesTotal:        m.saves.Load(),
		SaveFailuresTotal: m.saveFailures.Load(),
		LastSavedTotal:    m.lastSaved,
		LastError:         m.lastError,
	}

	if !m.lastSaveAt.IsZero() {
		t := m.lastSaveAt
		snap.LastSaveAt = &t
	}
	if !m.lastErrorAt.IsZero() {
		t := m.lastErrorAt
		snap.LastErrorAt = &t
	}

	return snap
}

// JSON returns metrics as JSON.
func (m *Metrics) JSON() ([]byte, error) {
	return json.MarshalIndent(m.Snapshot(), "", "  ")
}

// RecordPress counts one key press.
func (m *Metrics) RecordPress() {
	m.presses.Add(1)
}

// RecordSave records a successful write of a store whose total is total.
func (m *Metrics) RecordSave(total uint64) {
	m.saves.Add(1)

	m.mu.Lock()
	m.lastSaveAt = time.Now()
	m.lastSaved = total
	m.mu.Unlock()
}

// RecordSaveFailed records a failed write.
func (m *Metrics) RecordSaveFailed(err error) {
	m.saveFailures.Add(1)
	m.RecordError(err)
}

// RecordError records the most recent error.
func (m *Metrics) RecordError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastError = err.Error()
	m.lastErrorAt = time.Now()
}

// Presses returns the number of presses counted this session.
func (m *Metrics) Presses() uint64 {
	return m.presses.Load()
}

// Saves returns the number of successful writes.
func (m *Metrics) Saves() uint64 {
	return m.saves.Load()
}

// SaveFailures returns the number of failed writes.
func (m *Metrics) SaveFailures() uint64 {
	return m.saveFailures.Load()
}
