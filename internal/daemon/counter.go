package daemon

import (
	"sync"

	"github.com/keystr/keystr/internal/clock"
	"github.com/keystr/keystr/internal/model"
	"github.com/keystr/keystr/internal/storage"
)

// Counter owns the in-memory store while the daemon runs. The store lock
// is held only for the increment or the snapshot; writes happen after it
// is released.
type Counter struct {
	mu    sync.Mutex
	stats *model.Statistics

	gateway   storage.Gateway
	clock     clock.Clock
	saveEvery uint64
	metrics   *Metrics

	// saveMu orders writes; lastSaved keeps an older snapshot from
	// replacing a newer one on disk.
	saveMu    sync.Mutex
	saved     bool
	lastSaved uint64
}

// NewCounter wraps stats. A saveEvery of 0 disables periodic saves.
func NewCounter(stats *model.Statistics, gateway storage.Gateway, saveEvery uint64, clk clock.Clock, metrics *Metrics) *Counter {
	if clk == nil {
		clk = clock.System
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Counter{
		stats:     stats,
		gateway:   gateway,
		clock:     clk,
		saveEvery: saveEvery,
		metrics:   metrics,
	}
}

// Press counts one key press and writes a snapshot every saveEvery presses.
// A failed write is returned.
func (c *Counter) Press() error {
	c.mu.Lock()
	if err := c.stats.Increment(c.clock()); err != nil {
		c.mu.Unlock()
		return err
	}

	var snapshot *model.Statistics
	if c.saveEvery > 0 && c.stats.TotalCount%c.saveEvery == 0 {
		snapshot = c.stats.Clone()
	}
	c.mu.Unlock()

	c.metrics.RecordPress()

	if snapshot == nil {
		return nil
	}
	return c.save(snapshot)
}

// Flush writes the current store.
func (c *Counter) Flush() error {
	return c.save(c.Snapshot())
}

// Snapshot returns a copy of the current store.
func (c *Counter) Snapshot() *model.Statistics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats.Clone()
}

// Total returns the current total count.
func (c *Counter) Total() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats.TotalCount
}

func (c *Counter) save(snapshot *model.Statistics) error {
	c.saveMu.Lock()
	defer c.saveMu.Unlock()

	if c.saved && snapshot.TotalCount <= c.lastSaved {
		return nil
	}

	if err := c.gateway.Save(snapshot); err != nil {
		c.metrics.RecordSaveFailed(err)
		return err
	}

	c.saved = true
	c.lastSaved = snapshot.TotalCount
	c.metrics.RecordSave(snapshot.TotalCount)
	return nil
}
