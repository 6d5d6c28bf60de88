package daemon

import (
	"errors"
	"os"
	"strconv"
	"sync"

	"github.com/keystr/keystr/internal/model"
)

// fakeProcess records calls and keeps a table of live PIDs.
type fakeProcess struct {
	mu    sync.Mutex
	alive map[int]bool

	// onSpawn runs inside SpawnDetached; it may register the child.
	onSpawn  func(exe string, args []string, logPath string) (int, error)
	stubborn bool // Terminate leaves the process running

	terminated []int
	killed     []int
}

func newFakeProcess(live ...int) *fakeProcess {
	p := &fakeProcess{alive: make(map[int]bool)}
	for _, pid := range live {
		p.alive[pid] = true
	}
	return p
}

func (p *fakeProcess) IsAlive(pid int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.alive[pid]
}

func (p *fakeProcess) SpawnDetached(exe string, args []string, logPath string) (int, error) {
	if p.onSpawn == nil {
		return 0, errors.New("spawn not configured")
	}
	return p.onSpawn(exe, args, logPath)
}

func (p *fakeProcess) Terminate(pid int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.terminated = append(p.terminated, pid)
	if !p.stubborn {
		delete(p.alive, pid)
	}
	return nil
}

func (p *fakeProcess) Kill(pid int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.killed = append(p.killed, pid)
	delete(p.alive, pid)
	return nil
}

func (p *fakeProcess) setAlive(pid int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alive[pid] = true
}

// recordingGateway keeps every saved snapshot in memory.
type recordingGateway struct {
	mu      sync.Mutex
	initial *model.Statistics
	saved   []*model.Statistics
	failAt  map[uint64]error
}

func newRecordingGateway() *recordingGateway {
	return &recordingGateway{
		initial: model.NewStatistics(),
		failAt:  make(map[uint64]error),
	}
}

func (g *recordingGateway) Load() *model.Statistics {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.initial.Clone()
}

func (g *recordingGateway) Save(stats *model.Statistics) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err, ok := g.failAt[stats.TotalCount]; ok {
		return err
	}
	g.saved = append(g.saved, stats.Clone())
	return nil
}

func (g *recordingGateway) totals() []uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]uint64, len(g.saved))
	for i, s := range g.saved {
		out[i] = s.TotalCount
	}
	return out
}

func (g *recordingGateway) last() *model.Statistics {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.saved) == 0 {
		return nil
	}
	return g.saved[len(g.saved)-1]
}

func writePIDFile(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)), 0600)
}
