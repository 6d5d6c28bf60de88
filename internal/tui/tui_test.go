package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keystr/keystr/internal/model"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

type staticLoader struct {
	stats *model.Statistics
	calls int
}

func (l *staticLoader) Load() *model.Statistics {
	l.calls++
	return l.stats.Clone()
}

func sampleStats(t *testing.T) *model.Statistics {
	s := model.NewStatistics()
	now := fixedNow()
	for i := 0; i < 4; i++ {
		require.NoError(t, s.Increment(now.Add(-24*time.Hour)))
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, s.Increment(now))
	}
	return s
}

func newTestDashboard(t *testing.T) (*DashboardModel, *staticLoader) {
	loader := &staticLoader{stats: sampleStats(t)}
	m := NewDashboardModel(DashboardConfig{
		Loader:  loader,
		Monitor: func() (int, bool) { return 4242, true },
		Clock:   fixedNow,
	})
	return m, loader
}

// =============================================================================
// ProgressBar Tests
// =============================================================================

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		width      int
		filled     int
	}{
		{"zero", 0, 10, 0},
		{"half", 50, 10, 5},
		{"full", 100, 10, 10},
		{"over", 150, 10, 10},
		{"negative", -10, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := ProgressBar(tt.percentage, tt.width)
			assert.Equal(t, tt.filled, strings.Count(bar, "█"))
			assert.Equal(t, tt.width-tt.filled, strings.Count(bar, "░"))
		})
	}
}

// =============================================================================
// Component Tests
// =============================================================================

func TestStatusComponent(t *testing.T) {
	t.Run("inactive", func(t *testing.T) {
		view := NewStatusComponent(false, 0, 80).View()
		assert.Contains(t, view, "Inactive")
		assert.Contains(t, view, "keystr start")
	})

	t.Run("active", func(t *testing.T) {
		view := NewStatusComponent(true, 4242, 80).View()
		assert.Contains(t, view, "Active")
		assert.Contains(t, view, "PID 4242")
	})
}

func TestCountersComponent(t *testing.T) {
	view := NewCountersComponent(
		Counter{Label: "Today", Value: 12},
		Counter{Label: "Total", Value: 3400},
	).View()

	assert.Contains(t, view, "Today")
	assert.Contains(t, view, "12")
	assert.Contains(t, view, "3400")
}

func TestPaceComponent(t *testing.T) {
	assert.Contains(t, (&PaceComponent{Today: 5}).View(), "No history")
	assert.Contains(t, (&PaceComponent{Today: 5, Average: 10, Width: 60}).View(), "50% of daily average")
}

func TestHelpBar(t *testing.T) {
	bar := HelpBar()
	assert.Contains(t, bar, "refresh")
	assert.Contains(t, bar, "quit")
}

// =============================================================================
// Dashboard Tests
// =============================================================================

func TestDashboardLoadingBeforeResize(t *testing.T) {
	m, _ := newTestDashboard(t)
	assert.Equal(t, "Loading...", m.View())
}

func TestDashboardRefresh(t *testing.T) {
	m, loader := newTestDashboard(t)

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.Update(refreshMsg{})
	assert.Equal(t, 1, loader.calls)

	view := m.View()
	assert.Contains(t, view, "Keystroke Monitor")
	assert.Contains(t, view, "PID 4242")
	assert.Contains(t, view, "Today")
	assert.Contains(t, view, "Last 7 days")
	assert.Contains(t, view, "50% of daily average")
}

func TestDashboardTickReloads(t *testing.T) {
	m, loader := newTestDashboard(t)

	_, cmd := m.Update(tickMsg(fixedNow()))
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, loader.calls)
	assert.Equal(t, uint64(6), m.stats.TotalCount)
	assert.True(t, m.running)
}

func TestDashboardRefreshKey(t *testing.T) {
	m, loader := newTestDashboard(t)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.Equal(t, 1, loader.calls)
	assert.Equal(t, "Refreshed", m.message)
}

func TestDashboardQuit(t *testing.T) {
	m, _ := newTestDashboard(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestDashboardDailyAverage(t *testing.T) {
	m, _ := newTestDashboard(t)
	m.Update(refreshMsg{})

	// Today (2) is excluded; yesterday had 4
	assert.InDelta(t, 4.0, m.dailyAverage(fixedNow()), 0.001)
}
