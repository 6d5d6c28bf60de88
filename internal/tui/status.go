package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusComponent displays whether the monitor is running.
type StatusComponent struct {
	Running bool
	PID     int
	Width   int
}

// NewStatusComponent creates a new status component.
func NewStatusComponent(running bool, pid, width int) *StatusComponent {
	return &StatusComponent{
		Running: running,
		PID:     pid,
		Width:   width,
	}
}

// View renders the status component.
func (sc *StatusComponent) View() string {
	width := sc.Width - 4
	if width < 20 {
		width = 20
	}

	if !sc.Running {
		content := StyleInactive.Render("○ Inactive") + "  " +
			StyleSubtitle.Render("run 'keystr start' to begin counting")
		return StyleStatusBox.Width(width).Render(content)
	}

	content := StyleActive.Render("● Active") + "  " +
		StyleSubtitle.Render(fmt.Sprintf("PID %d", sc.PID))
	return StyleActiveStatusBox.Width(width).Render(content)
}

// Counter is one labelled value on the dashboard.
type Counter struct {
	Label string
	Value uint64
}

// CountersComponent lays counters out side by side.
type CountersComponent struct {
	Counters []Counter
}

// NewCountersComponent creates a new counters component.
func NewCountersComponent(counters ...Counter) *CountersComponent {
	return &CountersComponent{Counters: counters}
}

// View renders the counters.
func (cc *CountersComponent) View() string {
	boxes := make([]string, len(cc.Counters))
	for i, c := range cc.Counters {
		content := StyleLabel.Render(c.Label) + "\n" + StyleCount.Render(strconv.FormatUint(c.Value, 10))
		boxes[i] = StyleCounterBox.Render(content)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

// PaceComponent compares today with the recent daily average.
type PaceComponent struct {
	Today   uint64
	Average float64
	Width   int
}

// View renders the pace bar.
func (pc *PaceComponent) View() string {
	if pc.Average <= 0 {
		return StyleSubtitle.Render("No history yet to compare today against")
	}

	pct := float64(pc.Today) / pc.Average * 100
	barWidth := pc.Width - 24
	if barWidth < 10 {
		barWidth = 10
	}

	return ProgressBar(pct, barWidth) + " " +
		StyleSubtitle.Render(fmt.Sprintf("%.0f%% of daily average", pct))
}

// HelpBar renders the help bar at the bottom.
func HelpBar() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"r", "refresh"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		part := StyleHelpKey.Render(k.key) + " " + StyleHelpDesc.Render(k.desc)
		parts = append(parts, part)
	}

	return "\n" + strings.Join(parts, "  ")
}
