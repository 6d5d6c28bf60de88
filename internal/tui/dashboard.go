package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/keystr/keystr/internal/clock"
	"github.com/keystr/keystr/internal/model"
	"github.com/keystr/keystr/internal/output"
)

// tickMsg is sent when the timer ticks.
type tickMsg time.Time

// refreshMsg is sent when data needs to be refreshed.
type refreshMsg struct{}

// Loader reads the current statistics.
type Loader interface {
	Load() *model.Statistics
}

// MonitorFunc reports the daemon PID and whether it is running.
type MonitorFunc func() (int, bool)

// DashboardModel is the bubbletea model behind keystr watch.
type DashboardModel struct {
	// Data
	stats   *model.Statistics
	running bool
	pid     int

	// Sources
	loader  Loader
	monitor MonitorFunc
	clock   clock.Clock

	// UI state
	width       int
	height      int
	lastRefresh time.Time
	message     string
	messageExp  time.Time

	// Configuration
	refreshInterval time.Duration
	chartDays       int
}

// DashboardConfig holds configuration for the dashboard.
type DashboardConfig struct {
	Loader          Loader
	Monitor         MonitorFunc
	Clock           clock.Clock
	RefreshInterval time.Duration
	ChartDays       int
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(config DashboardConfig) *DashboardModel {
	if config.RefreshInterval == 0 {
		config.RefreshInterval = time.Second
	}
	if config.ChartDays == 0 {
		config.ChartDays = output.DefaultDailyDays
	}
	if config.Clock == nil {
		config.Clock = clock.System
	}
	if config.Monitor == nil {
		config.Monitor = func() (int, bool) { return 0, false }
	}

	return &DashboardModel{
		stats:           model.NewStatistics(),
		loader:          config.Loader,
		monitor:         config.Monitor,
		clock:           config.Clock,
		refreshInterval: config.RefreshInterval,
		chartDays:       config.ChartDays,
	}
}

// Init initializes the model.
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.refreshCmd(),
	)
}

// Update handles messages and updates the model.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.loadData()
		if !m.messageExp.IsZero() && m.clock().After(m.messageExp) {
			m.message = ""
			m.messageExp = time.Time{}
		}
		return m, m.tickCmd()

	case refreshMsg:
		m.loadData()
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit

	case "r":
		m.loadData()
		m.setMessage("Refreshed", time.Second)
		return m, nil
	}

	return m, nil
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	now := m.clock()
	var sections []string

	sections = append(sections, m.renderHeader(now))

	if m.message != "" {
		sections = append(sections, StyleWarning.Render(m.message))
	}

	sections = append(sections, NewStatusComponent(m.running, m.pid, m.width).View())

	sections = append(sections, NewCountersComponent(
		Counter{Label: "Today", Value: m.stats.Today(now)},
		Counter{Label: "Last 7 days", Value: m.stats.Weekly(now)},
		Counter{Label: "Last 30 days", Value: m.stats.Monthly(now)},
		Counter{Label: "Total", Value: m.stats.TotalCount},
	).View())

	pace := &PaceComponent{
		Today:   m.stats.Today(now),
		Average: m.dailyAverage(now),
		Width:   m.width,
	}
	sections = append(sections, "\n"+pace.View())

	if chart := m.renderChart(); chart != "" {
		sections = append(sections, chart)
	}

	sections = append(sections, HelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the dashboard header.
func (m *DashboardModel) renderHeader(now time.Time) string {
	title := StyleTitle.Render("Keystroke Monitor")
	timeStr := StyleSubtitle.Render(now.Format("Mon Jan 2, 15:04:05"))

	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", timeStr) + "\n"
}

func (m *DashboardModel) renderChart() string {
	recent := m.stats.RecentDaily(m.chartDays)
	if len(recent) == 0 {
		return ""
	}

	chrono := make([]model.DailyRecord, len(recent))
	for i, r := range recent {
		chrono[len(recent)-1-i] = r
	}

	lines := output.Chart(chrono, 6)
	body := StyleLabel.Render(fmt.Sprintf("Last %d days", len(recent))) + "\n" + strings.Join(lines, "\n")
	return StyleChartBox.Render(body)
}

// dailyAverage is the mean count of the recent days before today.
func (m *DashboardModel) dailyAverage(now time.Time) float64 {
	today := clock.DayBucket(now)

	var sum uint64
	var n int
	for _, r := range m.stats.RecentDaily(m.chartDays + 1) {
		if r.Date == today {
			continue
		}
		sum += r.Count
		n++
		if n == m.chartDays {
			break
		}
	}

	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// loadData re-reads the statistics and the monitor state.
func (m *DashboardModel) loadData() {
	if m.loader != nil {
		m.stats = m.loader.Load()
	}
	m.pid, m.running = m.monitor()
	m.lastRefresh = m.clock()
}

// setMessage sets a temporary message.
func (m *DashboardModel) setMessage(msg string, duration time.Duration) {
	m.message = msg
	m.messageExp = m.clock().Add(duration)
}

// tickCmd returns a command that sends a tick message.
func (m *DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshCmd returns a command that sends a refresh message.
func (m *DashboardModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{}
	}
}

// Run starts the dashboard TUI.
func Run(config DashboardConfig) error {
	p := tea.NewProgram(NewDashboardModel(config), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
