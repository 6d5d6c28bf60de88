package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/keystr/keystr/internal/clock"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary = lipgloss.Color("#06B6D4") // Cyan
	colorAccent  = lipgloss.Color("#10B981") // Green
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorFaint   = lipgloss.Color("#374151") // Dark gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorInfo    = lipgloss.Color("#3B82F6") // Blue

	// Styles
	styleBanner = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 6)

	styleHeading = lipgloss.NewStyle().
			Bold(true)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorAccent)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleInfo = lipgloss.NewStyle().
			Foreground(colorInfo)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleCount = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleCommand = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWarning)

	styleBar = lipgloss.NewStyle().
			Foreground(colorAccent)

	styleEmpty = lipgloss.NewStyle().
			Foreground(colorFaint)
)

const indent = "  "

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) render(style lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return style.Render(text)
	}
	return text
}

// Banner prints a framed title.
func (c *CLIFormatter) Banner(text string) {
	if c.IsColorEnabled() {
		c.Println(styleBanner.Render(text))
		return
	}
	c.Print(box(text, len([]rune(text))+12))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(indent + c.render(styleSuccess, "✓") + " " + text)
}

// Info prints an informational message.
func (c *CLIFormatter) Info(text string) {
	c.Println(indent + c.render(styleInfo, "ℹ") + " " + text)
}

// Step prints a progress line.
func (c *CLIFormatter) Step(text string) {
	c.Println(indent + c.render(styleCount, "→") + " " + text)
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(indent + c.render(styleWarning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(indent + c.render(styleError, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(indent + c.render(styleMuted, text))
}

// Count formats a number for emphasis.
func (c *CLIFormatter) Count(n uint64) string {
	return c.render(styleCount, strconv.FormatUint(n, 10))
}

// Command formats a command the user can run.
func (c *CLIFormatter) Command(text string) string {
	return c.render(styleCommand, text)
}

// PrintStatus prints whether the daemon is running.
func (c *CLIFormatter) PrintStatus(s *StatusOutput) {
	c.Println()
	if !s.Running {
		c.Println(indent + c.render(styleMuted, "○ Inactive"))
		c.Println()
		return
	}

	line := fmt.Sprintf("%s%s %s │ PID: %s",
		indent,
		c.render(styleSuccess, "●"),
		c.render(styleSuccess.Bold(true), "Active"),
		c.render(styleCount, strconv.Itoa(s.PID)),
	)
	if s.Uptime != "" {
		line += " │ Uptime: " + s.Uptime
	}
	c.Println(line)
	c.Println()
}

// PrintStats prints a statistics report.
func (c *CLIFormatter) PrintStats(s *Stats) {
	c.Println()
	c.Banner("Keystroke Statistics")
	c.Printf("\n%s%s %s\n", chartIndent, c.render(styleMuted, "Total:"), c.Count(s.Total))

	if s.ShowDaily {
		c.section(fmt.Sprintf("Daily Activity (Last %d Days)", s.Days))
		if len(s.Daily) == 0 {
			c.Println(chartIndent + c.render(styleMuted, "No activity recorded yet"))
		} else {
			for _, line := range chartLines(s.Chronological(), ChartHeight, c.palette()) {
				c.Println(line)
			}
			c.Println()
			for _, r := range s.Daily {
				c.Printf("%s%s │ %s\n",
					chartIndent,
					c.render(styleMuted, clock.DisplayDate(r.Timestamp)),
					c.render(styleSuccess, strconv.FormatUint(r.Count, 10)),
				)
			}
		}
	}

	if s.Weekly != nil {
		c.section("Weekly Summary (7 days)")
		c.Printf("%s%s keystrokes\n", chartIndent, c.Count(*s.Weekly))
	}

	if s.Monthly != nil {
		c.section("Monthly Summary (30 days)")
		c.Printf("%s%s keystrokes\n", chartIndent, c.Count(*s.Monthly))
	}

	if s.Since != nil {
		title := "Since " + s.Since.From.Format("02 Jan 2006 15:04")
		if s.Since.Label != "" {
			title = fmt.Sprintf("Since %s (%s)", s.Since.Label, s.Since.From.Format("02 Jan 2006 15:04"))
		}
		c.section(title)
		c.Printf("%s%s keystrokes\n", chartIndent, c.Count(s.Since.Count))
	}

	c.Println()
}

func (c *CLIFormatter) section(title string) {
	c.Printf("\n%s%s\n", chartIndent, c.render(styleHeading, title))
	c.Printf("%s%s\n\n", chartIndent, c.render(styleMuted, strings.Repeat("─", 28)))
}

func (c *CLIFormatter) palette() chartPalette {
	if !c.IsColorEnabled() {
		return chartPalette{}
	}
	return chartPalette{
		peak:  func(s string) string { return styleCount.Render(s) },
		bar:   func(s string) string { return styleBar.Render(s) },
		empty: func(s string) string { return styleEmpty.Render(s) },
		axis:  func(s string) string { return styleMuted.Render(s) },
		label: func(s string) string { return styleMuted.Render(s) },
	}
}
