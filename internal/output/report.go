package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/keystr/keystr/internal/clock"
	"github.com/keystr/keystr/internal/model"
)

// DefaultDailyDays is the number of records in the daily view.
const DefaultDailyDays = 7

// StatsOptions selects the sections of a statistics report.
type StatsOptions struct {
	Daily   bool
	Weekly  bool
	Monthly bool
	Days    int

	// Since, when set, adds a section summing records from that instant.
	Since      *time.Time
	SinceLabel string
}

// Stats is a statistics report ready to render.
type Stats struct {
	Total     uint64
	ShowDaily bool
	Days      int
	// Daily holds the most recent records, newest first.
	Daily   []model.DailyRecord
	Weekly  *uint64
	Monthly *uint64
	Since   *SinceSummary
}

// SinceSummary is the total recorded since a user-supplied instant.
type SinceSummary struct {
	Label string
	From  time.Time
	Count uint64
}

// BuildStats computes a report for s at now. The daily view is shown when
// asked for or when no other section is.
func BuildStats(s *model.Statistics, now time.Time, opts StatsOptions) *Stats {
	days := opts.Days
	if days <= 0 {
		days = DefaultDailyDays
	}

	report := &Stats{
		Total:     s.TotalCount,
		ShowDaily: opts.Daily || (!opts.Weekly && !opts.Monthly && opts.Since == nil),
		Days:      days,
	}

	if report.ShowDaily {
		report.Daily = s.RecentDaily(days)
	}
	if opts.Weekly {
		v := s.Weekly(now)
		report.Weekly = &v
	}
	if opts.Monthly {
		v := s.Monthly(now)
		report.Monthly = &v
	}
	if opts.Since != nil {
		window := now.Sub(*opts.Since)
		if window < 0 {
			window = 0
		}
		report.Since = &SinceSummary{
			Label: opts.SinceLabel,
			From:  *opts.Since,
			Count: s.WindowedSum(now, window),
		}
	}

	return report
}

// Chronological returns the daily records oldest first, for charting.
func (s *Stats) Chronological() []model.DailyRecord {
	out := make([]model.DailyRecord, len(s.Daily))
	for i, r := range s.Daily {
		out[len(s.Daily)-1-i] = r
	}
	return out
}

// ExportTitle heads the exported report.
const ExportTitle = "Keystroke Counter Statistics"

// DefaultExportPath is used when export is given no --output.
const DefaultExportPath = "keystroke_stats.txt"

// ExportReport renders the plain-text export: the total, every daily
// record in reverse stored order, then the weekly and monthly sums.
func ExportReport(s *model.Statistics, now time.Time) string {
	var b strings.Builder

	b.WriteString(box(ExportTitle, 36))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total Keystrokes: %d\n\n", s.TotalCount)

	b.WriteString("Daily Records:\n")
	b.WriteString(strings.Repeat("─", 36) + "\n")
	for i := len(s.DailyRecords) - 1; i >= 0; i-- {
		r := s.DailyRecords[i]
		fmt.Fprintf(&b, "%s: %d keystrokes\n", clock.DisplayDate(r.Timestamp), r.Count)
	}

	fmt.Fprintf(&b, "\nWeekly Summary (7 days):  %d keystrokes\n", s.Weekly(now))
	fmt.Fprintf(&b, "Monthly Summary (30 days): %d keystrokes\n", s.Monthly(now))

	return b.String()
}

// box draws a single-line rounded frame around title, centred in width.
func box(title string, width int) string {
	pad := width - len([]rune(title))
	if pad < 0 {
		pad = 0
	}
	left := pad / 2
	right := pad - left

	var b strings.Builder
	b.WriteString("╭" + strings.Repeat("─", width) + "╮\n")
	b.WriteString("│" + strings.Repeat(" ", left) + title + strings.Repeat(" ", right) + "│\n")
	b.WriteString("╰" + strings.Repeat("─", width) + "╯\n")
	return b.String()
}
