package output

import (
	"strconv"
	"strings"

	"github.com/keystr/keystr/internal/clock"
	"github.com/keystr/keystr/internal/model"
)

// ChartHeight is the number of bar rows in the daily chart.
const ChartHeight = 10

const (
	chartIndent = "     "
	chartBar    = "██"
	chartEmpty  = "··"
	chartAxis   = "──"
)

// chartPalette colours the parts of a chart. The zero value is uncoloured.
type chartPalette struct {
	peak  func(string) string
	bar   func(string) string
	empty func(string) string
	axis  func(string) string
	label func(string) string
}

func (p chartPalette) paint(f func(string) string, s string) string {
	if f == nil {
		return s
	}
	return f(s)
}

// Chart draws records (oldest first) as a vertical bar chart with the
// maximum on top and the day of month under each column.
func Chart(records []model.DailyRecord, height int) []string {
	return chartLines(records, height, chartPalette{})
}

func chartLines(records []model.DailyRecord, height int, p chartPalette) []string {
	if len(records) == 0 || height <= 0 {
		return nil
	}

	var max uint64
	for _, r := range records {
		if r.Count > max {
			max = r.Count
		}
	}
	scale := float64(max) / float64(height)

	lines := make([]string, 0, height+3)
	lines = append(lines, chartIndent+p.paint(p.label, strconv.FormatUint(max, 10)))

	cells := make([]string, len(records))
	for row := height - 1; row >= 0; row-- {
		threshold := uint64(float64(row) * scale)
		for i, r := range records {
			switch {
			case r.Count > threshold && r.Count == max && row == height-1:
				cells[i] = p.paint(p.peak, chartBar)
			case r.Count > threshold:
				cells[i] = p.paint(p.bar, chartBar)
			default:
				cells[i] = p.paint(p.empty, chartEmpty)
			}
		}
		lines = append(lines, chartIndent+strings.Join(cells, " "))
	}

	for i := range records {
		cells[i] = p.paint(p.axis, chartAxis)
	}
	lines = append(lines, chartIndent+strings.Join(cells, " "))

	for i, r := range records {
		cells[i] = p.paint(p.label, clock.DayOfMonth(r.Timestamp))
	}
	lines = append(lines, chartIndent+strings.Join(cells, " "))

	return lines
}
