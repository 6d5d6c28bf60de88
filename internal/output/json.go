package output

import (
	"time"

	"github.com/keystr/keystr/internal/clock"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// StatusOutput represents the daemon status.
type StatusOutput struct {
	Status    string `json:"status"`
	Running   bool   `json:"running"`
	PID       int    `json:"pid,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	StartedAt string `json:"started_at,omitempty"`
	Uptime    string `json:"uptime,omitempty"`
}

// NewStatusOutput builds a StatusOutput.
func NewStatusOutput(running bool, pid int, sessionID string, startedAt time.Time, uptime string) *StatusOutput {
	out := &StatusOutput{
		Status:  "inactive",
		Running: running,
	}
	if !running {
		return out
	}

	out.Status = "active"
	out.PID = pid
	out.SessionID = sessionID
	out.Uptime = uptime
	if !startedAt.IsZero() {
		out.StartedAt = startedAt.Format(time.RFC3339)
	}
	return out
}

// ActionResponse reports the outcome of a command that changes state.
type ActionResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	PID     int    `json:"pid,omitempty"`
	Path    string `json:"path,omitempty"`
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status     string `json:"status"`
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

// DailyOutput represents one day in JSON output.
type DailyOutput struct {
	Date      string `json:"date"`
	Bucket    string `json:"bucket"`
	Count     uint64 `json:"count"`
	Timestamp uint64 `json:"timestamp"`
}

// SinceOutput represents the --since section.
type SinceOutput struct {
	Expression string `json:"expression,omitempty"`
	From       string `json:"from"`
	Count      uint64 `json:"count"`
}

// StatsResponse represents statistics output in JSON.
type StatsResponse struct {
	TotalCount uint64        `json:"total_count"`
	Daily      []DailyOutput `json:"daily,omitempty"`
	Weekly     *uint64       `json:"weekly,omitempty"`
	Monthly    *uint64       `json:"monthly,omitempty"`
	Since      *SinceOutput  `json:"since,omitempty"`
}

// NewStatsResponse converts a report to its JSON form.
func NewStatsResponse(s *Stats) *StatsResponse {
	resp := &StatsResponse{
		TotalCount: s.Total,
		Weekly:     s.Weekly,
		Monthly:    s.Monthly,
	}

	if s.ShowDaily {
		resp.Daily = make([]DailyOutput, len(s.Daily))
		for i, r := range s.Daily {
			resp.Daily[i] = DailyOutput{
				Date:      clock.DisplayDate(r.Timestamp),
				Bucket:    r.Date,
				Count:     r.Count,
				Timestamp: r.Timestamp,
			}
		}
	}

	if s.Since != nil {
		resp.Since = &SinceOutput{
			Expression: s.Since.Label,
			From:       s.Since.From.Format(time.RFC3339),
			Count:      s.Since.Count,
		}
	}

	return resp
}

// PrintStats outputs a statistics report.
func (j *JSONFormatter) PrintStats(s *Stats) error {
	return j.JSON(NewStatsResponse(s))
}

// PrintStatus outputs the daemon status.
func (j *JSONFormatter) PrintStatus(s *StatusOutput) error {
	return j.JSON(s)
}

// PrintAction outputs the result of a state-changing command.
func (j *JSONFormatter) PrintAction(status, message string, pid int, path string) error {
	return j.JSON(ActionResponse{
		Status:  status,
		Message: message,
		PID:     pid,
		Path:    path,
	})
}

// PrintError outputs an error in JSON format.
func (j *JSONFormatter) PrintError(errMsg, suggestion string) error {
	return j.JSON(ErrorResponse{
		Status:     "error",
		Error:      errMsg,
		Suggestion: suggestion,
	})
}
