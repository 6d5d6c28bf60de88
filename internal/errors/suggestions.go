package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	ErrNotRunning:     "Use 'keystr start' to begin counting.",
	ErrAlreadyRunning: "Use 'keystr status' to see the running monitor, or 'keystr stop' to stop it.",
	ErrDiskFull:       "Free up disk space and try again.",
	ErrNoConfigDir:    "Set KEYSTR_HOME or XDG_CONFIG_HOME to a writable directory.",
	ErrHookClosed:     "Check that the monitor has input-monitoring/accessibility permission, then run 'keystr start'.",
	ErrHookInstall:    "Grant input-monitoring/accessibility permission (or start a display session), then run 'keystr start'.",
	ErrInvalidSince:   "Try expressions like '3 days ago', 'last week' or '2025-01-01'.",
}

// GetSuggestion returns a suggestion for an error, if available.
// A UserError's own suggestion wins over the sentinel table.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	return ""
}

// FormatError formats an error with its suggestion on a second line.
func FormatError(err error) string {
	msg := err.Error()
	if suggestion := GetSuggestion(err); suggestion != "" {
		msg += "\n" + suggestion
	}
	return msg
}
