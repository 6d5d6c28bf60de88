package runtime

import (
	"fmt"
	"io"
	"os"

	"github.com/keystr/keystr/internal/errors"
	"github.com/keystr/keystr/internal/output"
)

// ReportError renders err for the user: a JSON error response when the
// context is in JSON mode, otherwise "Error: " plus the message and its
// suggestion on stderr. A nil context falls back to plain stderr output.
func ReportError(c *Context, err error) {
	if err == nil {
		return
	}

	if c != nil && c.IsJSON() {
		_ = c.JSONFormatter().PrintError(err.Error(), errors.GetSuggestion(err))
		return
	}

	var w io.Writer = os.Stderr
	if c != nil && c.ErrWriter != nil {
		w = c.ErrWriter
	}

	if c != nil && c.Formatter.IsColorEnabled() {
		cli := output.NewCLIFormatter(&output.Formatter{
			Writer:    w,
			Format:    output.FormatCLI,
			ColorMode: c.Formatter.ColorMode,
		})
		cli.Error(errors.FormatError(err))
		return
	}

	fmt.Fprintf(w, "Error: %s\n", errors.FormatError(err))
}
