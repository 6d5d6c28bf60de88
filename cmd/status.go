package cmd

import (
	"github.com/spf13/cobra"

	"github.com/keystr/keystr/internal/output"
)

// statusCmd represents the status command.
var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"st"},
	Short:   "Show whether the keystroke monitor is running",
	RunE:    runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// runStatus shows the monitor status.
func runStatus(cmd *cobra.Command, args []string) error {
	st := ctx.Controller.Status()
	out := output.NewStatusOutput(st.Running, st.PID, st.SessionID, st.StartedAt, st.Uptime)

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintStatus(out)
	}

	ctx.CLIFormatter().PrintStatus(out)
	return nil
}
