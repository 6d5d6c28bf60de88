package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keystr/keystr/internal/errors"
)

// stopCmd represents the stop command.
var stopCmd = &cobra.Command{
	Use:     "stop",
	Aliases: []string{"off", "kill"},
	Short:   "Stop the keystroke monitor",
	Long: `Ask the running monitor to save its totals and exit. A monitor that does
not exit within the kill timeout is terminated forcefully.`,
	RunE: runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	pid, err := ctx.Controller.Stop()
	if errors.Is(err, errors.ErrNotRunning) {
		return errors.NewUserErrorFrom(errors.ErrNotRunning, "monitor is not running", "")
	}
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintAction("stopped", "keystroke monitor stopped", pid, "")
	}

	ctx.CLIFormatter().Success(fmt.Sprintf("Keystroke monitor stopped (PID %d)", pid))
	return nil
}
