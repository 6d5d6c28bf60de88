package cmd

import (
	"github.com/spf13/cobra"

	"github.com/keystr/keystr/internal/config"
	"github.com/keystr/keystr/internal/errors"
	"github.com/keystr/keystr/internal/tui"
)

// watchCmd represents the watch command.
var watchCmd = &cobra.Command{
	Use:     "watch",
	Aliases: []string{"dashboard", "dash", "live"},
	Short:   "Show a live keystroke dashboard",
	Long: `Open a full-screen dashboard with today's count, the weekly, monthly
and all-time totals and a chart of recent days. It refreshes every second.

Keys:
  r       Refresh now
  q/Esc   Quit`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ctx.IsJSON() {
		return errors.NewUserError("watch is interactive and has no JSON output",
			"Use 'keystr stats --format json' instead.")
	}

	return tui.Run(tui.DashboardConfig{
		Loader:    ctx.Gateway,
		Monitor:   ctx.Controller.Registry().CurrentRunningPID,
		ChartDays: config.Global.Stats.DailyDays,
	})
}
