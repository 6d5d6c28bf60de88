package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/keystr/keystr/internal/config"
	"github.com/keystr/keystr/internal/output"
	"github.com/keystr/keystr/internal/parser"
)

// Stats command flags.
var (
	statsFlagDaily   bool
	statsFlagWeekly  bool
	statsFlagMonthly bool
	statsFlagDays    int
	statsFlagSince   string
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"s", "report"},
	Short:   "Show keystroke statistics",
	Long: `Show the total keystroke count with daily, weekly or monthly breakdowns.
The daily view is shown when no other view is selected.

Examples:
  keystr stats
  keystr stats --daily --days 14
  keystr stats --weekly --monthly
  keystr stats --since "3 days ago"
  keystr stats --since "last month" --format json`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVarP(&statsFlagDaily, "daily", "d", false, "Show daily records with a bar chart")
	statsCmd.Flags().BoolVarP(&statsFlagWeekly, "weekly", "w", false, "Show the 7-day total")
	statsCmd.Flags().BoolVarP(&statsFlagMonthly, "monthly", "m", false, "Show the 30-day total")
	statsCmd.Flags().IntVarP(&statsFlagDays, "days", "n", 0, "Number of daily records to show (default from config)")
	statsCmd.Flags().StringVar(&statsFlagSince, "since", "", "Also total keystrokes since a time (e.g. 'yesterday', 'last week')")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	now := time.Now()
	stats := ctx.Gateway.Load()

	opts := output.StatsOptions{
		Daily:   statsFlagDaily,
		Weekly:  statsFlagWeekly,
		Monthly: statsFlagMonthly,
		Days:    statsFlagDays,
	}
	if opts.Days <= 0 {
		opts.Days = config.Global.Stats.DailyDays
	}

	if statsFlagSince != "" {
		since, err := parser.ParseSince(statsFlagSince, now)
		if err != nil {
			return err
		}
		opts.Since = &since
		opts.SinceLabel = statsFlagSince
	}

	ctx.Debugf("loaded %d daily records from %s", len(stats.DailyRecords), ctx.Gateway.Path())
	report := output.BuildStats(stats, now, opts)

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintStats(report)
	}

	ctx.CLIFormatter().PrintStats(report)
	return nil
}
