package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/keystr/keystr/internal/output"
	"github.com/keystr/keystr/internal/storage"
)

// Export command flags.
var (
	exportFlagOutput string
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:     "export",
	Aliases: []string{"ex", "dump"},
	Short:   "Write a text report of all statistics",
	Long: `Write a plain text report with the total, every daily record and the
weekly and monthly totals.

Examples:
  keystr export
  keystr export -o ~/typing.txt`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFlagOutput, "output", "o", output.DefaultExportPath, "Report file")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	report := output.ExportReport(ctx.Gateway.Load(), time.Now())

	if err := storage.SafeWrite(exportFlagOutput, []byte(report), 0644); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintAction("exported", "statistics exported", 0, exportFlagOutput)
	}

	ctx.CLIFormatter().Success("Statistics exported to " + exportFlagOutput)
	return nil
}
