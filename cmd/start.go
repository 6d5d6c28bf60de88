package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keystr/keystr/internal/daemon"
	"github.com/keystr/keystr/internal/errors"
)

// startCmd represents the start command.
var startCmd = &cobra.Command{
	Use:     "start",
	Aliases: []string{"run", "on"},
	Short:   "Start the keystroke monitor in the background",
	Long: `Start the background monitor. It counts every key press and saves the
totals periodically and on shutdown.

Examples:
  keystr start
  keystr start --debug`,
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	exe, err := daemon.Executable()
	if err != nil {
		return err
	}

	daemonArgs := []string{daemonCmd.Name()}
	if ctx.Debug {
		daemonArgs = append(daemonArgs, "--debug")
	}

	if pid, ok := ctx.Controller.Registry().CurrentRunningPID(); ok {
		return reportAlreadyRunning(pid)
	}

	if !ctx.IsJSON() {
		ctx.CLIFormatter().Step("Starting keystroke monitor...")
	}

	pid, err := ctx.Controller.Start(exe, daemonArgs)
	if errors.Is(err, errors.ErrAlreadyRunning) {
		return reportAlreadyRunning(pid)
	}
	if err != nil {
		return err
	}

	logPath := ctx.Paths.LogFile()
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintAction("started", "keystroke monitor started", pid, logPath)
	}

	cli := ctx.CLIFormatter()
	cli.Success(fmt.Sprintf("Keystroke monitor started (PID %d)", pid))
	cli.Muted("Logs: " + logPath)
	return nil
}

// reportAlreadyRunning treats start on a running monitor as a no-op.
func reportAlreadyRunning(pid int) error {
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintAction("already_running", "monitoring is already active", pid, "")
	}
	ctx.CLIFormatter().Info(fmt.Sprintf("Monitoring is already active (PID %d)", pid))
	return nil
}
