package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/keystr/keystr/internal/errors"
	"github.com/keystr/keystr/internal/model"
)

// Reset command flags.
var (
	resetFlagYes bool
)

// stdinIsTerminal reports whether confirmation can be asked interactively.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// resetCmd represents the reset command.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all keystroke statistics",
	Long: `Delete all recorded keystroke statistics. The monitor must be stopped
first. Without --yes, reset asks for confirmation and declines when stdin is
not a terminal.`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetFlagYes, "yes", "y", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	if pid, ok := ctx.Controller.Registry().CurrentRunningPID(); ok {
		return errors.NewUserError(
			fmt.Sprintf("cannot reset while the monitor is running (PID %d)", pid),
			"Run 'keystr stop' first, then reset.")
	}

	if !resetFlagYes {
		confirmed := stdinIsTerminal() && confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
			"This permanently deletes all keystroke statistics. Continue? [y/N]: ")
		if !confirmed {
			if ctx.IsJSON() {
				return ctx.JSONFormatter().PrintAction("cancelled", "reset cancelled", 0, "")
			}
			ctx.CLIFormatter().Muted("Reset cancelled")
			return nil
		}
	}

	if err := ctx.Gateway.Save(model.NewStatistics()); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintAction("reset", "statistics reset", 0, ctx.Gateway.Path())
	}

	ctx.CLIFormatter().Success("All keystroke statistics have been reset")
	return nil
}

// confirm prints prompt and reports whether the answer is y or yes.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
