package cmd

import (
	"github.com/spf13/cobra"

	"github.com/keystr/keystr/internal/errors"
	"github.com/keystr/keystr/internal/model"
)

// initCmd represents the init command.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the keystr data directory",
	Long: `Create the keystr configuration directory and an empty statistics file.
Running init again leaves existing statistics untouched.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if err := ctx.Paths.Ensure(); err != nil {
		return errors.NewSystemErrorWithOp("init", "failed to create keystr directories", err)
	}

	path := ctx.Gateway.Path()
	created := false
	if !ctx.Gateway.Exists() {
		if err := ctx.Gateway.Save(model.NewStatistics()); err != nil {
			return err
		}
		created = true
	}

	if ctx.IsJSON() {
		status := "exists"
		if created {
			status = "initialized"
		}
		return ctx.JSONFormatter().PrintAction(status, "keystr data directory ready", 0, path)
	}

	cli := ctx.CLIFormatter()
	if created {
		cli.Success("Initialized keystr in " + ctx.Paths.Dir)
	} else {
		cli.Info("keystr is already initialized in " + ctx.Paths.Dir)
	}
	return nil
}
