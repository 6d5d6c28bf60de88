// Package cmd provides the CLI commands for keystr.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keystr/keystr/internal/errors"
	"github.com/keystr/keystr/internal/logging"
	"github.com/keystr/keystr/internal/output"
	"github.com/keystr/keystr/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat string
	flagColor  string
	flagDebug  bool
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "keystr",
	Short: "Count your keystrokes in the background",
	Long: `keystr runs a small background monitor that counts every key you press
and keeps daily totals, so you can see how much you type.

Examples:
  keystr start
  keystr status
  keystr stats --weekly
  keystr stats --since "last monday"
  keystr stop`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for completion and help commands
		if cmd.Name() == "completion" || cmd.Name() == "help" {
			return nil
		}

		format, err := output.ParseFormat(flagFormat)
		if err != nil {
			return err
		}
		colorMode, err := output.ParseColorMode(flagColor)
		if err != nil {
			return err
		}

		if flagDebug {
			logging.InitDebug()
		}

		opts := runtime.DefaultOptions()
		opts.Format = format
		opts.ColorMode = colorMode
		opts.Debug = flagDebug

		ctx, err = runtime.New(opts)
		if err != nil {
			return err
		}
		ctx.Formatter.Writer = cmd.OutOrStdout()
		ctx.ErrWriter = cmd.ErrOrStderr()
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show current status
		return runStatus(cmd, args)
	},
}

// Execute runs the CLI and reports any error to the user.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	if ctx == nil {
		// Flag parsing or context setup failed before a formatter existed.
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %s\n", errors.FormatError(err))
	} else {
		runtime.ReportError(ctx, err)
	}
	return err
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("keystr %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
	},
}
