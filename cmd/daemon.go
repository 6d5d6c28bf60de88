package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/keystr/keystr/internal/config"
	"github.com/keystr/keystr/internal/daemon"
	"github.com/keystr/keystr/internal/logging"
)

// daemonCmd is the entry point of the detached monitor process spawned by
// start. Its stdout and stderr are the daemon log file.
var daemonCmd = &cobra.Command{
	Use:    "daemon",
	Short:  "Run the keystroke monitor in the foreground",
	Hidden: true,
	RunE:   runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	logCfg := logging.DefaultConfig()
	logCfg.Output = cmd.ErrOrStderr()
	if level, err := logging.ParseLevel(config.Global.LogLevel); err == nil {
		logCfg.Level = level
	}
	if ctx.Debug {
		logCfg.Level = slog.LevelDebug
		logCfg.AddSource = true
	}
	logging.Init(logCfg)

	d := daemon.New(daemon.Options{
		Paths:   ctx.Paths,
		Gateway: ctx.Gateway,
	})

	if err := d.Run(context.Background()); err != nil {
		logging.Error("monitor exited with error", logging.KeyError, err)
		return err
	}
	return nil
}
