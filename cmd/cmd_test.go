package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keystr/keystr/internal/config"
	"github.com/keystr/keystr/internal/errors"
	"github.com/keystr/keystr/internal/model"
	"github.com/keystr/keystr/internal/output"
	"github.com/keystr/keystr/internal/storage"
)

// setupHome points KEYSTR_HOME at a temporary directory and restores the
// package-level flag state after the test.
func setupHome(t *testing.T) storage.Paths {
	t.Helper()
	home := t.TempDir()
	t.Setenv(storage.EnvHome, home)

	savedConfig := config.Global
	savedTerminal := stdinIsTerminal
	t.Cleanup(func() {
		config.Global = savedConfig
		stdinIsTerminal = savedTerminal
		ctx = nil
	})

	return storage.PathsAt(home)
}

// execute runs the CLI with args and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	flagFormat, flagColor, flagDebug = "cli", "never", false
	statsFlagDaily, statsFlagWeekly, statsFlagMonthly = false, false, false
	statsFlagDays, statsFlagSince = 0, ""
	exportFlagOutput = output.DefaultExportPath
	resetFlagYes = false

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--color=never"}, args...))

	err := Execute()
	return stdout.String(), stderr.String(), err
}

func seedStats(t *testing.T, paths storage.Paths, presses int) {
	t.Helper()
	stats := model.NewStatistics()
	now := time.Now()
	for i := 0; i < presses; i++ {
		require.NoError(t, stats.Increment(now))
	}
	require.NoError(t, storage.NewJSONFile(paths.DataFile()).Save(stats))
}

func markRunning(t *testing.T, paths storage.Paths) {
	t.Helper()
	pid := []byte(strconv.Itoa(os.Getpid()))
	require.NoError(t, os.WriteFile(paths.PIDFile(), pid, 0600))
}

// =============================================================================
// Command Tests
// =============================================================================

func TestInitCommand(t *testing.T) {
	paths := setupHome(t)

	out, _, err := execute(t, "", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized keystr")
	assert.FileExists(t, paths.DataFile())

	seedStats(t, paths, 3)
	out, _, err = execute(t, "", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "already initialized")
	assert.Equal(t, uint64(3), storage.NewJSONFile(paths.DataFile()).Load().TotalCount)
}

func TestStatsCommandJSON(t *testing.T) {
	paths := setupHome(t)
	seedStats(t, paths, 12)

	out, _, err := execute(t, "", "stats", "--weekly", "--format", "json")
	require.NoError(t, err)

	var resp output.StatsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, uint64(12), resp.TotalCount)
	require.NotNil(t, resp.Weekly)
	assert.Equal(t, uint64(12), *resp.Weekly)
	assert.Empty(t, resp.Daily)
}

func TestStatsCommandDailyDefault(t *testing.T) {
	paths := setupHome(t)
	seedStats(t, paths, 4)

	out, _, err := execute(t, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Keystroke Statistics")
	assert.Contains(t, out, "Daily Activity (Last 7 Days)")
}

func TestStatsCommandEmpty(t *testing.T) {
	setupHome(t)

	out, _, err := execute(t, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "No activity recorded yet")
}

func TestStatsCommandInvalidSince(t *testing.T) {
	setupHome(t)

	_, stderr, err := execute(t, "", "stats", "--since", "xyzzy plugh")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidSince))
	assert.Contains(t, stderr, "Error:")
}

func TestExportCommand(t *testing.T) {
	paths := setupHome(t)
	seedStats(t, paths, 5)
	target := filepath.Join(t.TempDir(), "report.txt")

	out, _, err := execute(t, "", "export", "--output", target)
	require.NoError(t, err)
	assert.Contains(t, out, target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), output.ExportTitle)
	assert.Contains(t, string(data), "Total Keystrokes: 5")
	assert.Contains(t, string(data), "Weekly Summary (7 days):  5 keystrokes")
}

func TestResetCommand(t *testing.T) {
	t.Run("with_yes", func(t *testing.T) {
		paths := setupHome(t)
		seedStats(t, paths, 9)

		out, _, err := execute(t, "", "reset", "--yes")
		require.NoError(t, err)
		assert.Contains(t, out, "reset")
		assert.True(t, storage.NewJSONFile(paths.DataFile()).Load().IsEmpty())
	})

	t.Run("confirmed_interactively", func(t *testing.T) {
		paths := setupHome(t)
		seedStats(t, paths, 9)
		stdinIsTerminal = func() bool { return true }

		_, _, err := execute(t, "YES\n", "reset")
		require.NoError(t, err)
		assert.True(t, storage.NewJSONFile(paths.DataFile()).Load().IsEmpty())
	})

	t.Run("declined", func(t *testing.T) {
		paths := setupHome(t)
		seedStats(t, paths, 9)
		stdinIsTerminal = func() bool { return true }

		out, _, err := execute(t, "n\n", "reset")
		require.NoError(t, err)
		assert.Contains(t, out, "cancelled")
		assert.Equal(t, uint64(9), storage.NewJSONFile(paths.DataFile()).Load().TotalCount)
	})

	t.Run("non_terminal_declines", func(t *testing.T) {
		paths := setupHome(t)
		seedStats(t, paths, 9)
		stdinIsTerminal = func() bool { return false }

		out, _, err := execute(t, "y\n", "reset")
		require.NoError(t, err)
		assert.Contains(t, out, "cancelled")
		assert.Equal(t, uint64(9), storage.NewJSONFile(paths.DataFile()).Load().TotalCount)
	})

	t.Run("refused_while_running", func(t *testing.T) {
		paths := setupHome(t)
		seedStats(t, paths, 9)
		require.NoError(t, paths.Ensure())
		markRunning(t, paths)

		_, stderr, err := execute(t, "", "reset", "--yes")
		require.Error(t, err)
		assert.True(t, errors.IsUserError(err))
		assert.Contains(t, stderr, "keystr stop")
		assert.Equal(t, uint64(9), storage.NewJSONFile(paths.DataFile()).Load().TotalCount)
	})
}

func TestStopCommandNotRunning(t *testing.T) {
	setupHome(t)

	_, stderr, err := execute(t, "", "stop")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotRunning))
	assert.True(t, errors.IsUserError(err))
	assert.Contains(t, stderr, "monitor is not running")
	assert.Contains(t, stderr, "keystr start")
}

func TestStopCommandNotRunningJSON(t *testing.T) {
	setupHome(t)

	out, _, err := execute(t, "", "stop", "--format", "json")
	require.Error(t, err)

	var resp output.ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "monitor is not running", resp.Error)
}

func TestStartCommandAlreadyRunning(t *testing.T) {
	t.Run("cli", func(t *testing.T) {
		paths := setupHome(t)
		require.NoError(t, paths.Ensure())
		markRunning(t, paths)

		out, _, err := execute(t, "", "start")
		require.NoError(t, err)
		assert.Contains(t, out, "Monitoring is already active (PID "+strconv.Itoa(os.Getpid())+")")
		assert.NotContains(t, out, "Starting")
	})

	t.Run("json", func(t *testing.T) {
		paths := setupHome(t)
		require.NoError(t, paths.Ensure())
		markRunning(t, paths)

		out, _, err := execute(t, "", "start", "--format", "json")
		require.NoError(t, err)

		var resp map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.Equal(t, "already_running", resp["status"])
		assert.EqualValues(t, os.Getpid(), resp["pid"])
	})
}

func TestStatusCommand(t *testing.T) {
	t.Run("inactive", func(t *testing.T) {
		setupHome(t)

		out, _, err := execute(t, "", "status", "--format", "json")
		require.NoError(t, err)

		var resp output.StatusOutput
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.Equal(t, "inactive", resp.Status)
		assert.False(t, resp.Running)
	})

	t.Run("active", func(t *testing.T) {
		paths := setupHome(t)
		require.NoError(t, paths.Ensure())
		markRunning(t, paths)

		out, _, err := execute(t, "", "status")
		require.NoError(t, err)
		assert.Contains(t, out, "Active")
		assert.Contains(t, out, strconv.Itoa(os.Getpid()))
	})

	t.Run("default_command", func(t *testing.T) {
		setupHome(t)

		out, _, err := execute(t, "")
		require.NoError(t, err)
		assert.Contains(t, out, "Inactive")
	})
}

func TestWatchRejectsJSON(t *testing.T) {
	setupHome(t)

	_, _, err := execute(t, "", "watch", "--format", "json")
	require.Error(t, err)
	assert.True(t, errors.IsUserError(err))
}

func TestInvalidFormatFlag(t *testing.T) {
	setupHome(t)

	_, stderr, err := execute(t, "", "status", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, stderr, "unknown output format")
}

func TestVersionCommand(t *testing.T) {
	setupHome(t)

	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "keystr "+Version)
}

func TestDaemonCommandIsHidden(t *testing.T) {
	assert.True(t, daemonCmd.Hidden)
	assert.Equal(t, "daemon", daemonCmd.Name())
}

// =============================================================================
// Confirmation Tests
// =============================================================================

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"yes\n", true},
		{"  Yes  \n", true},
		{"Y", true},
		{"n\n", false},
		{"\n", false},
		{"yep\n", false},
		{"", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		got := confirm(strings.NewReader(tt.input), &out, "Continue? ")
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Equal(t, "Continue? ", out.String())
	}
}
