// Package runtime provides the per-command context for keystr.
package runtime

import (
	"io"
	"os"

	"github.com/keystr/keystr/internal/config"
	"github.com/keystr/keystr/internal/daemon"
	"github.com/keystr/keystr/internal/errors"
	"github.com/keystr/keystr/internal/output"
	"github.com/keystr/keystr/internal/storage"
)

// Context holds the application runtime context.
type Context struct {
	Paths      storage.Paths
	Gateway    *storage.JSONFile
	Controller *daemon.Controller
	Formatter  *output.Formatter
	Config     *config.RuntimeConfig

	// ErrWriter receives human-readable error output.
	ErrWriter io.Writer

	// Debug mode
	Debug bool
}

// Options configures the runtime context.
type Options struct {
	Format    output.Format
	ColorMode output.ColorMode
	Debug     bool

	// Paths overrides directory resolution when Paths.Dir is set.
	Paths storage.Paths
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
	}
}

// New resolves the keystr directories, loads the configuration file and
// builds the context. The loaded configuration becomes config.Global.
func New(opts Options) (*Context, error) {
	paths := opts.Paths
	if paths.Dir == "" {
		resolved, err := storage.ResolvePaths()
		if err != nil {
			return nil, err
		}
		paths = resolved
	}

	cfg, err := config.Load(paths.ConfigFile())
	if err != nil {
		return nil, errors.NewUserError(err.Error(),
			"Fix or remove "+paths.ConfigFile()+" and try again.")
	}
	config.Global = cfg

	formatter := output.NewFormatter()
	if opts.Format != "" {
		formatter.Format = opts.Format
	}
	if opts.ColorMode != "" {
		formatter.ColorMode = opts.ColorMode
	}

	return &Context{
		Paths:      paths,
		Gateway:    storage.NewJSONFile(paths.DataFile()),
		Controller: daemon.NewController(paths, nil),
		Formatter:  formatter,
		Config:     cfg,
		ErrWriter:  os.Stderr,
		Debug:      opts.Debug,
	}, nil
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.IsJSON()
}

// Debugf prints debug output if debug mode is enabled.
func (c *Context) Debugf(format string, args ...interface{}) {
	if c.Debug {
		c.Formatter.Printf("[DEBUG] "+format+"\n", args...)
	}
}
