// Package app provides the application context for golden.
// It allows dependency injection for testing.
package app

import (
	"io"
	"os"
	"path/filepath"

	"github.com/firefly-engineering/golden/internal/audit"
	"github.com/firefly-engineering/golden/internal/config"
	"github.com/firefly-engineering/golden/internal/errors"
	"github.com/firefly-engineering/golden/internal/fixture"
	"github.com/firefly-engineering/golden/internal/harness"
	"github.com/firefly-engineering/golden/internal/invoke"
	"github.com/firefly-engineering/golden/internal/logging"
	"github.com/firefly-engineering/golden/internal/report"
	"github.com/firefly-engineering/golden/internal/system"
)

// App holds the application dependencies
type App struct {
	// FS reads fixtures
	FS system.FileSystem

	// Executor launches the tool under test
	Executor system.CommandExecutor

	// Out receives the report
	Out io.Writer
}

// Option is a function that configures the App
type Option func(*App)

// WithFS sets a custom file system
func WithFS(fsys system.FileSystem) Option {
	return func(a *App) {
		a.FS = fsys
	}
}

// WithExecutor sets a custom command executor
func WithExecutor(e system.CommandExecutor) Option {
	return func(a *App) {
		a.Executor = e
	}
}

// WithOutput sets the report destination
func WithOutput(w io.Writer) Option {
	return func(a *App) {
		a.Out = w
	}
}

// New creates a new App with the given options.
func New(opts ...Option) *App {
	app := &App{
		FS:       system.DefaultFS(),
		Executor: system.DefaultExecutor(),
		Out:      os.Stdout,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// LoadConfig loads the configuration for root. An explicit path must
// exist; otherwise golden.toml in root is used when present.
func (a *App) LoadConfig(root, path string) (*config.Config, error) {
	required := path != ""
	if !required {
		path = filepath.Join(root, config.DefaultConfigFile)
	}

	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, errors.ConfigError("failed to load configuration", err)
	}
	if a.FS.Exists(path) {
		logging.Debug("loaded config", "path", path)
	}
	return cfg, nil
}

// Suites discovers the fixtures under root.
func (a *App) Suites(root string, cfg *config.Config) ([]fixture.Suite, error) {
	suites, err := fixture.Discover(a.FS, root, cfg.SkipSet())
	if err != nil {
		return nil, err
	}
	logging.Debug("discovered fixtures", "root", root, "suites", len(suites), "cases", fixture.Count(suites))
	return suites, nil
}

// Runner assembles the harness for root and returns it with its reporter.
func (a *App) Runner(root string, cfg *config.Config, verbose bool) (*harness.Runner, *report.Reporter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, errors.ConfigError("invalid configuration", err)
	}

	argv, err := cfg.ToolArgv()
	if err != nil {
		return nil, nil, errors.ConfigError("invalid tool command", err)
	}

	inv, err := invoke.New(a.Executor, invoke.Options{
		Argv:     argv,
		FileFlag: cfg.FileFlag,
		Dir:      root,
		Timeout:  cfg.Timeout.Duration,
	})
	if err != nil {
		return nil, nil, err
	}

	reporter := report.NewReporter(a.Out, report.Options{
		Color:   !cfg.NoColor,
		Verbose: verbose,
	})

	runner := harness.New(a.FS, inv, reporter, cfg.Jobs)
	if j := Journal(root, cfg); j != nil {
		runner.SetJournal(j)
		logging.Debug("journal enabled", "path", j.Path())
	}

	return runner, reporter, nil
}

// Journal returns the run journal configured in cfg, or nil. Relative
// paths resolve from root.
func Journal(root string, cfg *config.Config) *audit.Logger {
	if cfg.Journal == "" {
		return nil
	}
	path := cfg.Journal
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	return audit.NewLogger(path)
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
