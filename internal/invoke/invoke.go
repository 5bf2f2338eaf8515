// Package invoke runs the tool under test against a single fixture.
package invoke

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/firefly-engineering/golden/internal/errors"
	"github.com/firefly-engineering/golden/internal/logging"
	"github.com/firefly-engineering/golden/internal/system"
)

// ErrTimeout is returned when a run outlives the per-case timeout.
// The case fails; the run goes on.
var ErrTimeout = stderrors.New("tool timed out")

// ToolRun is the captured outcome of one invocation.
type ToolRun struct {
	Stdout   string
	ExitCode int
	Duration time.Duration
}

// Options configures an Invoker.
type Options struct {
	// Argv is the tool command, at least the executable.
	Argv []string

	// FileFlag precedes the fixture path, "-f" by default.
	FileFlag string

	// Dir is the working directory, normally the fixture root.
	Dir string

	// Timeout bounds each run; zero waits indefinitely.
	Timeout time.Duration
}

// Invoker launches the tool once per fixture.
type Invoker struct {
	executor system.CommandExecutor
	opts     Options
}

// New creates an Invoker using executor to start processes.
func New(executor system.CommandExecutor, opts Options) (*Invoker, error) {
	if len(opts.Argv) == 0 || opts.Argv[0] == "" {
		return nil, errors.ConfigError("tool command is empty", nil)
	}
	if opts.FileFlag == "" {
		return nil, errors.ConfigError("file flag is empty", nil)
	}
	return &Invoker{executor: executor, opts: opts}, nil
}

// Args returns the arguments passed to the tool for fixturePath.
func (i *Invoker) Args(fixturePath string) []string {
	args := make([]string, 0, len(i.opts.Argv)+1)
	args = append(args, i.opts.Argv[1:]...)
	return append(args, i.opts.FileFlag, fixturePath)
}

// CommandLine renders the invocation for fixturePath as a shell command.
func (i *Invoker) CommandLine(fixturePath string) string {
	return shellquote.Join(append([]string{i.opts.Argv[0]}, i.Args(fixturePath)...)...)
}

// Run invokes the tool on fixturePath and captures its standard output.
// A non-zero exit status is not an error. A tool that cannot be started is
// a *errors.HarnessError with ExitToolFailed; an expired per-case timeout
// is ErrTimeout; a cancelled ctx returns ctx.Err().
func (i *Invoker) Run(ctx context.Context, fixturePath string) (ToolRun, error) {
	runCtx := ctx
	if i.opts.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, i.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := i.executor.Execute(runCtx, i.opts.Dir, i.opts.Argv[0], i.Args(fixturePath)...)
	run := ToolRun{Stdout: string(out), Duration: time.Since(start)}

	if ctx.Err() != nil {
		return run, ctx.Err()
	}
	if runCtx.Err() != nil {
		logging.Warn("tool timed out", "fixture", fixturePath, "timeout", i.opts.Timeout)
		return run, fmt.Errorf("%w after %s", ErrTimeout, i.opts.Timeout)
	}

	code, ok := system.ExitCode(err)
	if !ok {
		return run, errors.ToolFailed(i.opts.Argv[0], err)
	}
	run.ExitCode = code

	logging.Debug("tool finished",
		"command", i.CommandLine(fixturePath),
		"exit", code,
		"duration", run.Duration.Round(time.Millisecond),
		"bytes", len(out))

	return run, nil
}
