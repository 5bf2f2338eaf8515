package system

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"time"
)

// waitDelay bounds how long Execute waits for output after ctx is done.
// A grandchild that outlives the kill may still hold the stdout pipe.
const waitDelay = time.Second

// osExecutor implements CommandExecutor using real OS operations.
type osExecutor struct{}

func (e *osExecutor) Execute(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	// A relative name is resolved against Dir.
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay
	killProcessGroup(cmd)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = io.Discard

	err := cmd.Run()
	return stdout.Bytes(), err
}

// exitCoder is implemented by *exec.ExitError and MockExitError.
type exitCoder interface {
	ExitCode() int
}

// ExitCode reports the exit status carried by err, if any.
// It returns 0 for a nil error and false when err is not an exit status,
// i.e. the process could not be started or was not waited on.
func ExitCode(err error) (int, bool) {
	if err == nil {
		return 0, true
	}
	var coded exitCoder
	if errors.As(err, &coded) {
		return coded.ExitCode(), true
	}
	return 0, false
}
