package runner

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/niels/pre-commit-checkstyle/pkg/logging"
)

// Common errors
var (
	// ErrStart is returned when a process could not be started at all
	// (missing binary, permission denied, bad working directory)
	ErrStart = errors.New("failed to start process")
	// ErrTimeout is returned when the context deadline expires before the
	// process exits
	ErrTimeout = errors.New("process timed out")
)

// Result holds the outcome of a process that ran to completion
type Result struct {
	ExitCode int    // -1 when the process was terminated by a signal
	Output   []byte // combined stdout and stderr
}

// Success reports whether the process exited with status 0
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Killed reports whether the process was terminated by a signal instead
// of exiting
func (r *Result) Killed() bool {
	return r.ExitCode < 0
}

// Runner is an interface for running commands. A non-zero exit status is
// reported through Result, never as an error.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) (*Result, error)
}

// ExecRunner implements Runner using os/exec
type ExecRunner struct{}

// NewExecRunner creates a runner backed by real subprocesses
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes a command in dir and captures its combined output
func (r *ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) (*Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	// Children that inherit the output pipe must not keep us waiting
	// after the process itself has been killed
	cmd.WaitDelay = time.Second

	start := time.Now()
	output, err := cmd.CombinedOutput()
	log := logging.WithComponent("runner")
	log.Debug().Str("command", name).Strs("args", args).Dur("duration", time.Since(start)).Err(err).Msg("Process finished")
	if err == nil {
		return &Result{ExitCode: 0, Output: output}, nil
	}

	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("%w: %s", ErrTimeout, name)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &Result{ExitCode: exitErr.ExitCode(), Output: output}, nil
	}

	return nil, fmt.Errorf("%w %s: %w", ErrStart, name, err)
}
