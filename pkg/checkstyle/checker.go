package checkstyle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/niels/pre-commit-checkstyle/pkg/logging"
	"github.com/niels/pre-commit-checkstyle/pkg/output"
	"github.com/niels/pre-commit-checkstyle/pkg/runner"
)

// Flags understood by the checkstyle tool
const (
	CheckFlag = "-c"
	FixFlag   = "-f"
)

// Exit codes for failures that did not come from the tool itself. They
// follow the shell conventions for "timed out" and "command not found".
const (
	ExitCodeTimeout         = 124
	ExitCodeToolKilled      = 125
	ExitCodeToolUnavailable = 127
)

var (
	// ErrToolUnavailable is returned when the checkstyle tool cannot be started
	ErrToolUnavailable = errors.New("checkstyle tool unavailable")
	// ErrToolKilled is returned when the tool is terminated by a signal
	ErrToolKilled = errors.New("checkstyle tool killed")
)

// Outcome is the result of one checkstyle run
type Outcome struct {
	ExitCode int
	Output   string
}

// Passed reports whether every file conforms
func (o *Outcome) Passed() bool {
	return o.ExitCode == 0
}

// Checker runs the external checkstyle tool over a list of files
type Checker struct {
	cmdRunner runner.Runner
	toolPath  string
	workDir   string
	out       io.Writer
	errOut    io.Writer
	formatter *output.TerminalFormatter
}

// Option configures a Checker
type Option func(*Checker)

// WithRunner replaces the process runner
func WithRunner(r runner.Runner) Option {
	return func(c *Checker) { c.cmdRunner = r }
}

// WithWorkDir runs the tool in dir and shows dir in the banner. By
// default the current working directory is used.
func WithWorkDir(dir string) Option {
	return func(c *Checker) { c.workDir = dir }
}

// WithOutput sets where violations and other failures are written
func WithOutput(out io.Writer, errOut io.Writer) Option {
	return func(c *Checker) {
		c.out = out
		c.errOut = errOut
	}
}

// WithFormatter sets the terminal formatter
func WithFormatter(f *output.TerminalFormatter) Option {
	return func(c *Checker) { c.formatter = f }
}

// NewChecker creates a Checker for the tool at toolPath
func NewChecker(toolPath string, opts ...Option) *Checker {
	c := &Checker{
		cmdRunner: runner.NewExecRunner(),
		toolPath:  toolPath,
		out:       os.Stdout,
		errOut:    os.Stderr,
		formatter: output.NewTerminalFormatter(false),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ToolPath returns the configured tool path
func (c *Checker) ToolPath() string {
	return c.toolPath
}

// Run invokes the tool once in check mode. It must not be called with an
// empty file list.
func (c *Checker) Run(ctx context.Context, files []string) (*Outcome, error) {
	args := append([]string{CheckFlag}, files...)

	result, err := c.cmdRunner.Run(ctx, c.workDir, c.toolPath, args...)
	if err != nil {
		if errors.Is(err, runner.ErrStart) {
			return nil, fmt.Errorf("%w: %w", ErrToolUnavailable, err)
		}
		return nil, err
	}
	if result.Killed() {
		return nil, fmt.Errorf("%w: %s: %s", ErrToolKilled, c.toolPath, strings.TrimSpace(string(result.Output)))
	}

	return &Outcome{ExitCode: result.ExitCode, Output: string(result.Output)}, nil
}

// Check validates files and returns the exit code for the hook.
//
// An empty list passes without running the tool. A violation prints the
// remediation banner and the tool output and returns the tool's own exit
// code. A tool that cannot be started or times out returns a distinct
// exit code together with the error.
func (c *Checker) Check(ctx context.Context, files []string) (int, error) {
	if len(files) == 0 {
		logging.Debug("No files to check")
		return 0, nil
	}

	logging.DebugWith("Running checkstyle", map[string]interface{}{
		"tool":  c.toolPath,
		"files": files,
	})

	outcome, err := c.Run(ctx, files)
	if err != nil {
		return c.reportError(err)
	}

	if outcome.Passed() {
		logging.InfoWith("Checkstyle passed", map[string]interface{}{
			"files": len(files),
		})
		return 0, nil
	}

	logging.WarnWith("Checkstyle reported violations", map[string]interface{}{
		"exit_code": outcome.ExitCode,
		"files":     files,
	})

	workDir, err := c.bannerDir()
	if err != nil {
		logging.WarnWith("Failed to get current directory", map[string]interface{}{
			"error": err,
		})
	}
	c.formatter.WriteFailure(c.out, FormatBanner(workDir, c.toolPath, files), outcome.Output)

	return outcome.ExitCode, nil
}

func (c *Checker) reportError(err error) (int, error) {
	switch {
	case errors.Is(err, ErrToolUnavailable):
		logging.ErrorWith("Cannot run checkstyle tool", map[string]interface{}{
			"tool":  c.toolPath,
			"error": err,
		})
		c.formatter.WriteError(c.errOut, fmt.Sprintf(
			"Cannot run the checkstyle tool %q: %v\n"+
				"This is a setup problem, not a style violation. Check that the tool exists and is executable.",
			c.toolPath, err))
		return ExitCodeToolUnavailable, err
	case errors.Is(err, ErrToolKilled):
		logging.ErrorWith("Checkstyle tool was killed", map[string]interface{}{
			"tool":  c.toolPath,
			"error": err,
		})
		c.formatter.WriteError(c.errOut, fmt.Sprintf(
			"The checkstyle tool %q was killed before it finished: %v\n"+
				"No style result is available. Rerun the commit.",
			c.toolPath, err))
		return ExitCodeToolKilled, err
	case errors.Is(err, runner.ErrTimeout):
		logging.ErrorWith("Checkstyle timed out", map[string]interface{}{
			"tool": c.toolPath,
		})
		c.formatter.WriteError(c.errOut, fmt.Sprintf("The checkstyle tool %q timed out", c.toolPath))
		return ExitCodeTimeout, err
	default:
		c.formatter.WriteError(c.errOut, fmt.Sprintf("Checkstyle failed: %v", err))
		return 1, err
	}
}

// bannerDir is the directory the user should run the fix command from
func (c *Checker) bannerDir() (string, error) {
	if c.workDir != "" {
		return c.workDir, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return ".", err
	}
	return dir, nil
}
