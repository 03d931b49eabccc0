// Package hook wires the staged change query, the file classifier and the
// style checker into the pre-commit hook.
package hook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/niels/pre-commit-checkstyle/pkg/checkstyle"
	"github.com/niels/pre-commit-checkstyle/pkg/git"
	"github.com/niels/pre-commit-checkstyle/pkg/logging"
	"github.com/niels/pre-commit-checkstyle/pkg/runner"
)

// ExitCodeVCSFailure is returned when the staged changes cannot be listed
const ExitCodeVCSFailure = 1

// FileChecker validates a list of files and returns the hook exit code
type FileChecker interface {
	Check(ctx context.Context, files []string) (int, error)
}

// FileFilter keeps the paths that should be checked
type FileFilter interface {
	Filter(paths []string) []string
}

// Driver runs the hook once: list staged changes, keep the added and
// modified C files, check them
type Driver struct {
	changes git.ChangeLister
	filter  FileFilter
	checker FileChecker
	errOut  io.Writer
}

// NewDriver creates a Driver
func NewDriver(changes git.ChangeLister, filter FileFilter, checker FileChecker) *Driver {
	return &Driver{
		changes: changes,
		filter:  filter,
		checker: checker,
		errOut:  os.Stderr,
	}
}

// WithErrorOutput sets where VCS failures are reported
func (d *Driver) WithErrorOutput(w io.Writer) *Driver {
	d.errOut = w
	return d
}

// Run executes the hook and returns the process exit code
func (d *Driver) Run(ctx context.Context) int {
	start := time.Now()

	changes, err := d.changes.ListStagedChanges(ctx)
	if err != nil {
		logging.ErrorWith("Failed to list staged changes", map[string]interface{}{
			"error": err,
		})
		if errors.Is(err, runner.ErrTimeout) {
			fmt.Fprintf(d.errOut, "pre-commit: timed out listing staged changes: %v\n", err)
			return checkstyle.ExitCodeTimeout
		}
		fmt.Fprintf(d.errOut, "pre-commit: cannot list staged changes: %v\n", err)
		return ExitCodeVCSFailure
	}

	files := d.filter.Filter(CheckablePaths(changes))

	logging.InfoWith("Staged changes classified", map[string]interface{}{
		"staged":  len(changes),
		"checked": len(files),
	})

	code, err := d.checker.Check(ctx, files)
	if err != nil {
		logging.ErrorWith("Style check could not run", map[string]interface{}{
			"error":     err,
			"exit_code": code,
		})
	}

	logging.InfoWith("Hook finished", map[string]interface{}{
		"exit_code": code,
		"duration":  time.Since(start),
	})

	return code
}

// CheckablePaths returns the paths of added and modified changes in order.
// Deleted files are gone from the work tree and renames, copies and the
// rest are left alone.
func CheckablePaths(changes []git.StagedChange) []string {
	var paths []string
	for _, change := range changes {
		if change.AddedOrModified() {
			paths = append(paths, change.Path)
		}
	}
	return paths
}
