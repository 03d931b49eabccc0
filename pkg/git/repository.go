package git

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/niels/pre-commit-checkstyle/pkg/logging"
	"github.com/niels/pre-commit-checkstyle/pkg/runner"
)

// EmptyTreeHash is the object id of git's empty tree. Staged changes are
// compared against it when the repository has no HEAD commit yet.
const EmptyTreeHash = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// Common errors
var (
	ErrNotGitRepository = errors.New("not a Git repository")
	ErrGitNotInstalled  = errors.New("Git executable not found")
	ErrGitCommandFailed = errors.New("Git command failed")
)

// ChangeLister lists the changes staged for the next commit
type ChangeLister interface {
	ListStagedChanges(ctx context.Context) ([]StagedChange, error)
}

// Repository runs git queries against the work tree at dir
type Repository struct {
	cmdRunner runner.Runner
	dir       string
}

// NewRepository creates a Repository for dir backed by real git processes
func NewRepository(dir string) *Repository {
	return NewRepositoryWithRunner(runner.NewExecRunner(), dir)
}

// NewRepositoryWithRunner creates a Repository with a custom command runner
func NewRepositoryWithRunner(cmdRunner runner.Runner, dir string) *Repository {
	if dir == "" {
		dir = "."
	}
	return &Repository{
		cmdRunner: cmdRunner,
		dir:       dir,
	}
}

// git runs a git subcommand in the repository directory
func (r *Repository) git(ctx context.Context, args ...string) (*runner.Result, error) {
	result, err := r.cmdRunner.Run(ctx, "", "git", append([]string{"-C", r.dir}, args...)...)
	if err != nil {
		if errors.Is(err, runner.ErrStart) {
			return nil, fmt.Errorf("%w: %w", ErrGitNotInstalled, err)
		}
		return nil, err
	}
	return result, nil
}

// ListStagedChanges returns every change between the index and HEAD
func (r *Repository) ListStagedChanges(ctx context.Context) ([]StagedChange, error) {
	base, err := r.diffBase(ctx)
	if err != nil {
		return nil, err
	}

	result, err := r.git(ctx, "diff-index", "-z", "--cached", base)
	if err != nil {
		return nil, fmt.Errorf("failed to list staged changes: %w", err)
	}
	if !result.Success() {
		return nil, fmt.Errorf("failed to list staged changes: %w (exit code %d): %s",
			ErrGitCommandFailed, result.ExitCode, strings.TrimSpace(string(result.Output)))
	}

	return parseDiffIndex(string(result.Output)), nil
}

// diffBase returns HEAD, or the empty tree when HEAD does not resolve
// because nothing has been committed yet
func (r *Repository) diffBase(ctx context.Context) (string, error) {
	result, err := r.git(ctx, "rev-parse", "--verify", "--quiet", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	if !result.Success() {
		logging.Debug("HEAD does not resolve, comparing against the empty tree")
		return EmptyTreeHash, nil
	}
	return "HEAD", nil
}

// IsGitRepository checks if the directory is within a Git work tree
func (r *Repository) IsGitRepository(ctx context.Context) (bool, error) {
	result, err := r.git(ctx, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		return false, err
	}
	if !result.Success() {
		return false, nil
	}
	return strings.TrimSpace(string(result.Output)) == "true", nil
}

// RepositoryRoot returns the top level directory of the work tree
func (r *Repository) RepositoryRoot(ctx context.Context) (string, error) {
	return r.revParsePath(ctx, "--show-toplevel")
}

// HooksDir returns the directory git reads hooks from. It honors
// core.hooksPath and linked worktrees.
func (r *Repository) HooksDir(ctx context.Context) (string, error) {
	path, err := r.revParsePath(ctx, "--git-path", "hooks")
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.dir, path)
	}
	return path, nil
}

func (r *Repository) revParsePath(ctx context.Context, args ...string) (string, error) {
	isRepo, err := r.IsGitRepository(ctx)
	if err != nil {
		return "", err
	}
	if !isRepo {
		return "", ErrNotGitRepository
	}

	result, err := r.git(ctx, append([]string{"rev-parse"}, args...)...)
	if err != nil {
		return "", err
	}
	if !result.Success() {
		return "", fmt.Errorf("%w: rev-parse %s: %s",
			ErrGitCommandFailed, strings.Join(args, " "), strings.TrimSpace(string(result.Output)))
	}
	return strings.TrimSpace(string(result.Output)), nil
}
