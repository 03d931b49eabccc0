package hook

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Name is the git hook this program implements
const Name = "pre-commit"

// installMarker identifies scripts written by Install
const installMarker = "# installed by pre-commit-checkstyle"

// ErrHookExists is returned when a foreign pre-commit hook is in the way
var ErrHookExists = errors.New("pre-commit hook already exists")

// Script returns the hook script that execs binary
func Script(binary string) string {
	return "#!/bin/sh\n" + installMarker + "\nexec " + shellQuote(binary) + "\n"
}

// Install writes the pre-commit hook into hooksDir and returns its path.
// A hook written by an earlier Install is replaced; any other existing
// hook is kept unless force is set.
func Install(hooksDir string, binary string, force bool) (string, error) {
	hookPath := filepath.Join(hooksDir, Name)

	existing, err := os.ReadFile(hookPath)
	switch {
	case err == nil:
		if !force && !strings.Contains(string(existing), installMarker) {
			return "", fmt.Errorf("%w: %s (use --force to replace it)", ErrHookExists, hookPath)
		}
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("checking hook %s: %w", hookPath, err)
	}

	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return "", fmt.Errorf("creating hooks directory: %w", err)
	}
	if err := os.WriteFile(hookPath, []byte(Script(binary)), 0755); err != nil {
		return "", fmt.Errorf("writing hook %s: %w", hookPath, err)
	}
	// WriteFile keeps the mode of an existing file
	if err := os.Chmod(hookPath, 0755); err != nil {
		return "", fmt.Errorf("making hook %s executable: %w", hookPath, err)
	}

	return hookPath, nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
