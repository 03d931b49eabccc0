package git

import (
	"strings"

	"github.com/niels/pre-commit-checkstyle/pkg/logging"
)

// ChangeStatus is the single letter git uses to describe a change
type ChangeStatus string

// Statuses reported by git diff-index
const (
	StatusAdded       ChangeStatus = "A"
	StatusCopied      ChangeStatus = "C"
	StatusDeleted     ChangeStatus = "D"
	StatusModified    ChangeStatus = "M"
	StatusRenamed     ChangeStatus = "R"
	StatusTypeChanged ChangeStatus = "T"
	StatusUnmerged    ChangeStatus = "U"
	StatusUnknown     ChangeStatus = "X"
)

// ParseChangeStatus reads the status letter from a diff-index status
// field. Renames and copies carry a similarity score ("R100"), which is
// dropped.
func ParseChangeStatus(field string) ChangeStatus {
	if field == "" {
		return StatusUnknown
	}
	return ChangeStatus(field[:1])
}

// String returns a readable name for the status
func (s ChangeStatus) String() string {
	switch s {
	case StatusAdded:
		return "added"
	case StatusCopied:
		return "copied"
	case StatusDeleted:
		return "deleted"
	case StatusModified:
		return "modified"
	case StatusRenamed:
		return "renamed"
	case StatusTypeChanged:
		return "type changed"
	case StatusUnmerged:
		return "unmerged"
	default:
		return "unknown (" + string(s) + ")"
	}
}

// StagedChange is one entry of the staged diff
type StagedChange struct {
	Path   string       // Path relative to repository root
	Status ChangeStatus // Change status
}

// AddedOrModified reports whether the staged file exists in the index with
// content that can be checked
func (c StagedChange) AddedOrModified() bool {
	return c.Status == StatusAdded || c.Status == StatusModified
}

// Field positions in a diff-index line:
// :<src mode> <dst mode> <src sha> <dst sha> <status>\t<path>[\t<path>]
const (
	statusField    = 4
	pathField      = 5
	minFieldsCount = 6
)

// parseDiffIndex parses the output of git diff-index, either the -z form
// or the newline separated one. Empty lines are skipped, and so are lines
// with too few fields, so one odd line does not abort the whole hook.
func parseDiffIndex(output string) []StagedChange {
	if strings.Contains(output, "\x00") {
		return parseDiffIndexZ(output)
	}

	var changes []StagedChange

	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := splitDiffIndexLine(line)
		if len(fields) < minFieldsCount {
			logging.DebugWith("Skipping malformed diff-index line", map[string]interface{}{
				"line":   line,
				"fields": len(fields),
			})
			continue
		}

		changes = append(changes, StagedChange{
			Path:   fields[pathField],
			Status: ParseChangeStatus(fields[statusField]),
		})
	}

	return changes
}

// parseDiffIndexZ parses diff-index -z output. Each record is the metadata
// followed by one NUL terminated path, or two for renames and copies.
// Paths are taken verbatim, so git never quotes them.
func parseDiffIndexZ(output string) []StagedChange {
	var changes []StagedChange

	tokens := strings.Split(output, "\x00")
	for i := 0; i < len(tokens); i++ {
		meta := tokens[i]
		if meta == "" {
			continue
		}

		fields := strings.Fields(meta)
		if !strings.HasPrefix(meta, ":") || len(fields) != pathField || i+1 >= len(tokens) {
			logging.DebugWith("Skipping malformed diff-index record", map[string]interface{}{
				"record": meta,
				"fields": len(fields),
			})
			continue
		}

		status := ParseChangeStatus(fields[statusField])
		i++
		changes = append(changes, StagedChange{Path: tokens[i], Status: status})

		if status == StatusRenamed || status == StatusCopied {
			i++ // destination path
		}
	}

	return changes
}

// splitDiffIndexLine splits a line into whitespace separated fields. Git
// puts a TAB before each path, so paths containing spaces are kept whole
// when the TAB is present.
func splitDiffIndexLine(line string) []string {
	line = strings.TrimRight(line, "\r")

	meta, paths, found := strings.Cut(line, "\t")
	if !found {
		return strings.Fields(line)
	}

	fields := strings.Fields(meta)
	for _, path := range strings.Split(paths, "\t") {
		if path != "" {
			fields = append(fields, path)
		}
	}
	return fields
}
