// Package classify decides which staged paths are C sources or headers.
package classify

import "strings"

// DefaultExtensions are the C source and header suffixes
var DefaultExtensions = []string{".c", ".h"}

// Classifier matches paths against a fixed set of literal suffixes.
// Matching is case-sensitive: "foo.C" is not a C file.
type Classifier struct {
	suffixes []string
}

// NewClassifier creates a Classifier for the given suffixes, falling back
// to DefaultExtensions when none are given
func NewClassifier(suffixes ...string) *Classifier {
	var kept []string
	for _, s := range suffixes {
		if s != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		kept = append(kept, DefaultExtensions...)
	}
	return &Classifier{suffixes: kept}
}

// Suffixes returns the recognized suffixes
func (c *Classifier) Suffixes() []string {
	return append([]string(nil), c.suffixes...)
}

// IsTarget reports whether path ends in one of the recognized suffixes
func (c *Classifier) IsTarget(path string) bool {
	for _, suffix := range c.suffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// Filter returns the paths for which IsTarget holds, in their original order
func (c *Classifier) Filter(paths []string) []string {
	var targets []string
	for _, path := range paths {
		if c.IsTarget(path) {
			targets = append(targets, path)
		}
	}
	return targets
}
