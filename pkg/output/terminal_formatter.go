package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/quick"
	"github.com/fatih/color"
)

// TerminalFormatter writes hook results to the terminal
type TerminalFormatter struct {
	useColor bool

	rule    *color.Color
	command *color.Color
	added   *color.Color
	removed *color.Color
	failure *color.Color
}

// NewTerminalFormatter creates a new terminal formatter. Colors are forced
// on or off regardless of what fatih/color detects for stdout.
func NewTerminalFormatter(useColor bool) *TerminalFormatter {
	f := &TerminalFormatter{
		useColor: useColor,
		rule:     color.New(color.FgRed, color.Bold),
		command:  color.New(color.FgYellow, color.Bold),
		added:    color.New(color.FgGreen),
		removed:  color.New(color.FgRed),
		failure:  color.New(color.FgRed, color.Bold),
	}

	for _, c := range []*color.Color{f.rule, f.command, f.added, f.removed, f.failure} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return f
}

// UseColor reports whether the formatter emits ANSI colors
func (f *TerminalFormatter) UseColor() bool {
	return f.useColor
}

// WriteFailure writes the remediation banner followed by the checker
// diagnostics, each terminated by a newline
func (f *TerminalFormatter) WriteFailure(w io.Writer, banner string, diagnostics string) {
	fmt.Fprintln(w, f.colorizeBanner(banner))
	f.writeDiagnostics(w, diagnostics)
	fmt.Fprintln(w)
}

// WriteError writes a one-line error that is not a style violation
func (f *TerminalFormatter) WriteError(w io.Writer, msg string) {
	fmt.Fprintln(w, f.failure.Sprint(msg))
}

// colorizeBanner highlights the rules and the commands to run
func (f *TerminalFormatter) colorizeBanner(banner string) string {
	if !f.useColor {
		return banner
	}

	lines := strings.Split(banner, "\n")
	colored := make([]string, len(lines))
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "!!!"):
			colored[i] = f.rule.Sprint(line)
		case strings.HasPrefix(line, "cd "):
			colored[i] = f.command.Sprint(line)
		case i > 0 && strings.HasPrefix(lines[i-1], "cd ") && line != "":
			// the fix command sits between the two cd lines
			colored[i] = f.command.Sprint(line)
		default:
			colored[i] = line
		}
	}
	return strings.Join(colored, "\n")
}

// writeDiagnostics writes the checker output. Without color it is written
// verbatim; with color, diff-shaped output is highlighted.
func (f *TerminalFormatter) writeDiagnostics(w io.Writer, diagnostics string) {
	if !f.useColor || !looksLikeDiff(diagnostics) {
		io.WriteString(w, diagnostics)
		return
	}

	if err := quick.Highlight(w, diagnostics, "diff", "terminal16m", "monokai"); err != nil {
		// Fallback to simple coloring if Chroma highlighting fails
		io.WriteString(w, f.simpleColorizeDiff(diagnostics))
	}
}

// looksLikeDiff reports whether the output contains unified diff hunks
func looksLikeDiff(text string) bool {
	return strings.Contains(text, "\n@@ ") || strings.HasPrefix(text, "@@ ") ||
		strings.Contains(text, "\n--- ") || strings.HasPrefix(text, "--- ")
}

// simpleColorizeDiff adds basic color to diff lines as a fallback
func (f *TerminalFormatter) simpleColorizeDiff(diff string) string {
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+"):
			lines[i] = f.added.Sprint(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = f.removed.Sprint(line)
		}
	}
	return strings.Join(lines, "\n")
}
