package output

import (
	"bytes"
	"strings"
	"testing"
)

const testBanner = `
!!!!!!!!

Some files fail the indentation rules. To fix them automatically run

cd /repo
tools/checkstyle.py -f a.c
cd -

!!!!!!!!
`

func TestWriteFailureWithoutColor(t *testing.T) {
	var buf bytes.Buffer
	f := NewTerminalFormatter(false)

	f.WriteFailure(&buf, testBanner, "a.c:10: bad indent")

	expected := testBanner + "\n" + "a.c:10: bad indent" + "\n"
	if buf.String() != expected {
		t.Errorf("Expected verbatim output %q, got %q", expected, buf.String())
	}
	if strings.Contains(buf.String(), "\033[") {
		t.Error("Expected no ANSI escapes without color")
	}
}

func TestWriteFailureWithColor(t *testing.T) {
	var buf bytes.Buffer
	f := NewTerminalFormatter(true)

	f.WriteFailure(&buf, testBanner, "a.c:10: bad indent")
	output := buf.String()

	tests := []struct {
		name     string
		contains string
	}{
		{"colored rule", "\033[31;1m!!!!!!!!"},
		{"colored cd line", "\033[33;1mcd /repo"},
		{"colored fix command", "\033[33;1mtools/checkstyle.py -f a.c"},
		{"plain diagnostics", "a.c:10: bad indent\n"},
		{"plain explanation", "Some files fail the indentation rules."},
	}

	for _, tt := range tests {
		if !strings.Contains(output, tt.contains) {
			t.Errorf("%s: expected output to contain %q, got %q", tt.name, tt.contains, output)
		}
	}
}

func TestWriteFailureHighlightsDiff(t *testing.T) {
	var buf bytes.Buffer
	f := NewTerminalFormatter(true)

	diff := "--- a.c\n+++ a.c\n@@ -1,2 +1,2 @@\n-int  x;\n+int x;\n"
	f.WriteFailure(&buf, "banner", diff)
	output := buf.String()

	if !strings.Contains(output, "int x;") {
		t.Errorf("Expected diff content in output, got %q", output)
	}
	if !strings.Contains(output, "\033[") {
		t.Errorf("Expected highlighted diff, got %q", output)
	}
}

func TestLooksLikeDiff(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{"--- a.c\n+++ a.c\n@@ -1 +1 @@\n", true},
		{"header\n@@ -1 +1 @@\n", true},
		{"a.c:10: bad indent", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := looksLikeDiff(tt.text); got != tt.expected {
			t.Errorf("looksLikeDiff(%q) = %v, expected %v", tt.text, got, tt.expected)
		}
	}
}

func TestSimpleColorizeDiff(t *testing.T) {
	f := NewTerminalFormatter(true)
	colored := f.simpleColorizeDiff("+added\n-removed\n context")

	if !strings.Contains(colored, "\033[32m+added") {
		t.Errorf("Expected green addition, got %q", colored)
	}
	if !strings.Contains(colored, "\033[31m-removed") {
		t.Errorf("Expected red removal, got %q", colored)
	}
	if !strings.HasSuffix(colored, " context") {
		t.Errorf("Expected context line untouched, got %q", colored)
	}
}

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	NewTerminalFormatter(false).WriteError(&buf, "checkstyle tool not found")
	if buf.String() != "checkstyle tool not found\n" {
		t.Errorf("Unexpected output %q", buf.String())
	}
}
