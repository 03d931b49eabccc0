package version

import (
	"strings"
	"testing"
)

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	if !strings.HasPrefix(info, "pre-commit-checkstyle version "+Version) {
		t.Errorf("Unexpected version line: %s", info)
	}
	if strings.Contains(info, "Git commit:") {
		t.Errorf("Expected no commit line without build metadata: %s", info)
	}

	GitCommit = "abc1234"
	defer func() { GitCommit = "" }()
	if !strings.Contains(GetVersionInfo(), "Git commit: abc1234") {
		t.Errorf("Expected commit line, got: %s", GetVersionInfo())
	}
}
