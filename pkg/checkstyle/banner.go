package checkstyle

import (
	"fmt"
	"strings"
)

const bannerRule = "!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!"

const bannerTemplate = `
%[1]s

Some files fail the indentation rules. To fix them automatically run

cd %[2]s
%[3]s %[4]s %[5]s
cd -

If you think your file indentations is correct, then you can skip this check by
doing 'git commit --no-verify'.

%[1]s
`

// FormatBanner renders the message shown when files fail the style check.
// It tells the user how to rerun the tool in fix mode from workDir.
func FormatBanner(workDir string, toolPath string, files []string) string {
	return fmt.Sprintf(bannerTemplate, bannerRule, workDir, toolPath, FixFlag, strings.Join(files, " "))
}
