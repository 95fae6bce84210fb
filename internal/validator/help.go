package validator

import (
	"fmt"
	"io"
	"strings"
)

// Help is the remediation guide shown after a failed validation.
var Help = strings.Join([]string{
	"",
	strings.Repeat("=", 60),
	"CONFIGURATION REQUIRED",
	strings.Repeat("=", 60),
	"",
	"Your config.yaml file needs to be configured with your information.",
	"",
	"Steps to configure:",
	"1. Uncomment the 'config:' and 'repos:' sections in config.yaml",
	"2. Replace all <PLACEHOLDER> values with your actual information",
	"3. Update repository names and paths as needed",
	"4. Ensure all GitHub URLs point to your actual repositories",
	"",
	"Example configuration:",
	"",
	"config:",
	`  email: "your.email@example.com"`,
	`  name: "YourGitUsername"`,
	`  branch: "main"`,
	"",
	"repos:",
	"  my-project:",
	"    local: $HOME/git/my-project",
	"    remotes:",
	"      - https://github.com/yourusername/my-project.git",
	"      - https://github.com/yourusername/my-project-backup.git",
	"",
	strings.Repeat("=", 60),
}, "\n")

// WriteReport prints the failed result as a bulleted list followed by Help.
func WriteReport(w io.Writer, r Result) error {
	var b strings.Builder
	b.WriteString("ERROR: Invalid configuration:\n")
	for _, msg := range r.Messages() {
		fmt.Fprintf(&b, "  - %s\n", msg)
	}
	b.WriteString(Help)
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}
