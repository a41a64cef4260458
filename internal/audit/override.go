package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// OverrideNotice is the appendix added to a commit message when the
// user pushes past validation failures. Only counts and the
// justification go in the message; full detail stays in the local file.
func OverrideNotice(justification string, errorCount, warningCount int) string {
	parts := []string{
		"",
		"----------------------------------------",
		"VALIDATION OVERRIDE NOTICE",
		"----------------------------------------",
		fmt.Sprintf("Overridden: %d error(s), %d warning(s)", errorCount, warningCount),
		fmt.Sprintf("JUSTIFICATION: %s", justification),
		"",
		"Full validation details are saved locally in a file named",
		".apigenie_validation_<commit_id>_<timestamp>.txt in the repo root (not committed).",
		"----------------------------------------",
	}
	return strings.Join(parts, "\n")
}

// SaveOverrideDetails writes the full override record next to the repo
// root. The filename carries the short commit id and a timestamp so
// repeated overrides never clobber each other.
func SaveOverrideDetails(root, commitHash, justification string, errors, warnings []string) (string, error) {
	short := commitHash
	if len(short) > 8 {
		short = short[:8]
	}
	if short == "" {
		short = "unknown"
	}
	name := fmt.Sprintf(".apigenie_validation_%s_%s.txt", short, time.Now().Format("20060102_150405"))
	path := filepath.Join(root, name)

	var b strings.Builder
	b.WriteString("API GENIE VALIDATION OVERRIDE\n")
	b.WriteString("=============================\n\n")
	fmt.Fprintf(&b, "Commit: %s\n", commitHash)
	fmt.Fprintf(&b, "Date: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "JUSTIFICATION: %s\n\n", justification)
	fmt.Fprintf(&b, "ERRORS (%d):\n", len(errors))
	for _, e := range errors {
		fmt.Fprintf(&b, "  - %s\n", e)
	}
	fmt.Fprintf(&b, "\nWARNINGS (%d):\n", len(warnings))
	for _, w := range warnings {
		fmt.Fprintf(&b, "  - %s\n", w)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return "", fmt.Errorf("failed to save validation details: %w", err)
	}
	return name, nil
}
