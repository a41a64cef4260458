package git

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/apigenie/apigenie/internal/types"
)

var hunkNewStart = regexp.MustCompile(`\+(\d+)`)

// ChangedLines returns the added lines of the working diff, keyed by
// new path and numbered in the new version of each file.
func (r *Runner) ChangedLines() (map[string][]types.DiffLine, error) {
	out, err := r.run("diff", "--unified=0", "--no-color")
	if err != nil {
		return nil, err
	}
	return ParseChangedLines(out), nil
}

// ParseChangedLines extracts added lines from unified=0 diff text.
// A `diff --git` header resets state, `+++ b/<path>` names the current
// file, and each `@@ -a,b +c,d @@` hunk restarts the counter at c, the
// number the first added line carries in the new file.
func ParseChangedLines(diff string) map[string][]types.DiffLine {
	changes := map[string][]types.DiffLine{}
	var current string
	lineNo := 0
	tracking := false

	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git"):
			current = ""
			tracking = false
		case strings.HasPrefix(line, "+++ b/"):
			current = line[len("+++ b/"):]
			changes[current] = nil
			tracking = false
		case strings.HasPrefix(line, "+++ "):
			// deletion target (+++ /dev/null) or unparseable header
			current = ""
			tracking = false
		case strings.HasPrefix(line, "@@"):
			if m := hunkNewStart.FindStringSubmatch(line); m != nil {
				lineNo, _ = strconv.Atoi(m[1])
				tracking = current != ""
			} else {
				tracking = false
			}
		case strings.HasPrefix(line, "+"):
			if tracking {
				changes[current] = append(changes[current], types.DiffLine{
					Number: lineNo,
					Text:   strings.TrimPrefix(line, "+"),
				})
				lineNo++
			}
		}
	}
	return changes
}
