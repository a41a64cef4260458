package apigenie

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/apigenie/apigenie/internal/types"
	"github.com/apigenie/apigenie/internal/validate"
)

// consolePrompter implements the workflow decision boundary on the
// terminal. It is deliberately the only interactive surface in the
// binary.
type consolePrompter struct {
	in  io.Reader
	out io.Writer
}

func (p *consolePrompter) PresentValidationFailure(res *validate.Result) (types.Decision, string) {
	fmt.Fprintf(p.out, "\nValidation failed with %d error(s) and %d warning(s).\n",
		len(res.Errors), len(res.Warnings))
	fmt.Fprintln(p.out, "Push anyway? The override is recorded in the commit message")
	fmt.Fprintln(p.out, "and in a local audit file. [y/N/q]")

	sc := bufio.NewScanner(p.in)
	if !sc.Scan() {
		return types.DecisionBlock, ""
	}
	switch strings.ToLower(strings.TrimSpace(sc.Text())) {
	case "y", "yes":
	case "q", "quit":
		return types.DecisionAbort, ""
	default:
		return types.DecisionBlock, ""
	}

	fmt.Fprintln(p.out, "Enter a justification (at least 10 words):")
	for sc.Scan() {
		justification := strings.TrimSpace(sc.Text())
		if len(strings.Fields(justification)) >= 10 {
			return types.DecisionOverride, justification
		}
		fmt.Fprintln(p.out, "Too short; a reviewer must be able to understand the override. Try again:")
	}
	return types.DecisionBlock, ""
}
