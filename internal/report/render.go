package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"

	"github.com/apigenie/apigenie/internal/types"
	"github.com/apigenie/apigenie/internal/validate"
)

// PrintFindings renders findings as a table with masked matches.
func PrintFindings(w io.Writer, findings []types.Finding) {
	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Path == findings[j].Path {
			return findings[i].Line < findings[j].Line
		}
		return findings[i].Path < findings[j].Path
	})
	if len(findings) == 0 {
		fmt.Fprintln(w, "No secrets found")
		return
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"FILE", "LINE", "TYPE", "MATCH", "ENTROPY"})
	for _, f := range findings {
		entropy := "-"
		if f.Entropy != nil {
			entropy = fmt.Sprintf("%.2f", *f.Entropy)
		}
		table.Append([]string{
			f.Path,
			fmt.Sprintf("%d", f.Line),
			f.Type,
			MaskSecret(f.Match),
			entropy,
		})
	}
	table.Render()
	fmt.Fprintf(w, "\nPotential secrets: %d\n", len(findings))
}

// PrintValidation renders a validation result as plain text.
func PrintValidation(w io.Writer, res *validate.Result) {
	if res.Passed() && len(res.Warnings) == 0 {
		fmt.Fprintln(w, "All compliance checks passed")
		return
	}
	if len(res.Errors) > 0 {
		fmt.Fprintf(w, "Validation errors (%d):\n", len(res.Errors))
		for _, e := range res.Errors {
			fmt.Fprintf(w, "  ERROR  %s\n", e)
		}
	}
	if len(res.Warnings) > 0 {
		fmt.Fprintf(w, "Validation warnings (%d):\n", len(res.Warnings))
		for _, warn := range res.Warnings {
			fmt.Fprintf(w, "  WARN   %s\n", warn)
		}
	}
}

// jsonEnvelope is the machine-readable output shape.
type jsonEnvelope struct {
	Findings []types.Finding  `json:"findings"`
	Result   *validate.Result `json:"validation,omitempty"`
}

// WriteJSON emits findings and an optional validation result as JSON,
// with secret matches masked.
func WriteJSON(w io.Writer, findings []types.Finding, res *validate.Result) error {
	masked := make([]types.Finding, len(findings))
	for i, f := range findings {
		masked[i] = f
		masked[i].Match = MaskSecret(f.Match)
		masked[i].LineText = ""
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonEnvelope{Findings: masked, Result: res})
}
