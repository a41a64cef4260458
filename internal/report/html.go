package report

import (
	"fmt"
	"html/template"
	"io"

	"github.com/apigenie/apigenie/internal/git"
	"github.com/apigenie/apigenie/internal/types"
)

// htmlReport is the template context for the HTML scan report.
type htmlReport struct {
	Title    string
	Meta     git.Metadata
	Findings []htmlFinding
}

type htmlFinding struct {
	Path    string
	Line    int
	Type    string
	Masked  string
	Entropy string
}

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; background: #f5f5f5; margin: 0; }
.container { background: white; max-width: 960px; margin: 2em auto; padding: 2em; }
h1 { color: #07439C; }
table { border-collapse: collapse; width: 100%; }
th { background: #f8f9fa; text-align: left; }
th, td { border: 1px solid #ddd; padding: 6px 10px; }
.count { color: #d32f2f; font-weight: bold; }
</style>
</head>
<body>
<div class="container">
<h1>{{.Title}}</h1>
<p>Repository: {{.Meta.Repo}} | Branch: {{.Meta.Branch}} | Commit: {{.Meta.Commit}}</p>
<p>Author: {{.Meta.Author}} | {{.Meta.Timestamp}}</p>
{{if .Findings}}
<p class="count">{{len .Findings}} potential secret(s) found</p>
<table>
<tr><th>File</th><th>Line</th><th>Type</th><th>Match</th><th>Entropy</th></tr>
{{range .Findings}}
<tr><td>{{.Path}}</td><td>{{.Line}}</td><td>{{.Type}}</td><td><code>{{.Masked}}</code></td><td>{{.Entropy}}</td></tr>
{{end}}
</table>
{{else}}
<p>No secrets found.</p>
{{end}}
</div>
</body>
</html>
`))

// WriteHTML renders the scan report with masked matches.
func WriteHTML(w io.Writer, md git.Metadata, findings []types.Finding) error {
	ctx := htmlReport{Title: "API Genie - Secret Scan Results", Meta: md}
	for _, f := range findings {
		entropy := "-"
		if f.Entropy != nil {
			entropy = fmt.Sprintf("%.2f", *f.Entropy)
		}
		ctx.Findings = append(ctx.Findings, htmlFinding{
			Path:    f.Path,
			Line:    f.Line,
			Type:    f.Type,
			Masked:  MaskSecret(f.Match),
			Entropy: entropy,
		})
	}
	return reportTmpl.Execute(w, ctx)
}
