package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/apigenie/apigenie/internal/types"
	"github.com/apigenie/apigenie/internal/validate"
)

func sampleFindings() []types.Finding {
	return []types.Finding{
		{
			Path:     "config.py",
			Line:     3,
			LineText: "AKIA1234567890ABCDEF",
			Match:    "AKIA1234567890ABCDEF",
			Type:     "AWS Access Key ID",
			Method:   types.MethodPattern,
		},
	}
}

func TestPrintFindingsEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintFindings(&buf, nil)
	if !strings.Contains(buf.String(), "No secrets found") {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestPrintFindingsMasksMatches(t *testing.T) {
	var buf bytes.Buffer
	PrintFindings(&buf, sampleFindings())
	out := buf.String()
	if strings.Contains(out, "AKIA1234567890ABCDEF") {
		t.Fatal("raw secret leaked into table output")
	}
	if !strings.Contains(out, "AKI**************DEF") {
		t.Fatalf("masked match missing from output:\n%s", out)
	}
	if !strings.Contains(out, "Potential secrets: 1") {
		t.Fatalf("count footer missing:\n%s", out)
	}
}

func TestPrintValidation(t *testing.T) {
	var buf bytes.Buffer
	PrintValidation(&buf, &validate.Result{})
	if !strings.Contains(buf.String(), "All compliance checks passed") {
		t.Fatalf("output = %q", buf.String())
	}

	buf.Reset()
	res := &validate.Result{}
	res.AddError("assetName is missing", "api.meta")
	res.AddWarning("consider a newer metaDataVersion", "api.meta")
	PrintValidation(&buf, res)
	out := buf.String()
	if !strings.Contains(out, "ERROR  api.meta - assetName is missing") {
		t.Fatalf("error line missing:\n%s", out)
	}
	if !strings.Contains(out, "WARN   api.meta - consider a newer metaDataVersion") {
		t.Fatalf("warning line missing:\n%s", out)
	}
}

func TestWriteJSONMasksAndDropsLineText(t *testing.T) {
	var buf bytes.Buffer
	res := &validate.Result{}
	res.AddError("assetName is missing", "api.meta")
	if err := WriteJSON(&buf, sampleFindings(), res); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var out struct {
		Findings []types.Finding  `json:"findings"`
		Result   *validate.Result `json:"validation"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Findings) != 1 {
		t.Fatalf("findings = %d", len(out.Findings))
	}
	if out.Findings[0].Match != "AKI**************DEF" {
		t.Fatalf("match = %q, want masked", out.Findings[0].Match)
	}
	if out.Findings[0].LineText != "" {
		t.Fatal("line text should be stripped from JSON output")
	}
	if out.Result == nil || len(out.Result.Errors) != 1 {
		t.Fatalf("validation result not carried through: %+v", out.Result)
	}
}
