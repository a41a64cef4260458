package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/apigenie/apigenie/internal/git"
)

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	md := git.Metadata{
		Repo:      "loans-api",
		Branch:    "main",
		Commit:    "abc1234",
		Author:    "Dev",
		Timestamp: "2026-01-01 09:00:00 AM",
	}
	if err := WriteHTML(&buf, md, sampleFindings()); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "AKIA1234567890ABCDEF") {
		t.Fatal("raw secret leaked into HTML report")
	}
	for _, want := range []string{
		"AKI**************DEF",
		"loans-api",
		"1 potential secret(s) found",
		"AWS Access Key ID",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestWriteHTMLEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, git.Metadata{Repo: "loans-api"}, nil); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	if !strings.Contains(buf.String(), "No secrets found.") {
		t.Fatal("empty report should say so")
	}
}
