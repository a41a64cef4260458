package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/apigenie/apigenie/internal/types"
)

func TestAppendAndHistory(t *testing.T) {
	root := t.TempDir()
	l := NewLog(root)

	first := Record{
		Timestamp: time.Now(),
		Hook:      "pre-commit",
		Root:      root,
		Findings:  1,
		AllFindings: []types.Finding{{
			Path:     "config.py",
			Line:     3,
			LineText: "AKIA1234567890ABCDEF",
			Match:    "AKIA1234567890ABCDEF",
			Type:     "AWS Access Key ID",
		}},
	}
	if err := l.Append(first); err != nil {
		t.Fatalf("Append: %v", err)
	}
	second := Record{Timestamp: time.Now(), Hook: "pre-push", Root: root, Decision: "override"}
	if err := l.Append(second); err != nil {
		t.Fatalf("Append: %v", err)
	}

	records, err := l.History()
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Hook != "pre-push" {
		t.Fatalf("newest record first, got %q", records[0].Hook)
	}
	got := records[1].AllFindings[0]
	if got.Match != "AKI**************DEF" {
		t.Fatalf("logged match = %q, want masked", got.Match)
	}
	if got.LineText != "" {
		t.Fatal("line text must not be persisted")
	}
}

func TestAppendUsesGitDirWhenPresent(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	l := NewLog(root)
	if err := l.Append(Record{Timestamp: time.Now(), Hook: "pre-commit", Root: root}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, ".git", "apigenie_audit.jsonl")); err != nil {
		t.Fatalf("log not written under .git: %v", err)
	}
}

func TestHistorySkipsBadLines(t *testing.T) {
	root := t.TempDir()
	l := NewLog(root)
	if err := l.Append(Record{Timestamp: time.Now(), Hook: "pre-commit"}); err != nil {
		t.Fatal(err)
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("{not json}\n")
	f.Close()

	records, err := l.History()
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1 (bad line skipped)", len(records))
	}
}

func TestOverrideNotice(t *testing.T) {
	notice := OverrideNotice("legacy descriptor migration is tracked in ticket WPB-4411 for next sprint", 3, 1)
	for _, want := range []string{
		"VALIDATION OVERRIDE NOTICE",
		"Overridden: 3 error(s), 1 warning(s)",
		"JUSTIFICATION: legacy descriptor migration",
	} {
		if !strings.Contains(notice, want) {
			t.Errorf("notice missing %q:\n%s", want, notice)
		}
	}
}

func TestSaveOverrideDetails(t *testing.T) {
	root := t.TempDir()
	name, err := SaveOverrideDetails(root, "0123456789abcdef", "approved by platform lead", []string{"api.meta - assetName is missing"}, []string{"api.meta - old version"})
	if err != nil {
		t.Fatalf("SaveOverrideDetails: %v", err)
	}
	if !strings.HasPrefix(name, ".apigenie_validation_01234567_") || !strings.HasSuffix(name, ".txt") {
		t.Fatalf("filename = %q", name)
	}
	b, err := os.ReadFile(filepath.Join(root, name))
	if err != nil {
		t.Fatal(err)
	}
	content := string(b)
	for _, want := range []string{
		"Commit: 0123456789abcdef",
		"JUSTIFICATION: approved by platform lead",
		"ERRORS (1):",
		"assetName is missing",
		"WARNINGS (1):",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("details missing %q", want)
		}
	}
}

func TestSaveOverrideDetailsShortHash(t *testing.T) {
	root := t.TempDir()
	name, err := SaveOverrideDetails(root, "", "no commit yet", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(name, ".apigenie_validation_unknown_") {
		t.Fatalf("filename = %q", name)
	}
}
