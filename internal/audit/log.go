package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/apigenie/apigenie/internal/report"
	"github.com/apigenie/apigenie/internal/types"
)

// Record is one hook run appended to the audit log. Matches are
// masked before they are written; the log must never hold live
// secret material.
type Record struct {
	Timestamp   time.Time       `json:"timestamp"`
	Hook        string          `json:"hook"`
	Root        string          `json:"root"`
	Branch      string          `json:"branch,omitempty"`
	Commit      string          `json:"commit,omitempty"`
	APIType     string          `json:"api_type,omitempty"`
	Findings    int             `json:"findings"`
	Errors      []string        `json:"errors,omitempty"`
	Warnings    []string        `json:"warnings,omitempty"`
	Decision    string          `json:"decision,omitempty"`
	AllFindings []types.Finding `json:"all_findings,omitempty"`
}

// Log appends records under .git so they never get committed.
type Log struct {
	path string
}

// NewLog picks the audit log location for a repository root.
func NewLog(root string) *Log {
	gitDir := filepath.Join(root, ".git")
	path := filepath.Join(root, ".apigenie_audit.jsonl")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		path = filepath.Join(gitDir, "apigenie_audit.jsonl")
	}
	return &Log{path: path}
}

// Append writes one record. Owner-only permissions: the log carries
// finding locations and override justifications.
func (l *Log) Append(rec Record) error {
	rec.AllFindings = maskFindings(rec.AllFindings)
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(rec); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// History returns recorded runs, newest first. Undecodable lines are
// skipped.
func (l *Log) History() ([]Record, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []Record
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		var rec Record
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

func maskFindings(findings []types.Finding) []types.Finding {
	masked := make([]types.Finding, len(findings))
	for i, f := range findings {
		masked[i] = f
		masked[i].Match = report.MaskSecret(f.Match)
		masked[i].LineText = ""
	}
	return masked
}
