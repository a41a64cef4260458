package scan

import (
	"fmt"
	"strings"

	"github.com/apigenie/apigenie/internal/types"
)

// Session accumulates findings across one hook invocation and holds
// the dedup set: at most one finding is ever recorded per (path, line),
// no matter how many scan calls touch it.
type Session struct {
	catalog    []Rule
	thresholds Thresholds
	seen       map[string]struct{}
	findings   []types.Finding
}

// NewSession creates an empty session using the given thresholds.
func NewSession(t Thresholds) *Session {
	return &Session{
		catalog:    Catalog(t),
		thresholds: t,
		seen:       map[string]struct{}{},
	}
}

// Findings returns everything recorded so far, in detection order.
func (s *Session) Findings() []types.Finding { return s.findings }

func (s *Session) key(path string, line int) string {
	return fmt.Sprintf("%s:%d", path, line)
}

// Seen reports whether a finding was already recorded at path:line.
func (s *Session) Seen(path string, line int) bool {
	_, ok := s.seen[s.key(path, line)]
	return ok
}

// ScanLine checks one line against the catalog and, failing that, the
// variable-assignment heuristic. The first accepted match is recorded
// and returned; nil means the line is clean or already seen.
func (s *Session) ScanLine(path string, lineNo int, line string) *types.Finding {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	if s.Seen(path, lineNo) {
		return nil
	}
	if f := s.matchCatalog(path, lineNo, line); f != nil {
		s.record(*f)
		return f
	}
	if f := s.matchVariable(path, lineNo, line); f != nil {
		s.record(*f)
		return f
	}
	return nil
}

// ScanContent scans a whole blob line by line, numbering from 1.
func (s *Session) ScanContent(path, content string) []types.Finding {
	var out []types.Finding
	for i, line := range strings.Split(content, "\n") {
		if f := s.ScanLine(path, i+1, line); f != nil {
			out = append(out, *f)
		}
	}
	return out
}

func (s *Session) record(f types.Finding) {
	s.seen[s.key(f.Path, f.Line)] = struct{}{}
	s.findings = append(s.findings, f)
}

func (s *Session) matchCatalog(path string, lineNo int, line string) *types.Finding {
	for _, rule := range s.catalog {
		for _, m := range rule.Re.FindAllStringSubmatch(line, -1) {
			value := m[0]
			if skipValue(value) {
				continue
			}
			if len(value) < rule.MinLength {
				continue
			}
			var entropy *float64
			if rule.RequireEntropy {
				e := Entropy(value)
				if e < rule.Threshold {
					continue
				}
				entropy = &e
			}
			if rule.CheckName && !suspiciousName(m[1]) {
				continue
			}
			return &types.Finding{
				Path:     path,
				Line:     lineNo,
				LineText: line,
				Match:    value,
				Type:     rule.Label,
				Entropy:  entropy,
				Method:   types.MethodPattern,
			}
		}
	}
	return nil
}

func (s *Session) matchVariable(path string, lineNo int, line string) *types.Finding {
	for _, re := range varAssignPatterns {
		for _, m := range re.FindAllStringSubmatch(line, -1) {
			name, value := m[1], m[2]
			if skipValue(value) {
				continue
			}
			if !suspiciousName(name) {
				continue
			}
			e := Entropy(value)
			threshold := s.thresholds.Default
			if strings.Contains(strings.ToLower(name), "password") {
				threshold = s.thresholds.Password
			}
			if e < threshold {
				continue
			}
			return &types.Finding{
				Path:     path,
				Line:     lineNo,
				LineText: line,
				Match:    value,
				Type:     "Variable Assignment",
				Variable: name,
				Entropy:  &e,
				Method:   types.MethodVariable,
			}
		}
	}
	return nil
}
