package scan

import (
	"errors"
	"fmt"
	"testing"

	"github.com/apigenie/apigenie/internal/cache"
	"github.com/apigenie/apigenie/internal/types"
)

// fakeRepo satisfies Repo without a real git checkout.
type fakeRepo struct {
	files   map[string]string
	changed map[string][]types.DiffLine
	lsErr   error
	diffErr error
}

func (f *fakeRepo) LsFiles() ([]string, error) {
	if f.lsErr != nil {
		return nil, f.lsErr
	}
	return f.paths(), nil
}

func (f *fakeRepo) StagedFiles() ([]string, error) { return f.paths(), nil }

func (f *fakeRepo) ShowStaged(path string) ([]byte, error) {
	content, ok := f.files[path]
	if !ok {
		return nil, fmt.Errorf("no staged blob for %s", path)
	}
	return []byte(content), nil
}

func (f *fakeRepo) ChangedLines() (map[string][]types.DiffLine, error) {
	return f.changed, f.diffErr
}

func (f *fakeRepo) paths() []string {
	var out []string
	for p := range f.files {
		out = append(out, p)
	}
	return out
}

func TestScanRepositoryFindsSecrets(t *testing.T) {
	repo := &fakeRepo{files: map[string]string{
		"config.py": "debug = False\nAKIA1234567890ABCDEF\n",
		"main.go":   "package main\n",
	}}
	s := New(t.TempDir(), repo, DefaultThresholds())
	found := s.ScanRepository()
	if len(found) != 1 {
		t.Fatalf("findings = %d, want 1", len(found))
	}
	if found[0].Path != "config.py" || found[0].Line != 2 {
		t.Fatalf("finding at %s:%d, want config.py:2", found[0].Path, found[0].Line)
	}
}

func TestScanRepositoryEnumerationFailure(t *testing.T) {
	repo := &fakeRepo{lsErr: errors.New("not a repository")}
	s := New(t.TempDir(), repo, DefaultThresholds())
	if found := s.ScanRepository(); found != nil {
		t.Fatalf("enumeration failure should report nothing, got %v", found)
	}
}

func TestScanFilesSkipsExcludedAndBinary(t *testing.T) {
	repo := &fakeRepo{files: map[string]string{
		"node_modules/pkg/index.js": "AKIA1234567890ABCDEF",
		"assets/blob.dat":           "AKIA\x00binary",
		"config.py":                 "AKIA1234567890ABCDEF",
	}}
	s := New(t.TempDir(), repo, DefaultThresholds())
	found := s.ScanFiles([]string{"node_modules/pkg/index.js", "assets/blob.dat", "config.py"})
	if len(found) != 1 {
		t.Fatalf("findings = %d, want 1 (only config.py)", len(found))
	}
	if found[0].Path != "config.py" {
		t.Fatalf("found in %s, want config.py", found[0].Path)
	}
}

func TestScanFilesUnreadablePathSkipped(t *testing.T) {
	// no staged blob and no worktree file: path is skipped, scan continues
	repo := &fakeRepo{files: map[string]string{"config.py": "AKIA1234567890ABCDEF"}}
	s := New(t.TempDir(), repo, DefaultThresholds())
	found := s.ScanFiles([]string{"gone.py", "config.py"})
	if len(found) != 1 {
		t.Fatalf("findings = %d, want 1", len(found))
	}
}

func TestScanChangedLinesOnlyScansAddedLines(t *testing.T) {
	repo := &fakeRepo{
		files: map[string]string{
			"config.py": "AKIA1234567890ABCDEF\nclean = 1\nnewer line\n",
		},
		changed: map[string][]types.DiffLine{
			"config.py": {{Number: 3, Text: "newer line"}},
		},
	}
	s := New(t.TempDir(), repo, DefaultThresholds())
	// the secret sits on line 1, which was not touched by the diff
	if found := s.ScanChangedLines([]string{"config.py"}); len(found) != 0 {
		t.Fatalf("untouched secret reported: %v", found)
	}
}

func TestScanChangedLinesReportsAddedSecret(t *testing.T) {
	repo := &fakeRepo{
		files: map[string]string{"config.py": "irrelevant"},
		changed: map[string][]types.DiffLine{
			"config.py": {{Number: 7, Text: "AKIA1234567890ABCDEF"}},
		},
	}
	s := New(t.TempDir(), repo, DefaultThresholds())
	found := s.ScanChangedLines([]string{"config.py"})
	if len(found) != 1 || found[0].Line != 7 {
		t.Fatalf("findings = %v, want one at line 7", found)
	}
}

func TestScanChangedLinesFileAbsentFromDiff(t *testing.T) {
	repo := &fakeRepo{
		files: map[string]string{
			"config.py": "AKIA1234567890ABCDEF\n",
		},
		changed: map[string][]types.DiffLine{
			"other.py": {{Number: 1, Text: "x = 1"}},
		},
	}
	s := New(t.TempDir(), repo, DefaultThresholds())
	found := s.ScanChangedLines([]string{"config.py"})
	if len(found) != 1 {
		t.Fatalf("file missing from diff should be scanned whole, got %v", found)
	}
}

func TestScanChangedLinesFallsBackOnEmptyDiff(t *testing.T) {
	repo := &fakeRepo{
		files: map[string]string{"config.py": "AKIA1234567890ABCDEF\n"},
	}
	s := New(t.TempDir(), repo, DefaultThresholds())
	if found := s.ScanChangedLines([]string{"config.py"}); len(found) != 1 {
		t.Fatalf("empty diff should fall back to full scan, got %v", found)
	}
}

func TestScanChangedLinesFallsBackOnDiffError(t *testing.T) {
	repo := &fakeRepo{
		files:   map[string]string{"config.py": "AKIA1234567890ABCDEF\n"},
		diffErr: errors.New("diff failed"),
	}
	s := New(t.TempDir(), repo, DefaultThresholds())
	if found := s.ScanChangedLines([]string{"config.py"}); len(found) != 1 {
		t.Fatalf("diff error should fall back to full scan, got %v", found)
	}
}

func TestScanFilesToPushFallsBackToStaged(t *testing.T) {
	repo := &fakeRepo{files: map[string]string{"config.py": "AKIA1234567890ABCDEF\n"}}
	s := New(t.TempDir(), repo, DefaultThresholds())
	if found := s.ScanFilesToPush(nil); len(found) != 1 {
		t.Fatalf("empty push list should scan staged files, got %v", found)
	}
}

func TestScannerCacheSkipsCleanFiles(t *testing.T) {
	repo := &fakeRepo{files: map[string]string{"main.go": "package main\n"}}
	db := cache.NewDB()
	s := New(t.TempDir(), repo, DefaultThresholds(), WithCache(db))
	s.ScanFiles([]string{"main.go"})
	sum := cache.Sum([]byte("package main\n"))
	if !db.Clean("main.go", sum) {
		t.Fatal("clean file should be recorded in the cache")
	}

	// a dirty file is never marked clean
	repo.files["config.py"] = "AKIA1234567890ABCDEF\n"
	s.ScanFiles([]string{"config.py"})
	if db.Clean("config.py", cache.Sum([]byte(repo.files["config.py"]))) {
		t.Fatal("file with findings must not be cached as clean")
	}
}

func TestScannerDedupAcrossModes(t *testing.T) {
	repo := &fakeRepo{
		files: map[string]string{"config.py": "AKIA1234567890ABCDEF\n"},
		changed: map[string][]types.DiffLine{
			"config.py": {{Number: 1, Text: "AKIA1234567890ABCDEF"}},
		},
	}
	s := New(t.TempDir(), repo, DefaultThresholds())
	s.ScanFiles([]string{"config.py"})
	s.ScanChangedLines([]string{"config.py"})
	if got := len(s.Findings()); got != 1 {
		t.Fatalf("session findings = %d, want 1 across mixed scan modes", got)
	}
}
