package scan

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/apigenie/apigenie/internal/cache"
	"github.com/apigenie/apigenie/internal/types"
)

// Repo is the slice of git the scanner needs. Implemented by
// internal/git.Runner; tests substitute fakes.
type Repo interface {
	LsFiles() ([]string, error)
	StagedFiles() ([]string, error)
	ShowStaged(path string) ([]byte, error)
	ChangedLines() (map[string][]types.DiffLine, error)
}

// Scanner drives the session over repository content. Every scan mode
// funnels into the same session, so the (path, line) dedup holds across
// mixed calls.
type Scanner struct {
	root string
	repo Repo
	excl *Exclusions
	sess *Session
	db   *cache.DB
	log  zerolog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithExclusions replaces the default exclusion set.
func WithExclusions(e *Exclusions) Option {
	return func(s *Scanner) { s.excl = e }
}

// WithCache enables the clean-file cache.
func WithCache(db *cache.DB) Option {
	return func(s *Scanner) { s.db = db }
}

// WithLogger sets the scanner logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Scanner) { s.log = log }
}

// New creates a scanner rooted at root.
func New(root string, repo Repo, t Thresholds, opts ...Option) *Scanner {
	s := &Scanner{
		root: root,
		repo: repo,
		excl: DefaultExclusions(),
		sess: NewSession(t),
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Findings returns everything recorded by this scanner's session.
func (s *Scanner) Findings() []types.Finding { return s.sess.Findings() }

// Session exposes the underlying session for line-level scanning.
func (s *Scanner) Session() *Session { return s.sess }

// ScanRepository scans every tracked file. Enumeration failure is not
// fatal for a hook: it logs and reports nothing.
func (s *Scanner) ScanRepository() []types.Finding {
	files, err := s.repo.LsFiles()
	if err != nil {
		s.log.Error().Err(err).Msg("listing tracked files failed")
		return nil
	}
	s.log.Info().Int("files", len(files)).Msg("scanning repository")
	return s.ScanFiles(files)
}

// ScanFiles scans whole files, skipping excluded paths.
func (s *Scanner) ScanFiles(files []string) []types.Finding {
	var out []types.Finding
	for _, path := range files {
		if s.excl.Excluded(path) {
			s.log.Debug().Str("path", path).Msg("excluded")
			continue
		}
		out = append(out, s.scanFile(path)...)
	}
	return out
}

// ScanFilesToPush scans the files about to leave the machine. With no
// explicit list it falls back to the staged set.
func (s *Scanner) ScanFilesToPush(files []string) []types.Finding {
	if len(files) == 0 {
		staged, err := s.repo.StagedFiles()
		if err != nil {
			s.log.Error().Err(err).Msg("listing staged files failed")
			return nil
		}
		files = staged
	}
	s.log.Info().Int("files", len(files)).Msg("scanning files to push")
	return s.ScanFiles(files)
}

// ScanChangedLines scans only lines added in the working diff. Files
// absent from the diff are scanned whole; an empty diff falls back to
// full-file scanning.
func (s *Scanner) ScanChangedLines(files []string) []types.Finding {
	changed, err := s.repo.ChangedLines()
	if err != nil || len(changed) == 0 {
		s.log.Info().Msg("no changed-line data, scanning full files")
		return s.ScanFiles(files)
	}
	var out []types.Finding
	for _, path := range files {
		if s.excl.Excluded(path) {
			s.log.Debug().Str("path", path).Msg("excluded")
			continue
		}
		lines, ok := changed[path]
		if !ok {
			out = append(out, s.scanFile(path)...)
			continue
		}
		for _, dl := range lines {
			if f := s.sess.ScanLine(path, dl.Number, dl.Text); f != nil {
				out = append(out, *f)
			}
		}
	}
	return out
}

// scanFile reads the staged blob when available, otherwise the
// worktree file. Read errors skip the file; a hook must not die on one
// unreadable path.
func (s *Scanner) scanFile(path string) []types.Finding {
	content, err := s.repo.ShowStaged(path)
	if err != nil {
		content, err = os.ReadFile(filepath.Join(s.root, path))
		if err != nil {
			s.log.Warn().Err(err).Str("path", path).Msg("unreadable, skipped")
			return nil
		}
	}
	if bytes.IndexByte(content, 0) >= 0 {
		s.log.Debug().Str("path", path).Msg("binary content, skipped")
		return nil
	}
	sum := cache.Sum(content)
	if s.db != nil && s.db.Clean(path, sum) {
		s.log.Debug().Str("path", path).Msg("unchanged since clean scan")
		return nil
	}
	found := s.sess.ScanContent(path, string(content))
	if s.db != nil {
		if len(found) == 0 {
			s.db.Mark(path, sum)
		} else {
			s.db.Forget(path)
		}
	}
	return found
}
