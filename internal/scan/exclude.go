package scan

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// defaultExcludedExtensions are binary, media and bulk-data formats
// that are not worth line scanning.
var defaultExcludedExtensions = []string{
	"zip", "gz", "tar", "rar", "7z", "exe", "dll", "so", "dylib",
	"jar", "war", "ear", "class", "pyc", "o", "a", "lib", "obj",
	"bin", "jpg", "jpeg", "png", "gif", "bmp", "ico", "mp3", "mp4",
	"avi", "mov", "wmv", "flv", "pdf", "doc", "docx", "xls", "xlsx",
	"ppt", "pptx", "ttf", "otf", "woff", "woff2", "eot", "svg",
	"tif", "tiff", "webp",
	"xlsb", "csv", "tsv", "json", "xml", "yaml", "yml",
	"parquet", "avro", "orc",
}

// defaultExcludedDirectories are path segments that exclude a file
// wherever they appear.
var defaultExcludedDirectories = []string{
	"distribution", "node_modules", "vendor", "build", "dist",
	"reports", "scan_results", "__pycache__", ".git",
	"test", "tests", "Test", "Tests",
}

// Exclusions decides which paths the scanner skips entirely.
type Exclusions struct {
	patterns    []string
	extensions  map[string]bool
	directories map[string]bool
}

// NewExclusions builds the default exclusion set plus any extra
// glob patterns, extensions ("*.ext" or bare "ext") and directory names.
func NewExclusions(patterns, extensions, directories []string) *Exclusions {
	e := &Exclusions{
		patterns:    patterns,
		extensions:  map[string]bool{},
		directories: map[string]bool{},
	}
	for _, ext := range defaultExcludedExtensions {
		e.extensions[ext] = true
	}
	for _, ext := range extensions {
		ext = strings.TrimPrefix(strings.TrimPrefix(ext, "*"), ".")
		if ext != "" {
			e.extensions[strings.ToLower(ext)] = true
		}
	}
	for _, d := range defaultExcludedDirectories {
		e.directories[d] = true
	}
	for _, d := range directories {
		d = strings.Trim(strings.TrimPrefix(d, "**/"), "/")
		if i := strings.Index(d, "/**"); i >= 0 {
			d = d[:i]
		}
		if d != "" {
			e.directories[d] = true
		}
	}
	return e
}

// DefaultExclusions returns the built-in exclusion set.
func DefaultExclusions() *Exclusions {
	return NewExclusions(nil, nil, nil)
}

// Excluded reports whether path should be skipped. Test files are
// always skipped; that is a known false-negative source kept so hook
// runs stay quiet on fixture data.
func (e *Exclusions) Excluded(path string) bool {
	norm := filepath.ToSlash(path)
	for _, pattern := range e.patterns {
		if ok, err := doublestar.Match(pattern, norm); err == nil && ok {
			return true
		}
	}
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(norm)), "."); ext != "" {
		if e.extensions[ext] {
			return true
		}
	}
	for _, part := range strings.Split(norm, "/") {
		if e.directories[part] {
			return true
		}
	}
	base := filepath.Base(norm)
	return strings.Contains(strings.ToLower(base), "test")
}
