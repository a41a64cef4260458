package meta

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// metaFileNames are the descriptor filenames recognized anywhere in
// the tree.
var metaFileNames = map[string]bool{
	"api.meta":      true,
	"api.meta.yaml": true,
	"api.meta.yml":  true,
	"api.meta.json": true,
	"API.meta":      true,
	"API.META":      true,
}

// skipDirs are never descended into while searching for descriptors.
var skipDirs = map[string]bool{
	".git": true, ".svn": true, "__pycache__": true,
	"node_modules": true, ".venv": true, "venv": true,
	".pytest_cache": true, "target": true, "build": true,
	"dist": true, ".tox": true, ".coverage": true,
}

// File is one discovered descriptor: its repo-relative path and the
// parsed mapping.
type File struct {
	Path string
	Data Descriptor
}

// IsMetaFile reports whether a basename is a recognized descriptor name.
func IsMetaFile(name string) bool { return metaFileNames[name] }

// Find walks root and parses every recognized descriptor. Unreadable
// files are logged and skipped; a walk error yields what was found so
// far.
func Find(root string, log zerolog.Logger) []File {
	var found []File
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (skipDirs[name] || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsMetaFile(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		b, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("path", rel).Msg("unreadable meta file")
			return nil
		}
		found = append(found, File{Path: filepath.ToSlash(rel), Data: Parse(string(b), rel)})
		return nil
	})
	return found
}
