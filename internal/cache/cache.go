package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// DB maps repo-relative paths to the content hash of their last clean
// scan. A file whose hash is unchanged needs no rescan.
type DB struct {
	// Path relative to repo root -> content hash (xxhash64 hex)
	Entries map[string]string `json:"entries"`
}

// NewDB returns an empty in-memory cache.
func NewDB() *DB {
	return &DB{Entries: map[string]string{}}
}

// Sum returns the cache key for a blob.
func Sum(content []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}

func defaultPath(root string) string {
	// Prefer storing cache under .git to avoid accidental commits
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "apigeniecache.json")
	}
	return filepath.Join(root, ".apigeniecache.json")
}

// Clean reports whether path was clean at this exact content hash.
func (db *DB) Clean(path, sum string) bool {
	return db.Entries[path] == sum
}

// Mark records a clean scan of path at the given hash.
func (db *DB) Mark(path, sum string) {
	db.Entries[path] = sum
}

// Forget drops path from the cache.
func (db *DB) Forget(path string) {
	delete(db.Entries, path)
}

// Load reads the cache for root, returning an empty usable DB on any
// read or decode error.
func Load(root string) (*DB, error) {
	db := NewDB()
	b, err := os.ReadFile(defaultPath(root))
	if err != nil {
		return db, err
	}
	if err := json.Unmarshal(b, db); err != nil {
		return NewDB(), err
	}
	if db.Entries == nil {
		db.Entries = map[string]string{}
	}
	return db, nil
}

// Save persists the cache for root.
func Save(root string, db *DB) error {
	b, _ := json.MarshalIndent(db, "", "  ")
	return os.WriteFile(defaultPath(root), b, 0644)
}
