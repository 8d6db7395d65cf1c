// Package cache persists a per-file fingerprint so unchanged files can skip
// re-scanning between runs.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	xxhash "github.com/cespare/xxhash/v2"
)

// DB maps repo-relative path -> fingerprint (xxhash hex of size+mtime).
type DB struct {
	Entries map[string]string `json:"entries"`
}

func defaultPath(root string) string {
	// Prefer storing cache under .git to avoid accidental commits
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "leakhoundcache.json")
	}
	return filepath.Join(root, ".leakhoundcache.json")
}

// Load reads the cache DB for root, returning an empty DB on any failure.
func Load(root string) (DB, error) {
	var db DB
	b, err := os.ReadFile(defaultPath(root))
	if err != nil {
		return DB{Entries: map[string]string{}}, err
	}
	if err := json.Unmarshal(b, &db); err != nil {
		return DB{Entries: map[string]string{}}, err
	}
	if db.Entries == nil {
		db.Entries = map[string]string{}
	}
	return db, nil
}

// Save writes the cache DB for root.
func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	b, _ := json.MarshalIndent(db, "", "  ")
	return os.WriteFile(defaultPath(root), b, 0644)
}

// Fingerprint hashes a file's size and mtime. It deliberately avoids reading
// content so cache checks stay cheap for files that will be scanned by
// workers or streamed.
func Fingerprint(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	sum := xxhash.Sum64String(fmt.Sprintf("%d:%d", info.Size(), info.ModTime().UnixNano()))
	return fmt.Sprintf("%016x", sum)
}
