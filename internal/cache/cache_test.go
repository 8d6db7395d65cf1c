package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadSaveRoundtrip(t *testing.T) {
	root := t.TempDir()
	db := DB{Entries: map[string]string{"a.txt": "deadbeef"}}
	if err := Save(root, db); err != nil {
		t.Fatal(err)
	}
	got, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if got.Entries["a.txt"] != "deadbeef" {
		t.Fatalf("roundtrip lost entry: %+v", got.Entries)
	}
}

func TestLoadMissingReturnsEmpty(t *testing.T) {
	db, err := Load(t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing cache file")
	}
	if db.Entries == nil {
		t.Fatal("entries map must be usable even on error")
	}
}

func TestCachePrefersGitDir(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := Save(root, DB{Entries: map[string]string{"x": "1"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(root, ".git", "leakhoundcache.json")); err != nil {
		t.Fatalf("cache not under .git: %v", err)
	}
}

func TestFingerprintChangesWithContent(t *testing.T) {
	p := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(p, []byte("one"), 0644); err != nil {
		t.Fatal(err)
	}
	first := Fingerprint(p)
	if first == "" {
		t.Fatal("fingerprint empty for existing file")
	}
	// ensure a different mtime even on coarse filesystems
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(p, past, past); err != nil {
		t.Fatal(err)
	}
	if Fingerprint(p) == first {
		t.Fatal("fingerprint did not change with mtime")
	}
	if Fingerprint(filepath.Join(t.TempDir(), "gone")) != "" {
		t.Fatal("missing file should fingerprint empty")
	}
}
