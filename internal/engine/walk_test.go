package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leakhound/leakhound/internal/ignore"
)

func TestCollectFilesFilters(t *testing.T) {
	root := t.TempDir()
	mk := func(rel, content string) {
		p := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	mk("src/app.go", "package app")
	mk("node_modules/dep/index.js", "ignored by default excludes")
	mk("skipme.txt", "// leakhound:ignore-file\nsecret")
	mk("notes.md", "hello")
	mk(".leakhoundignore", "*.md\n")

	ign, err := ignore.Load(filepath.Join(root, ".leakhoundignore"))
	if err != nil {
		t.Fatal(err)
	}
	got, err := CollectFiles(context.Background(), Config{Root: root, DefaultExcludes: true}, ign)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]bool{
		filepath.Join(root, "src/app.go"):       true,
		filepath.Join(root, ".leakhoundignore"): true,
	}
	if len(got) != len(want) {
		t.Fatalf("collected %v, want %d files", got, len(want))
	}
	for _, p := range got {
		if !want[p] {
			t.Fatalf("unexpected file collected: %s", p)
		}
	}
}

func TestCollectFilesMaxBytes(t *testing.T) {
	root := t.TempDir()
	big := filepath.Join(root, "big.txt")
	if err := os.WriteFile(big, make([]byte, 2048), 0o644); err != nil {
		t.Fatal(err)
	}
	small := filepath.Join(root, "small.txt")
	if err := os.WriteFile(small, []byte("ok"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := CollectFiles(context.Background(), Config{Root: root, MaxBytes: 1024}, ignore.Matcher{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != small {
		t.Fatalf("MaxBytes gate failed: %v", got)
	}
}

func TestAllowedByGlobs(t *testing.T) {
	cfg := Config{IncludeGlobs: "**/*.go", ExcludeGlobs: "**/*_test.go"}
	cases := map[string]bool{
		"pkg/a.go":      true,
		"pkg/a_test.go": false,
		"README.md":     false,
	}
	for p, want := range cases {
		if got := allowedByGlobs(p, cfg); got != want {
			t.Fatalf("allowedByGlobs(%q)=%v want %v", p, got, want)
		}
	}
}
