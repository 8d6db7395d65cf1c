package engine

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"

	"github.com/leakhound/leakhound/internal/ignore"
)

// inlineFileMarker excludes an entire file from scanning when present in its
// first few KiB.
const inlineFileMarker = "leakhound:ignore-file"

// markerSniff bounds how much of a file the walker reads looking for the
// file-level ignore marker.
const markerSniff = 4 << 10

func ignorePath(root string) string {
	return filepath.Join(root, ".leakhoundignore")
}

// CollectFiles walks the tree under cfg.Root and returns the paths of every
// scannable candidate. Selection only: content classification happens later,
// once per file, in the orchestrator.
func CollectFiles(ctx context.Context, cfg Config, ign ignore.Matcher) ([]string, error) {
	var out []string
	err := filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if cfg.DefaultExcludes && isDefaultDirExcluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, _ := filepath.Rel(cfg.Root, p)
		if !allowedByGlobs(rel, cfg) {
			return nil
		}
		if ign.Match(rel) {
			return nil
		}
		info, _ := d.Info()
		if info != nil && cfg.MaxBytes > 0 && info.Size() > cfg.MaxBytes {
			return nil
		}
		if cfg.DefaultExcludes && isDefaultFileExcluded(strings.ToLower(rel)) {
			return nil
		}
		if hasFileMarker(p) {
			return nil
		}
		out = append(out, p)
		return nil
	})
	return out, err
}

// hasFileMarker sniffs a bounded prefix for the file-level ignore directive.
func hasFileMarker(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	buf := make([]byte, markerSniff)
	n, _ := f.Read(buf)
	return strings.Contains(string(buf[:n]), inlineFileMarker)
}

// allowedByGlobs returns true if the given path is allowed by the
// include/exclude glob configuration. Include globs are comma-separated and,
// if provided, act as a positive filter. Exclude globs are subtracted last.
func allowedByGlobs(relPath string, cfg Config) bool {
	rp := strings.ReplaceAll(relPath, "\\", "/")
	includes := parseGlobsList(cfg.IncludeGlobs)
	excludes := parseGlobsList(cfg.ExcludeGlobs)
	if len(includes) > 0 && !matchAnyGlob(rp, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p, trimGlobPrefix(p))
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
