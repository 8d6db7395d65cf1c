// Package ignore loads .leakhoundignore files and matches relative paths
// against their patterns.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// Matcher answers whether a repo-relative path is ignored.
type Matcher struct {
	patterns []string
}

// Load reads an ignore file. A missing file yields an empty matcher and no
// error; scanning must not depend on the file existing.
func Load(path string) (Matcher, error) {
	var m Matcher
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return m, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m.patterns = append(m.patterns, line)
	}
	return m, sc.Err()
}

// Match reports whether rel is excluded. Directory patterns (trailing slash)
// match everything below them; bare globs also match against the basename,
// mirroring gitignore expectations.
func (m Matcher) Match(rel string) bool {
	rel = strings.ReplaceAll(rel, "\\", "/")
	for _, p := range m.patterns {
		if strings.HasSuffix(p, "/") {
			prefix := strings.TrimSuffix(p, "/")
			if rel == prefix || strings.HasPrefix(rel, prefix+"/") {
				return true
			}
			continue
		}
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, filepath.Base(rel)); ok {
			return true
		}
	}
	return false
}

// Len reports how many patterns loaded, for diagnostics.
func (m Matcher) Len() int { return len(m.patterns) }
