// Package githook installs the pre-commit hook that runs leakhound over
// staged files before every commit.
package githook

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const hookName = "pre-commit"

// hookScript exits nonzero when the scan finds anything at or above the
// configured fail severity, which aborts the commit.
const hookScript = `#!/bin/sh
# Installed by leakhound. Remove with: leakhound hook uninstall
leakhound scan --no-cache .
`

const hookMarker = "Installed by leakhound"

// Install writes the pre-commit hook under repoRoot/.git/hooks. It refuses
// to overwrite a hook it did not install unless force is set.
func Install(repoRoot string, force bool) (string, error) {
	dir := filepath.Join(repoRoot, ".git", "hooks")
	if st, err := os.Stat(filepath.Join(repoRoot, ".git")); err != nil || !st.IsDir() {
		return "", fmt.Errorf("not a git repository: %s", repoRoot)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create hooks dir: %w", err)
	}
	path := filepath.Join(dir, hookName)
	if data, err := os.ReadFile(path); err == nil {
		if !strings.Contains(string(data), hookMarker) && !force {
			return "", fmt.Errorf("existing %s hook at %s was not installed by leakhound (use --force to replace)", hookName, path)
		}
	}
	if err := os.WriteFile(path, []byte(hookScript), 0755); err != nil {
		return "", fmt.Errorf("write hook: %w", err)
	}
	return path, nil
}

// Uninstall removes the hook if leakhound installed it. Removing a foreign
// hook is an error.
func Uninstall(repoRoot string) error {
	path := filepath.Join(repoRoot, ".git", "hooks", hookName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read hook: %w", err)
	}
	if !strings.Contains(string(data), hookMarker) {
		return fmt.Errorf("%s hook at %s was not installed by leakhound, leaving it alone", hookName, path)
	}
	return os.Remove(path)
}

// Installed reports whether the leakhound hook is present.
func Installed(repoRoot string) bool {
	data, err := os.ReadFile(filepath.Join(repoRoot, ".git", "hooks", hookName))
	return err == nil && strings.Contains(string(data), hookMarker)
}

// AppendIgnore ensures pattern is present in .gitignore at repoRoot. It
// creates the file if missing. Idempotent.
func AppendIgnore(repoRoot, pattern string) error {
	path := filepath.Join(repoRoot, ".gitignore")
	existing := map[string]bool{}
	if f, err := os.Open(path); err == nil {
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			existing[strings.TrimSpace(sc.Text())] = true
		}
		_ = f.Close()
	}
	if existing[pattern] {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(pattern + "\n")
	return err
}
