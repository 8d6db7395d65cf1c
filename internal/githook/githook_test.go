package githook

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func gitRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git", "hooks"), 0755))
	return root
}

func TestInstallAndUninstall(t *testing.T) {
	root := gitRepo(t)
	path, err := Install(root, false)
	require.NoError(t, err)
	require.True(t, Installed(root))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "leakhound scan")

	st, err := os.Stat(path)
	require.NoError(t, err)
	require.NotZero(t, st.Mode()&0100, "hook must be executable")

	require.NoError(t, Uninstall(root))
	require.False(t, Installed(root))
	// uninstalling twice is fine
	require.NoError(t, Uninstall(root))
}

func TestInstallRefusesForeignHook(t *testing.T) {
	root := gitRepo(t)
	foreign := filepath.Join(root, ".git", "hooks", "pre-commit")
	require.NoError(t, os.WriteFile(foreign, []byte("#!/bin/sh\nmake lint\n"), 0755))

	_, err := Install(root, false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "--force")

	// force replaces it
	_, err = Install(root, true)
	require.NoError(t, err)
	require.True(t, Installed(root))
}

func TestUninstallRefusesForeignHook(t *testing.T) {
	root := gitRepo(t)
	foreign := filepath.Join(root, ".git", "hooks", "pre-commit")
	require.NoError(t, os.WriteFile(foreign, []byte("#!/bin/sh\nmake lint\n"), 0755))

	require.Error(t, Uninstall(root))
	data, err := os.ReadFile(foreign)
	require.NoError(t, err)
	require.Contains(t, string(data), "make lint")
}

func TestInstallOutsideGitRepo(t *testing.T) {
	_, err := Install(t.TempDir(), false)
	require.Error(t, err)
}

func TestAppendIgnoreIdempotent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, AppendIgnore(root, ".leakhound_audit.jsonl"))
	require.NoError(t, AppendIgnore(root, ".leakhound_audit.jsonl"))

	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(string(data), ".leakhound_audit.jsonl"))
}
