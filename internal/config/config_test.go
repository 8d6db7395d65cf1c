package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "leakhound.yml")
	body := `
include: "**/*.go"
max_bytes: 2097152
threads: 4
no_cache: true
patterns:
  - id: acme_token
    regex: "\\bacme_[a-z0-9]{16}\\b"
    severity: high
    suggestion: rotate the ACME token
`
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))

	cfg, err := LoadFile(p)
	require.NoError(t, err)
	require.NotNil(t, cfg.Include)
	assert.Equal(t, "**/*.go", *cfg.Include)
	assert.Equal(t, int64(2097152), *cfg.MaxBytes)
	assert.Equal(t, 4, *cfg.Threads)
	assert.True(t, *cfg.NoCache)
	require.Len(t, cfg.Patterns, 1)
	assert.Equal(t, "acme_token", cfg.Patterns[0].ID)
	assert.Nil(t, cfg.Exclude, "unset fields stay nil")
}

func TestLoadLocalSearchOrder(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".leakhound.yml"), []byte("threads: 2\n"), 0o644))
	cfg, err := LoadLocal(root)
	require.NoError(t, err)
	assert.Equal(t, 2, *cfg.Threads)

	_, err = LoadLocal(t.TempDir())
	assert.Error(t, err)
}

func TestLoadFileBadYAML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(p, []byte("threads: [not an int\n"), 0o644))
	_, err := LoadFile(p)
	assert.Error(t, err)
}
