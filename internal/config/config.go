package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/leakhound/leakhound/internal/catalog"
)

// FileConfig is the on-disk YAML configuration shape for leakhound. Pointer
// fields distinguish "unset" from zero so CLI > local > global precedence
// can be resolved per field.
type FileConfig struct {
	Include         *string  `yaml:"include"`
	Exclude         *string  `yaml:"exclude"`
	MaxBytes        *int64   `yaml:"max_bytes"`
	Enable          *string  `yaml:"enable"`
	Disable         *string  `yaml:"disable"`
	Threads         *int     `yaml:"threads"`
	MinSeverity     *string  `yaml:"min_severity"`
	NoColor         *bool    `yaml:"no_color"`
	DefaultExcludes *bool    `yaml:"default_excludes"`
	NoCache         *bool    `yaml:"no_cache"`
	FanOutThreshold *int     `yaml:"fanout_threshold"`
	ChunkSizeKiB    *int     `yaml:"chunk_size_kib"`
	OverlapKiB      *int     `yaml:"overlap_kib"`

	// Patterns holds user-defined patterns merged into the built-in
	// catalog.
	Patterns []catalog.CustomPattern `yaml:"patterns"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
// It supports .leakhound.yml/.yaml and leakhound.yml/.yaml.
func LoadLocal(repoRoot string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".leakhound.yml", ".leakhound.yaml", "leakhound.yml", "leakhound.yaml"} {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	for _, name := range []string{"leakhound.yml", "leakhound.yaml"} {
		p := filepath.Join(base, "leakhound", name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no global config")
}
