package catalog

import (
	"fmt"

	"github.com/leakhound/leakhound/internal/types"
)

// CustomPattern is the YAML shape for a user-defined pattern in the config
// file's `patterns` list.
type CustomPattern struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Severity    string `yaml:"severity"`
	Regex       string `yaml:"regex"`
	Description string `yaml:"description"`
	Suggestion  string `yaml:"suggestion"`
}

// Compile turns YAML-defined patterns into catalog entries. Unknown
// severities default to medium; a missing ID or regex is an error.
func Compile(custom []CustomPattern) ([]types.Pattern, error) {
	var out []types.Pattern
	for _, c := range custom {
		if c.ID == "" || c.Regex == "" {
			return nil, fmt.Errorf("custom pattern needs id and regex (got id=%q)", c.ID)
		}
		sev := types.Severity(c.Severity)
		if sev.Rank() < 0 {
			sev = types.SevMed
		}
		name := c.Name
		if name == "" {
			name = c.ID
		}
		p, err := types.NewPattern(c.ID, name, sev, c.Regex, c.Description, c.Suggestion)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
