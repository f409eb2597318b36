// Package config holds the ambient, non-keymap editor settings
// SPEC_FULL.md's AMBIENT STACK section calls for: tab width, per-mode
// skip_symbols defaults, undo-tree node cap, selection-history depth,
// the jump-label alphabet, and the regex engine timeout. Keymap/theme/
// palette configuration stays out of scope (spec.md §1), so this is a
// much smaller surface than keystorm's config package.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the editor's ambient settings.
type Config struct {
	TabWidth            int      `yaml:"tab_width"`
	SkipSymbols         []string `yaml:"skip_symbols"`
	MaxUndoNodes        int      `yaml:"max_undo_nodes"`
	MaxSelectionHistory int      `yaml:"max_selection_history"`
	JumpAlphabet        string   `yaml:"jump_alphabet"`
	RegexTimeoutMillis  int      `yaml:"regex_timeout_millis"`
}

// Default returns the editor's default ambient settings.
func Default() Config {
	return Config{
		TabWidth:            4,
		SkipSymbols:         []string{"(", ")", "[", "]", "{", "}", ",", ";"},
		MaxUndoNodes:        10_000,
		MaxSelectionHistory: 64,
		JumpAlphabet:        "asdfghjklqwertyuiopzxcvbnm",
		RegexTimeoutMillis:  1000,
	}
}

// LoadYAMLFile reads and merges a YAML config file on top of Default.
func LoadYAMLFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
