package config

import (
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix environment-variable overrides must carry.
const EnvPrefix = "SELECTRON_"

// ApplyEnv overrides cfg's fields from SELECTRON_-prefixed environment
// variables, mirroring keystorm's loader.EnvLoader mapping style but
// scoped to this package's much smaller settings surface.
func ApplyEnv(cfg Config) Config {
	if v, ok := lookupInt("SELECTRON_TAB_WIDTH"); ok {
		cfg.TabWidth = v
	}
	if v, ok := os.LookupEnv("SELECTRON_SKIP_SYMBOLS"); ok {
		cfg.SkipSymbols = strings.Split(v, ",")
	}
	if v, ok := lookupInt("SELECTRON_MAX_UNDO_NODES"); ok {
		cfg.MaxUndoNodes = v
	}
	if v, ok := lookupInt("SELECTRON_MAX_SELECTION_HISTORY"); ok {
		cfg.MaxSelectionHistory = v
	}
	if v, ok := os.LookupEnv("SELECTRON_JUMP_ALPHABET"); ok {
		cfg.JumpAlphabet = v
	}
	if v, ok := lookupInt("SELECTRON_REGEX_TIMEOUT_MILLIS"); ok {
		cfg.RegexTimeoutMillis = v
	}
	return cfg
}

func lookupInt(name string) (int, bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
