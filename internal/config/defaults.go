package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-rogue/internal/rogue"
)

//go:embed defaults/rogue.yaml
var defaultRogueYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRogueYAML
}

// Default returns the embedded default configuration.
func Default() rogue.GameConfig {
	cfg, err := Parse(defaultRogueYAML, FormatYAML)
	if err != nil {
		return rogue.DefaultGameConfig() // Fallback to hardcoded if embed fails
	}
	return cfg
}
