package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vovakirdan/tui-rogue/internal/rogue"
)

// Source names where a loaded configuration came from.
type Source string

// SourceEmbedded is reported when no file was found.
const SourceEmbedded Source = "embedded"

// Load loads the game configuration.
// Search order: customPath -> ~/.rogue/config.yaml -> ./configs/rogue.yaml -> embedded default
func Load(customPath string) (rogue.GameConfig, Source, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return rogue.GameConfig{}, "", fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data, formatOf(customPath))
		if err != nil {
			return rogue.GameConfig{}, "", fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, Source(customPath), nil
	}

	// Try user config directory, then the local configs directory
	candidates := []string{userConfigPath("config.yaml"), filepath.Join("configs", "rogue.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data, formatOf(path)); err == nil {
			return cfg, Source(path), nil
		}
	}

	// Use embedded default YAML
	return Default(), SourceEmbedded, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rogue", filename)
}
