// Package config provides YAML and JSON game configuration loading for the
// rogue runtime.
package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-rogue/internal/rogue"
)

// Format is a configuration file format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown config format %q (use yaml or json)", s)
	}
}

// formatOf picks the format from a file extension. Anything but .json is
// read as YAML.
func formatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Parse decodes data on top of the default config, so fields missing from
// the document keep their default values.
func Parse(data []byte, format Format) (rogue.GameConfig, error) {
	cfg := rogue.DefaultGameConfig()
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &cfg)
	default:
		err = yaml.Unmarshal(data, &cfg)
	}
	return cfg, err
}

// Marshal encodes cfg in the given format.
func Marshal(cfg rogue.GameConfig, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(cfg)
	default:
		return nil, fmt.Errorf("unknown config format %q", format)
	}
}
