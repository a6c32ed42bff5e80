package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds process settings read from the environment. Command line
// flags take these values as their defaults.
type Env struct {
	DBPath     string  `env:"ROGUE_DB" envDefault:"~/.rogue/runs.db"`
	LogPath    string  `env:"ROGUE_LOG"`
	ConfigPath string  `env:"ROGUE_CONFIG"`
	SSHAddr    string  `env:"ROGUE_SSH_ADDR" envDefault:":23234"`
	Seed       *uint64 `env:"ROGUE_SEED"`
}

// ParseEnv loads Env from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
