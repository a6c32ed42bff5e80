package item

import (
	"github.com/vovakirdan/tui-rogue/internal/gameerr"
	"github.com/vovakirdan/tui-rogue/internal/rng"
)

// Config holds item generation settings.
type Config struct {
	Gold GoldConfig `json:"gold" yaml:"gold"`
}

// DefaultConfig returns the classic rogue item settings.
func DefaultConfig() Config {
	return Config{Gold: DefaultGoldConfig()}
}

// Validate checks every generation setting.
func (c Config) Validate() error {
	return gameerr.Wrap(c.Gold.Validate(), "in Config::Validate")
}

// GoldConfig decides whether a room gets gold and how much.
type GoldConfig struct {
	// Rate is the chance in percent that a room holds gold.
	Rate int `json:"rate" yaml:"rate"`
	// Base and PerLevel bound the random part of the amount:
	// Base + PerLevel*level.
	Base     int `json:"base" yaml:"base"`
	PerLevel int `json:"per_level" yaml:"per_level"`
	// Minimum is added to every amount.
	Minimum int `json:"minimum" yaml:"minimum"`
}

// DefaultGoldConfig returns the rogue 5.4 gold rule.
func DefaultGoldConfig() GoldConfig {
	return GoldConfig{
		Rate:     50,
		Base:     50,
		PerLevel: 10,
		Minimum:  2,
	}
}

// Validate checks that the policy can produce a positive amount.
func (g GoldConfig) Validate() error {
	switch {
	case g.Rate < 0 || g.Rate > 100:
		return gameerr.Newf(gameerr.InvalidSetting, "gold rate %d is not a percentage", g.Rate)
	case g.Base < 0 || g.PerLevel < 0 || g.Minimum < 0:
		return gameerr.New(gameerr.InvalidSetting, "gold amounts must not be negative")
	case g.Base == 0 && g.PerLevel == 0 && g.Minimum == 0:
		return gameerr.New(gameerr.InvalidSetting, "gold amount is always zero")
	}
	return nil
}

// gen draws the spawn decision and, on success, the amount.
func (g GoldConfig) gen(r *rng.Handle, level uint32) (Num, bool) {
	if !r.Percent(g.Rate) {
		return 0, false
	}
	return Num(r.Intn(g.Base+g.PerLevel*int(level)) + g.Minimum), true
}
