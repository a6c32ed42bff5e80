// Package rogue builds and runs game sessions.
//
// A GameConfig is validated once by Build, which creates the session state
// (game info, resolved config, item registry) before handing it to the
// dungeon builder. The resulting RunTime processes one key at a time.
package rogue

import (
	"github.com/vovakirdan/tui-rogue/internal/core"
	"github.com/vovakirdan/tui-rogue/internal/dungeon"
	"github.com/vovakirdan/tui-rogue/internal/gameerr"
	"github.com/vovakirdan/tui-rogue/internal/item"
	"github.com/vovakirdan/tui-rogue/internal/rng"
)

// GameConfig is the user-facing game configuration. The dungeon style
// fields are flattened into the top level of the document.
type GameConfig struct {
	Width  int     `json:"width" yaml:"width"`
	Height int     `json:"height" yaml:"height"`
	Seed   *uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`

	dungeon.Style `yaml:",inline"`

	Item item.Config `json:"item" yaml:"item"`
	// KeyMap replaces the default bindings when present.
	KeyMap *core.KeyMap `json:"keymap,omitempty" yaml:"keymap,omitempty"`
}

// DefaultGameConfig returns an 80x24 rogue game with a random seed and the
// default key bindings.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Width:  core.MinWidth,
		Height: core.MinHeight,
		Style:  dungeon.DefaultStyle(),
		Item:   item.DefaultConfig(),
	}
}

// WithSeed returns a copy of the config using seed.
func (c GameConfig) WithSeed(seed uint64) GameConfig {
	c.Seed = &seed
	return c
}

// Validate checks the screen bounds. The first violation wins.
func (c GameConfig) Validate() error {
	switch {
	case c.Width < core.MinWidth:
		return gameerr.New(gameerr.InvalidSetting, "screen width is too narrow")
	case c.Width > core.MaxWidth:
		return gameerr.New(gameerr.InvalidSetting, "screen width is too wide")
	case c.Height < core.MinHeight:
		return gameerr.New(gameerr.InvalidSetting, "screen height is too short")
	case c.Height > core.MaxHeight:
		return gameerr.New(gameerr.InvalidSetting, "screen height is too tall")
	}
	return nil
}

// toInner validates the config and resolves the seed. A missing seed is
// drawn from the process entropy source; this is the only nondeterministic
// step of a session.
func (c GameConfig) toInner() (core.ConfigInner, error) {
	if err := c.Validate(); err != nil {
		return core.ConfigInner{}, err
	}
	var seed uint64
	if c.Seed != nil {
		seed = *c.Seed
	} else {
		s, err := rng.NewSeed()
		if err != nil {
			return core.ConfigInner{}, gameerr.New(gameerr.LogicError, err.Error())
		}
		seed = s
	}
	return core.ConfigInner{
		Width:  core.X(c.Width),
		Height: core.Y(c.Height),
		Seed:   seed,
	}, nil
}

// keyMap returns the bindings to use, validated.
func (c GameConfig) keyMap() (core.KeyMap, error) {
	if c.KeyMap == nil {
		return core.DefaultKeyMap(), nil
	}
	if err := c.KeyMap.Validate(); err != nil {
		return nil, gameerr.New(gameerr.InvalidSetting, err.Error())
	}
	return c.KeyMap.Clone(), nil
}
