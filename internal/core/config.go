package core

// Screen size bounds accepted by the runtime builder.
const (
	MinWidth  = 80
	MaxWidth  = MinWidth * 2
	MinHeight = 24
	MaxHeight = MinHeight * 2
)

// ConfigInner is the validated numeric configuration of a session.
// Only the runtime builder creates it, so width and height are always
// within bounds.
type ConfigInner struct {
	Width  X      `json:"width"`
	Height Y      `json:"height"`
	Seed   uint64 `json:"seed"`
}

// DefaultConfigInner returns the smallest valid configuration with seed 1.
// Intended for tests of components that need a ConfigInner.
func DefaultConfigInner() ConfigInner {
	return ConfigInner{
		Width:  MinWidth,
		Height: MinHeight,
		Seed:   1,
	}
}

// GameInfo tracks session progress shared by the runtime and the dungeon.
type GameInfo struct {
	Cleared bool `json:"is_cleared"`
}

// NewGameInfo returns progress for a fresh session.
func NewGameInfo() *GameInfo {
	return &GameInfo{}
}

// IsCleared reports whether the player reached the bottom of the dungeon.
func (g *GameInfo) IsCleared() bool {
	return g.Cleared
}

// SetCleared marks the dungeon as cleared.
func (g *GameInfo) SetCleared() {
	g.Cleared = true
}

// StatusEntry is one labelled value of the player status line.
type StatusEntry struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}
