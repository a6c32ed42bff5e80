package core

import "fmt"

// Path addresses a cell anywhere in the dungeon: the level number plus the
// position on that level's map.
type Path struct {
	Level uint32 `json:"level"`
	Pos   Coord  `json:"pos"`
}

// NewPath creates a path on the given level.
func NewPath(level uint32, pos Coord) Path {
	return Path{Level: level, Pos: pos}
}

// String returns a string representation of the path.
func (p Path) String() string {
	return fmt.Sprintf("%d:%s", p.Level, p.Pos)
}

// Compare orders paths by level, then by position.
func (p Path) Compare(other Path) int {
	switch {
	case p.Level < other.Level:
		return -1
	case p.Level > other.Level:
		return 1
	default:
		return p.Pos.Compare(other.Pos)
	}
}
