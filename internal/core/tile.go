package core

// Tile is the byte drawn for a single map cell.
type Tile byte

// Glyphs used by the rogue dungeon.
const (
	TileNone    Tile = ' '
	TileFloor   Tile = '.'
	TileWallH   Tile = '-'
	TileWallV   Tile = '|'
	TileDoor    Tile = '+'
	TilePassage Tile = '#'
	TileStair   Tile = '%'
	TilePlayer  Tile = '@'
	TileGold    Tile = '*'
	TileWeapon  Tile = ')'
)

// String returns the tile as a one-character string.
func (t Tile) String() string {
	return string(rune(t))
}

// Byte returns the raw tile byte.
func (t Tile) Byte() byte {
	return byte(t)
}

// Drawable is anything that knows which tile represents it.
type Drawable interface {
	Tile() Tile
}

// Positioned pairs a tile with its map coordinate.
// Draw callbacks receive one Positioned per visible cell.
type Positioned struct {
	Coord Coord
	Tile  Tile
}

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for dungeon elements.
const (
	ColorDefault Color = iota
	ColorYellow
	ColorBrightYellow
	ColorBrightWhite
	ColorGreen
	ColorGray
	ColorOrange
)

// Color returns the display color of a tile.
func (t Tile) Color() Color {
	switch t {
	case TileGold:
		return ColorBrightYellow
	case TilePlayer:
		return ColorBrightWhite
	case TileStair:
		return ColorGreen
	case TileDoor:
		return ColorOrange
	case TilePassage, TileWallH, TileWallV:
		return ColorGray
	case TileWeapon:
		return ColorYellow
	default:
		return ColorDefault
	}
}
