package core

import (
	"strings"
)

// Screen is a 2D tile buffer that front ends fill from the runtime's draw
// callback. It decouples the engine from the terminal: the engine reports
// tiles, the platform decides how to show them.
type Screen struct {
	width  X
	height Y
	cells  [][]Tile
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width X, height Y) *Screen {
	s := &Screen{
		width:  width,
		height: height,
	}
	s.cells = make([][]Tile, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Tile, s.width)
	}
	s.Clear()
	return s
}

// Width returns the screen width in cells.
func (s *Screen) Width() X {
	return s.width
}

// Height returns the screen height in cells.
func (s *Screen) Height() Y {
	return s.height
}

// InBounds reports whether c addresses a cell of the screen.
func (s *Screen) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < s.width && c.Y >= 0 && c.Y < s.height
}

// Clear fills the entire screen with blanks.
func (s *Screen) Clear() {
	for y := range s.cells {
		s.ClearRow(Y(y))
	}
}

// ClearRow blanks a single row.
func (s *Screen) ClearRow(y Y) {
	if y < 0 || y >= s.height {
		return
	}
	for x := range s.cells[y] {
		s.cells[y][x] = TileNone
	}
}

// Set places a tile at the given position.
// It returns false and leaves the buffer untouched for out-of-bounds coordinates.
func (s *Screen) Set(c Coord, t Tile) bool {
	if !s.InBounds(c) {
		return false
	}
	s.cells[c.Y][c.X] = t
	return true
}

// Get returns the tile at the given position.
// Returns a blank for out-of-bounds coordinates.
func (s *Screen) Get(c Coord) Tile {
	if !s.InBounds(c) {
		return TileNone
	}
	return s.cells[c.Y][c.X]
}

// DrawText writes a string horizontally starting at c.
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(c Coord, text string) {
	for i := 0; i < len(text); i++ {
		s.Set(c.SlideX(X(i)), Tile(text[i]))
	}
}

// Row returns a copy of the specified row as a string.
func (s *Screen) Row(y Y) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", int(s.width))
	}
	var sb strings.Builder
	sb.Grow(int(s.width))
	for _, t := range s.cells[y] {
		sb.WriteByte(t.Byte())
	}
	return sb.String()
}

// Bytes returns a copy of the buffer as one byte slice per row.
func (s *Screen) Bytes() [][]byte {
	out := make([][]byte, s.height)
	for y, row := range s.cells {
		out[y] = make([]byte, len(row))
		for x, t := range row {
			out[y][x] = t.Byte()
		}
	}
	return out
}

// String converts the screen buffer to a renderable string.
// Each row is joined with newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(int(s.width)*int(s.height) + int(s.height))

	for y := Y(0); y < s.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(s.Row(y))
	}
	return sb.String()
}
