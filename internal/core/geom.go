// Package core provides fundamental types shared by the engine and its front
// ends. It contains no external dependencies (especially no Bubble Tea) to
// keep game logic pure and testable.
package core

import (
	"fmt"
	"iter"
	"math"
)

// X is a horizontal coordinate. It is a distinct type from Y so that the
// compiler rejects accidental axis mix-ups.
type X int32

// Y is a vertical coordinate.
type Y int32

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Coord is a position on the dungeon map.
// X increases to the right, Y increases downward (screen coordinates).
type Coord struct {
	X X `json:"x" yaml:"x"`
	Y Y `json:"y" yaml:"y"`
}

// NewCoord creates a coordinate from any pair of integers.
func NewCoord[T, U integer](x T, y U) Coord {
	return Coord{X: X(x), Y: Y(y)}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns the componentwise sum of two coordinates.
func (c Coord) Add(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y}
}

// Sub returns the componentwise difference of two coordinates.
func (c Coord) Sub(other Coord) Coord {
	return Coord{X: c.X - other.X, Y: c.Y - other.Y}
}

// Neg returns the coordinate mirrored through the origin.
func (c Coord) Neg() Coord {
	return Coord{X: -c.X, Y: -c.Y}
}

// EucDist returns the Euclidean distance to another coordinate.
func (c Coord) EucDist(other Coord) float64 {
	dx := float64(c.X - other.X)
	dy := float64(c.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Scale multiplies each axis by the given factor.
func (c Coord) Scale(sx X, sy Y) Coord {
	c.X *= sx
	c.Y *= sy
	return c
}

// SlideX moves the coordinate horizontally.
func (c Coord) SlideX(dx X) Coord {
	c.X += dx
	return c
}

// SlideY moves the coordinate vertically.
func (c Coord) SlideY(dy Y) Coord {
	c.Y += dy
	return c
}

// Less orders coordinates lexicographically, x first.
func (c Coord) Less(other Coord) bool {
	if c.X != other.X {
		return c.X < other.X
	}
	return c.Y < other.Y
}

// Compare returns -1, 0 or +1 following the same order as Less.
func (c Coord) Compare(other Coord) int {
	switch {
	case c.Less(other):
		return -1
	case other.Less(c):
		return 1
	default:
		return 0
	}
}

// Step returns the neighbouring coordinate in the given direction.
func (c Coord) Step(d Direction) Coord {
	return c.Add(d.ToCoord())
}

// EndlessIter yields c, c+d, c+2d, ... forever.
// Each range over the returned sequence starts again from c.
func (c Coord) EndlessIter(d Direction) iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		delta := d.ToCoord()
		for cur := c; ; cur = cur.Add(delta) {
			if !yield(cur) {
				return
			}
		}
	}
}

// DirectionIter is like EndlessIter but stops at the first coordinate for
// which end reports true. That coordinate is not yielded.
func (c Coord) DirectionIter(d Direction, end func(Coord) bool) iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for cur := range c.EndlessIter(d) {
			if end(cur) || !yield(cur) {
				return
			}
		}
	}
}

// Direction is one of the eight compass directions or Stay.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
	LeftUp
	RightUp
	LeftDown
	RightDown
	Stay
)

var directionDeltas = [...]Coord{
	Up:        {X: 0, Y: -1},
	Down:      {X: 0, Y: 1},
	Left:      {X: -1, Y: 0},
	Right:     {X: 1, Y: 0},
	LeftUp:    {X: -1, Y: -1},
	RightUp:   {X: 1, Y: -1},
	LeftDown:  {X: -1, Y: 1},
	RightDown: {X: 1, Y: 1},
	Stay:      {X: 0, Y: 0},
}

// Directions returns all nine directions in declaration order.
func Directions() []Direction {
	return []Direction{Up, Down, Left, Right, LeftUp, RightUp, LeftDown, RightDown, Stay}
}

// ToCoord returns the unit delta of the direction.
func (d Direction) ToCoord() Coord {
	if int(d) >= len(directionDeltas) {
		return Coord{}
	}
	return directionDeltas[d]
}

// IsDiagonal reports whether both components of the delta are non-zero.
func (d Direction) IsDiagonal() bool {
	delta := d.ToCoord()
	return delta.X != 0 && delta.Y != 0
}

// Reverse returns the opposite direction. Stay is its own reverse.
func (d Direction) Reverse() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	case LeftUp:
		return RightDown
	case RightDown:
		return LeftUp
	case RightUp:
		return LeftDown
	case LeftDown:
		return RightUp
	default:
		return d
	}
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case LeftUp:
		return "left-up"
	case RightUp:
		return "right-up"
	case LeftDown:
		return "left-down"
	case RightDown:
		return "right-down"
	case Stay:
		return "stay"
	default:
		return "unknown"
	}
}

// Rect is an axis-aligned rectangle given by its inclusive corners.
type Rect struct {
	Min Coord
	Max Coord
}

// NewRect creates a rectangle from its top-left corner and size.
func NewRect(topLeft Coord, w X, h Y) Rect {
	return Rect{Min: topLeft, Max: Coord{X: topLeft.X + w - 1, Y: topLeft.Y + h - 1}}
}

// Width returns the number of columns covered by the rectangle.
func (r Rect) Width() X {
	return r.Max.X - r.Min.X + 1
}

// Height returns the number of rows covered by the rectangle.
func (r Rect) Height() Y {
	return r.Max.Y - r.Min.Y + 1
}

// Contains returns true if c lies inside the rectangle, edges included.
func (r Rect) Contains(c Coord) bool {
	return c.X >= r.Min.X && c.X <= r.Max.X && c.Y >= r.Min.Y && c.Y <= r.Max.Y
}

// Inner returns the rectangle shrunk by one cell on every side.
func (r Rect) Inner() Rect {
	return Rect{Min: r.Min.Add(Coord{X: 1, Y: 1}), Max: r.Max.Sub(Coord{X: 1, Y: 1})}
}

// Cells yields every coordinate of the rectangle row by row.
func (r Rect) Cells() iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for y := r.Min.Y; y <= r.Max.Y; y++ {
			for x := r.Min.X; x <= r.Max.X; x++ {
				if !yield(Coord{X: x, Y: y}) {
					return
				}
			}
		}
	}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
