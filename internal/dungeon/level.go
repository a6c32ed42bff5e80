package dungeon

import (
	"strings"

	"github.com/vovakirdan/tui-rogue/internal/core"
	"github.com/vovakirdan/tui-rogue/internal/gameerr"
	"github.com/vovakirdan/tui-rogue/internal/item"
	"github.com/vovakirdan/tui-rogue/internal/rng"
)

// Smallest room including walls: two floor columns, one floor row.
const (
	minRoomW = 4
	minRoomH = 3
)

type cell struct {
	tile core.Tile
	// hidden doors look like the wall they were cut into
	hidden   bool
	disguise core.Tile
	visible  bool
	// room is the index of the room the cell belongs to (walls and doors
	// included), or -1.
	room int
}

func (c *cell) display() core.Tile {
	if c.hidden {
		return c.disguise
	}
	return c.tile
}

// level is one floor of the dungeon. Cells use screen coordinates: the map
// spans columns [0, width) and rows [top, bottom].
type level struct {
	num    uint32
	width  core.X
	top    core.Y
	bottom core.Y
	cells  []cell
	rooms  []core.Rect
	// start is kept free of items once chosen
	start    core.Coord
	hasStart bool
}

func newLevel(num uint32, width core.X, top, bottom core.Y) *level {
	lv := &level{
		num:    num,
		width:  width,
		top:    top,
		bottom: bottom,
		cells:  make([]cell, int(width)*int(bottom-top+1)),
	}
	for i := range lv.cells {
		lv.cells[i] = cell{tile: core.TileNone, room: -1}
	}
	return lv
}

func (lv *level) at(c core.Coord) *cell {
	if c.X < 0 || c.X >= lv.width || c.Y < lv.top || c.Y > lv.bottom {
		return nil
	}
	return &lv.cells[int(c.Y-lv.top)*int(lv.width)+int(c.X)]
}

func (lv *level) tileAt(c core.Coord) core.Tile {
	if cl := lv.at(c); cl != nil {
		return cl.tile
	}
	return core.TileNone
}

func (lv *level) addRoom(r core.Rect) {
	idx := len(lv.rooms)
	lv.rooms = append(lv.rooms, r)
	for c := range r.Cells() {
		cl := lv.at(c)
		cl.room = idx
		switch {
		case c.Y == r.Min.Y || c.Y == r.Max.Y:
			cl.tile = core.TileWallH
		case c.X == r.Min.X || c.X == r.Max.X:
			cl.tile = core.TileWallV
		default:
			cl.tile = core.TileFloor
		}
	}
}

func (lv *level) dig(c core.Coord) {
	if cl := lv.at(c); cl != nil && cl.tile == core.TileNone {
		cl.tile = core.TilePassage
	}
}

func (lv *level) makeDoor(c core.Coord, hidden bool) {
	cl := lv.at(c)
	if cl.tile == core.TileDoor {
		return
	}
	cl.disguise = cl.tile
	cl.tile = core.TileDoor
	cl.hidden = hidden
}

// canEnter reports whether the player may step from one cell to the next.
func (lv *level) canEnter(from, to core.Coord, dir core.Direction) bool {
	cl := lv.at(to)
	if cl == nil || cl.hidden {
		return false
	}
	switch cl.tile {
	case core.TileFloor, core.TilePassage, core.TileStair:
	case core.TileDoor:
		if dir.IsDiagonal() {
			return false
		}
	default:
		return false
	}
	return !(dir.IsDiagonal() && lv.tileAt(from) == core.TileDoor)
}

// lightRoom makes a whole room visible.
func (lv *level) lightRoom(idx int) {
	for c := range lv.rooms[idx].Cells() {
		lv.at(c).visible = true
	}
}

// lookAround updates visibility for a player standing at pos.
func (lv *level) lookAround(pos core.Coord) {
	here := lv.at(pos)
	if here == nil {
		return
	}
	here.visible = true
	if here.room >= 0 {
		lv.lightRoom(here.room)
	}
	for _, d := range core.Directions() {
		cl := lv.at(pos.Step(d))
		if cl == nil || cl.hidden {
			continue
		}
		if cl.tile == core.TilePassage || cl.tile == core.TileDoor {
			cl.visible = true
		}
	}
}

// freeFloor returns the floor cells of a room that hold no item and are not
// the start cell.
func (lv *level) freeFloor(room int, items *item.Handler) []core.Coord {
	var free []core.Coord
	for c := range lv.rooms[room].Inner().Cells() {
		if lv.tileAt(c) != core.TileFloor {
			continue
		}
		if lv.hasStart && c == lv.start {
			continue
		}
		if _, taken := items.GetRef(core.NewPath(lv.num, c)); taken {
			continue
		}
		free = append(free, c)
	}
	return free
}

// emptyFloor picks a random free cell of a room.
func (lv *level) emptyFloor(r *rng.Handle, room int, items *item.Handler) (core.Coord, error) {
	c, ok := rng.Choose(r, lv.freeFloor(room, items))
	if !ok {
		return core.Coord{}, gameerr.Newf(gameerr.Index, "no empty cell in room %d", room)
	}
	return c, nil
}

// anyEmptyFloor tries the rooms in random order and picks a free cell of the
// first one that has any.
func (lv *level) anyEmptyFloor(r *rng.Handle, items *item.Handler) (core.Coord, error) {
	for _, room := range r.Perm(len(lv.rooms)) {
		if c, ok := rng.Choose(r, lv.freeFloor(room, items)); ok {
			return c, nil
		}
	}
	return core.Coord{}, gameerr.Newf(gameerr.Index, "no empty cell on level %d", lv.num)
}

// rows renders the ground truth of the level, hidden doors included.
func (lv *level) rows() []string {
	out := make([]string, 0, int(lv.bottom-lv.top+1))
	var b strings.Builder
	for y := lv.top; y <= lv.bottom; y++ {
		b.Reset()
		for x := core.X(0); x < lv.width; x++ {
			b.WriteByte(lv.at(core.NewCoord(x, y)).tile.Byte())
		}
		out = append(out, b.String())
	}
	return out
}
