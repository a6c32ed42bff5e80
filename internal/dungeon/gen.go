package dungeon

import (
	"github.com/vovakirdan/tui-rogue/internal/core"
	"github.com/vovakirdan/tui-rogue/internal/gameerr"
	"github.com/vovakirdan/tui-rogue/internal/item"
	"github.com/vovakirdan/tui-rogue/internal/rng"
)

// grid splits the map area into equally sized blocks, one room per block.
type grid struct {
	cols, rows int
	bw, bh     int
}

func (g grid) index(i, j int) int { return j*g.cols + i }

func newGrid(style Style, width core.X, mapHeight core.Y) (grid, error) {
	if style.RoomNumX < 1 || style.RoomNumY < 1 {
		return grid{}, gameerr.Newf(gameerr.InvalidSetting,
			"room grid %dx%d must have at least one room", style.RoomNumX, style.RoomNumY)
	}
	g := grid{
		cols: style.RoomNumX,
		rows: style.RoomNumY,
		bw:   int(width) / style.RoomNumX,
		bh:   int(mapHeight) / style.RoomNumY,
	}
	if g.bw < minRoomW+2 {
		return grid{}, gameerr.Newf(gameerr.InvalidSetting, "%d rooms don't fit the screen width", style.RoomNumX)
	}
	if g.bh < minRoomH+2 {
		return grid{}, gameerr.Newf(gameerr.InvalidSetting, "%d rooms don't fit the screen height", style.RoomNumY)
	}
	return g, nil
}

type edge struct{ a, b int }

// generator builds one level. It draws from the dungeon's own stream and
// asks the item handler to populate rooms.
type generator struct {
	grid  grid
	rng   *rng.Handle
	items *item.Handler
}

func (g *generator) build(num uint32, width core.X, top, bottom core.Y, hasStairs bool) (*level, core.Coord, error) {
	lv := newLevel(num, width, top, bottom)

	for j := 0; j < g.grid.rows; j++ {
		for i := 0; i < g.grid.cols; i++ {
			lv.addRoom(g.placeRoom(i, j, top))
		}
	}
	for _, e := range g.connections() {
		g.connect(lv, e)
	}

	// Every room has at least two floor cells, so stairs and start always
	// fit. Gold only goes where space is left.
	if hasStairs {
		pos, err := lv.anyEmptyFloor(g.rng, g.items)
		if err != nil {
			return nil, core.Coord{}, gameerr.Wrap(err, "in Dungeon::genLevel")
		}
		lv.at(pos).tile = core.TileStair
	}
	start, err := lv.anyEmptyFloor(g.rng, g.items)
	if err != nil {
		return nil, core.Coord{}, gameerr.Wrap(err, "in Dungeon::genLevel")
	}
	lv.start, lv.hasStart = start, true

	for room := range lv.rooms {
		if len(lv.freeFloor(room, g.items)) == 0 {
			continue
		}
		supply := func() (core.Coord, error) { return lv.emptyFloor(g.rng, room, g.items) }
		if err := g.items.SetupGold(num, supply); err != nil {
			return nil, core.Coord{}, gameerr.Wrap(err, "in Dungeon::genLevel")
		}
	}
	return lv, start, nil
}

// placeRoom picks a room inside block (i, j) leaving a one cell margin, so
// neighbouring rooms are at least two cells apart.
func (g *generator) placeRoom(i, j int, top core.Y) core.Rect {
	bx := i * g.grid.bw
	by := int(top) + j*g.grid.bh
	w := g.rng.Range(minRoomW, g.grid.bw-2+1)
	h := g.rng.Range(minRoomH, g.grid.bh-2+1)
	x := bx + 1 + g.rng.Intn(g.grid.bw-2-w+1)
	y := by + 1 + g.rng.Intn(g.grid.bh-2-h+1)
	return core.NewRect(core.NewCoord(x, y), core.X(w), core.Y(h))
}

// connections returns a random spanning tree over the room grid plus a few
// extra edges. Edges always point right or down.
func (g *generator) connections() []edge {
	n := g.grid.cols * g.grid.rows
	neighbours := func(idx int) []int {
		i, j := idx%g.grid.cols, idx/g.grid.cols
		var out []int
		if i > 0 {
			out = append(out, g.grid.index(i-1, j))
		}
		if i < g.grid.cols-1 {
			out = append(out, g.grid.index(i+1, j))
		}
		if j > 0 {
			out = append(out, g.grid.index(i, j-1))
		}
		if j < g.grid.rows-1 {
			out = append(out, g.grid.index(i, j+1))
		}
		return out
	}
	ordered := func(a, b int) edge {
		if a > b {
			a, b = b, a
		}
		return edge{a, b}
	}

	connected := make([]bool, n)
	used := make(map[edge]bool)
	var edges []edge
	connected[g.rng.Intn(n)] = true
	for count := 1; count < n; count++ {
		var frontier []edge
		for idx := 0; idx < n; idx++ {
			if !connected[idx] {
				continue
			}
			for _, nb := range neighbours(idx) {
				if !connected[nb] {
					frontier = append(frontier, edge{idx, nb})
				}
			}
		}
		e, _ := rng.Choose(g.rng, frontier)
		connected[e.b] = true
		oe := ordered(e.a, e.b)
		used[oe] = true
		edges = append(edges, oe)
	}

	for idx := 0; idx < n; idx++ {
		for _, nb := range neighbours(idx) {
			oe := ordered(idx, nb)
			if oe.a != idx || used[oe] {
				continue
			}
			if g.rng.OneIn(4) {
				used[oe] = true
				edges = append(edges, oe)
			}
		}
	}
	return edges
}

// connect digs an L-shaped passage between two neighbouring rooms.
func (g *generator) connect(lv *level, e edge) {
	ra, rb := lv.rooms[e.a], lv.rooms[e.b]
	var doorA, doorB core.Coord

	if e.b == e.a+1 && e.a%g.grid.cols != g.grid.cols-1 {
		// rb is to the right of ra
		doorA = core.NewCoord(ra.Max.X, g.rng.Range(int(ra.Min.Y)+1, int(ra.Max.Y)))
		doorB = core.NewCoord(rb.Min.X, g.rng.Range(int(rb.Min.Y)+1, int(rb.Max.Y)))
		mid := core.X(g.rng.Range(int(ra.Max.X)+1, int(rb.Min.X)))
		for c := range doorA.Step(core.Right).DirectionIter(core.Right, func(c core.Coord) bool { return c.X > mid }) {
			lv.dig(c)
		}
		g.digVertical(lv, mid, doorA.Y, doorB.Y)
		for c := range core.NewCoord(mid, doorB.Y).DirectionIter(core.Right, func(c core.Coord) bool { return c.X >= doorB.X }) {
			lv.dig(c)
		}
	} else {
		// rb is below ra
		doorA = core.NewCoord(g.rng.Range(int(ra.Min.X)+1, int(ra.Max.X)), ra.Max.Y)
		doorB = core.NewCoord(g.rng.Range(int(rb.Min.X)+1, int(rb.Max.X)), rb.Min.Y)
		mid := core.Y(g.rng.Range(int(ra.Max.Y)+1, int(rb.Min.Y)))
		for c := range doorA.Step(core.Down).DirectionIter(core.Down, func(c core.Coord) bool { return c.Y > mid }) {
			lv.dig(c)
		}
		g.digHorizontal(lv, mid, doorA.X, doorB.X)
		for c := range core.NewCoord(doorB.X, mid).DirectionIter(core.Down, func(c core.Coord) bool { return c.Y >= doorB.Y }) {
			lv.dig(c)
		}
	}

	lv.makeDoor(doorA, g.hideDoor(lv.num))
	lv.makeDoor(doorB, g.hideDoor(lv.num))
}

func (g *generator) digVertical(lv *level, x core.X, y1, y2 core.Y) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		lv.dig(core.NewCoord(x, y))
	}
}

func (g *generator) digHorizontal(lv *level, y core.Y, x1, x2 core.X) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		lv.dig(core.NewCoord(x, y))
	}
}

// hideDoor decides whether a new door is secret. Deeper levels hide more.
func (g *generator) hideDoor(level uint32) bool {
	return g.rng.Intn(10)+1 < int(level) && g.rng.OneIn(5)
}
