package dungeon

import (
	"errors"
	"slices"
	"testing"

	"github.com/vovakirdan/tui-rogue/internal/core"
	"github.com/vovakirdan/tui-rogue/internal/gameerr"
	"github.com/vovakirdan/tui-rogue/internal/item"
	"github.com/vovakirdan/tui-rogue/internal/rng"
)

func newDeps(seed uint64) Deps {
	cfg := core.DefaultConfigInner()
	cfg.Seed = seed
	return Deps{
		Config: cfg,
		Info:   core.NewGameInfo(),
		Items:  item.NewHandler(item.DefaultConfig(), seed),
	}
}

func buildRogue(t *testing.T, style Style, deps Deps) *Rogue {
	t.Helper()
	d, err := Build(style, deps)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return d.(*Rogue)
}

func TestRegistry(t *testing.T) {
	if !slices.Contains(Styles(), StyleRogue) || !Exists(StyleRogue) {
		t.Fatalf("rogue style not registered: %v", Styles())
	}

	style := DefaultStyle()
	style.Dungeon = "cave"
	if _, err := Build(style, newDeps(1)); !gameerr.Is(err, gameerr.InvalidSetting) {
		t.Errorf("unknown style error = %v, expected InvalidSetting", err)
	}

	if _, err := Build(DefaultStyle(), Deps{Config: core.DefaultConfigInner()}); !gameerr.Is(err, gameerr.LogicError) {
		t.Errorf("missing deps error = %v, expected LogicError", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register(StyleRogue, NewRogue)
}

func TestStyleValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Style)
	}{
		{"no columns", func(s *Style) { s.RoomNumX = 0 }},
		{"too many columns", func(s *Style) { s.RoomNumX = 20 }},
		{"too many rows", func(s *Style) { s.RoomNumY = 5 }},
		{"no levels", func(s *Style) { s.MaxLevel = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			style := DefaultStyle()
			tc.modify(&style)
			_, err := Build(style, newDeps(1))
			if !gameerr.Is(err, gameerr.InvalidSetting) {
				t.Errorf("Build() error = %v, expected InvalidSetting", err)
			}
		})
	}
}

func TestLayoutDeterminism(t *testing.T) {
	a := buildRogue(t, DefaultStyle(), newDeps(42))
	b := buildRogue(t, DefaultStyle(), newDeps(42))

	sa, sb := a.Snapshot(), b.Snapshot()
	if !slices.Equal(sa.Map, sb.Map) || sa.Player != sb.Player {
		t.Fatal("same seed produced different levels")
	}

	var pa, pb []core.Path
	for p := range a.items.Placed() {
		pa = append(pa, p)
	}
	for p := range b.items.Placed() {
		pb = append(pb, p)
	}
	if !slices.Equal(pa, pb) {
		t.Errorf("item placements differ: %v vs %v", pa, pb)
	}

	c := buildRogue(t, DefaultStyle(), newDeps(43))
	if slices.Equal(sa.Map, c.Snapshot().Map) {
		t.Error("different seeds should produce different levels")
	}
}

func TestRoomsKeepMargin(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		d := buildRogue(t, DefaultStyle(), newDeps(seed))
		rooms := d.level.rooms
		if len(rooms) != 9 {
			t.Fatalf("seed %d: %d rooms, expected 9", seed, len(rooms))
		}
		for i := 0; i < len(rooms); i++ {
			for j := i + 1; j < len(rooms); j++ {
				a, b := rooms[i], rooms[j]
				apartX := a.Max.X+2 < b.Min.X || b.Max.X+2 < a.Min.X
				apartY := a.Max.Y+2 < b.Min.Y || b.Max.Y+2 < a.Min.Y
				if !apartX && !apartY {
					t.Errorf("seed %d: rooms %v and %v are too close", seed, a, b)
				}
			}
			if rooms[i].Min.Y < 1 || rooms[i].Max.Y > d.level.bottom {
				t.Errorf("seed %d: room %v leaves the map area", seed, rooms[i])
			}
		}
	}
}

func TestLayoutConnected(t *testing.T) {
	walkable := func(tile core.Tile) bool {
		switch tile {
		case core.TileFloor, core.TilePassage, core.TileDoor, core.TileStair:
			return true
		}
		return false
	}
	orth := []core.Direction{core.Up, core.Down, core.Left, core.Right}

	sizes := []struct {
		w core.X
		h core.Y
	}{{80, 24}, {160, 48}, {123, 31}}

	for _, size := range sizes {
		for seed := uint64(1); seed <= 10; seed++ {
			deps := newDeps(seed)
			deps.Config.Width, deps.Config.Height = size.w, size.h
			d := buildRogue(t, DefaultStyle(), deps)
			lv := d.level

			seen := map[core.Coord]bool{d.player.pos: true}
			queue := []core.Coord{d.player.pos}
			for len(queue) > 0 {
				cur := queue[0]
				queue = queue[1:]
				for _, dir := range orth {
					next := cur.Step(dir)
					if seen[next] || !walkable(lv.tileAt(next)) {
						continue
					}
					seen[next] = true
					queue = append(queue, next)
				}
			}

			for i, r := range lv.rooms {
				for c := range r.Inner().Cells() {
					if !seen[c] {
						t.Fatalf("%dx%d seed %d: floor %v of room %d unreachable", size.w, size.h, seed, c, i)
					}
				}
			}
		}
	}
}

func TestFirstLevelHasStairsAndPlayer(t *testing.T) {
	d := buildRogue(t, DefaultStyle(), newDeps(7))

	stairs := 0
	for _, row := range d.Snapshot().Map {
		for i := 0; i < len(row); i++ {
			if row[i] == byte(core.TileStair) {
				stairs++
			}
		}
	}
	if stairs != 1 {
		t.Errorf("found %d stairs, expected 1", stairs)
	}
	if d.level.tileAt(d.Player()) != core.TileFloor {
		t.Errorf("player starts on %q", d.level.tileAt(d.Player()))
	}
	if d.Level() != 1 || d.info.IsCleared() {
		t.Error("fresh dungeon should be on level 1 and not cleared")
	}
}

func TestDraw(t *testing.T) {
	d := buildRogue(t, DefaultStyle(), newDeps(3))

	players := 0
	err := d.Draw(func(p core.Positioned) error {
		if p.Tile == core.TilePlayer {
			players++
			if p.Coord != d.Player() {
				t.Errorf("player drawn at %v, expected %v", p.Coord, d.Player())
			}
		}
		if !d.level.at(p.Coord).visible {
			t.Errorf("invisible cell %v drawn", p.Coord)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if players != 1 {
		t.Errorf("player drawn %d times", players)
	}

	stop := errors.New("screen closed")
	err = d.Draw(func(core.Positioned) error { return stop })
	if !errors.Is(err, stop) {
		t.Errorf("Draw() error = %v, expected callback error", err)
	}
}

// corner puts the player on the top-left floor cell of the top-left room,
// which has no doors on its top and left walls.
func corner(d *Rogue) core.Coord {
	r := d.level.rooms[0]
	pos := r.Min.Add(core.NewCoord(1, 1))
	d.player.pos = pos
	d.level.lookAround(pos)
	return pos
}

func TestMoveBlocked(t *testing.T) {
	d := buildRogue(t, DefaultStyle(), newDeps(5))
	start := corner(d)
	turns := d.player.turns

	for _, dir := range []core.Direction{core.Up, core.Left, core.LeftUp} {
		got, err := d.Move(dir)
		if err != nil {
			t.Fatalf("Move(%v) error = %v", dir, err)
		}
		expected := []core.Reaction{core.Notify{Msg: core.CantMove{Dir: dir}}}
		if !slices.Equal(got, expected) {
			t.Errorf("Move(%v) = %v, expected %v", dir, got, expected)
		}
	}
	if d.Player() != start || d.player.turns != turns {
		t.Error("blocked moves should not move the player or spend turns")
	}
}

func TestMovePicksUpGold(t *testing.T) {
	d := buildRogue(t, DefaultStyle(), newDeps(5))
	start := corner(d)
	target := start.Step(core.Right)
	d.items.Put(core.NewPath(1, target), item.Item{Kind: item.Gold, Num: 7}.Many())
	before := d.player.purse.Num

	got, err := d.Move(core.Right)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	expected := []core.Reaction{
		core.Redraw{},
		core.Notify{Msg: core.GotItem{Kind: "gold", Num: 7}},
		core.StatusUpdated{},
	}
	if !slices.Equal(got, expected) {
		t.Errorf("Move() = %v, expected %v", got, expected)
	}
	if d.Player() != target {
		t.Errorf("player at %v, expected %v", d.Player(), target)
	}
	if d.player.purse.Num != before+7 {
		t.Errorf("gold = %d, expected %d", d.player.purse.Num, before+7)
	}
	if _, ok := d.items.GetRef(core.NewPath(1, target)); ok {
		t.Error("gold should be removed from the floor")
	}
	if d.Status()[1] != (core.StatusEntry{Label: "Gold", Value: int(before + 7)}) {
		t.Errorf("status = %v", d.Status())
	}
}

func TestMoveOntoUnpickableItem(t *testing.T) {
	d := buildRogue(t, DefaultStyle(), newDeps(5))
	target := corner(d).Step(core.Right)
	d.items.Put(core.NewPath(1, target), item.Item{Kind: item.Weapon, Num: 1})

	got, err := d.Move(core.Right)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	expected := []core.Reaction{core.Redraw{}, core.Notify{Msg: core.CantGetItem{Kind: "weapon"}}}
	if !slices.Equal(got, expected) {
		t.Errorf("Move() = %v, expected %v", got, expected)
	}
	if _, ok := d.items.GetRef(core.NewPath(1, target)); !ok {
		t.Error("weapon should stay on the floor")
	}
}

func TestRun(t *testing.T) {
	d := buildRogue(t, DefaultStyle(), newDeps(11))
	start := corner(d)

	got, err := d.Run(core.Right)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(got) == 0 || got[0] != (core.Reaction)(core.Redraw{}) {
		t.Fatalf("Run() = %v, expected a redraw first", got)
	}
	pos := d.Player()
	if pos.Y != start.Y || pos.X <= start.X {
		t.Errorf("ran from %v to %v", start, pos)
	}

	if _, err := d.Run(core.Stay); !gameerr.Is(err, gameerr.LogicError) {
		t.Errorf("Run(Stay) error = %v, expected LogicError", err)
	}
}

func TestRunStopsAtWall(t *testing.T) {
	d := buildRogue(t, DefaultStyle(), newDeps(11))
	start := corner(d)
	r := d.level.rooms[0]
	// clear the row so nothing but the wall stops the run
	for x := start.X; x < r.Max.X; x++ {
		d.items.TakeAt(core.NewPath(1, core.NewCoord(x, start.Y)))
		d.level.at(core.NewCoord(x, start.Y)).tile = core.TileFloor
	}
	if cl := d.level.at(core.NewCoord(r.Max.X, start.Y)); cl.tile == core.TileDoor {
		cl.tile = core.TileWallV
	}

	if _, err := d.Run(core.Right); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if expected := core.NewCoord(r.Max.X-1, start.Y); d.Player() != expected {
		t.Errorf("player at %v, expected %v", d.Player(), expected)
	}
}

func TestSearchRevealsHiddenDoor(t *testing.T) {
	d := buildRogue(t, DefaultStyle(), newDeps(13))
	start := corner(d)
	wall := start.Step(core.Left)
	d.level.makeDoor(wall, true)

	if got, _ := d.Move(core.Left); !slices.Equal(got, []core.Reaction{core.Notify{Msg: core.CantMove{Dir: core.Left}}}) {
		t.Fatalf("hidden door should block, got %v", got)
	}

	found := false
	for i := 0; i < 100 && !found; i++ {
		got, err := d.Search()
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(got) > 0 {
			expected := []core.Reaction{core.Notify{Msg: core.SecretDoor{}}, core.Redraw{}}
			if !slices.Equal(got, expected) {
				t.Fatalf("Search() = %v, expected %v", got, expected)
			}
			found = true
		}
	}
	if !found {
		t.Fatal("search never found the door")
	}
	if d.level.at(wall).hidden || !d.level.canEnter(start, wall, core.Left) {
		t.Error("revealed door should be passable")
	}
}

func TestDescend(t *testing.T) {
	style := DefaultStyle()
	style.MaxLevel = 2
	deps := newDeps(17)
	d := buildRogue(t, style, deps)

	corner(d)
	if d.level.tileAt(d.Player()) != core.TileStair {
		got, err := d.Descend()
		if err != nil {
			t.Fatalf("Descend() error = %v", err)
		}
		if !slices.Equal(got, []core.Reaction{core.Notify{Msg: core.NoDownStair{}}}) {
			t.Errorf("Descend() off stairs = %v", got)
		}
	}

	var stairs core.Coord
	for _, r := range d.level.rooms {
		for c := range r.Cells() {
			if d.level.tileAt(c) == core.TileStair {
				stairs = c
			}
		}
	}
	d.player.pos = stairs

	got, err := d.Descend()
	if err != nil {
		t.Fatalf("Descend() error = %v", err)
	}
	if !slices.Equal(got, []core.Reaction{core.Redraw{}, core.StatusUpdated{}}) {
		t.Errorf("Descend() = %v", got)
	}
	if d.Level() != 2 || d.Status()[0].Value != 2 {
		t.Errorf("level = %d after descending", d.Level())
	}
	if !deps.Info.IsCleared() {
		t.Error("reaching the last level should clear the dungeon")
	}
	for _, row := range d.Snapshot().Map {
		for i := 0; i < len(row); i++ {
			if row[i] == byte(core.TileStair) {
				t.Fatal("last level should have no stairs")
			}
		}
	}
}

func TestSmallestRoomsStillGetStairsAndStart(t *testing.T) {
	cfg := item.DefaultConfig()
	cfg.Gold.Rate = 100

	for seed := uint64(0); seed < 200; seed++ {
		items := item.NewHandler(cfg, seed)
		g := generator{
			grid:  grid{cols: 3, rows: 3, bw: minRoomW + 2, bh: minRoomH + 2},
			rng:   rng.New(seed, rng.StreamDungeon),
			items: items,
		}
		lv, start, err := g.build(1, 80, 1, 22, true)
		if err != nil {
			t.Fatalf("seed %d: build() error = %v", seed, err)
		}
		if lv.tileAt(start) != core.TileFloor {
			t.Errorf("seed %d: start on %q", seed, lv.tileAt(start))
		}
		if _, ok := items.GetRef(core.NewPath(1, start)); ok {
			t.Errorf("seed %d: item under the start cell", seed)
		}
		stairs := 0
		for _, r := range lv.rooms {
			for c := range r.Inner().Cells() {
				if lv.tileAt(c) != core.TileStair {
					continue
				}
				stairs++
				if _, ok := items.GetRef(core.NewPath(1, c)); ok {
					t.Errorf("seed %d: item on the stairs", seed)
				}
			}
		}
		if stairs != 1 {
			t.Errorf("seed %d: %d stairs, expected 1", seed, stairs)
		}
	}
}

func TestDescendToLastLevel(t *testing.T) {
	seeds := uint64(300)
	if testing.Short() {
		seeds = 30
	}
	for seed := uint64(0); seed < seeds; seed++ {
		deps := newDeps(seed)
		d := buildRogue(t, DefaultStyle(), deps)

		for d.Level() < d.style.MaxLevel {
			found := false
			for _, r := range d.level.rooms {
				for c := range r.Inner().Cells() {
					if d.level.tileAt(c) == core.TileStair {
						d.player.pos, found = c, true
					}
				}
			}
			if !found {
				t.Fatalf("seed %d: level %d has no stairs", seed, d.Level())
			}
			if _, err := d.Descend(); err != nil {
				t.Fatalf("seed %d: Descend() from level %d error = %v", seed, d.Level(), err)
			}
		}
		if !deps.Info.IsCleared() {
			t.Errorf("seed %d: dungeon not cleared at level %d", seed, d.Level())
		}
	}
}

func TestFailedLevelLeavesNoTrace(t *testing.T) {
	d := buildRogue(t, DefaultStyle(), newDeps(9))
	items := d.items.Snapshot()
	state, _ := d.rng.MarshalBinary()

	boom := errors.New("no room for the level")
	err := d.transact(func() error {
		d.items.Put(core.NewPath(2, core.NewCoord(4, 4)), item.Item{Kind: item.Gold, Num: 3}.Many())
		d.rng.Intn(100)
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("transact() error = %v, expected %v", err, boom)
	}

	after := d.items.Snapshot()
	if after.NextID != items.NextID || len(after.Items) != len(items.Items) || len(after.Placed) != len(items.Placed) {
		t.Errorf("item handler changed: next id %d -> %d, %d -> %d items",
			items.NextID, after.NextID, len(items.Items), len(after.Items))
	}
	if got, _ := d.rng.MarshalBinary(); string(got) != string(state) {
		t.Error("dungeon stream was not rolled back")
	}
}

func TestSingleLevelDungeonIsCleared(t *testing.T) {
	style := DefaultStyle()
	style.MaxLevel = 1
	deps := newDeps(2)
	buildRogue(t, style, deps)

	if !deps.Info.IsCleared() {
		t.Error("a one level dungeon is cleared on arrival")
	}
}

func TestStatusOrder(t *testing.T) {
	d := buildRogue(t, DefaultStyle(), newDeps(1))

	var labels []string
	for _, e := range d.Status() {
		labels = append(labels, e.Label)
	}
	expected := []string{"Level", "Gold", "Hp", "MaxHp", "Str", "Exp"}
	if !slices.Equal(labels, expected) {
		t.Errorf("labels = %v, expected %v", labels, expected)
	}
}
