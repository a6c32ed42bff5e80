package dungeon

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rogue/internal/core"
	"github.com/vovakirdan/tui-rogue/internal/gameerr"
	"github.com/vovakirdan/tui-rogue/internal/item"
	"github.com/vovakirdan/tui-rogue/internal/rng"
)

// StyleRogue is the classic rogue layout: a grid of rooms joined by
// passages.
const StyleRogue = "rogue"

func init() {
	Register(StyleRogue, NewRogue)
}

// Starting player stats.
const (
	initHP  = 12
	initStr = 16
)

type player struct {
	pos   core.Coord
	purse item.Item
	hp    int
	maxHP int
	str   int
	exp   int
	turns uint64
}

// Rogue is the rogue style dungeon.
type Rogue struct {
	style  Style
	config core.ConfigInner
	info   *core.GameInfo
	items  *item.Handler
	rng    *rng.Handle
	gen    generator
	logger *log.Logger

	level  *level
	player player
}

// NewRogue builds a rogue dungeon and generates its first level.
func NewRogue(style Style, deps Deps) (Dungeon, error) {
	if style.MaxLevel < 1 {
		return nil, gameerr.New(gameerr.InvalidSetting, "max level must be at least 1")
	}
	g, err := newGrid(style, deps.Config.Width, deps.Config.Height-2)
	if err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	r := rng.New(deps.Config.Seed, rng.StreamDungeon)
	d := &Rogue{
		style:  style,
		config: deps.Config,
		info:   deps.Info,
		items:  deps.Items,
		rng:    r,
		gen:    generator{grid: g, rng: r, items: deps.Items},
		logger: logger,
		player: player{
			purse: item.Item{Kind: item.Gold}.Many(),
			hp:    initHP,
			maxHP: initHP,
			str:   initStr,
		},
	}
	if err := d.enterLevel(1); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Rogue) enterLevel(num uint32) error {
	var (
		lv    *level
		start core.Coord
	)
	err := d.transact(func() error {
		var err error
		lv, start, err = d.gen.build(num, d.config.Width, 1, d.config.Height-2, num < d.style.MaxLevel)
		return err
	})
	if err != nil {
		return err
	}
	d.level = lv
	d.player.pos = start
	lv.lookAround(start)
	if num >= d.style.MaxLevel {
		d.info.SetCleared()
	}
	d.logger.Debug("level generated", "level", num, "rooms", len(lv.rooms), "start", start)
	return nil
}

// transact runs fn and, if it fails, rolls the item handler and the dungeon
// stream back to where they were before the call.
func (d *Rogue) transact(fn func() error) error {
	items := d.items.Snapshot()
	// PCG state encoding can't fail.
	state, _ := d.rng.MarshalBinary()

	err := fn()
	if err == nil {
		return nil
	}
	if rerr := d.items.Restore(items); rerr != nil {
		d.logger.Error("item rollback failed", "err", rerr)
	}
	if rerr := d.rng.UnmarshalBinary(state); rerr != nil {
		d.logger.Error("rng rollback failed", "err", rerr)
	}
	return err
}

// Level implements Dungeon.
func (d *Rogue) Level() uint32 {
	return d.level.num
}

// Player implements Dungeon.
func (d *Rogue) Player() core.Coord {
	return d.player.pos
}

// Move implements Dungeon.
func (d *Rogue) Move(dir core.Direction) ([]core.Reaction, error) {
	if dir == core.Stay {
		d.player.turns++
		return nil, nil
	}
	to := d.player.pos.Step(dir)
	if !d.level.canEnter(d.player.pos, to, dir) {
		return []core.Reaction{core.Notify{Msg: core.CantMove{Dir: dir}}}, nil
	}
	events, err := d.step(to)
	if err != nil {
		return nil, gameerr.Wrap(err, "in Dungeon::Move")
	}
	return append([]core.Reaction{core.Redraw{}}, events...), nil
}

// Run implements Dungeon.
func (d *Rogue) Run(dir core.Direction) ([]core.Reaction, error) {
	if dir == core.Stay {
		return nil, gameerr.New(gameerr.LogicError, "can't run in place")
	}
	blocked := func(c core.Coord) bool { return !d.level.canEnter(d.player.pos, c, dir) }

	var events []core.Reaction
	moved := false
	for c := range d.player.pos.Step(dir).DirectionIter(dir, blocked) {
		fromRoom := d.level.at(d.player.pos).room
		ev, err := d.step(c)
		if err != nil {
			return nil, gameerr.Wrap(err, "in Dungeon::Run")
		}
		events = append(events, ev...)
		moved = true
		if d.stopsRun(c, fromRoom) || len(events) > 0 {
			break
		}
	}
	if !moved {
		return []core.Reaction{core.Notify{Msg: core.CantMove{Dir: dir}}}, nil
	}
	return append([]core.Reaction{core.Redraw{}}, events...), nil
}

// stopsRun reports whether a running player halts on c.
func (d *Rogue) stopsRun(c core.Coord, fromRoom int) bool {
	cl := d.level.at(c)
	switch cl.tile {
	case core.TileDoor, core.TileStair:
		return true
	}
	if _, ok := d.items.GetRef(core.NewPath(d.level.num, c)); ok {
		return true
	}
	return cl.room >= 0 && cl.room != fromRoom
}

// step moves the player onto a cell already checked with canEnter and
// returns the reactions other than the redraw.
func (d *Rogue) step(to core.Coord) ([]core.Reaction, error) {
	d.player.pos = to
	d.player.turns++
	d.level.lookAround(to)

	path := core.NewPath(d.level.num, to)
	it, ok := d.items.GetRef(path)
	if !ok {
		return nil, nil
	}
	if it.Kind != item.Gold {
		return []core.Reaction{core.Notify{Msg: core.CantGetItem{Kind: it.Kind.String()}}}, nil
	}
	purse, err := d.player.purse.Merge(it, nil)
	if err != nil {
		return nil, err
	}
	d.items.TakeAt(path)
	d.player.purse = purse
	d.logger.Debug("picked up", "item", it, "path", path)
	return []core.Reaction{
		core.Notify{Msg: core.GotItem{Kind: it.Kind.String(), Num: uint32(it.Num)}},
		core.StatusUpdated{},
	}, nil
}

// Search implements Dungeon.
func (d *Rogue) Search() ([]core.Reaction, error) {
	d.player.turns++
	found := false
	for _, dir := range core.Directions() {
		cl := d.level.at(d.player.pos.Step(dir))
		if cl == nil || !cl.hidden {
			continue
		}
		if d.rng.OneIn(3) {
			cl.hidden = false
			cl.visible = true
			found = true
		}
	}
	if !found {
		return nil, nil
	}
	d.level.lookAround(d.player.pos)
	return []core.Reaction{core.Notify{Msg: core.SecretDoor{}}, core.Redraw{}}, nil
}

// Descend implements Dungeon.
func (d *Rogue) Descend() ([]core.Reaction, error) {
	if d.level.tileAt(d.player.pos) != core.TileStair {
		return []core.Reaction{core.Notify{Msg: core.NoDownStair{}}}, nil
	}
	if err := d.enterLevel(d.level.num + 1); err != nil {
		return nil, gameerr.Wrap(err, "in Dungeon::Descend")
	}
	d.player.turns++
	return []core.Reaction{core.Redraw{}, core.StatusUpdated{}}, nil
}

// Draw implements Dungeon.
func (d *Rogue) Draw(fn func(core.Positioned) error) error {
	lv := d.level
	for y := lv.top; y <= lv.bottom; y++ {
		for x := core.X(0); x < lv.width; x++ {
			pos := core.NewCoord(x, y)
			cl := lv.at(pos)
			if !cl.visible {
				continue
			}
			tile := cl.display()
			if it, ok := d.items.GetRef(core.NewPath(lv.num, pos)); ok {
				t, err := it.Tile()
				if err != nil {
					return gameerr.Wrap(err, "in Dungeon::Draw")
				}
				tile = t
			}
			if pos == d.player.pos {
				tile = core.TilePlayer
			}
			if tile == core.TileNone {
				continue
			}
			if err := fn(core.Positioned{Coord: pos, Tile: tile}); err != nil {
				return gameerr.Wrap(err, "in Dungeon::Draw")
			}
		}
	}
	return nil
}

// Status implements Dungeon.
func (d *Rogue) Status() []core.StatusEntry {
	return []core.StatusEntry{
		{Label: "Level", Value: int(d.level.num)},
		{Label: "Gold", Value: int(d.player.purse.Num)},
		{Label: "Hp", Value: d.player.hp},
		{Label: "MaxHp", Value: d.player.maxHP},
		{Label: "Str", Value: d.player.str},
		{Label: "Exp", Value: d.player.exp},
	}
}

// Snapshot implements Dungeon.
func (d *Rogue) Snapshot() Snapshot {
	return Snapshot{
		Level:  d.level.num,
		Player: d.player.pos,
		Gold:   d.player.purse.Num,
		Turns:  d.player.turns,
		Map:    d.level.rows(),
	}
}
