// Package agent exposes the runtime to automated players: one byte in, a
// flat byte map and a status dictionary out.
package agent

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rogue/internal/core"
	"github.com/vovakirdan/tui-rogue/internal/gameerr"
	"github.com/vovakirdan/tui-rogue/internal/rogue"
)

// State is what an agent observes after each step.
type State struct {
	Map    []string       `json:"map"`
	Status map[string]int `json:"status"`
}

// Client drives one runtime at a time with the AI key map.
type Client struct {
	config rogue.GameConfig
	rt     *rogue.RunTime
	grid   [][]byte
	status []core.StatusEntry
	prev   []core.Reaction
	logger *log.Logger
}

// New builds a client. A nil seed keeps the seed of config.
func New(config rogue.GameConfig, seed *uint64, logger *log.Logger) (*Client, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if seed != nil {
		config = config.WithSeed(*seed)
	}
	c := &Client{config: config, logger: logger}
	if err := c.Reset(); err != nil {
		return nil, err
	}
	return c, nil
}

// SetSeed fixes the seed used by the next Reset.
func (c *Client) SetSeed(seed uint64) {
	c.config = c.config.WithSeed(seed)
}

// Reset discards the current session and builds a new one.
func (c *Client) Reset() error {
	rt, err := c.config.Build(rogue.WithLogger(c.logger))
	if err != nil {
		return err
	}
	if err := rt.SetKeyMap(core.AIKeyMap()); err != nil {
		rt.Close()
		return err
	}
	w, h, err := rt.ScreenSize()
	if err != nil {
		rt.Close()
		return err
	}

	if c.rt != nil {
		c.rt.Close()
	}
	c.rt = rt
	c.grid = make([][]byte, h)
	for y := range c.grid {
		c.grid[y] = make([]byte, w)
	}
	c.prev = []core.Reaction{core.Redraw{}}
	if err := c.redraw(); err != nil {
		return err
	}
	return c.refreshStatus()
}

// React feeds one input byte to the runtime and returns the new state.
// Rejected input leaves the state unchanged.
func (c *Client) React(input byte) (State, error) {
	reactions, err := c.rt.ReactToKey(core.KeyFromByte(input))
	if err != nil {
		return State{}, fmt.Errorf("error in rogue core: %w", err)
	}
	for _, r := range reactions {
		switch r.(type) {
		case core.Redraw:
			err = c.redraw()
		case core.StatusUpdated:
			err = c.refreshStatus()
		}
		if err != nil {
			return State{}, err
		}
	}
	c.prev = reactions
	return c.Prev(), nil
}

// Prev returns the state after the last successful step.
func (c *Client) Prev() State {
	rows := make([]string, len(c.grid))
	for y, row := range c.grid {
		rows[y] = string(row)
	}
	status := make(map[string]int, len(c.status))
	for _, e := range c.status {
		status[e.Label] = e.Value
	}
	return State{Map: rows, Status: status}
}

// Reactions returns the reactions of the last successful step.
func (c *Client) Reactions() []core.Reaction {
	return slices.Clone(c.prev)
}

// Over reports whether the player quit the current session.
func (c *Client) Over() bool {
	return c.rt.Over()
}

// Seed returns the seed of the current session.
func (c *Client) Seed() (uint64, error) {
	inner, err := c.rt.Config()
	if err != nil {
		return 0, err
	}
	return inner.Seed, nil
}

// Close releases the current session.
func (c *Client) Close() {
	c.rt.Close()
}

func (c *Client) redraw() error {
	for _, row := range c.grid {
		for x := range row {
			row[x] = core.TileNone.Byte()
		}
	}
	return c.rt.DrawScreen(func(p core.Positioned) error {
		if p.Coord.Y < 0 || int(p.Coord.Y) >= len(c.grid) || p.Coord.X < 0 || int(p.Coord.X) >= len(c.grid[p.Coord.Y]) {
			return gameerr.Wrap(gameerr.Newf(gameerr.Index, "cell %s is off screen", p.Coord), "in Client::drawMap")
		}
		c.grid[p.Coord.Y][p.Coord.X] = p.Tile.Byte()
		return nil
	})
}

func (c *Client) refreshStatus() error {
	status, err := c.rt.PlayerStatus()
	if err != nil {
		return err
	}
	c.status = status
	return nil
}

// symbols lists the tiles an agent can observe, in channel order.
var symbols = []core.Tile{
	core.TileNone,
	core.TileFloor,
	core.TileWallH,
	core.TileWallV,
	core.TileDoor,
	core.TilePassage,
	core.TileStair,
	core.TilePlayer,
	core.TileGold,
	core.TileWeapon,
}

var symbolIndex = func() map[byte]uint8 {
	m := make(map[byte]uint8, len(symbols))
	for i, t := range symbols {
		m[t.Byte()] = uint8(i)
	}
	return m
}()

// Symbols returns the number of distinct symbols.
func Symbols() int {
	return len(symbols)
}

// SymbolMap converts the map to symbol indexes, one per cell.
func (s State) SymbolMap() ([][]uint8, error) {
	out := make([][]uint8, len(s.Map))
	for y, row := range s.Map {
		out[y] = make([]uint8, len(row))
		for x := 0; x < len(row); x++ {
			sym, ok := symbolIndex[row[x]]
			if !ok {
				return nil, gameerr.Newf(gameerr.Index, "unknown tile %q at (%d,%d)", row[x], x, y)
			}
			out[y][x] = sym
		}
	}
	return out, nil
}

// StatusKeys returns the status labels in sorted order.
func (s State) StatusKeys() []string {
	return slices.Sorted(maps.Keys(s.Status))
}
