// Package dungeon provides the dungeon builders used by the runtime.
// Builders register themselves by style name, allowing the runtime to
// construct a dungeon from configuration without hardcoded dependencies.
package dungeon

import (
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rogue/internal/core"
	"github.com/vovakirdan/tui-rogue/internal/gameerr"
	"github.com/vovakirdan/tui-rogue/internal/item"
)

// Style selects a builder and carries its settings. It is flattened into the
// game configuration, so the field names are shared with the top level.
type Style struct {
	// Dungeon is the registered style name (e.g., "rogue").
	Dungeon string `json:"dungeon" yaml:"dungeon"`
	// RoomNumX and RoomNumY size the grid of rooms on each level.
	RoomNumX int `json:"room_num_x" yaml:"room_num_x"`
	RoomNumY int `json:"room_num_y" yaml:"room_num_y"`
	// MaxLevel is the deepest level. Reaching it clears the dungeon.
	MaxLevel uint32 `json:"max_level" yaml:"max_level"`
}

// DefaultStyle returns the classic 3x3 rogue layout with 26 levels.
func DefaultStyle() Style {
	return Style{
		Dungeon:  StyleRogue,
		RoomNumX: 3,
		RoomNumY: 3,
		MaxLevel: 26,
	}
}

// Deps are the shared session objects a dungeon works with. The dungeon
// keeps them for its whole lifetime: it fills Items while generating levels
// and flags Info when the dungeon is cleared.
type Deps struct {
	Config core.ConfigInner
	Info   *core.GameInfo
	Items  *item.Handler
	Logger *log.Logger
}

// Dungeon is a live dungeon with the player inside.
//
// Action methods return the reactions in the order the effects happened.
// None of them may be called concurrently.
type Dungeon interface {
	// Move steps the player once. Stay rests for a turn.
	Move(dir core.Direction) ([]core.Reaction, error)

	// Run moves the player repeatedly until something interesting is reached.
	Run(dir core.Direction) ([]core.Reaction, error)

	// Search looks for hidden doors around the player.
	Search() ([]core.Reaction, error)

	// Descend takes the stairs under the player.
	Descend() ([]core.Reaction, error)

	// Draw calls fn once for every visible cell. An error from fn aborts
	// the draw.
	Draw(fn func(core.Positioned) error) error

	// Status returns the player status in display order.
	Status() []core.StatusEntry

	// Level returns the current dungeon level, starting at 1.
	Level() uint32

	// Player returns the player position.
	Player() core.Coord

	// Snapshot returns the full dungeon state, hidden cells included.
	Snapshot() Snapshot
}

// Snapshot captures the dungeon state for determinism checks and the run log.
type Snapshot struct {
	Level  uint32     `json:"level"`
	Player core.Coord `json:"player"`
	Gold   item.Num   `json:"gold"`
	Turns  uint64     `json:"turns"`
	// Map is the ground truth of the current level, one string per row.
	Map []string `json:"map"`
}

// Factory builds a dungeon of one style.
type Factory func(style Style, deps Deps) (Dungeon, error)

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register adds a dungeon builder to the registry.
// Panics if a style with the same name is already registered.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("dungeon: style %q already registered", name))
	}
	factories[name] = f
}

// Styles returns the registered style names, sorted.
func Styles() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Exists checks if a style with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}

// Build constructs a dungeon of the given style.
func Build(style Style, deps Deps) (Dungeon, error) {
	mu.RLock()
	f, ok := factories[style.Dungeon]
	mu.RUnlock()

	if !ok {
		return nil, gameerr.Newf(gameerr.InvalidSetting, "unknown dungeon style %q", style.Dungeon)
	}
	if deps.Info == nil || deps.Items == nil {
		return nil, gameerr.New(gameerr.LogicError, "dungeon needs game info and item handler")
	}
	d, err := f(style, deps)
	if err != nil {
		return nil, gameerr.Wrap(err, "in Dungeon::Build")
	}
	return d, nil
}
