package core

import (
	"fmt"
	"maps"
	"slices"
)

// Key is a decoded key press. Printable keys are the character itself;
// special keys use Bubble Tea names such as "up", "esc" or "ctrl+c".
type Key string

// Special keys understood by the runtime.
const (
	KeyEsc   Key = "esc"
	KeyEnter Key = "enter"
)

// KeyFromByte converts a raw input byte into a Key.
func KeyFromByte(b byte) Key {
	switch b {
	case 0x1b:
		return KeyEsc
	case '\r', '\n':
		return KeyEnter
	default:
		return Key(string(rune(b)))
	}
}

// Action represents a semantic game command, abstracted from physical key
// presses. The same runtime serves human and automated players by swapping
// the KeyMap.
type Action string

const (
	ActionMoveUp        Action = "move_up"
	ActionMoveDown      Action = "move_down"
	ActionMoveLeft      Action = "move_left"
	ActionMoveRight     Action = "move_right"
	ActionMoveLeftUp    Action = "move_left_up"
	ActionMoveRightUp   Action = "move_right_up"
	ActionMoveLeftDown  Action = "move_left_down"
	ActionMoveRightDown Action = "move_right_down"
	ActionRest          Action = "rest"    // spend a turn in place
	ActionRun           Action = "run"     // prefix: the next key picks the direction
	ActionSearch        Action = "search"  // look for hidden doors nearby
	ActionDescend       Action = "descend" // take the stairs
	ActionQuit          Action = "quit"    // opens the quit confirmation
)

var moveDirections = map[Action]Direction{
	ActionMoveUp:        Up,
	ActionMoveDown:      Down,
	ActionMoveLeft:      Left,
	ActionMoveRight:     Right,
	ActionMoveLeftUp:    LeftUp,
	ActionMoveRightUp:   RightUp,
	ActionMoveLeftDown:  LeftDown,
	ActionMoveRightDown: RightDown,
	ActionRest:          Stay,
}

// Direction returns the movement direction of a move or rest action.
func (a Action) Direction() (Direction, bool) {
	d, ok := moveDirections[a]
	return d, ok
}

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	if _, ok := moveDirections[a]; ok {
		return true
	}
	switch a {
	case ActionRun, ActionSearch, ActionDescend, ActionQuit:
		return true
	}
	return false
}

// KeyMap binds keys to actions. It serializes as a flat object.
type KeyMap map[Key]Action

// DefaultKeyMap returns the rogue bindings for human players: vi keys plus
// arrow keys.
func DefaultKeyMap() KeyMap {
	km := AIKeyMap()
	km["up"] = ActionMoveUp
	km["down"] = ActionMoveDown
	km["left"] = ActionMoveLeft
	km["right"] = ActionMoveRight
	return km
}

// AIKeyMap returns bindings that only use single-byte keys, so automated
// clients can drive the runtime with plain bytes.
func AIKeyMap() KeyMap {
	return KeyMap{
		"k": ActionMoveUp,
		"j": ActionMoveDown,
		"h": ActionMoveLeft,
		"l": ActionMoveRight,
		"y": ActionMoveLeftUp,
		"u": ActionMoveRightUp,
		"b": ActionMoveLeftDown,
		"n": ActionMoveRightDown,
		".": ActionRest,
		"f": ActionRun,
		"s": ActionSearch,
		">": ActionDescend,
		"Q": ActionQuit,
	}
}

// Get returns the action bound to key.
func (km KeyMap) Get(key Key) (Action, bool) {
	a, ok := km[key]
	return a, ok
}

// Clone returns an independent copy of the key map.
func (km KeyMap) Clone() KeyMap {
	return maps.Clone(km)
}

// Equal reports whether both maps hold the same bindings.
func (km KeyMap) Equal(other KeyMap) bool {
	return maps.Equal(km, other)
}

// Validate checks that every bound action is known.
func (km KeyMap) Validate() error {
	keys := slices.Sorted(maps.Keys(km))
	for _, k := range keys {
		if !km[k].Valid() {
			return fmt.Errorf("key %q is bound to unknown action %q", k, km[k])
		}
	}
	return nil
}
