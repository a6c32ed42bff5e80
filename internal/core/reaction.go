package core

import "fmt"

// Reaction is one unit of per-turn output. The runtime returns reactions in
// the order the effects happened and front ends must handle them in order.
type Reaction interface {
	reaction()
}

// Notify reports an informational event. It never changes state.
type Notify struct {
	Msg GameMsg
}

func (Notify) reaction() {}

// Redraw means the visible map changed and must be drawn again.
type Redraw struct{}

func (Redraw) reaction() {}

// StatusUpdated means the player status changed.
type StatusUpdated struct{}

func (StatusUpdated) reaction() {}

// UiTransition means the runtime switched its modal state.
type UiTransition struct {
	State UiState
}

func (UiTransition) reaction() {}

// GameMsg is the payload of a Notify reaction.
type GameMsg interface {
	gameMsg()
	fmt.Stringer
}

// CantMove is sent when the player bumps into something.
type CantMove struct {
	Dir Direction
}

func (CantMove) gameMsg() {}

func (m CantMove) String() string {
	return fmt.Sprintf("your %s way is blocked", m.Dir)
}

// CantGetItem is sent when the player steps on an item that can't be picked up.
type CantGetItem struct {
	Kind string
}

func (CantGetItem) gameMsg() {}

func (m CantGetItem) String() string {
	return fmt.Sprintf("you walk onto %s", m.Kind)
}

// NoDownStair is sent when descending away from the stairs.
type NoDownStair struct{}

func (NoDownStair) gameMsg() {}

func (NoDownStair) String() string {
	return "Hmm... there seems to be no downstair"
}

// GotItem is sent when the player picks something up.
type GotItem struct {
	Kind string
	Num  uint32
}

func (GotItem) gameMsg() {}

func (m GotItem) String() string {
	return fmt.Sprintf("now you have %d %s", m.Num, m.Kind)
}

// SecretDoor is sent when a search reveals a hidden door.
type SecretDoor struct{}

func (SecretDoor) gameMsg() {}

func (SecretDoor) String() string {
	return "you found a secret door"
}

// Quit ends the play session. Front ends present it and stop.
type Quit struct{}

func (Quit) gameMsg() {}

func (Quit) String() string {
	return "Thank you for playing!"
}

// UiState is the modal state of the runtime.
type UiState struct {
	Mordal MordalKind
}

// MordalKind names the modal prompt currently open.
type MordalKind uint8

const (
	MordalNone MordalKind = iota
	MordalQuit
)

// UiNormal is the state in which keys are mapped through the KeyMap.
var UiNormal = UiState{}

// UiMordal returns the state of an open prompt.
func UiMordal(kind MordalKind) UiState {
	return UiState{Mordal: kind}
}

// IsMordal reports whether a prompt is open.
func (s UiState) IsMordal() bool {
	return s.Mordal != MordalNone
}

// Prompt returns the question shown for an open prompt.
func (s UiState) Prompt() string {
	switch s.Mordal {
	case MordalQuit:
		return "You really quit game?(y/n)"
	default:
		return ""
	}
}

// IsQuit reports whether reactions contain a Quit notification.
func IsQuit(reactions []Reaction) bool {
	for _, r := range reactions {
		if n, ok := r.(Notify); ok {
			if _, quit := n.Msg.(Quit); quit {
				return true
			}
		}
	}
	return false
}
