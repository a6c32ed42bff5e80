package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rogue/internal/core"
)

// KeyFromMsg translates a Bubble Tea key message to a runtime key.
// Printable keys keep their character; special keys use Bubble Tea names.
func KeyFromMsg(msg tea.KeyMsg) core.Key {
	switch msg.Type {
	case tea.KeyEsc:
		return core.KeyEsc
	case tea.KeyEnter:
		return core.KeyEnter
	}
	return core.Key(msg.String())
}

// IsForceQuit reports whether the key ends the program without asking.
func IsForceQuit(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyCtrlC
}
