package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rogue/internal/core"
)

func TestKeyFromMsg(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Key
	}{
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}}, "h"},
		{"upper rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'Q'}}, "Q"},
		{"stairs", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'>'}}, ">"},
		{"arrow", tea.KeyMsg{Type: tea.KeyUp}, "up"},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, core.KeyEsc},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.KeyEnter},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := KeyFromMsg(tc.msg); got != tc.expected {
				t.Errorf("KeyFromMsg() = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestIsForceQuit(t *testing.T) {
	if !IsForceQuit(tea.KeyMsg{Type: tea.KeyCtrlC}) {
		t.Error("ctrl+c should force quit")
	}
	if IsForceQuit(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'Q'}}) {
		t.Error("Q opens the prompt, it must not force quit")
	}
}
