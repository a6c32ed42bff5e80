package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-rogue/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorBrightWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
}

var (
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
)

// RenderMap converts the map rows of a Screen to a styled string.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderMap(s *core.Screen, top, bottom core.Y) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(int(s.Width())*int(bottom-top+1)*2 + int(bottom-top+1))

	for y := top; y <= bottom; y++ {
		if y > top {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := core.X(0)
		for x < s.Width() {
			startColor := s.Get(core.NewCoord(x, y)).Color()

			var run strings.Builder
			for x < s.Width() {
				tile := s.Get(core.NewCoord(x, y))
				if tile.Color() != startColor {
					break
				}
				run.WriteByte(tile.Byte())
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// FormatStatus renders the status line, e.g.
// "Level: 1  Gold: 0  Hp: 12(12)  Str: 16  Exp: 0".
func FormatStatus(entries []core.StatusEntry) string {
	parts := make([]string, 0, len(entries))
	for i := 0; i < len(entries); i++ {
		e := entries[i]
		if e.Label == "Hp" && i+1 < len(entries) && entries[i+1].Label == "MaxHp" {
			parts = append(parts, fmt.Sprintf("Hp: %d(%d)", e.Value, entries[i+1].Value))
			i++
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %d", e.Label, e.Value))
	}
	return strings.Join(parts, "  ")
}

// fit pads or cuts s to exactly width columns.
func fit(s string, width int) string {
	if len(s) > width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}
