package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/coreman2200/funtimes-ledstudio/internal/ledcolor"
)

// Cell is the glyph drawn for one LED.
const Cell = "●"

// Swatches renders each LED as a coloured cell, wrapping every perRow LEDs.
// perRow <= 0 keeps everything on one line.
func Swatches(leds []ledcolor.Color, perRow int) string {
	var b strings.Builder
	for i, c := range leds {
		if perRow > 0 && i > 0 && i%perRow == 0 {
			b.WriteByte('\n')
		}
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(Cell))
	}
	return b.String()
}

// HexList renders the colours as space separated hex codes, for output that
// is not a terminal.
func HexList(leds []ledcolor.Color) string {
	parts := make([]string, len(leds))
	for i, c := range leds {
		parts[i] = c.Hex()
	}
	return strings.Join(parts, " ")
}
