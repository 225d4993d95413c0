package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ozembnic-arcade/internal/core"
)

// palette maps core.Color to terminal colors. ColorDefault is absent and
// leaves the terminal default in place.
var palette = map[core.Color]lipgloss.TerminalColor{
	core.ColorWhite:       lipgloss.Color("7"),
	core.ColorBrightWhite: lipgloss.Color("15"),
	core.ColorSky:         lipgloss.Color("#87CEEB"),
	core.ColorForest:      lipgloss.Color("#228B22"),
	core.ColorSaddle:      lipgloss.Color("#8B4513"),
	core.ColorGold:        lipgloss.Color("#FFD700"),
	core.ColorShade:       lipgloss.Color("#2F4F5F"),
}

type colorPair struct {
	fg, bg core.Color
}

// styleFor builds the lipgloss style of a color pair.
func styleFor(p colorPair) lipgloss.Style {
	style := lipgloss.NewStyle()
	if c, ok := palette[p.fg]; ok {
		style = style.Foreground(c)
	}
	if c, ok := palette[p.bg]; ok {
		style = style.Background(c)
	}
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	styles := make(map[colorPair]lipgloss.Style)
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)
			pair := colorPair{start.Fg, start.Bg}

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Fg != pair.fg || cell.Bg != pair.bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := styles[pair]
			if !ok {
				style = styleFor(pair)
				styles[pair] = style
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
