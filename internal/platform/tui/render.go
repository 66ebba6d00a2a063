package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blokus/internal/core"
)

// ansiColors maps core.Color to terminal colors. ColorDefault is absent and
// means "leave the terminal default".
var ansiColors = map[core.Color]lipgloss.Color{
	core.ColorRed:          lipgloss.Color("1"),
	core.ColorGreen:        lipgloss.Color("2"),
	core.ColorYellow:       lipgloss.Color("3"),
	core.ColorBlue:         lipgloss.Color("4"),
	core.ColorMagenta:      lipgloss.Color("5"),
	core.ColorCyan:         lipgloss.Color("6"),
	core.ColorWhite:        lipgloss.Color("7"),
	core.ColorBrightRed:    lipgloss.Color("9"),
	core.ColorBrightGreen:  lipgloss.Color("10"),
	core.ColorBrightYellow: lipgloss.Color("11"),
	core.ColorBrightBlue:   lipgloss.Color("12"),
	core.ColorGray:         lipgloss.Color("245"),
	core.ColorDarkGray:     lipgloss.Color("238"),
}

type cellStyle struct {
	fg, bg core.Color
	bold   bool
}

func styleOf(c core.Cell) cellStyle {
	return cellStyle{fg: c.Fg, bg: c.Bg, bold: c.Bold}
}

// lipgloss returns the style for a run of cells.
func (cs cellStyle) lipgloss() lipgloss.Style {
	st := lipgloss.NewStyle()
	if fg, ok := ansiColors[cs.fg]; ok {
		st = st.Foreground(fg)
	}
	if bg, ok := ansiColors[cs.bg]; ok {
		st = st.Background(bg)
	}
	if cs.bold {
		st = st.Bold(true)
	}
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	styles := make(map[cellStyle]lipgloss.Style)
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		cells := s.Cells(y)
		x := 0
		for x < len(cells) {
			start := styleOf(cells[x])

			var run strings.Builder
			for x < len(cells) && styleOf(cells[x]) == start {
				run.WriteRune(cells[x].Rune)
				x++
			}

			if start == (cellStyle{}) {
				sb.WriteString(run.String())
				continue
			}
			st, ok := styles[start]
			if !ok {
				st = start.lipgloss()
				styles[start] = st
			}
			sb.WriteString(st.Render(run.String()))
		}
	}
	return sb.String()
}
