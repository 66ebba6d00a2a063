package core

// Color represents a terminal color for a screen cell.
// The platform maps these to ANSI colors through lipgloss.
type Color uint8

// Palette used by the sandbox renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorGray
	ColorDarkGray
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorCyan
	ColorMagenta
)

// Dimmed returns the normal variant of a bright color and gray for others.
func (c Color) Dimmed() Color {
	switch c {
	case ColorBrightRed:
		return ColorRed
	case ColorBrightGreen:
		return ColorGreen
	case ColorBrightYellow:
		return ColorYellow
	case ColorBrightBlue:
		return ColorBlue
	case ColorRed, ColorGreen, ColorYellow, ColorBlue:
		return c
	default:
		return ColorDarkGray
	}
}
