package core

import (
	"fmt"
	"strings"
)

// Occupancy is the content of a board cell.
type Occupancy uint8

const (
	Empty Occupancy = iota
	Green
	Red
	Blue
	Yellow
)

var playerColors = []Occupancy{Green, Red, Blue, Yellow}

// Colors returns the four player colors in turn order.
func Colors() []Occupancy {
	return append([]Occupancy(nil), playerColors...)
}

// IsColor reports whether o is a player color (not Empty).
func (o Occupancy) IsColor() bool {
	switch o {
	case Green, Red, Blue, Yellow:
		return true
	}
	return false
}

// NextColor cycles Green → Red → Blue → Yellow → Green.
// Empty maps to Green.
func (o Occupancy) NextColor() Occupancy {
	switch o {
	case Green:
		return Red
	case Red:
		return Blue
	case Blue:
		return Yellow
	default:
		return Green
	}
}

// Char returns the single rune used in text renderings.
func (o Occupancy) Char() rune {
	switch o {
	case Green:
		return 'G'
	case Red:
		return 'R'
	case Blue:
		return 'B'
	case Yellow:
		return 'Y'
	default:
		return '·'
	}
}

func (o Occupancy) String() string {
	switch o {
	case Green:
		return "green"
	case Red:
		return "red"
	case Blue:
		return "blue"
	case Yellow:
		return "yellow"
	default:
		return "empty"
	}
}

// ParseOccupancy accepts a color name or its single-rune form.
func ParseOccupancy(s string) (Occupancy, error) {
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) == 1 {
		if o, ok := occupancyFromChar(r[0]); ok {
			return o, nil
		}
	}
	switch strings.ToLower(s) {
	case "empty":
		return Empty, nil
	case "green":
		return Green, nil
	case "red":
		return Red, nil
	case "blue":
		return Blue, nil
	case "yellow":
		return Yellow, nil
	}
	return Empty, fmt.Errorf("unknown color %q", s)
}

func occupancyFromChar(r rune) (Occupancy, bool) {
	switch r {
	case '·', '.':
		return Empty, true
	case 'G', 'g':
		return Green, true
	case 'R', 'r':
		return Red, true
	case 'B', 'b':
		return Blue, true
	case 'Y', 'y':
		return Yellow, true
	}
	return Empty, false
}
