package core

import (
	"fmt"
	"strings"
)

// StartRule decides which cells let a color place without a corner touch.
type StartRule uint8

const (
	// StartCorners makes the four board corners anchors for every color.
	StartCorners StartRule = iota
	// StartOwnCorner gives each color one home corner, usable only while
	// the color has no cells on the board.
	StartOwnCorner
	// StartEdges makes every border cell an anchor.
	StartEdges
)

// StartRules lists every rule.
var StartRules = []StartRule{StartCorners, StartOwnCorner, StartEdges}

func (r StartRule) String() string {
	switch r {
	case StartOwnCorner:
		return "own-corner"
	case StartEdges:
		return "edges"
	default:
		return "corners"
	}
}

// ParseStartRule maps a config or flag value to a rule.
func ParseStartRule(s string) (StartRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "corners", "corner":
		return StartCorners, nil
	case "own-corner", "own_corner", "owncorner", "classic":
		return StartOwnCorner, nil
	case "edges", "edge", "border":
		return StartEdges, nil
	}
	return StartCorners, fmt.Errorf("unknown start rule %q", s)
}

// HomeCorner returns the color's starting corner under StartOwnCorner.
func HomeCorner(color Occupancy) (Coord, bool) {
	switch color {
	case Green:
		return C(0, 0), true
	case Red:
		return C(Dim-1, 0), true
	case Blue:
		return C(Dim-1, Dim-1), true
	case Yellow:
		return C(0, Dim-1), true
	}
	return Coord{}, false
}

func isBoardCorner(c Coord) bool {
	return (c.X == 0 || c.X == Dim-1) && (c.Y == 0 || c.Y == Dim-1)
}

func isBorder(c Coord) bool {
	return c.X == 0 || c.Y == 0 || c.X == Dim-1 || c.Y == Dim-1
}
