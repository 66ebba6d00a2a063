package core

import (
	"fmt"
	"strings"
)

// Rotation is a clockwise quarter-turn count applied to a piece mask.
type Rotation uint8

const (
	Rot0 Rotation = iota
	Rot90
	Rot180
	Rot270
)

// AllRotations lists every rotation in cyclic order.
var AllRotations = []Rotation{Rot0, Rot90, Rot180, Rot270}

// NextClockwise returns the rotation one quarter-turn further.
// Rot270 wraps to Rot0.
func (r Rotation) NextClockwise() Rotation {
	switch r {
	case Rot0:
		return Rot90
	case Rot90:
		return Rot180
	case Rot180:
		return Rot270
	default:
		return Rot0
	}
}

// Prev returns the rotation one quarter-turn back.
func (r Rotation) Prev() Rotation {
	switch r {
	case Rot90:
		return Rot0
	case Rot180:
		return Rot90
	case Rot270:
		return Rot180
	default:
		return Rot270
	}
}

// Turns returns the number of 90° steps from Rot0.
func (r Rotation) Turns() int {
	switch r {
	case Rot90:
		return 1
	case Rot180:
		return 2
	case Rot270:
		return 3
	default:
		return 0
	}
}

// Degrees returns the rotation angle.
func (r Rotation) Degrees() int {
	return r.Turns() * 90
}

// String returns the angle with a degree sign.
func (r Rotation) String() string {
	return fmt.Sprintf("%d°", r.Degrees())
}

// ParseRotation parses "0", "90", "180" or "270" (a trailing "°" or "deg" is allowed).
func ParseRotation(s string) (Rotation, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimSuffix(strings.TrimSuffix(s, "°"), "deg")
	switch s {
	case "0":
		return Rot0, nil
	case "90":
		return Rot90, nil
	case "180":
		return Rot180, nil
	case "270":
		return Rot270, nil
	}
	return Rot0, fmt.Errorf("invalid rotation %q", s)
}
