// Package core provides the piece geometry and placement rules for Blokus.
// This package is UI-agnostic and deterministic: it never logs, blocks or
// performs I/O, and a Board is a plain value owned by its caller.
package core

import "fmt"

// Dim is the side length of the square board.
const Dim = 20

// Coord represents a 2D coordinate on the board or inside a piece mask.
// X increases to the right, Y increases downward (screen coordinates).
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// AddCoord returns the sum of two coordinates.
func (c Coord) AddCoord(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y}
}

// Sub returns the difference of two coordinates.
func (c Coord) Sub(other Coord) Coord {
	return Coord{X: c.X - other.X, Y: c.Y - other.Y}
}

// edgeDeltas are the four orthogonal neighbors (shared side).
var edgeDeltas = [4]Coord{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// cornerDeltas are the four diagonal neighbors (shared corner only).
var cornerDeltas = [4]Coord{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
