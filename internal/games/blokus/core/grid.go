package core

import (
	"fmt"
	"strings"
)

// Grid is a fixed Dim×Dim board-shaped container.
// Cells are stored in row-major order: index = y*Dim + x.
// The zero value is a grid filled with T's zero value.
type Grid[T comparable] struct {
	cells [Dim * Dim]T
}

// NewGrid creates a grid with every cell set to def.
func NewGrid[T comparable](def T) Grid[T] {
	var g Grid[T]
	g.Fill(def)
	return g
}

// InBounds returns true if (x, y) lies on the board.
func InBounds(x, y int) bool {
	return x >= 0 && x < Dim && y >= 0 && y < Dim
}

// Get returns the cell at (x, y). It panics if the coordinate is off the
// board; use GetOpt for coordinates that may be out of range.
func (g *Grid[T]) Get(x, y int) T {
	if !InBounds(x, y) {
		panic(fmt.Sprintf("grid: coordinate (%d,%d) outside %dx%d board", x, y, Dim, Dim))
	}
	return g.cells[y*Dim+x]
}

// GetOpt returns the cell at (x, y) and true, or the zero value and false
// when the coordinate is off the board.
func (g *Grid[T]) GetOpt(x, y int) (T, bool) {
	if !InBounds(x, y) {
		var zero T
		return zero, false
	}
	return g.cells[y*Dim+x], true
}

// Set writes v at (x, y). Returns false and does nothing when off the board.
func (g *Grid[T]) Set(x, y int, v T) bool {
	if !InBounds(x, y) {
		return false
	}
	g.cells[y*Dim+x] = v
	return true
}

// Fill sets every cell to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.cells {
		g.cells[i] = v
	}
}

// Count returns how many cells equal v.
func (g *Grid[T]) Count(v T) int {
	n := 0
	for _, c := range g.cells {
		if c == v {
			n++
		}
	}
	return n
}

// Coords returns every coordinate holding v, row-major.
func (g *Grid[T]) Coords(v T) []Coord {
	var out []Coord
	for i, c := range g.cells {
		if c == v {
			out = append(out, C(i%Dim, i/Dim))
		}
	}
	return out
}

// Equal reports whether both grids hold the same values.
func (g *Grid[T]) Equal(other *Grid[T]) bool {
	return g.cells == other.cells
}

// Render draws the grid with one rune per cell, rows separated by newlines.
func (g *Grid[T]) Render(char func(T) rune) string {
	var sb strings.Builder
	sb.Grow(Dim * (Dim + 1) * 2)
	for y := 0; y < Dim; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < Dim; x++ {
			sb.WriteRune(char(g.cells[y*Dim+x]))
		}
	}
	return sb.String()
}
