package core

import (
	"errors"
	"fmt"
	"strings"
)

// Shape mask construction errors.
var (
	ErrEmptyMask       = errors.New("mask has no cells")
	ErrRaggedMask      = errors.New("mask rows differ in length")
	ErrNoPivot         = errors.New("mask has no pivot cell")
	ErrMultiplePivots  = errors.New("mask has more than one pivot cell")
	ErrInvalidMaskChar = errors.New("invalid mask character")
)

// MaskCell is one cell of a piece's shape mask.
type MaskCell uint8

const (
	MaskEmpty MaskCell = iota // '_'
	MaskSolid                 // 'X'
	MaskPivot                 // 'O', solid and the rotation center
)

// Char returns the mask notation for the cell.
func (c MaskCell) Char() rune {
	switch c {
	case MaskSolid:
		return 'X'
	case MaskPivot:
		return 'O'
	default:
		return '_'
	}
}

// Filled reports whether the cell is part of the piece.
func (c MaskCell) Filled() bool {
	return c == MaskSolid || c == MaskPivot
}

// Mask is a rectangular shape mask, indexed [row][col].
type Mask [][]MaskCell

// ParseMask builds a mask from rows written in X/O/_ notation
// and validates it.
func ParseMask(rows ...string) (Mask, error) {
	m := make(Mask, 0, len(rows))
	for y, row := range rows {
		cells := make([]MaskCell, 0, len(row))
		for _, ch := range row {
			switch ch {
			case 'X':
				cells = append(cells, MaskSolid)
			case 'O':
				cells = append(cells, MaskPivot)
			case '_':
				cells = append(cells, MaskEmpty)
			default:
				return nil, fmt.Errorf("%w %q in row %d", ErrInvalidMaskChar, ch, y)
			}
		}
		m = append(m, cells)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks that the mask is non-empty, rectangular and has exactly one pivot.
func (m Mask) Validate() error {
	if len(m) == 0 || len(m[0]) == 0 {
		return ErrEmptyMask
	}
	if err := checkRectangular(m); err != nil {
		return err
	}
	pivots := 0
	for _, row := range m {
		for _, c := range row {
			if c == MaskPivot {
				pivots++
			}
		}
	}
	switch {
	case pivots == 0:
		return ErrNoPivot
	case pivots > 1:
		return ErrMultiplePivots
	}
	return nil
}

// Width returns the number of columns.
func (m Mask) Width() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Height returns the number of rows.
func (m Mask) Height() int {
	return len(m)
}

// CellCount returns the number of filled cells, pivot included.
func (m Mask) CellCount() int {
	n := 0
	for _, row := range m {
		for _, c := range row {
			if c.Filled() {
				n++
			}
		}
	}
	return n
}

// Pivot returns the position of the pivot cell.
func (m Mask) Pivot() (Coord, bool) {
	for y, row := range m {
		for x, c := range row {
			if c == MaskPivot {
				return C(x, y), true
			}
		}
	}
	return Coord{}, false
}

// Rotate returns the mask turned by r.
func (m Mask) Rotate(r Rotation) (Mask, error) {
	out, err := RotateBy([][]MaskCell(m), r)
	if err != nil {
		return nil, err
	}
	return Mask(out), nil
}

// Equal reports whether two masks have the same shape and cells.
func (m Mask) Equal(other Mask) bool {
	if len(m) != len(other) {
		return false
	}
	for y := range m {
		if len(m[y]) != len(other[y]) {
			return false
		}
		for x := range m[y] {
			if m[y][x] != other[y][x] {
				return false
			}
		}
	}
	return true
}

// Rows returns the mask in X/O/_ notation, one string per row.
func (m Mask) Rows() []string {
	rows := make([]string, len(m))
	for y, row := range m {
		var sb strings.Builder
		for _, c := range row {
			sb.WriteRune(c.Char())
		}
		rows[y] = sb.String()
	}
	return rows
}

// String returns the mask rows joined by newlines.
func (m Mask) String() string {
	return strings.Join(m.Rows(), "\n")
}

func checkRectangular[T any](m [][]T) error {
	if len(m) == 0 {
		return nil
	}
	w := len(m[0])
	for y, row := range m {
		if len(row) != w {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedMask, y, len(row), w)
		}
	}
	return nil
}

// Rotate90 turns a rectangular matrix a quarter turn.
// For C columns and R rows the result has C rows and R columns;
// output row C-1-c is input column c read top to bottom.
func Rotate90[T any](m [][]T) ([][]T, error) {
	if err := checkRectangular(m); err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return [][]T{}, nil
	}
	cols := len(m[0])
	out := make([][]T, cols)
	for c := 0; c < cols; c++ {
		row := make([]T, len(m))
		for r := range m {
			row[r] = m[r][c]
		}
		out[cols-1-c] = row
	}
	return out, nil
}

// Rotate180 reverses every row and the order of the rows.
func Rotate180[T any](m [][]T) ([][]T, error) {
	if err := checkRectangular(m); err != nil {
		return nil, err
	}
	out := make([][]T, len(m))
	for r, src := range m {
		row := make([]T, len(src))
		for c, v := range src {
			row[len(src)-1-c] = v
		}
		out[len(m)-1-r] = row
	}
	return out, nil
}

// Rotate270 is Rotate180 applied to Rotate90.
func Rotate270[T any](m [][]T) ([][]T, error) {
	q, err := Rotate90(m)
	if err != nil {
		return nil, err
	}
	return Rotate180(q)
}

// RotateBy dispatches to the transform for r. Rot0 returns a copy.
func RotateBy[T any](m [][]T, r Rotation) ([][]T, error) {
	switch r {
	case Rot90:
		return Rotate90(m)
	case Rot180:
		return Rotate180(m)
	case Rot270:
		return Rotate270(m)
	}
	if err := checkRectangular(m); err != nil {
		return nil, err
	}
	out := make([][]T, len(m))
	for i, row := range m {
		out[i] = append([]T(nil), row...)
	}
	return out, nil
}
