package core

// PieceOffsets is a rotated piece resolved into mask-local coordinates.
// Cells lists every filled cell (pivot included) in row-major order.
type PieceOffsets struct {
	Cells []Coord
	Pivot Coord
}

// resolveOffsets scans a mask row by row collecting filled cells.
func resolveOffsets(m Mask) PieceOffsets {
	var offs PieceOffsets
	for y, row := range m {
		for x, c := range row {
			if !c.Filled() {
				continue
			}
			offs.Cells = append(offs.Cells, C(x, y))
			if c == MaskPivot {
				offs.Pivot = C(x, y)
			}
		}
	}
	return offs
}

func (o PieceOffsets) clone() PieceOffsets {
	return PieceOffsets{
		Cells: append([]Coord(nil), o.Cells...),
		Pivot: o.Pivot,
	}
}

// Len returns the number of cells.
func (o PieceOffsets) Len() int {
	return len(o.Cells)
}

// Translate returns the board cells covered when the mask's top-left
// corner is placed at (col, row).
func (o PieceOffsets) Translate(col, row int) []Coord {
	out := make([]Coord, len(o.Cells))
	for i, c := range o.Cells {
		out[i] = c.Add(col, row)
	}
	return out
}

// PivotAnchor returns the top-left anchor that puts the pivot on (x, y).
func (o PieceOffsets) PivotAnchor(x, y int) (col, row int) {
	return x - o.Pivot.X, y - o.Pivot.Y
}

// RelativeToPivot returns the cells expressed relative to the pivot.
func (o PieceOffsets) RelativeToPivot() []Coord {
	out := make([]Coord, len(o.Cells))
	for i, c := range o.Cells {
		out[i] = c.Sub(o.Pivot)
	}
	return out
}

// Bounds returns the smallest and largest cell coordinates.
// Empty offsets return zero coordinates.
func (o PieceOffsets) Bounds() (minC, maxC Coord) {
	for i, c := range o.Cells {
		if i == 0 {
			minC, maxC = c, c
			continue
		}
		minC.X = min(minC.X, c.X)
		minC.Y = min(minC.Y, c.Y)
		maxC.X = max(maxC.X, c.X)
		maxC.Y = max(maxC.Y, c.Y)
	}
	return minC, maxC
}

// CoordsForPlacement resolves a piece with the default catalog and
// translates it to the anchor (col, row).
func CoordsForPlacement(p Piece, r Rotation, col, row int) []Coord {
	return Offsets(p, r).Translate(col, row)
}
