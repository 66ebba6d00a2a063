package core

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrBoardText is returned by ParseBoard for malformed input.
var ErrBoardText = errors.New("malformed board text")

// Board owns the occupancy grid and enforces placement rules.
// A Board is not safe for concurrent use.
type Board struct {
	cells   Grid[Occupancy]
	rule    StartRule
	catalog *Catalog
}

// Option configures a Board.
type Option func(*Board)

// WithStartRule selects how a color's first piece may be anchored.
func WithStartRule(r StartRule) Option {
	return func(b *Board) { b.rule = r }
}

// WithCatalog overrides the piece catalog.
func WithCatalog(c *Catalog) Option {
	return func(b *Board) {
		if c != nil {
			b.catalog = c
		}
	}
}

// NewBoard creates an empty board.
func NewBoard(opts ...Option) *Board {
	b := &Board{
		cells:   NewGrid(Empty),
		rule:    StartCorners,
		catalog: defaultCatalog,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Rule returns the board's start rule.
func (b *Board) Rule() StartRule {
	return b.rule
}

// Catalog returns the catalog the board resolves pieces with.
func (b *Board) Catalog() *Catalog {
	return b.catalog
}

// Place puts a piece with its mask's top-left at (col, row).
// On an illegal placement nothing is written and false is returned.
func (b *Board) Place(color Occupancy, piece Piece, rot Rotation, col, row int) bool {
	coords := b.catalog.Offsets(piece, rot).Translate(col, row)
	if !b.IsPlacementValid(color, coords) {
		return false
	}
	for _, c := range coords {
		b.cells.Set(c.X, c.Y, color)
	}
	return true
}

// CanPlace reports whether Place would succeed, without mutating the board.
func (b *Board) CanPlace(color Occupancy, piece Piece, rot Rotation, col, row int) bool {
	return b.IsPlacementValid(color, b.catalog.Offsets(piece, rot).Translate(col, row))
}

// IsPlacementValid checks whether color may occupy every cell in coords:
// all cells on the board and empty, none sharing an edge with the color,
// and at least one sharing a corner with the color or sitting on a start cell.
func (b *Board) IsPlacementValid(color Occupancy, coords []Coord) bool {
	if !color.IsColor() || len(coords) == 0 {
		return false
	}
	fresh := b.isFresh(color)
	anchored := false
	for _, c := range coords {
		occ, ok := b.cells.GetOpt(c.X, c.Y)
		if !ok || occ != Empty {
			return false
		}
		if b.touchesEdge(color, c) {
			return false
		}
		if !anchored && (b.touchesCorner(color, c) || b.isStartCell(color, c, fresh)) {
			anchored = true
		}
	}
	return anchored
}

// ValidityMap classifies every cell for color.
func (b *Board) ValidityMap(color Occupancy) Grid[Validity] {
	g := NewGrid(Invalid)
	if !color.IsColor() {
		return g
	}
	fresh := b.isFresh(color)
	for y := 0; y < Dim; y++ {
		for x := 0; x < Dim; x++ {
			c := C(x, y)
			switch {
			case b.cells.Get(x, y) != Empty || b.touchesEdge(color, c):
				g.Set(x, y, Invalid)
			case b.touchesCorner(color, c) || b.isStartCell(color, c, fresh):
				g.Set(x, y, Anchor)
			default:
				g.Set(x, y, Valid)
			}
		}
	}
	return g
}

func (b *Board) touchesEdge(color Occupancy, c Coord) bool {
	for _, d := range edgeDeltas {
		n := c.AddCoord(d)
		if occ, ok := b.cells.GetOpt(n.X, n.Y); ok && occ == color {
			return true
		}
	}
	return false
}

func (b *Board) touchesCorner(color Occupancy, c Coord) bool {
	for _, d := range cornerDeltas {
		n := c.AddCoord(d)
		if occ, ok := b.cells.GetOpt(n.X, n.Y); ok && occ == color {
			return true
		}
	}
	return false
}

// isFresh reports whether the color has no cells yet. Only the
// own-corner rule needs it, so other rules skip the scan.
func (b *Board) isFresh(color Occupancy) bool {
	if b.rule != StartOwnCorner {
		return false
	}
	return b.cells.Count(color) == 0
}

func (b *Board) isStartCell(color Occupancy, c Coord, fresh bool) bool {
	switch b.rule {
	case StartOwnCorner:
		home, ok := HomeCorner(color)
		return ok && fresh && c == home
	case StartEdges:
		return isBorder(c)
	default:
		return isBoardCorner(c)
	}
}

// At returns the occupancy at (x, y), or false when off the board.
func (b *Board) At(x, y int) (Occupancy, bool) {
	return b.cells.GetOpt(x, y)
}

// Occupancy returns a copy of the occupancy grid.
func (b *Board) Occupancy() Grid[Occupancy] {
	return b.cells
}

// Count returns the number of cells held by color.
func (b *Board) Count(color Occupancy) int {
	return b.cells.Count(color)
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	cp := *b
	return &cp
}

// String renders the board one rune per cell (· G R B Y).
func (b *Board) String() string {
	return b.cells.Render(Occupancy.Char)
}

// ParseBoard reads the String rendering back. '.' is accepted for empty cells.
func ParseBoard(s string, opts ...Option) (*Board, error) {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) != Dim {
		return nil, fmt.Errorf("%w: %d rows, want %d", ErrBoardText, len(lines), Dim)
	}
	b := NewBoard(opts...)
	for y, line := range lines {
		runes := []rune(strings.TrimRight(line, "\r"))
		if len(runes) != Dim {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrBoardText, y, len(runes), Dim)
		}
		for x, r := range runes {
			occ, ok := occupancyFromChar(r)
			if !ok {
				return nil, fmt.Errorf("%w: unexpected %q at (%d,%d)", ErrBoardText, r, x, y)
			}
			b.cells.Set(x, y, occ)
		}
	}
	return b, nil
}

// Placement is one way to put a piece on the board.
type Placement struct {
	Piece    Piece
	Rotation Rotation
	Col      int
	Row      int
}

// LegalPlacements lists every legal placement of piece for color, ordered by
// rotation, then row, then column. Placements covering the same cells as an
// earlier one (symmetric rotations) are dropped.
func (b *Board) LegalPlacements(color Occupancy, piece Piece) []Placement {
	var out []Placement
	b.scanPlacements(color, piece, func(p Placement) bool {
		out = append(out, p)
		return true
	})
	return out
}

// HasLegalPlacement reports whether any of pieces fits anywhere for color.
func (b *Board) HasLegalPlacement(color Occupancy, pieces ...Piece) bool {
	for _, piece := range pieces {
		found := false
		b.scanPlacements(color, piece, func(Placement) bool {
			found = true
			return false
		})
		if found {
			return true
		}
	}
	return false
}

// scanPlacements calls fn for each legal placement until fn returns false.
func (b *Board) scanPlacements(color Occupancy, piece Piece, fn func(Placement) bool) {
	if !color.IsColor() {
		return
	}
	seen := make(map[string]struct{})
	for _, rot := range AllRotations {
		offs := b.catalog.Offsets(piece, rot)
		if offs.Len() == 0 {
			return
		}
		lo, hi := offs.Bounds()
		for row := -lo.Y; row < Dim-hi.Y; row++ {
			for col := -lo.X; col < Dim-hi.X; col++ {
				coords := offs.Translate(col, row)
				if !b.IsPlacementValid(color, coords) {
					continue
				}
				key := cellSetKey(coords)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				if !fn(Placement{Piece: piece, Rotation: rot, Col: col, Row: row}) {
					return
				}
			}
		}
	}
}

func cellSetKey(coords []Coord) string {
	idx := make([]int, len(coords))
	for i, c := range coords {
		idx[i] = c.Y*Dim + c.X
	}
	slices.Sort(idx)
	return fmt.Sprint(idx)
}

// Cells returns the board cells the placement covers, using the default catalog.
func (p Placement) Cells() []Coord {
	return CoordsForPlacement(p.Piece, p.Rotation, p.Col, p.Row)
}
