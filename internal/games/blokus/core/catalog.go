package core

import (
	"errors"
	"fmt"
)

// Catalog construction errors.
var (
	ErrDuplicatePiece = errors.New("piece defined more than once")
	ErrMissingPiece   = errors.New("piece has no definition")
	ErrUnknownPiece   = errors.New("unknown piece")
)

// PieceDef is the shape of one piece at 0°, written in X/O/_ notation.
// X is solid, O is the pivot (also solid), _ is empty.
type PieceDef struct {
	Piece Piece
	Rows  []string
}

// DefaultPieceDefs is the canonical shape table.
var DefaultPieceDefs = []PieceDef{
	{One, []string{"O"}},
	{Two, []string{"OX"}},
	{ThreeI, []string{"XOX"}},
	{ThreeL, []string{"OX", "X_"}},
	{FourI, []string{"XOXX"}},
	{FourL, []string{"XOX", "X__"}},
	{FourStairs, []string{"XO_", "_XX"}},
	{FourSquare, []string{"OX", "XX"}},
	{FourT, []string{"XOX", "_X_"}},
	{FiveF, []string{"X__", "XOX", "_X_"}},
	{FiveI, []string{"XXOXX"}},
	{FiveL, []string{"XOXX", "X___"}},
	{FiveN, []string{"XOX_", "__XX"}},
	{FiveP, []string{"XOX", "_XX"}},
	{FiveT, []string{"XXX", "_O_", "_X_"}},
	{FiveU, []string{"XOX", "X_X"}},
	{FiveV, []string{"OXX", "X__", "X__"}},
	{FiveW, []string{"XX_", "_OX", "__X"}},
	{FiveX, []string{"_X_", "XOX", "_X_"}},
	{FiveY, []string{"_X", "XO", "_X", "_X"}},
	{FiveZ, []string{"XX_", "_O_", "_XX"}},
}

// Catalog holds every piece's masks and resolved offsets for all rotations.
// It is immutable after construction.
type Catalog struct {
	masks   map[Piece][4]Mask
	offsets map[Piece][4]PieceOffsets
}

// NewCatalog validates defs and precomputes masks and offsets.
// Every piece must be defined exactly once.
func NewCatalog(defs []PieceDef) (*Catalog, error) {
	c := &Catalog{
		masks:   make(map[Piece][4]Mask, len(defs)),
		offsets: make(map[Piece][4]PieceOffsets, len(defs)),
	}
	for _, def := range defs {
		if !def.Piece.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrUnknownPiece, uint8(def.Piece))
		}
		if _, dup := c.masks[def.Piece]; dup {
			return nil, fmt.Errorf("%s: %w", def.Piece, ErrDuplicatePiece)
		}
		base, err := ParseMask(def.Rows...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", def.Piece, err)
		}

		var masks [4]Mask
		var offs [4]PieceOffsets
		for _, rot := range AllRotations {
			m, err := base.Rotate(rot)
			if err != nil {
				return nil, fmt.Errorf("%s at %s: %w", def.Piece, rot, err)
			}
			masks[rot.Turns()] = m
			offs[rot.Turns()] = resolveOffsets(m)
		}
		c.masks[def.Piece] = masks
		c.offsets[def.Piece] = offs
	}
	for _, p := range pieceOrder {
		if _, ok := c.masks[p]; !ok {
			return nil, fmt.Errorf("%s: %w", p, ErrMissingPiece)
		}
	}
	return c, nil
}

// MustCatalog is like NewCatalog but panics on error.
func MustCatalog(defs []PieceDef) *Catalog {
	c, err := NewCatalog(defs)
	if err != nil {
		panic(fmt.Sprintf("blokus: invalid piece catalog: %v", err))
	}
	return c
}

var defaultCatalog = MustDefaultCatalog()

// MustDefaultCatalog builds the catalog from DefaultPieceDefs.
func MustDefaultCatalog() *Catalog {
	return MustCatalog(DefaultPieceDefs)
}

// DefaultCatalog returns the shared catalog built at package init.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// Mask returns the piece's mask at the given rotation.
// The returned mask is a copy and may be modified.
func (c *Catalog) Mask(p Piece, r Rotation) Mask {
	masks, ok := c.masks[p]
	if !ok {
		return nil
	}
	src := masks[r.Turns()]
	out := make(Mask, len(src))
	for i, row := range src {
		out[i] = append([]MaskCell(nil), row...)
	}
	return out
}

// Offsets returns the resolved offsets for a piece at a rotation.
// Unknown pieces yield empty offsets, which no board accepts.
func (c *Catalog) Offsets(p Piece, r Rotation) PieceOffsets {
	offs, ok := c.offsets[p]
	if !ok {
		return PieceOffsets{}
	}
	return offs[r.Turns()].clone()
}

// Size returns the piece's cell count, or 0 for unknown pieces.
func (c *Catalog) Size(p Piece) int {
	offs, ok := c.offsets[p]
	if !ok {
		return 0
	}
	return len(offs[0].Cells)
}

// Offsets resolves a piece at a rotation using the default catalog.
func Offsets(p Piece, r Rotation) PieceOffsets {
	return defaultCatalog.Offsets(p, r)
}
