package core

import (
	"fmt"
	"slices"
	"strings"
)

// Piece identifies one of the 21 polyominoes every color owns.
type Piece uint8

const (
	One Piece = iota
	Two
	ThreeI
	ThreeL
	FourI
	FourL
	FourStairs
	FourSquare
	FourT
	FiveF
	FiveI
	FiveL
	FiveN
	FiveP
	FiveT
	FiveU
	FiveV
	FiveW
	FiveX
	FiveY
	FiveZ
)

// PieceCount is the number of distinct pieces.
const PieceCount = 21

// pieceOrder is the canonical selection order used by Next and Prev.
var pieceOrder = []Piece{
	One, Two, ThreeI, ThreeL,
	FourI, FourL, FourStairs, FourSquare, FourT,
	FiveF, FiveI, FiveL, FiveN, FiveP, FiveT, FiveU, FiveV, FiveW, FiveX, FiveY, FiveZ,
}

var pieceNames = map[Piece]string{
	One:        "one",
	Two:        "two",
	ThreeI:     "three-i",
	ThreeL:     "three-l",
	FourI:      "four-i",
	FourL:      "four-l",
	FourStairs: "four-stairs",
	FourSquare: "four-square",
	FourT:      "four-t",
	FiveF:      "five-f",
	FiveI:      "five-i",
	FiveL:      "five-l",
	FiveN:      "five-n",
	FiveP:      "five-p",
	FiveT:      "five-t",
	FiveU:      "five-u",
	FiveV:      "five-v",
	FiveW:      "five-w",
	FiveX:      "five-x",
	FiveY:      "five-y",
	FiveZ:      "five-z",
}

// AllPieces returns every piece in canonical order.
func AllPieces() []Piece {
	return slices.Clone(pieceOrder)
}

// Valid reports whether p is one of the defined pieces.
func (p Piece) Valid() bool {
	_, ok := pieceNames[p]
	return ok
}

// Next returns the following piece in canonical order, wrapping to One.
func (p Piece) Next() Piece {
	i := slices.Index(pieceOrder, p)
	if i < 0 {
		return pieceOrder[0]
	}
	return pieceOrder[(i+1)%len(pieceOrder)]
}

// Prev returns the preceding piece in canonical order, wrapping to FiveZ.
func (p Piece) Prev() Piece {
	i := slices.Index(pieceOrder, p)
	if i < 0 {
		return pieceOrder[len(pieceOrder)-1]
	}
	return pieceOrder[(i+len(pieceOrder)-1)%len(pieceOrder)]
}

// String returns the kebab-case piece name.
func (p Piece) String() string {
	if name, ok := pieceNames[p]; ok {
		return name
	}
	return fmt.Sprintf("piece(%d)", uint8(p))
}

// Size returns the number of cells the piece covers.
func (p Piece) Size() int {
	return defaultCatalog.Size(p)
}

// ParsePiece accepts names like "five-u", "FiveU" or "five_u".
func ParsePiece(s string) (Piece, error) {
	norm := normalizePieceName(s)
	for _, p := range pieceOrder {
		if normalizePieceName(pieceNames[p]) == norm {
			return p, nil
		}
	}
	return One, fmt.Errorf("unknown piece %q", s)
}

func normalizePieceName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}
