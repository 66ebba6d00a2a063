package blokus

import (
	"github.com/vovakirdan/tui-blokus/internal/games/blokus/core"
)

// Inventory tracks which pieces a color has not placed yet.
type Inventory struct {
	left map[core.Piece]bool
}

// NewInventory returns a full set of pieces.
func NewInventory() *Inventory {
	inv := &Inventory{left: make(map[core.Piece]bool, core.PieceCount)}
	for _, p := range core.AllPieces() {
		inv.left[p] = true
	}
	return inv
}

// Has reports whether p is still available.
func (inv *Inventory) Has(p core.Piece) bool {
	return inv.left[p]
}

// Take removes p. Returns false if it was already used.
func (inv *Inventory) Take(p core.Piece) bool {
	if !inv.left[p] {
		return false
	}
	delete(inv.left, p)
	return true
}

// Len returns the number of pieces left.
func (inv *Inventory) Len() int {
	return len(inv.left)
}

// Cells returns the total size of the pieces left.
func (inv *Inventory) Cells() int {
	n := 0
	for p := range inv.left {
		n += p.Size()
	}
	return n
}

// Remaining lists the pieces left in canonical order.
func (inv *Inventory) Remaining() []core.Piece {
	out := make([]core.Piece, 0, len(inv.left))
	for _, p := range core.AllPieces() {
		if inv.left[p] {
			out = append(out, p)
		}
	}
	return out
}

// NextAvailable returns the first piece after from that is still available,
// wrapping around. If from is the only piece left it is returned.
func (inv *Inventory) NextAvailable(from core.Piece) (core.Piece, bool) {
	return inv.scan(from, core.Piece.Next)
}

// PrevAvailable is NextAvailable in the opposite direction.
func (inv *Inventory) PrevAvailable(from core.Piece) (core.Piece, bool) {
	return inv.scan(from, core.Piece.Prev)
}

func (inv *Inventory) scan(from core.Piece, step func(core.Piece) core.Piece) (core.Piece, bool) {
	p := from
	for i := 0; i < core.PieceCount; i++ {
		p = step(p)
		if inv.left[p] {
			return p, true
		}
	}
	return from, false
}
