package blokus

import (
	"github.com/vovakirdan/tui-blokus/internal/games/blokus/core"
)

// Snapshot captures the sandbox state for tests and debugging.
type Snapshot struct {
	Variant   string
	Rule      string
	Color     string
	Piece     string
	Rotation  int
	Cursor    core.Coord
	Overlay   bool
	Placed    int
	Remaining map[string]int // pieces left per color
	Board     string         // text rendering, one rune per cell
	Stuck     bool
	Finished  bool
	Message   string
}

// Snapshot returns the current sandbox snapshot.
func (g *Game) Snapshot() Snapshot {
	remaining := make(map[string]int, 4)
	for _, c := range core.Colors() {
		remaining[c.String()] = g.inventories[c].Len()
	}
	return Snapshot{
		Variant:   g.variant.ID,
		Rule:      g.rule.String(),
		Color:     g.color.String(),
		Piece:     g.piece.String(),
		Rotation:  g.rot.Degrees(),
		Cursor:    g.cursor,
		Overlay:   g.overlay,
		Placed:    len(g.history),
		Remaining: remaining,
		Board:     g.board.String(),
		Stuck:     g.stuck,
		Finished:  g.finished,
		Message:   g.message,
	}
}
