package core

import (
	"errors"
	"fmt"
)

// ErrIllegalMove is returned by Replay when a move cannot be placed.
var ErrIllegalMove = errors.New("illegal move")

// Move is one recorded placement.
type Move struct {
	Color    Occupancy
	Piece    Piece
	Rotation Rotation
	Col      int
	Row      int
}

func (m Move) String() string {
	return fmt.Sprintf("%s %s %s at (%d,%d)", m.Color, m.Piece, m.Rotation, m.Col, m.Row)
}

// Replay rebuilds a board by applying moves in order. On the first illegal
// move it returns the board as it stood before that move.
func Replay(rule StartRule, moves []Move, opts ...Option) (*Board, error) {
	b := NewBoard(append([]Option{WithStartRule(rule)}, opts...)...)
	for i, m := range moves {
		if !b.Place(m.Color, m.Piece, m.Rotation, m.Col, m.Row) {
			return b, fmt.Errorf("move %d (%s): %w", i, m, ErrIllegalMove)
		}
	}
	return b, nil
}
