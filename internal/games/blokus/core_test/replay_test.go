package core_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-blokus/internal/games/blokus/core"
)

func TestReplay(t *testing.T) {
	moves := []core.Move{
		{Color: core.Green, Piece: core.FiveU, Rotation: core.Rot180, Col: 0, Row: 0},
		{Color: core.Green, Piece: core.One, Rotation: core.Rot0, Col: 3, Row: 2},
		{Color: core.Red, Piece: core.FiveI, Rotation: core.Rot0, Col: 15, Row: 0},
	}

	b, err := core.Replay(core.StartCorners, moves)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if b.Count(core.Green) != 6 || b.Count(core.Red) != 5 {
		t.Errorf("unexpected counts: green=%d red=%d", b.Count(core.Green), b.Count(core.Red))
	}
}

func TestReplayIllegalMove(t *testing.T) {
	moves := []core.Move{
		{Color: core.Green, Piece: core.One, Rotation: core.Rot0, Col: 0, Row: 0},
		{Color: core.Green, Piece: core.One, Rotation: core.Rot0, Col: 1, Row: 0},
	}

	b, err := core.Replay(core.StartCorners, moves)
	if !errors.Is(err, core.ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove, got %v", err)
	}
	if !strings.Contains(err.Error(), "move 1") {
		t.Errorf("error should name the move index: %v", err)
	}
	if b.Count(core.Green) != 1 {
		t.Errorf("board should hold the moves before the failure, got %d cells", b.Count(core.Green))
	}
}

func TestReplayRespectsRule(t *testing.T) {
	moves := []core.Move{{Color: core.Red, Piece: core.One, Rotation: core.Rot0, Col: 0, Row: 0}}
	if _, err := core.Replay(core.StartCorners, moves); err != nil {
		t.Errorf("corners: %v", err)
	}
	if _, err := core.Replay(core.StartOwnCorner, moves); !errors.Is(err, core.ErrIllegalMove) {
		t.Errorf("own-corner: expected ErrIllegalMove, got %v", err)
	}
}
