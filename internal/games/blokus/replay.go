package blokus

import (
	"fmt"

	platformcore "github.com/vovakirdan/tui-blokus/internal/core"
	"github.com/vovakirdan/tui-blokus/internal/games/blokus/core"
)

// ReplayEvents rebuilds a board from stored placement events. On failure
// the board holds every move before the failing one.
func ReplayEvents(rule string, events []platformcore.PlacementEvent) (*core.Board, error) {
	startRule, err := core.ParseStartRule(rule)
	if err != nil {
		return nil, err
	}

	moves := make([]core.Move, 0, len(events))
	for i, ev := range events {
		m, err := ParseMoveEvent(ev)
		if err != nil {
			board, _ := core.Replay(startRule, moves)
			return board, fmt.Errorf("move %d: %w", i, err)
		}
		moves = append(moves, m)
	}
	return core.Replay(startRule, moves)
}
