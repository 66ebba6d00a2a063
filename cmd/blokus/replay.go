package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blokus/internal/games/blokus"
	"github.com/vovakirdan/tui-blokus/internal/platform/tui"
)

var (
	flagReplayMoves bool
	flagReplayPlain bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <session-id>",
	Short: "Rebuild a stored session's board",
	Long: `Replays a session's move log onto an empty board and prints the result.
Replay stops at the first move that is no longer legal.

Examples:
  blokus replay 3
  blokus replay 3 --moves
  blokus replay 3 --plain`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayMoves, "moves", false, "Also list the moves")
	replayCmd.Flags().BoolVar(&flagReplayPlain, "plain", false, "Print the board as plain text runes")
}

func runReplay(_ *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fail("invalid session id %q", args[0])
	}

	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	sess, err := store.Session(id)
	if err != nil {
		fail("%v", err)
	}
	if sess == nil {
		fail("no session %d", id)
	}
	moves, err := store.Moves(id)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("Session %d - %s, rule %s, %s, %d moves\n\n", sess.ID, sess.GameID, sess.StartRule, sess.Owner, len(moves))
	if flagReplayMoves {
		for i, ev := range moves {
			fmt.Printf("  %3d. %-6s %-12s %3d° at (%d,%d)\n", i+1, ev.Color, ev.Piece, ev.Rotation, ev.Col, ev.Row)
		}
		fmt.Println()
	}

	board, replayErr := blokus.ReplayEvents(sess.StartRule, moves)
	if board != nil {
		if flagReplayPlain {
			fmt.Println(board.String())
		} else {
			fmt.Println(tui.RenderScreen(blokus.BoardScreen(board)))
		}
	}
	if replayErr != nil {
		fail("replay stopped: %v", replayErr)
	}
}
