package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blokus/internal/games/blokus/core"
)

var flagPiece string

var piecesCmd = &cobra.Command{
	Use:   "pieces",
	Short: "Print the piece catalog",
	Long: `Prints every piece at all four rotations. The pivot cell is marked
with 'O', other filled cells with 'X'.

Examples:
  blokus pieces
  blokus pieces --piece five-u`,
	Run: runPieces,
}

func init() {
	piecesCmd.Flags().StringVar(&flagPiece, "piece", "", "Print a single piece")
}

func runPieces(_ *cobra.Command, _ []string) {
	pieces := core.AllPieces()
	if flagPiece != "" {
		p, err := core.ParsePiece(flagPiece)
		if err != nil {
			fail("%v", err)
		}
		pieces = []core.Piece{p}
	}

	catalog := core.DefaultCatalog()
	for _, p := range pieces {
		fmt.Printf("%s (%d cells)\n", p, catalog.Size(p))

		// Lay the four rotations side by side.
		var blocks [][]string
		height := 0
		for _, r := range core.AllRotations {
			rows := catalog.Mask(p, r).Rows()
			blocks = append(blocks, rows)
			height = max(height, len(rows))
		}
		for _, r := range core.AllRotations {
			fmt.Printf("  %-8d", r.Degrees())
		}
		fmt.Println()
		for y := range height {
			var line strings.Builder
			for _, rows := range blocks {
				row := ""
				if y < len(rows) {
					row = rows[y]
				}
				fmt.Fprintf(&line, "  %-8s", row)
			}
			fmt.Println(strings.TrimRight(line.String(), " "))
		}
		fmt.Println()
	}
}
