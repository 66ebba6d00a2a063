package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blokus/internal/config"
	"github.com/vovakirdan/tui-blokus/internal/core"
	"github.com/vovakirdan/tui-blokus/internal/platform/tui"
	"github.com/vovakirdan/tui-blokus/internal/registry"
	"github.com/vovakirdan/tui-blokus/internal/storage"
)

var flagVariant string

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play the sandbox locally",
	Long: `Start the sandbox in this terminal.

Without a variant argument a menu lets you pick one, or browse stored
sessions with Tab. Every placement is saved to the session database.

Controls:
  Arrows/hjkl/WASD - Move cursor
  r / R            - Rotate clockwise / counter-clockwise
  ] [ / Tab        - Next / previous piece
  c                - Next color
  Enter/Space      - Place
  v                - Validity overlay
  ?                - Jump to a legal placement
  n                - Clear the board
  F1               - Full help
  Q/Ctrl+C         - Quit

Examples:
  blokus play
  blokus play blokus_edges
  blokus play --variant classic`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagVariant, "variant", "", "Rules preset: corners, classic, edges")
}

func runPlay(_ *cobra.Command, args []string) {
	cfg := loadConfig()
	if flagVariant != "" {
		preset, err := config.ParseVariant(flagVariant)
		if err != nil {
			fail("%v", err)
		}
		config.ApplyVariant(&cfg, preset)
	}

	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 'blokus list' to see available variants.")
			os.Exit(1)
		}
	}

	rt := runtimeConfig(cfg)

	store, err := storage.Open(dbPath(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open session database: %v\n", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	if gameID != "" {
		if err := playOnce(gameID, store, rt); err != nil {
			fmt.Fprintf(os.Stderr, "Error running sandbox: %v\n", err)
		}
		return
	}
	runMenuLoop(store, rt, cfg.GameID())
}

// runtimeConfig builds the sandbox config from the terminal size and the file config.
func runtimeConfig(cfg config.BlokusConfig) core.RuntimeConfig {
	rt := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	rt.StartRule = cfg.Rules.StartRule
	rt.ShowOverlay = cfg.Display.ShowOverlay
	return rt
}

func playOnce(gameID string, store *storage.Store, rt core.RuntimeConfig) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	return tui.Run(game, store, rt, "local")
}

// runMenuLoop shows the menu until the user quits.
func runMenuLoop(store *storage.Store, rt core.RuntimeConfig, preferID string) {
	for {
		result, err := tui.RunMenu(rt, preferID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		rt = result.Config

		if result.Quit {
			return
		}

		if result.WantsHistory {
			if store == nil {
				fmt.Fprintln(os.Stderr, "Session history needs the database.")
				continue
			}
			goBack, err := tui.RunHistory(store, rt.ScreenW, rt.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if goBack {
				continue
			}
			return
		}

		if result.GameID == "" {
			return
		}
		preferID = result.GameID
		if err := playOnce(result.GameID, store, rt); err != nil {
			fmt.Fprintf(os.Stderr, "Error running sandbox: %v\n", err)
		}
	}
}
