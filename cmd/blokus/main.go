// blokus is a terminal sandbox for Blokus piece placement with an SSH
// server and a chat relay.
//
// Usage:
//
//	blokus list              - List sandbox variants
//	blokus play [variant]    - Play locally (menu when no variant is given)
//	blokus pieces            - Print every piece at every rotation
//	blokus serve             - Start the SSH server with chat
//	blokus relay             - Start the TCP chat relay only
//	blokus chat              - Connect to a relay from the terminal
//	blokus history           - List stored sessions
//	blokus replay <id>       - Rebuild a stored session's board
//	blokus config            - Print the effective configuration
//
// Global flags:
//
//	--config <path> - Config YAML (default: search ~/.blokus/configs, ./configs)
//	--db <path>     - Database path (default from config: ~/.blokus/blokus.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blokus/internal/config"
	"github.com/vovakirdan/tui-blokus/internal/storage"

	// Import the sandbox to register its variants
	_ "github.com/vovakirdan/tui-blokus/internal/games/blokus"
)

var (
	// Global flags
	flagConfig string
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blokus",
	Short: "Blokus sandbox - place pieces in your terminal",
	Long: `A terminal sandbox for Blokus piece placement.

Pieces are placed on a 20x20 board. Every piece must touch a piece of its
own color corner to corner and may never share an edge with one.

Examples:
  blokus play
  blokus play blokus_classic
  blokus serve --relay
  blokus replay 3`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to session database (overrides config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(piecesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(relayCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig loads the config, exiting on a bad custom path.
func loadConfig() config.BlokusConfig {
	cfg, err := config.LoadBlokus(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	return cfg
}

// dbPath resolves the database path: flag first, then config.
func dbPath(cfg config.BlokusConfig) string {
	if flagDBPath != "" {
		return flagDBPath
	}
	return cfg.Storage.Path
}

// openStore opens the database or exits.
func openStore(cfg config.BlokusConfig) *storage.Store {
	store, err := storage.Open(dbPath(cfg))
	if err != nil {
		fail("cannot open database: %v", err)
	}
	return store
}
