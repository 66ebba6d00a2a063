package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored sandbox sessions",
	Long: `Lists the most recent sessions in the database, newest first.
Use 'blokus replay <id>' to see a session's board.

Examples:
  blokus history
  blokus history --limit 50`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of sessions to show")
}

func runHistory(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	sessions, err := store.RecentSessions(flagHistoryLimit)
	if err != nil {
		store.Close()
		fail("%v", err)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'blokus play' and place a piece to start one.")
		return
	}

	fmt.Printf("  %-5s  %-15s  %-10s  %-12s  %5s  %s\n", "ID", "Variant", "Rule", "Player", "Moves", "Started")
	fmt.Printf("  %-5s  %-15s  %-10s  %-12s  %5s  %s\n", "--", "-------", "----", "------", "-----", "-------")
	for _, s := range sessions {
		started := "-"
		if !s.StartedAt.IsZero() {
			started = s.StartedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-5d  %-15s  %-10s  %-12s  %5d  %s\n", s.ID, s.GameID, s.StartRule, s.Owner, s.Moves, started)
	}
}
