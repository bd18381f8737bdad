package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cat-tunnel/internal/games/tunnel"
	"github.com/vovakirdan/cat-tunnel/internal/registry"
	"github.com/vovakirdan/cat-tunnel/internal/storage"
)

var (
	flagRecent int
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores and recent runs",
	Long: `Display the top 10 scores and the most recent runs for a mode.

Each run lists its ID and seed; pass the ID to 'play --run' (or the seed to
'play --seed') to replay the same track.

Examples:
  cattunnel scores
  cattunnel scores tunnel_practice --recent 20
  cattunnel scores tunnel --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 10, "Number of recent runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and runs of the mode")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := tunnel.ModeID
	if len(args) == 1 {
		gameID = args[0]
	}

	info, ok := registry.Get(gameID)
	if !ok {
		return fmt.Errorf("unknown mode %q, run 'cattunnel list' to see available modes", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		removed, err := store.ClearScores(gameID)
		if err != nil {
			return err
		}
		logger.Info("cleared score history", "game", gameID, "runs", removed)
		fmt.Printf("Cleared %d runs of %s.\n", removed, info.Title)
		return nil
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'cattunnel play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	runs, err := store.RecentRuns(gameID, flagRecent)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}
	if len(runs) > 0 {
		fmt.Println()
		fmt.Println("Recent Runs")
		fmt.Println()
		fmt.Printf("  %-36s  %-6s  %-9s  %-20s  %-12s  %s\n", "Run", "Score", "Max Spd", "Seed", "Player", "Date")
		fmt.Printf("  %-36s  %-6s  %-9s  %-20s  %-12s  %s\n", "---", "-----", "-------", "----", "------", "----")
		for _, r := range runs {
			fmt.Printf("  %-36s  %-6d  %-9.2f  %-20d  %-12s  %s\n",
				r.RunID, r.Score, r.MaxSpeed, r.Seed, r.Player, r.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	highScore, err := store.HighScore(gameID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d\n", highScore)
	}
	return nil
}
