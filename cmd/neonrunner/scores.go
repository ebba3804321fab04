package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-runner/internal/registry"
	"github.com/vovakirdan/neon-runner/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresRuns  bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the best runs for the specified game, or its most recent
runs with --recent.

Examples:
  neonrunner scores neon
  neonrunner scores neon --recent --limit 5
  neonrunner scores neon_classic --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagScoresRuns, "recent", false, "Show the most recent runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores and runs for the game")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'neonrunner list' to see available games.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared all scores for %s.\n", title)
		return
	}

	var runs []storage.RunRecord
	if flagScoresRuns {
		runs, err = store.RecentRuns(gameID, flagScoresLimit)
	} else {
		runs, err = store.TopRuns(gameID, flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	heading := "High Scores"
	if flagScoresRuns {
		heading = "Recent Runs"
	}
	fmt.Printf("%s - %s\n", heading, title)
	fmt.Println()

	if len(runs) == 0 {
		printLegacyScores(store, gameID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-4s  %-8s  %-11s  %s\n", "Rank", "Score", "Wave", "Distance", "Tier", "Date")
	fmt.Printf("  %-4s  %-8s  %-4s  %-8s  %-11s  %s\n", "----", "-----", "----", "--------", "----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-4d  %-8s  %-11s  %s\n",
			i+1, r.Score, r.Wave, fmt.Sprintf("%.0fm", r.Distance/10), r.Difficulty,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		fmt.Printf("Best: %d  |  Runs: %d  |  Average: %.0f  |  Best wave: %d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.BestWave)
	}
}

// printLegacyScores lists scores saved without run history.
func printLegacyScores(store *storage.Store, gameID string) {
	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil || len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'neonrunner play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}
}
