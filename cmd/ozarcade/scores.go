package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the best runs and overall statistics.

Examples:
  ozarcade scores
  ozarcade scores --limit 25`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, _ []string) {
	a := mustOpenApp(false)
	defer a.close()

	runs, err := a.store.TopRuns(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		a.close()
		os.Exit(1)
	}

	fmt.Println("High Scores")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'ozarcade play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-12s  %-6s  %-6s  %s\n", "Rank", "Player", "Score", "Earned", "Date")
	fmt.Printf("  %-4s  %-12s  %-6s  %-6s  %s\n", "----", "------", "-----", "------", "----")
	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-12s  %-6d  %-6d  %s\n", i+1, player, r.Score, r.PointsEarned,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := a.store.RunStats(); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d   Runs: %s   Average: %.1f   Points earned: %s   Last played %s\n",
			stats.HighScore, humanize.Comma(int64(stats.Runs)), stats.AvgScore,
			humanize.Comma(stats.TotalEarned), humanize.Time(stats.LastPlayed))
	}
}
