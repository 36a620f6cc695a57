package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/runaway/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show the best runs of a level",
	Long: `Display the top 10 runs for the given level, or the first level.
Wins rank above losses, then higher scores, then faster times.

Examples:
  runaway scores
  runaway scores level-2`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func runScores(_ *cobra.Command, args []string) error {
	a, err := setup(false, false)
	if err != nil {
		return err
	}
	defer a.close()

	lvl, err := a.pickLevel(args)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	runs, err := store.TopRuns(lvl.ID, 10)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Printf("Best Runs - %s\n", lvl.Name)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'runaway play %s' to set the first record!\n", lvl.ID)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-8s  %-6s  %s\n", "Rank", "Score", "Time", "Result", "Date")
	fmt.Printf("  %-4s  %-6s  %-8s  %-6s  %s\n", "----", "-----", "----", "------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-6d  %-8s  %-6s  %s\n",
			i+1, r.Score, fmt.Sprintf("%.1fs", r.Elapsed), r.Outcome, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.LevelStats(lvl.ID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Wins: %d  Best: %d", stats.Runs, stats.Wins, stats.BestScore)
		if stats.FastestWin > 0 {
			fmt.Printf("  Fastest win: %.1fs", stats.FastestWin)
		}
		fmt.Println()
	}
	return nil
}
