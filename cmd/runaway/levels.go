package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long: `Shows every level in the catalog: the embedded levels plus any found
in the --levels directory.`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	a, err := setup(false, false)
	if err != nil {
		return err
	}
	defer a.close()

	levels := a.catalog.List()
	if len(levels) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	fmt.Println("Available levels:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, l := range levels {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Printf("  %-*s  %-6s  %-6s  %s\n", maxIDLen, "ID", "Tiles", "Coins", "Name")
	fmt.Printf("  %-*s  %-6s  %-6s  %s\n", maxIDLen, "--", "-----", "-----", "----")
	for _, l := range levels {
		fmt.Printf("  %-*s  %-6d  %-6d  %s\n", maxIDLen, l.ID, l.Width, len(l.Coins), l.Name)
	}

	fmt.Println()
	fmt.Println("Run 'runaway play <id>' to play a level.")
	return nil
}
