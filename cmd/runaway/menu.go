package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/runaway/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick levels from an interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a level.
Esc/B returns to the menu while paused or after the run ends.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select level
  Tab          - Best runs
  Q            - Quit

Examples:
  runaway menu
  runaway menu --fps 30
  runaway menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	a, err := setup(true, true)
	if err != nil {
		return err
	}
	defer a.close()

	store := a.openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunSession(store, terminalConfig(), a.tuiOptions()); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}
