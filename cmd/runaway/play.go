package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/runaway/internal/platform/tui"
	"github.com/vovakirdan/runaway/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level in the terminal",
	Long: `Start playing the given level, or the first level when none is named.

Controls:
  Left/Right, A/D  - Run
  Up, W            - Jump, or climb a ladder
  Down, S          - Climb down a ladder
  P                - Pause
  R                - Restart (after the run ends)
  Esc/B            - Quit (while paused or after the run ends)
  Q/Ctrl+C         - Quit

Terminals report key presses only. A held key counts as released when its
repeats stop for a moment (terminal.release_after_ms in the config).

Examples:
  runaway play
  runaway play level-2 --difficulty hard
  runaway play level-1 --config ./my-runaway.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	a, err := setup(true, true)
	if err != nil {
		return err
	}
	defer a.close()

	lvl, err := a.pickLevel(args)
	if err != nil {
		return err
	}
	game, err := registry.Create(lvl.ID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := a.openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, terminalConfig(), a.tuiOptions()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
