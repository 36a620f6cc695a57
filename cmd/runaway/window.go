package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/runaway/internal/platform/window"
)

var windowCmd = &cobra.Command{
	Use:   "window [level]",
	Short: "Play a level in a desktop window",
	Long: `Open the given level, or the first level, in a resizable window.

Controls:
  Left/Right, A/D  - Run
  Up, W            - Jump, or climb a ladder
  Down, S          - Climb down a ladder
  R                - Restart (after the run ends)
  Esc/Q            - Quit

Examples:
  runaway window
  runaway window level-3 --fps 30`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWindow,
}

func runWindow(_ *cobra.Command, args []string) error {
	a, err := setup(false, true)
	if err != nil {
		return err
	}
	defer a.close()

	lvl, err := a.pickLevel(args)
	if err != nil {
		return err
	}

	store := a.openStore()
	if store != nil {
		defer store.Close()
	}

	opts := a.gameOptions()
	return window.Run(lvl, store, window.Options{
		Settings: opts.Settings,
		TPS:      flagFPS,
		Sound:    opts.Sound,
		Logger:   a.logger.WithPrefix("window"),
	})
}
