// runaway is a 2D platformer: reach the flag before the enemy catches you.
//
// Usage:
//
//	runaway levels            - List available levels
//	runaway play [level]      - Play a level in the terminal
//	runaway window [level]    - Play a level in a desktop window
//	runaway menu              - Pick levels interactively
//	runaway scores [level]    - Show the best runs of a level
//	runaway serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--db <path>           - Set database path (default: ~/.runaway/scores.db)
//	--config <path>       - Load tuning from a YAML file
//	--levels <dir>        - Load extra levels from a directory
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagConfig     string
	flagLevels     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runaway",
	Short: "Run Away! - outrun the enemy and reach the flag",
	Long: `Run Away! is a side-scrolling platformer. Collect coins, climb ladders
and ride moving platforms while an enemy flies straight at you. Touch the
flag to win; get caught or fall off the map and the run is over.

Available commands:
  levels   - Show all available levels
  play     - Play a level in the terminal
  window   - Play a level in a desktop window
  menu     - Interactive level picker
  scores   - View the best runs
  serve    - Start SSH server for remote play

Examples:
  runaway levels
  runaway play level-1
  runaway window level-2 --difficulty hard
  runaway menu
  runaway serve --ssh :2222
  runaway scores level-1`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.runaway/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory with extra level files")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
