// starhop is a 2D platformer played in the terminal: hop across platforms,
// collect stars, dodge enemies and reach the goal flag.
//
// Usage:
//
//	starhop list                    - List levels and progress
//	starhop play <level>            - Play one level
//	starhop menu                    - Stage select, game and progress board
//	starhop progress [level]        - Show progress or the clear history of a level
//	starhop settings                - Show or change settings
//	starhop serve                   - Start SSH server for remote play
//	starhop replay <level> --script - Run a scripted attempt headlessly
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--db <path>         - Set database path (default: ~/.starhop/progress.db)
//	--store <kind>      - Progress store: sqlite, gdata or memory
//	--tuning <path>     - Tuning YAML overriding the defaults
//	--levels <dir>      - Load levels from a directory instead of the built-in set
//	--log-level <level> - debug, info, warn or error (default: warn)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagStore    string
	flagTuning   string
	flagLevels   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "starhop",
	Short: "Starhop - a platformer in your terminal",
	Long: `Starhop is a side-scrolling platformer for the terminal.
Run and double jump across static, moving and crumbling platforms,
collect stars and reach the goal flag without touching an enemy.

Available commands:
  list      - Show all levels
  play      - Play a specific level directly
  menu      - Interactive stage select
  progress  - View cleared levels and clear history
  settings  - Language, debug mode and character
  serve     - Start SSH server for remote play
  replay    - Run a scripted attempt without a terminal

Examples:
  starhop list
  starhop play 1
  starhop play 2 --character agile
  starhop menu
  starhop serve --ssh :2222
  starhop progress 1`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.starhop/progress.db", "Path to progress database (sqlite store)")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "sqlite", "Progress store: sqlite, gdata or memory")
	rootCmd.PersistentFlags().StringVar(&flagTuning, "tuning", "", "Path to tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory of level YAML files (default: built-in levels)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
}
