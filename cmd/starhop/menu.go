package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/starhop/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the stage select menu",
	Long: `Start starhop in interactive menu mode.

Pick a level, play it and come back to stage select. The progress board
lists every clear.

Controls:
  Up/Down/j/k  - Navigate levels
  Enter/Space  - Play level
  Tab          - Switch character (agile unlocks after levels 1-3)
  P            - Progress board
  C            - Toggle cleared (debug mode only)
  Q            - Quit

Examples:
  starhop menu
  starhop menu --fps 30
  starhop menu --store gdata`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger := newLogger()
	env := buildEnv(logger)
	defer env.Store.Close()

	if err := tui.RunSession(env); err != nil {
		fatalf("%v", err)
	}
}
