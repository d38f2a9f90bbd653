package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all levels",
	Long:  `Shows every level with its cleared status and high score.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	levels, err := loadLevels()
	if err != nil {
		fatalf("loading levels: %v", err)
	}
	if levels.Len() == 0 {
		fmt.Println("No levels available.")
		return
	}

	logger := newLogger()
	store := openStoreOrMemory(logger)
	defer store.Close()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, d := range levels.All() {
		if len(d.Name) > maxNameLen {
			maxNameLen = len(d.Name)
		}
	}

	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-3s  %-*s  %-7s  %s\n", "ID", maxNameLen, "Name", "Cleared", "Best")
	fmt.Printf("  %-3s  %-*s  %-7s  %s\n", "--", maxNameLen, "----", "-------", "----")

	for _, d := range levels.All() {
		p, err := store.LevelProgress(d.ID)
		if err != nil {
			logger.Warn("cannot read progress", "level", d.ID, "error", err)
		}
		cleared := "-"
		if p.Cleared {
			cleared = "yes"
		}
		fmt.Printf("  %-3d  %-*s  %-7s  %d\n", d.ID, maxNameLen, d.Name, cleared, p.HighScore)
	}

	fmt.Println()
	fmt.Println("Run 'starhop play <id>' to play a level.")
}
