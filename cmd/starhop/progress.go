package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starhop/internal/level"
	"github.com/vovakirdan/starhop/internal/platform/tui"
	"github.com/vovakirdan/starhop/internal/storage"
)

var progressCmd = &cobra.Command{
	Use:   "progress [level]",
	Short: "Show level progress",
	Long: `Without an argument, list every level with stored progress.
With a level id, show the top 10 clears of that level.
With --board, open the interactive progress board.

Examples:
  starhop progress
  starhop progress --board
  starhop progress 2
  starhop progress set-cleared 3 true`,
	Args: cobra.MaximumNArgs(1),
	Run:  runProgress,
}

var setClearedCmd = &cobra.Command{
	Use:   "set-cleared <level> <true|false>",
	Short: "Override the cleared flag of a level",
	Long: `Mark a level cleared or not cleared without playing it.
The high score and the clear history are left alone.

Examples:
  starhop progress set-cleared 1 true
  starhop progress set-cleared 3 false`,
	Args: cobra.ExactArgs(2),
	Run:  runSetCleared,
}

var flagBoard bool

func init() {
	progressCmd.Flags().BoolVar(&flagBoard, "board", false, "Open the interactive progress board")
	progressCmd.AddCommand(setClearedCmd)
}

// mustOpenStore opens the progress store or exits; these commands are
// pointless without persistence.
func mustOpenStore() storage.Store {
	store, err := openStore()
	if err != nil {
		fatalf("opening progress store: %v", err)
	}
	return store
}

func runProgress(_ *cobra.Command, args []string) {
	if flagBoard {
		logger := newLogger()
		env := buildEnv(logger)
		defer env.Store.Close()
		if err := tui.RunScoreboard(env); err != nil {
			fatalf("%v", err)
		}
		return
	}

	store := mustOpenStore()
	defer store.Close()

	if len(args) == 1 {
		showClearHistory(store, args[0])
		return
	}

	all, err := store.AllProgress()
	if err != nil {
		fatalf("reading progress: %v", err)
	}
	if len(all) == 0 {
		fmt.Println("No progress recorded yet.")
		fmt.Println()
		fmt.Println("Play 'starhop play 1' to start!")
		return
	}

	fmt.Println("Progress")
	fmt.Println()
	fmt.Printf("  %-5s  %-7s  %s\n", "Level", "Cleared", "Best")
	fmt.Printf("  %-5s  %-7s  %s\n", "-----", "-------", "----")
	for _, p := range all {
		cleared := "-"
		if p.Cleared {
			cleared = "yes"
		}
		fmt.Printf("  %-5d  %-7s  %d\n", p.LevelID, cleared, p.HighScore)
	}
}

func showClearHistory(store storage.Store, arg string) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		fatalf("level id must be a number, got %q", arg)
	}

	name := fmt.Sprintf("Level %d", id)
	if levels, err := loadLevels(); err == nil {
		if d, err := level.ByID(levels, id); err == nil {
			name = d.Name
		}
	}

	clears, err := store.ClearHistory(id, 10)
	if err != nil {
		fatalf("retrieving clears: %v", err)
	}

	fmt.Printf("Clears - %s\n", name)
	fmt.Println()

	if len(clears) == 0 {
		fmt.Println("No clears recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'starhop play %d' to set the first high score!\n", id)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, c := range clears {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, c.Score, c.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if p, err := store.LevelProgress(id); err == nil {
		fmt.Printf("Best: %d\n", p.HighScore)
	}
}

func runSetCleared(_ *cobra.Command, args []string) {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fatalf("level id must be a number, got %q", args[0])
	}
	cleared, err := strconv.ParseBool(args[1])
	if err != nil {
		fatalf("cleared must be true or false, got %q", args[1])
	}

	store := mustOpenStore()
	defer store.Close()

	if err := store.SetCleared(id, cleared); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Printf("Level %d cleared: %t\n", id, cleared)
}
