package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starhop/internal/core"
	"github.com/vovakirdan/starhop/internal/replay"
	"github.com/vovakirdan/starhop/internal/sim"
	"github.com/vovakirdan/starhop/internal/storage"
)

var (
	flagScript       string
	flagReplayChar   string
	flagReplayRecord bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <level> --script <file>",
	Short: "Run a scripted attempt without a terminal",
	Long: `Play a level headlessly from a YAML input script and print the outcome.
Useful to check that a level can be cleared after editing it.

A script is a list of segments, each holding actions for a number of ticks:

  - {ticks: 60, hold: [right]}
  - {ticks: 10, hold: [right, jump]}
  - {ticks: 90, hold: [right]}

Holding jump across segments jumps once; release it to jump again.
Progress is not saved unless --record is given.

Examples:
  starhop replay 1 --script ./route.yaml
  starhop replay 7 --levels ./levels --script ./route.yaml --character agile`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagScript, "script", "", "Path to input script YAML")
	replayCmd.Flags().StringVar(&flagReplayChar, "character", "standard", "Character: standard or agile")
	replayCmd.Flags().BoolVar(&flagReplayRecord, "record", false, "Save a clear to the progress store")
	_ = replayCmd.MarkFlagRequired("script")
}

func runReplay(_ *cobra.Command, args []string) {
	logger := newLogger()

	levels, err := loadLevels()
	if err != nil {
		fatalf("loading levels: %v", err)
	}
	d := lookupLevel(levels, args[0])

	tuning, err := loadTuning()
	if err != nil {
		fatalf("loading tuning: %v", err)
	}
	character, err := core.ParseCharacter(flagReplayChar)
	if err != nil {
		fatalf("%v", err)
	}
	script, err := replay.Load(flagScript)
	if err != nil {
		fatalf("%v", err)
	}

	var store storage.Store = storage.NewMemoryStore()
	if flagReplayRecord {
		store = mustOpenStore()
	} else if err := store.SetDebugMode(true); err != nil {
		fatalf("%v", err)
	}
	defer store.Close()

	run, err := sim.NewRun(d, character, store, sim.WithTuning(tuning), sim.WithLogger(logger))
	if err != nil {
		fatalf("starting level %d: %v", d.ID, err)
	}

	res := replay.Play(run, script)

	fmt.Printf("Replay - %s (level %d, %s)\n", d.Name, d.ID, character)
	fmt.Println()
	fmt.Printf("  %-8s %s\n", "Outcome", outcome(res))
	fmt.Printf("  %-8s %d\n", "Score", res.Score)
	fmt.Printf("  %-8s %d of %d (%.2fs)\n", "Ticks", res.Ticks, script.Ticks(), float64(res.Ticks)/float64(tuning.TickRate))
	fmt.Printf("  %-8s %d\n", "Jumps", res.Jumps)
	fmt.Printf("  %-8s %d of %d\n", "Stars", res.Stars, len(d.Stars))
	if res.Crumbles > 0 {
		fmt.Printf("  %-8s %d\n", "Crumbled", res.Crumbles)
	}
	if res.Err != nil {
		fmt.Printf("  %-8s %v\n", "Warning", res.Err)
	}
}

func outcome(res replay.Result) string {
	switch res.Phase {
	case sim.PhaseCleared:
		return "cleared"
	case sim.PhaseFailed:
		return "failed (" + res.Cause.String() + ")"
	default:
		return "unfinished"
	}
}
