package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/starhop/internal/audio"
	"github.com/vovakirdan/starhop/internal/core"
	"github.com/vovakirdan/starhop/internal/level"
	"github.com/vovakirdan/starhop/internal/platform/tui"
)

var (
	flagCharacter string
	flagWatch     bool
	flagSound     bool
	flagVolume    float64
)

var playCmd = &cobra.Command{
	Use:   "play <level>",
	Short: "Play a level",
	Long: `Start playing the level with the given id.

Controls:
  A/D, Left/Right  - Run
  Space/W/Up       - Jump (jump again in the air to double jump)
  P                - Pause
  R                - Restart (after failing)
  Enter            - Back (after clearing)
  Esc/B            - Back
  Q/Ctrl+C         - Quit

Characters:
  standard - Higher jump
  agile    - Lower jump, unlocked by clearing levels 1, 2 and 3

Examples:
  starhop play 1
  starhop play 4 --character agile
  starhop play 6 --sound
  starhop play 7 --levels ./levels --watch`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagCharacter, "character", "", "Character: standard or agile (default: saved choice)")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the level when its file under --levels changes")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound cues")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.8, "Sound volume (0-1)")
}

func runPlay(_ *cobra.Command, args []string) {
	logger := newLogger()
	env := buildEnv(logger)
	defer env.Store.Close()

	d := lookupLevel(env.Levels, args[0])
	character := playCharacter(env, logger)

	if flagWatch {
		if flagLevels == "" {
			fmt.Fprintln(os.Stderr, "Warning: --watch needs --levels, built-in levels cannot change")
		} else {
			watcher, err := level.NewWatcher(flagLevels)
			if err != nil {
				fatalf("watching %s: %v", flagLevels, err)
			}
			defer watcher.Close()
			go logWatchErrors(logger, watcher.Errors)
			env.Reload = watcher.Events
		}
	}

	if flagSound {
		sink, err := audio.Open(flagVolume, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: sound disabled: %v\n", err)
		} else {
			defer sink.Close()
			env.Sink = sink
		}
	}

	if err := tui.RunGame(env, d, character); err != nil {
		fatalf("%v", err)
	}
}

// playCharacter returns --character, or the saved choice when it is empty.
func playCharacter(env tui.Env, logger *log.Logger) core.Character {
	if flagCharacter != "" {
		c, err := core.ParseCharacter(flagCharacter)
		if err != nil {
			fatalf("%v", err)
		}
		return c
	}
	c, err := env.Store.Character()
	if err != nil {
		logger.Warn("cannot read saved character", "error", err)
		return core.CharacterStandard
	}
	return c
}

func logWatchErrors(logger *log.Logger, errs <-chan error) {
	for err := range errs {
		logger.Warn("level watcher", "error", err)
	}
}
