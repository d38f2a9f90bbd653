package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/starhop/internal/config"
	"github.com/vovakirdan/starhop/internal/core"
	"github.com/vovakirdan/starhop/internal/level"
	"github.com/vovakirdan/starhop/internal/platform/tui"
	"github.com/vovakirdan/starhop/internal/storage"
)

// fatalf prints an error and exits.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "starhop",
	})
	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using warn", "level", flagLogLevel)
		lvl = log.WarnLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// openStore opens the progress store selected by --store.
func openStore() (storage.Store, error) {
	kind, err := storage.ParseKind(flagStore)
	if err != nil {
		return nil, err
	}
	location := flagDBPath
	if kind == storage.KindGdata {
		location = storage.DefaultAppName
	}
	return storage.OpenKind(kind, location)
}

// openStoreOrMemory opens the progress store, falling back to a throwaway
// memory store so the game still works without persistence.
func openStoreOrMemory(logger *log.Logger) storage.Store {
	store, err := openStore()
	if err != nil {
		logger.Warn("could not open progress store, progress will not be saved", "store", flagStore, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open progress store: %v\n", err)
		return storage.NewMemoryStore()
	}
	return store
}

func loadLevels() (level.Source, error) {
	if flagLevels != "" {
		return level.LoadDir(flagLevels)
	}
	return level.Builtin()
}

// loadTuning loads the tuning and applies --fps when it was given.
func loadTuning() (config.Tuning, error) {
	t, err := config.LoadTuning(flagTuning)
	if err != nil {
		return config.Tuning{}, err
	}
	if rootCmd.PersistentFlags().Changed("fps") {
		if flagFPS <= 0 {
			return config.Tuning{}, fmt.Errorf("--fps must be positive, got %d", flagFPS)
		}
		t.TickRate = flagFPS
	}
	return t, nil
}

// terminalConfig sizes the screen from the terminal, 80x24 when unknown.
func terminalConfig(tickRate int) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = tickRate
	return cfg
}

// buildEnv gathers what the front-end needs. The caller closes env.Store.
func buildEnv(logger *log.Logger) tui.Env {
	levels, err := loadLevels()
	if err != nil {
		fatalf("loading levels: %v", err)
	}
	tuning, err := loadTuning()
	if err != nil {
		fatalf("loading tuning: %v", err)
	}
	return tui.Env{
		Levels:  levels,
		Store:   openStoreOrMemory(logger),
		Tuning:  tuning,
		Runtime: terminalConfig(tuning.TickRate),
		Logger:  logger,
	}
}

// lookupLevel resolves a level id argument.
func lookupLevel(src level.Source, arg string) level.Descriptor {
	id, err := strconv.Atoi(arg)
	if err != nil {
		fatalf("level id must be a number, got %q", arg)
	}
	d, err := level.ByID(src, id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown level %d\n", id)
		fmt.Fprintln(os.Stderr, "Run 'starhop list' to see available levels.")
		os.Exit(1)
	}
	return d
}
