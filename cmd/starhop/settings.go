package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starhop/internal/core"
	"github.com/vovakirdan/starhop/internal/i18n"
	"github.com/vovakirdan/starhop/internal/sim"
)

var (
	flagLanguage     string
	flagDebug        bool
	flagSetCharacter string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	Long: `Show the saved settings, or change them with flags.

Languages: en (English), ja or jp (Japanese).
Debug mode unlocks every character and lets stage select toggle the
cleared flag of a level with C.

Examples:
  starhop settings
  starhop settings --language ja
  starhop settings --debug=true
  starhop settings --character agile`,
	Args: cobra.NoArgs,
	Run:  runSettings,
}

func init() {
	settingsCmd.Flags().StringVar(&flagLanguage, "language", "", "UI language: en, ja")
	settingsCmd.Flags().BoolVar(&flagDebug, "debug", false, "Enable debug mode")
	settingsCmd.Flags().StringVar(&flagSetCharacter, "character", "", "Default character: standard or agile")
}

func runSettings(cmd *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	flags := cmd.Flags()
	if flags.Changed("language") {
		code := i18n.Normalize(flagLanguage)
		if err := store.SetLanguage(code); err != nil {
			fatalf("saving language: %v", err)
		}
	}
	if flags.Changed("debug") {
		if err := store.SetDebugMode(flagDebug); err != nil {
			fatalf("saving debug mode: %v", err)
		}
	}
	if flags.Changed("character") {
		c, err := core.ParseCharacter(flagSetCharacter)
		if err != nil {
			fatalf("%v", err)
		}
		if err := store.SetCharacter(c); err != nil {
			fatalf("saving character: %v", err)
		}
	}

	lang, err := store.Language()
	if err != nil {
		fatalf("reading language: %v", err)
	}
	debug, err := store.DebugMode()
	if err != nil {
		fatalf("reading debug mode: %v", err)
	}
	character, err := store.Character()
	if err != nil {
		fatalf("reading character: %v", err)
	}

	locked := ""
	if tuning, err := loadTuning(); err == nil {
		if ok, err := sim.CharacterUnlocked(store, tuning, character); err == nil && !ok {
			locked = fmt.Sprintf(" (locked until levels %v are cleared)", tuning.Unlock.AgileRequires)
		}
	}

	fmt.Println("Settings")
	fmt.Println()
	fmt.Printf("  %-10s %s (%s, available: %s)\n", "Language", i18n.DisplayName(lang), lang, strings.Join(i18n.Supported(), ", "))
	fmt.Printf("  %-10s %t\n", "Debug", debug)
	fmt.Printf("  %-10s %s%s\n", "Character", character, locked)
}
