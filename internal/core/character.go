package core

import (
	"fmt"
	"strings"
)

// Character is the playable character variant.
type Character string

const (
	CharacterStandard Character = "standard" // high single jump
	CharacterAgile    Character = "agile"    // lower jump, can jump again in mid-air
)

// ParseCharacter converts a user-supplied name into a Character.
// "ninja" is accepted as an alias for the agile variant.
func ParseCharacter(s string) (Character, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return CharacterStandard, nil
	case "agile", "ninja":
		return CharacterAgile, nil
	default:
		return "", fmt.Errorf("core: unknown character %q", s)
	}
}

// CanDoubleJump reports whether the variant may jump while airborne.
func (c Character) CanDoubleJump() bool {
	return c == CharacterAgile
}

// String returns the canonical name.
func (c Character) String() string {
	if c == "" {
		return string(CharacterStandard)
	}
	return string(c)
}
