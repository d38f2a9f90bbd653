// Package storage persists level progress and player settings.
//
// Three implementations share the Store interface: SQLiteStore (a local
// database file, pure-Go modernc.org/sqlite driver), GdataStore (the
// platform's per-user application data directory) and MemoryStore (tests and
// throwaway sessions). All progress is keyed by level id; absent levels read
// as not cleared with a high score of zero.
package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/starhop/internal/core"
)

// DefaultLanguage is reported until a language is stored.
const DefaultLanguage = "en"

// Progress is the persisted state of one level.
type Progress struct {
	LevelID   int  `yaml:"level_id"`
	Cleared   bool `yaml:"cleared"`
	HighScore int  `yaml:"high_score"`
}

// ClearRecord is one entry of the clear history.
type ClearRecord struct {
	ID        int64     `yaml:"id"`
	LevelID   int       `yaml:"level_id"`
	Score     int       `yaml:"score"`
	CreatedAt time.Time `yaml:"created_at"`
}

// Store is the progress store consumed by the simulation and front-ends.
type Store interface {
	// LevelProgress returns the progress of a level, zero-valued if absent.
	LevelProgress(levelID int) (Progress, error)
	// RecordClear marks a level cleared and keeps the higher of the stored
	// and the given score. It also appends to the clear history.
	RecordClear(levelID, score int) error
	// SetCleared overrides the cleared flag without touching the high score.
	SetCleared(levelID int, cleared bool) error
	// AllProgress returns every stored level ordered by id.
	AllProgress() ([]Progress, error)
	// ClearHistory returns the best clears of a level, highest score first.
	ClearHistory(levelID, limit int) ([]ClearRecord, error)

	Character() (core.Character, error)
	SetCharacter(c core.Character) error
	Language() (string, error)
	SetLanguage(code string) error
	DebugMode() (bool, error)
	SetDebugMode(on bool) error

	Close() error
}

// Kind names a Store implementation.
type Kind string

const (
	KindSQLite Kind = "sqlite"
	KindGdata  Kind = "gdata"
	KindMemory Kind = "memory"
)

// ParseKind converts a flag value to a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindSQLite, KindGdata, KindMemory:
		return k, nil
	case "":
		return KindSQLite, nil
	default:
		return "", fmt.Errorf("storage: unknown store kind %q (want sqlite, gdata or memory)", s)
	}
}

// OpenKind opens a store of the given kind. location is the database path
// for sqlite and the application name for gdata; memory ignores it.
func OpenKind(kind Kind, location string) (Store, error) {
	switch kind {
	case KindSQLite:
		return Open(location)
	case KindGdata:
		return OpenGdata(location)
	case KindMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("storage: unknown store kind %q", kind)
	}
}

// ranksAbove orders clears by score, then most recent first.
func ranksAbove(a, b ClearRecord) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
