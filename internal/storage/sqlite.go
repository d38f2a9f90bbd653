package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/starhop/internal/core"
)

// Setting keys in the settings table.
const (
	keyCharacter = "character"
	keyLanguage  = "language"
	keyDebug     = "debug"
)

// SQLiteStore keeps progress in a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*SQLiteStore, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS progress (
			level_id INTEGER PRIMARY KEY,
			cleared INTEGER NOT NULL DEFAULT 0,
			high_score INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS clears (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id INTEGER NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_clears_top ON clears(level_id, score DESC);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LevelProgress returns the stored progress of a level.
func (s *SQLiteStore) LevelProgress(levelID int) (Progress, error) {
	p := Progress{LevelID: levelID}
	err := s.db.QueryRow(
		"SELECT cleared, high_score FROM progress WHERE level_id = ?",
		levelID,
	).Scan(&p.Cleared, &p.HighScore)

	if errors.Is(err, sql.ErrNoRows) {
		return p, nil
	}
	if err != nil {
		return Progress{}, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	return p, nil
}

// RecordClear upserts the level as cleared with the max of both scores and
// appends the clear to the history, in one transaction.
func (s *SQLiteStore) RecordClear(levelID, score int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO progress (level_id, cleared, high_score) VALUES (?, 1, ?)
		 ON CONFLICT(level_id) DO UPDATE SET
		   cleared = 1,
		   high_score = MAX(progress.high_score, excluded.high_score),
		   updated_at = CURRENT_TIMESTAMP`,
		levelID, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record clear: %w", err)
	}

	_, err = tx.Exec("INSERT INTO clears (level_id, score) VALUES (?, ?)", levelID, score)
	if err != nil {
		return fmt.Errorf("storage: cannot append clear history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}

// SetCleared overrides the cleared flag.
func (s *SQLiteStore) SetCleared(levelID int, cleared bool) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (level_id, cleared, high_score) VALUES (?, ?, 0)
		 ON CONFLICT(level_id) DO UPDATE SET
		   cleared = excluded.cleared,
		   updated_at = CURRENT_TIMESTAMP`,
		levelID, boolInt(cleared),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot set cleared: %w", err)
	}
	return nil
}

// AllProgress returns every stored level ordered by id.
func (s *SQLiteStore) AllProgress() ([]Progress, error) {
	rows, err := s.db.Query("SELECT level_id, cleared, high_score FROM progress ORDER BY level_id")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	defer rows.Close()

	var out []Progress
	for rows.Next() {
		var p Progress
		if err := rows.Scan(&p.LevelID, &p.Cleared, &p.HighScore); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// ClearHistory retrieves the top N clears of a level.
// Results are ordered by score descending.
func (s *SQLiteStore) ClearHistory(levelID, limit int) ([]ClearRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, score, created_at
		 FROM clears
		 WHERE level_id = ?
		 ORDER BY score DESC, created_at DESC, id DESC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query clears: %w", err)
	}
	defer rows.Close()

	var entries []ClearRecord
	for rows.Next() {
		var e ClearRecord
		var createdAt any
		if err := rows.Scan(&e.ID, &e.LevelID, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// Character returns the selected character, standard by default.
func (s *SQLiteStore) Character() (core.Character, error) {
	v, ok, err := s.setting(keyCharacter)
	if err != nil || !ok {
		return core.CharacterStandard, err
	}
	c, err := core.ParseCharacter(v)
	if err != nil {
		return core.CharacterStandard, nil
	}
	return c, nil
}

// SetCharacter stores the selected character.
func (s *SQLiteStore) SetCharacter(c core.Character) error {
	return s.setSetting(keyCharacter, c.String())
}

// Language returns the UI language code.
func (s *SQLiteStore) Language() (string, error) {
	v, ok, err := s.setting(keyLanguage)
	if err != nil || !ok {
		return DefaultLanguage, err
	}
	return v, nil
}

// SetLanguage stores the UI language code.
func (s *SQLiteStore) SetLanguage(code string) error {
	return s.setSetting(keyLanguage, code)
}

// DebugMode reports whether debug mode is on.
func (s *SQLiteStore) DebugMode() (bool, error) {
	v, ok, err := s.setting(keyDebug)
	if err != nil || !ok {
		return false, err
	}
	on, err := strconv.ParseBool(v)
	if err != nil {
		return false, nil
	}
	return on, nil
}

// SetDebugMode toggles debug mode.
func (s *SQLiteStore) SetDebugMode(on bool) error {
	return s.setSetting(keyDebug, strconv.FormatBool(on))
}

func (s *SQLiteStore) setting(key string) (string, bool, error) {
	var v string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot query setting %s: %w", key, err)
	}
	return v, true, nil
}

func (s *SQLiteStore) setSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save setting %s: %w", key, err)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// parseTimestamp handles both time.Time and string datetimes from the driver.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
