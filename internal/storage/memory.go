package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/starhop/internal/core"
)

// document is the whole persisted state of a key/value backed store.
type document struct {
	Levels    map[int]Progress `yaml:"levels"`
	History   []ClearRecord    `yaml:"history"`
	NextID    int64            `yaml:"next_id"`
	Character core.Character   `yaml:"character"`
	Language  string           `yaml:"language"`
	Debug     bool             `yaml:"debug"`
}

func (d document) clone() document {
	out := d
	out.Levels = make(map[int]Progress, len(d.Levels))
	for k, v := range d.Levels {
		out.Levels[k] = v
	}
	out.History = append([]ClearRecord(nil), d.History...)
	return out
}

// MemoryStore keeps progress in memory. It is safe for concurrent use.
// GdataStore reuses it with a persist hook that writes every change through.
type MemoryStore struct {
	mu      sync.Mutex
	doc     document
	persist func(document) error
	now     func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return newMemoryStore(document{}, nil)
}

func newMemoryStore(doc document, persist func(document) error) *MemoryStore {
	if doc.Levels == nil {
		doc.Levels = make(map[int]Progress)
	}
	return &MemoryStore{doc: doc, persist: persist, now: time.Now}
}

// update applies fn to a copy of the document and keeps it only if it was
// persisted.
func (s *MemoryStore) update(fn func(d *document)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.clone()
	fn(&next)
	if s.persist != nil {
		if err := s.persist(next); err != nil {
			return err
		}
	}
	s.doc = next
	return nil
}

// LevelProgress returns the stored progress of a level.
func (s *MemoryStore) LevelProgress(levelID int) (Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.doc.Levels[levelID]
	if !ok {
		return Progress{LevelID: levelID}, nil
	}
	return p, nil
}

// RecordClear marks the level cleared, keeps the max score and appends history.
func (s *MemoryStore) RecordClear(levelID, score int) error {
	return s.update(func(d *document) {
		p := d.Levels[levelID]
		p.LevelID = levelID
		p.Cleared = true
		p.HighScore = max(p.HighScore, score)
		d.Levels[levelID] = p

		d.NextID++
		d.History = append(d.History, ClearRecord{
			ID:        d.NextID,
			LevelID:   levelID,
			Score:     score,
			CreatedAt: s.now().UTC(),
		})
	})
}

// SetCleared overrides the cleared flag.
func (s *MemoryStore) SetCleared(levelID int, cleared bool) error {
	return s.update(func(d *document) {
		p := d.Levels[levelID]
		p.LevelID = levelID
		p.Cleared = cleared
		d.Levels[levelID] = p
	})
}

// AllProgress returns every stored level ordered by id.
func (s *MemoryStore) AllProgress() ([]Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Progress, 0, len(s.doc.Levels))
	for _, p := range s.doc.Levels {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LevelID < out[j].LevelID })
	return out, nil
}

// ClearHistory returns the top N clears of a level.
func (s *MemoryStore) ClearHistory(levelID, limit int) ([]ClearRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	s.mu.Lock()
	var out []ClearRecord
	for _, c := range s.doc.History {
		if c.LevelID == levelID {
			out = append(out, c)
		}
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return ranksAbove(out[i], out[j]) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Character returns the selected character, standard by default.
func (s *MemoryStore) Character() (core.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc.Character == "" {
		return core.CharacterStandard, nil
	}
	return s.doc.Character, nil
}

// SetCharacter stores the selected character.
func (s *MemoryStore) SetCharacter(c core.Character) error {
	return s.update(func(d *document) { d.Character = c })
}

// Language returns the UI language code.
func (s *MemoryStore) Language() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc.Language == "" {
		return DefaultLanguage, nil
	}
	return s.doc.Language, nil
}

// SetLanguage stores the UI language code.
func (s *MemoryStore) SetLanguage(code string) error {
	return s.update(func(d *document) { d.Language = code })
}

// DebugMode reports whether debug mode is on.
func (s *MemoryStore) DebugMode() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Debug, nil
}

// SetDebugMode toggles debug mode.
func (s *MemoryStore) SetDebugMode(on bool) error {
	return s.update(func(d *document) { d.Debug = on })
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
