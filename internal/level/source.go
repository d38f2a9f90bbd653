package level

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound is returned when a level index or id does not exist.
var ErrNotFound = errors.New("level: not found")

// Source is a read-only, ordered collection of levels.
type Source interface {
	// Get returns the level at a zero-based index.
	Get(index int) (Descriptor, error)
	// Len returns the number of levels.
	Len() int
	// All returns every level in order.
	All() []Descriptor
}

// ListSource is a Source backed by an in-memory slice, sorted by level id.
type ListSource struct {
	levels []Descriptor
}

// NewListSource validates the given levels and orders them by id.
// Duplicate ids are rejected.
func NewListSource(levels ...Descriptor) (*ListSource, error) {
	sorted := make([]Descriptor, len(levels))
	copy(sorted, levels)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	for i, d := range sorted {
		if err := Validate(d); err != nil {
			return nil, fmt.Errorf("level %d (%s): %w", d.ID, d.Name, err)
		}
		if i > 0 && sorted[i-1].ID == d.ID {
			return nil, configErr(CodeDuplicateID, "id", "level id %d is defined twice", d.ID)
		}
	}
	return &ListSource{levels: sorted}, nil
}

// Get returns the level at index.
func (s *ListSource) Get(index int) (Descriptor, error) {
	if index < 0 || index >= len(s.levels) {
		return Descriptor{}, fmt.Errorf("%w: index %d (have %d levels)", ErrNotFound, index, len(s.levels))
	}
	return s.levels[index], nil
}

// Len returns the number of levels.
func (s *ListSource) Len() int {
	return len(s.levels)
}

// All returns a copy of the level list.
func (s *ListSource) All() []Descriptor {
	out := make([]Descriptor, len(s.levels))
	copy(out, s.levels)
	return out
}

// IndexOf returns the index of the level with the given id.
func IndexOf(src Source, id int) (int, error) {
	for i, d := range src.All() {
		if d.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// ByID returns the level with the given id.
func ByID(src Source, id int) (Descriptor, error) {
	idx, err := IndexOf(src, id)
	if err != nil {
		return Descriptor{}, err
	}
	return src.Get(idx)
}

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Builtin returns the levels shipped with the binary.
func Builtin() (*ListSource, error) {
	return loadFS(builtinFS, "builtin")
}

// LoadDir loads every .yaml/.yml file under root (recursively).
// Any unreadable or invalid file fails the whole load, naming the file.
func LoadDir(root string) (*ListSource, error) {
	var levels []Descriptor

	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsLevelFile(p) {
			return nil
		}
		lvl, err := LoadFile(p)
		if err != nil {
			return err
		}
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("level: walking directory %s: %w", root, err)
	}

	return NewListSource(levels...)
}

// LoadFile loads a single level file.
func LoadFile(p string) (Descriptor, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Descriptor{}, fmt.Errorf("level: reading file %s: %w", p, err)
	}
	d, err := Parse(data)
	if err != nil {
		return Descriptor{}, fmt.Errorf("level: parsing file %s: %w", p, err)
	}
	return d, nil
}

// IsLevelFile reports whether a path has a level file extension.
func IsLevelFile(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	return ext == ".yaml" || ext == ".yml"
}

func loadFS(fsys fs.FS, dir string) (*ListSource, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("level: reading %s: %w", dir, err)
	}

	levels := make([]Descriptor, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !IsLevelFile(e.Name()) {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("level: reading %s: %w", e.Name(), err)
		}
		d, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("level: parsing %s: %w", e.Name(), err)
		}
		levels = append(levels, d)
	}
	return NewListSource(levels...)
}
