package level

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const minimalLevel = `
id: 7
name: Test
width: 800
height: 600
playerStart: {x: 100, y: 450}
goal: {x: 700, y: 450}
`

func TestParseMinimalDefaults(t *testing.T) {
	d, err := Parse([]byte(minimalLevel))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if !d.HasGround {
		t.Error("hasGround should default to true")
	}
	if d.ID != 7 || d.Name != "Test" {
		t.Errorf("got id=%d name=%q", d.ID, d.Name)
	}
	if d.PlayerStart != (Point{X: 100, Y: 450}) {
		t.Errorf("playerStart = %+v", d.PlayerStart)
	}
	if b := d.Bounds(); b.W != 800 || b.H != 600 {
		t.Errorf("Bounds() = %+v", b)
	}
}

func TestParseKindsAndTypes(t *testing.T) {
	doc := minimalLevel + `
platforms:
  - {x: 200, y: 400, w: 100, h: 20}
  - {x: 300, y: 400, w: 100, h: 20, kind: crumble}
  - {x: 400, y: 400, w: 100, h: 20, move: {x: 200, duration: 2000}}
enemies:
  - {x: 100, y: 100}
  - {x: 200, y: 100, type: flying}
  - {x: 300, y: 100, type: vertical, range: 150}
`
	d, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if d.Platforms[0].Kind != PlatformStatic || d.Platforms[0].Moving() {
		t.Errorf("platform 0 = %+v, expected static", d.Platforms[0])
	}
	if d.Platforms[1].Kind != PlatformCrumble {
		t.Errorf("platform 1 kind = %v, expected crumble", d.Platforms[1].Kind)
	}
	mv := d.Platforms[2].Move
	if mv == nil || mv.DX != 200 || mv.DY != 0 || mv.Duration != 2000 {
		t.Fatalf("platform 2 move = %+v", mv)
	}
	if mv.Period() != 4*time.Second {
		t.Errorf("Period() = %v, expected 4s", mv.Period())
	}

	wantTypes := []EnemyType{EnemyGround, EnemyFlying, EnemyVertical}
	for i, want := range wantTypes {
		if d.Enemies[i].Type != want {
			t.Errorf("enemy %d type = %v, expected %v", i, d.Enemies[i].Type, want)
		}
	}
	if got := d.Enemies[0].Amplitude(200); got != 200 {
		t.Errorf("default amplitude = %v", got)
	}
	if got := d.Enemies[2].Amplitude(200); got != 150 {
		t.Errorf("explicit amplitude = %v", got)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	base := "id: 1\nname: T\nwidth: 800\nheight: 600\n"
	pts := "playerStart: {x: 100, y: 450}\ngoal: {x: 700, y: 450}\n"

	tests := []struct {
		name string
		doc  string
		code string
	}{
		{"missing start", base + "goal: {x: 700, y: 450}\n", CodeMissingField},
		{"missing goal", base + "playerStart: {x: 100, y: 450}\n", CodeMissingField},
		{"missing name", "id: 1\nwidth: 800\nheight: 600\n" + pts, CodeMissingField},
		{"zero id", "id: 0\nname: T\nwidth: 800\nheight: 600\n" + pts, CodeMissingField},
		{"no world size", "id: 1\nname: T\n" + pts, CodeBadSize},
		{"goal outside", base + "playerStart: {x: 100, y: 450}\ngoal: {x: 900, y: 450}\n", CodeOutOfBounds},
		{"zero size platform", base + pts + "platforms:\n  - {x: 100, y: 100, w: 0, h: 20}\n", CodeBadSize},
		{"unknown kind", base + pts + "platforms:\n  - {x: 100, y: 100, w: 50, h: 20, kind: lava}\n", CodeBadKind},
		{"zero duration", base + pts + "platforms:\n  - {x: 100, y: 100, w: 50, h: 20, move: {x: 10, duration: 0}}\n", CodeBadMove},
		{"zero offset", base + pts + "platforms:\n  - {x: 100, y: 100, w: 50, h: 20, move: {duration: 1000}}\n", CodeBadMove},
		{"move leaves world", base + pts + "platforms:\n  - {x: 700, y: 100, w: 50, h: 20, move: {x: 200, duration: 1000}}\n", CodeOutOfBounds},
		{"star outside", base + pts + "stars:\n  - {x: -5, y: 10}\n", CodeOutOfBounds},
		{"unknown enemy", base + pts + "enemies:\n  - {x: 100, y: 100, type: boss}\n", CodeBadEnemyType},
		{"zero range", base + pts + "enemies:\n  - {x: 100, y: 100, type: vertical, range: 0}\n", CodeBadRange},
		{"negative range", base + pts + "enemies:\n  - {x: 100, y: 100, type: vertical, range: -20}\n", CodeBadRange},
		{"vertical reach outside", base + pts + "enemies:\n  - {x: 100, y: 500, type: vertical, range: 150}\n", CodeOutOfBounds},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			if err == nil {
				t.Fatal("expected an error")
			}
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("error %v is not a *ConfigError", err)
			}
			if cerr.Code != tc.code {
				t.Errorf("code = %s, expected %s (%v)", cerr.Code, tc.code, err)
			}
		})
	}
}

func TestBuiltinLevels(t *testing.T) {
	src, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() failed: %v", err)
	}
	if src.Len() != 6 {
		t.Fatalf("expected 6 builtin levels, got %d", src.Len())
	}

	for i, d := range src.All() {
		if d.ID != i+1 {
			t.Errorf("level at index %d has id %d", i, d.ID)
		}
		if d.Width != 2400 || d.Height != 600 {
			t.Errorf("level %d size = %vx%v", d.ID, d.Width, d.Height)
		}
	}

	l4, err := ByID(src, 4)
	if err != nil {
		t.Fatal(err)
	}
	if l4.HasGround {
		t.Error("level 4 should have no ground")
	}
	l1, _ := src.Get(0)
	if !l1.HasGround || len(l1.Stars) != 7 || len(l1.Enemies) != 4 {
		t.Errorf("level 1 = ground:%v stars:%d enemies:%d", l1.HasGround, len(l1.Stars), len(l1.Enemies))
	}
}

func TestSourceNotFound(t *testing.T) {
	src, err := Builtin()
	if err != nil {
		t.Fatal(err)
	}
	for _, idx := range []int{-1, src.Len(), 100} {
		if _, err := src.Get(idx); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%d) error = %v, expected ErrNotFound", idx, err)
		}
	}
	if _, err := ByID(src, 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("ByID(99) error = %v, expected ErrNotFound", err)
	}
}

func TestNewListSourceRejectsDuplicates(t *testing.T) {
	d, err := Parse([]byte(minimalLevel))
	if err != nil {
		t.Fatal(err)
	}
	_, err = NewListSource(d, d)
	var cerr *ConfigError
	if !errors.As(err, &cerr) || cerr.Code != CodeDuplicateID {
		t.Fatalf("expected DUPLICATE_ID, got %v", err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	second := strings.Replace(minimalLevel, "id: 7", "id: 3", 1)
	files := map[string]string{
		"b.yaml":       minimalLevel,
		"nested/a.yml": second,
		"notes.txt":    "not a level",
	}
	for name, body := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	src, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() failed: %v", err)
	}
	if src.Len() != 2 {
		t.Fatalf("expected 2 levels, got %d", src.Len())
	}
	first, _ := src.Get(0)
	if first.ID != 3 {
		t.Errorf("levels are not sorted by id: first id %d", first.ID)
	}
}

func TestLoadDirFailsOnInvalidFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("id: 1\nname: x\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadDir(dir)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "bad.yaml") {
		t.Errorf("error %q does not name the file", err)
	}
}

func TestWatcherReportsLevelWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	p := filepath.Join(dir, "edit.yaml")
	if err := os.WriteFile(p, []byte(minimalLevel), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if filepath.Base(name) != "edit.yaml" {
			t.Errorf("event for %q", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event for level write")
	}
}
