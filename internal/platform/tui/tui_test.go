package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/starhop/internal/config"
	"github.com/vovakirdan/starhop/internal/core"
	"github.com/vovakirdan/starhop/internal/level"
	"github.com/vovakirdan/starhop/internal/sim"
	"github.com/vovakirdan/starhop/internal/storage"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func flatLevel() level.Descriptor {
	return level.Descriptor{
		ID:          1,
		Name:        "Flat",
		Width:       1200,
		Height:      600,
		HasGround:   true,
		PlayerStart: level.Point{X: 100, Y: 544},
		Goal:        level.Point{X: 1150, Y: 100},
	}
}

func pitLevel() level.Descriptor {
	d := flatLevel()
	d.HasGround = false
	d.PlayerStart = level.Point{X: 100, Y: 100}
	return d
}

func testEnv(t *testing.T, levels ...level.Descriptor) Env {
	t.Helper()
	src, err := level.NewListSource(levels...)
	if err != nil {
		t.Fatalf("NewListSource() failed: %v", err)
	}
	cfg := core.DefaultConfig()
	cfg.ScreenH = 22
	return Env{
		Levels:  src,
		Store:   storage.NewMemoryStore(),
		Tuning:  config.DefaultTuning(),
		Runtime: cfg,
	}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
		quit bool
	}{
		{"q quits", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"space", runeKey(' '), core.ActionJump, false},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump, false},
		{"p", runeKey('p'), core.ActionPause, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionMenu, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, quit := km.MapKey(tc.msg)
			if got != tc.want || quit != tc.quit {
				t.Errorf("MapKey() = (%v, %v), expected (%v, %v)", got, quit, tc.want, tc.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionCharacter},
		{runeKey('p'), MenuActionProgress},
		{runeKey('c'), MenuActionToggleCleared},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
	}
	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
		}
	}
}

func TestCanvasClipsAndClears(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(-1, 0, 'x', ColorRed)
	c.Set(4, 0, 'x', ColorRed)
	c.Set(0, 2, 'x', ColorRed)
	if c.String() != "    \n    " {
		t.Fatalf("out of bounds writes leaked: %q", c.String())
	}

	c.Text(2, 1, "abc", ColorGreen)
	if c.Row(1) != "  ab" {
		t.Errorf("Row(1) = %q", c.Row(1))
	}
	if c.At(2, 1).Color != ColorGreen {
		t.Errorf("color = %v", c.At(2, 1).Color)
	}

	c.Clear()
	if c.At(2, 1) != blank {
		t.Error("Clear() left a cell behind")
	}

	neg := NewCanvas(-3, -1)
	if neg.Width() != 0 || neg.Height() != 0 || neg.String() != "" {
		t.Error("negative canvas should be empty")
	}
}

func TestRenderCanvasKeepsText(t *testing.T) {
	c := NewCanvas(6, 1)
	c.Text(0, 0, "ab", ColorRed)
	c.Text(2, 0, "cd", ColorRed)
	c.Text(4, 0, "ef", ColorGreen)
	out := RenderCanvas(c)
	for _, want := range []string{"abcd", "ef"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered %q is missing %q", out, want)
		}
	}
}

func TestCameraFollowsAndClamps(t *testing.T) {
	world := core.NewRect(0, 0, 2400, 600)
	tests := []struct {
		name  string
		focus float64
		want  float64
	}{
		{"left edge", 100, 0},
		{"middle", 1200, 600},
		{"right edge", 2300, 1200},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cam := NewCamera(world, 80, 20, core.V(tc.focus, 300))
			if cam.ScaleY != 30 || cam.ScaleX != 15 {
				t.Fatalf("scale = (%v, %v), expected (15, 30)", cam.ScaleX, cam.ScaleY)
			}
			if cam.X != tc.want {
				t.Errorf("camera x = %v, expected %v", cam.X, tc.want)
			}
		})
	}

	wide := NewCamera(core.NewRect(0, 0, 1200, 600), 200, 20, core.V(1100, 300))
	if wide.X != 0 {
		t.Errorf("a view wider than the world should not scroll, x = %v", wide.X)
	}
}

func TestCameraCellsCoverThinRects(t *testing.T) {
	cam := Camera{ScaleX: 15, ScaleY: 30}
	x0, y0, x1, y1 := cam.Cells(core.NewRect(16, 31, 2, 2))
	if x0 != 1 || x1 != 1 || y0 != 1 || y1 != 1 {
		t.Errorf("Cells() = (%d,%d)-(%d,%d), expected a single cell at (1,1)", x0, y0, x1, y1)
	}
}

func TestDrawWorldPlacesPlayerOnGround(t *testing.T) {
	r, err := sim.NewRun(flatLevel(), core.CharacterStandard, nil)
	if err != nil {
		t.Fatal(err)
	}
	c := NewCanvas(80, 20)
	DrawWorld(c, r.Snapshot())

	// Player rect (84,528)-(116,560) at 15x30 pixels per cell.
	for x := 5; x <= 7; x++ {
		if got := c.At(x, 17).Rune; got != '@' {
			t.Errorf("cell (%d,17) = %q, expected the player", x, got)
		}
	}
	if got := c.At(0, 19).Rune; got != '▓' {
		t.Errorf("cell (0,19) = %q, expected ground", got)
	}
	if got := c.At(20, 10).Rune; got != ' ' {
		t.Errorf("cell (20,10) = %q, expected sky", got)
	}
}

func TestHeldKeysWindow(t *testing.T) {
	h := newHeldKeys()
	h.press(core.ActionRight, 0)
	for tick := 1; tick < firstHoldTicks; tick++ {
		if !h.frame(tick).Has(core.ActionRight) {
			t.Fatalf("right released early at tick %d", tick)
		}
	}
	if h.frame(firstHoldTicks).Has(core.ActionRight) {
		t.Error("right still held after the first hold window")
	}

	h.press(core.ActionRight, 20)
	h.press(core.ActionRight, 22) // auto repeat
	if !h.frame(22 + repeatHoldTicks - 1).Has(core.ActionRight) {
		t.Error("right released before the repeat window ended")
	}
	if h.frame(22 + repeatHoldTicks).Has(core.ActionRight) {
		t.Error("a repeat should hold only for the repeat window")
	}

	h.press(core.ActionLeft, 30)
	f := h.frame(31)
	if f.Has(core.ActionRight) || !f.Has(core.ActionLeft) {
		t.Error("pressing left must cancel right")
	}
}

func TestHeldKeysEdgesLastOneTick(t *testing.T) {
	h := newHeldKeys()
	h.press(core.ActionJump, 5)
	f := h.frame(6)
	if !f.Pressed(core.ActionJump) || !f.Has(core.ActionJump) {
		t.Fatal("jump press should be an edge on the next frame")
	}
	if h.frame(7).Has(core.ActionJump) {
		t.Error("jump should not stay held")
	}
}

func TestGameModelTicksAndIgnoresStaleLoops(t *testing.T) {
	env := testEnv(t, flatLevel())
	m, err := NewGameModel(env, flatLevel(), core.CharacterStandard)
	if err != nil {
		t.Fatalf("NewGameModel() failed: %v", err)
	}

	model, _ := m.Update(TickMsg{Gen: m.gen + 1000})
	m = model.(GameModel)
	if m.Run().Elapsed() != 0 {
		t.Fatal("a tick from another loop advanced the run")
	}

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = model.(GameModel)
	for i := 0; i < 10; i++ {
		model, _ = m.Update(TickMsg{Gen: m.gen})
		m = model.(GameModel)
	}
	if m.Run().Elapsed() == 0 {
		t.Fatal("ticks did not advance the run")
	}
	if x := m.Run().Snapshot().Player.Rect.Center().X; x <= 100 {
		t.Errorf("player x = %v, expected to move right", x)
	}
	if !strings.Contains(m.View(), "@") {
		t.Error("view does not show the player")
	}
}

func TestGameModelRestartAfterFall(t *testing.T) {
	env := testEnv(t, pitLevel())
	m, err := NewGameModel(env, pitLevel(), core.CharacterStandard)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 300 && m.Run().Phase() == sim.PhasePlaying; i++ {
		model, _ := m.Update(TickMsg{Gen: m.gen})
		m = model.(GameModel)
	}
	if m.Run().Phase() != sim.PhaseFailed {
		t.Fatalf("phase = %v, expected failed", m.Run().Phase())
	}

	model, _ := m.Update(runeKey('r'))
	m = model.(GameModel)
	if m.Run().Phase() != sim.PhasePlaying || m.Run().Elapsed() != 0 {
		t.Errorf("restart left phase %v elapsed %v", m.Run().Phase(), m.Run().Elapsed())
	}

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = model.(GameModel)
	if !m.BackToMenu() {
		t.Error("esc should return to stage select")
	}
}

func TestMenuRefusesLockedCharacter(t *testing.T) {
	env := testEnv(t, flatLevel())
	m := NewMenuModel(env)

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = model.(MenuModel)
	if m.Character() != core.CharacterAgile {
		t.Fatalf("character = %v after tab", m.Character())
	}
	if c, _ := env.Store.Character(); c != core.CharacterAgile {
		t.Error("character choice was not saved")
	}

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(MenuModel)
	if m.Selected() != nil {
		t.Error("a locked character must not start a level")
	}
	if m.note == "" {
		t.Error("expected an unlock hint")
	}

	for _, id := range []int{1, 2, 3} {
		if err := env.Store.SetCleared(id, true); err != nil {
			t.Fatal(err)
		}
	}
	m = NewMenuModel(env)
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(MenuModel)
	if m.Selected() == nil || m.Selected().Level.ID != 1 {
		t.Error("an unlocked character should start the level")
	}
}

func TestMenuTogglesClearedInDebugMode(t *testing.T) {
	env := testEnv(t, flatLevel())

	m := NewMenuModel(env)
	model, _ := m.Update(runeKey('c'))
	m = model.(MenuModel)
	if p, _ := env.Store.LevelProgress(1); p.Cleared {
		t.Fatal("cleared toggled without debug mode")
	}

	if err := env.Store.SetDebugMode(true); err != nil {
		t.Fatal(err)
	}
	m = NewMenuModel(env)
	model, _ = m.Update(runeKey('c'))
	m = model.(MenuModel)
	if p, _ := env.Store.LevelProgress(1); !p.Cleared {
		t.Error("debug toggle did not mark the level cleared")
	}
	if !m.items[0].Progress.Cleared {
		t.Error("menu did not refresh after the toggle")
	}
}

func TestSessionFlow(t *testing.T) {
	env := testEnv(t, flatLevel())
	s := NewSessionModel(env, "tester")

	model, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = model.(SessionModel)
	if s.screen != screenGame {
		t.Fatalf("screen = %v after selecting a stage", s.screen)
	}

	model, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = model.(SessionModel)
	if s.screen != screenMenu {
		t.Fatalf("screen = %v after leaving the game", s.screen)
	}

	model, _ = s.Update(runeKey('p'))
	s = model.(SessionModel)
	if s.screen != screenScoreboard {
		t.Fatalf("screen = %v after asking for progress", s.screen)
	}
	if !strings.Contains(s.View(), "Flat") {
		t.Error("progress board does not name the stage")
	}

	model, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = model.(SessionModel)
	if s.screen != screenMenu {
		t.Errorf("screen = %v after leaving the board", s.screen)
	}
}
