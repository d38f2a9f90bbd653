package sim

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/vovakirdan/starhop/internal/core"
	"github.com/vovakirdan/starhop/internal/level"
	"github.com/vovakirdan/starhop/internal/storage"
)

// flatLevel is a 1200-wide level with ground and the player resting on it.
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

func newTestRun(t *testing.T, d level.Descriptor, c core.Character, store ProgressStore, opts ...Option) *Run {
	t.Helper()
	r, err := NewRun(d, c, store, opts...)
	if err != nil {
		t.Fatalf("NewRun() failed: %v", err)
	}
	return r
}

func jumpFrame(held ...core.Action) core.InputFrame {
	f := core.HeldFrame(held...)
	f.Set(core.ActionJump)
	f.Press(core.ActionJump)
	return f
}

func pauseFrame() core.InputFrame {
	f := core.NewInputFrame()
	f.Press(core.ActionPause)
	return f
}

func countJumps(events []Event) []int {
	var out []int
	for _, e := range events {
		if j, ok := e.(JumpEvent); ok {
			out = append(out, j.Count)
		}
	}
	return out
}

// stepUntil steps with in until the run leaves Playing or max ticks pass.
func stepUntil(r *Run, in core.InputFrame, max int) (StepResult, int) {
	var res StepResult
	for i := 1; i <= max; i++ {
		res = r.Step(in)
		if res.Phase != PhasePlaying {
			return res, i
		}
	}
	return res, max
}

func TestNewRunStartsGrounded(t *testing.T) {
	r := newTestRun(t, flatLevel(), core.CharacterStandard, nil)
	s := r.Snapshot()
	if s.Phase != PhasePlaying || s.Score != 0 || s.Tick != 0 {
		t.Errorf("initial snapshot = phase %v score %d tick %d", s.Phase, s.Score, s.Tick)
	}
	if !s.Player.Grounded {
		t.Error("player placed on the ground should start grounded")
	}
	if n := len(s.Platforms); n != 1 || !s.Platforms[0].Ground {
		t.Errorf("expected only the ground strip, got %d platforms", n)
	}
}

func TestScenarioWalkIntoEnemyFails(t *testing.T) {
	src, err := level.Builtin()
	if err != nil {
		t.Fatal(err)
	}
	d, err := src.Get(0)
	if err != nil {
		t.Fatal(err)
	}
	r := newTestRun(t, d, core.CharacterStandard, nil)

	right := core.HeldFrame(core.ActionRight)
	for i := 0; i < 1200; i++ {
		res := r.Step(right)
		s := r.Snapshot()
		if res.Phase == PhaseFailed {
			if s.Cause != CauseEnemy {
				t.Fatalf("failed by %v, expected an enemy hit", s.Cause)
			}
			var hit *HitEvent
			for _, e := range res.Events {
				if h, ok := e.(HitEvent); ok {
					hit = &h
				}
			}
			if hit == nil || hit.Enemy < 0 {
				t.Fatalf("missing enemy HitEvent in %v", res.Events)
			}
			return
		}
		for _, e := range s.Enemies {
			if s.Player.Rect.Intersects(e.Rect) {
				t.Fatalf("tick %d: player overlaps enemy %d but the run is still playing", i, e.Index)
			}
		}
	}
	t.Fatal("walking right never hit an enemy")
}

func TestScenarioReachGoalClears(t *testing.T) {
	d := flatLevel()
	d.Stars = []level.Point{{X: 300, Y: 544}}
	d.Goal = level.Point{X: 500, Y: 530}
	store := storage.NewMemoryStore()

	var sunk []Event
	r := newTestRun(t, d, core.CharacterStandard, store, WithSink(SinkFunc(func(e Event) {
		sunk = append(sunk, e)
	})))

	var all []Event
	right := core.HeldFrame(core.ActionRight)
	var res StepResult
	for i := 0; i < 600 && res.Phase == PhasePlaying; i++ {
		res = r.Step(right)
		all = append(all, res.Events...)
	}
	if res.Phase != PhaseCleared {
		t.Fatalf("phase = %v, expected cleared", res.Phase)
	}
	if res.Err != nil {
		t.Fatalf("unexpected persist error: %v", res.Err)
	}
	if r.Score() != 10 {
		t.Errorf("score = %d, expected 10", r.Score())
	}
	if !reflect.DeepEqual(all, sunk) {
		t.Errorf("sink saw %v, results carried %v", sunk, all)
	}

	last := all[len(all)-1]
	if w, ok := last.(WinEvent); !ok || w.Score != 10 || w.LevelID != 1 {
		t.Errorf("last event = %#v, expected WinEvent{1, 10}", last)
	}

	p, err := store.LevelProgress(1)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Cleared || p.HighScore != 10 {
		t.Errorf("progress = %+v, expected cleared with 10", p)
	}

	before := r.Snapshot()
	res = r.Step(right)
	if len(res.Events) != 0 || !reflect.DeepEqual(before, r.Snapshot()) {
		t.Error("a cleared run must stay frozen")
	}
	if err := r.Restart(); !errors.Is(err, ErrNotRestartable) {
		t.Errorf("Restart() after clear = %v, expected ErrNotRestartable", err)
	}
}

func TestScenarioCarryFollowsPlatform(t *testing.T) {
	d := flatLevel()
	d.HasGround = false
	d.PlayerStart = level.Point{X: 400, Y: 474}
	d.Platforms = []level.PlatformSpec{
		{X: 400, Y: 500, W: 200, H: 20, Move: &level.MoveSpec{DX: 200, Duration: 2000}},
	}
	r := newTestRun(t, d, core.CharacterStandard, nil)

	idle := core.NewInputFrame()
	ticksPerLeg := 120 // 2000ms at 60 ticks/s

	check := func(wantDX float64) {
		t.Helper()
		s := r.Snapshot()
		playerDX := s.Player.Rect.Center().X - 400
		platformDX := s.Platforms[0].Rect.Center().X - 400
		if math.Abs(playerDX-platformDX) > 1e-6 {
			t.Errorf("player moved %v but platform moved %v", playerDX, platformDX)
		}
		if math.Abs(playerDX-wantDX) > 0.01 {
			t.Errorf("carry displacement = %v, expected %v", playerDX, wantDX)
		}
		if !s.Player.Grounded {
			t.Error("player fell off the moving platform")
		}
	}

	for i := 0; i < ticksPerLeg; i++ {
		r.Step(idle)
	}
	check(200)

	for i := 0; i < ticksPerLeg; i++ {
		r.Step(idle)
	}
	check(0)

	if r.Phase() != PhasePlaying {
		t.Errorf("phase = %v", r.Phase())
	}
}

func TestScenarioCrumbleThenFall(t *testing.T) {
	d := flatLevel()
	d.HasGround = false
	d.PlayerStart = level.Point{X: 400, Y: 464}
	d.Platforms = []level.PlatformSpec{
		{X: 300, Y: 500, W: 100, H: 40},
		{X: 400, Y: 490, W: 100, H: 20, Kind: level.PlatformCrumble},
	}
	r := newTestRun(t, d, core.CharacterStandard, nil)

	res := r.Step(core.NewInputFrame())
	found := false
	for _, e := range res.Events {
		if c, ok := e.(CrumbleEvent); ok && c.Platform == 1 && c.State == PlatformDecaying {
			found = true
		}
	}
	if !found {
		t.Fatalf("landing on the crumble platform did not start decay: %v", res.Events)
	}

	// Step back onto the solid ledge.
	left := core.HeldFrame(core.ActionLeft)
	for i := 0; i < 20; i++ {
		r.Step(left)
	}
	if x := r.Snapshot().Player.Rect.Right(); x > 350 {
		t.Fatalf("player still over the crumble platform (right edge %v)", x)
	}

	idle := core.NewInputFrame()
	for i := 0; i < 100 && r.Snapshot().Platforms[1].State != PlatformGone; i++ {
		r.Step(idle)
	}
	pv := r.Snapshot().Platforms[1]
	if pv.State != PlatformGone {
		t.Fatalf("crumble platform state = %v, expected gone", pv.State)
	}
	if pv.Decay < r.Tuning().CrumbleWindow() {
		t.Errorf("gone after %v, before the %v window", pv.Decay, r.Tuning().CrumbleWindow())
	}
	if r.Phase() != PhasePlaying {
		t.Fatalf("phase = %v while waiting on the ledge", r.Phase())
	}

	res, _ = stepUntil(r, core.HeldFrame(core.ActionRight), 300)
	if res.Phase != PhaseFailed || r.Cause() != CauseFall {
		t.Fatalf("phase = %v cause = %v, expected a fall", res.Phase, r.Cause())
	}
}

func TestDoubleJump(t *testing.T) {
	t.Run("agile", func(t *testing.T) {
		store := storage.NewMemoryStore()
		if err := store.SetDebugMode(true); err != nil {
			t.Fatal(err)
		}
		r := newTestRun(t, flatLevel(), core.CharacterAgile, store)
		dt := r.Tuning().TickInterval().Seconds()

		if got := countJumps(r.Step(jumpFrame()).Events); !reflect.DeepEqual(got, []int{1}) {
			t.Fatalf("ground jump events = %v", got)
		}
		if got := countJumps(r.Step(jumpFrame()).Events); !reflect.DeepEqual(got, []int{2}) {
			t.Fatalf("air jump events = %v", got)
		}
		vy := r.Snapshot().Player.Vel.Y
		if math.Abs(vy-(-400+800*dt)) > 1e-9 {
			t.Errorf("vy after air jump = %v", vy)
		}

		if got := countJumps(r.Step(jumpFrame()).Events); len(got) != 0 {
			t.Fatalf("third jump was honored: %v", got)
		}
		if v := r.Snapshot().Player.Vel.Y; math.Abs(v-(vy+800*dt)) > 1e-9 {
			t.Errorf("third jump changed velocity: %v", v)
		}

		idle := core.NewInputFrame()
		for i := 0; i < 300 && !r.Snapshot().Player.Grounded; i++ {
			r.Step(idle)
		}
		if !r.Snapshot().Player.Grounded {
			t.Fatal("player never landed")
		}
		if got := countJumps(r.Step(jumpFrame()).Events); !reflect.DeepEqual(got, []int{1}) {
			t.Errorf("jump after landing = %v, expected a fresh ground jump", got)
		}
	})

	t.Run("standard", func(t *testing.T) {
		r := newTestRun(t, flatLevel(), core.CharacterStandard, nil)
		if got := countJumps(r.Step(jumpFrame()).Events); !reflect.DeepEqual(got, []int{1}) {
			t.Fatalf("ground jump events = %v", got)
		}
		if v := r.Snapshot().Player.Vel.Y; v >= -580 {
			t.Errorf("standard jump impulse too weak: vy=%v", v)
		}
		for i := 0; i < 5; i++ {
			if got := countJumps(r.Step(jumpFrame()).Events); len(got) != 0 {
				t.Fatalf("standard character jumped in mid-air: %v", got)
			}
		}
	})

	t.Run("held jump is not an edge", func(t *testing.T) {
		r := newTestRun(t, flatLevel(), core.CharacterStandard, nil)
		held := core.HeldFrame(core.ActionJump)
		for i := 0; i < 10; i++ {
			if got := countJumps(r.Step(held).Events); len(got) != 0 {
				t.Fatalf("held jump without an edge jumped: %v", got)
			}
		}
	})
}

func TestRestartRebuildsEverything(t *testing.T) {
	d := flatLevel()
	d.HasGround = false
	d.PlayerStart = level.Point{X: 100, Y: 100}
	d.Stars = []level.Point{{X: 100, Y: 300}}
	d.Platforms = []level.PlatformSpec{
		{X: 600, Y: 400, W: 100, H: 20, Kind: level.PlatformCrumble},
		{X: 900, Y: 400, W: 100, H: 20, Move: &level.MoveSpec{DY: -100, Duration: 1000}},
	}
	d.Enemies = []level.EnemySpec{{X: 900, Y: 100, Type: level.EnemyFlying}}
	r := newTestRun(t, d, core.CharacterStandard, nil)
	fresh := r.Snapshot()

	res, _ := stepUntil(r, core.NewInputFrame(), 300)
	if res.Phase != PhaseFailed || r.Cause() != CauseFall {
		t.Fatalf("phase = %v cause = %v, expected a fall", res.Phase, r.Cause())
	}
	if r.Score() != 10 {
		t.Fatalf("score = %d, expected the star on the way down", r.Score())
	}

	frozen := r.Snapshot()
	if res := r.Step(core.HeldFrame(core.ActionRight)); len(res.Events) != 0 {
		t.Errorf("failed run raised events: %v", res.Events)
	}
	if !reflect.DeepEqual(frozen, r.Snapshot()) {
		t.Error("a failed run must stay frozen")
	}

	if err := r.Restart(); err != nil {
		t.Fatalf("Restart() failed: %v", err)
	}
	if !reflect.DeepEqual(fresh, r.Snapshot()) {
		t.Errorf("restart did not rebuild the attempt:\n got %+v\nwant %+v", r.Snapshot(), fresh)
	}
}

func TestPauseFreezesTime(t *testing.T) {
	r := newTestRun(t, flatLevel(), core.CharacterStandard, nil)

	r.Step(pauseFrame())
	if !r.Paused() {
		t.Fatal("pause edge did not pause")
	}
	before := r.Snapshot()
	for i := 0; i < 30; i++ {
		r.Step(core.HeldFrame(core.ActionRight))
	}
	if !reflect.DeepEqual(before, r.Snapshot()) {
		t.Error("paused run advanced")
	}

	r.Step(pauseFrame())
	if r.Paused() {
		t.Fatal("second pause edge did not resume")
	}
	if r.Elapsed() != r.Tuning().TickInterval() {
		t.Errorf("elapsed = %v, expected exactly one tick", r.Elapsed())
	}
}

func TestCharacterLock(t *testing.T) {
	d := flatLevel()

	locked := storage.NewMemoryStore()
	if _, err := NewRun(d, core.CharacterAgile, locked); !errors.Is(err, ErrCharacterLocked) {
		t.Errorf("fresh store: error = %v, expected ErrCharacterLocked", err)
	}
	if _, err := NewRun(d, core.CharacterStandard, locked); err != nil {
		t.Errorf("standard must always be playable: %v", err)
	}

	partial := storage.NewMemoryStore()
	partial.RecordClear(1, 0)
	partial.RecordClear(2, 0)
	if _, err := NewRun(d, core.CharacterAgile, partial); !errors.Is(err, ErrCharacterLocked) {
		t.Errorf("two of three cleared: error = %v, expected ErrCharacterLocked", err)
	}
	partial.RecordClear(3, 0)
	if _, err := NewRun(d, core.CharacterAgile, partial); err != nil {
		t.Errorf("levels 1-3 cleared: %v", err)
	}

	debug := storage.NewMemoryStore()
	debug.SetDebugMode(true)
	if _, err := NewRun(d, core.CharacterAgile, debug); err != nil {
		t.Errorf("debug mode should bypass the lock: %v", err)
	}

	if _, err := NewRun(d, core.CharacterAgile, nil); err != nil {
		t.Errorf("no store means nothing is locked: %v", err)
	}
	if _, err := NewRun(d, core.Character("pirate"), nil); err == nil {
		t.Error("unknown character accepted")
	}
}

func TestNewRunRejectsInvalidLevel(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *level.Descriptor)
		code   string
	}{
		{"zero width", func(d *level.Descriptor) { d.Width = 0 }, level.CodeBadSize},
		{"negative range", func(d *level.Descriptor) {
			r := -5.0
			d.Enemies = []level.EnemySpec{{X: 300, Y: 100, Type: level.EnemyVertical, Range: &r}}
		}, level.CodeBadRange},
		{"default vertical reach leaves world", func(d *level.Descriptor) {
			d.Enemies = []level.EnemySpec{{X: 300, Y: 500, Type: level.EnemyVertical}}
		}, level.CodeOutOfBounds},
		{"zero-size moving platform", func(d *level.Descriptor) {
			d.Platforms = []level.PlatformSpec{{X: 300, Y: 300, Move: &level.MoveSpec{DX: 50, Duration: 500}}}
		}, level.CodeBadSize},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := flatLevel()
			tc.mutate(&d)
			_, err := NewRun(d, core.CharacterStandard, nil)
			var cerr *level.ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("error = %v, expected a *level.ConfigError", err)
			}
			if cerr.Code != tc.code {
				t.Errorf("code = %s, expected %s", cerr.Code, tc.code)
			}
		})
	}
}

type failingStore struct {
	*storage.MemoryStore
}

func (failingStore) RecordClear(int, int) error {
	return errors.New("disk full")
}

func TestClearSurvivesPersistFailure(t *testing.T) {
	d := flatLevel()
	d.Goal = level.Point{X: 200, Y: 530}
	r := newTestRun(t, d, core.CharacterStandard, failingStore{storage.NewMemoryStore()})

	res, _ := stepUntil(r, core.HeldFrame(core.ActionRight), 300)
	if res.Phase != PhaseCleared {
		t.Fatalf("phase = %v, expected cleared", res.Phase)
	}
	if res.Err == nil {
		t.Error("expected the persist failure on StepResult.Err")
	}
}

func TestDeterministicReplay(t *testing.T) {
	src, err := level.Builtin()
	if err != nil {
		t.Fatal(err)
	}
	d, err := level.ByID(src, 6)
	if err != nil {
		t.Fatal(err)
	}

	script := func(i int) core.InputFrame {
		var f core.InputFrame
		switch {
		case i%120 < 80:
			f = core.HeldFrame(core.ActionRight)
		case i%120 < 90:
			f = core.HeldFrame(core.ActionLeft)
		default:
			f = core.NewInputFrame()
		}
		if i%45 == 0 {
			f.Set(core.ActionJump)
			f.Press(core.ActionJump)
		}
		return f
	}

	play := func() ([]Snapshot, [][]Event) {
		r := newTestRun(t, d, core.CharacterAgile, nil)
		var snaps []Snapshot
		var events [][]Event
		for i := 0; i < 900; i++ {
			res := r.Step(script(i))
			snaps = append(snaps, r.Snapshot())
			events = append(events, res.Events)
			if res.Phase == PhaseFailed {
				if err := r.Restart(); err != nil {
					t.Fatal(err)
				}
			}
		}
		return snaps, events
	}

	s1, e1 := play()
	s2, e2 := play()
	for i := range s1 {
		if !reflect.DeepEqual(s1[i], s2[i]) {
			t.Fatalf("tick %d: snapshots diverged", i)
		}
		if !reflect.DeepEqual(e1[i], e2[i]) {
			t.Fatalf("tick %d: events diverged", i)
		}
	}
}

func TestStaticPlatformsHaveZeroDelta(t *testing.T) {
	src, err := level.Builtin()
	if err != nil {
		t.Fatal(err)
	}
	d, err := level.ByID(src, 6)
	if err != nil {
		t.Fatal(err)
	}
	r := newTestRun(t, d, core.CharacterStandard, nil)

	moved := false
	idle := core.NewInputFrame()
	for i := 0; i < 600; i++ {
		r.Step(idle)
		for _, p := range r.Snapshot().Platforms {
			if !p.Moving && !p.Delta.IsZero() {
				t.Fatalf("tick %d: static platform %d moved by %+v", i, p.Index, p.Delta)
			}
			if p.Moving && !p.Delta.IsZero() {
				moved = true
			}
		}
	}
	if !moved {
		t.Error("moving platforms never moved")
	}
}
