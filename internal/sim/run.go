// Package sim is the starhop gameplay simulation: platform, enemy and player
// motion, collision outcomes and the per-attempt run state machine.
//
// A Run advances in fixed ticks. Each Step samples one InputFrame and runs,
// in order: player motion, enemy motion, platform motion and collision
// resolution. Nothing inside a tick is concurrent and nothing is scheduled
// across ticks; every timed behavior compares elapsed simulation time.
package sim

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starhop/internal/config"
	"github.com/vovakirdan/starhop/internal/core"
	"github.com/vovakirdan/starhop/internal/level"
	"github.com/vovakirdan/starhop/internal/storage"
)

var (
	// ErrNotRestartable is returned by Restart after the level was cleared.
	ErrNotRestartable = errors.New("sim: a cleared run cannot be restarted")
	// ErrCharacterLocked is returned when the agile character is not unlocked yet.
	ErrCharacterLocked = errors.New("sim: character is locked")
)

// Phase is the state of a run.
type Phase int

const (
	PhasePlaying Phase = iota // Simulation advancing
	PhaseFailed               // Hit an enemy or fell; waiting for restart
	PhaseCleared              // Reached the goal; waiting for return to menu
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseFailed:
		return "failed"
	case PhaseCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase freezes the simulation.
func (p Phase) Terminal() bool {
	return p != PhasePlaying
}

// ProgressStore is the slice of the progress store a run needs.
type ProgressStore interface {
	LevelProgress(levelID int) (storage.Progress, error)
	RecordClear(levelID, score int) error
	DebugMode() (bool, error)
}

// StepResult reports what a tick did.
type StepResult struct {
	Phase  Phase
	Events []Event
	// Err is set when persisting a clear failed. The outcome still stands.
	Err error
}

// Star is a collectible instance.
type Star struct {
	Pos       core.Vec
	Collected bool
}

// Run owns one attempt at one level.
type Run struct {
	desc      level.Descriptor
	character core.Character
	store     ProgressStore
	tuning    config.Tuning
	logger    *log.Logger
	sink      Sink

	world   core.Rect
	dt      time.Duration
	elapsed time.Duration
	ticks   int
	phase   Phase
	paused  bool
	score   int
	cause   FailCause

	player    Player
	platforms []*Platform
	enemies   []*Enemy
	stars     []Star
	goal      core.Rect

	events []Event
}

// Option configures a Run.
type Option func(*Run)

// WithLogger sets the logger for state transitions.
func WithLogger(l *log.Logger) Option {
	return func(r *Run) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithTuning replaces the default tuning.
func WithTuning(t config.Tuning) Option {
	return func(r *Run) {
		r.tuning = t
	}
}

// WithSink forwards every event to s as it is raised.
func WithSink(s Sink) Option {
	return func(r *Run) {
		r.sink = s
	}
}

// NewRun validates the level and character and starts a fresh attempt.
// store may be nil, in which case clears are not persisted and every
// character is available.
func NewRun(d level.Descriptor, character core.Character, store ProgressStore, opts ...Option) (*Run, error) {
	r := &Run{
		desc:      d,
		character: character,
		store:     store,
		tuning:    config.DefaultTuning(),
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.tuning.Validate(); err != nil {
		return nil, err
	}
	if err := level.Validate(d); err != nil {
		return nil, err
	}
	for i, e := range d.Enemies {
		if e.Type != level.EnemyVertical {
			continue
		}
		if reach := e.Y + e.Amplitude(r.tuning.Enemies.VerticalRange); reach > d.Height {
			return nil, &level.ConfigError{
				Code:    level.CodeOutOfBounds,
				Field:   fmt.Sprintf("enemies[%d].range", i),
				Message: fmt.Sprintf("vertical reach %v lies below the world height %v", reach, d.Height),
			}
		}
	}

	if character == "" {
		r.character = core.CharacterStandard
	}
	if r.character != core.CharacterStandard && r.character != core.CharacterAgile {
		return nil, fmt.Errorf("sim: unknown character %q", character)
	}
	ok, err := CharacterUnlocked(store, r.tuning, r.character)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s needs levels %v cleared", ErrCharacterLocked, r.character, r.tuning.Unlock.AgileRequires)
	}

	r.dt = r.tuning.TickInterval()
	r.world = d.Bounds()
	r.reset()
	return r, nil
}

// CharacterUnlocked reports whether c may be played. The standard character
// is always available; the agile one needs the unlock levels cleared unless
// debug mode is on.
func CharacterUnlocked(store ProgressStore, t config.Tuning, c core.Character) (bool, error) {
	if c != core.CharacterAgile || store == nil {
		return true, nil
	}
	debug, err := store.DebugMode()
	if err != nil {
		return false, fmt.Errorf("sim: reading debug mode: %w", err)
	}
	if debug {
		return true, nil
	}
	for _, id := range t.Unlock.AgileRequires {
		p, err := store.LevelProgress(id)
		if err != nil {
			return false, fmt.Errorf("sim: reading progress for level %d: %w", id, err)
		}
		if !p.Cleared {
			return false, nil
		}
	}
	return true, nil
}

// reset rebuilds every runtime entity from the descriptor.
func (r *Run) reset() {
	t := r.tuning
	d := r.desc

	r.elapsed = 0
	r.ticks = 0
	r.phase = PhasePlaying
	r.paused = false
	r.score = 0
	r.cause = 0
	r.events = nil

	r.platforms = make([]*Platform, 0, len(d.Platforms)+1)
	for _, spec := range d.Platforms {
		r.platforms = append(r.platforms, newPlatform(spec))
	}
	if d.HasGround {
		r.platforms = append(r.platforms, newGround(d, t.Ground.CenterY, t.Ground.Height))
	}

	r.enemies = make([]*Enemy, 0, len(d.Enemies))
	for _, spec := range d.Enemies {
		r.enemies = append(r.enemies, newEnemy(spec, t))
	}

	r.stars = make([]Star, len(d.Stars))
	for i, s := range d.Stars {
		r.stars[i] = Star{Pos: s.Vec()}
	}

	r.goal = core.RectAround(d.Goal.Vec(), t.Items.GoalWidth, t.Items.GoalHeight)

	r.player = newPlayer(d.PlayerStart.Vec(), r.character)
	for i, p := range r.platforms {
		if resting(r.player.Pos, t.Player.Width, t.Player.Height, p) {
			r.player.Grounded = true
			r.player.standingOn = i
			break
		}
	}
}

// Restart discards the attempt and starts over from the descriptor.
// A cleared run hands off to the menu instead.
func (r *Run) Restart() error {
	if r.phase == PhaseCleared {
		return ErrNotRestartable
	}
	r.reset()
	r.logger.Debug("run restarted", "level", r.desc.ID)
	return nil
}

// Step advances the run by one tick.
// A pause edge toggles the pause flag; paused and terminal runs do not move.
func (r *Run) Step(in core.InputFrame) StepResult {
	r.events = nil

	if r.phase == PhasePlaying && in.Pressed(core.ActionPause) {
		r.paused = !r.paused
	}
	if r.phase.Terminal() || r.paused {
		return StepResult{Phase: r.phase}
	}

	r.ticks++
	r.elapsed += r.dt

	if n := r.player.step(in, r.tuning, r.world, r.dt); n > 0 {
		r.emit(JumpEvent{Pos: r.player.Pos, Count: n})
	}

	for _, e := range r.enemies {
		e.update(r.tuning, r.world, r.elapsed, r.dt)
	}

	window := r.tuning.CrumbleWindow()
	for i, p := range r.platforms {
		if p.update(r.elapsed, r.dt, window) {
			r.emit(CrumbleEvent{Platform: i, State: PlatformGone})
		}
	}

	err := r.resolve()
	return StepResult{Phase: r.phase, Events: r.events, Err: err}
}

// resolve applies collisions and outcomes after motion.
func (r *Run) resolve() error {
	for _, i := range r.resolvePlayer() {
		if r.platforms[i].trigger() {
			r.emit(CrumbleEvent{Platform: i, State: PlatformDecaying})
		}
	}
	r.resolveEnemies()

	if r.player.Pos.Y > r.tuning.Physics.FallThreshold {
		r.fail(CauseFall, -1)
		return nil
	}
	if i := r.hitEnemy(); i >= 0 {
		r.fail(CauseEnemy, i)
		return nil
	}

	box := r.player.Rect(r.tuning)
	size := r.tuning.Items.StarSize
	for i := range r.stars {
		s := &r.stars[i]
		if s.Collected || !box.Intersects(core.RectAround(s.Pos, size, size)) {
			continue
		}
		s.Collected = true
		r.score += r.tuning.Items.StarPoints
		r.emit(CollectEvent{Index: i, Pos: s.Pos, Score: r.score})
	}

	if box.Intersects(r.goal) {
		return r.clear()
	}
	return nil
}

func (r *Run) fail(cause FailCause, enemy int) {
	r.phase = PhaseFailed
	r.cause = cause
	r.emit(HitEvent{Cause: cause, Enemy: enemy, Pos: r.player.Pos})
	r.logger.Info("run failed", "level", r.desc.ID, "cause", cause, "tick", r.ticks)
}

func (r *Run) clear() error {
	r.phase = PhaseCleared
	r.emit(WinEvent{LevelID: r.desc.ID, Score: r.score})
	r.logger.Info("run cleared", "level", r.desc.ID, "score", r.score, "tick", r.ticks)

	if r.store == nil {
		return nil
	}
	if err := r.store.RecordClear(r.desc.ID, r.score); err != nil {
		r.logger.Warn("recording clear failed", "level", r.desc.ID, "err", err)
		return fmt.Errorf("sim: recording clear for level %d: %w", r.desc.ID, err)
	}
	return nil
}

func (r *Run) emit(e Event) {
	r.events = append(r.events, e)
	if r.sink != nil {
		r.sink.OnEvent(e)
	}
}

// Phase returns the current run phase.
func (r *Run) Phase() Phase { return r.phase }

// Score returns the score collected so far.
func (r *Run) Score() int { return r.score }

// Paused reports whether the run is paused.
func (r *Run) Paused() bool { return r.paused }

// Elapsed returns simulated time since the attempt started.
func (r *Run) Elapsed() time.Duration { return r.elapsed }

// Level returns the descriptor this run plays.
func (r *Run) Level() level.Descriptor { return r.desc }

// Character returns the character variant of this run.
func (r *Run) Character() core.Character { return r.character }

// Tuning returns the tuning in effect.
func (r *Run) Tuning() config.Tuning { return r.tuning }

// Cause returns why the run failed. Only meaningful in PhaseFailed.
func (r *Run) Cause() FailCause { return r.cause }
