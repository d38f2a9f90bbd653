package sim

import (
	"time"

	"github.com/vovakirdan/starhop/internal/core"
	"github.com/vovakirdan/starhop/internal/level"
)

// PlatformState is the crumble sub-state of a platform.
// Non-crumble platforms stay Intact forever.
type PlatformState int

const (
	PlatformIntact   PlatformState = iota // Solid, untouched
	PlatformDecaying                      // Solid, wobbling until the window elapses
	PlatformGone                          // Permanently non-collidable
)

func (s PlatformState) String() string {
	switch s {
	case PlatformIntact:
		return "intact"
	case PlatformDecaying:
		return "decaying"
	case PlatformGone:
		return "gone"
	default:
		return "unknown"
	}
}

// Platform is the live instance of a platform spec.
type Platform struct {
	Spec   level.PlatformSpec
	Pos    core.Vec // current center
	Prev   core.Vec // center on the previous tick
	Delta  core.Vec // Pos - Prev
	State  PlatformState
	Decay  time.Duration // time spent decaying
	Ground bool          // the full-width ground strip, not part of the descriptor
}

func newPlatform(spec level.PlatformSpec) *Platform {
	c := spec.Center()
	return &Platform{Spec: spec, Pos: c, Prev: c}
}

func newGround(d level.Descriptor, centerY, height float64) *Platform {
	spec := level.PlatformSpec{X: d.Width / 2, Y: centerY, W: d.Width, H: height}
	p := newPlatform(spec)
	p.Ground = true
	return p
}

// PlatformAt returns where a platform's center is after elapsed time.
// Static platforms stay at their spawn; moving platforms travel spawn ->
// spawn+offset -> spawn once per period with a sinusoidal ease.
func PlatformAt(spec level.PlatformSpec, elapsed time.Duration) core.Vec {
	spawn := spec.Center()
	if spec.Move == nil {
		return spawn
	}
	f := core.Oscillate(elapsed, spec.Move.Period())
	return spawn.Add(spec.Move.Offset().Scale(f))
}

// Rect returns the collision box at the current position.
func (p *Platform) Rect() core.Rect {
	return core.RectAround(p.Pos, p.Spec.W, p.Spec.H)
}

// PrevRect returns the collision box at the previous position.
func (p *Platform) PrevRect() core.Rect {
	return core.RectAround(p.Prev, p.Spec.W, p.Spec.H)
}

// Solid reports whether the platform still takes part in collision.
func (p *Platform) Solid() bool {
	return p.State != PlatformGone
}

// Crumbles reports whether the platform is a crumble platform.
func (p *Platform) Crumbles() bool {
	return p.Spec.Kind == level.PlatformCrumble
}

// update moves the platform to its position at elapsed and advances decay.
// It reports whether the platform turned Gone on this tick.
func (p *Platform) update(elapsed, dt, window time.Duration) bool {
	p.Prev = p.Pos
	p.Pos = PlatformAt(p.Spec, elapsed)
	p.Delta = p.Pos.Sub(p.Prev)

	if p.State != PlatformDecaying {
		return false
	}
	p.Decay += dt
	if p.Decay >= window {
		p.State = PlatformGone
		return true
	}
	return false
}

// trigger starts decay on an intact crumble platform.
// Only the first call has an effect.
func (p *Platform) trigger() bool {
	if !p.Crumbles() || p.State != PlatformIntact {
		return false
	}
	p.State = PlatformDecaying
	return true
}
