package sim

import (
	"math"
	"time"

	"github.com/vovakirdan/starhop/internal/config"
	"github.com/vovakirdan/starhop/internal/core"
	"github.com/vovakirdan/starhop/internal/level"
)

// Enemy is the live instance of an enemy spec.
type Enemy struct {
	Spec      level.EnemySpec
	Pos       core.Vec
	Prev      core.Vec
	Vel       core.Vec
	Origin    core.Vec // spawn point; Origin.X anchors the patrol
	Amplitude float64  // vertical oscillation range
	Alive     bool
	Grounded  bool

	standingOn int
}

func newEnemy(spec level.EnemySpec, t config.Tuning) *Enemy {
	origin := core.V(spec.X, spec.Y)
	e := &Enemy{
		Spec:       spec,
		Pos:        origin,
		Prev:       origin,
		Origin:     origin,
		Amplitude:  spec.Amplitude(t.Enemies.VerticalRange),
		Alive:      true,
		standingOn: -1,
	}
	switch spec.Type {
	case level.EnemyGround:
		e.Vel.X = t.Enemies.GroundSpeed
	case level.EnemyFlying:
		e.Vel.X = t.Enemies.FlyingSpeed
	}
	return e
}

// Rect returns the enemy's collision box.
func (e *Enemy) Rect(t config.Tuning) core.Rect {
	return core.RectAround(e.Pos, t.Enemies.Width, t.Enemies.Height)
}

// Patrols reports whether the enemy walks a horizontal patrol.
func (e *Enemy) Patrols() bool {
	return e.Spec.Type == level.EnemyGround || e.Spec.Type == level.EnemyFlying
}

func (e *Enemy) speed(t config.Tuning) float64 {
	if e.Spec.Type == level.EnemyFlying {
		return t.Enemies.FlyingSpeed
	}
	return t.Enemies.GroundSpeed
}

// homeward returns the direction back to the patrol center.
// At the center it picks +1.
func (e *Enemy) homeward() float64 {
	if e.Pos.X > e.Origin.X {
		return -1
	}
	return 1
}

// update advances the enemy by one tick. elapsed drives vertical enemies.
func (e *Enemy) update(t config.Tuning, world core.Rect, elapsed, dt time.Duration) {
	if !e.Alive {
		return
	}
	e.Prev = e.Pos
	sec := dt.Seconds()

	switch e.Spec.Type {
	case level.EnemyVertical:
		e.Pos = core.V(e.Origin.X, e.Origin.Y+e.Amplitude*core.Oscillate(elapsed, t.VerticalPeriod()))
		e.Vel = e.Pos.Sub(e.Prev).Scale(1 / sec)

	case level.EnemyGround, level.EnemyFlying:
		if e.Spec.Type == level.EnemyGround {
			e.Vel.Y += t.Physics.Gravity * sec
		} else {
			e.Vel.Y = 0
		}
		e.patrol(t)
		e.Pos = e.Pos.Add(e.Vel.Scale(sec))
		e.Grounded = false
		e.confine(t, world)
	}

	if e.Pos.Y > t.Physics.FallThreshold {
		e.Alive = false
	}
}

// patrol turns the enemy around at the envelope edges and re-kicks a stalled
// velocity toward the patrol center.
func (e *Enemy) patrol(t config.Tuning) {
	speed := e.speed(t)
	rng := t.Enemies.PatrolRange
	switch {
	case e.Pos.X >= e.Origin.X+rng && e.Vel.X > 0:
		e.Vel.X = -speed
	case e.Pos.X <= e.Origin.X-rng && e.Vel.X < 0:
		e.Vel.X = speed
	}
	if math.Abs(e.Vel.X) < t.Enemies.StallThreshold {
		e.Vel.X = speed * e.homeward()
	}
}

// confine keeps the enemy inside its patrol envelope and the world's side
// and top edges. Side edges bounce.
func (e *Enemy) confine(t config.Tuning, world core.Rect) {
	rng := t.Enemies.PatrolRange
	half := t.Enemies.Width / 2

	if e.Pos.X > e.Origin.X+rng {
		e.Pos.X = e.Origin.X + rng
		e.Vel.X = -math.Abs(e.Vel.X)
	} else if e.Pos.X < e.Origin.X-rng {
		e.Pos.X = e.Origin.X - rng
		e.Vel.X = math.Abs(e.Vel.X)
	}

	if e.Pos.X-half < world.X {
		e.Pos.X = world.X + half
		e.Vel.X = math.Abs(e.Vel.X)
	} else if e.Pos.X+half > world.Right() {
		e.Pos.X = world.Right() - half
		e.Vel.X = -math.Abs(e.Vel.X)
	}

	if top := e.Pos.Y - t.Enemies.Height/2; top < world.Y {
		e.Pos.Y = world.Y + t.Enemies.Height/2
		if e.Vel.Y < 0 {
			e.Vel.Y = 0
		}
	}
}
