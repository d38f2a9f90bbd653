package sim

import (
	"github.com/vovakirdan/starhop/internal/core"
	"github.com/vovakirdan/starhop/internal/level"
)

// contactEps absorbs float drift when comparing a body's previous bottom
// against a platform's previous top.
const contactEps = 0.01

// contact is the side of a platform a body was pushed out of.
type contact int

const (
	contactNone   contact = iota
	contactTop            // landed on the platform
	contactBottom         // bumped its head
	contactSide           // pushed out horizontally
)

// collideSolid separates a w×h body from a solid platform.
// The side is chosen from where the body and platform were on the previous
// tick, so a fast body cannot tunnel into the wrong face.
func collideSolid(pos, vel *core.Vec, prev core.Vec, w, h float64, p *Platform) contact {
	box := core.RectAround(*pos, w, h)
	rect := p.Rect()
	if !box.Intersects(rect) {
		return contactNone
	}

	prevBox := core.RectAround(prev, w, h)
	prevRect := p.PrevRect()

	switch {
	case prevBox.Bottom() <= prevRect.Y+contactEps:
		pos.Y = rect.Y - h/2
		if vel.Y > 0 {
			vel.Y = 0
		}
		return contactTop

	case prevBox.Y >= prevRect.Bottom()-contactEps:
		pos.Y = rect.Bottom() + h/2
		if vel.Y < 0 {
			vel.Y = 0
		}
		return contactBottom

	default:
		if pos.X < rect.Center().X {
			pos.X = rect.X - w/2
		} else {
			pos.X = rect.Right() + w/2
		}
		return contactSide
	}
}

// resting reports whether a body sits exactly on top of the platform.
func resting(pos core.Vec, w, h float64, p *Platform) bool {
	box := core.RectAround(pos, w, h)
	rect := p.Rect()
	if box.Right() <= rect.X || box.X >= rect.Right() {
		return false
	}
	d := box.Bottom() - rect.Y
	return d >= -contactEps && d <= contactEps
}

// resolvePlayer carries the player along with the platform it stood on and
// pushes it out of every solid platform. It returns the platforms landed on.
func (r *Run) resolvePlayer() []int {
	pl := &r.player
	w, h := r.tuning.Player.Width, r.tuning.Player.Height

	if i := pl.standingOn; i >= 0 && r.platforms[i].Solid() {
		pl.Pos = pl.Pos.Add(r.platforms[i].Delta)
	}

	pl.standingOn = -1
	var landed []int
	for i, p := range r.platforms {
		if !p.Solid() {
			continue
		}
		switch collideSolid(&pl.Pos, &pl.Vel, pl.Prev, w, h, p) {
		case contactTop:
			if pl.Vel.Y >= 0 {
				pl.Grounded = true
			}
			pl.standingOn = i
			landed = append(landed, i)
		case contactSide:
			pl.Vel.X = 0
		}
	}
	return landed
}

// resolveEnemies lands ground enemies on platforms and bounces them off
// platform sides. Flying and vertical enemies pass through platforms.
func (r *Run) resolveEnemies() {
	w, h := r.tuning.Enemies.Width, r.tuning.Enemies.Height
	for _, e := range r.enemies {
		if !e.Alive || e.Spec.Type != level.EnemyGround {
			continue
		}
		if i := e.standingOn; i >= 0 && r.platforms[i].Solid() {
			e.Pos = e.Pos.Add(r.platforms[i].Delta)
		}
		e.standingOn = -1
		for i, p := range r.platforms {
			if !p.Solid() {
				continue
			}
			switch collideSolid(&e.Pos, &e.Vel, e.Prev, w, h, p) {
			case contactTop:
				e.Grounded = true
				e.standingOn = i
			case contactSide:
				e.Vel.X = -e.Vel.X
			}
		}
		e.confine(r.tuning, r.world)
	}
}

// hitEnemy returns the index of the first live enemy overlapping the player.
func (r *Run) hitEnemy() int {
	box := r.player.Rect(r.tuning)
	for i, e := range r.enemies {
		if e.Alive && box.Intersects(e.Rect(r.tuning)) {
			return i
		}
	}
	return -1
}
