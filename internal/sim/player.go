package sim

import (
	"time"

	"github.com/vovakirdan/starhop/internal/config"
	"github.com/vovakirdan/starhop/internal/core"
)

// Player is the player-controlled body.
type Player struct {
	Pos       core.Vec
	Prev      core.Vec
	Vel       core.Vec
	Character core.Character
	Grounded  bool
	Jumps     int     // jumps used since last grounded
	Facing    float64 // -1 or 1, last horizontal direction

	standingOn int // platform index carried from the previous tick, -1 if none
}

func newPlayer(start core.Vec, c core.Character) Player {
	return Player{
		Pos:        start,
		Prev:       start,
		Character:  c,
		Facing:     1,
		standingOn: -1,
	}
}

// Rect returns the player's collision box.
func (p *Player) Rect(t config.Tuning) core.Rect {
	return core.RectAround(p.Pos, t.Player.Width, t.Player.Height)
}

// step applies input, gravity and integration. It returns the jump number
// honored this tick, or 0 if no jump happened.
func (p *Player) step(in core.InputFrame, t config.Tuning, world core.Rect, dt time.Duration) int {
	p.Prev = p.Pos
	sec := dt.Seconds()

	if p.Grounded && p.Vel.Y >= 0 {
		p.Jumps = 0
	}

	dir := in.Horizontal()
	p.Vel.X = dir * t.Player.RunSpeed
	if dir != 0 {
		p.Facing = dir
	}

	jumped := 0
	if in.Pressed(core.ActionJump) {
		switch {
		case p.Grounded:
			p.Vel.Y = t.JumpImpulse(p.Character)
			p.Jumps = 1
			jumped = p.Jumps
		case p.Character.CanDoubleJump() && p.Jumps < t.Player.MaxJumps:
			p.Vel.Y = t.JumpImpulse(p.Character)
			p.Jumps++
			jumped = p.Jumps
		}
	}

	p.Vel.Y += t.Physics.Gravity * sec
	p.Pos = p.Pos.Add(p.Vel.Scale(sec))
	p.Grounded = false

	halfW, halfH := t.Player.Width/2, t.Player.Height/2
	p.Pos.X = core.ClampF(p.Pos.X, world.X+halfW, world.Right()-halfW)
	if p.Pos.Y < world.Y+halfH {
		p.Pos.Y = world.Y + halfH
		if p.Vel.Y < 0 {
			p.Vel.Y = 0
		}
	}
	return jumped
}
