package sim

import "github.com/vovakirdan/starhop/internal/core"

// Event is a discrete feedback signal raised during a tick.
// Presentation sinks (renderer, audio) consume events; the simulation never
// depends on what they do with them.
type Event interface {
	simEvent()
}

// JumpEvent is raised for every honored jump impulse.
type JumpEvent struct {
	Pos   core.Vec
	Count int // 1 for a ground jump, 2+ for air jumps
}

func (JumpEvent) simEvent() {}

// CollectEvent is raised when the player picks up a star.
type CollectEvent struct {
	Index int // star index in the level descriptor
	Pos   core.Vec
	Score int // score after collection
}

func (CollectEvent) simEvent() {}

// HitEvent is raised when the attempt fails.
type HitEvent struct {
	Cause FailCause
	Enemy int // enemy index, -1 for a fall
	Pos   core.Vec
}

func (HitEvent) simEvent() {}

// WinEvent is raised when the player reaches the goal.
type WinEvent struct {
	LevelID int
	Score   int
}

func (WinEvent) simEvent() {}

// CrumbleEvent is raised when a crumble platform changes state.
type CrumbleEvent struct {
	Platform int
	State    PlatformState
}

func (CrumbleEvent) simEvent() {}

// FailCause tells why an attempt failed.
type FailCause int

const (
	CauseEnemy FailCause = iota // Touched an enemy
	CauseFall                   // Fell below the floor threshold
)

func (c FailCause) String() string {
	switch c {
	case CauseEnemy:
		return "enemy"
	case CauseFall:
		return "fall"
	default:
		return "unknown"
	}
}

// Sink receives events as they are raised.
type Sink interface {
	OnEvent(e Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(e Event)

// OnEvent calls f(e).
func (f SinkFunc) OnEvent(e Event) {
	f(e)
}
