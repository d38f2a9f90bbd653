package sim

import (
	"time"

	"github.com/vovakirdan/starhop/internal/core"
	"github.com/vovakirdan/starhop/internal/level"
)

// Snapshot is a read-only copy of the run state for renderers and tests.
type Snapshot struct {
	LevelID   int
	LevelName string
	World     core.Rect
	Phase     Phase
	Cause     FailCause
	Paused    bool
	Score     int
	Tick      int
	Elapsed   time.Duration
	Character core.Character

	Player    PlayerView
	Platforms []PlatformView
	Enemies   []EnemyView // live enemies only
	Stars     []StarView  // uncollected stars only
	Goal      core.Rect
}

// PlayerView describes the player.
type PlayerView struct {
	Rect     core.Rect
	Vel      core.Vec
	Grounded bool
	Jumps    int
	Facing   float64
}

// PlatformView describes one platform.
type PlatformView struct {
	Index  int
	Rect   core.Rect
	Delta  core.Vec
	Kind   level.PlatformKind
	State  PlatformState
	Decay  time.Duration
	Moving bool
	Ground bool
}

// EnemyView describes one live enemy.
type EnemyView struct {
	Index  int
	Type   level.EnemyType
	Rect   core.Rect
	Vel    core.Vec
	Origin core.Vec
}

// StarView describes one uncollected star.
type StarView struct {
	Index int
	Rect  core.Rect
}

// Snapshot copies the current state.
func (r *Run) Snapshot() Snapshot {
	t := r.tuning
	s := Snapshot{
		LevelID:   r.desc.ID,
		LevelName: r.desc.Name,
		World:     r.world,
		Phase:     r.phase,
		Cause:     r.cause,
		Paused:    r.paused,
		Score:     r.score,
		Tick:      r.ticks,
		Elapsed:   r.elapsed,
		Character: r.character,
		Player: PlayerView{
			Rect:     r.player.Rect(t),
			Vel:      r.player.Vel,
			Grounded: r.player.Grounded,
			Jumps:    r.player.Jumps,
			Facing:   r.player.Facing,
		},
		Goal: r.goal,
	}

	s.Platforms = make([]PlatformView, 0, len(r.platforms))
	for i, p := range r.platforms {
		s.Platforms = append(s.Platforms, PlatformView{
			Index:  i,
			Rect:   p.Rect(),
			Delta:  p.Delta,
			Kind:   p.Spec.Kind,
			State:  p.State,
			Decay:  p.Decay,
			Moving: p.Spec.Moving(),
			Ground: p.Ground,
		})
	}

	for i, e := range r.enemies {
		if !e.Alive {
			continue
		}
		s.Enemies = append(s.Enemies, EnemyView{
			Index:  i,
			Type:   e.Spec.Type,
			Rect:   e.Rect(t),
			Vel:    e.Vel,
			Origin: e.Origin,
		})
	}

	size := t.Items.StarSize
	for i, st := range r.stars {
		if st.Collected {
			continue
		}
		s.Stars = append(s.Stars, StarView{Index: i, Rect: core.RectAround(st.Pos, size, size)})
	}
	return s
}
