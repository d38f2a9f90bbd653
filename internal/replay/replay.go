// Package replay drives a run headlessly from a scripted input sequence.
// Level designers use it to check that a level can be cleared (or that a
// known route fails) without opening the terminal front-end.
package replay

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/starhop/internal/core"
	"github.com/vovakirdan/starhop/internal/sim"
)

// Segment holds a set of actions for a number of ticks.
type Segment struct {
	Ticks int      `yaml:"ticks"`
	Hold  []string `yaml:"hold"`
}

// Script is an ordered list of segments.
type Script []Segment

// Parse decodes and checks a YAML script.
func Parse(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	for i, seg := range s {
		if seg.Ticks <= 0 {
			return nil, fmt.Errorf("replay: segment %d: ticks must be positive, got %d", i, seg.Ticks)
		}
		for _, name := range seg.Hold {
			if core.ParseAction(name) == core.ActionNone {
				return nil, fmt.Errorf("replay: segment %d: unknown action %q", i, name)
			}
		}
	}
	return s, nil
}

// Load reads a script file.
func Load(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("replay: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Ticks returns the total number of ticks the script covers.
func (s Script) Ticks() int {
	n := 0
	for _, seg := range s {
		n += seg.Ticks
	}
	return n
}

// Result summarizes a replayed attempt.
type Result struct {
	Phase    sim.Phase
	Score    int
	Cause    sim.FailCause // meaningful when Phase is PhaseFailed
	Ticks    int           // ticks stepped before the run ended or the script ran out
	Jumps    int
	Stars    int
	Crumbles int
	Err      error // persistence failure on clear
}

// Play feeds the script to r and stops at the first terminal phase.
// Actions held across consecutive ticks produce one edge, so a held jump
// jumps once.
func Play(r *sim.Run, s Script) Result {
	sampler := core.NewInputSampler()
	var res Result

	for _, seg := range s {
		held := core.NewInputFrame()
		for _, name := range seg.Hold {
			held.Set(core.ParseAction(name))
		}
		for i := 0; i < seg.Ticks; i++ {
			step := r.Step(sampler.Sample(held))
			res.Ticks++
			res.count(step.Events)
			if step.Err != nil {
				res.Err = step.Err
			}
			if step.Phase.Terminal() {
				return res.finish(r)
			}
		}
	}
	return res.finish(r)
}

func (res *Result) count(events []sim.Event) {
	for _, e := range events {
		switch e.(type) {
		case sim.JumpEvent:
			res.Jumps++
		case sim.CollectEvent:
			res.Stars++
		case sim.CrumbleEvent:
			res.Crumbles++
		}
	}
}

func (res Result) finish(r *sim.Run) Result {
	res.Phase = r.Phase()
	res.Score = r.Score()
	res.Cause = r.Cause()
	return res
}
