package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/starhop/internal/sim"
)

// Cue is one feedback sound.
type Cue int

const (
	CueNone Cue = iota
	CueJump
	CueCollect
	CueHit
	CueWin
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueCollect:
		return "collect"
	case CueHit:
		return "hit"
	case CueWin:
		return "win"
	default:
		return "none"
	}
}

// CueFor maps a simulation event to its cue. Crumbling is silent.
func CueFor(e sim.Event) Cue {
	switch e.(type) {
	case sim.JumpEvent:
		return CueJump
	case sim.CollectEvent:
		return CueCollect
	case sim.HitEvent:
		return CueHit
	case sim.WinEvent:
		return CueWin
	default:
		return CueNone
	}
}

// Win arpeggio, C5 E5 G5 then a held C6.
var winNotes = []struct {
	freq float64
	dur  time.Duration
}{
	{523.25, 100 * time.Millisecond},
	{659.25, 100 * time.Millisecond},
	{783.99, 100 * time.Millisecond},
	{1046.50, 400 * time.Millisecond},
}

// Tones returns the voices that make up a cue, played back to back.
func (c Cue) Tones() []Tone {
	switch c {
	case CueJump:
		return []Tone{{
			Wave: WaveSquare, From: 150, To: 300,
			GainStart: 0.1, GainEnd: 0.01, Curve: GainExponential,
			Duration: 100 * time.Millisecond,
		}}
	case CueCollect:
		// One exponential fade over 200ms, split where the pitch jumps.
		mid := 0.1 * 0.31622776601683794
		return []Tone{
			{Wave: WaveSine, From: 600, To: 600, GainStart: 0.1, GainEnd: mid, Curve: GainExponential, Duration: 100 * time.Millisecond},
			{Wave: WaveSine, From: 1200, To: 1200, GainStart: mid, GainEnd: 0.01, Curve: GainExponential, Duration: 100 * time.Millisecond},
		}
	case CueHit:
		return []Tone{{
			Wave: WaveSaw, From: 100, To: 50,
			GainStart: 0.2, GainEnd: 0.01, Curve: GainExponential,
			Duration: 300 * time.Millisecond,
		}}
	case CueWin:
		tones := make([]Tone, 0, len(winNotes))
		for _, n := range winNotes {
			tones = append(tones, Tone{
				Wave: WaveSquare, From: n.freq, To: n.freq,
				GainStart: 0.1, GainEnd: 0, Curve: GainLinear,
				Duration: n.dur,
			})
		}
		return tones
	default:
		return nil
	}
}

// Duration is the total length of the cue.
func (c Cue) Duration() time.Duration {
	var d time.Duration
	for _, t := range c.Tones() {
		d += t.Duration
	}
	return d
}

// Streamer builds a fresh streamer for the cue, or nil for CueNone.
func (c Cue) Streamer(rate beep.SampleRate) beep.Streamer {
	tones := c.Tones()
	if len(tones) == 0 {
		return nil
	}
	parts := make([]beep.Streamer, len(tones))
	for i, t := range tones {
		parts[i] = NewTone(t, rate)
	}
	return beep.Seq(parts...)
}
