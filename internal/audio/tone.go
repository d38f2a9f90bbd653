package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
)

// GainCurve is how the gain moves from its start to its end value.
type GainCurve int

const (
	GainLinear GainCurve = iota
	GainExponential
)

// Tone describes one oscillator voice: a frequency ramp and a gain ramp over
// a fixed duration.
type Tone struct {
	Wave      Wave
	From, To  float64 // Hz, ramped linearly
	GainStart float64
	GainEnd   float64
	Curve     GainCurve
	Duration  time.Duration
}

// tone streams a Tone.
type tone struct {
	Tone
	rate  beep.SampleRate
	total int
	pos   int
	phase float64
}

// NewTone returns a streamer that plays t once at the given sample rate.
func NewTone(t Tone, rate beep.SampleRate) beep.Streamer {
	return &tone{Tone: t, rate: rate, total: rate.N(t.Duration)}
}

func (o *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.pos >= o.total {
			return i, i > 0
		}

		progress := float64(o.pos) / float64(o.total)
		freq := o.From + (o.To-o.From)*progress

		var val float64
		switch o.Wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		}
		val *= o.gain(progress)

		samples[i][0] = val
		samples[i][1] = val

		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *tone) Err() error { return nil }

func (o *tone) gain(progress float64) float64 {
	if o.Curve == GainExponential && o.GainStart > 0 && o.GainEnd > 0 {
		return o.GainStart * math.Pow(o.GainEnd/o.GainStart, progress)
	}
	return o.GainStart + (o.GainEnd-o.GainStart)*progress
}

// newVolume scales s by a linear factor. Zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
