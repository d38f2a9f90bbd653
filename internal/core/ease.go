package core

import (
	"math"
	"time"
)

// PingPong maps a phase in [0, 1) onto a sinusoidal there-and-back curve.
// It returns 0 at phase 0, rises to exactly 1 at phase 0.5 and falls back to 0,
// so each half is a sine ease-in-out leg.
func PingPong(phase float64) float64 {
	if phase <= 0 || phase >= 1 {
		return 0
	}
	if phase == 0.5 {
		return 1
	}
	return (1 - math.Cos(2*math.Pi*phase)) / 2
}

// CyclePhase returns how far elapsed is into the current period, in [0, 1).
// A non-positive period yields 0.
func CyclePhase(elapsed, period time.Duration) float64 {
	if period <= 0 {
		return 0
	}
	t := elapsed % period
	if t < 0 {
		t += period
	}
	return float64(t) / float64(period)
}

// Oscillate returns the ping-pong factor for elapsed time over a full
// round-trip period.
func Oscillate(elapsed, period time.Duration) float64 {
	return PingPong(CyclePhase(elapsed, period))
}
