// Package audio plays short synthesized cues for simulation events.
package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/starhop/internal/sim"
)

// SampleRate is the output rate of every cue.
const SampleRate = beep.SampleRate(44100)

// Sink is a sim.Sink that plays one cue per event through the speaker.
type Sink struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	volume float64
	mixer  *beep.Mixer
	play   func(beep.Streamer)
	logger *log.Logger
	closed bool
}

var _ sim.Sink = (*Sink)(nil)

var speakerOnce struct {
	sync.Once
	err error
}

// Open initializes the speaker and returns a sink playing at volume (0..1).
func Open(volume float64, logger *log.Logger) (*Sink, error) {
	speakerOnce.Do(func() {
		speakerOnce.err = speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond))
	})
	if speakerOnce.err != nil {
		return nil, fmt.Errorf("audio: cannot initialize speaker: %w", speakerOnce.err)
	}

	mixer := &beep.Mixer{}
	speaker.Play(mixer)

	s := newSink(SampleRate, volume, func(st beep.Streamer) {
		speaker.Lock()
		mixer.Add(st)
		speaker.Unlock()
	}, logger)
	s.mixer = mixer
	return s, nil
}

func newSink(rate beep.SampleRate, volume float64, play func(beep.Streamer), logger *log.Logger) *Sink {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Sink{rate: rate, volume: volume, play: play, logger: logger}
}

// OnEvent plays the cue for e, if it has one.
func (s *Sink) OnEvent(e sim.Event) {
	cue := CueFor(e)
	if cue == CueNone {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	st := cue.Streamer(s.rate)
	s.logger.Debug("cue", "name", cue)
	s.play(newVolume(st, s.volume))
}

// Close stops everything that is still playing.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.mixer != nil {
		speaker.Lock()
		s.mixer.Clear()
		speaker.Unlock()
	}
	return nil
}
