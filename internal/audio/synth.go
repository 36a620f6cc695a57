package audio

import (
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Config controls sound output.
type Config struct {
	Enabled    bool
	Volume     float64 // master volume in [0, 1]
	SampleRate int
}

// Synth synthesizes effects and mixes them into the speaker.
type Synth struct {
	mu      sync.Mutex
	cfg     Config
	rate    beep.SampleRate
	mixer   *beep.Mixer
	started bool
}

// NewSynth creates a synthesizer. Nothing is played until Start succeeds.
func NewSynth(cfg Config) *Synth {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 44100
	}
	return &Synth{
		cfg:   cfg,
		rate:  beep.SampleRate(cfg.SampleRate),
		mixer: &beep.Mixer{},
	}
}

// Start opens the speaker and begins streaming the mixer.
func (s *Synth) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if err := speaker.Init(s.rate, s.rate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.started = true
	return nil
}

// Play queues the effect on the mixer and returns immediately.
func (s *Synth) Play(snd Sound) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	st := Effect(snd, s.rate, s.cfg.Volume)
	if st == nil {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close silences everything still playing.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.started = false
}

var errDisabled = errors.New("audio disabled")

// Open returns the player for cfg. When audio is disabled or the speaker
// cannot be opened it falls back to silence and logs why.
func Open(cfg Config, logger *log.Logger) Player {
	if !cfg.Enabled {
		logger.Debug("sound off", "reason", errDisabled)
		return Nop{}
	}
	synth := NewSynth(cfg)
	if err := synth.Start(); err != nil {
		logger.Warn("audio unavailable, continuing without sound", "err", err)
		return Nop{}
	}
	logger.Debug("audio started", "rate", cfg.SampleRate, "volume", cfg.Volume)
	return synth
}
