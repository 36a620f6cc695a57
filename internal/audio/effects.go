package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveTriangle
)

// oscillator generates a tone that glides linearly from freq to endFreq.
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// newOscillator creates a fixed-pitch tone.
func newOscillator(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return newSweep(freq, freq, d, wave, rate)
}

// newSweep creates a tone gliding from one pitch to another.
func newSweep(from, to float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     from,
		endFreq:  to,
		duration: rate.N(d),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
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
		case WaveTriangle:
			val = 4.0*math.Abs(o.phase-0.5) - 1.0
		}

		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*t
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.releaseSamples > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume is made silent instead.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// note is a shaped tone.
func note(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return newEnvelope(newOscillator(freq, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

// jumpSound is a short rising square chirp.
func jumpSound(rate beep.SampleRate) beep.Streamer {
	d := 120 * time.Millisecond
	return newEnvelope(newSweep(330, 660, d, WaveSquare, rate), d, 5*time.Millisecond, 60*time.Millisecond, rate)
}

// coinSound is the classic two-note chime (B5 then E6).
func coinSound(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		note(987.77, 70*time.Millisecond, WaveSquare, rate),
		note(1318.51, 220*time.Millisecond, WaveSquare, rate),
	)
}

// gameOverSound is a falling saw line over a low sine.
func gameOverSound(rate beep.SampleRate) beep.Streamer {
	d := 700 * time.Millisecond
	line := beep.Seq(
		note(392.00, 180*time.Millisecond, WaveSaw, rate),
		note(311.13, 180*time.Millisecond, WaveSaw, rate),
		note(261.63, 340*time.Millisecond, WaveSaw, rate),
	)
	drone := newEnvelope(newSweep(130.81, 98.0, d, WaveSine, rate), d, 10*time.Millisecond, 300*time.Millisecond, rate)
	return beep.Take(rate.N(d), beep.Mix(newVolume(line, 0.6), newVolume(drone, 0.4)))
}

// winSound is a rising major arpeggio.
func winSound(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		note(523.25, 100*time.Millisecond, WaveTriangle, rate),
		note(659.25, 100*time.Millisecond, WaveTriangle, rate),
		note(783.99, 100*time.Millisecond, WaveTriangle, rate),
		note(1046.50, 400*time.Millisecond, WaveTriangle, rate),
	)
}

// Effect returns a fresh streamer for s at the given master volume.
func Effect(s Sound, rate beep.SampleRate, volume float64) beep.Streamer {
	var st beep.Streamer
	switch s {
	case SoundJump:
		st = jumpSound(rate)
	case SoundCoin:
		st = coinSound(rate)
	case SoundGameOver:
		st = gameOverSound(rate)
	case SoundWin:
		st = winSound(rate)
	default:
		return nil
	}
	return newVolume(st, volume)
}
