package audio

import (
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
)

func TestEffectsProduceFiniteAudio(t *testing.T) {
	rate := beep.SampleRate(22050)
	limit := rate.N(5e9) // 5 seconds

	for _, snd := range Sounds {
		t.Run(snd.String(), func(t *testing.T) {
			st := Effect(snd, rate, 0.5)
			if st == nil {
				t.Fatal("Effect() returned nil")
			}

			buf := make([][2]float64, 512)
			total, peak := 0, 0.0
			for total < limit {
				n, ok := st.Stream(buf)
				for _, smp := range buf[:n] {
					for _, v := range smp {
						if math.IsNaN(v) || math.IsInf(v, 0) {
							t.Fatalf("sample %v is not finite", v)
						}
						peak = math.Max(peak, math.Abs(v))
					}
				}
				total += n
				if !ok {
					break
				}
			}

			if total == 0 {
				t.Error("effect produced no samples")
			}
			if total >= limit {
				t.Errorf("effect did not end within %d samples", limit)
			}
			if peak == 0 {
				t.Error("effect is silent")
			}
		})
	}
}

func TestEffectUnknownSound(t *testing.T) {
	if st := Effect(Sound(99), 44100, 1); st != nil {
		t.Error("Effect() for unknown sound should be nil")
	}
}

func TestZeroVolumeIsSilent(t *testing.T) {
	st := Effect(SoundCoin, 22050, 0)
	buf := make([][2]float64, 256)
	n, _ := st.Stream(buf)
	for _, smp := range buf[:n] {
		if smp[0] != 0 || smp[1] != 0 {
			t.Fatalf("zero volume produced sample %v", smp)
		}
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Play(SoundJump)
	r.Play(SoundCoin)
	r.Play(SoundCoin)

	played := r.Played()
	if len(played) != 3 || played[0] != SoundJump {
		t.Errorf("Played() = %v", played)
	}
	if r.Count(SoundCoin) != 2 {
		t.Errorf("Count(coin) = %d, expected 2", r.Count(SoundCoin))
	}

	r.Reset()
	if len(r.Played()) != 0 {
		t.Error("Reset() should clear the log")
	}
}

func TestSynthSilentBeforeStart(t *testing.T) {
	s := NewSynth(Config{Enabled: true, Volume: 1})
	s.Play(SoundWin)
	s.Close()

	if s.mixer.Len() != 0 {
		t.Errorf("mixer has %d streamers before Start, expected 0", s.mixer.Len())
	}
}

func TestOpenDisabled(t *testing.T) {
	p := Open(Config{Enabled: false}, log.New(io.Discard))
	if _, ok := p.(Nop); !ok {
		t.Errorf("Open() with audio disabled = %T, expected Nop", p)
	}
}

func TestSoundString(t *testing.T) {
	tests := map[Sound]string{
		SoundJump:     "jump",
		SoundCoin:     "coin",
		SoundGameOver: "gameover",
		SoundWin:      "win",
		Sound(42):     "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("Sound(%d).String() = %q, expected %q", s, got, want)
		}
	}
}
