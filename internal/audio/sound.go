// Package audio plays the game's sound effects.
package audio

import "sync"

// Sound identifies a sound effect.
type Sound int

const (
	SoundJump Sound = iota
	SoundCoin
	SoundGameOver
	SoundWin
)

// Sounds lists every effect.
var Sounds = []Sound{SoundJump, SoundCoin, SoundGameOver, SoundWin}

func (s Sound) String() string {
	switch s {
	case SoundJump:
		return "jump"
	case SoundCoin:
		return "coin"
	case SoundGameOver:
		return "gameover"
	case SoundWin:
		return "win"
	default:
		return "unknown"
	}
}

// Player triggers sound effects. Play must not block.
type Player interface {
	Play(Sound)
}

// Nop is a silent Player.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Sound) {}

// Recorder is a silent Player that remembers what was played.
type Recorder struct {
	mu     sync.Mutex
	played []Sound
}

// Play records s.
func (r *Recorder) Play(s Sound) {
	r.mu.Lock()
	r.played = append(r.played, s)
	r.mu.Unlock()
}

// Played returns a copy of the sounds played so far, oldest first.
func (r *Recorder) Played() []Sound {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Sound(nil), r.played...)
}

// Count returns how many times s was played.
func (r *Recorder) Count(s Sound) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.played {
		if p == s {
			n++
		}
	}
	return n
}

// Reset forgets all recorded sounds.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.played = nil
	r.mu.Unlock()
}
