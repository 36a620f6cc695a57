package runaway

import (
	"github.com/vovakirdan/runaway/internal/audio"
	"github.com/vovakirdan/runaway/internal/core"
)

// Key is a game key after alias resolution.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyRestart
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// KeyEvent is one key edge.
type KeyEvent struct {
	Key     Key
	Pressed bool // false for release
}

// Press and Release build key events.
func Press(k Key) KeyEvent   { return KeyEvent{Key: k, Pressed: true} }
func Release(k Key) KeyEvent { return KeyEvent{Key: k} }

// KeyForAction maps a platform action to a game key.
func KeyForAction(a core.Action) (Key, bool) {
	switch a {
	case core.ActionUp:
		return KeyUp, true
	case core.ActionDown:
		return KeyDown, true
	case core.ActionLeft:
		return KeyLeft, true
	case core.ActionRight:
		return KeyRight, true
	case core.ActionRestart:
		return KeyRestart, true
	default:
		return 0, false
	}
}

// Surface is what the physics engine reports about the player's footing.
type Surface struct {
	OnClimbable bool
	CanJump     bool
}

// Tuning holds the player's movement speeds in world units per tick.
type Tuning struct {
	MoveSpeed  float64
	JumpSpeed  float64
	ClimbSpeed float64
}

// DefaultTuning matches the classic feel.
func DefaultTuning() Tuning {
	return Tuning{MoveSpeed: 6, JumpSpeed: 18, ClimbSpeed: 6}
}

// ApplyKey returns the player's new intended velocity after ev, plus any
// sounds the key triggered. Restart is not a movement key and leaves vel
// unchanged.
func ApplyKey(vel core.Vec, ev KeyEvent, s Surface, t Tuning) (core.Vec, []audio.Sound) {
	if !ev.Pressed {
		switch ev.Key {
		case KeyLeft, KeyRight:
			vel.X = 0
		case KeyUp, KeyDown:
			// Airborne vertical speed belongs to gravity.
			if s.OnClimbable {
				vel.Y = 0
			}
		}
		return vel, nil
	}

	switch ev.Key {
	case KeyUp:
		if s.OnClimbable {
			vel.Y = t.ClimbSpeed
		} else if s.CanJump {
			vel.Y = t.JumpSpeed
			return vel, []audio.Sound{audio.SoundJump}
		}
	case KeyDown:
		if s.OnClimbable {
			vel.Y = -t.ClimbSpeed
		}
	case KeyLeft:
		vel.X = -t.MoveSpeed
	case KeyRight:
		vel.X = t.MoveSpeed
	}
	return vel, nil
}
