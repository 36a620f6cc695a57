package runaway

import "github.com/vovakirdan/runaway/internal/core"

// DefaultPursuitSpeed is the enemy's closing speed per axis, per tick.
const DefaultPursuitSpeed = 4.0

// Follow returns the velocity that moves enemy toward target. Each axis
// moves at the full pursuit speed independently, so diagonal chases close
// faster than straight ones.
func Follow(enemy *Enemy, target core.Vec) core.Vec {
	return core.Vec{
		X: chase(enemy.Pos.X, target.X, enemy.PursuitSpeed),
		Y: chase(enemy.Pos.Y, target.Y, enemy.PursuitSpeed),
	}
}

func chase(from, to, speed float64) float64 {
	switch {
	case from < to:
		return speed
	case from > to:
		return -speed
	default:
		return 0
	}
}

// Advance moves the enemy by its velocity. Enemies fly through walls.
func (e *Enemy) Advance() {
	e.Pos = e.Pos.Add(e.Vel)
}
