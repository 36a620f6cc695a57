package window

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/runaway/internal/games/runaway"
)

// binding maps a physical key to a game key.
type binding struct {
	key  ebiten.Key
	game runaway.Key
}

var bindings = []binding{
	{ebiten.KeyArrowLeft, runaway.KeyLeft},
	{ebiten.KeyA, runaway.KeyLeft},
	{ebiten.KeyArrowRight, runaway.KeyRight},
	{ebiten.KeyD, runaway.KeyRight},
	{ebiten.KeyArrowUp, runaway.KeyUp},
	{ebiten.KeyW, runaway.KeyUp},
	{ebiten.KeyArrowDown, runaway.KeyDown},
	{ebiten.KeyS, runaway.KeyDown},
	{ebiten.KeyR, runaway.KeyRestart},
}

// keyState reports key edges of the current frame.
type keyState interface {
	JustPressed(k ebiten.Key) bool
	JustReleased(k ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) JustPressed(k ebiten.Key) bool  { return inpututil.IsKeyJustPressed(k) }
func (ebitenKeys) JustReleased(k ebiten.Key) bool { return inpututil.IsKeyJustReleased(k) }

// keyEvents collects this frame's edges: releases first, then presses, then
// the releases of keys tapped within the frame. Rolling from one direction
// to the other inside a frame therefore ends on the new direction instead of
// stopping the player.
func keyEvents(ks keyState) []runaway.KeyEvent {
	var released, pressed, tapped []runaway.KeyEvent
	for _, b := range bindings {
		down := ks.JustPressed(b.key)
		up := ks.JustReleased(b.key)
		switch {
		case down && up:
			pressed = append(pressed, runaway.Press(b.game))
			tapped = append(tapped, runaway.Release(b.game))
		case down:
			pressed = append(pressed, runaway.Press(b.game))
		case up:
			released = append(released, runaway.Release(b.game))
		}
	}
	return slices.Concat(released, pressed, tapped)
}
