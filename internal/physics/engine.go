// Package physics integrates a single platformer body against static walls,
// moving platforms and ladders.
//
// Walls and movers are indexed in a resolv.Space and the cells it returns are
// filtered with exact box overlap, so touching edges never count as contact.
package physics

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/runaway/internal/core"
)

// Defaults matching the reference tuning.
const (
	DefaultGravity   = 1.5
	DefaultJumpProbe = 5.0

	cellSize = 32
)

const (
	tagWall  = "wall"
	tagMover = "mover"
	tagBody  = "body"
)

// Body is the simulated entity. Pos is the centre of its box.
type Body struct {
	Pos  core.Vec
	Vel  core.Vec
	Size core.Vec
}

// Bounds returns the body's box.
func (b *Body) Bounds() core.Box {
	return core.BoxAround(b.Pos, b.Size)
}

// Mover is a moving platform. See level.Mover for the bound semantics.
type Mover struct {
	Box        core.Box
	Vel        core.Vec
	MinX, MaxX float64
	MinY, MaxY float64
}

// Engine steps one body. It is not safe for concurrent use.
type Engine struct {
	body    *Body
	gravity float64
	ladders []core.Box
	walls   []core.Box
	movers  []Mover

	// JumpProbe is how far below the body CanJump looks for ground.
	JumpProbe float64

	space     *resolv.Space
	origin    core.Vec
	probe     *resolv.Object
	objects   map[*resolv.Object]int // wall index, or -(mover index)-1
	moverObjs []*resolv.Object
}

// New creates an engine for body. The slices are copied; movers are owned
// by the engine from here on.
func New(body *Body, gravity float64, ladders, walls []core.Box, movers []Mover) *Engine {
	e := &Engine{
		body:      body,
		gravity:   gravity,
		ladders:   append([]core.Box(nil), ladders...),
		walls:     append([]core.Box(nil), walls...),
		movers:    append([]Mover(nil), movers...),
		JumpProbe: DefaultJumpProbe,
		objects:   make(map[*resolv.Object]int),
	}
	e.buildSpace()
	return e
}

func (e *Engine) buildSpace() {
	var extent core.Box
	for _, w := range e.walls {
		extent = extent.Union(w)
	}
	for _, m := range e.movers {
		extent = extent.Union(m.Box)
		if m.MaxX > m.MinX {
			extent = extent.Union(core.Box{X: m.MinX, Y: m.Box.Y, W: m.MaxX - m.MinX, H: m.Box.H})
		}
		if m.MaxY > m.MinY {
			extent = extent.Union(core.Box{X: m.Box.X, Y: m.MinY, W: m.Box.W, H: m.MaxY - m.MinY})
		}
	}

	// One spare cell of margin on every side keeps edge contacts indexed.
	e.origin = core.V(extent.X-cellSize, extent.Y-cellSize)
	w := int(math.Ceil(extent.W)) + 2*cellSize
	h := int(math.Ceil(extent.H)) + 2*cellSize
	e.space = resolv.NewSpace(w, h, cellSize, cellSize)

	for i, wall := range e.walls {
		obj := e.newObject(wall, tagWall)
		e.objects[obj] = i
		e.space.Add(obj)
	}
	for i, m := range e.movers {
		obj := e.newObject(m.Box, tagMover)
		e.objects[obj] = -i - 1
		e.moverObjs = append(e.moverObjs, obj)
		e.space.Add(obj)
	}

	e.probe = e.newObject(e.body.Bounds(), tagBody)
	e.space.Add(e.probe)
}

func (e *Engine) newObject(b core.Box, tag string) *resolv.Object {
	return resolv.NewObject(b.X-e.origin.X, b.Y-e.origin.Y, b.W, b.H, tag)
}

func (e *Engine) place(obj *resolv.Object, b core.Box) {
	obj.X = b.X - e.origin.X
	obj.Y = b.Y - e.origin.Y
	obj.W = b.W
	obj.H = b.H
	obj.Update()
}

// Body returns the simulated body.
func (e *Engine) Body() *Body {
	return e.body
}

// Movers returns the current boxes of the moving platforms.
func (e *Engine) Movers() []core.Box {
	out := make([]core.Box, len(e.movers))
	for i, m := range e.movers {
		out[i] = m.Box
	}
	return out
}

// IsOnClimbable reports whether the body overlaps any ladder.
func (e *Engine) IsOnClimbable() bool {
	b := e.body.Bounds()
	for _, l := range e.ladders {
		if b.Intersects(l) {
			return true
		}
	}
	return false
}

// CanJump reports whether there is solid ground within JumpProbe below the
// body.
func (e *Engine) CanJump() bool {
	return len(e.blocking(e.body.Bounds().Translate(core.V(0, -e.JumpProbe)))) > 0
}

// Step advances the world by one tick: gravity (skipped on ladders), moving
// platforms, then the body's motion on Y and X with collision resolution.
func (e *Engine) Step() {
	b := e.body
	if !e.IsOnClimbable() {
		b.Vel.Y -= e.gravity
	}

	e.stepMovers()

	// Vertical.
	if b.Vel.Y != 0 {
		b.Pos.Y += b.Vel.Y
		if hits := e.blocking(b.Bounds()); len(hits) > 0 {
			half := b.Size.Y / 2
			if b.Vel.Y > 0 {
				lowest := math.Inf(1)
				for _, h := range hits {
					lowest = math.Min(lowest, h.Y)
				}
				b.Pos.Y = lowest - half
			} else {
				highest := math.Inf(-1)
				for _, h := range hits {
					highest = math.Max(highest, h.Top())
				}
				b.Pos.Y = highest + half
			}
			b.Vel.Y = 0
		}
	}

	// Horizontal. Velocity is kept so a held direction keeps pushing.
	if b.Vel.X != 0 {
		b.Pos.X += b.Vel.X
		if hits := e.blocking(b.Bounds()); len(hits) > 0 {
			half := b.Size.X / 2
			if b.Vel.X > 0 {
				left := math.Inf(1)
				for _, h := range hits {
					left = math.Min(left, h.X)
				}
				b.Pos.X = left - half
			} else {
				right := math.Inf(-1)
				for _, h := range hits {
					right = math.Max(right, h.Right())
				}
				b.Pos.X = right + half
			}
		}
	}

	e.place(e.probe, b.Bounds())
}

// stepMovers advances every moving platform, carries the body when it
// stands on one and pushes it aside when a platform runs into it.
func (e *Engine) stepMovers() {
	for i := range e.movers {
		m := &e.movers[i]
		riding := e.standsOn(m.Box)

		d := m.Vel
		m.Box = m.Box.Translate(d)
		if m.MaxX > m.MinX {
			if (m.Vel.X > 0 && m.Box.Right() > m.MaxX) || (m.Vel.X < 0 && m.Box.X < m.MinX) {
				m.Vel.X = -m.Vel.X
			}
		}
		if m.MaxY > m.MinY {
			if (m.Vel.Y > 0 && m.Box.Top() > m.MaxY) || (m.Vel.Y < 0 && m.Box.Y < m.MinY) {
				m.Vel.Y = -m.Vel.Y
			}
		}
		e.place(e.moverObjs[i], m.Box)

		if riding {
			e.body.Pos = e.body.Pos.Add(d)
		} else if e.body.Bounds().Intersects(m.Box) {
			e.push(m.Box, d)
		}
	}
}

// push moves the body flush with the side of a platform that moved into it,
// along the platform's motion. Horizontal motion wins over vertical. A body
// pushed into a wall is left to the wall resolution of the same step.
func (e *Engine) push(platform core.Box, d core.Vec) {
	b := e.body
	switch {
	case d.X > 0:
		b.Pos.X = platform.Right() + b.Size.X/2
	case d.X < 0:
		b.Pos.X = platform.X - b.Size.X/2
	case d.Y > 0:
		b.Pos.Y = platform.Top() + b.Size.Y/2
	case d.Y < 0:
		b.Pos.Y = platform.Y - b.Size.Y/2
	}
}

func (e *Engine) standsOn(platform core.Box) bool {
	b := e.body.Bounds()
	if b.X >= platform.Right() || platform.X >= b.Right() {
		return false
	}
	return math.Abs(b.Y-platform.Top()) <= e.JumpProbe
}

// blocking returns every wall and mover box that strictly overlaps b.
func (e *Engine) blocking(b core.Box) []core.Box {
	// resolv rounds cell ranges, so the broadphase query is padded by a unit.
	e.place(e.probe, core.Box{X: b.X - 1, Y: b.Y - 1, W: b.W + 2, H: b.H + 2})
	c := e.probe.Check(0, 0, tagWall, tagMover)
	if c == nil {
		return nil
	}

	var hits []core.Box
	for _, obj := range c.Objects {
		idx, ok := e.objects[obj]
		if !ok {
			continue
		}
		var box core.Box
		if idx >= 0 {
			box = e.walls[idx]
		} else {
			box = e.movers[-idx-1].Box
		}
		if b.Intersects(box) {
			hits = append(hits, box)
		}
	}
	return hits
}
