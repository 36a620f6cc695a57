// Package core provides fundamental types and utilities shared by the game
// logic and the platform layers. It contains no external dependencies
// (especially no Bubble Tea or Ebiten) to keep game logic pure and testable.
package core

import "math"

// Rect is an integer axis-aligned rectangle in screen cells.
// Y grows downward, matching terminal rows.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Vec is a point or velocity in world units.
type Vec struct {
	X, Y float64
}

// V is shorthand for Vec{X: x, Y: y}.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Box is a world-space axis-aligned bounding box.
// World space has Y growing upward with the origin at the bottom-left of the
// map, so (X, Y) is the bottom-left corner.
type Box struct {
	X, Y float64
	W, H float64
}

// BoxAround returns the box of the given size centred on c.
func BoxAround(c Vec, size Vec) Box {
	return Box{X: c.X - size.X/2, Y: c.Y - size.Y/2, W: size.X, H: size.Y}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Top returns the y-coordinate of the top edge.
func (b Box) Top() float64 {
	return b.Y + b.H
}

// Center returns the centre point of the box.
func (b Box) Center() Vec {
	return Vec{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Empty reports whether the box has no area.
func (b Box) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// Intersects reports whether two boxes overlap.
// Boxes that only share an edge do not overlap.
func (b Box) Intersects(o Box) bool {
	if b.X >= o.Right() || o.X >= b.Right() {
		return false
	}
	if b.Y >= o.Top() || o.Y >= b.Top() {
		return false
	}
	return true
}

// Translate returns the box moved by d.
func (b Box) Translate(d Vec) Box {
	b.X += d.X
	b.Y += d.Y
	return b
}

// Union returns the smallest box containing both boxes.
// An empty box is the identity.
func (b Box) Union(o Box) Box {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	x := math.Min(b.X, o.X)
	y := math.Min(b.Y, o.Y)
	return Box{
		X: x,
		Y: y,
		W: math.Max(b.Right(), o.Right()) - x,
		H: math.Max(b.Top(), o.Top()) - y,
	}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
