// Package runaway implements Run Away!, a tile-based platformer: collect
// coins, keep ahead of the chasing enemy and reach the flag.
//
// The package is pure game logic. Frontends feed it key events and tick it
// from their own loop; physics, audio and level data are collaborators.
package runaway

import (
	"github.com/vovakirdan/runaway/internal/core"
	"github.com/vovakirdan/runaway/internal/physics"
)

// Entity is anything with a box in the world: the player, an enemy, a coin.
type Entity struct {
	physics.Body
	Alive bool
}

// NewEntity creates a live entity centred on pos.
func NewEntity(pos, size core.Vec) *Entity {
	return &Entity{
		Body:  physics.Body{Pos: pos, Size: size},
		Alive: true,
	}
}

// Enemy is an entity that chases the player.
type Enemy struct {
	Entity
	PursuitSpeed float64
}

// NewEnemy creates an enemy centred on pos.
func NewEnemy(pos, size core.Vec, speed float64) *Enemy {
	return &Enemy{
		Entity:       *NewEntity(pos, size),
		PursuitSpeed: speed,
	}
}

// Coin is a collectible. ID is its index in the level's coin list.
// Alive turns false once collected.
type Coin struct {
	Entity
	ID int
}

// NewCoin creates an uncollected coin filling box.
func NewCoin(id int, box core.Box) *Coin {
	return &Coin{
		Entity: *NewEntity(box.Center(), core.V(box.W, box.H)),
		ID:     id,
	}
}
