// Package level loads Run Away! levels: named tile layers converted into
// world-space geometry for the physics engine and the collision rules.
package level

import "github.com/vovakirdan/runaway/internal/core"

// Layer names understood by the parser.
const (
	LayerPlatforms       = "Platforms"
	LayerMovingPlatforms = "Moving Platforms"
	LayerLadder          = "Ladder"
	LayerCoins           = "Coins"
	LayerBackground      = "Background"
	LayerTreasureChest   = "Treasure Chest"
	LayerFlag            = "Flag"
	LayerEnemies         = "Enemies"
)

// Layers lists every known layer name in draw order.
var Layers = []string{
	LayerBackground,
	LayerTreasureChest,
	LayerLadder,
	LayerPlatforms,
	LayerMovingPlatforms,
	LayerCoins,
	LayerFlag,
	LayerEnemies,
}

// Defaults applied when a level file omits them.
const (
	DefaultTileSize = 64
)

var (
	DefaultPlayerStart = core.V(128, 800)
	DefaultEnemyStart  = core.V(0, 900)
)

// Mover is a moving platform in world units.
// Vel is applied every tick; the platform reverses on an axis when its edge
// passes the bound for that axis. A zero bound pair means unbounded.
type Mover struct {
	Box        core.Box
	Vel        core.Vec
	MinX, MaxX float64 // left edge lower bound, right edge upper bound
	MinY, MaxY float64 // bottom edge lower bound, top edge upper bound
}

// Level is one immutable playfield. All boxes are in world space
// (Y up, origin at the bottom-left corner of the map).
type Level struct {
	ID              string
	Name            string
	Width           int // in tiles
	Height          int // in tiles
	TileSize        float64
	BackgroundColor string

	PlayerStart core.Vec
	EnemySpawns []core.Vec

	Platforms   []core.Box
	Movers      []Mover
	Ladders     []core.Box
	Coins       []core.Box
	Background  []core.Box
	Decorations []core.Box
	Flag        core.Box

	FilePath string
}

// EndOfMap is the world x-coordinate of the right edge of the map.
func (l *Level) EndOfMap() float64 {
	return float64(l.Width) * l.TileSize
}

// Bounds returns the world box covering the whole map.
func (l *Level) Bounds() core.Box {
	return core.Box{W: l.EndOfMap(), H: float64(l.Height) * l.TileSize}
}

// TileBox returns the world box of the tile at grid (col, row), where row 0
// is the top row of the map.
func (l *Level) TileBox(col, row int) core.Box {
	return tileBox(col, row, l.Height, l.TileSize)
}

func tileBox(col, row, height int, ts float64) core.Box {
	return core.Box{
		X: float64(col) * ts,
		Y: float64(height-1-row) * ts,
		W: ts,
		H: ts,
	}
}
