package level

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/runaway/internal/core"
	"gopkg.in/yaml.v3"
)

// YAMLLevel is the on-disk shape of a level file.
type YAMLLevel struct {
	ID              string              `yaml:"id"`
	Name            string              `yaml:"name"`
	TileSize        float64             `yaml:"tile_size,omitempty"`
	BackgroundColor string              `yaml:"background_color,omitempty"`
	PlayerStart     *YAMLPoint          `yaml:"player_start,omitempty"`
	EnemyStart      *YAMLPoint          `yaml:"enemy_start,omitempty"`
	Layers          map[string][]string `yaml:"layers"`
	MovingPlatforms []YAMLMover         `yaml:"moving_platforms,omitempty"`
}

// YAMLPoint is a world position.
type YAMLPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// YAMLMover describes a moving platform in tile coordinates.
// Rows count from the top of the map, like the layer grids.
type YAMLMover struct {
	X    int     `yaml:"x"`
	Y    int     `yaml:"y"`
	W    int     `yaml:"w"`
	H    int     `yaml:"h,omitempty"`
	DX   float64 `yaml:"dx,omitempty"`
	DY   float64 `yaml:"dy,omitempty"`
	MinX *int    `yaml:"min_x,omitempty"`
	MaxX *int    `yaml:"max_x,omitempty"`
	MinY *int    `yaml:"min_y,omitempty"`
	MaxY *int    `yaml:"max_y,omitempty"`
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

// ParseYAML parses and validates a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return yl.Build()
}

// Build converts the file representation into world geometry.
func (yl YAMLLevel) Build() (Level, error) {
	if err := yl.validateHeader(); err != nil {
		return Level{}, err
	}

	ts := yl.TileSize
	if ts == 0 {
		ts = DefaultTileSize
	}

	w, h := yl.gridSize()
	lvl := Level{
		ID:              yl.ID,
		Name:            yl.Name,
		Width:           w,
		Height:          h,
		TileSize:        ts,
		BackgroundColor: yl.BackgroundColor,
		PlayerStart:     DefaultPlayerStart,
	}
	if lvl.Name == "" {
		lvl.Name = yl.ID
	}
	if yl.PlayerStart != nil {
		lvl.PlayerStart = core.V(yl.PlayerStart.X, yl.PlayerStart.Y)
	}

	grids := make(map[string][][]bool, len(yl.Layers))
	for name, rows := range yl.Layers {
		grids[name] = toGrid(rows, w, h)
	}

	lvl.Platforms = mergeRows(grids[LayerPlatforms], h, ts)
	lvl.Ladders = mergeColumns(grids[LayerLadder], h, ts)
	lvl.Coins = tiles(grids[LayerCoins], h, ts)
	lvl.Background = tiles(grids[LayerBackground], h, ts)
	lvl.Decorations = tiles(grids[LayerTreasureChest], h, ts)

	for _, b := range tiles(grids[LayerFlag], h, ts) {
		lvl.Flag = lvl.Flag.Union(b)
	}

	for _, b := range tiles(grids[LayerEnemies], h, ts) {
		lvl.EnemySpawns = append(lvl.EnemySpawns, b.Center())
	}
	if len(lvl.EnemySpawns) == 0 {
		start := DefaultEnemyStart
		if yl.EnemyStart != nil {
			start = core.V(yl.EnemyStart.X, yl.EnemyStart.Y)
		}
		lvl.EnemySpawns = []core.Vec{start}
	}

	var errs []error
	for i, m := range yl.MovingPlatforms {
		mover, err := m.build(h, ts)
		if err != nil {
			errs = append(errs, fmt.Errorf("moving_platforms[%d]: %w", i, err))
			continue
		}
		lvl.Movers = append(lvl.Movers, mover)
	}

	// Grid tiles of the moving platform layer that no mover claims are scenery.
	for _, b := range tiles(grids[LayerMovingPlatforms], h, ts) {
		if !claimedByMover(b, lvl.Movers) {
			lvl.Decorations = append(lvl.Decorations, b)
		}
	}

	if len(lvl.Platforms) == 0 {
		errs = append(errs, errors.New("level has no platform tiles"))
	}
	if lvl.Flag.Empty() {
		errs = append(errs, errors.New("level has no flag tiles"))
	}
	if lvl.PlayerStart.X < 0 || lvl.PlayerStart.X > lvl.EndOfMap() {
		errs = append(errs, fmt.Errorf("player_start.x %v outside map [0, %v]", lvl.PlayerStart.X, lvl.EndOfMap()))
	}
	if err := errors.Join(errs...); err != nil {
		return Level{}, fmt.Errorf("level %s: %w", yl.ID, err)
	}

	return lvl, nil
}

func (yl YAMLLevel) validateHeader() error {
	var errs []error
	if strings.TrimSpace(yl.ID) == "" {
		errs = append(errs, errors.New("id is required"))
	}
	if yl.TileSize < 0 {
		errs = append(errs, fmt.Errorf("tile_size must be positive, got %v", yl.TileSize))
	}
	for name := range yl.Layers {
		if !knownLayer(name) {
			errs = append(errs, fmt.Errorf("unknown layer %q", name))
		}
	}
	if w, h := yl.gridSize(); w == 0 || h == 0 {
		errs = append(errs, errors.New("map is empty"))
	}
	return errors.Join(errs...)
}

// gridSize returns the map size in tiles: the widest row and the tallest
// layer across all layers.
func (yl YAMLLevel) gridSize() (w, h int) {
	for _, rows := range yl.Layers {
		h = max(h, len(rows))
		for _, row := range rows {
			w = max(w, utf8.RuneCountInString(row))
		}
	}
	return w, h
}

func knownLayer(name string) bool {
	for _, l := range Layers {
		if l == name {
			return true
		}
	}
	return false
}

func isTile(r rune) bool {
	return r != ' ' && r != '.'
}

// toGrid expands layer rows into a w×h occupancy grid. Short rows and
// short layers are padded with empty cells.
func toGrid(rows []string, w, h int) [][]bool {
	g := make([][]bool, h)
	for y := range g {
		g[y] = make([]bool, w)
		if y >= len(rows) {
			continue
		}
		x := 0
		for _, r := range rows[y] {
			g[y][x] = isTile(r)
			x++
		}
	}
	return g
}

// tiles returns one box per occupied cell in row-major order, top row first.
func tiles(g [][]bool, h int, ts float64) []core.Box {
	var out []core.Box
	for row, cells := range g {
		for col, set := range cells {
			if set {
				out = append(out, tileBox(col, row, h, ts))
			}
		}
	}
	return out
}

// mergeRows joins horizontal runs of tiles into single boxes.
func mergeRows(g [][]bool, h int, ts float64) []core.Box {
	var out []core.Box
	for row, cells := range g {
		start := -1
		for col := 0; col <= len(cells); col++ {
			set := col < len(cells) && cells[col]
			switch {
			case set && start < 0:
				start = col
			case !set && start >= 0:
				b := tileBox(start, row, h, ts)
				b.W = float64(col-start) * ts
				out = append(out, b)
				start = -1
			}
		}
	}
	return out
}

// mergeColumns joins vertical runs of tiles into single boxes.
func mergeColumns(g [][]bool, h int, ts float64) []core.Box {
	if len(g) == 0 {
		return nil
	}
	var out []core.Box
	for col := range g[0] {
		start := -1
		for row := 0; row <= len(g); row++ {
			set := row < len(g) && g[row][col]
			switch {
			case set && start < 0:
				start = row
			case !set && start >= 0:
				// The bottom tile of the run carries the box origin.
				b := tileBox(col, row-1, h, ts)
				b.H = float64(row-start) * ts
				out = append(out, b)
				start = -1
			}
		}
	}
	return out
}

func (m YAMLMover) build(h int, ts float64) (Mover, error) {
	if m.W <= 0 {
		return Mover{}, fmt.Errorf("w must be positive, got %d", m.W)
	}
	rows := m.H
	if rows == 0 {
		rows = 1
	}
	if (m.MinX == nil) != (m.MaxX == nil) || (m.MinY == nil) != (m.MaxY == nil) {
		return Mover{}, errors.New("bounds must be given in min/max pairs")
	}

	mv := Mover{
		Box: core.Box{
			X: float64(m.X) * ts,
			Y: float64(h-m.Y-rows) * ts,
			W: float64(m.W) * ts,
			H: float64(rows) * ts,
		},
		Vel: core.V(m.DX, m.DY),
	}
	if m.MinX != nil {
		if *m.MaxX < *m.MinX {
			return Mover{}, fmt.Errorf("max_x %d < min_x %d", *m.MaxX, *m.MinX)
		}
		mv.MinX = float64(*m.MinX) * ts
		mv.MaxX = float64(*m.MaxX+1) * ts
	}
	if m.MinY != nil {
		if *m.MaxY < *m.MinY {
			return Mover{}, fmt.Errorf("max_y %d < min_y %d", *m.MaxY, *m.MinY)
		}
		// Rows grow downward, so the lowest row gives the bottom bound.
		mv.MinY = float64(h-1-*m.MaxY) * ts
		mv.MaxY = float64(h-*m.MinY) * ts
	}
	return mv, nil
}

func claimedByMover(b core.Box, movers []Mover) bool {
	for _, m := range movers {
		if m.Box.Intersects(b) {
			return true
		}
	}
	return false
}
