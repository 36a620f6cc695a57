package level

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/runaway/internal/core"
)

const smallLevel = `
id: small
layers:
  Platforms:
    - "...."
    - "##.#"
  Flag:
    - "...F"
  Coins:
    - ".o.."
`

func TestParseYAMLGeometry(t *testing.T) {
	lvl, err := ParseYAML([]byte(smallLevel))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}

	if lvl.Width != 4 || lvl.Height != 2 {
		t.Errorf("size = %dx%d, expected 4x2", lvl.Width, lvl.Height)
	}
	if lvl.TileSize != DefaultTileSize {
		t.Errorf("TileSize = %v, expected %v", lvl.TileSize, DefaultTileSize)
	}
	if lvl.Name != "small" {
		t.Errorf("Name = %q, expected id fallback", lvl.Name)
	}
	if lvl.EndOfMap() != 256 {
		t.Errorf("EndOfMap() = %v, expected 256", lvl.EndOfMap())
	}

	wantPlatforms := []core.Box{
		{X: 0, Y: 0, W: 128, H: 64},
		{X: 192, Y: 0, W: 64, H: 64},
	}
	if len(lvl.Platforms) != len(wantPlatforms) {
		t.Fatalf("Platforms = %+v, expected %+v", lvl.Platforms, wantPlatforms)
	}
	for i, want := range wantPlatforms {
		if lvl.Platforms[i] != want {
			t.Errorf("Platforms[%d] = %+v, expected %+v", i, lvl.Platforms[i], want)
		}
	}

	if want := (core.Box{X: 192, Y: 64, W: 64, H: 64}); lvl.Flag != want {
		t.Errorf("Flag = %+v, expected %+v", lvl.Flag, want)
	}
	if len(lvl.Coins) != 1 || lvl.Coins[0] != (core.Box{X: 64, Y: 64, W: 64, H: 64}) {
		t.Errorf("Coins = %+v", lvl.Coins)
	}
	if lvl.PlayerStart != DefaultPlayerStart {
		t.Errorf("PlayerStart = %+v, expected default", lvl.PlayerStart)
	}
	if len(lvl.EnemySpawns) != 1 || lvl.EnemySpawns[0] != DefaultEnemyStart {
		t.Errorf("EnemySpawns = %+v, expected default start", lvl.EnemySpawns)
	}
}

func TestParseYAMLFlagUnion(t *testing.T) {
	src := `
id: flag
tile_size: 10
player_start: {x: 5, y: 50}
layers:
  Platforms:
    - "...."
    - "...."
    - "####"
  Flag:
    - "..F."
    - "...F"
`
	lvl, err := ParseYAML([]byte(src))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	if want := (core.Box{X: 20, Y: 10, W: 20, H: 20}); lvl.Flag != want {
		t.Errorf("Flag = %+v, expected %+v", lvl.Flag, want)
	}
}

func TestParseYAMLLaddersMergeVertically(t *testing.T) {
	src := `
id: ladder
tile_size: 10
player_start: {x: 5, y: 50}
layers:
  Platforms:
    - "...."
    - "...."
    - "...."
    - "####"
  Ladder:
    - ".H.."
    - ".H.."
    - ".H.."
  Flag:
    - "...F"
`
	lvl, err := ParseYAML([]byte(src))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	if len(lvl.Ladders) != 1 {
		t.Fatalf("Ladders = %+v, expected one merged box", lvl.Ladders)
	}
	if want := (core.Box{X: 10, Y: 10, W: 10, H: 30}); lvl.Ladders[0] != want {
		t.Errorf("Ladders[0] = %+v, expected %+v", lvl.Ladders[0], want)
	}
}

func TestParseYAMLEnemySpawns(t *testing.T) {
	src := `
id: spawns
tile_size: 10
player_start: {x: 5, y: 50}
enemy_start: {x: 1, y: 2}
layers:
  Platforms:
    - "...."
    - "####"
  Flag:
    - "...F"
  Enemies:
    - "E.E."
`
	lvl, err := ParseYAML([]byte(src))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	want := []core.Vec{core.V(5, 15), core.V(25, 15)}
	if len(lvl.EnemySpawns) != len(want) {
		t.Fatalf("EnemySpawns = %+v, expected %+v", lvl.EnemySpawns, want)
	}
	for i := range want {
		if lvl.EnemySpawns[i] != want[i] {
			t.Errorf("EnemySpawns[%d] = %+v, expected %+v", i, lvl.EnemySpawns[i], want[i])
		}
	}

	// Without an Enemies layer the explicit start is used.
	src = strings.Replace(src, "  Enemies:\n    - \"E.E.\"\n", "", 1)
	lvl, err = ParseYAML([]byte(src))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	if len(lvl.EnemySpawns) != 1 || lvl.EnemySpawns[0] != core.V(1, 2) {
		t.Errorf("EnemySpawns = %+v, expected [(1, 2)]", lvl.EnemySpawns)
	}
}

func TestParseYAMLMovers(t *testing.T) {
	src := `
id: movers
tile_size: 10
player_start: {x: 5, y: 50}
moving_platforms:
  - {x: 1, y: 1, w: 2, dx: 2, min_x: 0, max_x: 3}
layers:
  Platforms:
    - "....."
    - "....."
    - "#####"
  Moving Platforms:
    - "....="
    - ".==.."
  Flag:
    - "F...."
`
	lvl, err := ParseYAML([]byte(src))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	if len(lvl.Movers) != 1 {
		t.Fatalf("Movers = %+v, expected one", lvl.Movers)
	}
	m := lvl.Movers[0]
	if want := (core.Box{X: 10, Y: 10, W: 20, H: 10}); m.Box != want {
		t.Errorf("Mover.Box = %+v, expected %+v", m.Box, want)
	}
	if m.Vel != core.V(2, 0) {
		t.Errorf("Mover.Vel = %+v, expected (2, 0)", m.Vel)
	}
	if m.MinX != 0 || m.MaxX != 40 {
		t.Errorf("Mover x bounds = [%v, %v], expected [0, 40]", m.MinX, m.MaxX)
	}

	// The unclaimed tile in the moving platform layer is scenery.
	if len(lvl.Decorations) != 1 || lvl.Decorations[0] != (core.Box{X: 40, Y: 20, W: 10, H: 10}) {
		t.Errorf("Decorations = %+v", lvl.Decorations)
	}
}

func TestParseYAMLInvalid(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			src:     "id: [",
			wantErr: "yaml unmarshal",
		},
		{
			name:    "missing id",
			src:     "layers:\n  Platforms: [\"#\"]\n  Flag: [\"F\"]\n",
			wantErr: "id is required",
		},
		{
			name:    "empty map",
			src:     "id: x\n",
			wantErr: "map is empty",
		},
		{
			name:    "no platforms",
			src:     "id: x\nplayer_start: {x: 0, y: 0}\nlayers:\n  Flag: [\"F\"]\n",
			wantErr: "no platform tiles",
		},
		{
			name:    "no flag",
			src:     "id: x\nplayer_start: {x: 0, y: 0}\nlayers:\n  Platforms: [\"#\"]\n",
			wantErr: "no flag tiles",
		},
		{
			name:    "unknown layer",
			src:     "id: x\nlayers:\n  Lava: [\"#\"]\n",
			wantErr: "unknown layer",
		},
		{
			name:    "player outside map",
			src:     "id: x\nplayer_start: {x: 500, y: 0}\nlayers:\n  Platforms: [\"#\"]\n  Flag: [\"F\"]\n",
			wantErr: "player_start.x",
		},
		{
			name:    "half bounded mover",
			src:     "id: x\nplayer_start: {x: 0, y: 0}\nmoving_platforms:\n  - {x: 0, y: 0, w: 1, dx: 1, min_x: 0}\nlayers:\n  Platforms: [\"#\"]\n  Flag: [\"F\"]\n",
			wantErr: "min/max pairs",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tc.src))
			if err == nil {
				t.Fatal("ParseYAML() should fail")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("ParseYAML() error = %v, expected to contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestEmbeddedLevelsParse(t *testing.T) {
	levels, err := Embedded().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(levels) < 2 {
		t.Fatalf("expected at least 2 embedded levels, got %d", len(levels))
	}

	first := levels[0]
	if first.ID != "level-1" {
		t.Errorf("first level = %q, expected level-1", first.ID)
	}
	if first.PlayerStart != core.V(128, 800) {
		t.Errorf("PlayerStart = %+v, expected (128, 800)", first.PlayerStart)
	}
	if len(first.EnemySpawns) != 1 || first.EnemySpawns[0] != core.V(0, 900) {
		t.Errorf("EnemySpawns = %+v, expected [(0, 900)]", first.EnemySpawns)
	}
	if first.TileSize != 64 {
		t.Errorf("TileSize = %v, expected 64", first.TileSize)
	}

	for _, lvl := range levels {
		if len(lvl.Coins) == 0 {
			t.Errorf("level %s has no coins", lvl.ID)
		}
		if lvl.Flag.Empty() {
			t.Errorf("level %s has no flag", lvl.ID)
		}
	}
}

func TestLoaderSkipsInvalidFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"good.yaml":        {Data: []byte(smallLevel)},
		"nested/bad.yml":   {Data: []byte("id: [")},
		"notes.txt":        {Data: []byte("not a level")},
		"nested/other.yml": {Data: []byte(strings.Replace(smallLevel, "id: small", "id: alpha", 1))},
	}

	levels, err := NewLoader(fsys, ".").LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(levels) != 2 {
		t.Fatalf("LoadAll() returned %d levels, expected 2", len(levels))
	}
	if levels[0].ID != "alpha" || levels[1].ID != "small" {
		t.Errorf("levels not sorted by ID: %s, %s", levels[0].ID, levels[1].ID)
	}
	if levels[0].FilePath != "nested/other.yml" {
		t.Errorf("FilePath = %q", levels[0].FilePath)
	}
}

func TestLoaderLoadByID(t *testing.T) {
	fsys := fstest.MapFS{"a.yaml": {Data: []byte(smallLevel)}}
	loader := NewLoader(fsys, "")

	if _, err := loader.LoadByID("small"); err != nil {
		t.Errorf("LoadByID(small) error = %v", err)
	}
	if _, err := loader.LoadByID("missing"); err == nil {
		t.Error("LoadByID(missing) should fail")
	}
}

func TestLoadCatalogOverride(t *testing.T) {
	dir := t.TempDir()
	override := strings.Replace(smallLevel, "id: small", "id: level-1\nname: Custom", 1)
	if err := os.WriteFile(filepath.Join(dir, "mine.yaml"), []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("id: ["), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := LoadCatalog(dir, nil)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}

	lvl, err := cat.Get("level-1")
	if err != nil {
		t.Fatalf("Get(level-1) error = %v", err)
	}
	if lvl.Name != "Custom" {
		t.Errorf("Name = %q, expected directory override", lvl.Name)
	}
	if lvl.FilePath != filepath.Join(dir, "mine.yaml") {
		t.Errorf("FilePath = %q", lvl.FilePath)
	}
	if _, err := cat.Get("level-2"); err != nil {
		t.Errorf("embedded level-2 should survive: %v", err)
	}

	if _, err := LoadCatalog(filepath.Join(dir, "nope"), nil); err == nil {
		t.Error("LoadCatalog() with missing dir should fail")
	}
}

func TestCatalogOrdering(t *testing.T) {
	cat := NewCatalog(Level{ID: "b"}, Level{ID: "a"}, Level{ID: "b", Name: "second"})

	if cat.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", cat.Len())
	}
	ids := cat.IDs()
	if ids[0] != "a" || ids[1] != "b" {
		t.Errorf("IDs() = %v, expected [a b]", ids)
	}
	b, _ := cat.Get("b")
	if b.Name != "second" {
		t.Errorf("later level should win, got %q", b.Name)
	}
	def, ok := cat.Default()
	if !ok || def.ID != "a" {
		t.Errorf("Default() = %q, %v", def.ID, ok)
	}
	if _, ok := NewCatalog().Default(); ok {
		t.Error("empty catalog should have no default")
	}
}
