package window

import (
	"errors"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/runaway/internal/core"
	"github.com/vovakirdan/runaway/internal/games/runaway"
	"github.com/vovakirdan/runaway/internal/level"
	"github.com/vovakirdan/runaway/internal/storage"
)

// fakeKeys reports fixed edges for one frame.
type fakeKeys struct {
	pressed  map[ebiten.Key]bool
	released map[ebiten.Key]bool
}

func (k fakeKeys) JustPressed(key ebiten.Key) bool  { return k.pressed[key] }
func (k fakeKeys) JustReleased(key ebiten.Key) bool { return k.released[key] }

func testLevel() level.Level {
	return level.Level{
		ID:          "test",
		Name:        "Test",
		Width:       40,
		Height:      10,
		TileSize:    64,
		PlayerStart: core.V(128, 112),
		EnemySpawns: []core.Vec{core.V(2400, 600)},
		Platforms:   []core.Box{{X: 0, Y: 0, W: 2560, H: 64}},
		Coins:       []core.Box{{X: 640, Y: 64, W: 64, H: 64}},
		Flag:        core.Box{X: 2000, Y: 64, W: 64, H: 128},
	}
}

func TestKeyEvents(t *testing.T) {
	keys := fakeKeys{
		pressed:  map[ebiten.Key]bool{ebiten.KeyA: true, ebiten.KeyR: true},
		released: map[ebiten.Key]bool{ebiten.KeyArrowRight: true, ebiten.KeyA: true},
	}

	got := keyEvents(keys)
	expected := []runaway.KeyEvent{
		runaway.Release(runaway.KeyRight),
		runaway.Press(runaway.KeyLeft),
		runaway.Press(runaway.KeyRestart),
		runaway.Release(runaway.KeyLeft),
	}
	if len(got) != len(expected) {
		t.Fatalf("keyEvents() = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("keyEvents()[%d] = %v, expected %v", i, got[i], expected[i])
		}
	}
}

func TestAdvanceMovesPlayer(t *testing.T) {
	g := New(testLevel(), nil, Options{Settings: runaway.DefaultSettings()})
	startX := g.Session().Player.Pos.X

	g.advance([]runaway.KeyEvent{runaway.Press(runaway.KeyRight)})
	for range 9 {
		g.advance(nil)
	}

	if got := g.Session().Player.Pos.X; got != startX+60 {
		t.Errorf("Player.Pos.X = %v, expected %v", got, startX+60)
	}
	if g.Session().Elapsed <= 0 {
		t.Error("Elapsed did not advance")
	}
}

func TestDirectionChangeWithinFrame(t *testing.T) {
	g := New(testLevel(), nil, Options{})
	speed := runaway.DefaultSettings().MoveSpeed

	g.advance(keyEvents(fakeKeys{pressed: map[ebiten.Key]bool{ebiten.KeyD: true}}))
	if got := g.Session().Player.Vel.X; got != speed {
		t.Fatalf("Vel.X = %v after D, expected %v", got, speed)
	}

	// D let go and A pressed in the same frame.
	g.advance(keyEvents(fakeKeys{
		pressed:  map[ebiten.Key]bool{ebiten.KeyA: true},
		released: map[ebiten.Key]bool{ebiten.KeyD: true},
	}))
	if got := g.Session().Player.Vel.X; got != -speed {
		t.Errorf("Vel.X = %v after D up and A down, expected %v", got, -speed)
	}
}

func TestAdvanceSavesRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	lvl := testLevel()
	lvl.Flag = core.Box{X: 64, Y: 64, W: 128, H: 128}
	g := New(lvl, store, Options{})

	for range 3 {
		g.advance(nil)
	}
	if g.Session().Phase != runaway.PhaseWon {
		t.Fatalf("Phase = %v, expected %v", g.Session().Phase, runaway.PhaseWon)
	}

	runs, err := store.TopRuns("test", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 || !runs[0].Won() {
		t.Errorf("runs = %+v, expected one won run", runs)
	}
}

func TestUpdateQuits(t *testing.T) {
	g := New(testLevel(), nil, Options{})
	g.keys = fakeKeys{pressed: map[ebiten.Key]bool{ebiten.KeyEscape: true}}

	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update() = %v, expected ebiten.Termination", err)
	}
	if g.Session().Ticks != 0 {
		t.Errorf("Ticks = %d after quit, expected 0", g.Session().Ticks)
	}
}

func TestLayout(t *testing.T) {
	g := New(testLevel(), nil, Options{})
	if w, h := g.Layout(300, 200); w != DefaultWidth || h != DefaultHeight {
		t.Errorf("Layout() = (%d, %d), expected (%d, %d)", w, h, DefaultWidth, DefaultHeight)
	}

	st := runaway.DefaultSettings()
	st.Viewport = core.V(800, 600)
	g = New(testLevel(), nil, Options{Settings: st})
	if w, h := g.Layout(300, 200); w != 800 || h != 600 {
		t.Errorf("Layout() = (%d, %d), expected (800, 600)", w, h)
	}
}

func TestProject(t *testing.T) {
	tests := []struct {
		name       string
		box        core.Box
		cam        core.Vec
		x, y, w, h float32
	}{
		{"origin camera", core.Box{X: 100, Y: 200, W: 50, H: 50}, core.V(0, 0), 100, 400, 50, 50},
		{"scrolled camera", core.Box{X: 100, Y: 200, W: 50, H: 50}, core.V(60, 100), 40, 500, 50, 50},
		{"ground row", core.Box{X: 0, Y: 0, W: 64, H: 64}, core.V(0, 0), 0, 586, 64, 64},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y, w, h := project(tc.box, tc.cam, 650)
			if x != tc.x || y != tc.y || w != tc.w || h != tc.h {
				t.Errorf("project() = (%v, %v, %v, %v), expected (%v, %v, %v, %v)", x, y, w, h, tc.x, tc.y, tc.w, tc.h)
			}
		})
	}
}

func TestVisible(t *testing.T) {
	if !visible(-10, 0, 20, 20, 100, 100) {
		t.Error("partly visible box reported hidden")
	}
	if visible(-30, 0, 20, 20, 100, 100) {
		t.Error("box left of the screen reported visible")
	}
	if visible(0, 100, 20, 20, 100, 100) {
		t.Error("box below the screen reported visible")
	}
}

func TestBackgroundColor(t *testing.T) {
	tests := []struct {
		hex      string
		expected color.RGBA
	}{
		{"#2E3440", color.RGBA{46, 52, 64, 255}},
		{"#6495ED", color.RGBA{100, 149, 237, 255}},
		{"", defaultBackground},
		{"blue", defaultBackground},
	}

	for _, tc := range tests {
		if got := backgroundColor(tc.hex); got != tc.expected {
			t.Errorf("backgroundColor(%q) = %v, expected %v", tc.hex, got, tc.expected)
		}
	}
}

func TestHUDText(t *testing.T) {
	g := New(testLevel(), nil, Options{})
	s := g.Session()
	s.Score = 2
	s.Elapsed = 3.3

	if got := hudText(s); got != "Score: 2   Time: 3.3   Coins left: 1" {
		t.Errorf("hudText() = %q", got)
	}
	if got := summaryText(s); !strings.Contains(got, "Press R to restart") {
		t.Errorf("summaryText() = %q", got)
	}
}
