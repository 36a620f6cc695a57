// Package window runs a level in a desktop window using Ebitengine.
// It drives the same Session as the terminal frontend, with real key
// release events and pixel rendering.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/runaway/internal/audio"
	"github.com/vovakirdan/runaway/internal/core"
	"github.com/vovakirdan/runaway/internal/games/runaway"
	"github.com/vovakirdan/runaway/internal/level"
	"github.com/vovakirdan/runaway/internal/storage"
)

// Default window geometry and rate.
const (
	DefaultWidth  = 1000
	DefaultHeight = 650
	DefaultTPS    = 60
)

// Options configures a window run.
type Options struct {
	Settings runaway.Settings
	TPS      int
	Sound    audio.Player
	Logger   *log.Logger
}

// Game implements ebiten.Game for one level.
type Game struct {
	session *runaway.Session
	store   *storage.Store
	logger  *log.Logger
	tps     int
	width   int
	height  int
	bg      color.RGBA
	face    *text.GoXFace
	keys    keyState
}

// New creates a window game for lvl. Zero settings select the defaults. The
// viewport in the settings sets the window size; a zero viewport selects
// 1000×650.
func New(lvl level.Level, store *storage.Store, opts Options) *Game {
	if opts.Settings == (runaway.Settings{}) {
		opts.Settings = runaway.DefaultSettings()
	}
	if opts.TPS <= 0 {
		opts.TPS = DefaultTPS
	}
	if opts.Settings.Viewport.X <= 0 || opts.Settings.Viewport.Y <= 0 {
		opts.Settings.Viewport = core.V(DefaultWidth, DefaultHeight)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Game{
		session: runaway.NewSession(lvl, opts.Settings, opts.Sound, logger.With("level", lvl.ID)),
		store:   store,
		logger:  logger,
		tps:     opts.TPS,
		width:   int(opts.Settings.Viewport.X),
		height:  int(opts.Settings.Viewport.Y),
		bg:      backgroundColor(lvl.BackgroundColor),
		face:    text.NewGoXFace(basicfont.Face7x13),
		keys:    ebitenKeys{},
	}
}

// Session exposes the running session.
func (g *Game) Session() *runaway.Session {
	return g.session
}

// Update handles the key edges of this frame and advances one tick.
func (g *Game) Update() error {
	if g.keys.JustPressed(ebiten.KeyEscape) || g.keys.JustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	g.advance(keyEvents(g.keys))
	return nil
}

// advance applies key events and runs one tick, saving the run when it ends.
func (g *Game) advance(events []runaway.KeyEvent) {
	s := g.session
	for _, ev := range events {
		s.HandleKey(ev)
	}

	wasPlaying := !s.Phase.Terminal()
	s.Tick(1 / float64(g.tps))
	if wasPlaying && s.Phase.Terminal() {
		g.recordRun()
	}
}

func (g *Game) recordRun() {
	s := g.session
	won := s.Phase == runaway.PhaseWon
	g.logger.Info("run finished", "level", s.Level().ID, "won", won, "score", s.Score, "elapsed", s.Elapsed)
	if g.store == nil {
		return
	}
	if _, err := g.store.SaveRun(storage.NewRun(s.Level().ID, s.Score, s.Elapsed, won)); err != nil {
		g.logger.Warn("could not save run", "level", s.Level().ID, "error", err)
	}
}

// Layout keeps a fixed logical screen; Ebitengine scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Run opens the window and blocks until it is closed.
func Run(lvl level.Level, store *storage.Store, opts Options) error {
	g := New(lvl, store, opts)

	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(fmt.Sprintf("Run Away! - %s", lvl.Name))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.tps)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
