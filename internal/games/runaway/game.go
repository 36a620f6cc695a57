package runaway

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/runaway/internal/audio"
	"github.com/vovakirdan/runaway/internal/core"
	"github.com/vovakirdan/runaway/internal/level"
	"github.com/vovakirdan/runaway/internal/registry"
)

// Options configures every game built from a catalog.
type Options struct {
	Settings Settings
	Sound    audio.Player
	Logger   *log.Logger

	// World units covered by one terminal cell.
	CellWidth  float64
	CellHeight float64
}

// DefaultOptions returns silent options with the classic tuning.
func DefaultOptions() Options {
	return Options{
		Settings:   DefaultSettings(),
		Sound:      audio.Nop{},
		CellWidth:  16,
		CellHeight: 32,
	}
}

// hudRows is the number of screen rows above the playfield.
const hudRows = 1

// actionOrder fixes the order key edges are applied within one frame.
var actionOrder = []core.Action{
	core.ActionLeft,
	core.ActionRight,
	core.ActionUp,
	core.ActionDown,
	core.ActionRestart,
}

// Game adapts a Session of one level to the registry.Game interface.
type Game struct {
	lvl     level.Level
	opts    Options
	config  core.RuntimeConfig
	session *Session
	paused  bool
}

// NewGame creates a game for lvl. Reset must be called before Step.
func NewGame(lvl level.Level, opts Options) *Game {
	if opts.CellWidth <= 0 {
		opts.CellWidth = 16
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = 32
	}
	return &Game{lvl: lvl, opts: opts}
}

// ID returns the level ID; every level is its own game.
func (g *Game) ID() string {
	return g.lvl.ID
}

// Title returns the level's display name.
func (g *Game) Title() string {
	return g.lvl.Name
}

// Reset starts a new run sized to the screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.config = cfg
	g.paused = false

	logger := g.opts.Logger
	if logger != nil {
		logger = logger.With("level", g.lvl.ID)
	}
	g.session = NewSession(g.lvl, g.opts.Settings, g.opts.Sound, logger)
	g.session.SetViewport(g.viewport())
}

// Resize adapts the camera to a new screen size without restarting.
func (g *Game) Resize(cfg core.RuntimeConfig) {
	g.config = cfg
	if g.session != nil {
		g.session.SetViewport(g.viewport())
	}
}

// viewport is the world area visible on screen below the HUD.
func (g *Game) viewport() core.Vec {
	rows := core.Max(g.config.ScreenH-hudRows, 1)
	return core.V(float64(g.config.ScreenW)*g.opts.CellWidth, float64(rows)*g.opts.CellHeight)
}

// Session exposes the running session.
func (g *Game) Session() *Session {
	return g.session
}

// Step applies the frame's key edges and advances one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	s := g.session

	if in.Has(core.ActionPause) && !s.Phase.Terminal() {
		g.paused = !g.paused
	}

	// Releases always land so a key let go during pause does not stick.
	for _, a := range actionOrder {
		if k, ok := KeyForAction(a); ok && in.WasReleased(a) {
			s.HandleKey(Release(k))
		}
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	for _, a := range actionOrder {
		if k, ok := KeyForAction(a); ok && in.Has(a) {
			s.HandleKey(Press(k))
		}
	}

	wasPlaying := !s.Phase.Terminal()
	s.Tick(g.config.TickSeconds())

	return core.StepResult{
		State:    g.State(),
		Finished: wasPlaying && s.Phase.Terminal(),
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.session.Score,
		Elapsed:  g.session.Elapsed,
		GameOver: g.session.Phase.Terminal(),
		Won:      g.session.Phase == PhaseWon,
		Paused:   g.paused,
	}
}

// RegisterCatalog registers one game per level. Levels already registered
// are left alone.
func RegisterCatalog(cat *level.Catalog, opts Options) {
	for _, lvl := range cat.List() {
		if registry.Exists(lvl.ID) {
			continue
		}
		registry.Register(registry.GameInfo{ID: lvl.ID, Title: lvl.Name}, func() registry.Game {
			return NewGame(lvl, opts)
		})
	}
}
