package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/runaway/internal/core"
	"github.com/vovakirdan/runaway/internal/registry"
	"github.com/vovakirdan/runaway/internal/storage"
)

// Options tunes how a game is driven in the terminal.
type Options struct {
	// ReleaseAfter is the key hold timeout; zero selects DefaultReleaseAfter.
	ReleaseAfter time.Duration
	// QuitOnBack ends the program on the back key instead of returning to a menu.
	QuitOnBack bool
	Logger     *log.Logger
}

// GameModel is the Bubble Tea model running one game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       Options
	logger     *log.Logger
	inputFrame core.InputFrame
	holds      *HoldTracker
	keyMapper  *KeyMapper
	gameState  core.GameState
	now        func() time.Time
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for the given game. The game is reset by Init.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) GameModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		opts:       opts,
		logger:     logger,
		inputFrame: core.NewInputFrame(),
		holds:      NewHoldTracker(opts.ReleaseAfter),
		keyMapper:  NewKeyMapper(),
		now:        time.Now,
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if m.opts.QuitOnBack {
				m.quitting = true
				return m, tea.Quit
			}
		}
		return m, nil
	case action == core.ActionNone, action == core.ActionConfirm:
		return m, nil
	}

	m.holds.Press(action, m.now(), &m.inputFrame)
	return m, nil
}

// handleResize follows the terminal size. Games that cannot resize in place
// are restarted unless the run already ended.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(m.config)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick runs one simulation step with the edges gathered since the last.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.holds.Expire(now, &m.inputFrame)

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if result.Finished {
		m.recordRun()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordRun stores the run that just ended. Failures only warn.
func (m GameModel) recordRun() {
	st := m.gameState
	m.logger.Info("run finished", "level", m.game.ID(), "won", st.Won, "score", st.Score, "elapsed", st.Elapsed)
	if m.store == nil {
		return
	}
	if _, err := m.store.SaveRun(storage.NewRun(m.game.ID(), st.Score, st.Elapsed, st.Won)); err != nil {
		m.logger.Warn("could not save run", "level", m.game.ID(), "error", err)
	}
}

// saveScreenshot writes the current frame as plain text to
// ~/.runaway/screenshots.
func (m *GameModel) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	dir := filepath.Join(home, ".runaway", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the game state seen on the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run plays a single game in the terminal until the user quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	opts.QuitOnBack = true
	p := tea.NewProgram(
		NewGameModel(game, store, cfg, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
