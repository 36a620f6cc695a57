package runaway

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/runaway/internal/audio"
	"github.com/vovakirdan/runaway/internal/config"
	"github.com/vovakirdan/runaway/internal/core"
	"github.com/vovakirdan/runaway/internal/level"
	"github.com/vovakirdan/runaway/internal/physics"
)

// Phase is the run's state.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseGameOver
	PhaseWon
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	case PhaseWon:
		return "won"
	default:
		return "unknown"
	}
}

// Terminal reports whether the run has ended.
func (p Phase) Terminal() bool {
	return p != PhasePlaying
}

// Settings is the tuning a session is built from.
type Settings struct {
	Tuning
	Gravity       float64
	JumpProbe     float64
	FallThreshold float64
	PlayerSize    core.Vec
	EnemySize     core.Vec
	PursuitSpeed  float64
	Viewport      core.Vec // camera viewport in world units
}

// DefaultSettings returns the classic tuning.
func DefaultSettings() Settings {
	return SettingsFromConfig(config.DefaultConfig())
}

// SettingsFromConfig extracts session settings from the loaded config.
func SettingsFromConfig(cfg config.RunAwayConfig) Settings {
	return Settings{
		Tuning: Tuning{
			MoveSpeed:  cfg.Physics.MoveSpeed,
			JumpSpeed:  cfg.Physics.JumpSpeed,
			ClimbSpeed: cfg.Physics.ClimbSpeed,
		},
		Gravity:       cfg.Physics.Gravity,
		JumpProbe:     cfg.Physics.JumpProbe,
		FallThreshold: cfg.Rules.FallThreshold,
		PlayerSize:    core.V(cfg.Player.Width, cfg.Player.Height),
		EnemySize:     core.V(cfg.Enemy.Width, cfg.Enemy.Height),
		PursuitSpeed:  cfg.Enemy.PursuitSpeed,
		Viewport:      core.V(float64(cfg.Viewport.Width), float64(cfg.Viewport.Height)),
	}
}

// Session is one run of one level. It owns every mutable piece of game
// state; a restart replaces the whole value.
//
// A Session is driven from a single goroutine: HandleKey between ticks,
// then Tick.
type Session struct {
	level    level.Level
	settings Settings
	sound    audio.Player
	logger   *log.Logger
	engine   *physics.Engine

	Player  *Entity
	Enemies []*Enemy
	Coins   []*Coin

	Score   int
	Elapsed float64 // seconds
	Phase   Phase
	Camera  core.Vec // bottom-left of the viewport in world space
	Ticks   int
}

// NewSession sets up a fresh run of lvl. A nil sound plays nothing and a
// nil logger discards.
func NewSession(lvl level.Level, st Settings, sound audio.Player, logger *log.Logger) *Session {
	if sound == nil {
		sound = audio.Nop{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		level:    lvl,
		settings: st,
		sound:    sound,
		logger:   logger,
		Player:   NewEntity(lvl.PlayerStart, st.PlayerSize),
	}

	for _, p := range lvl.EnemySpawns {
		s.Enemies = append(s.Enemies, NewEnemy(p, st.EnemySize, st.PursuitSpeed))
	}
	for i, b := range lvl.Coins {
		s.Coins = append(s.Coins, NewCoin(i, b))
	}

	movers := make([]physics.Mover, len(lvl.Movers))
	for i, m := range lvl.Movers {
		movers[i] = physics.Mover(m)
	}
	s.engine = physics.New(&s.Player.Body, st.Gravity, lvl.Ladders, lvl.Platforms, movers)
	if st.JumpProbe > 0 {
		s.engine.JumpProbe = st.JumpProbe
	}

	s.Camera = CameraTarget(s.Player.Pos, st.Viewport)
	return s
}

// Restart rebuilds the session from its level and settings.
func (s *Session) Restart() {
	s.logger.Debug("restart", "level", s.level.ID, "score", s.Score, "elapsed", s.Elapsed)
	*s = *NewSession(s.level, s.settings, s.sound, s.logger)
}

// Level returns a copy of the level being played. The geometry slices are
// shared with the session and must only be read.
func (s *Session) Level() level.Level {
	return s.level
}

// Settings returns the session's tuning.
func (s *Session) Settings() Settings {
	return s.settings
}

// Movers returns the current boxes of the moving platforms.
func (s *Session) Movers() []core.Box {
	return s.engine.Movers()
}

// Surface reports the player's footing.
func (s *Session) Surface() Surface {
	return Surface{
		OnClimbable: s.engine.IsOnClimbable(),
		CanJump:     s.engine.CanJump(),
	}
}

// CoinsLeft returns how many coins are still uncollected.
func (s *Session) CoinsLeft() int {
	n := 0
	for _, c := range s.Coins {
		if c.Alive {
			n++
		}
	}
	return n
}

// SetViewport changes the camera viewport and recentres the camera.
func (s *Session) SetViewport(v core.Vec) {
	s.settings.Viewport = v
	s.Camera = CameraTarget(s.Player.Pos, v)
}

// HandleKey applies one key edge. Once the run has ended only a Restart
// press does anything.
func (s *Session) HandleKey(ev KeyEvent) {
	if ev.Key == KeyRestart {
		if ev.Pressed && s.Phase.Terminal() {
			s.Restart()
		}
		return
	}
	if s.Phase.Terminal() {
		return
	}

	vel, sounds := ApplyKey(s.Player.Vel, ev, s.Surface(), s.settings.Tuning)
	s.Player.Vel = vel
	for _, snd := range sounds {
		s.sound.Play(snd)
	}
}

// Tick advances the run by dt seconds and returns the events it applied.
// It does nothing once the run has ended. dt must be positive and finite.
func (s *Session) Tick(dt float64) []Event {
	if !(dt > 0) || math.IsInf(dt, 1) {
		panic("runaway: Tick called with invalid dt")
	}
	if s.Phase.Terminal() {
		return nil
	}
	s.Ticks++

	s.engine.Step()

	for _, e := range s.Enemies {
		e.Vel = Follow(e, s.Player.Pos)
		e.Advance()
	}

	events := Evaluate(s.Player, s.Enemies, s.Coins, s.level.Flag, s.settings.FallThreshold)
	for _, ev := range events {
		if ev.Losing() {
			s.Phase = PhaseGameOver
			s.sound.Play(audio.SoundGameOver)
			s.logger.Debug("game over", "cause", ev, "tick", s.Ticks, "score", s.Score)
			return events
		}
	}

	s.Elapsed += dt

	for _, ev := range events {
		switch ev.Kind {
		case EventCoinCollected:
			s.Score++
			s.sound.Play(audio.SoundCoin)
			s.logger.Debug("coin", "id", ev.CoinID, "score", s.Score)
		case EventReachedFlag:
			s.Phase = PhaseWon
			s.sound.Play(audio.SoundWin)
			s.logger.Debug("won", "tick", s.Ticks, "score", s.Score, "elapsed", s.Elapsed)
		}
	}

	s.Camera = CameraTarget(s.Player.Pos, s.settings.Viewport)
	return events
}

// CameraTarget returns the bottom-left corner of a viewport centred on
// pos, never showing negative world coordinates.
func CameraTarget(pos, viewport core.Vec) core.Vec {
	return core.Vec{
		X: math.Max(0, pos.X-viewport.X/2),
		Y: math.Max(0, pos.Y-viewport.Y/2),
	}
}
