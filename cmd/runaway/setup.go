package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/runaway/internal/audio"
	"github.com/vovakirdan/runaway/internal/config"
	"github.com/vovakirdan/runaway/internal/core"
	"github.com/vovakirdan/runaway/internal/games/runaway"
	"github.com/vovakirdan/runaway/internal/level"
	"github.com/vovakirdan/runaway/internal/platform/tui"
	"github.com/vovakirdan/runaway/internal/storage"
)

// app is everything a command needs after flags are parsed.
type app struct {
	logger  *log.Logger
	config  config.RunAwayConfig
	catalog *level.Catalog
	sound   audio.Player

	logFile *os.File
}

// setup loads config and levels and registers one game per level.
// Terminal frontends own the screen, so their logs go to --log-file or
// nowhere; the others log to stderr. With withSound false every game is
// silent.
func setup(terminal, withSound bool) (*app, error) {
	a := &app{}
	logger, err := a.openLogger(terminal)
	if err != nil {
		return nil, err
	}
	a.logger = logger

	cfg, err := config.Load(flagConfig)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			a.close()
			return nil, fmt.Errorf("unknown difficulty %q", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}
	a.config = cfg

	cat, err := level.LoadCatalog(flagLevels, logger.WithPrefix("levels"))
	if err != nil {
		a.close()
		return nil, fmt.Errorf("loading levels: %w", err)
	}
	a.catalog = cat

	a.sound = audio.Nop{}
	if withSound {
		a.sound = audio.Open(audio.Config{
			Enabled:    cfg.Audio.Enabled,
			Volume:     cfg.Audio.Volume,
			SampleRate: cfg.Audio.SampleRate,
		}, logger.WithPrefix("audio"))
	}

	runaway.RegisterCatalog(cat, a.gameOptions())
	logger.Debug("setup done", "levels", cat.Len(), "pursuit_speed", cfg.Enemy.PursuitSpeed)
	return a, nil
}

func (a *app) openLogger(terminal bool) (*log.Logger, error) {
	var out io.Writer = os.Stderr
	if terminal {
		out = io.Discard
	}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		a.logFile = f
		out = f
	}

	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	return log.NewWithOptions(out, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "runaway",
	}), nil
}

func (a *app) gameOptions() runaway.Options {
	return runaway.Options{
		Settings:   runaway.SettingsFromConfig(a.config),
		Sound:      a.sound,
		Logger:     a.logger.WithPrefix("game"),
		CellWidth:  a.config.Terminal.CellWidth,
		CellHeight: a.config.Terminal.CellHeight,
	}
}

func (a *app) tuiOptions() tui.Options {
	return tui.Options{
		ReleaseAfter: time.Duration(a.config.Terminal.ReleaseAfterMs) * time.Millisecond,
		Logger:       a.logger.WithPrefix("tui"),
	}
}

// pickLevel returns the level named by args, or the first level.
func (a *app) pickLevel(args []string) (level.Level, error) {
	if len(args) > 0 {
		lvl, err := a.catalog.Get(args[0])
		if err != nil {
			return level.Level{}, fmt.Errorf("%w (run 'runaway levels' to see available levels)", err)
		}
		return lvl, nil
	}
	lvl, ok := a.catalog.Default()
	if !ok {
		return level.Level{}, fmt.Errorf("no levels available")
	}
	return lvl, nil
}

// openStore opens the runs database. A failure is logged and play goes on
// without saving.
func (a *app) openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		a.logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func (a *app) close() {
	if c, ok := a.sound.(interface{ Close() }); ok {
		c.Close()
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// terminalConfig sizes the runtime to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}
}
