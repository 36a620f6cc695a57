package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the search directories.
const FileName = "runaway.yaml"

// Load loads the Run Away! configuration.
// Search order: customPath -> ~/.runaway/configs/runaway.yaml ->
// ./configs/runaway.yaml -> embedded default.
// Only a failing customPath is an error; the other locations are optional.
func Load(customPath string) (RunAwayConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RunAwayConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return RunAwayConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(FileName), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultRunAwayYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of DefaultConfig, so a file only needs the keys
// it changes, and validates the result.
func Parse(data []byte) (RunAwayConfig, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunAwayConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return RunAwayConfig{}, err
	}
	return cfg, nil
}

// Validate checks that every size and speed is usable by the simulation.
func (c RunAwayConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("physics.gravity", c.Physics.Gravity)
	positive("physics.jump_speed", c.Physics.JumpSpeed)
	positive("physics.move_speed", c.Physics.MoveSpeed)
	positive("physics.climb_speed", c.Physics.ClimbSpeed)
	positive("physics.jump_probe", c.Physics.JumpProbe)
	positive("player.width", c.Player.Width)
	positive("player.height", c.Player.Height)
	positive("enemy.width", c.Enemy.Width)
	positive("enemy.height", c.Enemy.Height)
	positive("enemy.pursuit_speed", c.Enemy.PursuitSpeed)
	positive("viewport.width", float64(c.Viewport.Width))
	positive("viewport.height", float64(c.Viewport.Height))
	positive("terminal.cell_width", c.Terminal.CellWidth)
	positive("terminal.cell_height", c.Terminal.CellHeight)
	positive("terminal.release_after_ms", float64(c.Terminal.ReleaseAfterMs))
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume must be within [0, 1], got %v", c.Audio.Volume))
	}
	if c.Audio.Enabled && c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("audio.sample_rate must be positive, got %d", c.Audio.SampleRate))
	}

	return errors.Join(errs...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".runaway", "configs", filename)
}
