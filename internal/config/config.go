// Package config provides YAML-based game configuration loading and
// difficulty presets for Run Away!.
package config

// RunAwayConfig contains all tuning for the platformer.
// Distances are world units (one tile is 64 units by default), speeds are
// world units per tick.
type RunAwayConfig struct {
	Physics  PhysicsConfig  `yaml:"physics"`
	Player   PlayerConfig   `yaml:"player"`
	Enemy    EnemyConfig    `yaml:"enemy"`
	Rules    RulesConfig    `yaml:"rules"`
	Viewport ViewportConfig `yaml:"viewport"`
	Terminal TerminalConfig `yaml:"terminal"`
	Audio    AudioConfig    `yaml:"audio"`
}

// PhysicsConfig defines player movement parameters.
type PhysicsConfig struct {
	Gravity    float64 `yaml:"gravity"`
	JumpSpeed  float64 `yaml:"jump_speed"`
	MoveSpeed  float64 `yaml:"move_speed"`
	ClimbSpeed float64 `yaml:"climb_speed"`
	JumpProbe  float64 `yaml:"jump_probe"` // Distance probed below the player for CanJump
}

// PlayerConfig defines the player's collision size.
type PlayerConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// EnemyConfig defines the chasing enemy.
type EnemyConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	PursuitSpeed float64 `yaml:"pursuit_speed"`
}

// RulesConfig defines win/loss rule parameters.
type RulesConfig struct {
	FallThreshold float64 `yaml:"fall_threshold"` // Player centre Y below this ends the run
}

// ViewportConfig is the camera viewport of the window frontend in world units.
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TerminalConfig controls how the world maps onto terminal cells.
type TerminalConfig struct {
	CellWidth      float64 `yaml:"cell_width"`       // World units per column
	CellHeight     float64 `yaml:"cell_height"`      // World units per row
	ReleaseAfterMs int     `yaml:"release_after_ms"` // Synthesized key release delay
}

// AudioConfig controls sound effects.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"` // 0.0 to 1.0
	SampleRate int     `yaml:"sample_rate"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string into a preset.
// Unknown or empty strings yield "" which leaves the config untouched.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// PursuitSpeedForPreset returns the enemy speed for a preset and whether the
// preset overrides the configured value at all.
func PursuitSpeedForPreset(preset DifficultyPreset) (float64, bool) {
	switch preset {
	case DifficultyEasy:
		return 3, true
	case DifficultyNormal:
		return 4, true
	case DifficultyHard:
		return 5, true
	default:
		return 0, false
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *RunAwayConfig, preset DifficultyPreset) {
	if speed, ok := PursuitSpeedForPreset(preset); ok {
		cfg.Enemy.PursuitSpeed = speed
	}
}
