package config

import (
	_ "embed"
)

//go:embed defaults/runaway.yaml
var defaultRunAwayYAML []byte

// DefaultConfig returns the hard-coded Run Away! configuration.
// It mirrors defaults/runaway.yaml and is the last fallback if the embedded
// file fails to parse.
func DefaultConfig() RunAwayConfig {
	return RunAwayConfig{
		Physics: PhysicsConfig{
			Gravity:    1.5,
			JumpSpeed:  18,
			MoveSpeed:  6,
			ClimbSpeed: 6,
			JumpProbe:  5,
		},
		Player: PlayerConfig{
			Width:  64,
			Height: 96,
		},
		Enemy: EnemyConfig{
			Width:        64,
			Height:       64,
			PursuitSpeed: 4,
		},
		Rules: RulesConfig{
			FallThreshold: -100,
		},
		Viewport: ViewportConfig{
			Width:  1000,
			Height: 650,
		},
		Terminal: TerminalConfig{
			CellWidth:      16,
			CellHeight:     32,
			ReleaseAfterMs: 450,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.5,
			SampleRate: 44100,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultRunAwayYAML
}
