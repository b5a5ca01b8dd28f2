package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/skyhop.yaml
var defaultYAML []byte

// DefaultFlappyConfig returns the built-in configuration. It mirrors the
// embedded defaults/skyhop.yaml.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: WorldConfig{
			Width:  400,
			Height: 600,
		},
		Avatar: AvatarConfig{
			X:    80,
			Size: 45,
		},
		Physics: PhysicsConfig{
			Gravity:     1,
			JumpImpulse: -9,
		},
		Obstacles: ObstacleConfig{
			Width:     60,
			GapHeight: 190,
			GapTopMin: 140,
			GapTopMax: 320,
			Speed:     1,
		},
		Timing: TimingConfig{
			TickInterval: 25 * time.Millisecond,
		},
		Scene: SceneConfig{
			GroundY: 500,
			Clouds: []Cloud{
				{X: 60, Y: 90},
				{X: 220, Y: 150},
				{X: 360, Y: 60},
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
