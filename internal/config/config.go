// Package config provides YAML-based configuration loading and validation for
// the skyhop simulation. Every constant of the game lives here so that hosts
// and tests can override it; nothing in the simulation is hardcoded.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// FlappyConfig contains all configuration for the game.
// Units are world units (the original playfield is 400x600) and ticks.
type FlappyConfig struct {
	World     WorldConfig    `yaml:"world"`
	Avatar    AvatarConfig   `yaml:"avatar"`
	Physics   PhysicsConfig  `yaml:"physics"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
	Timing    TimingConfig   `yaml:"timing"`
	Scene     SceneConfig    `yaml:"scene"`
}

// WorldConfig defines the playfield. The avatar loses when it leaves [0, Height).
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// AvatarConfig defines the player square.
type AvatarConfig struct {
	X    int `yaml:"x"`    // Fixed horizontal position (left edge)
	Size int `yaml:"size"` // Edge of the square hitbox
}

// PhysicsConfig defines the constant-acceleration model.
type PhysicsConfig struct {
	Gravity     int `yaml:"gravity"`      // Added to velocity every tick
	JumpImpulse int `yaml:"jump_impulse"` // Velocity after a jump (negative = up)
}

// ObstacleConfig defines obstacle pairs.
type ObstacleConfig struct {
	Width     int `yaml:"width"`
	GapHeight int `yaml:"gap_height"`
	GapTopMin int `yaml:"gap_top_min"` // Inclusive lower bound of the upper rect height
	GapTopMax int `yaml:"gap_top_max"` // Exclusive upper bound of the upper rect height
	Speed     int `yaml:"speed"`       // Leftward movement per tick, at most Width
}

// TimingConfig defines the fixed step of the simulation.
type TimingConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
}

// SceneConfig defines decorative background elements. None of it takes part
// in collision; frontends animate it from the frame counter.
type SceneConfig struct {
	GroundY int     `yaml:"ground_y"`
	Clouds  []Cloud `yaml:"clouds"`
}

// Cloud is a decorative cloud start position.
type Cloud struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Validate checks every field and returns all problems joined together.
// Each returned error wraps ErrInvalid.
func (c FlappyConfig) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	w, h := c.World.Width, c.World.Height
	if w <= 0 {
		bad("world.width must be positive, got %d", w)
	}
	if h <= 0 {
		bad("world.height must be positive, got %d", h)
	}

	if c.Avatar.Size <= 0 {
		bad("avatar.size must be positive, got %d", c.Avatar.Size)
	} else if h > 0 && h/2+c.Avatar.Size > h {
		bad("avatar.size %d does not fit below the start height %d", c.Avatar.Size, h/2)
	}
	if c.Avatar.X < 0 || (w > 0 && c.Avatar.X+c.Avatar.Size > w) {
		bad("avatar.x %d puts the avatar outside the world width %d", c.Avatar.X, w)
	}

	if c.Physics.Gravity < 0 {
		bad("physics.gravity must not be negative, got %d", c.Physics.Gravity)
	}
	if c.Physics.JumpImpulse >= 0 {
		bad("physics.jump_impulse must be negative (upwards), got %d", c.Physics.JumpImpulse)
	}

	o := c.Obstacles
	if o.Width <= 0 {
		bad("obstacles.width must be positive, got %d", o.Width)
	}
	if o.GapHeight <= 0 {
		bad("obstacles.gap_height must be positive, got %d", o.GapHeight)
	}
	if o.GapTopMin < 0 {
		bad("obstacles.gap_top_min must not be negative, got %d", o.GapTopMin)
	}
	if o.GapTopMax <= o.GapTopMin {
		bad("obstacles.gap_top_max %d must be greater than gap_top_min %d", o.GapTopMax, o.GapTopMin)
	}
	if h > 0 && o.GapTopMax-1+o.GapHeight > h {
		bad("obstacles gap (top up to %d, height %d) exceeds world height %d", o.GapTopMax-1, o.GapHeight, h)
	}
	// At most one pair may expire per tick.
	if o.Speed < 1 || (o.Width > 0 && o.Speed > o.Width) {
		bad("obstacles.speed must be in [1, obstacles.width=%d], got %d", o.Width, o.Speed)
	}

	if c.Timing.TickInterval <= 0 {
		bad("timing.tick_interval must be positive, got %s", c.Timing.TickInterval)
	}

	if c.Scene.GroundY < 0 || c.Scene.GroundY > h {
		bad("scene.ground_y %d is outside the world height %d", c.Scene.GroundY, h)
	}

	return errors.Join(errs...)
}

// TickRate returns the number of ticks per second implied by the tick interval.
func (c FlappyConfig) TickRate() int {
	if c.Timing.TickInterval <= 0 {
		return 0
	}
	return int(time.Second / c.Timing.TickInterval)
}
