package flappy

import (
	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
)

// Avatar is the player-controlled square. X never changes after creation.
type Avatar struct {
	X        int // Fixed horizontal position (left edge)
	Y        int // Top of the hitbox, grows downwards
	Size     int // Edge of the square hitbox
	Velocity int // Vertical velocity, negative = up
}

// newAvatar places the avatar at its start position: fixed x, mid-world y, at rest.
func newAvatar(cfg config.FlappyConfig) Avatar {
	return Avatar{
		X:    cfg.Avatar.X,
		Y:    cfg.World.Height / 2,
		Size: cfg.Avatar.Size,
	}
}

// ApplyGravity accelerates the avatar and moves it by the new velocity.
// No clamping happens here; leaving the world is detected by the game.
func (a *Avatar) ApplyGravity(gravity int) {
	a.Velocity += gravity
	a.Y += a.Velocity
}

// Jump replaces the current velocity with the jump impulse.
func (a *Avatar) Jump(impulse int) {
	a.Velocity = impulse
}

// BoundingBox returns the avatar's collision rectangle.
func (a Avatar) BoundingBox() core.Rect {
	return core.NewRect(a.X, a.Y, a.Size, a.Size)
}
