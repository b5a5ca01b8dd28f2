package flappy

import "github.com/vovakirdan/skyhop/internal/core"

// AvatarSnapshot is the read-only view of the avatar.
type AvatarSnapshot struct {
	Box      core.Rect
	Velocity int
}

// ObstacleSnapshot is the read-only view of one obstacle pair.
type ObstacleSnapshot struct {
	Upper  core.Rect
	Lower  core.Rect
	Scored bool
}

// Snapshot captures everything a renderer needs. It shares no memory with the
// game, so holding on to it is safe while the game keeps ticking.
type Snapshot struct {
	Frame     uint64
	Ticks     uint64
	State     State
	Score     int
	Avatar    AvatarSnapshot
	Obstacles []ObstacleSnapshot
	WorldW    int
	WorldH    int
}

// GameOver is a convenience for State == StateGameOver.
func (s Snapshot) GameOver() bool {
	return s.State == StateGameOver
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	width := g.cfg.Obstacles.Width
	obstacles := make([]ObstacleSnapshot, 0, g.track.Len())
	for _, o := range g.track.obstacles {
		obstacles = append(obstacles, ObstacleSnapshot{
			Upper:  o.Upper(width),
			Lower:  o.Lower(width, g.cfg.World.Height),
			Scored: o.Scored,
		})
	}

	return Snapshot{
		Frame: g.frame,
		Ticks: g.ticks,
		State: g.state,
		Score: g.score,
		Avatar: AvatarSnapshot{
			Box:      g.avatar.BoundingBox(),
			Velocity: g.avatar.Velocity,
		},
		Obstacles: obstacles,
		WorldW:    g.cfg.World.Width,
		WorldH:    g.cfg.World.Height,
	}
}
