package flappy

import (
	"math/rand"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
)

// Obstacle is a pair of rectangles sharing one x-coordinate with a gap between them.
type Obstacle struct {
	X         int  // Horizontal position (left edge) of both rectangles
	GapTop    int  // Height of the upper rectangle, i.e. where the gap starts
	GapHeight int  // Height of the passable gap
	Scored    bool // Whether the avatar has passed this pair
}

// Upper returns the collision rectangle hanging from the top of the world.
func (o Obstacle) Upper(width int) core.Rect {
	return core.NewRect(o.X, 0, width, o.GapTop)
}

// Lower returns the collision rectangle standing on the bottom of the world.
func (o Obstacle) Lower(width, worldH int) core.Rect {
	lowerY := o.GapTop + o.GapHeight
	return core.NewRect(o.X, lowerY, width, worldH-lowerY)
}

// live reports whether the lower rectangle starts inside the world, which is
// what makes the pair count for scoring.
func (o Obstacle) live() bool {
	return o.GapTop+o.GapHeight > 0
}

// Track owns the ordered obstacle pairs. Insertion order is spawn order, which
// is also left-to-right order because every pair moves at the same speed.
type Track struct {
	obstacles []Obstacle
	rng       *rand.Rand
	cfg       config.ObstacleConfig
	worldW    int
	worldH    int
}

// NewTrack creates an empty track drawing gap positions from rng.
func NewTrack(cfg config.FlappyConfig, rng *rand.Rand) *Track {
	return &Track{
		obstacles: make([]Obstacle, 0, 4),
		rng:       rng,
		cfg:       cfg.Obstacles,
		worldW:    cfg.World.Width,
		worldH:    cfg.World.Height,
	}
}

// Clear removes every pair.
func (t *Track) Clear() {
	t.obstacles = t.obstacles[:0]
}

// SpawnPair appends a new pair at the right edge of the world with a gap top
// drawn uniformly from [GapTopMin, GapTopMax).
func (t *Track) SpawnPair() {
	gapTop := t.cfg.GapTopMin + t.rng.Intn(t.cfg.GapTopMax-t.cfg.GapTopMin)
	t.obstacles = append(t.obstacles, Obstacle{
		X:         t.worldW,
		GapTop:    gapTop,
		GapHeight: t.cfg.GapHeight,
	})
}

// Advance moves every pair left by speed.
func (t *Track) Advance(speed int) {
	for i := range t.obstacles {
		t.obstacles[i].X -= speed
	}
}

// CheckScoring marks every live, unscored pair whose trailing edge is left of
// avatarX as scored and returns how many were marked.
func (t *Track) CheckScoring(avatarX int) int {
	scored := 0
	for i := range t.obstacles {
		o := &t.obstacles[i]
		if !o.Scored && o.live() && o.X+t.cfg.Width < avatarX {
			o.Scored = true
			scored++
		}
	}
	return scored
}

// CheckCollision tests if the given rectangle intersects either rectangle of any pair.
func (t *Track) CheckCollision(box core.Rect) bool {
	for _, o := range t.obstacles {
		if box.Intersects(o.Upper(t.cfg.Width)) || box.Intersects(o.Lower(t.cfg.Width, t.worldH)) {
			return true
		}
	}
	return false
}

// RecycleIfNeeded removes the leading pair once it is fully left of the world
// and spawns exactly one replacement. Only the leading pair is examined, so at
// most one pair is recycled per call; config validation keeps speed <= width,
// which guarantees no second pair can expire in the same tick.
func (t *Track) RecycleIfNeeded() bool {
	if len(t.obstacles) == 0 {
		return false
	}
	if t.obstacles[0].X+t.cfg.Width >= 0 {
		return false
	}
	t.obstacles = append(t.obstacles[:0], t.obstacles[1:]...)
	t.SpawnPair()
	return true
}

// Len returns the number of pairs on the track.
func (t *Track) Len() int {
	return len(t.obstacles)
}

// Obstacles returns a copy of the current pairs.
func (t *Track) Obstacles() []Obstacle {
	out := make([]Obstacle, len(t.obstacles))
	copy(out, t.obstacles)
	return out
}
