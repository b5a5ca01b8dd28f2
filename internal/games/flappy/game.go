// Package flappy implements the skyhop simulation: an avatar falls under
// constant gravity and must pass through the gaps of scrolling obstacle pairs.
//
// The package is pure: it never renders, reads input devices or sleeps. Hosts
// call Step (or Tick/OnJumpInput/Reset directly) from a single goroutine and
// draw from Snapshot.
package flappy

import (
	"math/rand"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
)

// State is the game state machine.
type State int

const (
	StateRunning State = iota
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Game implements the game loop and its Running/GameOver state machine.
type Game struct {
	cfg    config.FlappyConfig
	avatar Avatar
	track  *Track
	score  int
	state  State
	frame  uint64 // Number of Step calls, the time base of recordings
	ticks  uint64 // Number of simulated ticks since the last reset
}

// New creates a game from a validated configuration. Gap positions are drawn
// from src, so a seeded source makes the whole game deterministic.
func New(cfg config.FlappyConfig, src rand.Source) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Game{
		cfg:   cfg,
		track: NewTrack(cfg, rand.New(src)),
	}
	g.Reset()
	return g, nil
}

// NewWithSeed creates a game whose gap positions come from a seeded source.
func NewWithSeed(cfg config.FlappyConfig, seed int64) (*Game, error) {
	return New(cfg, rand.NewSource(seed))
}

// Reset clears the track, spawns one pair, puts the avatar back at its start
// position and returns to Running with a zero score. The random stream is not
// rewound, so consecutive rounds see different gaps.
func (g *Game) Reset() {
	g.track.Clear()
	g.track.SpawnPair()
	g.avatar = newAvatar(g.cfg)
	g.score = 0
	g.state = StateRunning
	g.ticks = 0
}

// OnJumpInput registers one jump impulse. It takes effect immediately and is
// ignored once the game is over.
func (g *Game) OnJumpInput() {
	if g.state != StateRunning {
		return
	}
	g.avatar.Jump(g.cfg.Physics.JumpImpulse)
}

// Tick advances the simulation by one fixed step. It is a no-op after game over.
func (g *Game) Tick() {
	if g.state != StateRunning {
		return
	}
	g.ticks++

	g.avatar.ApplyGravity(g.cfg.Physics.Gravity)
	g.track.Advance(g.cfg.Obstacles.Speed)
	g.score += g.track.CheckScoring(g.avatar.X)

	if g.track.CheckCollision(g.avatar.BoundingBox()) {
		g.state = StateGameOver
	}

	// Leaving the world is the only vertical loss; scenery is irrelevant.
	if g.avatar.Y < 0 || g.avatar.Y+g.avatar.Size > g.cfg.World.Height {
		g.state = StateGameOver
	}

	g.track.RecycleIfNeeded()
}

// Step applies one frame of input and then ticks. Restart is honoured only
// after game over; jump only while running. Hosts that collect input between
// ticks pass it here so that it is applied at the start of the tick.
func (g *Game) Step(in core.InputFrame) Snapshot {
	g.frame++

	if in.Has(core.ActionRestart) && g.state == StateGameOver {
		g.Reset()
	}
	if in.Has(core.ActionJump) {
		g.OnJumpInput()
	}

	g.Tick()
	return g.Snapshot()
}

// State returns the current state.
func (g *Game) State() State {
	return g.state
}

// Score returns the number of pairs passed since the last reset.
func (g *Game) Score() int {
	return g.score
}

// Frame returns the number of Step calls so far.
func (g *Game) Frame() uint64 {
	return g.frame
}

// Config returns the configuration the game was built with.
func (g *Game) Config() config.FlappyConfig {
	return g.cfg
}
