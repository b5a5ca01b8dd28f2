package flappy

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g, err := NewWithSeed(config.DefaultFlappyConfig(), seed)
	if err != nil {
		t.Fatalf("NewWithSeed() failed: %v", err)
	}
	return g
}

// autopilot flaps whenever the avatar's centre sinks below the centre of the
// leading gap while not already rising.
func autopilot(s Snapshot) core.InputFrame {
	in := core.NewInputFrame()
	if len(s.Obstacles) == 0 {
		return in
	}
	o := s.Obstacles[0]
	target := o.Upper.Bottom() + (o.Lower.Y-o.Upper.Bottom())/2
	center := s.Avatar.Box.Y + s.Avatar.Box.H/2
	if center > target && s.Avatar.Velocity >= 0 {
		in.Set(core.ActionJump)
	}
	return in
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Obstacles.Speed = cfg.Obstacles.Width + 1

	if _, err := NewWithSeed(cfg, 1); err == nil {
		t.Error("New should fail fast on speed > obstacle width")
	}
}

func TestInitialState(t *testing.T) {
	g := newTestGame(t, 1)
	s := g.Snapshot()

	if s.State != StateRunning {
		t.Errorf("initial state = %v, expected running", s.State)
	}
	if s.Avatar.Box != core.NewRect(80, 300, 45, 45) || s.Avatar.Velocity != 0 {
		t.Errorf("initial avatar = %+v", s.Avatar)
	}
	if len(s.Obstacles) != 1 {
		t.Fatalf("expected one obstacle pair, got %d", len(s.Obstacles))
	}
	if s.Obstacles[0].Upper.X != 400 || s.Obstacles[0].Scored {
		t.Errorf("first pair should spawn unscored at the right edge, got %+v", s.Obstacles[0])
	}
}

func TestGravityScenario(t *testing.T) {
	g := newTestGame(t, 1)

	for i := 0; i < 5; i++ {
		g.Tick()
	}

	if g.avatar.Velocity != 5 {
		t.Errorf("velocity after 5 ticks = %d, expected 5", g.avatar.Velocity)
	}
	if g.avatar.Y != 315 {
		t.Errorf("y after 5 ticks = %d, expected 315", g.avatar.Y)
	}
}

func TestVelocityIncreasesByGravity(t *testing.T) {
	g := newTestGame(t, 3)

	prev := g.avatar.Velocity
	for i := 0; i < 10 && g.State() == StateRunning; i++ {
		g.Tick()
		if g.avatar.Velocity != prev+g.cfg.Physics.Gravity {
			t.Fatalf("tick %d: velocity %d, expected %d", i, g.avatar.Velocity, prev+g.cfg.Physics.Gravity)
		}
		prev = g.avatar.Velocity
	}
}

func TestJumpScenario(t *testing.T) {
	g := newTestGame(t, 1)
	g.avatar.Velocity = 5

	g.OnJumpInput()
	if g.avatar.Velocity != -9 {
		t.Errorf("velocity right after jump = %d, expected -9", g.avatar.Velocity)
	}

	g.Tick()
	if g.avatar.Velocity != -8 {
		t.Errorf("velocity one tick after jump = %d, expected -8", g.avatar.Velocity)
	}
}

func TestJumpIgnoredWhenGameOver(t *testing.T) {
	g := newTestGame(t, 1)
	g.state = StateGameOver
	g.avatar.Velocity = 7

	g.OnJumpInput()
	if g.avatar.Velocity != 7 {
		t.Errorf("jump after game over changed velocity to %d", g.avatar.Velocity)
	}
}

func TestTickIsNoOpWhenGameOver(t *testing.T) {
	g := newTestGame(t, 1)
	g.state = StateGameOver

	before := g.Snapshot()
	g.Tick()
	after := g.Snapshot()

	if !reflect.DeepEqual(before, after) {
		t.Errorf("tick after game over changed state:\n%+v\n%+v", before, after)
	}
}

func TestCollisionEndsGame(t *testing.T) {
	tests := []struct {
		name    string
		pairX   int
		avatarY int
		over    bool
	}{
		{"inside gap", 80, 200, false},
		{"hits upper", 80, 100, true},
		{"hits lower", 80, 330, true},
		{"touching edge only", 125, 100, false},
		{"overlaps by one", 124, 100, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, 1)
			// Gap spans [150, 340); speed 1 moves the pair to pairX-1 before the check.
			g.track.obstacles = []Obstacle{{X: tc.pairX + 1, GapTop: 150, GapHeight: 190}}
			g.avatar.Y = tc.avatarY
			g.avatar.Velocity = -1 // cancels gravity for this tick

			g.Tick()

			if got := g.State() == StateGameOver; got != tc.over {
				t.Errorf("game over = %v, expected %v (avatar %+v)", got, tc.over, g.avatar.BoundingBox())
			}
		})
	}
}

func TestWorldBounds(t *testing.T) {
	tests := []struct {
		name     string
		y, vel   int
		expected State
	}{
		// v=-8 moves y from 5 to -3
		{"above top", 5, -9, StateGameOver},
		{"at top", 8, -9, StateRunning},
		// The ground line at 500 is scenery only
		{"below ground decoration", 520, -1, StateRunning},
		{"touching bottom", 555, -1, StateRunning},
		{"past bottom", 556, -1, StateGameOver},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, 1)
			g.avatar.Y = tc.y
			g.avatar.Velocity = tc.vel

			g.Tick()

			if g.State() != tc.expected {
				t.Errorf("state = %v, expected %v (y=%d)", g.State(), tc.expected, g.avatar.Y)
			}
		})
	}
}

func TestFallingOutEndsGame(t *testing.T) {
	g := newTestGame(t, 1)

	ticks := 0
	for g.State() == StateRunning && ticks < 100 {
		g.Step(core.NewInputFrame())
		ticks++
	}

	if g.State() != StateGameOver {
		t.Fatal("avatar should eventually fall out of the world")
	}
	// 300 + n(n+1)/2 + 45 > 600 first holds at n = 23.
	if ticks != 23 {
		t.Errorf("fell out after %d ticks, expected 23", ticks)
	}
}

func TestResetAfterGameOver(t *testing.T) {
	g := newTestGame(t, 9)
	for g.State() == StateRunning {
		g.Tick()
	}

	g.Reset()
	s := g.Snapshot()

	if s.Score != 0 || s.State != StateRunning || s.Ticks != 0 {
		t.Errorf("reset snapshot = %+v", s)
	}
	if s.Avatar.Box.Y != 300 || s.Avatar.Velocity != 0 {
		t.Errorf("reset avatar = %+v", s.Avatar)
	}
	if len(s.Obstacles) != 1 || s.Obstacles[0].Upper.X != 400 {
		t.Errorf("reset should leave exactly one fresh pair, got %+v", s.Obstacles)
	}
}

func TestStepRestartOnlyWhenGameOver(t *testing.T) {
	g := newTestGame(t, 1)

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)

	g.Step(core.NewInputFrame())
	g.Step(restart)
	if g.Snapshot().Ticks != 2 {
		t.Error("restart while running should be ignored")
	}

	for g.State() == StateRunning {
		g.Step(core.NewInputFrame())
	}
	frame := g.Frame()

	s := g.Step(restart)
	if s.State != StateRunning || s.Ticks != 1 {
		t.Errorf("restart after game over should reset and tick once, got %+v", s)
	}
	if s.Frame != frame+1 {
		t.Errorf("frame should keep counting across restarts, got %d", s.Frame)
	}
}

func TestLongRunScoresAndKeepsTrackLength(t *testing.T) {
	g := newTestGame(t, 42)

	s := g.Snapshot()
	for i := 0; i < 2000; i++ {
		prevScore := s.Score
		s = g.Step(autopilot(s))

		if s.State != StateRunning {
			t.Fatalf("autopilot crashed at tick %d: %+v", i+1, s)
		}
		if len(s.Obstacles) != 1 {
			t.Fatalf("tick %d: track length %d, expected 1", i+1, len(s.Obstacles))
		}
		if d := s.Score - prevScore; d < 0 || d > 1 {
			t.Fatalf("tick %d: score jumped by %d", i+1, d)
		}
	}

	// Pairs are passed at ticks 381, 842, 1303 and 1764.
	if s.Score != 4 || g.Score() != 4 {
		t.Errorf("score after 2000 ticks = %d (Score() = %d), expected 4", s.Score, g.Score())
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := newTestGame(t, 12345)
		s := g.Snapshot()
		for i := 0; i < 1500; i++ {
			s = g.Step(autopilot(s))
		}
		return s
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed and inputs produced different snapshots:\n%+v\n%+v", a, b)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	g := newTestGame(t, 1)
	s := g.Snapshot()
	s.Obstacles[0].Scored = true
	s.Obstacles[0].Upper.X = -1000

	if g.track.obstacles[0].Scored || g.track.obstacles[0].X != 400 {
		t.Error("mutating a snapshot should not affect the game")
	}
}

func TestStateString(t *testing.T) {
	if StateRunning.String() != "running" || StateGameOver.String() != "game_over" {
		t.Error("unexpected state names")
	}
}
