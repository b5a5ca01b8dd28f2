package replay

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/games/flappy"
)

func newTestRecorder(t *testing.T, seed int64) *Recorder {
	t.Helper()
	r, err := NewRecorder(config.DefaultFlappyConfig(), seed)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	return r
}

// hover flaps whenever the avatar sinks below mid-screen and restarts after
// a crash, so sessions contain both kinds of recorded input.
func hover(snap flappy.Snapshot) core.InputFrame {
	in := core.NewInputFrame()
	switch {
	case snap.GameOver():
		in.Set(core.ActionRestart)
	case snap.Avatar.Box.Y > 300 && snap.Avatar.Velocity >= 0:
		in.Set(core.ActionJump)
	}
	return in
}

func TestRecorderEvents(t *testing.T) {
	r := newTestRecorder(t, 1)

	jump := core.NewInputFrame()
	jump.Set(core.ActionJump)
	noise := core.NewInputFrame()
	noise.Set(core.ActionConfirm)

	r.Step(core.NewInputFrame())
	r.Step(jump)
	r.Step(noise)
	r.Step(jump)

	rec := r.Recording()
	expected := []Event{
		{Frame: 1, Action: core.ActionJump},
		{Frame: 3, Action: core.ActionJump},
	}
	if !reflect.DeepEqual(rec.Events, expected) {
		t.Errorf("events = %+v, expected %+v", rec.Events, expected)
	}
	if rec.Frames != 4 || rec.Seed != 1 {
		t.Errorf("frames = %d, seed = %d", rec.Frames, rec.Seed)
	}
	if rec.Digest != Digest(r.Snapshot()) {
		t.Error("digest should describe the current snapshot")
	}

	// The returned recording is detached from the recorder.
	rec.Events[0].Frame = 99
	if r.Recording().Events[0].Frame != 1 {
		t.Error("Recording() should copy its events")
	}
}

func TestRoundTrip(t *testing.T) {
	r := newTestRecorder(t, 3)
	snap := r.Snapshot()
	restarts := 0
	for i := 0; i < 1500; i++ {
		in := hover(snap)
		// Let the avatar fall out first so the session contains a restart.
		if i < 30 && !snap.GameOver() {
			in = core.NewInputFrame()
		}
		if in.Has(core.ActionRestart) {
			restarts++
		}
		snap = r.Step(in)
	}
	if restarts == 0 {
		t.Fatal("expected at least one restart")
	}

	rec := r.Recording()
	final, err := Run(rec)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reflect.DeepEqual(final, r.Snapshot()) {
		t.Errorf("replayed snapshot %+v differs from recorded %+v", final, r.Snapshot())
	}
	if err := Verify(rec); err != nil {
		t.Errorf("Verify: %v", err)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	r := newTestRecorder(t, 1)
	for i := 0; i < 10; i++ {
		r.Step(core.NewInputFrame())
	}
	rec := r.Recording()

	// A jump on the last frame leaves velocity at -8 instead of 10.
	rec.Events = append(rec.Events, Event{Frame: 9, Action: core.ActionJump})

	err := Verify(rec)
	if !errors.Is(err, ErrMismatch) {
		t.Errorf("Verify() = %v, expected ErrMismatch", err)
	}
}

func TestNewPlayerRejectsCorruptEvents(t *testing.T) {
	base := Recording{Seed: 1, Config: config.DefaultFlappyConfig(), Frames: 5}

	tests := []struct {
		name   string
		events []Event
	}{
		{"past the end", []Event{{Frame: 5, Action: core.ActionJump}}},
		{"out of order", []Event{{Frame: 3, Action: core.ActionJump}, {Frame: 1, Action: core.ActionJump}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := base
			rec.Events = tc.events
			if _, err := NewPlayer(rec); !errors.Is(err, ErrCorrupt) {
				t.Errorf("NewPlayer() = %v, expected ErrCorrupt", err)
			}
		})
	}
}

func TestNewPlayerRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Obstacles.Speed = 0

	_, err := NewPlayer(Recording{Config: cfg, Frames: 1})
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("NewPlayer() = %v, expected config.ErrInvalid", err)
	}
}

func TestPlayerStopsAtEnd(t *testing.T) {
	r := newTestRecorder(t, 1)
	for i := 0; i < 3; i++ {
		r.Step(core.NewInputFrame())
	}

	p, err := NewPlayer(r.Recording())
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}

	jump := core.NewInputFrame()
	jump.Set(core.ActionJump)
	for !p.Done() {
		// Live input is ignored during playback.
		p.Step(jump)
	}

	final := p.Snapshot()
	if final.Frame != 3 || final.Avatar.Velocity != 3 {
		t.Errorf("final snapshot frame %d velocity %d", final.Frame, final.Avatar.Velocity)
	}
	if again := p.Step(jump); !reflect.DeepEqual(again, final) {
		t.Error("stepping past the end should not advance the game")
	}
	if !reflect.DeepEqual(p.Config(), r.Config()) {
		t.Error("player should expose the recorded configuration")
	}
}
