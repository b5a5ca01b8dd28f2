// Package replay records the input of a game session and plays it back.
// A recording is the seed, the configuration and the frames on which
// actions arrived; since the simulation is deterministic that is enough to
// rebuild every snapshot.
package replay

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/games/flappy"
)

var (
	// ErrCorrupt is returned for recordings whose events cannot be replayed.
	ErrCorrupt = errors.New("replay: corrupt recording")

	// ErrMismatch is returned by Verify when playback does not reproduce the
	// recorded final state.
	ErrMismatch = errors.New("replay: final state mismatch")
)

// recordedActions are the actions the game reacts to. Everything else is
// frontend business and is not stored.
var recordedActions = []core.Action{core.ActionRestart, core.ActionJump}

// Event is one action delivered on a given frame.
type Event struct {
	Frame  uint64      `yaml:"frame"`
	Action core.Action `yaml:"action"`
}

// Recording is a complete, replayable game session.
type Recording struct {
	ID        int64
	Player    string
	Seed      int64
	Config    config.FlappyConfig
	Events    []Event
	Frames    uint64 // Number of Step calls in the session
	Digest    string // Digest of the final snapshot
	CreatedAt time.Time
}

// Recorder wraps a game and logs every action it is stepped with.
// It implements registry.Driver.
type Recorder struct {
	game    *flappy.Game
	seed    int64
	events  []Event
	started time.Time
}

// NewRecorder starts a new seeded game and records it.
func NewRecorder(cfg config.FlappyConfig, seed int64) (*Recorder, error) {
	game, err := flappy.NewWithSeed(cfg, seed)
	if err != nil {
		return nil, err
	}
	return &Recorder{game: game, seed: seed, started: time.Now()}, nil
}

// Step records the input for the upcoming frame and steps the game.
func (r *Recorder) Step(in core.InputFrame) flappy.Snapshot {
	frame := r.game.Frame()
	for _, a := range recordedActions {
		if in.Has(a) {
			r.events = append(r.events, Event{Frame: frame, Action: a})
		}
	}
	return r.game.Step(in)
}

// Snapshot returns the current game snapshot.
func (r *Recorder) Snapshot() flappy.Snapshot {
	return r.game.Snapshot()
}

// Config returns the game configuration.
func (r *Recorder) Config() config.FlappyConfig {
	return r.game.Config()
}

// Recording returns the session so far. The recorder can keep going
// afterwards; the returned value does not share memory with it.
func (r *Recorder) Recording() Recording {
	events := make([]Event, len(r.events))
	copy(events, r.events)

	return Recording{
		Seed:      r.seed,
		Config:    r.game.Config(),
		Events:    events,
		Frames:    r.game.Frame(),
		Digest:    Digest(r.game.Snapshot()),
		CreatedAt: r.started,
	}
}

// Player replays a recording. It implements registry.Driver so any frontend
// can present a recording; live input passed to Step is ignored.
type Player struct {
	game   *flappy.Game
	events []Event
	next   int
	frames uint64
}

// NewPlayer rebuilds the recorded game, ready to replay from frame zero.
func NewPlayer(rec Recording) (*Player, error) {
	for i, e := range rec.Events {
		if e.Frame >= rec.Frames {
			return nil, fmt.Errorf("%w: event %d on frame %d of %d", ErrCorrupt, i, e.Frame, rec.Frames)
		}
		if i > 0 && e.Frame < rec.Events[i-1].Frame {
			return nil, fmt.Errorf("%w: event %d is out of order", ErrCorrupt, i)
		}
	}

	game, err := flappy.NewWithSeed(rec.Config, rec.Seed)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	return &Player{game: game, events: rec.Events, frames: rec.Frames}, nil
}

// Done reports whether every recorded frame has been played.
func (p *Player) Done() bool {
	return p.game.Frame() >= p.frames
}

// Step plays the next recorded frame. Once the recording is exhausted it
// keeps returning the final snapshot.
func (p *Player) Step(core.InputFrame) flappy.Snapshot {
	if p.Done() {
		return p.game.Snapshot()
	}

	in := core.NewInputFrame()
	frame := p.game.Frame()
	for p.next < len(p.events) && p.events[p.next].Frame == frame {
		in.Set(p.events[p.next].Action)
		p.next++
	}
	return p.game.Step(in)
}

// Snapshot returns the current snapshot of the replayed game.
func (p *Player) Snapshot() flappy.Snapshot {
	return p.game.Snapshot()
}

// Config returns the recorded configuration.
func (p *Player) Config() config.FlappyConfig {
	return p.game.Config()
}

// Run replays the whole recording without any delay and returns the final
// snapshot.
func Run(rec Recording) (flappy.Snapshot, error) {
	p, err := NewPlayer(rec)
	if err != nil {
		return flappy.Snapshot{}, err
	}
	for !p.Done() {
		p.Step(core.InputFrame{})
	}
	return p.Snapshot(), nil
}

// Verify replays the recording and checks that it ends in the recorded state.
func Verify(rec Recording) error {
	final, err := Run(rec)
	if err != nil {
		return err
	}
	if got := Digest(final); got != rec.Digest {
		return fmt.Errorf("%w: expected %s, got %s", ErrMismatch, short(rec.Digest), short(got))
	}
	return nil
}

// Digest fingerprints a snapshot.
func Digest(s flappy.Snapshot) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%+v", s)))
	return hex.EncodeToString(sum[:])
}

func short(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}
