package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skyhop/internal/games/flappy"
	"github.com/vovakirdan/skyhop/internal/registry"
	"github.com/vovakirdan/skyhop/internal/replay"
	"github.com/vovakirdan/skyhop/internal/storage"
)

var (
	flagFrontend string
	flagSeed     int64
	flagRecord   bool
)

// terminalFrontends need stdout to be a terminal.
var terminalFrontends = map[string]bool{"tui": true, "console": true}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing skyhop.

Controls:
  Space/Up/W  - Flap
  R           - Restart (after game over)
  Ctrl+S      - Save a text screenshot (tui)
  Q/Esc       - Quit

Examples:
  skyhop play
  skyhop play --frontend console
  skyhop play --frontend window --record
  skyhop play --seed 42 --config ./my-skyhop.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagFrontend, "frontend", "tui", "Frontend to play in (see 'skyhop frontends')")
	playCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Record the game to the replay database")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fe, err := createFrontend(flagFrontend)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var (
		driver   registry.Driver
		recorder *replay.Recorder
	)
	if flagRecord {
		recorder, err = replay.NewRecorder(cfg, seed)
		driver = recorder
	} else {
		driver, err = flappy.NewWithSeed(cfg, seed)
	}
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug("starting game", "frontend", fe.ID(), "seed", seed, "tick", cfg.Timing.TickInterval)
	if err := fe.Run(ctx, driver); err != nil {
		return fmt.Errorf("running %s frontend: %w", fe.ID(), err)
	}

	fmt.Printf("Final score: %d\n", driver.Snapshot().Score)

	if recorder != nil {
		saveRecording(recorder.Recording())
	}
	return nil
}

// createFrontend looks up a frontend and checks that it can run here.
func createFrontend(id string) (registry.Frontend, error) {
	if !registry.Exists(id) {
		ids := make([]string, 0)
		for _, f := range registry.List() {
			ids = append(ids, f.ID)
		}
		return nil, fmt.Errorf("unknown frontend %q (available: %s)", id, strings.Join(ids, ", "))
	}

	if terminalFrontends[id] {
		fd := int(os.Stdout.Fd())
		if !term.IsTerminal(fd) {
			return nil, errors.New("the " + id + " frontend needs a terminal; try --frontend window")
		}
		if w, h, err := term.GetSize(fd); err == nil {
			logger.Debug("terminal size", "width", w, "height", h)
		}
	}

	return registry.Create(id)
}

// saveRecording stores a recording, warning instead of failing: the game has
// already been played.
func saveRecording(rec replay.Recording) {
	if len(rec.Events) == 0 {
		logger.Info("nothing to record, no input was given")
		return
	}
	if user := os.Getenv("USER"); user != "" {
		rec.Player = user
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open replay database", "error", err)
		return
	}
	defer store.Close()

	id, err := store.SaveReplay(rec)
	if err != nil {
		logger.Warn("could not save replay", "error", err)
		return
	}
	fmt.Printf("Saved replay #%d (%d frames). Watch it with 'skyhop replays play %d'.\n", id, rec.Frames, id)
}
