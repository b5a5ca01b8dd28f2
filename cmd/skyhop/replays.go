package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/replay"
	"github.com/vovakirdan/skyhop/internal/storage"
)

var (
	flagListLimit  int
	flagShowInputs bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Manage recorded games",
	Long: `List, inspect, watch, verify and delete recorded games.

Games are recorded with 'skyhop play --record' and by the SSH server.

Examples:
  skyhop replays list --limit 5
  skyhop replays show 3 --inputs
  skyhop replays play 3 --frontend window
  skyhop replays verify 3
  skyhop replays delete 3`,
}

var replaysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded games, newest first",
	Args:  cobra.NoArgs,
	RunE:  runReplaysList,
}

var replaysShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a recording's details",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplaysShow,
}

var replaysPlayCmd = &cobra.Command{
	Use:   "play <id>",
	Short: "Watch a recording",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplaysPlay,
}

var replaysVerifyCmd = &cobra.Command{
	Use:   "verify <id>",
	Short: "Check that a recording reproduces its final state",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplaysVerify,
}

var replaysDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recording",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplaysDelete,
}

func init() {
	replaysListCmd.Flags().IntVar(&flagListLimit, "limit", 20, "Maximum number of recordings to list (0 = all)")
	replaysShowCmd.Flags().BoolVar(&flagShowInputs, "inputs", false, "Also print every recorded input")
	replaysPlayCmd.Flags().StringVar(&flagFrontend, "frontend", "tui", "Frontend to watch in")

	replaysCmd.AddCommand(replaysListCmd)
	replaysCmd.AddCommand(replaysShowCmd)
	replaysCmd.AddCommand(replaysPlayCmd)
	replaysCmd.AddCommand(replaysVerifyCmd)
	replaysCmd.AddCommand(replaysDeleteCmd)
}

func openStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("opening replay database: %w", err)
	}
	return store, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid recording id %q", arg)
	}
	return id, nil
}

// loadRecording reads a recording by its command-line id.
func loadRecording(arg string) (replay.Recording, error) {
	id, err := parseID(arg)
	if err != nil {
		return replay.Recording{}, err
	}
	store, err := openStore()
	if err != nil {
		return replay.Recording{}, err
	}
	defer store.Close()

	rec, err := store.Replay(id)
	if errors.Is(err, storage.ErrNotFound) {
		return rec, fmt.Errorf("no recording with id %d", id)
	}
	return rec, err
}

func runReplaysList(_ *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	list, err := store.ListReplays(flagListLimit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No recordings yet. Record one with 'skyhop play --record'.")
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPLAYER\tLENGTH\tINPUTS\tSEED\tRECORDED")
	for _, r := range list {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\n",
			r.ID, player, r.Duration(cfg.Timing.TickInterval).Round(100*time.Millisecond), r.Inputs, r.Seed,
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func runReplaysShow(_ *cobra.Command, args []string) error {
	rec, err := loadRecording(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Recording #%d\n", rec.ID)
	fmt.Printf("  Player:   %s\n", rec.Player)
	fmt.Printf("  Recorded: %s\n", rec.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("  Seed:     %d\n", rec.Seed)
	fmt.Printf("  Frames:   %d\n", rec.Frames)
	fmt.Printf("  Inputs:   %d\n", len(rec.Events))
	fmt.Printf("  Digest:   %s\n", rec.Digest)

	data, err := config.Marshal(rec.Config)
	if err != nil {
		return err
	}
	fmt.Printf("\nConfiguration:\n%s", data)

	if flagShowInputs {
		fmt.Println("\nInputs:")
		for _, ev := range rec.Events {
			fmt.Printf("  %8d  %s\n", ev.Frame, ev.Action)
		}
	}
	return nil
}

func runReplaysPlay(_ *cobra.Command, args []string) error {
	rec, err := loadRecording(args[0])
	if err != nil {
		return err
	}
	player, err := replay.NewPlayer(rec)
	if err != nil {
		return err
	}
	fe, err := createFrontend(flagFrontend)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug("playing recording", "id", rec.ID, "frontend", fe.ID(), "frames", rec.Frames)
	if err := fe.Run(ctx, player); err != nil {
		return fmt.Errorf("running %s frontend: %w", fe.ID(), err)
	}
	return nil
}

func runReplaysVerify(_ *cobra.Command, args []string) error {
	rec, err := loadRecording(args[0])
	if err != nil {
		return err
	}
	if err := replay.Verify(rec); err != nil {
		return fmt.Errorf("recording #%d: %w", rec.ID, err)
	}
	snap, err := replay.Run(rec)
	if err != nil {
		return err
	}
	fmt.Printf("Recording #%d OK: %d frames, final score %d\n", rec.ID, rec.Frames, snap.Score)
	return nil
}

func runReplaysDelete(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteReplay(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no recording with id %d", id)
		}
		return err
	}
	fmt.Printf("Deleted recording #%d\n", id)
	return nil
}
