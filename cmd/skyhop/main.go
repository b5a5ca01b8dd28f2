// skyhop is a Flappy-style arcade game for the terminal, the desktop and SSH.
//
// Usage:
//
//	skyhop play              - Play (tui, console or window frontend)
//	skyhop frontends         - List available frontends
//	skyhop serve             - Start SSH server for remote play
//	skyhop replays <cmd>     - List, show, play, verify or delete recordings
//	skyhop config dump       - Print the effective configuration
//
// Global flags:
//
//	--config <path>    - Game configuration YAML
//	--tick <duration>  - Override the tick interval (e.g. 16ms)
//	--db <path>        - Recordings database (default: ~/.skyhop/replays.db)
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyhop/internal/config"

	// Import frontends to register them
	_ "github.com/vovakirdan/skyhop/internal/platform/console"
	_ "github.com/vovakirdan/skyhop/internal/platform/tui"
	_ "github.com/vovakirdan/skyhop/internal/platform/window"
)

var (
	// Global flags
	flagConfig   string
	flagTick     time.Duration
	flagDBPath   string
	flagLogLevel string

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skyhop",
	Short: "skyhop - flap through the gaps",
	Long: `skyhop is a Flappy-style arcade game. The avatar falls under gravity;
flap to rise and steer it through the gaps between scrolling pipes.

Available commands:
  play       - Play a game
  frontends  - Show all available frontends
  serve      - Start SSH server for remote play
  replays    - Manage recorded games
  config     - Inspect the configuration

Examples:
  skyhop play
  skyhop play --frontend window --record
  skyhop serve --ssh :2222
  skyhop replays list`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(flagLogLevel)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().DurationVar(&flagTick, "tick", 0, "Override the tick interval (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.skyhop/replays.db", "Path to recordings database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(frontendsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the root logger at the given level.
func newLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "skyhop",
		Level:           lvl,
	}), nil
}

// loadConfig loads the game configuration and applies flag overrides.
func loadConfig() (config.FlappyConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagTick > 0 {
		cfg.Timing.TickInterval = flagTick
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}
