package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/games/flappy"
	"github.com/vovakirdan/skyhop/internal/registry"
	"github.com/vovakirdan/skyhop/internal/render"
)

func init() {
	registry.Register("tui", func() registry.Frontend { return Frontend{} })
}

// Frontend runs the game as a full-screen Bubble Tea program.
type Frontend struct{}

// ID implements registry.Frontend.
func (Frontend) ID() string { return "tui" }

// Title implements registry.Frontend.
func (Frontend) Title() string { return "Terminal (Bubble Tea)" }

// Run implements registry.Frontend.
func (Frontend) Run(ctx context.Context, d registry.Driver) error {
	p := tea.NewProgram(
		NewGameModel(d, 80, 24),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// GameModel is the Bubble Tea model that drives one game.
type GameModel struct {
	id         uint64
	driver     registry.Driver
	renderer   *render.Renderer
	screen     *core.Screen
	keys       GameKeyMap
	inputFrame core.InputFrame
	interval   time.Duration
	snap       flappy.Snapshot
	notice     string // Shown in the HUD row, e.g. after a screenshot
	canGoBack  bool   // Back returns to a menu instead of quitting
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for the given driver and initial screen size.
func NewGameModel(d registry.Driver, width, height int) GameModel {
	cfg := d.Config()
	return GameModel{
		id:         nextGameID(),
		driver:     d,
		renderer:   render.New(cfg.Scene),
		screen:     core.NewScreen(width, height),
		keys:       DefaultGameKeyMap(),
		inputFrame: core.NewInputFrame(),
		interval:   cfg.Timing.TickInterval,
		snap:       d.Snapshot(),
	}
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.id, m.interval)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The world has a fixed size, so resizing only changes the projection.
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Game != m.id {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Game actions are buffered and applied
// at the start of the next tick.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		path, err := m.saveScreenshot()
		if err != nil {
			m.notice = "screenshot failed"
		} else {
			m.notice = "saved " + filepath.Base(path)
		}
		return m, nil
	}

	action, isQuit := m.keys.Action(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack && m.canGoBack:
		m.backToMenu = true
		return m, nil
	case action == core.ActionBack:
		m.quitting = true
		return m, tea.Quit
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleTick steps the driver with the input gathered since the last tick.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	m.snap = m.driver.Step(m.inputFrame)
	m.inputFrame.Clear()

	return m, tickCmd(m.id, m.interval)
}

// saveScreenshot writes the current screen as plain text.
func (m *GameModel) saveScreenshot() (string, error) {
	m.renderer.Draw(m.screen, m.snap)

	dir := filepath.Join(config.Dir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create screenshot directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("skyhop_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.renderer.Draw(m.screen, m.snap)
	if m.notice != "" {
		m.screen.Text(m.screen.Width()-len(m.notice)-1, 0, m.notice, core.ColorMuted)
	}
	return RenderScreen(m.screen)
}

// Snapshot returns the last snapshot the model drew.
func (m GameModel) Snapshot() flappy.Snapshot {
	return m.snap
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
