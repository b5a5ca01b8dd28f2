package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/replay"
	"github.com/vovakirdan/skyhop/internal/storage"
)

type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewReplays
)

// SessionModel manages the full session flow: menu -> game -> menu and
// menu -> replays -> playback -> replays. Every game played is recorded.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	cfg      config.FlappyConfig
	store    *storage.Store
	logger   *log.Logger
	username string
	width    int
	height   int
	view     sessionView
	menu     MenuModel
	browser  ReplayBrowserModel
	game     GameModel
	recorder *replay.Recorder // Set while playing, nil while watching
	quitting bool
}

// NewSessionModel creates a new session model. store may be nil, in which
// case games are not recorded and the replay browser is hidden.
func NewSessionModel(cfg config.FlappyConfig, store *storage.Store, logger *log.Logger, username string, width, height int) SessionModel {
	m := SessionModel{
		cfg:      cfg,
		store:    store,
		logger:   logger,
		username: username,
		width:    width,
		height:   height,
	}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	greeting := ""
	if m.username != "" {
		greeting = "Welcome, " + m.username
	}
	return NewMenuModel(m.width, m.height, m.store != nil, greeting)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewReplays:
		return m.updateReplays(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch m.menu.Selected() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case ChoicePlay:
		return m.startGame()

	case ChoiceReplays:
		m.browser = NewReplayBrowserModel(m.store, m.cfg.Timing.TickInterval, m.width, m.height)
		m.view = viewReplays
		return m, m.browser.Init()
	}

	return m, cmd
}

// startGame begins a recorded game with a fresh seed.
func (m SessionModel) startGame() (tea.Model, tea.Cmd) {
	rec, err := replay.NewRecorder(m.cfg, time.Now().UnixNano())
	if err != nil {
		m.logger.Error("cannot start game", "user", m.username, "error", err)
		m.menu = m.newMenu()
		return m, nil
	}

	m.recorder = rec
	m.game = NewGameModel(rec, m.width, m.height)
	m.game.canGoBack = true
	m.view = viewGame
	return m, m.game.Init()
}

// updateGame handles updates when a game or a playback is running.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = gameModel
	}

	if m.game.IsQuitting() {
		m.saveRecording()
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		if m.recorder == nil {
			// Back from a playback
			m.browser = NewReplayBrowserModel(m.store, m.cfg.Timing.TickInterval, m.width, m.height)
			m.view = viewReplays
			return m, nil
		}
		m.saveRecording()
		m.menu = m.newMenu()
		m.view = viewMenu
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateReplays handles updates in the replay browser.
func (m SessionModel) updateReplays(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.browser.Update(msg)
	if browser, ok := newModel.(ReplayBrowserModel); ok {
		m.browser = browser
	}

	switch {
	case m.browser.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.browser.IsGoingBack():
		m.menu = m.newMenu()
		m.view = viewMenu
		return m, m.menu.Init()

	case m.browser.Selected() != 0:
		return m.watch(m.browser.Selected())
	}

	return m, cmd
}

// watch starts playback of a stored recording.
func (m SessionModel) watch(id int64) (tea.Model, tea.Cmd) {
	rec, err := m.store.Replay(id)
	if err == nil {
		var player *replay.Player
		player, err = replay.NewPlayer(rec)
		if err == nil {
			m.recorder = nil
			m.game = NewGameModel(player, m.width, m.height)
			m.game.canGoBack = true
			m.view = viewGame
			return m, m.game.Init()
		}
	}

	m.logger.Warn("cannot play replay", "id", id, "user", m.username, "error", err)
	m.browser = NewReplayBrowserModel(m.store, m.cfg.Timing.TickInterval, m.width, m.height)
	return m, nil
}

// saveRecording stores the current game, if anything was played.
func (m *SessionModel) saveRecording() {
	if m.recorder == nil || m.store == nil {
		return
	}

	rec := m.recorder.Recording()
	m.recorder = nil
	if len(rec.Events) == 0 {
		return
	}
	rec.Player = m.username

	id, err := m.store.SaveReplay(rec)
	if err != nil {
		m.logger.Warn("cannot save replay", "user", m.username, "error", err)
		return
	}
	m.logger.Info("replay saved", "id", id, "user", m.username, "frames", rec.Frames)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.game.View()
	case viewReplays:
		return m.browser.View()
	default:
		return m.menu.View()
	}
}
