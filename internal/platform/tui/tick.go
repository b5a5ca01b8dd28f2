// Package tui provides the Bubble Tea integration for skyhop.
// It handles the terminal UI loop, input mapping and the SSH session flow.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Game identifies the
// model that scheduled it, so ticks left over from a finished game are
// dropped instead of doubling the pace of the next one.
type TickMsg struct {
	Time time.Time
	Game uint64
}

var lastGameID atomic.Uint64

// nextGameID returns a process-unique model identifier.
func nextGameID() uint64 {
	return lastGameID.Add(1)
}

// tickCmd returns a Bubble Tea command that sends a tick message after interval.
func tickCmd(game uint64, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Game: game}
	})
}
