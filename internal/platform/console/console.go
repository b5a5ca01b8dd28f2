// Package console runs the game on a raw tcell screen. It is the lightest
// terminal frontend: one goroutine polls events, one loop ticks and draws.
package console

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/games/flappy"
	"github.com/vovakirdan/skyhop/internal/registry"
	"github.com/vovakirdan/skyhop/internal/render"
)

// queueSize bounds the actions buffered between two ticks.
const queueSize = 32

func init() {
	registry.Register("console", func() registry.Frontend { return New() })
}

var styles = map[core.Color]tcell.Style{
	core.ColorDefault:   tcell.StyleDefault,
	core.ColorFrame:     tcell.StyleDefault.Foreground(tcell.ColorGray),
	core.ColorCloud:     tcell.StyleDefault.Foreground(tcell.ColorSilver),
	core.ColorGrass:     tcell.StyleDefault.Foreground(tcell.ColorGreen),
	core.ColorGrassTip:  tcell.StyleDefault.Foreground(tcell.ColorLime),
	core.ColorSoil:      tcell.StyleDefault.Foreground(tcell.ColorOlive),
	core.ColorPipe:      tcell.StyleDefault.Foreground(tcell.ColorGreen),
	core.ColorPipeRim:   tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true),
	core.ColorAvatar:    tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
	core.ColorAvatarHit: tcell.StyleDefault.Foreground(tcell.ColorRed),
	core.ColorText:      tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true),
	core.ColorAlert:     tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	core.ColorMuted:     tcell.StyleDefault.Foreground(tcell.ColorGray).Italic(true),
}

// Frontend draws snapshots with tcell.
type Frontend struct {
	newScreen func() (tcell.Screen, error)
}

// New creates a frontend on the real terminal.
func New() *Frontend {
	return &Frontend{newScreen: tcell.NewScreen}
}

// ID implements registry.Frontend.
func (f *Frontend) ID() string { return "console" }

// Title implements registry.Frontend.
func (f *Frontend) Title() string { return "Terminal (tcell)" }

// Run implements registry.Frontend.
func (f *Frontend) Run(ctx context.Context, d registry.Driver) error {
	screen, err := f.newScreen()
	if err != nil {
		return fmt.Errorf("console: cannot create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("console: cannot initialize screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	cfg := d.Config()
	renderer := render.New(cfg.Scene)
	width, height := screen.Size()
	cells := core.NewScreen(width, height)

	// The poller turns keys into actions itself; only quit and resize need
	// the loop's attention.
	queue := flappy.NewInputQueue(queueSize)
	control := make(chan tcell.Event, 1)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(screen, queue, control, done)

	ticker := time.NewTicker(cfg.Timing.TickInterval)
	defer ticker.Stop()

	snap := d.Snapshot()
	draw(screen, renderer, cells, snap)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-control:
			if !ok {
				return nil
			}
			switch ev.(type) {
			case *tcell.EventResize:
				width, height = screen.Size()
				cells.Resize(width, height)
				screen.Sync()
			default:
				return nil
			}

		case <-ticker.C:
			snap = d.Step(queue.Drain())
			draw(screen, renderer, cells, snap)
		}
	}
}

// pollEvents reads terminal events until the screen is finalized. Game
// actions go to the queue; quit and resize events go to control.
func pollEvents(screen tcell.Screen, queue *flappy.InputQueue, control chan<- tcell.Event, done <-chan struct{}) {
	defer close(control)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}

		forward := false
		switch ev := ev.(type) {
		case *tcell.EventKey:
			action, quit := MapKey(ev)
			if quit {
				forward = true
			} else if action != core.ActionNone {
				queue.Push(action)
			}
		case *tcell.EventResize:
			forward = true
		}

		if forward {
			select {
			case control <- ev:
			case <-done:
				return
			}
		}
	}
}

// MapKey translates a tcell key event to an action and reports whether it
// asks to quit.
func MapKey(ev *tcell.EventKey) (core.Action, bool) {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return core.ActionQuit, true
	case tcell.KeyUp:
		return core.ActionJump, false
	case tcell.KeyEnter:
		return core.ActionConfirm, false
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ', 'w', 'k':
			return core.ActionJump, false
		case 'r':
			return core.ActionRestart, false
		case 'q':
			return core.ActionQuit, true
		}
	}
	return core.ActionNone, false
}

func draw(screen tcell.Screen, r *render.Renderer, cells *core.Screen, snap flappy.Snapshot) {
	r.Draw(cells, snap)
	blit(screen, cells)
	screen.Show()
}

// blit copies a cell buffer onto the tcell screen.
func blit(dst tcell.Screen, src *core.Screen) {
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			cell := src.At(x, y)
			style, ok := styles[cell.Color]
			if !ok {
				style = tcell.StyleDefault
			}
			dst.SetContent(x, y, cell.Rune, nil, style)
		}
	}
}
