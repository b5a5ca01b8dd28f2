// Package window runs the game in a desktop window with ebiten. It draws in
// world units, so the window shows the playfield at its native resolution.
package window

import (
	"context"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/games/flappy"
	"github.com/vovakirdan/skyhop/internal/registry"
	"github.com/vovakirdan/skyhop/internal/render"
)

func init() {
	registry.Register("window", func() registry.Frontend { return Frontend{} })
}

var (
	skyColor    = color.RGBA{R: 112, G: 197, B: 206, A: 255}
	cloudColor  = color.RGBA{R: 245, G: 250, B: 252, A: 255}
	grassColor  = color.RGBA{R: 94, G: 201, B: 72, A: 255}
	grassDark   = color.RGBA{R: 72, G: 160, B: 56, A: 255}
	soilColor   = color.RGBA{R: 222, G: 216, B: 149, A: 255}
	pipeColor   = color.RGBA{R: 83, G: 173, B: 52, A: 255}
	pipeRim     = color.RGBA{R: 54, G: 120, B: 34, A: 255}
	avatarColor = color.RGBA{R: 250, G: 200, B: 40, A: 255}
	crashColor  = color.RGBA{R: 220, G: 60, B: 50, A: 255}
	panelColor  = color.RGBA{A: 170}
)

const (
	grassHeight = 12
	rimHeight   = 8
)

// Frontend opens a window sized to the world.
type Frontend struct{}

// ID implements registry.Frontend.
func (Frontend) ID() string { return "window" }

// Title implements registry.Frontend.
func (Frontend) Title() string { return "Desktop window (ebiten)" }

// Run implements registry.Frontend. It must be called from the main
// goroutine; ebiten owns the OS thread while the window is open.
func (Frontend) Run(ctx context.Context, d registry.Driver) error {
	cfg := d.Config()

	ebiten.SetWindowSize(cfg.World.Width, cfg.World.Height)
	ebiten.SetWindowTitle("skyhop")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TickRate())

	g := &game{ctx: ctx, driver: d, cfg: cfg, snap: d.Snapshot()}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

// game adapts a Driver to ebiten.Game. Update runs once per tick because
// TPS is set to the tick rate.
type game struct {
	ctx    context.Context
	driver registry.Driver
	cfg    config.FlappyConfig
	snap   flappy.Snapshot
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	in := core.NewInputFrame()
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		action, quit := mapKey(k)
		if quit {
			return ebiten.Termination
		}
		if action != core.ActionNone {
			in.Set(action)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if g.snap.GameOver() {
			in.Set(core.ActionRestart)
		} else {
			in.Set(core.ActionJump)
		}
	}

	g.snap = g.driver.Step(in)
	return nil
}

// mapKey translates a key to an action and reports whether it quits.
func mapKey(k ebiten.Key) (core.Action, bool) {
	switch k {
	case ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeyK:
		return core.ActionJump, false
	case ebiten.KeyR:
		return core.ActionRestart, false
	case ebiten.KeyEscape, ebiten.KeyQ:
		return core.ActionQuit, true
	}
	return core.ActionNone, false
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)
	s := g.snap

	for _, c := range g.cfg.Scene.Clouds {
		x := float32(render.CloudX(c, s.Frame, s.WorldW))
		y := float32(c.Y)
		vector.DrawFilledCircle(screen, x+14, y+12, 14, cloudColor, true)
		vector.DrawFilledCircle(screen, x+30, y+8, 16, cloudColor, true)
		vector.DrawFilledCircle(screen, x+42, y+14, 10, cloudColor, true)
	}

	g.drawGround(screen)

	for _, o := range s.Obstacles {
		fillRect(screen, o.Upper, pipeColor)
		fillRect(screen, o.Lower, pipeColor)
		if !o.Upper.Empty() {
			fillRect(screen, core.NewRect(o.Upper.X-3, o.Upper.Bottom()-rimHeight, o.Upper.W+6, rimHeight), pipeRim)
		}
		if !o.Lower.Empty() {
			fillRect(screen, core.NewRect(o.Lower.X-3, o.Lower.Y, o.Lower.W+6, rimHeight), pipeRim)
		}
	}

	box := s.Avatar.Box
	body := avatarColor
	if s.GameOver() {
		body = crashColor
	}
	r := float32(box.W) / 2
	vector.DrawFilledCircle(screen, float32(box.X)+r, float32(box.Y)+float32(box.H)/2, r, body, true)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", s.Score), 10, 10)

	if s.GameOver() {
		w, h := float32(s.WorldW), float32(s.WorldH)
		vector.DrawFilledRect(screen, w/2-110, h/2-40, 220, 80, panelColor, false)
		ebitenutil.DebugPrintAt(screen, "GAME OVER", s.WorldW/2-27, s.WorldH/2-28)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", s.Score), s.WorldW/2-27, s.WorldH/2-8)
		ebitenutil.DebugPrintAt(screen, "Press R or click to restart", s.WorldW/2-81, s.WorldH/2+12)
	}
}

// drawGround draws the scrolling grass strip and the soil under it.
func (g *game) drawGround(screen *ebiten.Image) {
	groundY := g.cfg.Scene.GroundY
	if groundY <= 0 || groundY >= g.snap.WorldH {
		return
	}

	w := g.snap.WorldW
	fillRect(screen, core.NewRect(0, groundY, w, g.snap.WorldH-groundY), soilColor)
	fillRect(screen, core.NewRect(0, groundY, w, grassHeight), grassColor)

	offset := render.GrassOffset(g.snap.Frame)
	for x := -offset; x < w; x += 10 {
		fillRect(screen, core.NewRect(x, groundY, 5, grassHeight), grassDark)
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.World.Width, g.cfg.World.Height
}

func fillRect(dst *ebiten.Image, r core.Rect, clr color.Color) {
	if r.Empty() {
		return
	}
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}
