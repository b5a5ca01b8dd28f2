// Package render draws game snapshots into a core.Screen. It is shared by the
// terminal frontends; the window frontend draws in world units instead.
package render

import (
	"fmt"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/games/flappy"
)

const (
	cloudW      = 50
	cloudH      = 20
	cloudDrift  = 4 // Frames per world unit of cloud movement
	grassPeriod = 10
)

// Renderer draws snapshots together with the decorative scene.
type Renderer struct {
	scene config.SceneConfig
}

// New creates a renderer for the given scene.
func New(scene config.SceneConfig) *Renderer {
	return &Renderer{scene: scene}
}

// Draw clears dst and renders the snapshot into it.
func (r *Renderer) Draw(dst *core.Screen, snap flappy.Snapshot) {
	dst.Clear()

	vp := NewViewport(dst.Width(), dst.Height(), snap.WorldW, snap.WorldH)
	if vp.Empty() {
		dst.TextCentered(dst.Height()/2, "window too small", core.ColorText)
		return
	}

	r.drawFrame(dst, vp)
	r.drawClouds(dst, vp, snap)
	r.drawGround(dst, vp, snap)
	drawObstacles(dst, vp, snap)
	drawAvatar(dst, vp, snap)
	drawHUD(dst, vp, snap)

	if snap.GameOver() {
		drawGameOver(dst, vp, snap)
	}
}

// drawFrame outlines the playfield when the screen is wider than it.
func (r *Renderer) drawFrame(dst *core.Screen, vp Viewport) {
	b := vp.Bounds()
	if b.X == 0 {
		return
	}
	for y := b.Y; y < b.Bottom(); y++ {
		dst.Set(b.X-1, y, '│', core.ColorFrame)
		dst.Set(b.Right(), y, '│', core.ColorFrame)
	}
}

func (r *Renderer) drawClouds(dst *core.Screen, vp Viewport, snap flappy.Snapshot) {
	for _, c := range r.scene.Clouds {
		x := CloudX(c, snap.Frame, snap.WorldW)
		cell := vp.Project(core.NewRect(x, c.Y, cloudW, cloudH))
		dst.Fill(cell, '░', core.ColorCloud)
	}
}

// drawGround draws the scrolling grass row and the soil beneath it.
func (r *Renderer) drawGround(dst *core.Screen, vp Viewport, snap flappy.Snapshot) {
	if r.scene.GroundY <= 0 || r.scene.GroundY >= snap.WorldH {
		return
	}

	b := vp.Bounds()
	top := vp.Row(r.scene.GroundY)
	offset := GrassOffset(snap.Frame)
	for col := 0; col < b.W; col++ {
		glyph, color := ',', core.ColorGrass
		if ((vp.WorldX(col)+offset)/(grassPeriod/2))%2 == 0 {
			glyph, color = '"', core.ColorGrassTip
		}
		dst.Set(b.X+col, top, glyph, color)
	}
	soil := core.NewRect(b.X, top+1, b.W, b.Bottom()-top-1)
	dst.Fill(soil, '▒', core.ColorSoil)
}

func drawObstacles(dst *core.Screen, vp Viewport, snap flappy.Snapshot) {
	for _, o := range snap.Obstacles {
		upper := vp.Project(o.Upper)
		lower := vp.Project(o.Lower)
		dst.Fill(upper, '█', core.ColorPipe)
		dst.Fill(lower, '█', core.ColorPipe)

		// Rims facing the gap
		if !upper.Empty() {
			dst.HLine(upper.X, upper.Bottom()-1, upper.W, '▀', core.ColorPipeRim)
		}
		if !lower.Empty() {
			dst.HLine(lower.X, lower.Y, lower.W, '▄', core.ColorPipeRim)
		}
	}
}

func drawAvatar(dst *core.Screen, vp Viewport, snap flappy.Snapshot) {
	color := core.ColorAvatar
	if snap.GameOver() {
		color = core.ColorAvatarHit
	}
	dst.Fill(vp.Project(snap.Avatar.Box), '●', color)
}

func drawHUD(dst *core.Screen, vp Viewport, snap flappy.Snapshot) {
	dst.Text(vp.OffsetX, 0, fmt.Sprintf("Score: %d", snap.Score), core.ColorText)
}

// drawGameOver shows a boxed panel in the middle of the playfield, or bare
// text when the playfield is too small for the box.
func drawGameOver(dst *core.Screen, vp Viewport, snap flappy.Snapshot) {
	lines := []string{
		"GAME OVER",
		fmt.Sprintf("Score: %d", snap.Score),
		"Press R to restart",
	}

	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	width += 4
	height := len(lines) + 2

	b := vp.Bounds()
	top := b.Y + (b.H-len(lines))/2
	if width <= b.W && height <= b.H {
		box := core.NewRect(b.X+(b.W-width)/2, b.Y+(b.H-height)/2, width, height)
		dst.Panel(box, core.ColorText)
		top = box.Y + 1
	}

	for i, l := range lines {
		color := core.ColorText
		if i == 0 {
			color = core.ColorAlert
		}
		dst.Text(b.X+(b.W-len(l))/2, top+i, l, color)
	}
}

// CloudX returns the world x-coordinate of a drifting cloud at the given
// frame. Clouds wrap around once they leave the left edge.
func CloudX(c config.Cloud, frame uint64, worldW int) int {
	span := worldW + cloudW
	shift := int((frame / cloudDrift) % uint64(span))
	x := ((c.X+cloudW-shift)%span + span) % span
	return x - cloudW
}

// GrassOffset returns the scroll offset of the grass pattern in world units.
func GrassOffset(frame uint64) int {
	return int(frame % grassPeriod)
}
