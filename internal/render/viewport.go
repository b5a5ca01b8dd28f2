package render

import "github.com/vovakirdan/skyhop/internal/core"

// cellAspect is how many world-equivalent columns fit in the height of one
// terminal row. Cells are roughly twice as tall as they are wide.
const cellAspect = 2

// Viewport maps world coordinates onto a rectangle of terminal cells. The
// first screen row is reserved for the HUD; the playfield keeps the world's
// aspect ratio and is centred in what remains.
type Viewport struct {
	OffsetX int // Left column of the playfield
	OffsetY int // Top row of the playfield
	Cols    int // Playfield width in cells
	Rows    int // Playfield height in cells
	WorldW  int
	WorldH  int
}

// NewViewport fits a worldW x worldH world into a screenW x screenH grid.
func NewViewport(screenW, screenH, worldW, worldH int) Viewport {
	vp := Viewport{WorldW: worldW, WorldH: worldH}
	avail := screenH - 1
	if screenW <= 0 || avail <= 0 || worldW <= 0 || worldH <= 0 {
		return vp
	}

	vp.Rows = avail
	vp.Cols = avail * worldW * cellAspect / worldH
	if vp.Cols > screenW {
		vp.Cols = screenW
		vp.Rows = max(screenW*worldH/(worldW*cellAspect), 1)
	}
	vp.Cols = max(vp.Cols, 1)

	vp.OffsetX = (screenW - vp.Cols) / 2
	vp.OffsetY = 1 + (avail-vp.Rows)/2
	return vp
}

// Empty reports whether there is no room for a playfield.
func (vp Viewport) Empty() bool {
	return vp.Cols <= 0 || vp.Rows <= 0
}

// Bounds returns the playfield in screen cells.
func (vp Viewport) Bounds() core.Rect {
	return core.NewRect(vp.OffsetX, vp.OffsetY, vp.Cols, vp.Rows)
}

// Col converts a world x-coordinate to a screen column.
func (vp Viewport) Col(x int) int {
	return vp.OffsetX + scale(x, vp.Cols, vp.WorldW)
}

// Row converts a world y-coordinate to a screen row.
func (vp Viewport) Row(y int) int {
	return vp.OffsetY + scale(y, vp.Rows, vp.WorldH)
}

// WorldX converts a playfield column (0-based, relative to OffsetX) back to
// the world x-coordinate of its left edge.
func (vp Viewport) WorldX(col int) int {
	if vp.Cols == 0 {
		return 0
	}
	return floorDiv(col*vp.WorldW, vp.Cols)
}

// Project converts a world rectangle to screen cells, clipped to the
// playfield. Non-empty rectangles that overlap the world keep at least one
// cell so thin objects stay visible.
func (vp Viewport) Project(r core.Rect) core.Rect {
	if r.Empty() || vp.Empty() {
		return core.Rect{}
	}

	x0, x1 := vp.Col(r.X), vp.Col(r.Right())
	y0, y1 := vp.Row(r.Y), vp.Row(r.Bottom())
	if x1 == x0 {
		x1++
	}
	if y1 == y0 {
		y1++
	}

	return core.NewRect(x0, y0, x1-x0, y1-y0).Intersect(vp.Bounds())
}

// scale maps v in [0, from] to [0, to], rounding half up.
func scale(v, to, from int) int {
	return floorDiv(2*v*to+from, 2*from)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
