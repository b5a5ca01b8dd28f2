package render

import (
	"strings"
	"testing"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/games/flappy"
)

func TestNewViewport(t *testing.T) {
	tests := []struct {
		name     string
		w, h     int
		expected Viewport
	}{
		{"tall terminal", 80, 24, Viewport{OffsetX: 25, OffsetY: 1, Cols: 30, Rows: 23, WorldW: 400, WorldH: 600}},
		{"narrow terminal", 20, 40, Viewport{OffsetX: 0, OffsetY: 13, Cols: 20, Rows: 15, WorldW: 400, WorldH: 600}},
		{"no width", 0, 24, Viewport{WorldW: 400, WorldH: 600}},
		{"only hud row", 80, 1, Viewport{WorldW: 400, WorldH: 600}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			vp := NewViewport(tc.w, tc.h, 400, 600)
			if vp != tc.expected {
				t.Errorf("NewViewport(%d, %d) = %+v, expected %+v", tc.w, tc.h, vp, tc.expected)
			}
		})
	}
}

func TestViewportKeepsAspect(t *testing.T) {
	for _, size := range [][2]int{{80, 24}, {200, 60}, {40, 80}, {300, 30}} {
		vp := NewViewport(size[0], size[1], 400, 600)
		// cols/rows should be close to 2 * 400/600
		ratio := float64(vp.Cols) / float64(vp.Rows)
		if ratio < 1.2 || ratio > 1.45 {
			t.Errorf("%dx%d: playfield %dx%d has ratio %.2f", size[0], size[1], vp.Cols, vp.Rows, ratio)
		}
		if vp.OffsetX+vp.Cols > size[0] || vp.OffsetY+vp.Rows > size[1] {
			t.Errorf("%dx%d: playfield %+v overflows the screen", size[0], size[1], vp.Bounds())
		}
	}
}

func TestProject(t *testing.T) {
	vp := NewViewport(80, 24, 400, 600)

	tests := []struct {
		name     string
		world    core.Rect
		expected core.Rect
	}{
		{"whole world", core.NewRect(0, 0, 400, 600), vp.Bounds()},
		{"avatar", core.NewRect(80, 300, 45, 45), core.NewRect(31, 13, 3, 1)},
		{"thin rect keeps a cell", core.NewRect(100, 100, 1, 1), core.NewRect(33, 5, 1, 1)},
		{"left of the world", core.NewRect(-100, 0, 50, 50), core.Rect{}},
		{"empty", core.NewRect(100, 100, 0, 10), core.Rect{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := vp.Project(tc.world)
			if got.Empty() && tc.expected.Empty() {
				return
			}
			if got != tc.expected {
				t.Errorf("Project(%+v) = %+v, expected %+v", tc.world, got, tc.expected)
			}
		})
	}
}

func newSnapshot(t *testing.T) flappy.Snapshot {
	t.Helper()
	g, err := flappy.NewWithSeed(config.DefaultFlappyConfig(), 1)
	if err != nil {
		t.Fatalf("NewWithSeed: %v", err)
	}
	return g.Snapshot()
}

func drawSnapshot(snap flappy.Snapshot) *core.Screen {
	s := core.NewScreen(80, 24)
	New(config.DefaultFlappyConfig().Scene).Draw(s, snap)
	return s
}

func TestDrawInitialScene(t *testing.T) {
	s := drawSnapshot(newSnapshot(t))

	if row := s.Row(0); !strings.Contains(row, "Score: 0") {
		t.Errorf("HUD row = %q", row)
	}
	if got := s.At(32, 13); got.Rune != '●' || got.Color != core.ColorAvatar {
		t.Errorf("avatar cell = %+v", got)
	}
	if s.Rune(24, 5) != '│' || s.Rune(55, 5) != '│' {
		t.Error("playfield should be framed when the screen is wider")
	}

	// The first pair spawns at the right edge and is not visible yet.
	for y := 1; y < 20; y++ {
		if strings.ContainsRune(s.Row(y), '█') {
			t.Fatalf("unexpected obstacle on row %d: %q", y, s.Row(y))
		}
	}

	if grass := s.Row(20); !strings.ContainsAny(grass, `",`) {
		t.Errorf("grass row = %q", grass)
	}
	for y := 21; y < 24; y++ {
		if s.Rune(30, y) != '▒' {
			t.Errorf("soil missing on row %d", y)
		}
	}
}

func TestDrawObstacle(t *testing.T) {
	snap := newSnapshot(t)
	snap.Obstacles = []flappy.ObstacleSnapshot{{
		Upper: core.NewRect(200, 0, 60, 150),
		Lower: core.NewRect(200, 340, 60, 260),
	}}
	s := drawSnapshot(snap)

	tests := []struct {
		name  string
		x, y  int
		glyph rune
		color core.Color
	}{
		{"upper body", 41, 3, '█', core.ColorPipe},
		{"upper rim", 41, 6, '▀', core.ColorPipeRim},
		{"gap", 41, 10, ' ', core.ColorDefault},
		{"lower rim", 41, 14, '▄', core.ColorPipeRim},
		{"lower over ground", 41, 21, '█', core.ColorPipe},
		{"beside pipe", 46, 3, ' ', core.ColorDefault},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := s.At(tc.x, tc.y)
			if got.Rune != tc.glyph || got.Color != tc.color {
				t.Errorf("cell (%d, %d) = %q/%d, expected %q/%d",
					tc.x, tc.y, got.Rune, got.Color, tc.glyph, tc.color)
			}
		})
	}
}

func TestDrawGameOver(t *testing.T) {
	snap := newSnapshot(t)
	snap.State = flappy.StateGameOver
	snap.Score = 7
	s := drawSnapshot(snap)

	out := s.String()
	for _, want := range []string{"GAME OVER", "Score: 7", "Press R to restart"} {
		if !strings.Contains(out, want) {
			t.Errorf("game over screen missing %q:\n%s", want, out)
		}
	}
	if !strings.ContainsRune(out, '┌') {
		t.Error("game over panel should be boxed on a full-size screen")
	}
}

func TestDrawTinyScreen(t *testing.T) {
	s := core.NewScreen(30, 1)
	New(config.SceneConfig{}).Draw(s, newSnapshot(t))

	if !strings.Contains(s.Row(0), "window too small") {
		t.Errorf("row = %q", s.Row(0))
	}
}

func TestCloudX(t *testing.T) {
	tests := []struct {
		name     string
		x        int
		frame    uint64
		expected int
	}{
		{"start", 60, 0, 60},
		{"below drift step", 60, 3, 60},
		{"one step", 60, 4, 59},
		{"wraps to the right edge", 0, 4 * 51, 399},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CloudX(config.Cloud{X: tc.x, Y: 90}, tc.frame, 400)
			if got != tc.expected {
				t.Errorf("CloudX(x=%d, frame=%d) = %d, expected %d", tc.x, tc.frame, got, tc.expected)
			}
		})
	}
}

func TestGrassOffset(t *testing.T) {
	if GrassOffset(0) != 0 || GrassOffset(23) != 3 || GrassOffset(10) != 0 {
		t.Error("grass offset should be frame modulo 10")
	}
}
