package core

import (
	"strings"
	"unicode/utf8"
)

// Cell is one character position on a Screen.
type Cell struct {
	Rune  rune
	Color Color
}

var blankCell = Cell{Rune: ' ', Color: ColorDefault}

// Screen is a grid of coloured cells. Renderers draw a whole frame into it and
// each terminal frontend copies it out in its own way, so drawing code never
// talks to a terminal directly. Writes outside the grid are dropped.
type Screen struct {
	width  int
	height int
	cells  []Cell // Row-major
}

// NewScreen returns a blank width x height screen. Negative sizes count as 0.
func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.Resize(width, height)
	return s
}

// Width returns the number of columns.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the number of rows.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the grid size and blanks it. Every frame is drawn from
// scratch, so nothing is carried over.
func (s *Screen) Resize(width, height int) {
	s.width, s.height = max(width, 0), max(height, 0)
	if n := s.width * s.height; cap(s.cells) >= n {
		s.cells = s.cells[:n]
	} else {
		s.cells = make([]Cell, n)
	}
	s.Clear()
}

// Clear blanks every cell.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blankCell
	}
}

func (s *Screen) inside(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// Set writes one cell.
func (s *Screen) Set(x, y int, r rune, c Color) {
	if s.inside(x, y) {
		s.cells[y*s.width+x] = Cell{Rune: r, Color: c}
	}
}

// At returns the cell at (x, y), or a blank cell outside the grid.
func (s *Screen) At(x, y int) Cell {
	if !s.inside(x, y) {
		return blankCell
	}
	return s.cells[y*s.width+x]
}

// Rune returns the character at (x, y).
func (s *Screen) Rune(x, y int) rune {
	return s.At(x, y).Rune
}

// Text writes a string left to right starting at (x, y), one rune per cell.
func (s *Screen) Text(x, y int, text string, c Color) {
	for _, r := range text {
		s.Set(x, y, r, c)
		x++
	}
}

// TextCentered writes text centred on row y.
func (s *Screen) TextCentered(y int, text string, c Color) {
	s.Text((s.width-utf8.RuneCountInString(text))/2, y, text, c)
}

// Fill paints every cell of r.
func (s *Screen) Fill(r Rect, glyph rune, c Color) {
	r = r.Intersect(NewRect(0, 0, s.width, s.height))
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.cells[y*s.width+x] = Cell{Rune: glyph, Color: c}
		}
	}
}

// HLine paints n cells to the right of (x, y).
func (s *Screen) HLine(x, y, n int, glyph rune, c Color) {
	s.Fill(NewRect(x, y, n, 1), glyph, c)
}

// Panel blanks r and outlines it with a box-drawing border.
func (s *Screen) Panel(r Rect, c Color) {
	if r.W < 2 || r.H < 2 {
		return
	}
	s.Fill(r, ' ', ColorDefault)

	right, bottom := r.Right()-1, r.Bottom()-1
	s.HLine(r.X+1, r.Y, r.W-2, '─', c)
	s.HLine(r.X+1, bottom, r.W-2, '─', c)
	for y := r.Y + 1; y < bottom; y++ {
		s.Set(r.X, y, '│', c)
		s.Set(right, y, '│', c)
	}
	s.Set(r.X, r.Y, '┌', c)
	s.Set(right, r.Y, '┐', c)
	s.Set(r.X, bottom, '└', c)
	s.Set(right, bottom, '┘', c)
}

// Row returns row y without colours. Rows outside the grid are blank.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y*s.width : (y+1)*s.width] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// String returns the whole grid without colours, one line per row. It is what
// text screenshots contain.
func (s *Screen) String() string {
	rows := make([]string, s.height)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}
