package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vovakirdan/skyhop/internal/core"
)

// colorStyles is the ANSI palette for the scene.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorFrame:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorCloud:     lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorGrass:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorGrassTip:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorSoil:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorPipe:      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorPipeRim:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorAvatar:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorAvatarHit: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorText:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorAlert:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorMuted:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.At(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.At(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			// Apply style to the run
			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
