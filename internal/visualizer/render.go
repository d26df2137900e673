package visualizer

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/lofi/internal/ui/styles"
)

var levels = []rune(" ▁▂▃▄▅▆▇█")

// Render draws heights as block glyph columns rows lines tall, coloured from
// `from` at the bottom to `to` at the top. Each bar is one column followed by a gap.
func Render(heights []int, rows int, from, to lipgloss.Color) string {
	if len(heights) == 0 || rows <= 0 {
		return ""
	}

	colors := rowColors(rows, from, to)
	steps := len(levels) - 1
	total := rows * steps

	lines := make([]string, rows)
	for r := range rows {
		// r counts from the top; level is measured from the bottom.
		floor := (rows - 1 - r) * steps
		var b strings.Builder
		for i, h := range heights {
			filled := h * total / MaxHeight
			n := min(max(filled-floor, 0), steps)
			b.WriteRune(levels[n])
			if i < len(heights)-1 {
				b.WriteByte(' ')
			}
		}
		lines[r] = lipgloss.NewStyle().Foreground(colors[r]).Render(b.String())
	}
	return strings.Join(lines, "\n")
}

// rowColors blends the colours of each row, top row first.
func rowColors(rows int, from, to lipgloss.Color) []lipgloss.Color {
	colors := styles.Blend(rows, from, to)
	slices.Reverse(colors)
	return colors
}
