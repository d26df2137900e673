package playerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/lofi/internal/playback"
	"github.com/llehouerou/lofi/internal/ui/styles"
)

var (
	filledBlock = "▓"
	emptyBlock  = "░"
)

// RenderProgressBar renders a block-style progress bar.
// Format: ▶  1:23  ▓▓▓▓▓░░░░░  4:56
func RenderProgressBar(d playback.Display, width int) string {
	status := pauseSymbol
	if d.Playing {
		status = styles.T().S().Active.Render(playSymbol)
	}

	// Format: "▶  1:23  ▓▓▓░░░  4:56"
	fixedWidth := lipgloss.Width(status) + 2 + lipgloss.Width(d.Elapsed) + 2 + 2 + lipgloss.Width(d.Total)
	barWidth := width - fixedWidth

	if barWidth < 3 {
		// Too narrow for bar, just show times
		return status + "  " + d.Elapsed + " / " + d.Total
	}

	return status + "  " + d.Elapsed + "  " + bar(d.Progress, barWidth) + "  " + d.Total
}

// compactProgress omits the status symbol: "1:23 ▓▓▓░░░ 4:56".
func compactProgress(d playback.Display, width int) string {
	barWidth := width - lipgloss.Width(d.Elapsed) - lipgloss.Width(d.Total) - 2
	if barWidth < 3 {
		return d.Elapsed + " / " + d.Total
	}
	return d.Elapsed + " " + bar(d.Progress, barWidth) + " " + d.Total
}

// bar fills width cells in proportion to percent (0-100).
func bar(percent float64, width int) string {
	filled := min(max(int(float64(width)*percent/100), 0), width)
	s := styles.T().S()
	return s.ProgressFill.Render(strings.Repeat(filledBlock, filled)) +
		s.ProgressTrack.Render(strings.Repeat(emptyBlock, width-filled))
}
