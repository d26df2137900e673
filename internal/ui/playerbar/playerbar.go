// Package playerbar renders the player card in its desktop or mobile layout.
package playerbar

import (
	"fmt"
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/lofi/internal/device"
	"github.com/llehouerou/lofi/internal/playback"
	"github.com/llehouerou/lofi/internal/ui/render"
	"github.com/llehouerou/lofi/internal/ui/styles"
	"github.com/llehouerou/lofi/internal/visualizer"
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
	loopSymbol  = "⟲"

	desktopVizRows = 3
	mobileVizRows  = 2

	artCols = 9
)

// State holds everything needed to render the card.
type State struct {
	Display playback.Display
	Layout  device.Layout
	Bars    []int
}

// Render returns the card for the active layout, width columns wide.
func Render(s State, width int) string {
	width = max(width, s.Layout.MinWidth)
	if s.Layout.Compact {
		return renderMobile(s, width)
	}
	return renderDesktop(s, width)
}

// renderDesktop lays out cover art beside the metadata, then the transport
// row and the visualizer across the full width.
//
//	╭──────────────────────────────────────╮
//	│ ╭───────╮  Title                      │
//	│ │   ♪   │  Artist                     │
//	│ ╰───────╯  cover.jpg                  │
//	│                                       │
//	│ ▶  1:23  ▓▓▓▓▓▓░░░░░░░░░░░░  4:56     │
//	│ ⟲ loop                      vol  70%  │
//	│ ▂▅▇ ...                               │
//	╰──────────────────────────────────────╯
func renderDesktop(s State, width int) string {
	inner := max(width-4, 10)
	d := s.Display
	metaWidth := max(inner-artCols-2, 1)

	meta := []string{
		titleLine(d, metaWidth),
		styles.T().S().Muted.Render(render.Truncate(d.Artist, metaWidth)),
		styles.T().S().Subtle.Render(render.Truncate(coverLabel(d.Cover), metaWidth)),
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, coverArt(), "  ", strings.Join(meta, "\n"))

	lines := []string{
		header,
		"",
		RenderProgressBar(d, inner),
		render.Row(loopLabel(d.Looping), RenderVolume(d.Volume), inner),
	}
	if viz := visualizerView(s.Bars, desktopVizRows); viz != "" {
		lines = append(lines, viz)
	}

	return styles.CardStyle().Width(width - 2).Render(strings.Join(lines, "\n"))
}

// renderMobile stacks everything in a single narrow column.
func renderMobile(s State, width int) string {
	inner := max(width-4, 10)
	d := s.Display

	status := pauseSymbol
	if d.Playing {
		status = styles.T().S().Active.Render(playSymbol)
	}
	loop := styles.T().S().Subtle.Render(loopSymbol)
	if d.Looping {
		loop = styles.T().S().Active.Render(loopSymbol)
	}

	lines := []string{
		titleLine(d, inner),
		styles.T().S().Muted.Render(render.Truncate(d.Artist, inner)),
		"",
		compactProgress(d, inner),
		render.Row(status+" "+loop, RenderVolume(d.Volume), inner),
	}
	if viz := visualizerView(s.Bars, mobileVizRows); viz != "" {
		lines = append(lines, viz)
	}

	return styles.CardStyle().Width(width - 2).Render(strings.Join(lines, "\n"))
}

func titleLine(d playback.Display, width int) string {
	title := render.Truncate(d.Title, width)
	if d.Error {
		return styles.T().S().Error.Render(title)
	}
	return styles.T().S().Title.Render(title)
}

func loopLabel(looping bool) string {
	label := loopSymbol + " loop"
	if looping {
		return styles.T().S().Active.Render(label)
	}
	return styles.T().S().Subtle.Render(label)
}

func coverLabel(cover string) string {
	if cover == "" {
		return ""
	}
	return path.Base(cover)
}

func coverArt() string {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().Border).
		Width(artCols - 2).
		Align(lipgloss.Center).
		Foreground(styles.T().Primary).
		Render("\n♪\n")
}

func visualizerView(bars []int, rows int) string {
	return visualizer.Render(bars, rows, styles.T().Primary, styles.T().Secondary)
}

// RenderVolume renders the volume percent text.
func RenderVolume(percent int) string {
	return styles.T().S().Muted.Render(fmt.Sprintf("vol %3d%%", percent))
}
