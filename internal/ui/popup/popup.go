// Package popup renders centered modal boxes and lays them over a view.
package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/lofi/internal/ui/render"
	"github.com/llehouerou/lofi/internal/ui/styles"
)

// Dialog is a bordered box with an optional title and footer.
type Dialog struct {
	Title   string
	Content string
	Footer  string
	Border  lipgloss.Color
}

// New creates a dialog with the theme border.
func New(title, content, footer string) *Dialog {
	return &Dialog{
		Title:   title,
		Content: content,
		Footer:  footer,
		Border:  styles.T().Border,
	}
}

// Box renders the dialog without positioning it. maxWidth bounds the inner
// width; content lines wider than that are truncated.
func (d *Dialog) Box(maxWidth int) string {
	s := styles.T().S()

	inner := maxLineWidth(d.Content)
	inner = max(inner, lipgloss.Width(d.Title), lipgloss.Width(d.Footer))
	inner = min(inner+2, max(maxWidth, 1))

	var lines []string
	if d.Title != "" {
		lines = append(lines, render.Center(s.Title.Render(d.Title), inner), "")
	}
	for line := range strings.SplitSeq(d.Content, "\n") {
		if lipgloss.Width(line) > inner {
			line = ansi.Truncate(line, inner, "…")
		}
		lines = append(lines, line)
	}
	if d.Footer != "" {
		lines = append(lines, "", render.Center(s.Subtle.Render(d.Footer), inner))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(d.Border).
		Padding(0, 1).
		Width(inner + 2).
		Render(strings.Join(lines, "\n"))
}

// Render returns the dialog centered in a termWidth x termHeight area.
func (d *Dialog) Render(termWidth, termHeight int) string {
	return Center(d.Box(termWidth-6), termWidth, termHeight)
}

// Center positions pre-rendered content in the middle of the area, padding
// with blank lines above and spaces on the left.
func Center(content string, termWidth, termHeight int) string {
	lines := strings.Split(content, "\n")
	padTop := max((termHeight-len(lines))/2, 0)
	padLeft := max((termWidth-maxLineWidth(content))/2, 0)

	var b strings.Builder
	for range padTop {
		b.WriteString("\n")
	}
	prefix := strings.Repeat(" ", padLeft)
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(prefix)
		b.WriteString(line)
	}
	return b.String()
}

// Compose draws overlay on top of base. Leading spaces of each overlay line
// are transparent; the rest replaces the base columns it covers.
func Compose(base, overlay string, width int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")
	for len(baseLines) < len(overlayLines) {
		baseLines = append(baseLines, "")
	}

	for i, line := range overlayLines {
		plain := ansi.Strip(line)
		if strings.TrimSpace(plain) == "" {
			continue
		}
		start := len(plain) - len(strings.TrimLeft(plain, " "))
		end := ansi.StringWidth(strings.TrimRight(plain, " "))

		baseLine := baseLines[i]
		if w := ansi.StringWidth(baseLine); w < width {
			baseLine += strings.Repeat(" ", width-w)
		}

		prefix := ansi.Cut(baseLine, 0, start)
		if w := ansi.StringWidth(prefix); w < start {
			// a wide rune straddled the edge
			prefix += strings.Repeat(" ", start-w)
		}
		result := prefix + ansi.Cut(line, start, end)
		if end < width {
			result += ansi.Cut(baseLine, end, width)
		}
		baseLines[i] = result
	}
	return strings.Join(baseLines, "\n")
}

func maxLineWidth(s string) int {
	w := 0
	for line := range strings.SplitSeq(s, "\n") {
		w = max(w, lipgloss.Width(line))
	}
	return w
}
