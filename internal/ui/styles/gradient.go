package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Brand renders the application name bold, blended from Primary to Secondary.
func Brand(name string) string {
	var clusters []string
	gr := uniseg.NewGraphemes(name)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}

	colors := Blend(len(clusters), T().Primary, T().Secondary)
	var b strings.Builder
	for i, cluster := range clusters {
		b.WriteString(lipgloss.NewStyle().Foreground(colors[i]).Bold(true).Render(cluster))
	}
	return b.String()
}

// Blend returns n colours going from `from` to `to` in HCL space. Colours that
// are not "#rrggbb" hex are not blended: every step is `from`.
func Blend(n int, from, to lipgloss.Color) []lipgloss.Color {
	if n <= 0 {
		return nil
	}
	out := make([]lipgloss.Color, n)
	c1, err1 := colorful.Hex(string(from))
	c2, err2 := colorful.Hex(string(to))
	if err1 != nil || err2 != nil || n == 1 {
		for i := range out {
			out[i] = from
		}
		return out
	}
	out[0], out[n-1] = from, to
	for i := 1; i < n-1; i++ {
		t := float64(i) / float64(n-1)
		out[i] = lipgloss.Color(c1.BlendHcl(c2, t).Clamped().Hex())
	}
	return out
}
