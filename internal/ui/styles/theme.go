package styles

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the player palette.
type Theme struct {
	Primary   lipgloss.Color // active toggles, progress fill, bottom of the bars
	Secondary lipgloss.Color // top of the bars, end of the brand gradient

	Text    lipgloss.Color
	Muted   lipgloss.Color
	Subtle  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color
}

// Styles are the text styles derived from a Theme.
type Styles struct {
	Title         lipgloss.Style
	Muted         lipgloss.Style
	Subtle        lipgloss.Style
	Active        lipgloss.Style
	Error         lipgloss.Style
	ProgressFill  lipgloss.Style
	ProgressTrack lipgloss.Style
}

var lofi = Theme{
	Primary:   "#a78bfa",
	Secondary: "#f1a208",

	Text:    "#c0c0c0",
	Muted:   "#808080",
	Subtle:  "#585858",
	Success: "#42b883",
	Error:   "#ff5555",

	Border:      "#585858",
	BorderFocus: "#a78bfa",
}

var lofiStyles = sync.OnceValue(func() *Styles { return lofi.styles() })

// T returns the theme.
func T() *Theme {
	return &lofi
}

// S returns the styles of t.
func (t *Theme) S() *Styles {
	if t == &lofi {
		return lofiStyles()
	}
	return t.styles()
}

func (t *Theme) styles() *Styles {
	active := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	return &Styles{
		Title:         lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		Muted:         lipgloss.NewStyle().Foreground(t.Muted),
		Subtle:        lipgloss.NewStyle().Foreground(t.Subtle),
		Active:        active,
		Error:         lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		ProgressFill:  lipgloss.NewStyle().Foreground(t.Primary),
		ProgressTrack: lipgloss.NewStyle().Foreground(t.Subtle),
	}
}
