// Package devicepopup renders the desktop/mobile selection prompt.
package devicepopup

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/lofi/internal/device"
	"github.com/llehouerou/lofi/internal/ui/popup"
	"github.com/llehouerou/lofi/internal/ui/styles"
)

// SelectedMsg is emitted when the user confirms a choice.
type SelectedMsg struct {
	Type device.Type
}

type keyMap struct {
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
	Desktop key.Binding
	Mobile  key.Binding
}

var keys = keyMap{
	Left:    key.NewBinding(key.WithKeys("left", "h", "shift+tab")),
	Right:   key.NewBinding(key.WithKeys("right", "l", "tab")),
	Confirm: key.NewBinding(key.WithKeys("enter", " ")),
	Desktop: key.NewBinding(key.WithKeys("1", "d")),
	Mobile:  key.NewBinding(key.WithKeys("2", "m")),
}

var choices = []struct {
	t     device.Type
	icon  string
	label string
}{
	{device.Desktop, "🖥", "Desktop"},
	{device.Mobile, "📱", "Mobile"},
}

// Model is the selection prompt.
type Model struct {
	cursor int
}

// New preselects the choice suggested for the terminal width.
func New(width int) Model {
	m := Model{}
	if device.Suggest(width) == device.Mobile {
		m.cursor = 1
	}
	return m
}

// Current returns the highlighted choice.
func (m Model) Current() device.Type {
	return choices[m.cursor].t
}

// Update moves the highlight or confirms.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, keys.Left):
		m.cursor = 0
	case key.Matches(km, keys.Right):
		m.cursor = len(choices) - 1
	case key.Matches(km, keys.Desktop):
		m.cursor = 0
		return m, m.selected()
	case key.Matches(km, keys.Mobile):
		m.cursor = 1
		return m, m.selected()
	case key.Matches(km, keys.Confirm):
		return m, m.selected()
	}
	return m, nil
}

func (m Model) selected() tea.Cmd {
	t := m.Current()
	return func() tea.Msg { return SelectedMsg{Type: t} }
}

// View renders the prompt box.
func (m Model) View() string {
	options := make([]string, len(choices))
	for i, c := range choices {
		label := c.label
		if i == m.cursor {
			label = styles.T().S().Active.Render(label)
		}
		options[i] = styles.OptionStyle(i == m.cursor).
			Align(lipgloss.Center).
			Render(c.icon + "\n" + label)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, options[0], "  ", options[1])
	body := lipgloss.JoinVertical(lipgloss.Center,
		styles.Brand("lofi"),
		"",
		"Choose your device",
		"",
		row,
	)
	d := popup.New("", body, "←/→ move · enter select · 1 desktop · 2 mobile")
	d.Border = styles.T().BorderFocus
	return d.Box(60)
}
