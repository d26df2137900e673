package styles

import "github.com/charmbracelet/lipgloss"

// CardStyle returns the bordered style of the player card.
func CardStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(T().Border).
		Padding(0, 1)
}

// OptionStyle returns the style of a choice box; the selected one gets the
// focus border.
func OptionStyle(selected bool) lipgloss.Style {
	color := T().Border
	if selected {
		color = T().BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 2)
}
