package app

import (
	"strings"

	"github.com/llehouerou/lofi/internal/device"
	"github.com/llehouerou/lofi/internal/ui/playerbar"
	"github.com/llehouerou/lofi/internal/ui/popup"
	"github.com/llehouerou/lofi/internal/ui/render"
	"github.com/llehouerou/lofi/internal/ui/styles"
)

const (
	desktopMaxWidth = 80
	mobileMaxWidth  = 44
)

// View implements tea.Model.
func (m Model) View() string {
	if m.Width == 0 {
		return ""
	}

	view := m.baseView()

	if m.Selector.Prompt() == device.PromptVisible {
		view = popup.Compose(view, popup.Center(m.Prompt.View(), m.Width, m.Height), m.Width)
	}
	if m.Alert.Visible() {
		view = popup.Compose(view, popup.Center(m.Alert.View(), m.Width, m.Height), m.Width)
	}
	return view
}

// baseView renders the active layout and the help line, or the brand line
// while no layout is active.
func (m Model) baseView() string {
	layout, ok := m.Controller.Layout()
	if !ok {
		return render.Center(styles.Brand("lofi"), m.Width)
	}

	maxWidth := desktopMaxWidth
	if layout.Compact {
		maxWidth = mobileMaxWidth
	}
	card := playerbar.Render(playerbar.State{
		Display: m.Controller.Display(),
		Layout:  layout,
		Bars:    m.bars.Heights(),
	}, min(m.Width, maxWidth))

	return strings.Join([]string{card, m.Help.View(m.helpKeys)}, "\n")
}
