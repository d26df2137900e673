package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/lofi/internal/device"
	"github.com/llehouerou/lofi/internal/export"
	"github.com/llehouerou/lofi/internal/keymap"
	"github.com/llehouerou/lofi/internal/ui/devicepopup"
)

const (
	seekStep   = 5 // percent of the duration
	volumeStep = 5 // volume percent
)

// handleKeyMsg routes a key to the topmost component: the alert, then the
// device prompt, then the player controls.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()

	if m.Alert.Visible() {
		var cmd tea.Cmd
		m.Alert, cmd = m.Alert.Update(msg)
		return m, cmd
	}

	if m.Selector.Prompt() == device.PromptVisible {
		if key == "ctrl+c" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.Prompt, cmd = m.Prompt.Update(msg)
		return m, cmd
	}

	press, ok := m.keys.Resolve(key)
	if !ok {
		return m, nil
	}
	switch press.Action {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.ShowHelp = !m.ShowHelp
		m.Help.ShowAll = m.ShowHelp
		return m, nil
	case keymap.ActionChooseDevice:
		m.Selector.ShowPrompt()
		m.Prompt = devicepopup.New(m.Width)
		return m, nil
	}

	// Controls exist only once a layout is bound.
	if _, bound := m.Controller.Layout(); !bound || !press.Playback {
		return m, nil
	}
	return m.handlePlaybackCommand(press)
}

func (m Model) handlePlaybackCommand(cmd keymap.Command) (Model, tea.Cmd) {
	ctrl := m.Controller

	switch cmd.Action {
	case keymap.ActionPlayPause:
		return m, m.playCmd(ctrl.TogglePlay())
	case keymap.ActionToggleLoop:
		ctrl.ToggleLoop()
	case keymap.ActionSeekBack:
		ctrl.SeekTo(ctrl.Display().Progress - seekStep)
	case keymap.ActionSeekForward:
		ctrl.SeekTo(ctrl.Display().Progress + seekStep)
	case keymap.ActionSeekPercent:
		ctrl.SeekTo(cmd.Percent)
	case keymap.ActionVolumeDown:
		ctrl.SetVolume(ctrl.Volume() - volumeStep)
	case keymap.ActionVolumeUp:
		ctrl.SetVolume(ctrl.Volume() + volumeStep)
	case keymap.ActionDownload:
		retained, ok := ctrl.Retained()
		if !ok {
			m.Alert = m.Alert.NothingLoaded()
			return m, nil
		}
		t := ctrl.Track()
		return m, m.downloadCmd(retained, export.Meta{Title: t.Title, Artist: t.Artist})
	}
	return m, nil
}
