package app

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/llehouerou/lofi/internal/device"
	"github.com/llehouerou/lofi/internal/errmsg"
	"github.com/llehouerou/lofi/internal/export"
	"github.com/llehouerou/lofi/internal/mpris"
	"github.com/llehouerou/lofi/internal/notify"
	"github.com/llehouerou/lofi/internal/playback"
	"github.com/llehouerou/lofi/internal/player"
	"github.com/llehouerou/lofi/internal/ui/alert"
	"github.com/llehouerou/lofi/internal/ui/devicepopup"
)

// Update handles messages and returns updated model and commands. The
// resulting playback state is published to the desktop integration.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.publish()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startMsg:
		return m.handleStart()

	case showPromptMsg:
		m.Selector.ShowPrompt()
		m.Prompt = devicepopup.New(m.Width)
		return m, nil

	case devicepopup.SelectedMsg:
		return m.handleDeviceSelected(msg)

	case activateMsg:
		m.Selector.Activate(msg.Type)
		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		return m, nil

	case PlayerEventMsg:
		if e := playback.FromPlayer(player.Event(msg)); e != nil {
			m.Controller.Dispatch(e)
		}
		return m, m.watchPlayerEvents()

	case playerClosedMsg:
		m.logger.Debug("player event channel closed")
		return m, nil

	case playback.PlayResolved:
		m.Controller.Dispatch(msg)
		return m.notifyNowPlaying()

	case mpris.Command:
		return m.handleDesktopCommand(msg)

	case notifiedMsg:
		m.nowPlayingID = msg.ID
		return m, nil

	case playback.RemoteResult:
		// Failures are already reflected in the display.
		_ = m.Controller.CompleteRemoteLoad(msg)
		return m, nil

	case downloadDoneMsg:
		return m.handleDownloadDone(msg)

	case alert.DismissedMsg:
		return m, nil

	case FrameMsg:
		// Nothing to update; returning re-renders the bars.
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// handleStart loads the initial track and restores or asks for the layout.
func (m Model) handleStart() (Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.opts.ChooseDevice {
		if err := m.Selector.Reset(); err != nil {
			m.logger.Warn("reset device preference", zap.Error(err))
			m.Alert = m.Alert.Failed(errmsg.OpPreferenceReset, err)
		}
	}
	if _, ok := m.Selector.CheckPreference(); !ok {
		cmds = append(cmds, showPromptCmd())
	}

	switch {
	case m.opts.Remote != "" && m.fetcher != nil:
		cmds = append(cmds, m.fetchCmd(m.opts.Remote, m.opts.Track))
	case m.opts.Remote != "":
		m.logger.Error("remote track requested without a fetcher", zap.String("url", m.opts.Remote))
	default:
		// Invalid references are logged by the controller; the display still
		// shows the metadata.
		_ = m.Controller.LoadTrack(m.opts.Track)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleDeviceSelected(msg devicepopup.SelectedMsg) (Model, tea.Cmd) {
	if m.Selector.Prompt() != device.PromptVisible {
		return m, nil
	}
	if err := m.Selector.Select(msg.Type); err != nil {
		// The choice still applies to this session.
		m.Alert = m.Alert.Failed(errmsg.OpPreferenceSave, err)
	}
	return m, activateCmd(msg.Type)
}

func (m Model) handleDownloadDone(msg downloadDoneMsg) (Model, tea.Cmd) {
	switch {
	case errors.Is(msg.Err, export.ErrNothingLoaded):
		m.Alert = m.Alert.NothingLoaded()
	case msg.Err != nil:
		m.logger.Error("download", zap.Error(msg.Err))
		m.Alert = m.Alert.Failed(errmsg.OpDownload, msg.Err)
	default:
		m.logger.Info("download saved",
			zap.String("path", msg.Result.Path),
			zap.Int64("size", msg.Result.Size),
		)
		m.Alert = m.Alert.Saved(msg.Result)
		return m, m.notifyCmd(notify.DownloadSaved(msg.Result.Path, humanize.Bytes(uint64(max(msg.Result.Size, 0)))), false)
	}
	return m, nil
}
