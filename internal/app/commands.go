package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/lofi/internal/device"
	"github.com/llehouerou/lofi/internal/export"
	"github.com/llehouerou/lofi/internal/playback"
	"github.com/llehouerou/lofi/internal/player"
	"github.com/llehouerou/lofi/internal/source"
)

// waitForChannel creates a command that waits for a value from a channel and converts it to a message.
// onResult receives the value and a boolean indicating if the channel is still open (false means channel closed).
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		result, ok := <-ch
		return onResult(result, ok)
	}
}

// watchPlayerEvents waits for the next playback handle event. It is re-armed
// after every event.
func (m Model) watchPlayerEvents() tea.Cmd {
	if m.player == nil {
		return nil
	}
	return waitForChannel(m.player.Events(), func(e player.Event, ok bool) tea.Msg {
		if !ok {
			return playerClosedMsg{}
		}
		return PlayerEventMsg(e)
	})
}

// showPromptCmd shows the device prompt after PromptDelay.
func showPromptCmd() tea.Cmd {
	return tea.Tick(device.PromptDelay, func(time.Time) tea.Msg {
		return showPromptMsg{}
	})
}

// activateCmd activates t once the prompt has had TransitionDelay to hide.
func activateCmd(t device.Type) tea.Cmd {
	return tea.Tick(device.TransitionDelay, func(time.Time) tea.Msg {
		return activateMsg{Type: t}
	})
}

// playCmd runs a play request off the event loop. The result comes back as a
// playback.PlayResolved message.
func (m Model) playCmd(req *playback.PlayRequest) tea.Cmd {
	if req == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return req.Run(ctx)
	}
}

// fetchCmd downloads a remote payload. The result comes back as a
// playback.RemoteResult message.
func (m Model) fetchCmd(url string, meta source.Track) tea.Cmd {
	f, ctx := m.fetcher, m.ctx
	return func() tea.Msg {
		return playback.FetchRemote(ctx, f, url, meta)
	}
}

// downloadCmd writes the retained payload to disk.
func (m Model) downloadCmd(retained string, meta export.Meta) tea.Cmd {
	d := m.downloader
	return func() tea.Msg {
		res, err := d.Download(retained, meta)
		return downloadDoneMsg{Result: res, Err: err}
	}
}
