package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/lofi/internal/mpris"
	"github.com/llehouerou/lofi/internal/notify"
	"github.com/llehouerou/lofi/internal/playback"
	"github.com/llehouerou/lofi/internal/timefmt"
)

// notifiedMsg carries the ID of a sent notification.
type notifiedMsg struct {
	ID uint32
}

// publish hands the current playback state to the desktop integration.
func (m Model) publish() {
	if m.desktop == nil {
		return
	}
	ctrl := m.Controller
	s := ctrl.Snapshot()
	d := ctrl.Display()

	m.desktop.Publish(mpris.Snapshot{
		Status:   ctrl.Status(),
		Title:    d.Title,
		Artist:   d.Artist,
		Cover:    d.Cover,
		Load:     ctrl.Generation(),
		Position: s.Position,
		Duration: s.Duration,
		Looping:  s.IsLooping,
		Volume:   ctrl.Volume(),
	})
}

// handleDesktopCommand applies a media key or widget request. Like keys,
// requests are ignored until a layout is bound.
func (m Model) handleDesktopCommand(c mpris.Command) (Model, tea.Cmd) {
	ctrl := m.Controller
	if _, ok := ctrl.Layout(); !ok {
		return m, nil
	}

	switch c.Kind {
	case mpris.CmdPlayPause:
		return m, m.playCmd(ctrl.TogglePlay())
	case mpris.CmdPlay:
		if ctrl.Status() == playback.Paused {
			return m, m.playCmd(ctrl.TogglePlay())
		}
	case mpris.CmdPause:
		if ctrl.Status() == playback.Playing {
			ctrl.TogglePlay()
		}
	case mpris.CmdSeek:
		s := ctrl.Snapshot()
		ctrl.SeekTo(timefmt.Percent(s.Position+c.Offset, s.Duration))
	case mpris.CmdSetPosition:
		ctrl.SeekTo(timefmt.Percent(c.Position, ctrl.Snapshot().Duration))
	case mpris.CmdSetLoop:
		if ctrl.Snapshot().IsLooping != c.Loop {
			ctrl.ToggleLoop()
		}
	case mpris.CmdSetVolume:
		ctrl.SetVolume(c.Volume * 100)
	}
	return m, nil
}

// notifyNowPlaying announces the track the first time it starts playing.
func (m Model) notifyNowPlaying() (Model, tea.Cmd) {
	ctrl := m.Controller
	if ctrl.Status() != playback.Playing {
		return m, nil
	}
	t := ctrl.Track()
	if m.notified && t == m.nowPlayingTrack {
		return m, nil
	}
	m.notified = true
	m.nowPlayingTrack = t
	d := ctrl.Display()
	return m, m.notifyCmd(notify.NowPlaying(d.Title, d.Artist, d.Cover, m.nowPlayingID), true)
}

// notifyCmd sends n off the event loop. With keepID the ID comes back as a
// notifiedMsg so the next "now playing" replaces it.
func (m Model) notifyCmd(n notify.Notification, keepID bool) tea.Cmd {
	notifier, logger := m.notifier, m.logger
	return func() tea.Msg {
		id, err := notifier.Notify(n)
		if err != nil {
			logger.Debug("desktop notification", zap.Error(err))
			return nil
		}
		if !keepID {
			return nil
		}
		return notifiedMsg{ID: id}
	}
}
