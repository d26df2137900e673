package mpris

import (
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/lofi/internal/playback"
)

const identity = "lofi"

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return identity, nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file", "http", "https", "data"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/mp3", "audio/wav", "audio/flac", "audio/ogg"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and the loop
// status extension.
type playerAdapter struct {
	state *state
}

func (p *playerAdapter) Next() error {
	return nil // Single track
}

func (p *playerAdapter) Previous() error {
	return nil // Single track
}

func (p *playerAdapter) Pause() error {
	p.state.dispatch(Command{Kind: CmdPause})
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.state.dispatch(Command{Kind: CmdPlayPause})
	return nil
}

func (p *playerAdapter) Stop() error {
	p.state.dispatch(Command{Kind: CmdPause})
	return nil
}

func (p *playerAdapter) Play() error {
	p.state.dispatch(Command{Kind: CmdPlay})
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	p.state.dispatch(Command{Kind: CmdSeek, Offset: time.Duration(offset) * time.Microsecond})
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	p.state.dispatch(Command{Kind: CmdSetPosition, Position: time.Duration(position) * time.Microsecond})
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.state.current().Status {
	case playback.Playing:
		return types.PlaybackStatusPlaying, nil
	case playback.Paused:
		return types.PlaybackStatusPaused, nil
	case playback.Idle:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	s := p.state.current()
	if s.Status == playback.Idle {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(s.Load)),
		Length:  types.Microseconds(s.Duration.Microseconds()),
		Title:   s.Title,
		Artist:  []string{s.Artist},
	}
	if s.Cover != "" {
		meta.ArtUrl = s.Cover
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return p.state.current().Volume / 100, nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	p.state.dispatch(Command{Kind: CmdSetVolume, Volume: v})
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.state.current().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.state.current().Status != playback.Idle, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.state.current().Duration > 0, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	if p.state.current().Looping {
		return types.LoopStatusTrack, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
// Playlist looping is the same as track looping with a single track.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	p.state.dispatch(Command{Kind: CmdSetLoop, Loop: status != types.LoopStatusNone})
	return nil
}

func formatTrackID(load uint64) string {
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%d", load)
}
