// internal/playback/events.go
package playback

import (
	"time"

	"github.com/llehouerou/lofi/internal/player"
)

// Event is consumed by Controller.Dispatch, the controller's single entry
// point for things that happened outside the event loop.
type Event interface {
	playbackEvent()
}

// DurationKnown is dispatched once the loaded media's length is known.
type DurationKnown struct {
	Duration time.Duration
}

// PositionAdvanced is dispatched while playing and after seeks.
type PositionAdvanced struct {
	Position time.Duration
}

// PlaybackEnded is dispatched when the media reaches its end.
type PlaybackEnded struct{}

// LoadFailed is dispatched when the handle cannot fetch or decode the source.
type LoadFailed struct {
	Err error
}

// PlayResolved carries the outcome of a PlayRequest.
type PlayResolved struct {
	Gen uint64
	Err error
}

func (DurationKnown) playbackEvent()    {}
func (PositionAdvanced) playbackEvent() {}
func (PlaybackEnded) playbackEvent()    {}
func (LoadFailed) playbackEvent()       {}
func (PlayResolved) playbackEvent()     {}

// FromPlayer converts a handle event to a controller event.
func FromPlayer(e player.Event) Event {
	switch e.Kind {
	case player.DurationKnown:
		return DurationKnown{Duration: e.Duration}
	case player.PositionAdvanced:
		return PositionAdvanced{Position: e.Position}
	case player.Ended:
		return PlaybackEnded{}
	case player.LoadFailed:
		return LoadFailed{Err: e.Err}
	default:
		return nil
	}
}
