package player

import "time"

// EventKind identifies a playback lifecycle event.
type EventKind int

const (
	// DurationKnown fires once the source is decoded and its length is known.
	DurationKnown EventKind = iota
	// PositionAdvanced fires periodically while playing and after seeks.
	PositionAdvanced
	// Ended fires when the media finishes and looping is off.
	Ended
	// LoadFailed fires when the source cannot be fetched or decoded.
	LoadFailed
)

// String returns the event name for logging.
func (k EventKind) String() string {
	switch k {
	case DurationKnown:
		return "DurationKnown"
	case PositionAdvanced:
		return "PositionAdvanced"
	case Ended:
		return "Ended"
	case LoadFailed:
		return "LoadFailed"
	default:
		return "Unknown"
	}
}

// Event is emitted by the handle on its Events channel.
type Event struct {
	Kind     EventKind
	Position time.Duration
	Duration time.Duration
	Err      error
}

const eventBufferSize = 32

// send delivers an event without blocking the audio path.
func send(ch chan Event, e Event) {
	select {
	case ch <- e:
	default:
		// Drop if buffer full
	}
}
