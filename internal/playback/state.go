// internal/playback/state.go
package playback

import "time"

// Status is the controller's playback state.
//
//	┌──────────┐  load   ┌──────────┐  play resolved  ┌──────────┐
//	│   Idle   │ ──────▶ │  Paused  │ ──────────────▶ │ Playing  │
//	└──────────┘         └──────────┘ ◀────────────── └──────────┘
//	                          ▲        toggle / ended       │ ended while
//	                          │                             │ looping
//	                          └── load ◀────────────────────┘ stays Playing
//
// Idle is only left, never re-entered.
type Status int

const (
	Idle Status = iota
	Paused
	Playing
)

// String returns the status name for debugging.
func (s Status) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Paused:
		return "Paused"
	case Playing:
		return "Playing"
	default:
		return "Unknown"
	}
}

// State is the playback state owned by the controller.
// Position is only meaningful once DurationKnown is set.
type State struct {
	IsPlaying     bool
	IsLooping     bool
	Position      time.Duration
	Duration      time.Duration
	DurationKnown bool
}

// Display is what the bound layout shows.
type Display struct {
	Cover    string
	Title    string
	Artist   string
	Elapsed  string
	Total    string
	Progress float64 // 0-100
	Playing  bool
	Looping  bool
	Volume   int // 0-100
	Error    bool
}

const (
	defaultTitle       = "Unknown Track"
	defaultRemoteTitle = "Unknown Title"
	defaultArtist      = "Unknown Artist"

	fetchErrorTitle  = "Error loading track"
	fetchErrorArtist = "Try again"

	loadErrorTitle  = "Error loading audio"
	loadErrorArtist = "Please check the audio format"

	zeroTime = "0:00"
)
