// internal/player/state.go
package player

// State is the handle's own view of playback.
//
//	┌──────────┐   Load    ┌──────────┐   Play    ┌──────────┐
//	│  Empty   │ ────────▶ │  Paused  │ ────────▶ │ Playing  │
//	└──────────┘           └──────────┘ ◀──────── └──────────┘
//	     ▲                      │        Pause / Ended  │
//	     └──────── Unload ──────┴───────────────────────┘
//
// Loading never starts playback by itself.
type State int

const (
	Empty State = iota
	Paused
	Playing
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Empty:
		return "Empty"
	case Paused:
		return "Paused"
	case Playing:
		return "Playing"
	default:
		return "Unknown"
	}
}
