// internal/player/interface.go
package player

import (
	"context"
	"time"
)

// Interface defines the playback handle contract for dependency injection and testing.
type Interface interface {
	Load(src Source) error
	Unload()
	Play(ctx context.Context) error
	Pause()
	State() State
	SetLoop(loop bool)
	SeekTo(pos time.Duration)
	SetVolume(level float64)
	Volume() float64
	Position() time.Duration
	Duration() time.Duration
	Events() <-chan Event
	Close() error
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
