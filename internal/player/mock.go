// internal/player/mock.go
package player

import (
	"context"
	"time"
)

// Mock is a test double for Player. Nothing happens on its own: tests drive
// lifecycle events through Emit.
type Mock struct {
	state     State
	source    Source
	loop      bool
	volume    float64
	position  time.Duration
	duration  time.Duration
	playErr   error
	loadCalls []Source
	seekCalls []time.Duration
	playCalls int
	pending   chan struct{} // while set, Play waits for MarkReady
	events    chan Event
	closed    bool
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{
		state:  Empty,
		volume: 1,
		events: make(chan Event, eventBufferSize),
	}
}

func (m *Mock) Load(src Source) error {
	if src.Empty() {
		return ErrNoSource
	}
	m.loadCalls = append(m.loadCalls, src)
	m.source = src
	m.state = Paused
	m.position = 0
	m.duration = 0
	return nil
}

func (m *Mock) Unload() {
	m.source = Source{}
	m.state = Empty
	m.position = 0
	m.duration = 0
}

func (m *Mock) Play(ctx context.Context) error {
	m.playCalls++
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.state == Empty {
		return ErrNoSource
	}
	if m.pending != nil {
		select {
		case <-m.pending:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if m.playErr != nil {
		return m.playErr
	}
	m.state = Playing
	return nil
}

func (m *Mock) Pause() {
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) State() State { return m.state }

func (m *Mock) SetLoop(loop bool) { m.loop = loop }

func (m *Mock) SeekTo(pos time.Duration) {
	m.seekCalls = append(m.seekCalls, pos)
	m.position = pos
}

func (m *Mock) SetVolume(level float64) { m.volume = level }

func (m *Mock) Volume() float64 { return m.volume }

func (m *Mock) Position() time.Duration { return m.position }

func (m *Mock) Duration() time.Duration { return m.duration }

func (m *Mock) Events() <-chan Event { return m.events }

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetPlayError(err error) { m.playErr = err }

// HoldDecode makes Play wait, as if the source were still decoding, until
// MarkReady. Call both from the test goroutine before and after Play starts.
func (m *Mock) HoldDecode() { m.pending = make(chan struct{}) }

// MarkReady releases Play calls held by HoldDecode.
func (m *Mock) MarkReady() {
	if m.pending != nil {
		close(m.pending)
	}
}

func (m *Mock) SetDuration(d time.Duration) { m.duration = d }

func (m *Mock) Loop() bool { return m.loop }

func (m *Mock) Source() Source { return m.source }

func (m *Mock) LoadCalls() []Source { return m.loadCalls }

func (m *Mock) SeekCalls() []time.Duration { return m.seekCalls }

func (m *Mock) PlayCalls() int { return m.playCalls }

func (m *Mock) IsClosed() bool { return m.closed }

// Emit queues a lifecycle event as if the handle had produced it.
func (m *Mock) Emit(e Event) {
	if e.Kind == DurationKnown {
		m.duration = e.Duration
	}
	send(m.events, e)
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
