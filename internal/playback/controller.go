// Package playback owns the playback handle and the state derived from it.
// Every method must be called from the same goroutine (the UI event loop).
package playback

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/lofi/internal/device"
	"github.com/llehouerou/lofi/internal/player"
	"github.com/llehouerou/lofi/internal/source"
	"github.com/llehouerou/lofi/internal/timefmt"
)

// ErrPlaybackRejected wraps the handle's refusal to start playing.
var ErrPlaybackRejected = errors.New("playback rejected")

// DefaultVolume is applied whenever a layout is bound.
const DefaultVolume = 70

// Visualizer is driven by the playing state.
type Visualizer interface {
	Start()
	Stop()
	Resize(bars int)
}

type nopVisualizer struct{}

func (nopVisualizer) Start()     {}
func (nopVisualizer) Stop()      {}
func (nopVisualizer) Resize(int) {}

// Controller is the only component touching the playback handle.
type Controller struct {
	player        player.Interface
	vis           Visualizer
	logger        *zap.Logger
	defaultVolume float64

	status   Status
	state    State
	display  Display
	volume   float64
	track    source.Track
	retained string
	gen      uint64

	layout device.Layout
	bound  bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithVisualizer attaches the visualizer started and stopped with playback.
func WithVisualizer(v Visualizer) Option {
	return func(c *Controller) {
		if v != nil {
			c.vis = v
		}
	}
}

// WithDefaultVolume overrides DefaultVolume (percent).
func WithDefaultVolume(percent float64) Option {
	return func(c *Controller) {
		c.defaultVolume = timefmt.ClampPercent(percent)
	}
}

// New creates a controller in the Idle state.
func New(p player.Interface, opts ...Option) *Controller {
	c := &Controller{
		player:        p,
		vis:           nopVisualizer{},
		logger:        zap.NewNop(),
		defaultVolume: DefaultVolume,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("playback")
	c.display = Display{
		Title:   defaultTitle,
		Artist:  defaultArtist,
		Elapsed: zeroTime,
		Total:   zeroTime,
	}
	c.SetVolume(c.defaultVolume)
	return c
}

// Bind injects the layout whose controls drive the controller. Binding again,
// with the same layout or another one, replaces the previous binding and
// restores the default volume.
func (c *Controller) Bind(l device.Layout) {
	c.layout = l
	c.bound = true
	c.vis.Resize(l.VisualizerBars)
	c.SetVolume(c.defaultVolume)
	c.logger.Debug("layout bound", zap.Stringer("device", l.Type))
}

// Layout returns the bound layout; ok is false before the first Bind.
func (c *Controller) Layout() (l device.Layout, ok bool) {
	return c.layout, c.bound
}

// PlayRequest asks the handle to start playing. Run it off the event loop and
// dispatch the result.
type PlayRequest struct {
	gen    uint64
	player player.Interface
}

// Run invokes the handle's play capability.
func (r *PlayRequest) Run(ctx context.Context) PlayResolved {
	return PlayResolved{Gen: r.gen, Err: r.player.Play(ctx)}
}

// TogglePlay pauses when playing. When paused it returns the request that will
// start playback; the state only changes once its PlayResolved is dispatched.
// Without a loaded source it logs a warning and returns nil.
func (c *Controller) TogglePlay() *PlayRequest {
	switch c.status {
	case Idle:
		c.logger.Warn("no audio loaded")
		return nil
	case Playing:
		c.player.Pause()
		c.stopPlaying()
		return nil
	default:
		return &PlayRequest{gen: c.gen, player: c.player}
	}
}

// ToggleLoop flips looping and returns the new value.
func (c *Controller) ToggleLoop() bool {
	c.state.IsLooping = !c.state.IsLooping
	c.player.SetLoop(c.state.IsLooping)
	c.display.Looping = c.state.IsLooping
	return c.state.IsLooping
}

// SeekTo moves to percent (clamped to 0-100) of the duration. It does nothing
// while the duration is unknown.
func (c *Controller) SeekTo(percent float64) {
	if !c.state.DurationKnown || c.state.Duration <= 0 {
		return
	}
	pos := timefmt.SeekOffset(percent, c.state.Duration)
	c.player.SeekTo(pos)
	c.setPosition(pos)
}

// SetVolume sets the volume to percent, clamped to 0-100.
func (c *Controller) SetVolume(percent float64) {
	p := timefmt.ClampPercent(percent)
	c.volume = p
	c.player.SetVolume(p / 100)
	c.display.Volume = int(math.Round(p))
}

// Volume returns the volume percent.
func (c *Controller) Volume() float64 {
	return c.volume
}

// Dispatch applies an event. Nil events are ignored.
func (c *Controller) Dispatch(e Event) {
	switch e := e.(type) {
	case DurationKnown:
		c.state.Duration = e.Duration
		c.state.DurationKnown = true
		c.display.Total = timefmt.Format(e.Duration)
		c.setPosition(c.state.Position)
	case PositionAdvanced:
		c.setPosition(e.Position)
	case PlaybackEnded:
		if c.state.IsLooping {
			return
		}
		c.stopPlaying()
	case LoadFailed:
		c.logger.Error("load audio", zap.Error(e.Err))
		c.display.Title = loadErrorTitle
		c.display.Artist = loadErrorArtist
		c.display.Error = true
		c.stopPlaying()
	case PlayResolved:
		c.resolvePlay(e)
	}
}

func (c *Controller) resolvePlay(e PlayResolved) {
	if e.Gen != c.gen {
		// The track changed while the request was in flight.
		if e.Err == nil {
			c.player.Pause()
		}
		c.logger.Debug("stale play result ignored", zap.Uint64("gen", e.Gen))
		return
	}
	if e.Err != nil {
		c.logger.Warn("play", zap.Error(fmt.Errorf("%w: %w", ErrPlaybackRejected, e.Err)))
		return
	}
	if c.status != Paused {
		return
	}
	c.status = Playing
	c.state.IsPlaying = true
	c.display.Playing = true
	c.vis.Start()
}

func (c *Controller) stopPlaying() {
	if c.status == Playing {
		c.status = Paused
	}
	c.state.IsPlaying = false
	c.display.Playing = false
	c.vis.Stop()
}

func (c *Controller) setPosition(pos time.Duration) {
	c.state.Position = pos
	c.display.Elapsed = timefmt.Format(pos)
	if c.state.DurationKnown {
		c.display.Progress = timefmt.Percent(pos, c.state.Duration)
	}
}

// Status returns the state machine position.
func (c *Controller) Status() Status { return c.status }

// Snapshot returns a copy of the playback state.
func (c *Controller) Snapshot() State { return c.state }

// Display returns a copy of the display state.
func (c *Controller) Display() Display { return c.display }

// Track returns the current track descriptor.
func (c *Controller) Track() source.Track { return c.track }

// Generation counts source assignments. It changes whenever a new source
// replaces the current one.
func (c *Controller) Generation() uint64 { return c.gen }

// Retained returns the data URI kept for export.
func (c *Controller) Retained() (string, bool) {
	return c.retained, c.retained != ""
}

// Close stops the visualizer and releases the handle.
func (c *Controller) Close() error {
	c.vis.Stop()
	return c.player.Close()
}
