package player

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"
)

// DefaultTickInterval is how often PositionAdvanced fires while playing.
const DefaultTickInterval = 250 * time.Millisecond

var (
	speakerMu          sync.Mutex
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

// Player is the beep backed playback handle. It owns at most one source.
// Decoding happens in the background after Load; the outcome is reported
// through Events as DurationKnown or LoadFailed.
type Player struct {
	mu sync.Mutex

	gen      uint64 // bumped on every Load/Unload, stale work checks it
	hasSrc   bool
	ready    bool
	loaded   chan struct{} // closed once the current decode succeeded or failed
	loadErr  error
	state    State
	queued   bool // streamer chain handed to the speaker
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume

	loop        atomic.Bool
	volumeLevel float64

	cancelLoad context.CancelFunc
	stopTicker context.CancelFunc

	events       chan Event
	httpClient   *http.Client
	tickInterval time.Duration
	logger       *zap.Logger
	closed       bool
}

// Option configures a Player.
type Option func(*Player)

// WithLogger sets the logger used for decode and speaker failures.
func WithLogger(l *zap.Logger) Option {
	return func(p *Player) { p.logger = l.Named("player") }
}

// WithHTTPClient sets the client used for URL sources.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Player) { p.httpClient = c }
}

// WithTickInterval overrides DefaultTickInterval.
func WithTickInterval(d time.Duration) Option {
	return func(p *Player) { p.tickInterval = d }
}

// New creates a player with nothing loaded.
func New(opts ...Option) *Player {
	p := &Player{
		state:        Empty,
		volumeLevel:  1,
		events:       make(chan Event, eventBufferSize),
		httpClient:   http.DefaultClient,
		tickInterval: DefaultTickInterval,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Events returns the lifecycle event channel.
func (p *Player) Events() <-chan Event {
	return p.events
}

// Load replaces the current source. It returns immediately; decoding runs in
// the background.
func (p *Player) Load(src Source) error {
	if src.Empty() {
		return ErrNoSource
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.releaseLocked()
	p.hasSrc = true
	p.state = Paused
	p.loaded = make(chan struct{})
	gen := p.gen

	ctx, cancel := context.WithCancel(context.Background())
	p.cancelLoad = cancel
	go p.decode(ctx, gen, src)

	return nil
}

// Unload drops the current source and stops any playback.
func (p *Player) Unload() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.releaseLocked()
}

// releaseLocked stops playback and frees the decoded stream. Caller holds p.mu.
func (p *Player) releaseLocked() {
	p.gen++

	if p.cancelLoad != nil {
		p.cancelLoad()
		p.cancelLoad = nil
	}
	p.stopTickerLocked()
	p.finishLoadLocked()

	if p.queued {
		speaker.Clear()
		p.queued = false
	}
	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}

	p.ctrl = nil
	p.volume = nil
	p.hasSrc = false
	p.ready = false
	p.loadErr = nil
	p.state = Empty
}

// finishLoadLocked wakes Play calls waiting for the current decode.
func (p *Player) finishLoadLocked() {
	if p.loaded != nil {
		close(p.loaded)
		p.loaded = nil
	}
}

func (p *Player) decode(ctx context.Context, gen uint64, src Source) {
	data := src.Data
	mediaType := src.MediaType

	if len(data) == 0 {
		var contentType string
		var err error
		data, contentType, err = readLocation(ctx, p.httpClient, src.URL)
		if err != nil {
			p.failLoad(gen, err)
			return
		}
		if mediaType == "" && strings.HasPrefix(contentType, "audio/") {
			mediaType = contentType
		}
	}

	codec, err := codecFor(mediaType, src.URL)
	if err != nil {
		p.failLoad(gen, err)
		return
	}

	streamer, format, err := decodeBytes(data, codec)
	if err != nil {
		p.failLoad(gen, err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen {
		streamer.Close()
		return
	}

	p.streamer = streamer
	p.format = format
	p.ready = true
	p.cancelLoad = nil
	p.finishLoadLocked()

	send(p.events, Event{Kind: DurationKnown, Duration: format.SampleRate.D(streamer.Len())})
}

func (p *Player) failLoad(gen uint64, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen {
		return
	}
	p.logger.Warn("load failed", zap.Error(err))
	p.ready = false
	p.loadErr = err
	p.finishLoadLocked()
	send(p.events, Event{Kind: LoadFailed, Err: err})
}

// Play starts or resumes playback. While the source is still decoding it
// waits for the decode, so it blocks; call it off the UI loop. It fails when
// nothing is loaded, when decoding failed, when the source is replaced while
// waiting, when ctx ends, or when the audio device cannot be opened.
func (p *Player) Play(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	if !p.hasSrc {
		p.mu.Unlock()
		return ErrNoSource
	}
	gen, loaded := p.gen, p.loaded
	p.mu.Unlock()

	if loaded != nil {
		select {
		case <-loaded:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen {
		return ErrNotReady
	}
	if !p.ready {
		if p.loadErr != nil {
			return p.loadErr
		}
		return ErrNotReady
	}
	if p.state == Playing {
		return nil
	}

	if err := initSpeaker(p.format.SampleRate); err != nil {
		p.logger.Error("speaker init failed", zap.Error(err))
		return err
	}

	if !p.queued {
		p.queueLocked()
	} else {
		speaker.Lock()
		p.ctrl.Paused = false
		speaker.Unlock()
	}

	p.state = Playing
	p.startTickerLocked()
	return nil
}

// queueLocked builds the streamer chain and hands it to the speaker.
func (p *Player) queueLocked() {
	var s beep.Streamer = &loopStreamer{src: p.streamer, loop: &p.loop}
	if p.format.SampleRate != speakerSampleRate {
		s = beep.Resample(4, p.format.SampleRate, speakerSampleRate, s)
	}
	p.ctrl = &beep.Ctrl{Streamer: s, Paused: false}
	p.volume = &effects.Volume{
		Streamer: p.ctrl,
		Base:     2,
		Volume:   levelToVolume(p.volumeLevel),
		Silent:   p.volumeLevel <= 0,
	}

	gen := p.gen
	// The callback runs on the speaker goroutine with the speaker locked, so
	// the bookkeeping is handed off instead of taking p.mu here.
	speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
		go p.finished(gen)
	})))
	p.queued = true
}

func (p *Player) finished(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen || p.streamer == nil {
		return
	}

	p.stopTickerLocked()
	p.queued = false
	p.state = Paused
	// Next Play starts over, like a media element after it ended.
	_ = p.streamer.Seek(0)
	send(p.events, Event{Kind: Ended, Position: p.format.SampleRate.D(p.streamer.Len())})
}

func initSpeaker(rate beep.SampleRate) error {
	speakerMu.Lock()
	defer speakerMu.Unlock()

	if speakerInitialized {
		return nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return err
	}
	speakerSampleRate = rate
	speakerInitialized = true
	return nil
}

// Pause pauses playback. No-op unless playing.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != Playing || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
	p.stopTickerLocked()
}

// State returns the handle state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// SetLoop makes the source restart instead of ending. Takes effect immediately.
func (p *Player) SetLoop(loop bool) {
	p.loop.Store(loop)
}

// SeekTo moves to pos, clamped to the source length.
func (p *Player) SeekTo(pos time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil {
		return
	}

	n := p.format.SampleRate.N(pos)
	n = max(n, 0)
	if last := p.streamer.Len() - 1; n > last {
		n = max(last, 0)
	}

	if p.queued {
		speaker.Lock()
		_ = p.streamer.Seek(n)
		speaker.Unlock()
	} else {
		_ = p.streamer.Seek(n)
	}

	send(p.events, Event{
		Kind:     PositionAdvanced,
		Position: p.format.SampleRate.D(n),
		Duration: p.format.SampleRate.D(p.streamer.Len()),
	})
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positionLocked()
}

// positionLocked reads the decoder position. Once queued, the speaker
// goroutine advances the decoder under the speaker lock, so the read takes it
// too.
func (p *Player) positionLocked() time.Duration {
	if p.streamer == nil {
		return 0
	}
	var n int
	if p.queued {
		speaker.Lock()
		n = p.streamer.Position()
		speaker.Unlock()
	} else {
		n = p.streamer.Position()
	}
	return p.format.SampleRate.D(n)
}

// Duration returns the source length, or 0 while unknown.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

func (p *Player) startTickerLocked() {
	p.stopTickerLocked()

	ctx, cancel := context.WithCancel(context.Background())
	p.stopTicker = cancel
	gen := p.gen

	go func() {
		ticker := time.NewTicker(p.tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.mu.Lock()
				if gen != p.gen || p.streamer == nil {
					p.mu.Unlock()
					return
				}
				send(p.events, Event{
					Kind:     PositionAdvanced,
					Position: p.positionLocked(),
					Duration: p.format.SampleRate.D(p.streamer.Len()),
				})
				p.mu.Unlock()
			}
		}
	}()
}

func (p *Player) stopTickerLocked() {
	if p.stopTicker != nil {
		p.stopTicker()
		p.stopTicker = nil
	}
}

// Close releases the source. The player must not be used afterwards.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.releaseLocked()
	p.closed = true
	return nil
}
