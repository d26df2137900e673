// Package visualizer animates decorative equalizer bars while audio plays.
// Heights are random; nothing is derived from the signal.
package visualizer

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

const (
	// DefaultInterval is the delay between two frames.
	DefaultInterval = 200 * time.Millisecond
	// MinHeight is the lowest bar height and the resting height.
	MinHeight = 4
	// MaxHeight bounds bar heights (exclusive).
	MaxHeight = 20
)

// Driver owns the bar heights and the repeating task updating them.
type Driver struct {
	mu       sync.Mutex
	bars     []int
	interval time.Duration
	rng      *rand.Rand
	onFrame  func()
	cancel   context.CancelFunc
}

// Option configures a Driver.
type Option func(*Driver)

// WithInterval overrides DefaultInterval. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(v *Driver) {
		if d > 0 {
			v.interval = d
		}
	}
}

// WithOnFrame registers a hook called from the animation goroutine after
// every frame, typically to request a redraw.
func WithOnFrame(fn func()) Option {
	return func(v *Driver) { v.onFrame = fn }
}

// WithRand sets the random source.
func WithRand(r *rand.Rand) Option {
	return func(v *Driver) {
		if r != nil {
			v.rng = r
		}
	}
}

// New creates a stopped driver with n bars at rest.
func New(n int, opts ...Option) *Driver {
	d := &Driver{
		interval: DefaultInterval,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), //nolint:gosec // decorative
	}
	for _, opt := range opts {
		opt(d)
	}
	d.bars = restingBars(n)
	return d
}

// Start draws a first frame and starts the repeating task. Starting a
// running driver does nothing.
func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.randomizeLocked()
	go d.run(ctx)
}

// Stop cancels the repeating task and puts the bars back at rest. No frame
// changes the bars once Stop returns.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel == nil {
		return
	}
	d.cancel()
	d.cancel = nil
	d.bars = restingBars(len(d.bars))
}

// Running reports whether the task is active.
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancel != nil
}

// Resize changes the number of bars.
func (d *Driver) Resize(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bars = restingBars(n)
	if d.cancel != nil {
		d.randomizeLocked()
	}
}

// Heights returns a copy of the current bar heights.
func (d *Driver) Heights() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]int, len(d.bars))
	copy(out, d.bars)
	return out
}

func (d *Driver) run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !d.frame(ctx) {
				return
			}
			if d.onFrame != nil {
				d.onFrame()
			}
		}
	}
}

// frame randomizes the bars unless ctx was cancelled meanwhile.
func (d *Driver) frame(ctx context.Context) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if ctx.Err() != nil {
		return false
	}
	d.randomizeLocked()
	return true
}

func (d *Driver) randomizeLocked() {
	for i := range d.bars {
		d.bars[i] = MinHeight + d.rng.IntN(MaxHeight-MinHeight)
	}
}

func restingBars(n int) []int {
	bars := make([]int, max(n, 0))
	for i := range bars {
		bars[i] = MinHeight
	}
	return bars
}
