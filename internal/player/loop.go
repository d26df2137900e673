package player

import (
	"sync/atomic"

	"github.com/gopxl/beep/v2"
)

var _ beep.Streamer = (*loopStreamer)(nil)

// loopStreamer plays its source and, while looping is on, rewinds it to the
// start instead of finishing. The flag may flip while streaming.
type loopStreamer struct {
	src  beep.StreamSeeker
	loop *atomic.Bool
}

// Stream implements beep.Streamer.
func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		sn, sok := l.src.Stream(samples[n:])
		n += sn
		if sok && sn > 0 {
			continue
		}

		// Source exhausted
		if !l.loop.Load() || l.src.Len() == 0 {
			return n, n > 0
		}
		if err := l.src.Seek(0); err != nil {
			return n, n > 0
		}
	}
	return n, true
}

// Err implements beep.Streamer.
func (l *loopStreamer) Err() error {
	return l.src.Err()
}
