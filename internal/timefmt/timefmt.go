// Package timefmt converts playback positions to display text and slider
// percentages to seek offsets.
package timefmt

import (
	"fmt"
	"math"
	"time"
)

// FormatSeconds renders seconds as "M:SS". Minutes are not padded and keep
// growing past 59 ("60:00" for one hour). Negative and NaN inputs render as 0:00.
func FormatSeconds(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	total := int64(math.Floor(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Format renders a duration as "M:SS".
func Format(d time.Duration) string {
	return FormatSeconds(d.Seconds())
}

// ClampPercent limits p to [0, 100].
func ClampPercent(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	return min(p, 100)
}

// SeekOffset returns the position percent/100 of the way through duration.
// Percent is clamped first so the offset never leaves the track.
func SeekOffset(percent float64, duration time.Duration) time.Duration {
	if duration <= 0 {
		return 0
	}
	return time.Duration(ClampPercent(percent) / 100 * float64(duration))
}

// Percent returns how far pos is through dur, in [0, 100].
// Returns 0 when the duration is not known.
func Percent(pos, dur time.Duration) float64 {
	if dur <= 0 {
		return 0
	}
	return ClampPercent(float64(pos) / float64(dur) * 100)
}
