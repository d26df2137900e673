package timefmt

import (
	"math"
	"testing"
	"time"
)

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"zero", 0, "0:00"},
		{"under a minute", 5, "0:05"},
		{"minute and change", 65, "1:05"},
		{"fraction truncated", 59.99, "0:59"},
		{"one hour keeps counting minutes", 3600, "60:00"},
		{"negative", -3, "0:00"},
		{"nan", math.NaN(), "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSeconds(tt.seconds); got != tt.want {
				t.Errorf("FormatSeconds(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	if got := Format(3*time.Minute + 7*time.Second + 400*time.Millisecond); got != "3:07" {
		t.Errorf("Format() = %q, want 3:07", got)
	}
}

func TestSeekOffset(t *testing.T) {
	dur := 200 * time.Second

	tests := []struct {
		name    string
		percent float64
		want    time.Duration
	}{
		{"start", 0, 0},
		{"quarter", 25, 50 * time.Second},
		{"end", 100, dur},
		{"below range clamps to start", -10, 0},
		{"above range clamps to end", 150, dur},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SeekOffset(tt.percent, dur); got != tt.want {
				t.Errorf("SeekOffset(%v) = %v, want %v", tt.percent, got, tt.want)
			}
		})
	}
}

func TestSeekOffset_UnknownDuration(t *testing.T) {
	if got := SeekOffset(50, 0); got != 0 {
		t.Errorf("SeekOffset with unknown duration = %v, want 0", got)
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(30*time.Second, 2*time.Minute); got != 25 {
		t.Errorf("Percent() = %v, want 25", got)
	}
	if got := Percent(30*time.Second, 0); got != 0 {
		t.Errorf("Percent() with unknown duration = %v, want 0", got)
	}
	if got := Percent(3*time.Minute, 2*time.Minute); got != 100 {
		t.Errorf("Percent() past the end = %v, want 100", got)
	}
}
