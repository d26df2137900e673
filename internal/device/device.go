// Package device chooses between the desktop and mobile presentations and
// remembers the choice.
package device

import "strings"

// Type is one of the two mutually exclusive presentations.
type Type string

const (
	Desktop Type = "desktop"
	Mobile  Type = "mobile"
)

// PreferenceKey is the store key holding the chosen Type.
const PreferenceKey = "preferredDevice"

// Parse converts a stored value to a Type. Anything that is not "desktop"
// selects the mobile presentation; ok reports whether the value was known.
func Parse(s string) (t Type, ok bool) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case Desktop:
		return Desktop, true
	case Mobile:
		return Mobile, true
	default:
		return Mobile, false
	}
}

// String implements fmt.Stringer.
func (t Type) String() string { return string(t) }

// Layout is the per-presentation configuration injected into the player.
type Layout struct {
	Type           Type
	Compact        bool // single column card instead of the wide panel
	VisualizerBars int
	MinWidth       int // narrowest terminal the layout renders properly in
}

// LayoutOptions tunes the layouts built by LayoutFor.
type LayoutOptions struct {
	DesktopBars int
	MobileBars  int
}

// DefaultLayoutOptions returns 16 desktop bars and 8 mobile bars.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{DesktopBars: 16, MobileBars: 8}
}

// LayoutFor builds the layout of t.
func LayoutFor(t Type, opts LayoutOptions) Layout {
	if t == Desktop {
		return Layout{
			Type:           Desktop,
			VisualizerBars: max(opts.DesktopBars, 1),
			MinWidth:       60,
		}
	}
	return Layout{
		Type:           Mobile,
		Compact:        true,
		VisualizerBars: max(opts.MobileBars, 1),
		MinWidth:       30,
	}
}

// Suggest proposes a Type for a terminal width: narrow terminals get the
// mobile card.
func Suggest(width int) Type {
	if width > 0 && width < 80 {
		return Mobile
	}
	return Desktop
}
