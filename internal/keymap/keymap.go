// Package keymap defines key bindings for the application.
package keymap

import (
	"strconv"
	"strings"
)

// Binding maps keys to an action and documents it.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string
}

// Binding contexts, also the help columns.
const (
	ContextPlayback = "playback"
	ContextGlobal   = "global"
)

// All contains every key binding, in help order.
var All = []Binding{
	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", ContextPlayback},
	{ActionToggleLoop, []string{"l"}, "Toggle loop", ContextPlayback},
	{ActionSeekBack, []string{"left", "h"}, "Seek back 5%", ContextPlayback},
	{ActionSeekForward, []string{"right"}, "Seek forward 5%", ContextPlayback},
	{ActionSeekPercent, digitKeys(), "Seek to 0%-90%", ContextPlayback},
	{ActionVolumeDown, []string{"-"}, "Volume down", ContextPlayback},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", ContextPlayback},
	{ActionDownload, []string{"d"}, "Download track", ContextPlayback},

	// Global
	{ActionChooseDevice, []string{"D"}, "Choose layout", ContextGlobal},
	{ActionHelp, []string{"?"}, "Show help", ContextGlobal},
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", ContextGlobal},
}

// digitPercent returns the seek percent for a digit key ("3" -> 30).
func digitPercent(key string) (float64, bool) {
	if len(key) != 1 {
		return 0, false
	}
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, false
	}
	return float64(n * 10), true
}

func digitKeys() []string {
	keys := make([]string, 10)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}
	return keys
}

// displayKey renders a key list for help text.
func displayKey(keys []string) string {
	if len(keys) == 10 && keys[0] == "0" && keys[9] == "9" {
		return "0-9"
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		switch k {
		case " ":
			out = append(out, "space")
		case "left":
			out = append(out, "←")
		case "right":
			out = append(out, "→")
		default:
			out = append(out, k)
		}
	}
	return strings.Join(out, "/")
}
