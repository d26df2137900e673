package app

import (
	"github.com/llehouerou/lofi/internal/device"
	"github.com/llehouerou/lofi/internal/export"
	"github.com/llehouerou/lofi/internal/player"
)

// startMsg runs the startup sequence from inside the event loop.
type startMsg struct{}

// showPromptMsg is sent PromptDelay after startup when no layout is saved.
type showPromptMsg struct{}

// activateMsg is sent TransitionDelay after a layout was chosen.
type activateMsg struct {
	Type device.Type
}

// PlayerEventMsg wraps an event read from the playback handle.
type PlayerEventMsg player.Event

// playerClosedMsg is sent when the handle's event channel is closed.
type playerClosedMsg struct{}

// FrameMsg asks for a redraw after a visualizer frame.
type FrameMsg struct{}

// downloadDoneMsg carries the outcome of an export.
type downloadDoneMsg struct {
	Result export.Result
	Err    error
}
