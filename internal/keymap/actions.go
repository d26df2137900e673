package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit         Action = "quit"
	ActionHelp         Action = "help"
	ActionChooseDevice Action = "choose_device"

	// Playback actions
	ActionPlayPause   Action = "play_pause"
	ActionToggleLoop  Action = "toggle_loop"
	ActionSeekBack    Action = "seek_back"
	ActionSeekForward Action = "seek_forward"
	ActionSeekPercent Action = "seek_percent" // 0-9 jump to 0%-90%
	ActionVolumeDown  Action = "volume_down"
	ActionVolumeUp    Action = "volume_up"

	// Export
	ActionDownload Action = "download"
)
