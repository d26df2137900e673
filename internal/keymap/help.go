package keymap

import "github.com/charmbracelet/bubbles/key"

// HelpKeys exposes the bindings to bubbles/help.
type HelpKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

// shortActions are shown in the one-line help.
var shortActions = []Action{
	ActionPlayPause,
	ActionToggleLoop,
	ActionDownload,
	ActionHelp,
	ActionQuit,
}

// NewHelpKeys builds help key groups, one column per context.
func NewHelpKeys(bindings []Binding) HelpKeys {
	var h HelpKeys
	byAction := make(map[Action]key.Binding, len(bindings))
	var columns []string
	grouped := make(map[string][]key.Binding)

	for _, b := range bindings {
		kb := key.NewBinding(
			key.WithKeys(b.Keys...),
			key.WithHelp(displayKey(b.Keys), b.Description),
		)
		byAction[b.Action] = kb
		if _, seen := grouped[b.Context]; !seen {
			columns = append(columns, b.Context)
		}
		grouped[b.Context] = append(grouped[b.Context], kb)
	}

	for _, a := range shortActions {
		if kb, ok := byAction[a]; ok {
			h.short = append(h.short, kb)
		}
	}
	for _, c := range columns {
		h.full = append(h.full, grouped[c])
	}
	return h
}

// ShortHelp implements help.KeyMap.
func (h HelpKeys) ShortHelp() []key.Binding { return h.short }

// FullHelp implements help.KeyMap.
func (h HelpKeys) FullHelp() [][]key.Binding { return h.full }
