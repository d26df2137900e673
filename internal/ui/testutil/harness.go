package testutil

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Component is a value-receiver bubbletea component returning its own type
// from Update.
type Component[M any] interface {
	Update(msg tea.Msg) (M, tea.Cmd)
	View() string
}

// Harness wraps a component for testing, providing helpers to simulate
// user interactions and inspect state.
type Harness[M Component[M]] struct {
	model M
	cmds  []tea.Cmd
}

// NewHarness creates a test harness around m.
func NewHarness[M Component[M]](m M) *Harness[M] {
	return &Harness[M]{model: m}
}

// Model returns the current component value.
func (h *Harness[M]) Model() M {
	return h.model
}

// View returns the component's rendered content without styling.
func (h *Harness[M]) View() string {
	return StripANSI(h.model.View())
}

// SendMsg sends any message to the component and returns the resulting command.
func (h *Harness[M]) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.model, cmd = h.model.Update(msg)
	if cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return cmd
}

// SendKey simulates a rune key press.
func (h *Harness[M]) SendKey(key string) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

// SendSpecialKey sends a special key (enter, escape, arrows, etc.).
func (h *Harness[M]) SendSpecialKey(keyType tea.KeyType) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: keyType})
}

// Commands returns all commands collected since creation or last ClearCommands.
func (h *Harness[M]) Commands() []tea.Cmd {
	return h.cmds
}

// ClearCommands clears the collected commands.
func (h *Harness[M]) ClearCommands() {
	h.cmds = nil
}

// ExecuteCmd runs a command and returns the resulting message.
func ExecuteCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

// ViewContains checks if the component's view contains the given substring.
func (h *Harness[M]) ViewContains(substr string) bool {
	return strings.Contains(h.View(), substr)
}
