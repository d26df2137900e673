// Package alert shows a one-off message box dismissed by any key.
package alert

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/lofi/internal/errmsg"
	"github.com/llehouerou/lofi/internal/export"
	"github.com/llehouerou/lofi/internal/ui/popup"
	"github.com/llehouerou/lofi/internal/ui/styles"
)

// Kind selects the border colour.
type Kind int

const (
	Info Kind = iota
	Success
	Failure
)

// DismissedMsg is emitted when a visible alert is closed.
type DismissedMsg struct{}

// Model is the alert state. The zero value is hidden.
type Model struct {
	title   string
	message string
	kind    Kind
	visible bool
}

// Show returns m displaying message.
func (m Model) Show(kind Kind, title, message string) Model {
	m.kind = kind
	m.title = title
	m.message = message
	m.visible = true
	return m
}

// NothingLoaded is the alert for a download with no retained payload.
func (m Model) NothingLoaded() Model {
	return m.Show(Info, "Download", "No audio loaded")
}

// Saved reports a written file with its human readable size.
func (m Model) Saved(res export.Result) Model {
	msg := fmt.Sprintf("Saved %s (%s)\n%s",
		filepath.Base(res.Path), humanize.Bytes(uint64(max(res.Size, 0))), filepath.Dir(res.Path))
	return m.Show(Success, "Download", msg)
}

// Failed shows a formatted operation error.
func (m Model) Failed(op errmsg.Op, err error) Model {
	return m.Show(Failure, "Error", errmsg.Format(op, err))
}

// Visible reports whether the alert is shown.
func (m Model) Visible() bool {
	return m.visible
}

// Message returns the current text.
func (m Model) Message() string {
	return m.message
}

// Update closes a visible alert on any key.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	if _, ok := msg.(tea.KeyMsg); !ok {
		return m, nil
	}
	m.visible = false
	return m, func() tea.Msg { return DismissedMsg{} }
}

// View renders the box, or "" when hidden.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	d := popup.New(m.title, m.message, "press any key")
	switch m.kind {
	case Success:
		d.Border = styles.T().Success
	case Failure:
		d.Border = styles.T().Error
	case Info:
	}
	return d.Box(60)
}
