package devicepopup

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/lofi/internal/device"
	"github.com/llehouerou/lofi/internal/ui/testutil"
)

func TestNew_PreselectsByWidth(t *testing.T) {
	assert.Equal(t, device.Desktop, New(120).Current())
	assert.Equal(t, device.Mobile, New(50).Current())
	assert.Equal(t, device.Desktop, New(0).Current(), "unknown width")
}

func TestModel_Navigate(t *testing.T) {
	h := testutil.NewHarness(New(120))

	assert.Nil(t, h.SendSpecialKey(tea.KeyRight))
	assert.Equal(t, device.Mobile, h.Model().Current())

	h.SendSpecialKey(tea.KeyRight)
	assert.Equal(t, device.Mobile, h.Model().Current(), "stays on the last choice")

	h.SendSpecialKey(tea.KeyLeft)
	assert.Equal(t, device.Desktop, h.Model().Current())

	assert.Empty(t, h.Commands())
}

func TestModel_EnterConfirms(t *testing.T) {
	h := testutil.NewHarness(New(50))

	cmd := h.SendSpecialKey(tea.KeyEnter)

	require.NotNil(t, cmd)
	assert.Equal(t, SelectedMsg{Type: device.Mobile}, testutil.ExecuteCmd(cmd))
}

func TestModel_ShortcutKeys(t *testing.T) {
	tests := []struct {
		key  string
		want device.Type
	}{
		{"1", device.Desktop},
		{"d", device.Desktop},
		{"2", device.Mobile},
		{"m", device.Mobile},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			h := testutil.NewHarness(New(120))
			if tt.want == device.Desktop {
				h = testutil.NewHarness(New(50))
			}

			cmd := h.SendKey(tt.key)

			require.NotNil(t, cmd)
			assert.Equal(t, SelectedMsg{Type: tt.want}, testutil.ExecuteCmd(cmd))
			assert.Equal(t, tt.want, h.Model().Current())
		})
	}
}

func TestModel_OtherKeysIgnored(t *testing.T) {
	h := testutil.NewHarness(New(120))

	assert.Nil(t, h.SendKey("q"))
	assert.Nil(t, h.SendMsg(tea.WindowSizeMsg{Width: 10, Height: 10}))
	assert.Equal(t, device.Desktop, h.Model().Current())
}

func TestModel_View(t *testing.T) {
	h := testutil.NewHarness(New(120))

	assert.True(t, h.ViewContains("Choose your device"))
	assert.True(t, h.ViewContains("Desktop"))
	assert.True(t, h.ViewContains("Mobile"))
	assert.True(t, h.ViewContains("enter select"))
}
