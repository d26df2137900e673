package visualizer

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/lofi/internal/ui/testutil"
)

const (
	fromColor = lipgloss.Color("#a78bfa")
	toColor   = lipgloss.Color("#f1a208")
)

func TestRender_Empty(t *testing.T) {
	assert.Empty(t, Render(nil, 3, fromColor, toColor))
	assert.Empty(t, Render([]int{4}, 0, fromColor, toColor))
}

func TestRender_Shape(t *testing.T) {
	out := testutil.StripANSI(Render([]int{4, 19, 10}, 2, fromColor, toColor))
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 2)
	for _, l := range lines {
		// three bars separated by single spaces
		assert.Equal(t, 5, len([]rune(l)))
	}
}

func TestRender_FullBarReachesTop(t *testing.T) {
	out := testutil.StripANSI(Render([]int{MaxHeight}, 2, fromColor, toColor))
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 2)
	assert.Equal(t, "█", lines[0])
	assert.Equal(t, "█", lines[1])
}

func TestRender_ShortBarOnlyBottom(t *testing.T) {
	out := testutil.StripANSI(Render([]int{MinHeight}, 3, fromColor, toColor))
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, " ", lines[0])
	assert.Equal(t, " ", lines[1])
	assert.NotEqual(t, " ", lines[2])
}

func TestRowColors_Endpoints(t *testing.T) {
	c := rowColors(3, fromColor, toColor)

	require.Len(t, c, 3)
	assert.Equal(t, toColor, c[0])
	assert.Equal(t, fromColor, c[2])
}

func TestRowColors_NonHexFallsBack(t *testing.T) {
	c := rowColors(2, lipgloss.Color("39"), toColor)
	assert.Equal(t, []lipgloss.Color{"39", "39"}, c)
}
