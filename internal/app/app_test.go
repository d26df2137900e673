package app

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/lofi/internal/device"
	"github.com/llehouerou/lofi/internal/export"
	"github.com/llehouerou/lofi/internal/mpris"
	"github.com/llehouerou/lofi/internal/playback"
	"github.com/llehouerou/lofi/internal/player"
	"github.com/llehouerou/lofi/internal/source"
	"github.com/llehouerou/lofi/internal/state"
	"github.com/llehouerou/lofi/internal/ui/devicepopup"
	"github.com/llehouerou/lofi/internal/ui/testutil"
)

var testAudio = base64.StdEncoding.EncodeToString([]byte("RIFF\x00\x00\x00\x00WAVEfake"))

type fakeFetcher struct {
	body string
	err  error
	urls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.urls = append(f.urls, url)
	return f.body, f.err
}

type staticBars []int

func (b staticBars) Heights() []int { return b }

type testEnv struct {
	player  *player.Mock
	store   *state.Mock
	fetcher *fakeFetcher
	dir     string
}

func newTestModel(t *testing.T, opts Options) (Model, *testEnv) {
	t.Helper()
	env := &testEnv{
		player:  player.NewMock(),
		store:   state.NewMock(),
		fetcher: &fakeFetcher{},
		dir:     t.TempDir(),
	}
	m := New(Deps{
		Player:     env.player,
		Controller: playback.New(env.player),
		Store:      env.store,
		Bars:       staticBars{4, 12, 19, 8},
		Downloader: export.NewDownloader(env.dir, nil),
		Fetcher:    env.fetcher,
		Layouts:    device.DefaultLayoutOptions(),
	}, opts)
	return m, env
}

// started returns a model that went through startup with a saved layout.
func started(t *testing.T, saved device.Type, opts Options) (Model, *testEnv) {
	t.Helper()
	m, env := newTestModel(t, opts)
	if saved != "" {
		require.NoError(t, env.store.SetPreference(device.PreferenceKey, string(saved)))
	}
	m, _ = update(t, m, startMsg{})
	return m, env
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	result, ok := next.(Model)
	require.True(t, ok, "Update should return Model")
	return result, cmd
}

func key(k string) tea.KeyMsg {
	switch k {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// run executes cmd and returns the non-nil, non-batch messages it produced.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func TestStart_RestoresSavedLayout(t *testing.T) {
	m, env := newTestModel(t, Options{})
	require.NoError(t, env.store.SetPreference(device.PreferenceKey, "mobile"))

	m, cmd := update(t, m, startMsg{})

	assert.Nil(t, cmd, "no prompt scheduled")
	layout, ok := m.Controller.Layout()
	require.True(t, ok)
	assert.Equal(t, device.Mobile, layout.Type)
	assert.True(t, layout.Compact)
	assert.Equal(t, device.PromptHidden, m.Selector.Prompt())
}

func TestStart_WithoutPreferenceSchedulesPrompt(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m, cmd := update(t, m, startMsg{})

	assert.NotNil(t, cmd)
	_, ok := m.Controller.Layout()
	assert.False(t, ok, "nothing bound before a choice")
}

func TestStart_ChooseDeviceForgetsPreference(t *testing.T) {
	m, env := started(t, device.Desktop, Options{ChooseDevice: true})

	_, found, err := env.store.GetPreference(device.PreferenceKey)
	require.NoError(t, err)
	assert.False(t, found)
	_, ok := m.Controller.Layout()
	assert.False(t, ok)
}

func TestStart_ResetFailureShowsAlert(t *testing.T) {
	m, env := newTestModel(t, Options{ChooseDevice: true})
	env.store.SetDeleteError(errors.New("database is locked"))

	m, _ = update(t, m, startMsg{})

	require.True(t, m.Alert.Visible())
	assert.Equal(t, "Failed to reset layout preference: database is locked", m.Alert.Message())
}

func TestStart_LoadsTrack(t *testing.T) {
	m, env := started(t, device.Desktop, Options{Track: source.Track{
		Title:  "Night Drive",
		Artist: "Lofi Girl",
		Base64: testAudio,
		Format: "wav",
	}})

	require.Len(t, env.player.LoadCalls(), 1)
	assert.Equal(t, "audio/wav", env.player.Source().MediaType)
	assert.Equal(t, playback.Paused, m.Controller.Status())
	assert.Equal(t, "Night Drive", m.Controller.Display().Title)
}

func TestStart_RemoteTrack(t *testing.T) {
	m, env := newTestModel(t, Options{
		Remote: "https://example.com/track.txt",
		Track:  source.Track{Title: "Remote"},
	})
	require.NoError(t, env.store.SetPreference(device.PreferenceKey, "desktop"))
	env.fetcher.body = testAudio + "\n"

	m, cmd := update(t, m, startMsg{})
	msgs := run(cmd)
	require.Len(t, msgs, 1)
	m, _ = update(t, m, msgs[0])

	assert.Equal(t, []string{"https://example.com/track.txt"}, env.fetcher.urls)
	assert.Equal(t, "Remote", m.Controller.Display().Title)
	assert.Equal(t, playback.Paused, m.Controller.Status())
	_, retained := m.Controller.Retained()
	assert.True(t, retained)
}

func TestStart_RemoteFailureShowsError(t *testing.T) {
	m, env := newTestModel(t, Options{Remote: "https://example.com/missing"})
	require.NoError(t, env.store.SetPreference(device.PreferenceKey, "desktop"))
	env.fetcher.err = source.ErrFetchFailed

	m, cmd := update(t, m, startMsg{})
	for _, msg := range run(cmd) {
		m, _ = update(t, m, msg)
	}

	d := m.Controller.Display()
	assert.Equal(t, "Error loading track", d.Title)
	assert.Equal(t, "Try again", d.Artist)
	assert.Equal(t, playback.Idle, m.Controller.Status())
}

func TestPrompt_SelectPersistsAndActivates(t *testing.T) {
	m, env := started(t, "", Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, showPromptMsg{})

	require.Equal(t, device.PromptVisible, m.Selector.Prompt())
	assert.Contains(t, testutil.StripANSI(m.View()), "Choose your device")

	m, cmd := update(t, m, key("2"))
	msgs := run(cmd)
	require.Equal(t, []tea.Msg{devicepopup.SelectedMsg{Type: device.Mobile}}, msgs)

	m, cmd = update(t, m, msgs[0])
	assert.NotNil(t, cmd, "activation is delayed")
	assert.Equal(t, device.PromptHiding, m.Selector.Prompt())
	value, _, _ := env.store.GetPreference(device.PreferenceKey)
	assert.Equal(t, "mobile", value)

	m, _ = update(t, m, activateMsg{Type: device.Mobile})
	layout, ok := m.Controller.Layout()
	require.True(t, ok)
	assert.Equal(t, device.Mobile, layout.Type)
	assert.Equal(t, device.PromptHidden, m.Selector.Prompt())
}

func TestPrompt_SaveFailureStillActivates(t *testing.T) {
	m, env := started(t, "", Options{})
	env.store.SetSetError(errors.New("read-only"))
	m, _ = update(t, m, showPromptMsg{})

	m, cmd := update(t, m, devicepopup.SelectedMsg{Type: device.Desktop})

	assert.NotNil(t, cmd)
	assert.True(t, m.Alert.Visible())
	assert.Contains(t, m.Alert.Message(), "save layout preference")
}

func TestPrompt_CtrlCQuits(t *testing.T) {
	m, _ := started(t, "", Options{})
	m, _ = update(t, m, showPromptMsg{})

	_, cmd := update(t, m, key("ctrl+c"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestKeys_IgnoredBeforeLayout(t *testing.T) {
	m, env := started(t, "", Options{Track: source.Track{Base64: testAudio}})

	m, cmd := update(t, m, key(" "))

	assert.Nil(t, cmd)
	assert.Equal(t, 0, env.player.PlayCalls())
	assert.False(t, m.Controller.Snapshot().IsLooping)
}

func TestKeys_PlayPause(t *testing.T) {
	m, env := started(t, device.Desktop, Options{Track: source.Track{Base64: testAudio}})

	m, cmd := update(t, m, key(" "))
	msgs := run(cmd)
	require.Len(t, msgs, 1)
	require.IsType(t, playback.PlayResolved{}, msgs[0])
	m, _ = update(t, m, msgs[0])

	assert.Equal(t, playback.Playing, m.Controller.Status())
	assert.True(t, m.Controller.Display().Playing)

	m, cmd = update(t, m, key(" "))
	assert.Nil(t, cmd)
	assert.Equal(t, playback.Paused, m.Controller.Status())
	assert.Equal(t, player.Paused, env.player.State())
}

func TestKeys_PlayWithoutAudioDoesNothing(t *testing.T) {
	m, env := started(t, device.Desktop, Options{Track: source.Track{Title: "Only a title"}})

	_, cmd := update(t, m, key(" "))

	assert.Nil(t, cmd)
	assert.Equal(t, 0, env.player.PlayCalls())
}

func TestKeys_SeekAndVolume(t *testing.T) {
	m, env := started(t, device.Desktop, Options{Track: source.Track{Base64: testAudio}})
	m, _ = update(t, m, PlayerEventMsg{Kind: player.DurationKnown, Duration: 200 * time.Second})

	m, _ = update(t, m, key("5"))
	m, _ = update(t, m, key("right"))
	m, _ = update(t, m, key("-"))
	m, _ = update(t, m, key("-"))

	assert.Equal(t, []time.Duration{100 * time.Second, 110 * time.Second}, env.player.SeekCalls())
	assert.Equal(t, "1:50", m.Controller.Display().Elapsed)
	assert.Equal(t, 60, m.Controller.Display().Volume)
	assert.InDelta(t, 0.6, env.player.Volume(), 1e-9)

	m, _ = update(t, m, key("left"))
	require.Len(t, env.player.SeekCalls(), 3)
	assert.InDelta(t, float64(100*time.Second), float64(env.player.SeekCalls()[2]), float64(time.Millisecond))
	assert.Equal(t, "1:40", m.Controller.Display().Elapsed)
}

func TestKeys_ToggleLoop(t *testing.T) {
	m, env := started(t, device.Desktop, Options{Track: source.Track{Base64: testAudio}})

	m, _ = update(t, m, key("l"))

	assert.True(t, m.Controller.Snapshot().IsLooping)
	assert.True(t, env.player.Loop())
}

func TestKeys_HelpToggle(t *testing.T) {
	m, _ := started(t, device.Desktop, Options{})

	m, _ = update(t, m, key("?"))
	assert.True(t, m.ShowHelp)
	assert.True(t, m.Help.ShowAll)

	m, _ = update(t, m, key("?"))
	assert.False(t, m.ShowHelp)
}

func TestKeys_ChooseDeviceShowsPrompt(t *testing.T) {
	m, _ := started(t, device.Desktop, Options{})

	m, _ = update(t, m, key("D"))

	assert.Equal(t, device.PromptVisible, m.Selector.Prompt())
}

func TestKeys_Quit(t *testing.T) {
	m, _ := started(t, device.Desktop, Options{})

	_, cmd := update(t, m, key("q"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestPlayerEvents(t *testing.T) {
	m, _ := started(t, device.Desktop, Options{Track: source.Track{Base64: testAudio}})

	m, cmd := update(t, m, PlayerEventMsg{Kind: player.DurationKnown, Duration: 200 * time.Second})
	assert.NotNil(t, cmd, "watch is re-armed")
	assert.Equal(t, "3:20", m.Controller.Display().Total)

	m, _ = update(t, m, PlayerEventMsg{Kind: player.PositionAdvanced, Position: 50 * time.Second})
	assert.Equal(t, "0:50", m.Controller.Display().Elapsed)
	assert.InDelta(t, 25, m.Controller.Display().Progress, 1e-9)

	m, _ = update(t, m, PlayerEventMsg{Kind: player.LoadFailed, Err: errors.New("bad frame")})
	assert.Equal(t, "Error loading audio", m.Controller.Display().Title)
}

func TestWatchPlayerEvents_ReadsChannel(t *testing.T) {
	m, env := newTestModel(t, Options{})
	env.player.Emit(player.Event{Kind: player.Ended})

	msg := m.watchPlayerEvents()()

	assert.Equal(t, PlayerEventMsg{Kind: player.Ended}, msg)
}

func TestDownload_NothingLoaded(t *testing.T) {
	m, _ := started(t, device.Desktop, Options{Track: source.Track{Src: "https://example.com/a.mp3"}})

	m, cmd := update(t, m, key("d"))

	assert.Nil(t, cmd)
	require.True(t, m.Alert.Visible())
	assert.Equal(t, "No audio loaded", m.Alert.Message())

	m, cmd = update(t, m, key(" "))
	assert.False(t, m.Alert.Visible(), "any key dismisses")
	assert.NotNil(t, cmd)
}

func TestDownload_SavesRetainedPayload(t *testing.T) {
	m, env := started(t, device.Desktop, Options{Track: source.Track{
		Title:  "Night Drive",
		Base64: testAudio,
		Format: "wav",
	}})

	m, cmd := update(t, m, key("d"))
	msgs := run(cmd)
	require.Len(t, msgs, 1)
	m, _ = update(t, m, msgs[0])

	path := filepath.Join(env.dir, "Night Drive.wav")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want, _ := base64.StdEncoding.DecodeString(testAudio)
	assert.Equal(t, want, data)
	require.True(t, m.Alert.Visible())
	assert.Contains(t, m.Alert.Message(), "Saved Night Drive.wav")
}

func TestView(t *testing.T) {
	m, _ := newTestModel(t, Options{Track: source.Track{Title: "Night Drive", Base64: testAudio}})
	assert.Empty(t, m.View(), "no size yet")

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Contains(t, testutil.StripANSI(m.View()), "lofi")

	m.Selector.Activate(device.Desktop)
	m, _ = update(t, m, startMsg{})
	out := testutil.StripANSI(m.View())
	assert.Contains(t, out, "Night Drive")
	assert.Contains(t, out, "Quit")
}

func TestLink_WithoutProgram(t *testing.T) {
	var l Link
	assert.NotPanics(t, l.Frame)
	assert.NotPanics(t, func() { l.Command(mpris.Command{Kind: mpris.CmdPlay}) })
}
