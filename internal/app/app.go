// Package app wires the playback controller, the device selector and the UI
// components into the bubbletea root model.
package app

import (
	"context"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/lofi/internal/device"
	"github.com/llehouerou/lofi/internal/export"
	"github.com/llehouerou/lofi/internal/keymap"
	"github.com/llehouerou/lofi/internal/mpris"
	"github.com/llehouerou/lofi/internal/notify"
	"github.com/llehouerou/lofi/internal/playback"
	"github.com/llehouerou/lofi/internal/player"
	"github.com/llehouerou/lofi/internal/source"
	"github.com/llehouerou/lofi/internal/ui/alert"
	"github.com/llehouerou/lofi/internal/ui/devicepopup"
)

// Bars exposes the visualizer heights to the view.
type Bars interface {
	Heights() []int
}

// Desktop receives the playback state after every update.
type Desktop interface {
	Publish(mpris.Snapshot)
}

// Deps are the collaborators of the root model. Fetcher is only needed for
// remote tracks; Notifier, Desktop and Logger are optional.
type Deps struct {
	Player     player.Interface
	Controller *playback.Controller
	Store      device.Store
	Bars       Bars
	Downloader *export.Downloader
	Fetcher    playback.Fetcher
	Layouts    device.LayoutOptions
	Notifier   notify.Notifier
	Desktop    Desktop
	Logger     *zap.Logger
}

// Options describe what to do at startup.
type Options struct {
	// Track is loaded once the program starts. Ignored when Remote is set.
	Track source.Track
	// Remote is a URL returning a base64 payload. Track provides its metadata.
	Remote string
	// ChooseDevice forgets the saved layout and shows the prompt.
	ChooseDevice bool
}

// Model is the root application model.
type Model struct {
	Controller *playback.Controller
	Selector   *device.Selector

	player     player.Interface
	bars       Bars
	downloader *export.Downloader
	fetcher    playback.Fetcher
	notifier   notify.Notifier
	desktop    Desktop
	logger     *zap.Logger
	ctx        context.Context
	opts       Options

	keys     *keymap.Resolver
	helpKeys keymap.HelpKeys
	Help     help.Model
	ShowHelp bool

	Prompt devicepopup.Model
	Alert  alert.Model

	// Last "now playing" notification, replaced by the next one.
	nowPlayingID    uint32
	nowPlayingTrack source.Track
	notified        bool

	Width  int
	Height int
}

// New creates the root model. The selector binds activated layouts to the
// controller.
func New(deps Deps, opts Options) Model {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ctrl := deps.Controller
	notifier := deps.Notifier
	if notifier == nil {
		notifier = notify.Disabled()
	}
	selector := device.NewSelector(deps.Store, deps.Layouts, ctrl.Bind, logger)

	return Model{
		Controller: ctrl,
		Selector:   selector,
		player:     deps.Player,
		bars:       deps.Bars,
		downloader: deps.Downloader,
		fetcher:    deps.Fetcher,
		notifier:   notifier,
		desktop:    deps.Desktop,
		logger:     logger.Named("app"),
		ctx:        context.Background(),
		opts:       opts,
		keys:       keymap.NewResolver(keymap.All),
		helpKeys:   keymap.NewHelpKeys(keymap.All),
		Help:       help.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.watchPlayerEvents(),
		func() tea.Msg { return startMsg{} },
	)
}

// Link forwards messages produced outside the event loop (visualizer
// frames, desktop commands) to the running program. Messages sent before
// Attach are dropped.
type Link struct {
	program atomic.Pointer[tea.Program]
}

// Attach sets the program receiving messages.
func (l *Link) Attach(p *tea.Program) {
	l.program.Store(p)
}

// Frame requests a redraw. It is called from the visualizer goroutine.
func (l *Link) Frame() {
	l.send(FrameMsg{})
}

// Command forwards a desktop control request.
func (l *Link) Command(c mpris.Command) {
	l.send(c)
}

func (l *Link) send(msg tea.Msg) {
	if p := l.program.Load(); p != nil {
		p.Send(msg)
	}
}
