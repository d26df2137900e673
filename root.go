package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/lofi/internal/app"
	"github.com/llehouerou/lofi/internal/config"
	"github.com/llehouerou/lofi/internal/device"
	"github.com/llehouerou/lofi/internal/errmsg"
	"github.com/llehouerou/lofi/internal/export"
	"github.com/llehouerou/lofi/internal/logger"
	"github.com/llehouerou/lofi/internal/mpris"
	"github.com/llehouerou/lofi/internal/notify"
	"github.com/llehouerou/lofi/internal/playback"
	"github.com/llehouerou/lofi/internal/player"
	"github.com/llehouerou/lofi/internal/source"
	"github.com/llehouerou/lofi/internal/state"
	"github.com/llehouerou/lofi/internal/stderr"
	"github.com/llehouerou/lofi/internal/ui/render"
	"github.com/llehouerou/lofi/internal/visualizer"
)

var errConflictingSources = errors.New("--remote cannot be combined with --src, --data-url-file or --base64-file")

// flags holds the command line options.
type flags struct {
	configPath   string
	src          string
	dataURLFile  string
	base64File   string
	remote       string
	title        string
	artist       string
	cover        string
	format       string
	chooseDevice bool
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "lofi",
		Short: "A single-track terminal music player",
		Long: `lofi plays one track with play/pause, loop, seek and volume controls,
an equalizer animation and a download of embedded audio.

The audio comes from a plain location (--src), an embedded data URI
(--data-url-file), a raw base64 payload (--base64-file) or a URL returning a
base64 payload (--remote).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(f)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.configPath, "config", "", "config file (default ~/.config/lofi/config.toml)")
	fs.StringVar(&f.src, "src", "", "audio file path or http(s) URL")
	fs.StringVar(&f.dataURLFile, "data-url-file", "", "file containing a data:audio/... URI")
	fs.StringVar(&f.base64File, "base64-file", "", "file containing a raw base64 payload")
	fs.StringVar(&f.remote, "remote", "", "URL returning a base64 mp3 payload")
	fs.StringVar(&f.title, "title", "", "track title")
	fs.StringVar(&f.artist, "artist", "", "track artist")
	fs.StringVar(&f.cover, "cover", "", "cover image location")
	fs.StringVar(&f.format, "format", source.DefaultFormat, "container of the base64 payload")
	fs.BoolVar(&f.chooseDevice, "choose-device", false, "forget the saved layout and ask again")

	return cmd
}

// options converts flags into startup options, reading payload files.
func (f flags) options() (app.Options, error) {
	if f.remote != "" && (f.src != "" || f.dataURLFile != "" || f.base64File != "") {
		return app.Options{}, errConflictingSources
	}

	t := source.Track{
		Title:  render.Sanitize(f.title),
		Artist: render.Sanitize(f.artist),
		Cover:  f.cover,
		Src:    f.src,
		Format: f.format,
	}
	var err error
	if t.DataURL, err = readPayload(f.dataURLFile); err != nil {
		return app.Options{}, err
	}
	if t.Base64, err = readPayload(f.base64File); err != nil {
		return app.Options{}, err
	}

	return app.Options{Track: t, Remote: f.remote, ChooseDevice: f.chooseDevice}, nil
}

// readPayload returns the trimmed content of path, or "" when path is empty.
func readPayload(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errmsg.OpReadPayload, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func run(f flags) error {
	opts, err := f.options()
	if err != nil {
		return err
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, closeLog, err := logger.New(logger.Config{
		Level:      cfg.Log.Level,
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	// Keep audio backend noise off the terminal.
	if capture, err := stderr.Start(log); err != nil {
		log.Warn("stderr capture unavailable", zap.Error(err))
	} else {
		defer capture.Stop()
	}

	store, err := state.Open()
	if err != nil {
		log.Error("open state", zap.Error(err))
		return errors.New(errmsg.Format(errmsg.OpOpenStore, err))
	}
	defer store.Close()

	link := &app.Link{}
	vis := visualizer.New(cfg.Visualizer.BarsDesktop,
		visualizer.WithInterval(cfg.VisualizerInterval()),
		visualizer.WithOnFrame(link.Frame),
	)
	p := player.New(player.WithLogger(log))
	ctrl := playback.New(p,
		playback.WithLogger(log),
		playback.WithVisualizer(vis),
		playback.WithDefaultVolume(float64(cfg.Volume)),
	)
	defer ctrl.Close()

	deps := app.Deps{
		Player:     p,
		Controller: ctrl,
		Store:      store,
		Bars:       vis,
		Downloader: export.NewDownloader(cfg.DownloadDir, log),
		Fetcher:    source.NewFetcher(cfg.FetchTimeout()),
		Layouts: device.LayoutOptions{
			DesktopBars: cfg.Visualizer.BarsDesktop,
			MobileBars:  cfg.Visualizer.BarsMobile,
		},
		Notifier: notify.Disabled(),
		Logger:   log,
	}
	if cfg.Desktop.Notifications {
		if deps.Notifier, err = notify.New(); err != nil {
			log.Warn("desktop notifications unavailable", zap.Error(err))
			deps.Notifier = notify.Disabled()
		}
	}
	if cfg.Desktop.MPRIS {
		adapter, err := mpris.New(link.Command, log)
		if err != nil {
			log.Warn("mpris unavailable", zap.Error(err))
		} else {
			defer adapter.Close()
			deps.Desktop = adapter
		}
	}
	model := app.New(deps, opts)

	log.Info("starting", zap.String("remote", opts.Remote), zap.Bool("has_audio", opts.Track.HasAudio()))

	prog := tea.NewProgram(model, tea.WithAltScreen())
	link.Attach(prog)
	if _, err := prog.Run(); err != nil {
		log.Error("program", zap.Error(err))
		return err
	}
	return nil
}
