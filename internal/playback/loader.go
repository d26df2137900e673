// internal/playback/loader.go
package playback

import (
	"cmp"
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/llehouerou/lofi/internal/player"
	"github.com/llehouerou/lofi/internal/source"
)

// LoadTrack shows t's metadata, then assigns its audio. The metadata is shown
// even when the audio is missing or invalid. A track without audio leaves the
// playback state as it was. A reference without the "data:audio/" marker is
// logged and returned; the previous source stays assigned. A marked reference
// whose payload cannot be decoded is a load failure.
func (c *Controller) LoadTrack(t source.Track) error {
	c.track = t
	c.display.Title = cmp.Or(t.Title, defaultTitle)
	c.display.Artist = cmp.Or(t.Artist, defaultArtist)
	c.display.Cover = t.Cover
	c.display.Error = false

	resolved, err := source.Resolve(t)
	if err != nil {
		c.logger.Warn("invalid audio reference", zap.Error(err))
		return err
	}
	switch {
	case resolved.DataURL != "":
		return c.assignDataURL(resolved.DataURL)
	case resolved.URL != "":
		return c.assign(player.Source{URL: resolved.URL}, "")
	default:
		c.logger.Debug("track has no audio", zap.String("title", t.Title))
		return nil
	}
}

// LoadDataURL assigns an embedded "data:audio/..." reference. Display fields
// are left alone.
func (c *Controller) LoadDataURL(ref string) error {
	return c.assignDataURL(ref)
}

// LoadBase64 wraps a raw payload of the given format (DefaultFormat when
// empty) and assigns it.
func (c *Controller) LoadBase64(payload, format string) error {
	return c.LoadDataURL(source.WrapBase64(payload, cmp.Or(format, source.DefaultFormat)))
}

func (c *Controller) assignDataURL(ref string) error {
	if err := source.ValidateDataURL(ref); err != nil {
		c.logger.Warn("invalid audio reference", zap.Error(err))
		return err
	}
	mediaType, data, err := source.ParseDataURL(ref)
	if err != nil {
		c.failUndecodable(err)
		return err
	}
	return c.assign(player.Source{Data: data, MediaType: mediaType}, ref)
}

// failUndecodable drops the current source, as assigning a broken payload
// would, and reports the load failure.
func (c *Controller) failUndecodable(err error) {
	c.player.Unload()
	c.gen++
	c.retained = ""
	c.state = State{IsLooping: c.state.IsLooping}
	c.status = Idle
	c.display.Elapsed = zeroTime
	c.display.Total = zeroTime
	c.display.Progress = 0
	c.Dispatch(LoadFailed{Err: err})
}

// assign replaces the current source: position and duration are reset and
// the retained payload is replaced in one step.
func (c *Controller) assign(src player.Source, retained string) error {
	if err := c.player.Load(src); err != nil {
		c.logger.Error("assign source", zap.Error(err))
		return err
	}
	c.gen++
	c.retained = retained
	c.player.SetLoop(c.state.IsLooping)
	c.state = State{IsLooping: c.state.IsLooping}
	c.status = Paused
	c.display.Elapsed = zeroTime
	c.display.Total = zeroTime
	c.display.Progress = 0
	c.display.Playing = false
	c.vis.Stop()
	c.logger.Info("source assigned",
		zap.String("media_type", src.MediaType),
		zap.String("url", src.URL),
		zap.Int("bytes", len(src.Data)),
	)
	return nil
}

// Fetcher retrieves a remote base64 payload.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// RemoteResult is the outcome of FetchRemote.
type RemoteResult struct {
	URL  string
	Meta source.Track
	Body string
	Err  error
}

// FetchRemote downloads a remote payload. It does not touch the controller and
// is meant to run off the event loop; hand the result to CompleteRemoteLoad.
func FetchRemote(ctx context.Context, f Fetcher, url string, meta source.Track) RemoteResult {
	body, err := f.Fetch(ctx, url)
	return RemoteResult{URL: url, Meta: meta, Body: body, Err: err}
}

// CompleteRemoteLoad assigns a fetched payload as mp3 and shows meta. On a
// fetch failure the title and artist are replaced by an error and retry hint.
func (c *Controller) CompleteRemoteLoad(r RemoteResult) error {
	if r.Err != nil {
		c.logger.Error("fetch remote track", zap.String("url", r.URL), zap.Error(r.Err))
		c.display.Title = fetchErrorTitle
		c.display.Artist = fetchErrorArtist
		c.display.Error = true
		return r.Err
	}

	c.track = r.Meta
	c.display.Title = cmp.Or(r.Meta.Title, defaultRemoteTitle)
	c.display.Artist = cmp.Or(r.Meta.Artist, defaultArtist)
	c.display.Cover = r.Meta.Cover
	c.display.Error = false

	// An undecodable body reports LoadFailed on its own.
	return c.LoadBase64(strings.TrimSpace(r.Body), source.DefaultFormat)
}
