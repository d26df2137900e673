// Package notify sends freedesktop desktop notifications.
package notify

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const appName = "lofi"

// Urgency is the freedesktop urgency hint.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification is one bubble.
type Notification struct {
	Title      string
	Body       string
	Icon       string // icon name or file:// URI
	Category   string // freedesktop category hint, optional
	Timeout    time.Duration
	ReplacesID uint32 // 0 opens a new bubble
	Urgency    Urgency
}

// Notifier sends notifications. Notify returns the server-side ID, or 0 when
// notifications are unavailable.
type Notifier interface {
	Notify(n Notification) (uint32, error)
}

const bubbleTimeout = 5 * time.Second

// NowPlaying is shown when a track starts. replaces is the previous bubble's
// ID so only one stays on screen. A local cover file becomes the icon.
func NowPlaying(title, artist, cover string, replaces uint32) Notification {
	return Notification{
		Title:      title,
		Body:       artist,
		Icon:       coverIcon(cover),
		Timeout:    bubbleTimeout,
		ReplacesID: replaces,
		Urgency:    UrgencyLow,
	}
}

// DownloadSaved is shown after an export wrote path.
func DownloadSaved(path, size string) Notification {
	return Notification{
		Title:    "Download saved",
		Body:     fmt.Sprintf("%s (%s)\n%s", filepath.Base(path), size, filepath.Dir(path)),
		Icon:     "document-save",
		Category: "transfer.complete",
		Timeout:  bubbleTimeout,
		Urgency:  UrgencyNormal,
	}
}

func coverIcon(cover string) string {
	if cover != "" && filepath.IsAbs(cover) {
		if info, err := os.Stat(cover); err == nil && !info.IsDir() {
			return "file://" + cover
		}
	}
	return "audio-x-generic"
}

type nop struct{}

func (nop) Notify(Notification) (uint32, error) { return 0, nil }

// Disabled returns a notifier that sends nothing.
func Disabled() Notifier { return nop{} }
