// Package source normalizes track descriptors into something the player can
// load: an embedded data URI or a plain location.
package source

import "strings"

// DefaultFormat is used when a track carries a raw payload without a format.
const DefaultFormat = "mp3"

// Track describes what to play and what to show while playing it.
// Exactly one of DataURL, Base64 or Src is expected to be set; when several
// are, DataURL wins over Base64, which wins over Src.
type Track struct {
	Title  string
	Artist string
	Cover  string
	Src    string // plain playable location (http(s) URL or file path)
	// DataURL is a complete "data:audio/...;base64,..." reference.
	DataURL string
	// Base64 is a raw encoded payload, optionally still carrying a data URI prefix.
	Base64 string
	Format string // container of Base64, e.g. "mp3"; defaults to DefaultFormat
}

// HasAudio reports whether the track references any audio at all.
func (t Track) HasAudio() bool {
	return t.DataURL != "" || t.Base64 != "" || t.Src != ""
}

// AudioFormat returns the configured format or DefaultFormat.
func (t Track) AudioFormat() string {
	if f := strings.TrimSpace(t.Format); f != "" {
		return strings.ToLower(f)
	}
	return DefaultFormat
}

// Resolved is the single playable form of a track.
type Resolved struct {
	// DataURL is set when the audio is embedded. It is also what gets
	// retained for export.
	DataURL string
	// URL is set when the audio must be fetched by the player.
	URL string
}

// Empty reports whether nothing playable was resolved.
func (r Resolved) Empty() bool {
	return r.DataURL == "" && r.URL == ""
}

// Resolve picks the playable source of t following the precedence
// DataURL, Base64, Src. A track without audio resolves to an empty value and
// no error. ErrInvalidFormat is returned when the embedded reference is not audio.
func Resolve(t Track) (Resolved, error) {
	switch {
	case t.DataURL != "":
		if err := ValidateDataURL(t.DataURL); err != nil {
			return Resolved{}, err
		}
		return Resolved{DataURL: t.DataURL}, nil
	case t.Base64 != "":
		ref := WrapBase64(t.Base64, t.AudioFormat())
		if err := ValidateDataURL(ref); err != nil {
			return Resolved{}, err
		}
		return Resolved{DataURL: ref}, nil
	case t.Src != "":
		return Resolved{URL: t.Src}, nil
	default:
		return Resolved{}, nil
	}
}
