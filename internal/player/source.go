package player

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

var (
	// ErrNoSource is returned when playing or loading without audio.
	ErrNoSource = errors.New("no audio source loaded")
	// ErrNotReady is returned when the source was replaced while Play waited
	// for it to decode.
	ErrNotReady = errors.New("audio source not ready")
	// ErrUnsupportedFormat is reported for containers the player cannot decode.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// Source is what the handle plays: either embedded bytes or a location.
type Source struct {
	Data      []byte
	MediaType string // e.g. "audio/mpeg", used to pick the decoder for Data
	URL       string // http(s) URL or local file path
}

// Empty reports whether the source references no audio.
func (s Source) Empty() bool {
	return len(s.Data) == 0 && s.URL == ""
}

const (
	codecMP3    = "mp3"
	codecWAV    = "wav"
	codecFLAC   = "flac"
	codecVorbis = "vorbis"
)

// codecFor picks a decoder from the media type, falling back to the
// extension of the location.
func codecFor(mediaType, location string) (string, error) {
	switch strings.ToLower(mediaType) {
	case "audio/mp3", "audio/mpeg", "audio/mpeg3":
		return codecMP3, nil
	case "audio/wav", "audio/wave", "audio/x-wav":
		return codecWAV, nil
	case "audio/flac", "audio/x-flac":
		return codecFLAC, nil
	case "audio/ogg", "audio/vorbis":
		return codecVorbis, nil
	}

	loc := location
	if i := strings.IndexAny(loc, "?#"); i >= 0 {
		loc = loc[:i]
	}
	switch strings.ToLower(path.Ext(loc)) {
	case ".mp3":
		return codecMP3, nil
	case ".wav":
		return codecWAV, nil
	case ".flac":
		return codecFLAC, nil
	case ".ogg", ".oga":
		return codecVorbis, nil
	}

	if mediaType != "" {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mediaType)
	}
	if location == "" {
		return "", ErrUnsupportedFormat
	}
	// Unknown extension: most remote tracks are mp3.
	return codecMP3, nil
}
