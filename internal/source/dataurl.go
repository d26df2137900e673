package source

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidFormat is returned for references that are not audio data URIs.
var ErrInvalidFormat = errors.New("invalid data URL format")

const audioPrefix = "data:audio/"

// ValidateDataURL checks that ref is an embedded audio reference.
func ValidateDataURL(ref string) error {
	if !strings.HasPrefix(ref, audioPrefix) {
		return ErrInvalidFormat
	}
	if !strings.Contains(ref, ",") {
		return fmt.Errorf("%w: missing payload separator", ErrInvalidFormat)
	}
	return nil
}

// WrapBase64 turns a raw base64 payload into a data URI tagged with format.
// Anything up to and including the first comma is dropped first, so an input
// that already is a data URI is re-tagged rather than double-prefixed.
func WrapBase64(payload, format string) string {
	if _, after, found := strings.Cut(payload, ","); found {
		payload = after
	}
	if format == "" {
		format = DefaultFormat
	}
	return audioPrefix + format + ";base64," + payload
}

// MediaType returns the media type of a data URI, e.g. "audio/mp3".
func MediaType(ref string) string {
	head, _, found := strings.Cut(ref, ",")
	if !found {
		return ""
	}
	head = strings.TrimPrefix(head, "data:")
	mediaType, _, _ := strings.Cut(head, ";")
	return strings.ToLower(mediaType)
}

// ParseDataURL validates ref and decodes its payload.
func ParseDataURL(ref string) (mediaType string, data []byte, err error) {
	if err := ValidateDataURL(ref); err != nil {
		return "", nil, err
	}
	head, payload, _ := strings.Cut(ref, ",")
	mediaType = MediaType(ref)

	if !strings.HasSuffix(head, ";base64") {
		text, err := url.PathUnescape(payload)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
		}
		return mediaType, []byte(text), nil
	}

	data, err = DecodeBase64(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	return mediaType, data, nil
}

// DecodeBase64 decodes a standard base64 payload, tolerating embedded
// whitespace and missing padding.
func DecodeBase64(payload string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, payload)

	data, err := base64.StdEncoding.DecodeString(clean)
	if err == nil {
		return data, nil
	}
	if raw, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(clean, "=")); rawErr == nil {
		return raw, nil
	}
	return nil, err
}

// Extension returns the file extension for an audio media type.
func Extension(mediaType string) string {
	switch strings.ToLower(mediaType) {
	case "audio/mp3", "audio/mpeg", "audio/mpeg3":
		return ".mp3"
	case "audio/wav", "audio/wave", "audio/x-wav":
		return ".wav"
	case "audio/flac", "audio/x-flac":
		return ".flac"
	case "audio/ogg", "audio/vorbis":
		return ".ogg"
	default:
		return ".mp3"
	}
}
