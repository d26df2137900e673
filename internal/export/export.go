// Package export writes the retained audio payload to a file.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dhowden/tag"
	"go.uber.org/zap"

	"github.com/llehouerou/lofi/internal/source"
)

// ErrNothingLoaded is returned when there is no payload to export.
var ErrNothingLoaded = errors.New("no audio loaded")

const fallbackName = "audio"

// Meta is the track information used for the file name and tags.
type Meta struct {
	Title  string
	Artist string
}

// Result describes a written file.
type Result struct {
	Path string
	Size int64
}

// Downloader saves payloads into a directory.
type Downloader struct {
	dir    string
	logger *zap.Logger
}

// NewDownloader creates a downloader writing into dir.
func NewDownloader(dir string, logger *zap.Logger) *Downloader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Downloader{dir: dir, logger: logger.Named("export")}
}

// Dir returns the target directory.
func (d *Downloader) Dir() string {
	return d.dir
}

// Download decodes retained (a data URI) and writes it as
// "<title>.<ext>" in the target directory. An existing file is never
// overwritten; a " (n)" suffix is added instead. The transient file is
// removed on any failure.
func (d *Downloader) Download(retained string, meta Meta) (res Result, err error) {
	if retained == "" {
		return Result{}, ErrNothingLoaded
	}

	mediaType, data, err := source.ParseDataURL(retained)
	if err != nil {
		return Result{}, fmt.Errorf("decode payload: %w", err)
	}
	ext := source.Extension(mediaType)
	name := fileName(meta.Title, data)

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(d.dir, ".lofi-*.part")
	if err != nil {
		return Result{}, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return Result{}, fmt.Errorf("write: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return Result{}, fmt.Errorf("close: %w", err)
	}

	if ext == ".mp3" && (meta.Title != "" || meta.Artist != "") {
		if tagErr := stampID3(tmpPath, meta); tagErr != nil {
			d.logger.Warn("stamp tags", zap.Error(tagErr))
		}
	}

	dst, err := claimPath(d.dir, name, ext)
	if err != nil {
		return Result{}, err
	}
	// dst is an empty file we created; replacing it cannot clobber another.
	if err = os.Rename(tmpPath, dst); err != nil {
		os.Remove(dst)
		return Result{}, fmt.Errorf("move into place: %w", err)
	}

	info, err := os.Stat(dst)
	if err != nil {
		return Result{}, fmt.Errorf("stat: %w", err)
	}

	d.logger.Info("audio exported", zap.String("path", dst), zap.Int64("size", info.Size()))
	return Result{Path: dst, Size: info.Size()}, nil
}

// fileName picks the base name: the sanitized title, else the title embedded
// in the payload's tags, else a generic name.
func fileName(title string, data []byte) string {
	if name := sanitizeFilename(strings.TrimSpace(title)); name != "" {
		return name
	}
	if name := sanitizeFilename(embeddedTitle(data)); name != "" {
		return name
	}
	return fallbackName
}

func embeddedTitle(data []byte) string {
	m, err := tag.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(m.Title())
}

// claimPath creates dir/name+ext, or the first free dir/name (n)+ext, as an
// empty file and returns its path. Creation is exclusive, so a name taken by
// a concurrent writer is skipped rather than shared.
func claimPath(dir, name, ext string) (string, error) {
	candidate := filepath.Join(dir, name+ext)
	for n := 1; ; n++ {
		f, err := os.OpenFile(candidate, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return candidate, f.Close()
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("claim destination: %w", err)
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s (%d)%s", name, n, ext))
	}
}

// sanitizeFilename replaces characters that are illegal in file names on
// common filesystems and bounds the length.
func sanitizeFilename(s string) string {
	// Characters not allowed in FAT32: / \ : * ? " < > |
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"\"", "-",
		"<", "-",
		">", "-",
		"|", "-",
	)
	result := strings.Trim(replacer.Replace(s), ". ")

	// Truncate to 200 bytes without splitting a rune
	if len(result) > 200 {
		cut := 200
		for cut > 0 && !utf8.RuneStart(result[cut]) {
			cut--
		}
		result = result[:cut]
	}

	return result
}
