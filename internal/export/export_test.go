package export

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/lofi/internal/source"
)

// fakeFrames looks enough like MPEG audio for tag tools to accept the file.
var fakeFrames = append([]byte{0xFF, 0xFB, 0x90, 0x00}, make([]byte, 256)...)

func dataURL(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// taggedMP3 returns fakeFrames behind an ID3v2 tag titled title.
func taggedMP3(t *testing.T, title string) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tagged.mp3")
	require.NoError(t, os.WriteFile(path, fakeFrames, 0o600))

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	require.NoError(t, err)
	tag.SetVersion(4)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle(title)
	require.NoError(t, tag.Save())
	require.NoError(t, tag.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func TestDownload_NothingLoaded(t *testing.T) {
	dir := t.TempDir()
	d := NewDownloader(dir, nil)

	_, err := d.Download("", Meta{Title: "A"})

	require.ErrorIs(t, err, ErrNothingLoaded)
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries, "no file should be produced")
}

func TestDownload_InvalidPayload(t *testing.T) {
	dir := t.TempDir()
	d := NewDownloader(dir, nil)

	_, err := d.Download("data:text/plain;base64,AAAA", Meta{})

	require.ErrorIs(t, err, source.ErrInvalidFormat)
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestDownload_WritesPayload(t *testing.T) {
	dir := t.TempDir()
	d := NewDownloader(dir, nil)
	data := []byte("RIFF....WAVEfmt fake wav body")

	res, err := d.Download(dataURL("audio/wav", data), Meta{Title: "Night Drive", Artist: "Someone"})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Night Drive.wav"), res.Path)
	assert.Equal(t, int64(len(data)), res.Size)
	got, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestDownload_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	d := NewDownloader(dir, nil)

	_, err := d.Download(dataURL("audio/wav", []byte("x")), Meta{Title: "t"})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, strings.HasSuffix(entries[0].Name(), ".part"))
}

func TestDownload_DoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	d := NewDownloader(dir, nil)
	ref := dataURL("audio/flac", []byte("fLaC fake"))

	first, err := d.Download(ref, Meta{Title: "Same"})
	require.NoError(t, err)
	second, err := d.Download(ref, Meta{Title: "Same"})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Same.flac"), first.Path)
	assert.Equal(t, filepath.Join(dir, "Same (1).flac"), second.Path)
}

func TestDownload_KeepsExistingFileContents(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "Same.wav")
	require.NoError(t, os.WriteFile(existing, []byte("keep me"), 0o600))
	d := NewDownloader(dir, nil)

	res, err := d.Download(dataURL("audio/wav", []byte("new")), Meta{Title: "Same"})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Same (1).wav"), res.Path)
	kept, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(kept))
}

func TestDownload_ConcurrentExportsGetDistinctNames(t *testing.T) {
	dir := t.TempDir()
	d := NewDownloader(dir, nil)
	ref := dataURL("audio/wav", []byte("same bytes"))

	const n = 8
	paths := make([]string, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := d.Download(ref, Meta{Title: "Race"})
			assert.NoError(t, err)
			paths[i] = res.Path
		}()
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, p := range paths {
		assert.False(t, seen[p], "path %q written twice", p)
		seen[p] = true
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, n)
}

func TestClaimPath_SkipsTakenNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.mp3"), nil, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a (1).mp3"), nil, 0o600))

	got, err := claimPath(dir, "a", ".mp3")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a (2).mp3"), got)
	assert.FileExists(t, got)

	_, err = claimPath(filepath.Join(dir, "missing"), "a", ".mp3")
	assert.Error(t, err)
}

func TestDownload_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	d := NewDownloader(dir, nil)

	res, err := d.Download(dataURL("audio/ogg", []byte("OggS")), Meta{})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "audio.ogg"), res.Path)
}

func TestDownload_StampsMP3(t *testing.T) {
	dir := t.TempDir()
	d := NewDownloader(dir, nil)

	res, err := d.Download(dataURL("audio/mp3", fakeFrames), Meta{Title: "Rain", Artist: "Lofi Girl"})
	require.NoError(t, err)

	tag, err := id3v2.Open(res.Path, id3v2.Options{Parse: true})
	require.NoError(t, err)
	defer tag.Close()
	assert.Equal(t, "Rain", tag.Title())
	assert.Equal(t, "Lofi Girl", tag.Artist())
}

func TestDownload_EmbeddedTitleFallback(t *testing.T) {
	dir := t.TempDir()
	d := NewDownloader(dir, nil)

	res, err := d.Download(dataURL("audio/mpeg", taggedMP3(t, "From Tags")), Meta{})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "From Tags.mp3"), res.Path)
}

func TestDownload_UnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))
	d := NewDownloader(filepath.Join(file, "sub"), nil)

	_, err := d.Download(dataURL("audio/wav", []byte("x")), Meta{})

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNothingLoaded))
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"plain", "Song", "Song"},
		{"illegal characters", `a/b\c:d*e?f"g<h>i|j`, "a-b-c-d-e-f-g-h-i-j"},
		{"whitespace only", "   ", "audio"},
		{"empty", "", "audio"},
		{"dots only", "..", "audio"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fileName(tt.title, nil))
		})
	}
}

func TestSanitizeFilename_TruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", 150) // 300 bytes

	got := sanitizeFilename(long)

	assert.LessOrEqual(t, len(got), 200)
	assert.True(t, strings.HasPrefix(long, got))
	assert.Equal(t, 100, len([]rune(got)))
}
