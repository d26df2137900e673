package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{
		"config", "src", "data-url-file", "base64-file", "remote",
		"title", "artist", "cover", "format", "choose-device",
	} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag %s", name)
	}
	assert.Equal(t, "mp3", cmd.Flags().Lookup("format").DefValue)
}

func TestOptions_ReadsPayloadFiles(t *testing.T) {
	dir := t.TempDir()
	dataURL := filepath.Join(dir, "track.uri")
	b64 := filepath.Join(dir, "track.b64")
	require.NoError(t, os.WriteFile(dataURL, []byte("data:audio/wav;base64,UklGRg==\n"), 0o600))
	require.NoError(t, os.WriteFile(b64, []byte("  SUQz  \n"), 0o600))

	opts, err := flags{
		dataURLFile: dataURL,
		base64File:  b64,
		title:       "Night\x07 Drive",
		artist:      "Lofi Girl",
		format:      "mp3",
	}.options()

	require.NoError(t, err)
	assert.Equal(t, "data:audio/wav;base64,UklGRg==", opts.Track.DataURL)
	assert.Equal(t, "SUQz", opts.Track.Base64)
	assert.Equal(t, "Night Drive", opts.Track.Title, "control characters dropped")
	assert.Equal(t, "Lofi Girl", opts.Track.Artist)
}

func TestOptions_MissingFile(t *testing.T) {
	_, err := flags{base64File: filepath.Join(t.TempDir(), "missing")}.options()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read audio payload")
}

func TestOptions_RemoteConflicts(t *testing.T) {
	_, err := flags{remote: "https://example.com/a", src: "a.mp3"}.options()
	assert.ErrorIs(t, err, errConflictingSources)

	opts, err := flags{remote: "https://example.com/a", title: "A", chooseDevice: true}.options()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", opts.Remote)
	assert.Equal(t, "A", opts.Track.Title)
	assert.True(t, opts.ChooseDevice)
}
