package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Precedence(t *testing.T) {
	tests := []struct {
		name  string
		track Track
		want  Resolved
	}{
		{
			name: "data url beats everything",
			track: Track{
				DataURL: "data:audio/wav;base64,AAAA",
				Base64:  "QUJD",
				Src:     "https://example.com/a.mp3",
			},
			want: Resolved{DataURL: "data:audio/wav;base64,AAAA"},
		},
		{
			name:  "base64 beats src",
			track: Track{Base64: "QUJD", Src: "https://example.com/a.mp3"},
			want:  Resolved{DataURL: "data:audio/mp3;base64,QUJD"},
		},
		{
			name:  "base64 uses track format",
			track: Track{Base64: "QUJD", Format: "OGG"},
			want:  Resolved{DataURL: "data:audio/ogg;base64,QUJD"},
		},
		{
			name:  "src as fallback",
			track: Track{Src: "https://example.com/a.mp3"},
			want:  Resolved{URL: "https://example.com/a.mp3"},
		},
		{
			name:  "nothing to play",
			track: Track{Title: "Only a title"},
			want:  Resolved{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.track)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_InvalidDataURL(t *testing.T) {
	got, err := Resolve(Track{DataURL: "data:text/plain;base64,QUJD"})
	require.ErrorIs(t, err, ErrInvalidFormat)
	assert.True(t, got.Empty())
}

func TestTrack_HasAudio(t *testing.T) {
	assert.False(t, Track{Title: "x"}.HasAudio())
	assert.True(t, Track{Src: "a.mp3"}.HasAudio())
	assert.True(t, Track{Base64: "QUJD"}.HasAudio())
}
