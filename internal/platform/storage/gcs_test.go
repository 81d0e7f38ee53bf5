package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	t.Run("KnownContentTypes", func(t *testing.T) {
		tests := []struct {
			contentType string
			wantExt     string
		}{
			{"image/jpeg", ".jpg"},
			{"image/png", ".png"},
			{"image/webp", ".webp"},
			{"IMAGE/PNG", ".png"}, // case-insensitive
		}

		for _, tc := range tests {
			name, err := objectName(tc.contentType)
			require.NoError(t, err, tc.contentType)
			assert.True(t, strings.HasPrefix(name, "images/"))
			assert.True(t, strings.HasSuffix(name, tc.wantExt))
		}
	})

	t.Run("RejectsNonImage", func(t *testing.T) {
		_, err := objectName("application/pdf")
		require.Error(t, err)
		var unsupported ErrUnsupportedContentType
		assert.ErrorAs(t, err, &unsupported)
		assert.Equal(t, "application/pdf", unsupported.ContentType)
	})

	t.Run("UniqueNames", func(t *testing.T) {
		a, err := objectName("image/png")
		require.NoError(t, err)
		b, err := objectName("image/png")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}

func TestGCSImageStore_PublicURL(t *testing.T) {
	t.Run("WithBaseURL", func(t *testing.T) {
		s := &GCSImageStore{bucket: "akr-media", publicBaseURL: "https://cdn.akr.lk"}
		assert.Equal(t, "https://cdn.akr.lk/images/a.png", s.publicURL("images/a.png"))
	})

	t.Run("DefaultGoogleURL", func(t *testing.T) {
		s := &GCSImageStore{bucket: "akr-media"}
		assert.Equal(t, "https://storage.googleapis.com/akr-media/images/a.png", s.publicURL("images/a.png"))
	})
}

// Save requires a live bucket or an emulator, covered by integration environments
