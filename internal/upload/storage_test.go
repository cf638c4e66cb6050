package upload

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngPayload(size int) Upload {
	return Upload{
		Filename:    "lehenga front.png",
		ContentType: "image/png",
		Data:        bytes.Repeat([]byte{0x89}, size),
	}
}

func TestFilesystemStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("stores under timestamped sanitized filename", func(t *testing.T) {
		dir := t.TempDir()
		s := NewFilesystemStorage(dir, "/uploads")

		stored, err := s.Store(ctx, pngPayload(500*1024))
		require.NoError(t, err)

		assert.True(t, strings.HasSuffix(stored.Filename, "-lehenga-front.png"), "got %q", stored.Filename)
		assert.Equal(t, stored.Filename, stored.Path)
		assert.Equal(t, "/uploads/"+stored.Filename, stored.URL)

		written, err := os.ReadFile(filepath.Join(dir, stored.Filename))
		require.NoError(t, err)
		assert.Len(t, written, 500*1024)
	})

	t.Run("creates the directory if absent", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "content", "uploads")
		s := NewFilesystemStorage(dir, "/uploads")

		_, err := s.Store(ctx, pngPayload(1024))
		require.NoError(t, err)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("6MB jpeg against the 5MB ceiling names both sizes", func(t *testing.T) {
		s := NewFilesystemStorage(t.TempDir(), "/uploads")

		_, err := s.Store(ctx, Upload{
			Filename:    "bridal.jpg",
			ContentType: "image/jpeg",
			Data:        bytes.Repeat([]byte{0xff}, 6*megabyte),
		})
		require.ErrorIs(t, err, ErrPayloadTooLarge)
		assert.Contains(t, err.Error(), "6.00MB")
		assert.Contains(t, err.Error(), "5.00MB")
	})

	t.Run("gif is rejected", func(t *testing.T) {
		s := NewFilesystemStorage(t.TempDir(), "/uploads")

		_, err := s.Store(ctx, Upload{Filename: "anim.gif", ContentType: "image/gif", Data: []byte("GIF89a")})
		assert.ErrorIs(t, err, ErrUnsupportedMediaType)
	})

	t.Run("repeated uploads of the same bytes get distinct references", func(t *testing.T) {
		s := NewFilesystemStorage(t.TempDir(), "/uploads")
		base := time.Now()

		s.now = func() time.Time { return base }
		first, err := s.Store(ctx, pngPayload(1024))
		require.NoError(t, err)

		s.now = func() time.Time { return base.Add(time.Millisecond) }
		second, err := s.Store(ctx, pngPayload(1024))
		require.NoError(t, err)

		assert.NotEqual(t, first.Filename, second.Filename)
	})
}

func TestInlineStorage(t *testing.T) {
	s := NewInlineStorage()

	t.Run("returns a decodable data URL", func(t *testing.T) {
		up := Upload{Filename: "blouse.png", ContentType: "image/png", Data: []byte("png-bytes")}

		stored, err := s.Store(context.Background(), up)
		require.NoError(t, err)

		require.True(t, strings.HasPrefix(stored.URL, "data:image/png;base64,"))
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(stored.URL, "data:image/png;base64,"))
		require.NoError(t, err)
		assert.Equal(t, up.Data, decoded)
		assert.Equal(t, stored.URL, stored.Path)
	})

	t.Run("enforces the tighter inline ceiling", func(t *testing.T) {
		_, err := s.Store(context.Background(), pngPayload(3*megabyte))
		require.ErrorIs(t, err, ErrPayloadTooLarge)
		assert.Contains(t, err.Error(), "2.00MB")
	})
}

func TestImgBBStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the host URL on success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "test-key", r.FormValue("key"))
			assert.NotEmpty(t, r.FormValue("image"))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"data":    map[string]string{"url": "https://i.ibb.co/abc/blouse.png"},
			})
		}))
		defer server.Close()

		s := NewImgBBStorage("test-key")
		s.Endpoint = server.URL

		stored, err := s.Store(ctx, pngPayload(1024))
		require.NoError(t, err)
		assert.Equal(t, "https://i.ibb.co/abc/blouse.png", stored.URL)
	})

	t.Run("falls back to inline when the host errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		s := NewImgBBStorage("test-key")
		s.Endpoint = server.URL

		stored, err := s.Store(ctx, pngPayload(1024))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(stored.URL, "data:image/png;base64,"))
	})

	t.Run("falls back to inline when no key is configured", func(t *testing.T) {
		s := NewImgBBStorage("")

		stored, err := s.Store(ctx, pngPayload(1024))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(stored.URL, "data:"))
	})

	t.Run("no fallback above the inline ceiling", func(t *testing.T) {
		s := NewImgBBStorage("")

		_, err := s.Store(ctx, pngPayload(3*megabyte))
		assert.ErrorIs(t, err, ErrUploadFailed)
	})
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "saree-photo--1-.jpg", sanitizeFilename("saree photo (1).jpg"))
	assert.Equal(t, "image", sanitizeFilename(""))
}
