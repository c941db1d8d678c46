package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob"
	"gocloud.dev/blob/memblob"
)

func newLocalStorage(t *testing.T, buckets ...string) (*Storage, string) {
	t.Helper()
	root := t.TempDir()
	s, err := NewLocalStorage(root, "http://localhost:8080/media/", buckets)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, root
}

func newMemoryStorage(t *testing.T, buckets ...string) *Storage {
	t.Helper()
	opened := make(map[string]*blob.Bucket, len(buckets))
	for _, name := range buckets {
		opened[name] = memblob.OpenBucket(nil)
	}
	s, err := NewStorage("http://cdn.example.com/", opened)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("Buckets are created as directories", func(t *testing.T) {
		s, root := newLocalStorage(t, "public", "avatars")

		buckets, err := s.Buckets(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"avatars", "public"}, buckets)

		info, err := os.Stat(filepath.Join(root, "avatars"))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("Upload writes the object and returns the key", func(t *testing.T) {
		s, root := newLocalStorage(t, "public")

		key, err := s.Upload(ctx, "public", "avatars/u1_1.png", "image/png", strings.NewReader("png-bytes"), false)
		require.NoError(t, err)
		assert.Equal(t, "avatars/u1_1.png", key)

		data, err := os.ReadFile(filepath.Join(root, "public", "avatars", "u1_1.png"))
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(data))
	})

	t.Run("Invalid bucket names are refused", func(t *testing.T) {
		_, err := NewLocalStorage(t.TempDir(), "http://localhost/media", []string{"../up"})
		assert.ErrorIs(t, err, ErrInvalidKey)
	})
}

func TestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("Existing object needs upsert", func(t *testing.T) {
		s := newMemoryStorage(t, "avatars")

		_, err := s.Upload(ctx, "avatars", "a.png", "image/png", strings.NewReader("one"), false)
		require.NoError(t, err)

		_, err = s.Upload(ctx, "avatars", "a.png", "image/png", strings.NewReader("two"), false)
		assert.ErrorIs(t, err, ErrObjectExists)

		_, err = s.Upload(ctx, "avatars", "a.png", "image/png", strings.NewReader("three"), true)
		require.NoError(t, err)
		data, err := s.buckets["avatars"].ReadAll(ctx, "a.png")
		require.NoError(t, err)
		assert.Equal(t, "three", string(data))
	})

	t.Run("Failed body leaves no object behind", func(t *testing.T) {
		s := newMemoryStorage(t, "avatars")

		body := io.MultiReader(strings.NewReader("partial"), errReader{})
		_, err := s.Upload(ctx, "avatars", "broken.png", "image/png", body, true)
		require.Error(t, err)

		exists, err := s.buckets["avatars"].Exists(ctx, "broken.png")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Keys cannot escape the bucket", func(t *testing.T) {
		s := newMemoryStorage(t, "avatars")

		for _, key := range []string{"../secret.png", "/etc/passwd", "", "a/../../b.png", `a\b.png`, "./a.png", "a.png.attrs"} {
			_, err := s.Upload(ctx, "avatars", key, "image/png", strings.NewReader("x"), true)
			assert.ErrorIs(t, err, ErrInvalidKey, key)
		}
	})

	t.Run("Unknown bucket is rejected", func(t *testing.T) {
		s := newMemoryStorage(t, "avatars")

		_, err := s.Upload(ctx, "missing", "a.png", "image/png", strings.NewReader("x"), true)
		assert.ErrorIs(t, err, ErrUnknownBucket)
	})

	t.Run("Public URL is rooted at the base URL", func(t *testing.T) {
		s := newMemoryStorage(t, "avatars")

		assert.Equal(t, "http://cdn.example.com/avatars/u1_1.png", s.PublicURL("avatars", "u1_1.png"))
		assert.Equal(t, "http://cdn.example.com/public/avatars/my%20pic.png", s.PublicURL("public", "avatars/my pic.png"))
	})
}

func TestHandler(t *testing.T) {
	s, _ := newLocalStorage(t, "avatars")
	_, err := s.Upload(context.Background(), "avatars", "u1.png", "image/png", strings.NewReader("png-bytes"), true)
	require.NoError(t, err)

	server := httptest.NewServer(http.StripPrefix("/media", s.Handler()))
	defer server.Close()

	get := func(target string) (int, string, string) {
		resp, err := http.Get(server.URL + target)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, resp.Header.Get("Content-Type"), string(body)
	}

	status, contentType, body := get("/media/avatars/u1.png")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, "png-bytes", body)

	for _, target := range []string{"/media/avatars/", "/media/avatars/missing.png", "/media/avatars/u1.png.attrs", "/media/other/u1.png"} {
		status, _, _ = get(target)
		assert.Equal(t, http.StatusNotFound, status, target)
	}

	resp, err := http.Post(server.URL+"/media/avatars/u1.png", "image/png", strings.NewReader("x"))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }
