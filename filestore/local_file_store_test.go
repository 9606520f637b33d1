package filestore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalFileStore(t *testing.T) {
	t.Run("fetch and store writes the remote body to disk", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("jpeg bytes"))
		}))
		defer server.Close()

		store, err := NewLocalFileStore(t.TempDir())
		require.NoError(t, err)

		key, err := store.FetchAndStore(context.Background(), server.URL+"/photo", "abc.jpg")
		require.NoError(t, err)
		require.Equal(t, "abc.jpg", key)

		raw, err := os.ReadFile(filepath.Join(store.Dir(), "abc.jpg"))
		require.NoError(t, err)
		require.Equal(t, "jpeg bytes", string(raw))
	})

	t.Run("fetch derives a key from the url when no name is given", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("data"))
		}))
		defer server.Close()

		store, err := NewLocalFileStore(t.TempDir())
		require.NoError(t, err)

		key, err := store.FetchAndStore(context.Background(), server.URL+"/media/pic.png", "")
		require.NoError(t, err)
		require.True(t, strings.HasSuffix(key, ".png"))

		_, err = os.Stat(filepath.Join(store.Dir(), key))
		require.NoError(t, err)
	})

	t.Run("non-200 upstream response fails the fetch", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		store, err := NewLocalFileStore(t.TempDir())
		require.NoError(t, err)

		_, err = store.FetchAndStore(context.Background(), server.URL+"/gone", "x.jpg")
		require.Error(t, err)
	})

	t.Run("store writes a reader under the given name", func(t *testing.T) {
		store, err := NewLocalFileStore(t.TempDir())
		require.NoError(t, err)

		key, err := store.Store(context.Background(), "1700-banner.webp", strings.NewReader("webp bytes"))
		require.NoError(t, err)
		require.Equal(t, "1700-banner.webp", key)

		raw, err := os.ReadFile(filepath.Join(store.Dir(), "1700-banner.webp"))
		require.NoError(t, err)
		require.Equal(t, "webp bytes", string(raw))
	})

	t.Run("store without a name is rejected", func(t *testing.T) {
		store, err := NewLocalFileStore(t.TempDir())
		require.NoError(t, err)

		_, err = store.Store(context.Background(), "", strings.NewReader("data"))
		require.Error(t, err)
	})

	t.Run("public url prepends the uploads path", func(t *testing.T) {
		store, err := NewLocalFileStore(t.TempDir())
		require.NoError(t, err)
		require.Equal(t, "/uploads/abc.jpg", store.GetUrlFromKey("abc.jpg"))
	})

	t.Run("missing directory is created", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "uploads")

		_, err := NewLocalFileStore(dir)
		require.NoError(t, err)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		require.True(t, info.IsDir())
	})
}
