package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"trainer-downloader/pkg/tasks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetToFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data.json" {
			http.NotFound(w, r)
			return
		}
		_, err := w.Write([]byte(`{"rows": [1, 2, 3]}`))
		require.NoError(t, err)
	}))
	defer server.Close()

	downloader := NewDownloader()

	t.Run("WritesBodyToFile", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "nested", "data.json")
		require.NoError(t, downloader.GetToFile(context.Background(), server.URL+"/data.json", dest))

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.JSONEq(t, `{"rows": [1, 2, 3]}`, string(data))
	})

	t.Run("NonSuccessStatusFails", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "missing.json")
		err := downloader.GetToFile(context.Background(), server.URL+"/missing.json", dest)
		assert.ErrorIs(t, err, tasks.ErrDownloadFailed)

		_, statErr := os.Stat(dest)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("UnreachableHostFails", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "unreachable.json")
		err := downloader.GetToFile(context.Background(), "http://127.0.0.1:1/file", dest)
		assert.ErrorIs(t, err, tasks.ErrDownloadFailed)
	})
}
