package scraper

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mfcli/internal/config"
)

func testClient() *Client {
	cfg := config.Default().HTTP
	cfg.RequestsPerSecond = 100
	return NewClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFetchPage(t *testing.T) {
	t.Run("returns body and sends user agent", func(t *testing.T) {
		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			io.WriteString(w, "<html><body>disclosures</body></html>")
		}))
		defer srv.Close()

		body, err := testClient().FetchPage(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Contains(t, body, "disclosures")
		assert.Equal(t, config.Default().HTTP.UserAgent, gotUA)
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := testClient().FetchPage(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status 500")
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := testClient().FetchPage(ctx, "http://127.0.0.1:0/")
		require.Error(t, err)
	})
}

func TestDownloadFile(t *testing.T) {
	payload := []byte("xlsx-bytes")

	t.Run("filename from url", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(payload)
		}))
		defer srv.Close()

		destDir := t.TempDir()
		path, err := testClient().DownloadFile(context.Background(), srv.URL+"/docs/consolidated-december-2025.xlsx", destDir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(destDir, "consolidated-december-2025.xlsx"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("filename from content disposition", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Disposition", `attachment; filename="axis-portfolio.xlsx"`)
			w.Write(payload)
		}))
		defer srv.Close()

		destDir := t.TempDir()
		path, err := testClient().DownloadFile(context.Background(), srv.URL+"/download", destDir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(destDir, "axis-portfolio.xlsx"), path)
	})

	t.Run("fallback filename", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(payload)
		}))
		defer srv.Close()

		destDir := t.TempDir()
		path, err := testClient().DownloadFile(context.Background(), srv.URL+"/", destDir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(destDir, fallbackFilename), path)
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer srv.Close()

		_, err := testClient().DownloadFile(context.Background(), srv.URL+"/missing.xlsx", t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status 404")
	})
}

func TestDownloadFilename(t *testing.T) {
	tests := []struct {
		name        string
		disposition string
		url         string
		want        string
	}{
		{"disposition wins", `attachment; filename="report.xlsx"`, "https://x.test/other.xlsx", "report.xlsx"},
		{"disposition path is stripped", `attachment; filename="../../evil.xlsx"`, "https://x.test/other.xlsx", "evil.xlsx"},
		{"url basename", "", "https://x.test/docs/portfolio.xlsx?v=2", "portfolio.xlsx"},
		{"bare host falls back", "", "https://x.test/", fallbackFilename},
		{"malformed disposition falls back to url", "not-a-media-type;;", "https://x.test/a.xlsx", "a.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, downloadFilename(tt.disposition, tt.url))
		})
	}
}
