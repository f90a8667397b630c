package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/time/rate"

	"mfcli/internal/config"
)

// fallbackFilename is used when neither the Content-Disposition header nor
// the URL carries a usable filename.
const fallbackFilename = "portfolio_data.xlsx"

// Client fetches disclosure pages and downloads portfolio workbooks. Calls
// are synchronous with fixed timeouts and no retry; a timeout or network
// error surfaces as a failed workflow step.
type Client struct {
	pageClient     *http.Client
	downloadClient *http.Client
	limiter        *rate.Limiter
	userAgent      string
	logger         *slog.Logger
}

// NewClient creates a client from the HTTP configuration.
func NewClient(cfg config.HTTPConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		pageClient:     &http.Client{Timeout: cfg.PageTimeout},
		downloadClient: &http.Client{Timeout: cfg.DownloadTimeout},
		limiter:        rate.NewLimiter(rate.Limit(rps), 1),
		userAgent:      cfg.UserAgent,
		logger:         logger,
	}
}

// FetchPage retrieves a page and returns its body as text. Any network or
// HTTP error is returned as-is; the caller treats it as "locator not
// found", not fatal.
func (c *Client) FetchPage(ctx context.Context, pageURL string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.pageClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read page body: %w", err)
	}

	c.logger.Info("Page fetched",
		slog.String("url", pageURL),
		slog.Int("bytes", len(body)))
	return string(body), nil
}

// DownloadFile saves the file at fileURL into destDir and returns the local
// path. The filename comes from the Content-Disposition header when
// present, otherwise from the URL basename.
func (c *Client) DownloadFile(ctx context.Context, fileURL, destDir string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.downloadClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d downloading %s", resp.StatusCode, fileURL)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	filename := downloadFilename(resp.Header.Get("Content-Disposition"), fileURL)
	destPath := filepath.Join(destDir, filename)

	file, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	written, err := io.Copy(file, resp.Body)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(destPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	c.logger.Info("File downloaded",
		slog.String("url", fileURL),
		slog.String("path", destPath),
		slog.Int64("bytes", written))
	return destPath, nil
}

// downloadFilename resolves the local filename for a download.
func downloadFilename(contentDisposition, fileURL string) string {
	if contentDisposition != "" {
		if _, params, err := mime.ParseMediaType(contentDisposition); err == nil {
			if name := strings.TrimSpace(params["filename"]); name != "" {
				return filepath.Base(name)
			}
		}
	}
	if u, err := url.Parse(fileURL); err == nil {
		if base := path.Base(u.Path); base != "" && base != "." && base != "/" {
			return base
		}
	}
	return fallbackFilename
}
