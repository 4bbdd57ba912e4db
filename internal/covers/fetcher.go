// Package covers locates book cover images on Open Library.
package covers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://covers.openlibrary.org"

// Fetcher probes the Open Library Covers API
type Fetcher struct {
	BaseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewFetcher creates a new cover fetcher. Open Library allows roughly
// 100 requests per 5 minutes, so outbound calls are limited to 1/sec.
func NewFetcher() *Fetcher {
	return &Fetcher{
		BaseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// LookupURL returns the cover image URL for an ISBN when Open Library
// has a real cover for it. Missing covers, placeholders, and transport
// failures all yield an empty string - cover art is decoration, not data.
func (f *Fetcher) LookupURL(ctx context.Context, isbn string) string {
	if isbn == "" {
		return ""
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return ""
	}

	coverURL := fmt.Sprintf("%s/b/isbn/%s-L.jpg", f.BaseURL, isbn)

	req, err := http.NewRequestWithContext(ctx, "GET", coverURL, nil)
	if err != nil {
		return ""
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		slog.Debug("Failed to probe cover", "isbn", isbn, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Debug("No cover available", "isbn", isbn, "status", resp.StatusCode)
		return ""
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}

	// If the image is too small, it's probably a placeholder
	if len(imageData) < 1000 {
		slog.Debug("Cover image too small (likely placeholder)", "isbn", isbn, "bytes", len(imageData))
		return ""
	}

	return coverURL
}
