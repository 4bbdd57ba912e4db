// Package books resolves bibliographic records against the Google Books
// volumes API.
package books

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shelfsort/bookident/internal/isbn"
	"github.com/shelfsort/bookident/internal/models"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://www.googleapis.com/books/v1"

// Client is a Google Books API client
type Client struct {
	BaseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new Google Books client
func NewClient() *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// volumesResponse matches the volumes search endpoint
type volumesResponse struct {
	Items []volume `json:"items"`
}

type volume struct {
	VolumeInfo struct {
		Title               string   `json:"title"`
		Authors             []string `json:"authors"`
		Publisher           string   `json:"publisher"`
		PublishedDate       string   `json:"publishedDate"`
		IndustryIdentifiers []struct {
			Type       string `json:"type"`
			Identifier string `json:"identifier"`
		} `json:"industryIdentifiers"`
	} `json:"volumeInfo"`
}

// Resolve looks up a book using a two-tier strategy: by ISBN when one is
// usable, then by title/author text query. Every failure along the way
// (transport errors, bad status, empty results, candidates with neither
// title nor author) degrades to nil rather than an error - the catalog is
// best-effort enrichment, not a required source.
func (c *Client) Resolve(ctx context.Context, rawISBN, title, author string) *models.Book {
	cleaned := isbn.Normalize(rawISBN)

	if cleaned != "" {
		if book := c.lookup(ctx, "isbn:"+cleaned, cleaned); book != nil {
			return book
		}
	}

	var parts []string
	if title != "" {
		parts = append(parts, "intitle:"+url.QueryEscape(title))
	}
	if author != "" {
		parts = append(parts, "inauthor:"+url.QueryEscape(author))
	}
	if len(parts) == 0 {
		return nil
	}

	return c.lookup(ctx, strings.Join(parts, "+"), cleaned)
}

// lookup issues a single volumes query and returns the first usable
// candidate, or nil
func (c *Client) lookup(ctx context.Context, query, fallbackISBN string) *models.Book {
	resp, err := c.search(ctx, query)
	if err != nil {
		slog.Debug("Google Books lookup failed", "query", query, "error", err)
		return nil
	}

	if len(resp.Items) == 0 {
		slog.Debug("Google Books returned no items", "query", query)
		return nil
	}

	book := parseVolume(resp.Items[0], fallbackISBN)

	// A record with neither title nor author is useless as a match even
	// when it carries an ISBN or publisher
	if book.Title == "" && book.Author == "" {
		slog.Debug("Discarding candidate with no title or author", "query", query)
		return nil
	}

	return &book
}

func (c *Client) search(ctx context.Context, query string) (*volumesResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	searchURL := fmt.Sprintf("%s/volumes?q=%s", c.BaseURL, query)

	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query Google Books: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google Books API returned status %d", resp.StatusCode)
	}

	var volumes volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&volumes); err != nil {
		return nil, fmt.Errorf("failed to decode Google Books response: %w", err)
	}

	return &volumes, nil
}

// parseVolume maps a volume item onto a Book. The identifier scan
// overwrites the fallback with each recognized entry and stops at the
// first ISBN_13, so a 13-digit form always wins over a 10-digit one.
func parseVolume(vol volume, fallbackISBN string) models.Book {
	info := vol.VolumeInfo

	result := fallbackISBN
	for _, ident := range info.IndustryIdentifiers {
		if ident.Identifier == "" {
			continue
		}
		if ident.Type == "ISBN_13" || ident.Type == "ISBN_10" {
			result = ident.Identifier
			if ident.Type == "ISBN_13" {
				break
			}
		}
	}

	return models.Book{
		ISBN:      result,
		Title:     info.Title,
		Author:    strings.Join(info.Authors, ", "),
		Year:      parseYear(info.PublishedDate),
		Publisher: info.Publisher,
	}
}

// parseYear extracts the publication year from a publishedDate string
// like "1965-06-01". Anything without four leading digits yields 0.
func parseYear(publishedDate string) int {
	if len(publishedDate) < 4 {
		return 0
	}

	year := 0
	for _, r := range publishedDate[:4] {
		if r < '0' || r > '9' {
			return 0
		}
		year = year*10 + int(r-'0')
	}
	return year
}
