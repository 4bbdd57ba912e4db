package books

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func newTestClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		limiter:    rate.NewLimiter(rate.Inf, 1),
	}
}

func TestResolveByISBN(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "isbn:9780441013593" {
			t.Errorf("Expected query isbn:9780441013593, got %s", got)
		}
		w.Write([]byte(`{"items":[{"volumeInfo":{
			"title":"Dune",
			"authors":["Frank Herbert"],
			"publisher":"Ace",
			"publishedDate":"1965-06-01",
			"industryIdentifiers":[{"type":"ISBN_13","identifier":"9780441013593"}]
		}}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	book := client.Resolve(context.Background(), "978-0-441-01359-3", "", "")
	if book == nil {
		t.Fatal("Expected a candidate, got nil")
	}
	if book.ISBN != "9780441013593" {
		t.Errorf("Expected ISBN 9780441013593, got %s", book.ISBN)
	}
	if book.Title != "Dune" {
		t.Errorf("Expected title Dune, got %s", book.Title)
	}
	if book.Author != "Frank Herbert" {
		t.Errorf("Expected author Frank Herbert, got %s", book.Author)
	}
	if book.Year != 1965 {
		t.Errorf("Expected year 1965, got %d", book.Year)
	}
	if book.Publisher != "Ace" {
		t.Errorf("Expected publisher Ace, got %s", book.Publisher)
	}
}

func TestResolveFallsThroughToTextTier(t *testing.T) {
	var queries []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.RawQuery)
		if len(queries) == 1 {
			// Identifier tier: candidate with neither title nor author
			// must be discarded even though it carries a publisher
			w.Write([]byte(`{"items":[{"volumeInfo":{"publisher":"Ghost Press"}}]}`))
			return
		}
		w.Write([]byte(`{"items":[{"volumeInfo":{"title":"Dune","authors":["Frank Herbert"]}}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	book := client.Resolve(context.Background(), "9780441013593", "Dune", "Frank Herbert")
	if book == nil {
		t.Fatal("Expected a candidate from the text tier, got nil")
	}
	if len(queries) != 2 {
		t.Fatalf("Expected 2 lookups, got %d", len(queries))
	}
	if queries[1] != "q=intitle:Dune+inauthor:Frank+Herbert" {
		t.Errorf("Unexpected text query: %s", queries[1])
	}
	// The already-normalized identifier carries over as the fallback
	if book.ISBN != "9780441013593" {
		t.Errorf("Expected fallback ISBN 9780441013593, got %s", book.ISBN)
	}
}

func TestResolveNoHints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("No lookup should be issued without hints")
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if book := client.Resolve(context.Background(), "", "", ""); book != nil {
		t.Errorf("Expected nil, got %+v", book)
	}
}

func TestResolveDegradesOnFailure(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "empty items",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"items":[]}`))
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{not json`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := newTestClient(server.URL)
			if book := client.Resolve(context.Background(), "9780441013593", "Dune", ""); book != nil {
				t.Errorf("Expected nil, got %+v", book)
			}
		})
	}
}

func TestParseVolumePrefersISBN13(t *testing.T) {
	tests := []struct {
		name     string
		vol      volume
		fallback string
		expected string
	}{
		{
			name:     "13 listed after 10",
			expected: "9780441013593",
			vol: makeVolume([][2]string{
				{"ISBN_10", "0441013597"},
				{"ISBN_13", "9780441013593"},
			}),
		},
		{
			name:     "13 listed before 10",
			expected: "9780441013593",
			vol: makeVolume([][2]string{
				{"ISBN_13", "9780441013593"},
				{"ISBN_10", "0441013597"},
			}),
		},
		{
			name:     "only 10 present",
			expected: "0441013597",
			vol: makeVolume([][2]string{
				{"ISBN_10", "0441013597"},
			}),
		},
		{
			name:     "unrecognized kinds ignored",
			expected: "fallback-isbn",
			fallback: "fallback-isbn",
			vol: makeVolume([][2]string{
				{"OTHER", "12345"},
				{"ISSN", "2049-3630"},
			}),
		},
		{
			name:     "empty identifier values ignored",
			expected: "fallback-isbn",
			fallback: "fallback-isbn",
			vol: makeVolume([][2]string{
				{"ISBN_13", ""},
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := parseVolume(tt.vol, tt.fallback)
			if book.ISBN != tt.expected {
				t.Errorf("Expected ISBN %s, got %s", tt.expected, book.ISBN)
			}
		})
	}
}

func makeVolume(idents [][2]string) volume {
	var vol volume
	vol.VolumeInfo.Title = "A Title"
	for _, pair := range idents {
		vol.VolumeInfo.IndustryIdentifiers = append(vol.VolumeInfo.IndustryIdentifiers, struct {
			Type       string `json:"type"`
			Identifier string `json:"identifier"`
		}{Type: pair[0], Identifier: pair[1]})
	}
	return vol
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"1965-06-01", 1965},
		{"1965", 1965},
		{"unknown", 0},
		{"", 0},
		{"196", 0},
		{"19x5", 0},
	}

	for _, tt := range tests {
		if got := parseYear(tt.input); got != tt.expected {
			t.Errorf("parseYear(%q): expected %d, got %d", tt.input, tt.expected, got)
		}
	}
}

func TestParseVolumeJoinsAuthors(t *testing.T) {
	var vol volume
	vol.VolumeInfo.Title = "Good Omens"
	vol.VolumeInfo.Authors = []string{"Terry Pratchett", "Neil Gaiman"}

	book := parseVolume(vol, "")
	if book.Author != "Terry Pratchett, Neil Gaiman" {
		t.Errorf("Expected joined authors, got %s", book.Author)
	}
}
