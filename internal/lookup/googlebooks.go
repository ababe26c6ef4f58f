// file: internal/lookup/googlebooks.go
// version: 1.1.0
// guid: 5f7a9b1c-3d4e-5f6a-7b8c-9d0e1f2a3b4c

package lookup

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// GoogleBooksClient searches the Google Books volumes API. No API key is
// required for basic searches.
type GoogleBooksClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewGoogleBooksClient creates a client against the public API. The base URL
// can be overridden with GOOGLE_BOOKS_BASE_URL.
func NewGoogleBooksClient() *GoogleBooksClient {
	baseURL := os.Getenv("GOOGLE_BOOKS_BASE_URL")
	if baseURL == "" {
		baseURL = "https://www.googleapis.com/books/v1"
	}
	return NewGoogleBooksClientWithBaseURL(baseURL)
}

// NewGoogleBooksClientWithBaseURL creates a client with a custom base URL (for testing).
func NewGoogleBooksClientWithBaseURL(baseURL string) *GoogleBooksClient {
	return &GoogleBooksClient{
		httpClient: newHTTPClient(),
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Name returns the display name for this metadata source.
func (c *GoogleBooksClient) Name() string { return "gbooks" }

type googleBooksResponse struct {
	TotalItems int               `json:"totalItems"`
	Items      []googleBooksItem `json:"items"`
}

type googleBooksItem struct {
	VolumeInfo googleBooksVolumeInfo `json:"volumeInfo"`
}

type googleBooksVolumeInfo struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	PublishedDate string   `json:"publishedDate"`
}

// Search queries /volumes with an intitle/inauthor query.
func (c *GoogleBooksClient) Search(author, title string) Result {
	q := fmt.Sprintf("intitle:%q", title)
	if author != "" {
		q += fmt.Sprintf("+inauthor:%q", author)
	}
	searchURL := fmt.Sprintf("%s/volumes?q=%s&maxResults=5", c.baseURL, url.QueryEscape(q))

	resp, err := c.httpClient.Get(searchURL)
	if err != nil {
		return Result{Reason: fmt.Sprintf("gbooks: %v", err)}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Result{Reason: fmt.Sprintf("gbooks: status %d", resp.StatusCode)}
	}

	var parsed googleBooksResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Result{Reason: fmt.Sprintf("gbooks: decode: %v", err)}
	}

	var out []Candidate
	for _, item := range parsed.Items {
		info := item.VolumeInfo
		if info.Title == "" {
			continue
		}
		out = append(out, Candidate{
			Author: joinAuthors(info.Authors),
			Title:  info.Title,
			Year:   coerceYear(info.PublishedDate),
			Source: c.Name(),
		})
	}
	if len(out) == 0 {
		return Result{Reason: "gbooks: no results"}
	}
	return Result{Candidates: out}
}
