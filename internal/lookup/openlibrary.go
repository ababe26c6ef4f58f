// file: internal/lookup/openlibrary.go
// version: 1.2.0
// guid: 3d5e7f9a-1b2c-3d4e-5f6a-7b8c9d0e1f2a

package lookup

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// OpenLibraryClient searches the Open Library search API.
type OpenLibraryClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewOpenLibraryClient creates a client against the public API. The base URL
// can be overridden with OPENLIBRARY_BASE_URL.
func NewOpenLibraryClient() *OpenLibraryClient {
	baseURL := os.Getenv("OPENLIBRARY_BASE_URL")
	if baseURL == "" {
		baseURL = "https://openlibrary.org"
	}
	return NewOpenLibraryClientWithBaseURL(baseURL)
}

// NewOpenLibraryClientWithBaseURL creates a client with a custom base URL (for testing).
func NewOpenLibraryClientWithBaseURL(baseURL string) *OpenLibraryClient {
	return &OpenLibraryClient{
		httpClient: newHTTPClient(),
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Name returns the display name for this metadata source.
func (c *OpenLibraryClient) Name() string { return "openlib" }

type openLibraryDoc struct {
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
}

type openLibraryResponse struct {
	NumFound int              `json:"numFound"`
	Docs     []openLibraryDoc `json:"docs"`
}

// Search queries /search.json with a "title: author:" query and maps the
// first page of docs to candidates.
func (c *OpenLibraryClient) Search(author, title string) Result {
	q := "title:" + title
	if author != "" {
		q += " author:" + author
	}
	searchURL := fmt.Sprintf("%s/search.json?q=%s&limit=5", c.baseURL, url.QueryEscape(q))

	resp, err := c.httpClient.Get(searchURL)
	if err != nil {
		return Result{Reason: fmt.Sprintf("openlib: %v", err)}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Result{Reason: fmt.Sprintf("openlib: status %d", resp.StatusCode)}
	}

	var parsed openLibraryResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Result{Reason: fmt.Sprintf("openlib: decode: %v", err)}
	}

	var out []Candidate
	for _, doc := range parsed.Docs {
		if doc.Title == "" {
			continue
		}
		year := ""
		if doc.FirstPublishYear > 0 {
			year = fmt.Sprintf("%04d", doc.FirstPublishYear)
		}
		out = append(out, Candidate{
			Author: joinAuthors(doc.AuthorName),
			Title:  doc.Title,
			Year:   year,
			Source: c.Name(),
		})
	}
	if len(out) == 0 {
		return Result{Reason: "openlib: no results"}
	}
	return Result{Candidates: out}
}
