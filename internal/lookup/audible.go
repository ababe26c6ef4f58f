// file: internal/lookup/audible.go
// version: 2.1.0
// guid: 7b9c1d3e-5f6a-7b8c-9d0e-1f2a3b4c5d6e

package lookup

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// AudibleClient searches the Audible catalog API. Audible is the designated
// high-trust provider: it is the only source that reliably carries series
// and narrator data for audiobooks, so the ranker may query it first and
// short-circuit the rest when its score is already high.
type AudibleClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewAudibleClient creates a client against the public catalog API. The base
// URL can be overridden with AUDIBLE_BASE_URL.
func NewAudibleClient() *AudibleClient {
	baseURL := os.Getenv("AUDIBLE_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.audible.com"
	}
	return NewAudibleClientWithBaseURL(baseURL)
}

// NewAudibleClientWithBaseURL creates a client with a custom base URL (for testing).
func NewAudibleClientWithBaseURL(baseURL string) *AudibleClient {
	return &AudibleClient{
		httpClient: newHTTPClient(),
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Name returns the display name for this metadata source.
func (c *AudibleClient) Name() string { return "audible" }

type audiblePerson struct {
	Name string `json:"name"`
}

type audibleSeries struct {
	Title    string `json:"title"`
	Sequence string `json:"sequence"`
}

type audibleProduct struct {
	ASIN        string          `json:"asin"`
	Title       string          `json:"title"`
	Authors     []audiblePerson `json:"authors"`
	Narrators   []audiblePerson `json:"narrators"`
	ReleaseDate string          `json:"release_date"`
	Series      []audibleSeries `json:"series"`
}

type audibleResponse struct {
	Products []audibleProduct `json:"products"`
}

// Search queries the catalog products endpoint by keyword and maps up to
// five products to candidates.
func (c *AudibleClient) Search(author, title string) Result {
	keywords := title
	if author != "" {
		keywords = title + " " + author
	}
	query := url.Values{}
	query.Set("keywords", keywords)
	query.Set("num_results", "5")
	query.Set("response_groups", "contributors,series")
	searchURL := fmt.Sprintf("%s/1.0/catalog/products?%s", c.baseURL, query.Encode())

	resp, err := c.httpClient.Get(searchURL)
	if err != nil {
		return Result{Reason: fmt.Sprintf("audible: %v", err)}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Result{Reason: fmt.Sprintf("audible: status %d", resp.StatusCode)}
	}

	var parsed audibleResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Result{Reason: fmt.Sprintf("audible: decode: %v", err)}
	}

	var out []Candidate
	for _, p := range parsed.Products {
		if p.Title == "" || len(p.Authors) == 0 {
			continue
		}
		cand := Candidate{
			Author: joinAuthors(personNames(p.Authors)),
			Title:  p.Title,
			Year:   coerceYear(p.ReleaseDate),
			Source: c.Name(),
		}
		if len(p.Narrators) > 0 {
			cand.Narrator = joinAuthors(personNames(p.Narrators))
		}
		if len(p.Series) > 0 {
			cand.Series = strings.TrimSpace(p.Series[0].Title)
			cand.Sequence = strings.TrimSpace(p.Series[0].Sequence)
		}
		out = append(out, cand)
	}
	if len(out) == 0 {
		return Result{Reason: "audible: no results"}
	}
	return Result{Candidates: out}
}

func personNames(people []audiblePerson) []string {
	names := make([]string, 0, len(people))
	for _, p := range people {
		names = append(names, p.Name)
	}
	return names
}
