// file: internal/lookup/goodreads.go
// version: 1.0.0
// guid: 9d1e3f5a-7b8c-9d0e-1f2a-3b4c5d6e7f8a

package lookup

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// GoodreadsClient scrapes the Goodreads search page. There is no public
// JSON API anymore, so this parses the HTML result table. It is optional
// and disabled unless the use_goodreads flag is on.
type GoodreadsClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewGoodreadsClient creates a client against the public site. The base URL
// can be overridden with GOODREADS_BASE_URL.
func NewGoodreadsClient() *GoodreadsClient {
	baseURL := os.Getenv("GOODREADS_BASE_URL")
	if baseURL == "" {
		baseURL = "https://www.goodreads.com"
	}
	return NewGoodreadsClientWithBaseURL(baseURL)
}

// NewGoodreadsClientWithBaseURL creates a client with a custom base URL (for testing).
func NewGoodreadsClientWithBaseURL(baseURL string) *GoodreadsClient {
	return &GoodreadsClient{
		httpClient: newHTTPClient(),
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Name returns the display name for this metadata source.
func (c *GoodreadsClient) Name() string { return "goodreads" }

var reFourDigits = regexp.MustCompile(`\d{4}`)

// Search fetches the search page and extracts title rows from the result
// table. Only the rows of the first page are considered.
func (c *GoodreadsClient) Search(author, title string) Result {
	q := title
	if author != "" {
		q = title + " " + author
	}
	searchURL := fmt.Sprintf("%s/search?q=%s", c.baseURL, url.QueryEscape(q))

	resp, err := c.httpClient.Get(searchURL)
	if err != nil {
		return Result{Reason: fmt.Sprintf("goodreads: %v", err)}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Result{Reason: fmt.Sprintf("goodreads: status %d", resp.StatusCode)}
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return Result{Reason: fmt.Sprintf("goodreads: parse: %v", err)}
	}

	var out []Candidate
	table := findNode(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "table" && hasClass(n, "tableList")
	})
	if table == nil {
		return Result{Reason: "goodreads: no results"}
	}
	walkNodes(table, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "tr" || len(out) >= 5 {
			return
		}
		titleEl := findNode(n, func(e *html.Node) bool {
			return e.Type == html.ElementNode && e.Data == "a" && hasClass(e, "bookTitle")
		})
		authorEl := findNode(n, func(e *html.Node) bool {
			return e.Type == html.ElementNode && e.Data == "a" && hasClass(e, "authorName")
		})
		if titleEl == nil || authorEl == nil {
			return
		}
		cand := Candidate{
			Author: strings.TrimSpace(nodeText(authorEl)),
			Title:  strings.TrimSpace(nodeText(titleEl)),
			Source: c.Name(),
		}
		if cand.Title == "" || cand.Author == "" {
			return
		}
		ratingEl := findNode(n, func(e *html.Node) bool {
			return e.Type == html.ElementNode && e.Data == "span" && hasClass(e, "minirating")
		})
		if ratingEl != nil {
			cand.Year = reFourDigits.FindString(nodeText(ratingEl))
		}
		out = append(out, cand)
	})
	if len(out) == 0 {
		return Result{Reason: "goodreads: no results"}
	}
	return Result{Candidates: out}
}

// findNode returns the first node in depth-first order satisfying pred.
func findNode(n *html.Node, pred func(*html.Node) bool) *html.Node {
	if pred(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, pred); found != nil {
			return found
		}
	}
	return nil
}

// walkNodes visits every node in depth-first order.
func walkNodes(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkNodes(c, visit)
	}
}

// hasClass reports whether an element node carries the CSS class.
func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// nodeText concatenates the text content below a node.
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}
