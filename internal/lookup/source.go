// file: internal/lookup/source.go
// version: 1.1.0
// guid: 1b3c5d7e-9f0a-1b2c-3d4e-5f6a7b8c9d0e

// Package lookup wraps the external metadata providers behind a uniform
// search interface. A provider never fails its caller: network errors,
// malformed responses and timeouts all reduce to an empty candidate list
// with a reason attached.
package lookup

import (
	"net/http"
	"strings"
	"time"
)

// SearchTimeout bounds every provider call. A slow provider degrades to
// "no candidates", never blocks the run.
const SearchTimeout = 10 * time.Second

// Candidate is one provider-sourced metadata guess. The similarity score is
// attached later, at ranking time, relative to the caller's guess.
type Candidate struct {
	Author   string
	Title    string
	Year     string // 4-digit or empty
	Series   string
	Sequence string
	Narrator string
	Source   string // provider name
}

// Result is what a provider search reduces to. Reason is non-empty when the
// provider degraded (network failure, bad payload, nothing found) and is
// only ever logged, never treated as an error.
type Result struct {
	Candidates []Candidate
	Reason     string
}

// Source is a pluggable metadata provider.
type Source interface {
	Name() string
	// Search queries the provider with a best-effort author (may be empty)
	// and a title. It must not panic and must not return more than a
	// handful of candidates.
	Search(author, title string) Result
}

// newHTTPClient builds the shared provider client with the fixed timeout.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: SearchTimeout}
}

// joinAuthors flattens a multi-author list deterministically.
func joinAuthors(names []string) string {
	var kept []string
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			kept = append(kept, n)
		}
	}
	return strings.Join(kept, ", ")
}

// coerceYear reduces an arbitrary date string to a 4-digit year, or "".
func coerceYear(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 4 {
		return ""
	}
	s = s[:4]
	for _, r := range s {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return s
}
