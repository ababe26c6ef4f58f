// file: internal/matcher/ranker.go
// version: 1.2.0
// guid: f7a9b1c3-5d6e-7f8a-9b0c-1d2e3f4a5b6c

// Package matcher scores provider candidates against a guess and decides
// whether a match is good enough to act on.
package matcher

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/abtools/abtools/internal/cache"
	"github.com/abtools/abtools/internal/lookup"
	"github.com/abtools/abtools/internal/metadata"
)

// DefaultShortCircuitScore is the score at which the high-trust provider
// pre-empts the remaining providers. A latency optimization, not a
// correctness requirement.
const DefaultShortCircuitScore = 80

// Scored is a candidate with its similarity to the guess attached.
type Scored struct {
	lookup.Candidate
	Score int
}

// Ranking is the outcome of one Rank call. Best is nil when no provider
// produced a candidate; that is "no match", not an error. BySource keeps the
// best-scoring candidate per provider for display.
type Ranking struct {
	Best     *Scored
	BySource map[string]Scored
}

// Ranker queries the configured providers and picks the best candidate.
type Ranker struct {
	primary           lookup.Source // high-trust, queried first; may be nil
	others            []lookup.Source
	shortCircuitScore int
	memo              *cache.Cache[Ranking]
}

// NewRanker builds a ranker. primary may be nil to disable the high-trust
// short-circuit; others are queried concurrently in declaration order
// priority. shortCircuitScore <= 0 selects the default.
func NewRanker(primary lookup.Source, others []lookup.Source, shortCircuitScore int) *Ranker {
	if shortCircuitScore <= 0 {
		shortCircuitScore = DefaultShortCircuitScore
	}
	return &Ranker{
		primary:           primary,
		others:            others,
		shortCircuitScore: shortCircuitScore,
		memo:              cache.New[Ranking](time.Hour),
	}
}

// queryText builds the comparison string for a record. The UnknownAuthor
// sentinel is omitted so it cannot drag scores down.
func queryText(author, title string) string {
	if author == "" || author == metadata.UnknownAuthor {
		return title
	}
	return author + " " + title
}

// Rank queries all providers for the guess, deduplicates candidates by
// case-insensitive (author, title), scores them with token-set similarity
// and returns the maximum. Ties keep the earlier candidate, so provider
// priority order (primary first, then declaration order) breaks them.
func (r *Ranker) Rank(guess metadata.Book) Ranking {
	searchAuthor := guess.Author
	if searchAuthor == metadata.UnknownAuthor {
		searchAuthor = ""
	}
	key := strings.ToLower(searchAuthor + "|" + guess.Title)
	if got, ok := r.memo.Get(key); ok {
		return got
	}

	target := queryText(guess.Author, guess.Title)
	ranking := Ranking{BySource: map[string]Scored{}}

	var pool []lookup.Candidate
	if r.primary != nil {
		res := r.primary.Search(searchAuthor, guess.Title)
		if res.Reason != "" {
			log.Printf("[WARN] lookup: %s", res.Reason)
		}
		pool = append(pool, res.Candidates...)
		if best := pickBest(target, pool, ranking.BySource); best != nil && best.Score >= r.shortCircuitScore {
			ranking.Best = best
			r.memo.Set(key, ranking)
			return ranking
		}
	}

	// Parallel fan-out over the remaining providers. Each goroutine writes
	// only its own slot, results are joined before ranking proceeds.
	results := make([]lookup.Result, len(r.others))
	var wg sync.WaitGroup
	for i, src := range r.others {
		wg.Add(1)
		go func(i int, src lookup.Source) {
			defer wg.Done()
			results[i] = src.Search(searchAuthor, guess.Title)
		}(i, src)
	}
	wg.Wait()

	for _, res := range results {
		if res.Reason != "" {
			log.Printf("[WARN] lookup: %s", res.Reason)
		}
		pool = append(pool, res.Candidates...)
	}

	ranking.Best = pickBest(target, pool, ranking.BySource)
	r.memo.Set(key, ranking)
	return ranking
}

// pickBest deduplicates, scores and selects the maximum-scoring candidate
// from pool, updating the per-source score map as it goes. Candidates are
// visited in priority order, so a strictly-greater comparison keeps the
// higher-priority candidate on ties.
func pickBest(target string, pool []lookup.Candidate, bySource map[string]Scored) *Scored {
	seen := map[string]bool{}
	var best *Scored
	for _, cand := range pool {
		dedupeKey := strings.ToLower(cand.Author) + "|" + strings.ToLower(cand.Title)
		if seen[dedupeKey] {
			continue
		}
		seen[dedupeKey] = true

		scored := Scored{
			Candidate: cand,
			Score:     TokenSetRatio(target, queryText(cand.Author, cand.Title)),
		}
		if prev, ok := bySource[cand.Source]; !ok || scored.Score > prev.Score {
			bySource[cand.Source] = scored
		}
		if best == nil || scored.Score > best.Score {
			c := scored
			best = &c
		}
	}
	return best
}

// Book converts a scored candidate back into a metadata record.
func (s *Scored) Book() *metadata.Book {
	book := &metadata.Book{
		Author:   s.Author,
		Title:    s.Title,
		Year:     metadata.String(s.Year),
		Series:   metadata.String(s.Series),
		Sequence: metadata.String(s.Sequence),
		Narrator: metadata.String(s.Narrator),
	}
	book.Normalize()
	return book
}
