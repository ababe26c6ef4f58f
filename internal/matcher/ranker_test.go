// file: internal/matcher/ranker_test.go
// version: 1.0.0
// guid: 9c0d1e2f-3a4b-5c6d-7e8f-9a0b1c2d3e4f

package matcher

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abtools/abtools/internal/lookup"
	"github.com/abtools/abtools/internal/metadata"
)

// fakeSource serves a fixed candidate list and counts its queries.
type fakeSource struct {
	name       string
	candidates []lookup.Candidate
	calls      atomic.Int32
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Search(author, title string) lookup.Result {
	f.calls.Add(1)
	return lookup.Result{Candidates: f.candidates}
}

func cand(source, author, title string) lookup.Candidate {
	return lookup.Candidate{Source: source, Author: author, Title: title}
}

func TestRankPicksHighestScore(t *testing.T) {
	src := &fakeSource{name: "a", candidates: []lookup.Candidate{
		cand("a", "Somebody Else", "A Different Book Entirely"),
		cand("a", "Frank Herbert", "Dune"),
	}}
	r := NewRanker(nil, []lookup.Source{src}, 0)

	ranking := r.Rank(metadata.Book{Author: "Frank Herbert", Title: "Dune"})
	require.NotNil(t, ranking.Best)
	assert.Equal(t, "Dune", ranking.Best.Title)
	assert.Equal(t, 100, ranking.Best.Score)
}

func TestRankTieKeepsPriorityOrder(t *testing.T) {
	first := &fakeSource{name: "first", candidates: []lookup.Candidate{
		cand("first", "Frank Herbert", "Dune"),
	}}
	second := &fakeSource{name: "second", candidates: []lookup.Candidate{
		cand("second", "Frank Herbert", "dune"), // same dedupe key, dropped
	}}
	r := NewRanker(nil, []lookup.Source{first, second}, 0)

	ranking := r.Rank(metadata.Book{Author: "Frank Herbert", Title: "Dune"})
	require.NotNil(t, ranking.Best)
	assert.Equal(t, "first", ranking.Best.Source)
}

func TestRankShortCircuitSkipsOthers(t *testing.T) {
	primary := &fakeSource{name: "audible", candidates: []lookup.Candidate{
		cand("audible", "Frank Herbert", "Dune"),
	}}
	other := &fakeSource{name: "openlib", candidates: []lookup.Candidate{
		cand("openlib", "Frank Herbert", "Dune"),
	}}
	r := NewRanker(primary, []lookup.Source{other}, 80)

	ranking := r.Rank(metadata.Book{Author: "Frank Herbert", Title: "Dune"})
	require.NotNil(t, ranking.Best)
	assert.Equal(t, "audible", ranking.Best.Source)
	assert.Equal(t, int32(0), other.calls.Load(), "other providers must not be queried")
}

func TestRankLowPrimaryScoreFallsThrough(t *testing.T) {
	primary := &fakeSource{name: "audible", candidates: []lookup.Candidate{
		cand("audible", "Someone", "Unrelated Thing"),
	}}
	other := &fakeSource{name: "openlib", candidates: []lookup.Candidate{
		cand("openlib", "Frank Herbert", "Dune"),
	}}
	r := NewRanker(primary, []lookup.Source{other}, 80)

	ranking := r.Rank(metadata.Book{Author: "Frank Herbert", Title: "Dune"})
	require.NotNil(t, ranking.Best)
	assert.Equal(t, "openlib", ranking.Best.Source)
	assert.Equal(t, int32(1), other.calls.Load())
}

func TestRankNoCandidates(t *testing.T) {
	empty := &fakeSource{name: "a"}
	r := NewRanker(nil, []lookup.Source{empty}, 0)

	ranking := r.Rank(metadata.Book{Author: "Frank Herbert", Title: "Dune"})
	assert.Nil(t, ranking.Best)
}

func TestRankMemoizesPerGuess(t *testing.T) {
	src := &fakeSource{name: "a", candidates: []lookup.Candidate{
		cand("a", "Frank Herbert", "Dune"),
	}}
	r := NewRanker(nil, []lookup.Source{src}, 0)

	guess := metadata.Book{Author: "Frank Herbert", Title: "Dune"}
	r.Rank(guess)
	r.Rank(guess)
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestRankBySourceTracksPerProviderBest(t *testing.T) {
	a := &fakeSource{name: "a", candidates: []lookup.Candidate{
		cand("a", "Frank Herbert", "Dune"),
		cand("a", "Somebody", "Other"),
	}}
	b := &fakeSource{name: "b", candidates: []lookup.Candidate{
		cand("b", "Frank Herbert", "Dune Messiah"),
	}}
	r := NewRanker(nil, []lookup.Source{a, b}, 0)

	ranking := r.Rank(metadata.Book{Author: "Frank Herbert", Title: "Dune"})
	require.Contains(t, ranking.BySource, "a")
	require.Contains(t, ranking.BySource, "b")
	assert.Equal(t, 100, ranking.BySource["a"].Score)
	assert.Equal(t, "Dune", ranking.BySource["a"].Title)
}
