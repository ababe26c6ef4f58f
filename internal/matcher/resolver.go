// file: internal/matcher/resolver.go
// version: 1.0.0
// guid: 7d9e1f3a-5b6c-7d8e-9f0a-1b2c3d4e5f6a

package matcher

import "github.com/abtools/abtools/internal/metadata"

// Resolver couples a Ranker with a confirmation Gate: rank the candidates
// for a guess, then decide whether the winner may be applied.
type Resolver struct {
	Ranker *Ranker
	Gate   Gate
	// OnRanked, when set, observes every ranking before the gate decides.
	// Used by the CLI to print per-provider scores.
	OnRanked func(guess metadata.Book, ranking Ranking)
}

// Resolve outcomes reported alongside a nil book.
const (
	ReasonNoMatch  = "no_match"
	ReasonUserSkip = "user_skip"
)

// Resolve ranks the providers' candidates for guess and gates the winner.
// On acceptance it returns the winning metadata with guess fields filling
// any gaps the provider left absent. On rejection the reason explains
// whether nothing matched or the match was declined.
func (r *Resolver) Resolve(guess metadata.Book) (*metadata.Book, string) {
	ranking := r.Ranker.Rank(guess)
	if r.OnRanked != nil {
		r.OnRanked(guess, ranking)
	}
	if ranking.Best == nil {
		return nil, ReasonNoMatch
	}
	if !r.Gate.Decide(ranking.Best.Score) {
		return nil, ReasonUserSkip
	}
	book := ranking.Best.Book()
	return metadata.Merge(book, &guess), ""
}
