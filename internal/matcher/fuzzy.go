// file: internal/matcher/fuzzy.go
// version: 2.0.0
// guid: d5f7a9b1-3c4d-5e6f-7a8b-9c0d1e2f3a4b

package matcher

import (
	"sort"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer strips diacritics so "Bronte" matches "Brontë".
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalize lowercases, folds diacritics and reduces everything that is not
// a letter or digit to a single space.
func normalize(s string) string {
	if folded, _, err := transform.String(foldTransformer, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// tokenSet returns the sorted unique words of a normalized string.
func tokenSet(s string) []string {
	seen := map[string]bool{}
	var out []string
	for _, w := range strings.Fields(s) {
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}

// ratio is a plain Levenshtein similarity, 0-100.
func ratio(a, b string) int {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	dist := fuzzy.LevenshteinDistance(a, b)
	la, lb := len([]rune(a)), len([]rune(b))
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	score := 100 - (dist*100+maxLen/2)/maxLen
	if score < 0 {
		score = 0
	}
	return score
}

// TokenSetRatio compares the word sets of two strings regardless of order
// and duplication, 0-100. Both strings are split into the shared token set
// and each side's remainder; the best pairwise similarity of the three
// joined forms is the score, so a candidate whose words are a subset of the
// guess (or vice versa) scores 100.
func TokenSetRatio(a, b string) int {
	ta, tb := tokenSet(normalize(a)), tokenSet(normalize(b))
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	inB := map[string]bool{}
	for _, w := range tb {
		inB[w] = true
	}
	inA := map[string]bool{}
	for _, w := range ta {
		inA[w] = true
	}

	var common, onlyA, onlyB []string
	for _, w := range ta {
		if inB[w] {
			common = append(common, w)
		} else {
			onlyA = append(onlyA, w)
		}
	}
	for _, w := range tb {
		if !inA[w] {
			onlyB = append(onlyB, w)
		}
	}

	base := strings.Join(common, " ")
	withA := strings.TrimSpace(base + " " + strings.Join(onlyA, " "))
	withB := strings.TrimSpace(base + " " + strings.Join(onlyB, " "))

	best := ratio(withA, withB)
	if base != "" {
		if s := ratio(base, withA); s > best {
			best = s
		}
		if s := ratio(base, withB); s > best {
			best = s
		}
	}
	return best
}
