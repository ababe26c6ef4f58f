// file: internal/metadata/guess.go
// version: 1.1.0
// guid: 2f8a4b6c-9d0e-1f2a-3b4c-5d6e7f8a9b0c

package metadata

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Precompiled patterns, package-level to avoid per-call recompilation.
var (
	// Trailing noise on a folder or file name: an optional "{303mb}" style
	// annotation, a "12.56.09" duration stamp, and a "64k" bitrate stamp.
	reTail = regexp.MustCompile(`(?:\{[^}]*\})?(?:\s*\d+\.\d{2}\.\d{2})?(?:\s*\d+\s*[kK])?\s*$`)

	// Leaf pattern "5 - Jaws of Darkness (2003)", sequence optional.
	reLeaf = regexp.MustCompile(`^\s*(?:(?P<seq>\d+)\s*[-_]\s*)?(?P<title>.+?)\s*\(\s*(?P<year>\d{4})\s*\)\s*$`)

	// Any parenthesised remainder, stripped in the fallback path.
	reParen = regexp.MustCompile(`\([^)]*\)`)

	// Leading "2003 - " year prefix.
	reYearPrefix = regexp.MustCompile(`^(\d{4})\s*[-_]\s*`)

	// Parent folder span "Southern Victory (1997-2007)".
	reSeriesSpan = regexp.MustCompile(`^(?P<series>.+?)\s*\(\s*\d{4}\s*-\s*\d{4}\s*\)\s*$`)

	// A bare 4-digit year, used to reject year-only ancestor names.
	reBareYear = regexp.MustCompile(`^\d{4}$`)
)

// cleanTail strips bracketed annotations, duration stamps and bitrate stamps
// from the end of a name.
func cleanTail(s string) string {
	return strings.TrimSpace(reTail.ReplaceAllString(s, ""))
}

// Guess derives a best-effort Book from a file or directory path. It never
// fails; with no usable signal the result is the cleaned leaf name under the
// UnknownAuthor sentinel. Callers must treat the result as a guess, not as
// verified metadata.
//
// The layered heuristics, tried in order:
//  1. strip the trailing annotation/duration/bitrate tail
//  2. match "[seq -] Title (Year)" on the leaf name
//  3. otherwise drop parenthesised chunks and peel a leading "YYYY -" prefix
//  4. a parent named "Series (YYYY-YYYY)" contributes the series and shifts
//     the author search to the grandparent
//  5. climb ancestors for the first name with an interior space that is not
//     itself a bare year; that is the author
func Guess(path string) Book {
	leafName := filepath.Base(path)
	if ext := filepath.Ext(leafName); isAudioExt(ext) {
		leafName = strings.TrimSuffix(leafName, ext)
	}
	leaf := cleanTail(leafName)

	var book Book
	if m := reLeaf.FindStringSubmatch(leaf); m != nil {
		book.Sequence = String(m[1])
		book.Title = strings.TrimSpace(m[2])
		book.Year = String(m[3])
	} else {
		raw := strings.TrimSpace(reParen.ReplaceAllString(leaf, ""))
		if ym := reYearPrefix.FindStringSubmatch(raw); ym != nil {
			book.Year = String(ym[1])
			raw = strings.TrimLeft(raw[len(ym[0]):], " -_")
		}
		book.Title = raw
	}

	parent := filepath.Dir(path)
	authorDir := parent
	if sm := reSeriesSpan.FindStringSubmatch(filepath.Base(parent)); sm != nil {
		book.Series = String(sm[1])
		authorDir = filepath.Dir(parent)
	}

	book.Author = climbForAuthor(authorDir)
	book.Normalize()
	return book
}

// climbForAuthor walks dir and its ancestors upward and returns the first
// component name that plausibly names a person: it contains an interior space
// and is not a bare 4-digit year.
func climbForAuthor(dir string) string {
	for {
		name := filepath.Base(dir)
		if strings.Contains(name, " ") && !reBareYear.MatchString(name) {
			return name
		}
		next := filepath.Dir(dir)
		if next == dir {
			return UnknownAuthor
		}
		dir = next
	}
}
