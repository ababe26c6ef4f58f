// file: internal/organizer/pathbuilder.go
// version: 1.1.0
// guid: 9b1c3d5e-7f8a-9b0c-1d2e-3f4a5b6c7d8e

package organizer

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/abtools/abtools/internal/metadata"
)

// Limits are the per-component character budgets of a destination path.
type Limits struct {
	MaxAuthorLen int
	MaxSeriesLen int
	MaxTitleLen  int
}

// DefaultLimits returns the reference truncation policy.
func DefaultLimits() Limits {
	return Limits{MaxAuthorLen: 50, MaxSeriesLen: 50, MaxTitleLen: 50}
}

// reIllegal matches characters that are not filesystem-safe on at least one
// supported platform, plus control characters.
var reIllegal = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// Slug returns a filesystem-safe version of text: illegal characters are
// removed and trailing dots and spaces trimmed.
func Slug(text string) string {
	out := reIllegal.ReplaceAllString(text, "")
	out = strings.TrimSpace(out)
	return strings.TrimRight(out, " .")
}

// truncate slugs name and cuts it to at most limit characters, trimming any
// trailing dots or spaces left by the cut. Truncation may split mid-word;
// that is accepted lossy behavior.
func truncate(name string, limit int) string {
	slugged := Slug(name)
	runes := []rune(slugged)
	if len(runes) <= limit {
		return slugged
	}
	return strings.TrimRight(string(runes[:limit]), ". ")
}

// DestPath deterministically maps a metadata record to its destination
// directory: library/Author/Series?/Vol N - YYYY - Title {Narrator}, with
// each component truncated to its budget. Pure: identical input yields an
// identical path.
func DestPath(library string, book *metadata.Book, limits Limits) string {
	author := book.Author
	if author == "" {
		author = metadata.UnknownAuthor
	}
	dest := filepath.Join(library, truncate(author, limits.MaxAuthorLen))
	if book.Series != nil {
		dest = filepath.Join(dest, truncate(*book.Series, limits.MaxSeriesLen))
	}

	var bits []string
	if book.Sequence != nil {
		bits = append(bits, "Vol "+*book.Sequence)
	}
	if book.Year != nil {
		bits = append(bits, *book.Year)
	}
	bits = append(bits, book.Title)
	if book.Narrator != nil {
		bits = append(bits, "{"+*book.Narrator+"}")
	}
	return filepath.Join(dest, truncate(strings.Join(bits, " - "), limits.MaxTitleLen))
}
