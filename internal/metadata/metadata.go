// file: internal/metadata/metadata.go
// version: 1.2.0
// guid: 7c1d9e2f-3a4b-5c6d-7e8f-9a0b1c2d3e4f

package metadata

import "strings"

// UnknownAuthor is the sentinel used when no author could be determined.
const UnknownAuthor = "Unknown Author"

// Book holds the bibliographic metadata for one audiobook. Author and Title
// are always non-empty; optional fields are nil when unknown so that
// "unknown" stays distinguishable from "known empty".
type Book struct {
	Author   string
	Title    string
	Year     *string // 4-digit publication year
	Series   *string
	Sequence *string // position within the series
	Narrator *string
}

// String returns a pointer to s, or nil when s is empty. Used when building
// Book values from sources that report missing fields as empty strings.
func String(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Value dereferences an optional field, returning "" for nil.
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Normalize enforces the record invariants: a missing author becomes the
// UnknownAuthor sentinel and optional fields holding empty strings become nil.
func (b *Book) Normalize() {
	b.Author = strings.TrimSpace(b.Author)
	if b.Author == "" {
		b.Author = UnknownAuthor
	}
	b.Title = strings.TrimSpace(b.Title)
	for _, p := range []**string{&b.Year, &b.Series, &b.Sequence, &b.Narrator} {
		if *p != nil && strings.TrimSpace(**p) == "" {
			*p = nil
		}
	}
}

// Merge fills the gaps of primary with fields from secondary. The primary
// record always wins; a secondary field is used only when the primary left it
// absent. Either argument may be nil.
func Merge(primary, secondary *Book) *Book {
	if secondary == nil {
		return primary
	}
	if primary == nil {
		return secondary
	}
	if primary.Author == "" || primary.Author == UnknownAuthor {
		if secondary.Author != "" && secondary.Author != UnknownAuthor {
			primary.Author = secondary.Author
		}
	}
	if primary.Title == "" {
		primary.Title = secondary.Title
	}
	if primary.Year == nil {
		primary.Year = secondary.Year
	}
	if primary.Series == nil {
		primary.Series = secondary.Series
	}
	if primary.Sequence == nil {
		primary.Sequence = secondary.Sequence
	}
	if primary.Narrator == nil {
		primary.Narrator = secondary.Narrator
	}
	return primary
}
