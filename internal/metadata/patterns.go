// file: internal/metadata/patterns.go
// version: 1.0.0
// guid: 9b3c5d7e-1f2a-4b6c-8d0e-2f4a6b8c0d1e

package metadata

import (
	"path/filepath"
	"regexp"
	"strings"
)

// folderPattern is one entry in the ordered folder-name pattern table.
// Patterns are tried in declared order; the first match wins.
type folderPattern struct {
	name string
	re   *regexp.Regexp
	// parentFills marks patterns that only yield year+title; author and
	// series are pulled from a parse of the parent folder when available.
	parentFills bool
}

// folderPatterns is the explicit, ordered pattern table. Order matters: the
// most specific shapes come first so that greedy dash splitting cannot
// swallow a series or year segment.
var folderPatterns = []folderPattern{
	{
		// Author - Series #N - YYYY - Title {Narrator}
		name: "author-series-year-title",
		re: regexp.MustCompile(`^\s*(?P<author>.+?)\s*-\s*` +
			`(?:(?P<series>[^-\[({]+?)\s*[-#]?\s*(?P<seq>\d+)?\s*-\s*)?` +
			`(?P<year>\d{4})?\s*-\s*` +
			`(?P<title>[^({\[]+?)` +
			`(?:\s*\{(?P<narr>[^}]+)\})?\s*$`),
	},
	{
		// Title [Series -N] - Author
		name: "title-bracket-series-author",
		re: regexp.MustCompile(`^\s*(?P<title>.+?)\s*` +
			`\[\s*(?P<series>[^\]-]+?)\s*-\s*(?P<seq>\d+)\s*\]\s*-\s*` +
			`(?P<author>.+?)\s*$`),
	},
	{
		// Series - Author\[YYYY] Title
		name: "series-author-bracket-year",
		re: regexp.MustCompile(`^\s*(?P<series>[^-\[]+?)\s*-\s*` +
			`(?P<author>[^\[]+?)\s*\\\[\s*(?P<year>\d{4})\]\s*` +
			`(?P<title>.+?)\s*$`),
	},
	{
		// [YYYY] Title; author/series pulled from the parent folder
		name:        "bracket-year-title",
		re:          regexp.MustCompile(`^\s*\[\s*(?P<year>\d{4})\]\s*(?P<title>.+?)\s*$`),
		parentFills: true,
	},
	{
		// Author - Title (YYYY)
		name: "author-title-paren-year",
		re: regexp.MustCompile(`^\s*(?P<author>.+?)\s*-\s*` +
			`(?P<title>.+?)\s*\(\s*(?P<year>\d{4})\s*\)\s*$`),
	},
	{
		// Title - Author (YYYY)
		name: "title-author-paren-year",
		re: regexp.MustCompile(`^\s*(?P<title>.+?)\s*-\s*` +
			`(?P<author>.+?)\s*\(\s*(?P<year>\d{4})\s*\)\s*$`),
	},
	{
		// Author\[YYYY] Title
		name: "author-bracket-year-title",
		re: regexp.MustCompile(`^\s*(?P<author>.+?)\s*\\\[\s*(?P<year>\d{4})\]\s*` +
			`(?P<title>.+?)\s*$`),
	},
}

// Suffixes that must survive title cleaning: part markers carry real
// information about multi-part rips.
var (
	reKeepPartOfN = regexp.MustCompile(`(?i)^\d+\s*of\s*\d+$`)
	reKeepPartN   = regexp.MustCompile(`(?i)^part\s*\d+$`)

	reTrailParen   = regexp.MustCompile(`\s*\(([^)]*)\)\s*$`)
	reTrailBitrate = regexp.MustCompile(`\s*\d+\s*[kK]\s*$`)
	reTrailDur     = regexp.MustCompile(`\s*\d+\.\d{2}\.\d{2}\s*$`)
	reTrailBrace   = regexp.MustCompile(`\s*\{[^}]*\}\s*$`)
)

// CleanTitle strips bitrate / size / duration tails from a raw title and
// drops a leading "YYYY -" that duplicates an already-extracted year.
// Parenthesised part markers like "(1 of 6)" or "(Part 2)" are preserved.
func CleanTitle(raw string, year *string) string {
	txt := strings.TrimSpace(raw)
	for {
		prev := txt
		txt = reTrailBrace.ReplaceAllString(txt, "")
		txt = reTrailDur.ReplaceAllString(txt, "")
		txt = reTrailBitrate.ReplaceAllString(txt, "")
		if m := reTrailParen.FindStringSubmatch(txt); m != nil {
			inner := strings.TrimSpace(m[1])
			if !reKeepPartOfN.MatchString(inner) && !reKeepPartN.MatchString(inner) {
				txt = strings.TrimSpace(txt[:len(txt)-len(m[0])])
			}
		}
		if txt == prev {
			break
		}
	}
	if year != nil && strings.HasPrefix(txt, *year) {
		after := strings.TrimLeft(txt[len(*year):], " -")
		if after != "" {
			txt = after
		}
	}
	return strings.TrimSpace(txt)
}

// ParseFolder matches a folder name against the pattern table and returns a
// structured record, or nil when no pattern applies. For patterns that only
// capture year+title, the parent folder is parsed once to fill author and
// series.
func ParseFolder(dir string) *Book {
	return parseFolderName(dir, true)
}

func parseFolderName(dir string, allowParent bool) *Book {
	name := filepath.Base(dir)
	for _, fp := range folderPatterns {
		m := fp.re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		groups := map[string]string{}
		for i, gname := range fp.re.SubexpNames() {
			if gname != "" && m[i] != "" {
				groups[gname] = strings.TrimSpace(m[i])
			}
		}
		book := &Book{
			Author:   groups["author"],
			Title:    groups["title"],
			Year:     String(groups["year"]),
			Series:   String(groups["series"]),
			Sequence: String(groups["seq"]),
			Narrator: String(groups["narr"]),
		}
		if fp.parentFills && allowParent {
			if parent := parseFolderName(filepath.Dir(dir), false); parent != nil {
				if book.Author == "" {
					book.Author = parent.Author
				}
				if book.Series == nil {
					book.Series = parent.Series
				}
			}
		}
		if book.Title == "" {
			book.Title = name
		}
		book.Title = CleanTitle(book.Title, book.Year)
		book.Normalize()
		return book
	}
	return nil
}
