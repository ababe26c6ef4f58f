// file: internal/organizer/flatten.go
// version: 1.3.0
// guid: 5b7c9d1e-3f4a-5b6c-7d8e-9f0a1b2c3d4e

package organizer

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Disc subfolder shapes: "Disc 01", "disk-02", "CD03", "Part 4", optionally
// bracketed, and "(1 of 5)" / "(3/5)" part markers.
// The token must sit on a word boundary so names like "The CD40 Protocol"
// or a plain "(1965)" year are never read as disc markers.
var (
	reDiscToken = regexp.MustCompile(`(?i)[\(\[\{]?\b(?:disc|disk|cd|part)[\s_\-]*(\d{1,3})\b[\)\]\}]?`)
	rePartOfN   = regexp.MustCompile(`(?i)\((\d{1,3})\s*(?:of|/)\s*\d{1,3}\)`)
)

// discDir is one disc/part subdirectory with its extracted number.
type discDir struct {
	Num  int
	Path string
}

// discNumber extracts the disc number from a directory name, or -1.
func discNumber(name string) int {
	if m := reDiscToken.FindStringSubmatch(name); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n
	}
	if m := rePartOfN.FindStringSubmatch(name); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n
	}
	return -1
}

// discDirs returns the disc subdirectories of bookDir sorted by disc number
// ascending. Disc number strictly determines final track sequence.
func discDirs(bookDir string) []discDir {
	entries, err := os.ReadDir(bookDir)
	if err != nil {
		return nil
	}
	var discs []discDir
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if n := discNumber(e.Name()); n >= 0 {
			discs = append(discs, discDir{Num: n, Path: filepath.Join(bookDir, e.Name())})
		}
	}
	sort.Slice(discs, func(i, j int) bool { return discs[i].Num < discs[j].Num })
	return discs
}

// FlattenDiscs merges the disc/part subfolders of one book into the book
// directory. When every disc holds exactly one audio file, files become
// "Part N" keyed by disc number; otherwise all tracks are concatenated to
// "Track I" in disc-then-lexical order. Zero padding matches the group's
// digit width. Emptied disc directories are removed best-effort. A no-op
// when dry is set (the plan is still reported).
func FlattenDiscs(bookDir string, dry bool, reporter Reporter) error {
	if reporter == nil {
		reporter = discardReporter
	}
	discs := discDirs(bookDir)
	if len(discs) == 0 {
		return nil
	}

	type track struct {
		discNum int
		path    string
	}
	var tracks []track
	singleFile := true
	for _, d := range discs {
		discTracks := AudioFiles(d.Path)
		if len(discTracks) != 1 {
			singleFile = false
		}
		for _, t := range discTracks {
			tracks = append(tracks, track{discNum: d.Num, path: t})
		}
	}
	if len(tracks) == 0 {
		return nil
	}

	rename := func(src, dst string) error {
		if src == dst {
			return nil
		}
		if dry {
			return nil
		}
		return SafeMove(src, dst, false)
	}

	if singleFile {
		digits := len(strconv.Itoa(len(discs)))
		for _, t := range tracks {
			dst := filepath.Join(bookDir, fmt.Sprintf("Part %0*d%s", digits, t.discNum, strings.ToLower(filepath.Ext(t.path))))
			if err := rename(t.path, dst); err != nil {
				return err
			}
		}
	} else {
		digits := len(strconv.Itoa(len(tracks)))
		for i, t := range tracks {
			dst := filepath.Join(bookDir, fmt.Sprintf("Track %0*d%s", digits, i+1, strings.ToLower(filepath.Ext(t.path))))
			if err := rename(t.path, dst); err != nil {
				return err
			}
		}
	}

	if !dry {
		for _, d := range discs {
			_ = os.Remove(d.Path) // fails when stray files remain; non-fatal
		}
	}
	reporter.Publish(Event{Type: EventFlattened, Path: bookDir, Dry: dry,
		Reason: fmt.Sprintf("%d discs, %d tracks", len(discs), len(tracks))})
	return nil
}

// DiscSet is a group of sibling disc directories sharing one base name,
// e.g. "Book Name (Disc 01)" and "Book Name (Disc 02)".
type DiscSet struct {
	Base  string
	Discs []discDir
}

// DiscSets groups the disc-patterned subdirectories of folder by their
// common base name, each group sorted by disc number. A single disc still
// forms a set.
func DiscSets(folder string) []DiscSet {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil
	}
	groups := map[string][]discDir{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		loc := reDiscToken.FindStringIndex(e.Name())
		if loc == nil {
			continue
		}
		n := discNumber(e.Name())
		base := strings.TrimRight(strings.TrimSpace(e.Name()[:loc[0]]), " -_")
		groups[base] = append(groups[base], discDir{Num: n, Path: filepath.Join(folder, e.Name())})
	}

	var sets []DiscSet
	for base, discs := range groups {
		sort.Slice(discs, func(i, j int) bool { return discs[i].Num < discs[j].Num })
		sets = append(sets, DiscSet{Base: base, Discs: discs})
	}
	sort.Slice(sets, func(i, j int) bool { return sets[i].Base < sets[j].Base })
	return sets
}

// FlattenSet merges one disc set into parent/Base, renaming all tracks to a
// single "Track NNN" sequence in disc-then-lexical order. Returns the number
// of tracks that were (or would be) moved.
func FlattenSet(parent string, set DiscSet, dry bool) (int, error) {
	var tracks []string
	for _, d := range set.Discs {
		tracks = append(tracks, AudioFiles(d.Path)...)
	}
	if len(tracks) == 0 {
		return 0, nil
	}

	bookDir := filepath.Join(parent, set.Base)
	digits := len(strconv.Itoa(len(tracks)))
	for i, src := range tracks {
		dst := filepath.Join(bookDir, fmt.Sprintf("Track %0*d%s", digits, i+1, strings.ToLower(filepath.Ext(src))))
		if dry {
			continue
		}
		if err := SafeMove(src, dst, false); err != nil {
			return i, err
		}
	}
	if !dry {
		for _, d := range set.Discs {
			_ = os.Remove(d.Path)
		}
	}
	return len(tracks), nil
}
