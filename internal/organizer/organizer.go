// file: internal/organizer/organizer.go
// version: 2.0.0
// guid: 9f1a3b5c-7d8e-9f0a-1b2c-3d4e5f6a7b8c

// Package organizer walks a source tree for book units, resolves their
// metadata and moves each unit into the library layout
// library/Author/Series?/Vol N - YYYY - Title {Narrator}, merging disc
// subfolders at the destination.
package organizer

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/abtools/abtools/internal/metadata"
)

// Stats are the per-run counters. Mutated once per processed book unit by
// the single orchestrating goroutine, read-only afterwards.
type Stats struct {
	Total     int
	Moved     int
	WouldMove int
	Exists    int
	Skip      int
	NoAudio   int
}

// Lookup resolves a guess online. A nil book with a reason means the guess
// could not be resolved; the reason feeds the review log.
type Lookup interface {
	Resolve(guess metadata.Book) (*metadata.Book, string)
}

// Organizer processes book units sequentially. Moves are intentionally
// serialized: collision checks must observe a consistent filesystem state
// between check and move.
type Organizer struct {
	Library  string
	DryRun   bool
	Copy     bool
	Limits   Limits
	Lookup   Lookup   // optional; nil disables online resolution
	Reporter Reporter // optional

	stats Stats
}

// Stats returns the counters accumulated so far.
func (o *Organizer) Stats() Stats { return o.stats }

// Run discovers every book unit under src and processes them in order.
// Per-book failures are reported and counted, never abort the walk, so an
// interrupted or re-run invocation simply skips already-moved books.
func (o *Organizer) Run(src string) (Stats, error) {
	leaves, err := LeafDirs(src)
	if err != nil {
		return o.stats, fmt.Errorf("scanning %s: %w", src, err)
	}
	for _, leaf := range leaves {
		o.ProcessBook(leaf)
	}
	return o.stats, nil
}

// ProcessBook runs one book unit through the pipeline: gather audio,
// resolve metadata, compute the destination, perform a collision-safe
// move and flatten discs at the destination. A book that cannot move
// keeps its source layout byte for byte.
func (o *Organizer) ProcessBook(dir string) {
	reporter := o.Reporter
	if reporter == nil {
		reporter = discardReporter
	}
	o.stats.Total++
	reporter.Publish(Event{Type: EventBookStarted, Path: dir})

	audio := AudioFiles(dir)
	if len(audio) == 0 {
		// Tracks may still live inside disc subfolders; those merge only
		// after the move succeeds.
		for _, d := range discDirs(dir) {
			audio = append(audio, AudioFiles(d.Path)...)
		}
	}
	if len(audio) == 0 {
		o.stats.NoAudio++
		reporter.Publish(Event{Type: EventSkipped, Path: dir, Reason: ReasonNoAudio})
		return
	}

	book, source := o.resolveMetadata(dir, audio, reporter)
	if book == nil {
		o.stats.Skip++
		reporter.Publish(Event{Type: EventSkipped, Path: dir, Reason: source})
		return
	}
	reporter.Publish(Event{Type: EventMetadataResolved, Path: dir, Book: book, Source: source})

	dest := DestPath(o.Library, book, o.Limits)
	if occupied(dest) {
		o.stats.Exists++
		reporter.Publish(Event{Type: EventSkipped, Path: dir, Dest: dest, Reason: ReasonExists})
		return
	}

	if o.DryRun {
		// Preview the disc merge without renaming anything.
		if err := FlattenDiscs(dir, true, reporter); err != nil {
			log.Printf("[WARN] organizer: flatten %s: %v", dir, err)
		}
		o.stats.WouldMove++
		reporter.Publish(Event{Type: EventMoved, Path: dir, Dest: dest, Dry: true})
		return
	}

	// An existing but empty destination directory is fair game; drop it so
	// the move can take its place.
	_ = os.Remove(dest)

	if err := SafeMove(dir, dest, o.Copy); err != nil {
		if errors.Is(err, ErrDestinationExists) {
			o.stats.Exists++
			reporter.Publish(Event{Type: EventSkipped, Path: dir, Dest: dest, Reason: ReasonExists})
			return
		}
		o.stats.Skip++
		reporter.Publish(Event{Type: EventError, Path: dir, Dest: dest, Reason: err.Error()})
		return
	}
	o.stats.Moved++
	reporter.Publish(Event{Type: EventMoved, Path: dir, Dest: dest})

	// The moved copy is ours to reshape.
	if err := FlattenDiscs(dest, false, reporter); err != nil {
		log.Printf("[WARN] organizer: flatten %s: %v", dest, err)
	}
}

// resolveMetadata applies the resolution precedence: embedded tags, then
// the folder sidecar, then the folder-name pattern table, then the online
// lookup; lower-priority sources only fill fields the higher-priority ones
// left absent. With everything offline exhausted and no lookup configured,
// the cleaned folder name itself becomes the title.
func (o *Organizer) resolveMetadata(dir string, audio []string, reporter Reporter) (*metadata.Book, string) {
	var book *metadata.Book
	source := ""

	for _, f := range audio {
		if tags := metadata.ReadTags(f); tags != nil {
			book, source = tags, "tags"
			break
		}
	}
	if nfo := metadata.ReadNFO(dir); nfo != nil {
		if book == nil {
			source = "sidecar"
		}
		book = metadata.Merge(book, nfo)
	}
	if parsed := metadata.ParseFolder(dir); parsed != nil {
		if book == nil {
			source = "folder"
		}
		book = metadata.Merge(book, parsed)
	}
	if book != nil {
		return book, source
	}

	if o.Lookup != nil {
		guess := metadata.Guess(dir)
		resolved, reason := o.Lookup.Resolve(guess)
		if resolved == nil {
			return nil, reason
		}
		o.tagBook(dir, audio, resolved, reporter)
		return resolved, "lookup"
	}

	// Offline fallback: organize under the cleaned folder name.
	fallback := &metadata.Book{
		Author: metadata.UnknownAuthor,
		Title:  metadata.CleanTitle(filepath.Base(dir), nil),
	}
	fallback.Normalize()
	return fallback, "folder-name"
}

// tagBook writes the resolved metadata into every audio file of the unit
// and exports the sidecars. Per-file failures degrade the book to partial
// success; they never abort the unit.
func (o *Organizer) tagBook(dir string, audio []string, book *metadata.Book, reporter Reporter) {
	if o.DryRun {
		return
	}
	ok := 0
	for i, f := range audio {
		if err := metadata.WriteTags(f, book, i+1, len(audio)); err != nil {
			log.Printf("[WARN] organizer: tag %s: %v", f, err)
			continue
		}
		ok++
	}
	reporter.Publish(Event{Type: EventTagged, Path: dir, Book: book,
		Reason: fmt.Sprintf("%d/%d files", ok, len(audio))})
	if ok == len(audio) {
		if err := metadata.ExportSidecar(dir, book); err != nil {
			log.Printf("[WARN] organizer: sidecar %s: %v", dir, err)
		}
	}
}

// occupied reports whether dest blocks a move: an existing file always
// does, an existing directory only when non-empty.
func occupied(dest string) bool {
	info, err := os.Stat(dest)
	if err != nil {
		return false
	}
	if !info.IsDir() {
		return true
	}
	entries, err := os.ReadDir(dest)
	if err != nil {
		return true
	}
	return len(entries) > 0
}
