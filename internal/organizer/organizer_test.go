// file: internal/organizer/organizer_test.go
// version: 1.0.0
// guid: 6c8d0e2f-4a5b-6c7d-8e9f-0a1b2c3d4e5f

package organizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abtools/abtools/internal/metadata"
)

// recordingReporter keeps every published event for assertions.
type recordingReporter struct {
	events []Event
}

func (r *recordingReporter) Publish(e Event) { r.events = append(r.events, e) }

func (r *recordingReporter) ofType(tp EventType) []Event {
	var out []Event
	for _, e := range r.events {
		if e.Type == tp {
			out = append(out, e)
		}
	}
	return out
}

// fakeLookup returns a canned resolution and records whether it was asked.
type fakeLookup struct {
	book   *metadata.Book
	reason string
	called bool
}

func (f *fakeLookup) Resolve(guess metadata.Book) (*metadata.Book, string) {
	f.called = true
	return f.book, f.reason
}

func TestRunDryRunReportsWithoutMutating(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "in")
	book := filepath.Join(src, "Frank Herbert - Dune (1965)")
	writeAudio(t, filepath.Join(book, "a.mp3"))

	rec := &recordingReporter{}
	org := &Organizer{
		Library:  filepath.Join(tmp, "lib"),
		DryRun:   true,
		Limits:   DefaultLimits(),
		Reporter: rec,
	}
	stats, err := org.Run(src)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.WouldMove)
	assert.Equal(t, 0, stats.Moved)
	assert.FileExists(t, filepath.Join(book, "a.mp3"))
	assert.NoDirExists(t, filepath.Join(tmp, "lib"))

	moved := rec.ofType(EventMoved)
	require.Len(t, moved, 1)
	assert.True(t, moved[0].Dry)
	assert.Equal(t, filepath.Join(tmp, "lib", "Frank Herbert", "1965 - Dune"), moved[0].Dest)
}

func TestRunMovesBook(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "in")
	book := filepath.Join(src, "Frank Herbert - Dune (1965)")
	writeAudio(t, filepath.Join(book, "a.mp3"))

	org := &Organizer{Library: filepath.Join(tmp, "lib"), Limits: DefaultLimits()}
	stats, err := org.Run(src)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Moved)
	assert.FileExists(t, filepath.Join(tmp, "lib", "Frank Herbert", "1965 - Dune", "a.mp3"))
	assert.NoDirExists(t, book)
}

func TestRunSecondPassIsIdempotent(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "in")
	writeAudio(t, filepath.Join(src, "Frank Herbert - Dune (1965)", "a.mp3"))

	org := &Organizer{Library: filepath.Join(tmp, "lib"), Limits: DefaultLimits()}
	_, err := org.Run(src)
	require.NoError(t, err)

	second := &Organizer{Library: filepath.Join(tmp, "lib"), Limits: DefaultLimits()}
	stats, err := second.Run(src)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.Moved)
}

func TestProcessBookSkipsOccupiedDestination(t *testing.T) {
	tmp := t.TempDir()
	book := filepath.Join(tmp, "in", "Frank Herbert - Dune (1965)")
	writeAudio(t, filepath.Join(book, "a.mp3"))

	dest := filepath.Join(tmp, "lib", "Frank Herbert", "1965 - Dune")
	writeAudio(t, filepath.Join(dest, "existing.mp3"))

	rec := &recordingReporter{}
	org := &Organizer{Library: filepath.Join(tmp, "lib"), Limits: DefaultLimits(), Reporter: rec}
	org.ProcessBook(book)

	assert.Equal(t, 1, org.Stats().Exists)
	assert.FileExists(t, filepath.Join(book, "a.mp3"), "source must be untouched")
	assert.FileExists(t, filepath.Join(dest, "existing.mp3"))

	skipped := rec.ofType(EventSkipped)
	require.Len(t, skipped, 1)
	assert.Equal(t, ReasonExists, skipped[0].Reason)
}

func TestProcessBookEmptyDestinationDirIsUsed(t *testing.T) {
	tmp := t.TempDir()
	book := filepath.Join(tmp, "in", "Frank Herbert - Dune (1965)")
	writeAudio(t, filepath.Join(book, "a.mp3"))

	dest := filepath.Join(tmp, "lib", "Frank Herbert", "1965 - Dune")
	require.NoError(t, os.MkdirAll(dest, 0755))

	org := &Organizer{Library: filepath.Join(tmp, "lib"), Limits: DefaultLimits()}
	org.ProcessBook(book)

	assert.Equal(t, 1, org.Stats().Moved)
	assert.FileExists(t, filepath.Join(dest, "a.mp3"))
}

func TestProcessBookNoAudio(t *testing.T) {
	tmp := t.TempDir()
	book := filepath.Join(tmp, "notabook")
	require.NoError(t, os.MkdirAll(book, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(book, "cover.jpg"), []byte("x"), 0644))

	org := &Organizer{Library: filepath.Join(tmp, "lib"), Limits: DefaultLimits()}
	org.ProcessBook(book)

	assert.Equal(t, 1, org.Stats().NoAudio)
	assert.Equal(t, 0, org.Stats().Moved)
}

func TestProcessBookFlattensDiscsAtDestination(t *testing.T) {
	tmp := t.TempDir()
	book := filepath.Join(tmp, "in", "Frank Herbert - Dune (1965)")
	writeAudio(t, filepath.Join(book, "Disc 1", "a.mp3"))
	writeAudio(t, filepath.Join(book, "Disc 2", "b.mp3"))

	org := &Organizer{Library: filepath.Join(tmp, "lib"), Limits: DefaultLimits()}
	org.ProcessBook(book)

	dest := filepath.Join(tmp, "lib", "Frank Herbert", "1965 - Dune")
	assert.Equal(t, 1, org.Stats().Moved)
	assert.FileExists(t, filepath.Join(dest, "Part 1.mp3"))
	assert.FileExists(t, filepath.Join(dest, "Part 2.mp3"))
	assert.NoDirExists(t, book)
}

func TestProcessBookOccupiedDestinationKeepsSourceDiscLayout(t *testing.T) {
	tmp := t.TempDir()
	book := filepath.Join(tmp, "in", "Frank Herbert - Dune (1965)")
	writeAudio(t, filepath.Join(book, "Disc 1", "a.mp3"))
	writeAudio(t, filepath.Join(book, "Disc 2", "b.mp3"))

	dest := filepath.Join(tmp, "lib", "Frank Herbert", "1965 - Dune")
	writeAudio(t, filepath.Join(dest, "existing.mp3"))

	org := &Organizer{Library: filepath.Join(tmp, "lib"), Limits: DefaultLimits()}
	org.ProcessBook(book)

	assert.Equal(t, 1, org.Stats().Exists)
	assert.FileExists(t, filepath.Join(book, "Disc 1", "a.mp3"), "skipped source must keep its layout")
	assert.FileExists(t, filepath.Join(book, "Disc 2", "b.mp3"))
	assert.NoFileExists(t, filepath.Join(book, "Part 1.mp3"))
}

func TestProcessBookCopyKeepsSourceDiscLayout(t *testing.T) {
	tmp := t.TempDir()
	book := filepath.Join(tmp, "in", "Frank Herbert - Dune (1965)")
	writeAudio(t, filepath.Join(book, "Disc 1", "a.mp3"))
	writeAudio(t, filepath.Join(book, "Disc 2", "b.mp3"))

	org := &Organizer{Library: filepath.Join(tmp, "lib"), Copy: true, Limits: DefaultLimits()}
	org.ProcessBook(book)

	dest := filepath.Join(tmp, "lib", "Frank Herbert", "1965 - Dune")
	assert.Equal(t, 1, org.Stats().Moved)
	assert.FileExists(t, filepath.Join(dest, "Part 1.mp3"))
	assert.FileExists(t, filepath.Join(book, "Disc 1", "a.mp3"), "copied source must keep its layout")
}

func TestResolveMetadataSidecarBeatsFolderName(t *testing.T) {
	tmp := t.TempDir()
	book := filepath.Join(tmp, "in", "Frank Herbert - Dune (1965)")
	writeAudio(t, filepath.Join(book, "a.mp3"))
	require.NoError(t, metadata.ExportSidecar(book, &metadata.Book{
		Author: "Frank Herbert",
		Title:  "Dune Messiah",
	}))

	rec := &recordingReporter{}
	org := &Organizer{Library: filepath.Join(tmp, "lib"), DryRun: true, Limits: DefaultLimits(), Reporter: rec}
	org.ProcessBook(book)

	resolved := rec.ofType(EventMetadataResolved)
	require.Len(t, resolved, 1)
	assert.Equal(t, "sidecar", resolved[0].Source)
	assert.Equal(t, "Dune Messiah", resolved[0].Book.Title)
	// the folder parse still fills the year gap
	assert.Equal(t, "1965", metadata.Value(resolved[0].Book.Year))
}

func TestResolveMetadataLookupOnlyWhenOfflineFails(t *testing.T) {
	tmp := t.TempDir()
	book := filepath.Join(tmp, "in", "Frank Herbert - Dune (1965)")
	writeAudio(t, filepath.Join(book, "a.mp3"))

	lk := &fakeLookup{}
	org := &Organizer{Library: filepath.Join(tmp, "lib"), DryRun: true, Limits: DefaultLimits(), Lookup: lk}
	org.ProcessBook(book)

	assert.False(t, lk.called, "folder parse succeeded, lookup must stay idle")
}

func TestResolveMetadataLookupForOpaqueFolder(t *testing.T) {
	tmp := t.TempDir()
	book := filepath.Join(tmp, "in", "somebook")
	writeAudio(t, filepath.Join(book, "a.mp3"))

	lk := &fakeLookup{book: &metadata.Book{Author: "Frank Herbert", Title: "Dune"}}
	rec := &recordingReporter{}
	org := &Organizer{Library: filepath.Join(tmp, "lib"), DryRun: true, Limits: DefaultLimits(), Lookup: lk, Reporter: rec}
	org.ProcessBook(book)

	assert.True(t, lk.called)
	resolved := rec.ofType(EventMetadataResolved)
	require.Len(t, resolved, 1)
	assert.Equal(t, "lookup", resolved[0].Source)
}

func TestResolveMetadataLookupSkipCounts(t *testing.T) {
	tmp := t.TempDir()
	book := filepath.Join(tmp, "in", "somebook")
	writeAudio(t, filepath.Join(book, "a.mp3"))

	lk := &fakeLookup{reason: ReasonUserSkip}
	rec := &recordingReporter{}
	org := &Organizer{Library: filepath.Join(tmp, "lib"), Limits: DefaultLimits(), Lookup: lk, Reporter: rec}
	org.ProcessBook(book)

	assert.Equal(t, 1, org.Stats().Skip)
	skipped := rec.ofType(EventSkipped)
	require.Len(t, skipped, 1)
	assert.Equal(t, ReasonUserSkip, skipped[0].Reason)
}

func TestResolveMetadataOfflineFallbackWithoutLookup(t *testing.T) {
	tmp := t.TempDir()
	book := filepath.Join(tmp, "in", "somebook 64k")
	writeAudio(t, filepath.Join(book, "a.mp3"))

	org := &Organizer{Library: filepath.Join(tmp, "lib"), Limits: DefaultLimits()}
	org.ProcessBook(book)

	assert.Equal(t, 1, org.Stats().Moved)
	assert.FileExists(t, filepath.Join(tmp, "lib", metadata.UnknownAuthor, "somebook", "a.mp3"))
}
