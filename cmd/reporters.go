// file: cmd/reporters.go
// version: 1.0.0
// guid: 6b7c8d9e-0f1a-2b3c-4d5e-6f7a8b9c0d1e

package cmd

import (
	"fmt"

	"github.com/abtools/abtools/internal/metadata"
	"github.com/abtools/abtools/internal/organizer"
	"github.com/abtools/abtools/internal/runlog"
)

// consoleReporter prints book lifecycle events for the operator.
func consoleReporter() organizer.Reporter {
	return organizer.ReporterFunc(func(e organizer.Event) {
		switch e.Type {
		case organizer.EventBookStarted:
			fmt.Printf("\n== %s\n", e.Path)
		case organizer.EventMetadataResolved:
			fmt.Printf("   %s  (%s)\n", describeBook(e.Book), e.Source)
		case organizer.EventTagged:
			fmt.Printf("   tagged %s\n", e.Reason)
		case organizer.EventFlattened:
			fmt.Printf("   flattened %s\n", e.Reason)
		case organizer.EventMoved:
			if e.Dry {
				fmt.Printf("   would move -> %s\n", e.Dest)
			} else {
				fmt.Printf("   moved -> %s\n", e.Dest)
			}
		case organizer.EventSkipped:
			fmt.Printf("   skipped (%s)\n", e.Reason)
		case organizer.EventError:
			fmt.Printf("   ERROR: %s\n", e.Reason)
		}
	})
}

// runlogReporter appends actions to the run log and unresolved books to
// the review log.
func runlogReporter(lg *runlog.Logger) organizer.Reporter {
	return organizer.ReporterFunc(func(e organizer.Event) {
		switch e.Type {
		case organizer.EventMoved:
			status := "MOVED"
			if e.Dry {
				status = "DRY"
			}
			lg.Log(status, fmt.Sprintf("%s -> %s", e.Path, e.Dest))
		case organizer.EventTagged:
			lg.Log("TAGGED", fmt.Sprintf("%s (%s)", e.Path, e.Reason))
		case organizer.EventSkipped:
			switch e.Reason {
			case organizer.ReasonExists:
				lg.Log("EXISTS", fmt.Sprintf("%s -> %s", e.Path, e.Dest))
			case organizer.ReasonNoAudio:
				lg.Log("SKIP", e.Path)
			default:
				// Unresolved metadata goes to the review log so the
				// operator can fix the folder and re-run.
				lg.Log("SKIP", e.Path)
				lg.Review(e.Path, e.Reason)
			}
		case organizer.EventError:
			lg.Log("ERROR", fmt.Sprintf("%s: %s", e.Path, e.Reason))
		}
	})
}

// describeBook renders a book one-line, absent fields omitted.
func describeBook(b *metadata.Book) string {
	if b == nil {
		return "(none)"
	}
	s := fmt.Sprintf("%s - %s", b.Author, b.Title)
	if b.Series != nil {
		s += fmt.Sprintf(" [%s", *b.Series)
		if b.Sequence != nil {
			s += " #" + *b.Sequence
		}
		s += "]"
	}
	if b.Year != nil {
		s += fmt.Sprintf(" (%s)", *b.Year)
	}
	return s
}
