// file: internal/organizer/events.go
// version: 1.0.0
// guid: 3f5a7b9c-1d2e-3f4a-5b6c-7d8e9f0a1b2c

package organizer

import "github.com/abtools/abtools/internal/metadata"

// EventType identifies one step in a book's lifecycle.
type EventType string

const (
	EventBookStarted      EventType = "book_started"
	EventMetadataResolved EventType = "metadata_resolved"
	EventTagged           EventType = "tagged"
	EventFlattened        EventType = "flattened"
	EventMoved            EventType = "moved"
	EventSkipped          EventType = "skipped"
	EventError            EventType = "error"
)

// Skip reasons carried by EventSkipped.
const (
	ReasonNoAudio  = "no_audio"
	ReasonNoMatch  = "no_match"
	ReasonUserSkip = "user_skip"
	ReasonExists   = "exists"
)

// Event is one structured progress notification. The orchestration layer
// publishes events instead of printing, so decisions stay testable without
// console coupling.
type Event struct {
	Type   EventType
	Path   string // the book unit (source path)
	Dest   string // destination, for moves
	Reason string // skip reason or error text
	Source string // metadata source name, for resolutions
	Book   *metadata.Book
	Dry    bool // the action was computed but not performed
}

// Reporter receives events. Implementations must be cheap; they run inline
// in the single orchestrating goroutine.
type Reporter interface {
	Publish(Event)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(Event)

// Publish implements Reporter.
func (f ReporterFunc) Publish(e Event) { f(e) }

// MultiReporter fans one event out to several reporters in order.
func MultiReporter(reporters ...Reporter) Reporter {
	return ReporterFunc(func(e Event) {
		for _, r := range reporters {
			if r != nil {
				r.Publish(e)
			}
		}
	})
}

// discardReporter drops every event; used when no reporter is configured.
var discardReporter Reporter = ReporterFunc(func(Event) {})
