// file: internal/metadata/write.go
// version: 1.1.0
// guid: 6e8f0a1b-3c4d-5e6f-7a8b-9c0d1e2f3a4b

package metadata

import (
	"fmt"

	taglib "go.senan.xyz/taglib"
)

// WriteTags replaces the embedded tags of one audio file with the fields of
// book. The album is set to the book title so that single-file and multi-file
// rips group identically. trackIndex/trackTotal of 0 omit the track frame.
func WriteTags(path string, book *Book, trackIndex, trackTotal int) error {
	tags := map[string][]string{
		taglib.Title:       {book.Title},
		taglib.Album:       {book.Title},
		taglib.Artist:      {book.Author},
		taglib.AlbumArtist: {book.Author},
	}
	if book.Year != nil {
		tags[taglib.Date] = []string{*book.Year}
	}
	if book.Series != nil {
		tags["SERIES"] = []string{*book.Series}
	}
	if book.Sequence != nil {
		tags["SERIESPART"] = []string{*book.Sequence}
	}
	if book.Narrator != nil {
		tags[taglib.Composer] = []string{*book.Narrator}
	}
	if trackIndex > 0 {
		if trackTotal <= 0 {
			trackTotal = trackIndex
		}
		tags[taglib.TrackNumber] = []string{fmt.Sprintf("%d/%d", trackIndex, trackTotal)}
	}
	if err := taglib.WriteTags(path, tags, taglib.Clear); err != nil {
		return fmt.Errorf("writing tags to %s: %w", path, err)
	}
	return nil
}

// StripTags removes every embedded tag from one audio file.
func StripTags(path string) error {
	if err := taglib.WriteTags(path, map[string][]string{}, taglib.Clear); err != nil {
		return fmt.Errorf("stripping tags from %s: %w", path, err)
	}
	return nil
}
