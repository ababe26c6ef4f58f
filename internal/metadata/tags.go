// file: internal/metadata/tags.go
// version: 1.3.0
// guid: 4d6e8f0a-2b3c-4d5e-6f7a-8b9c0d1e2f3a

package metadata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// audioExtensions are the container types we read and write.
var audioExtensions = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".m4b":  true,
	".flac": true,
	".ogg":  true,
	".opus": true,
}

// isAudioExt reports whether ext (including the dot) is a supported
// audio container extension.
func isAudioExt(ext string) bool {
	return audioExtensions[strings.ToLower(ext)]
}

// IsAudioFile reports whether path names a supported audio file.
func IsAudioFile(path string) bool {
	return isAudioExt(filepath.Ext(path))
}

// ReadTags reads embedded metadata from one audio file. It returns nil when
// the container has no parseable tags or when both author and title are
// missing; partial junk tags are not worth trusting.
func ReadTags(path string) *Book {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil
	}

	author := m.Artist()
	if author == "" {
		author = m.AlbumArtist()
	}
	title := m.Album()
	if author == "" && title == "" {
		return nil
	}

	book := &Book{
		Author:   author,
		Title:    title,
		Series:   rawTag(m, "series", "SERIES", "mvnm", "MVNM"),
		Sequence: rawTag(m, "series-part", "SERIESPART", "mvin", "MVIN"),
		Narrator: String(m.Composer()),
	}
	if book.Title == "" {
		base := filepath.Base(path)
		book.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if y := m.Year(); y > 0 {
		book.Year = String(fmt.Sprintf("%04d", y))
	}
	// "1/3" style sequence values keep only the position.
	if book.Sequence != nil {
		if idx := strings.Index(*book.Sequence, "/"); idx >= 0 {
			book.Sequence = String((*book.Sequence)[:idx])
		}
	}
	book.Normalize()
	return book
}

// rawTag looks up the first matching key in the container's raw tag map and
// returns it as an optional string.
func rawTag(m tag.Metadata, keys ...string) *string {
	raw := m.Raw()
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return String(s)
			}
		}
	}
	return nil
}
