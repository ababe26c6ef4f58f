// file: internal/metadata/sidecar.go
// version: 1.0.0
// guid: 8a0b2c4d-5e6f-7a8b-9c0d-1e2f3a4b5c6d

package metadata

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
)

const (
	sidecarJSONName = "metadata.json"
	sidecarNFOName  = "book.nfo"
)

// nfoBook is the on-disk shape of the book.nfo sidecar. Element names match
// the tag vocabulary used by the export, so a round trip is lossless.
type nfoBook struct {
	XMLName  xml.Name `xml:"audiobook"`
	Author   string   `xml:"author,omitempty"`
	Title    string   `xml:"title,omitempty"`
	Year     string   `xml:"year,omitempty"`
	Series   string   `xml:"series,omitempty"`
	Sequence string   `xml:"seq,omitempty"`
	Narrator string   `xml:"narr,omitempty"`
}

type jsonBook struct {
	Author   string  `json:"author"`
	Title    string  `json:"title"`
	Year     *string `json:"year,omitempty"`
	Series   *string `json:"series,omitempty"`
	Sequence *string `json:"sequence,omitempty"`
	Narrator *string `json:"narrator,omitempty"`
}

// ExportSidecar writes metadata.json and book.nfo into dir so that later
// runs (and other tools) can reuse the resolved metadata without re-running
// lookups.
func ExportSidecar(dir string, book *Book) error {
	jb := jsonBook{
		Author:   book.Author,
		Title:    book.Title,
		Year:     book.Year,
		Series:   book.Series,
		Sequence: book.Sequence,
		Narrator: book.Narrator,
	}
	data, err := json.MarshalIndent(jb, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", sidecarJSONName, err)
	}
	if err := os.WriteFile(filepath.Join(dir, sidecarJSONName), append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", sidecarJSONName, err)
	}

	nb := nfoBook{
		Author:   book.Author,
		Title:    book.Title,
		Year:     Value(book.Year),
		Series:   Value(book.Series),
		Sequence: Value(book.Sequence),
		Narrator: Value(book.Narrator),
	}
	xdata, err := xml.MarshalIndent(nb, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", sidecarNFOName, err)
	}
	xdata = append([]byte(xml.Header), xdata...)
	if err := os.WriteFile(filepath.Join(dir, sidecarNFOName), append(xdata, '\n'), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", sidecarNFOName, err)
	}
	return nil
}

// ReadNFO loads a book.nfo sidecar from dir. It returns nil when the file is
// absent, unparseable, or carries neither author nor title.
func ReadNFO(dir string) *Book {
	data, err := os.ReadFile(filepath.Join(dir, sidecarNFOName))
	if err != nil {
		return nil
	}
	var nb nfoBook
	if err := xml.Unmarshal(data, &nb); err != nil {
		return nil
	}
	if nb.Author == "" && nb.Title == "" {
		return nil
	}
	book := &Book{
		Author:   nb.Author,
		Title:    nb.Title,
		Year:     String(nb.Year),
		Series:   String(nb.Series),
		Sequence: String(nb.Sequence),
		Narrator: String(nb.Narrator),
	}
	if book.Title == "" {
		book.Title = filepath.Base(dir)
	}
	book.Normalize()
	return book
}
