// file: internal/metadata/sidecar_test.go
// version: 1.0.0
// guid: 6f7a8b9c-0d1e-2f3a-4b5c-6d7e8f9a0b1c

package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportSidecarAndReadNFO(t *testing.T) {
	dir := t.TempDir()
	book := &Book{
		Author:   "Harry Turtledove",
		Title:    "Jaws of Darkness",
		Year:     String("2003"),
		Series:   String("Southern Victory"),
		Sequence: String("5"),
		Narrator: String("George Guidall"),
	}

	require.NoError(t, ExportSidecar(dir, book))

	_, err := os.Stat(filepath.Join(dir, "metadata.json"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "book.nfo"))
	require.NoError(t, err)

	got := ReadNFO(dir)
	require.NotNil(t, got)
	assert.Equal(t, book.Author, got.Author)
	assert.Equal(t, book.Title, got.Title)
	assert.Equal(t, "2003", Value(got.Year))
	assert.Equal(t, "Southern Victory", Value(got.Series))
	assert.Equal(t, "5", Value(got.Sequence))
	assert.Equal(t, "George Guidall", Value(got.Narrator))
}

func TestReadNFOMissing(t *testing.T) {
	assert.Nil(t, ReadNFO(t.TempDir()))
}

func TestReadNFOGarbage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "book.nfo"), []byte("not xml"), 0644))
	assert.Nil(t, ReadNFO(dir))
}

func TestReadNFOEmptyRecord(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "book.nfo"),
		[]byte("<audiobook></audiobook>"), 0644))
	assert.Nil(t, ReadNFO(dir))
}
