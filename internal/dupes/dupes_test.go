// file: internal/dupes/dupes_test.go
// version: 1.0.0
// guid: 0e2f4a6b-8c9d-0e1f-2a3b-4c5d6e7f8a9c

package dupes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestScanFindsExactDuplicates(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a", "book.mp3"), "same bytes")
	write(t, filepath.Join(root, "b", "copy of it.mp3"), "same bytes")
	write(t, filepath.Join(root, "c", "different.mp3"), "other bytes")

	report, err := Scan(root, false)
	require.NoError(t, err)

	require.Len(t, report.Exact, 1)
	for _, paths := range report.Exact {
		assert.Len(t, paths, 2)
	}
}

func TestScanFindsNearNames(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "The Hobbit Chapter 01.mp3"), "one")
	write(t, filepath.Join(root, "The Hobbit Chapter 02.mp3"), "two")
	write(t, filepath.Join(root, "Completely Unrelated.mp3"), "three")

	report, err := Scan(root, false)
	require.NoError(t, err)

	require.Len(t, report.Near, 1)
	assert.Contains(t, report.Near[0].A, "Chapter 01")
	assert.Contains(t, report.Near[0].B, "Chapter 02")
	assert.GreaterOrEqual(t, report.Near[0].Similarity, float32(NearThreshold))
}

func TestScanIgnoresSameNameDifferentFolders(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a", "Track 01.mp3"), "one")
	write(t, filepath.Join(root, "b", "Track 01.mp3"), "two")

	report, err := Scan(root, false)
	require.NoError(t, err)
	assert.Empty(t, report.Near)
	assert.Empty(t, report.Exact)
}

func TestScanSkipsNonAudio(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "cover.jpg"), "x")
	write(t, filepath.Join(root, "copy.jpg"), "x")

	report, err := Scan(root, false)
	require.NoError(t, err)
	assert.True(t, report.Empty())
}

func TestWriteLog(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "one.mp3"), "same")
	write(t, filepath.Join(root, "two.mp3"), "same")

	report, err := Scan(root, false)
	require.NoError(t, err)

	logPath, err := report.WriteLog(root)
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "SHA1 "))
	assert.Contains(t, text, "one.mp3")
	assert.Contains(t, text, "two.mp3")
}
