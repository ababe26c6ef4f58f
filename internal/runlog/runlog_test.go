// file: internal/runlog/runlog_test.go
// version: 1.0.0
// guid: 8c0d2e4f-6a7b-8c9d-0e1f-2a3b4c5d6e7a

package runlog

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reTimestamp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}  `)

func TestLogFormat(t *testing.T) {
	dir := t.TempDir()
	lg := New(dir)

	lg.Log("MOVED", "/in/book -> /lib/book")
	lg.Log("SKIP", "/in/other")

	data, err := os.ReadFile(lg.ActionPath())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Regexp(t, reTimestamp, lines[0])
	assert.Contains(t, lines[0], "MOVED    /in/book -> /lib/book")
	assert.Contains(t, lines[1], "SKIP     /in/other")
}

func TestReviewFormat(t *testing.T) {
	dir := t.TempDir()
	lg := New(dir)

	lg.Review("/in/book", "no_match")

	data, err := os.ReadFile(lg.ReviewPath())
	require.NoError(t, err)
	line := strings.TrimRight(string(data), "\n")
	assert.Regexp(t, reTimestamp, line)
	assert.Contains(t, line, "no_match   /in/book")
}

func TestNewWithFileUsesParent(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "x.mp3")
	require.NoError(t, os.WriteFile(file, []byte("a"), 0644))

	lg := New(file)
	assert.Equal(t, filepath.Join(dir, "tag_log.txt"), lg.ActionPath())
}

func TestAppendAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	New(dir).Log("A", "one")
	New(dir).Log("B", "two")

	data, err := os.ReadFile(filepath.Join(dir, "tag_log.txt"))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}
