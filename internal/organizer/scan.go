// file: internal/organizer/scan.go
// version: 1.0.0
// guid: 7f9a1b3c-5d6e-7f8a-9b0c-1d2e3f4a5b6c

package organizer

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/abtools/abtools/internal/metadata"
)

// HasAudio reports whether dir directly contains at least one audio file.
func HasAudio(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !e.IsDir() && metadata.IsAudioFile(e.Name()) {
			return true
		}
	}
	return false
}

// AudioFiles returns the audio files directly inside dir, sorted by name.
func AudioFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && metadata.IsAudioFile(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files
}

// LeafDirs walks root and returns the atomic book units of a run: every
// directory that directly contains audio, or contains only disc subfolders
// of audio for the flattener to merge. The walk does not descend into a
// unit, so disc folders never surface as units of their own.
func LeafDirs(root string) ([]string, error) {
	var leaves []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if HasAudio(path) || len(discDirs(path)) > 0 {
			leaves = append(leaves, path)
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(leaves)
	return leaves, nil
}
