// file: internal/dupes/dupes.go
// version: 1.1.0
// guid: 1b2c4d6e-8f9a-0b1c-2d3e-4f5a6b7c8d9e

// Package dupes finds duplicate audio files: exact duplicates by content
// hash and probable duplicates by fuzzy basename similarity. Findings are
// written to duplicate_log.txt under the scanned root.
package dupes

import (
	"crypto/sha1"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
	"github.com/schollz/progressbar/v3"

	"github.com/abtools/abtools/internal/metadata"
)

const logName = "duplicate_log.txt"

// NearThreshold is the Jaro-Winkler similarity above which two basenames
// are flagged as probable duplicates.
const NearThreshold = 0.92

// Pair is one probable-duplicate finding.
type Pair struct {
	A, B       string
	Similarity float32
}

// Report holds the findings of one scan.
type Report struct {
	// Exact maps a content digest to the files sharing it; only digests
	// with two or more files are kept.
	Exact map[string][]string
	// Near lists distinct files whose names are suspiciously similar.
	Near []Pair
}

// Empty reports whether the scan found nothing.
func (r *Report) Empty() bool {
	return len(r.Exact) == 0 && len(r.Near) == 0
}

// Scan hashes every audio file under root and compares basenames. Files
// that cannot be read are skipped with a note on stderr, matching the
// rest of the tooling's never-abort posture.
func Scan(root string, showProgress bool) (*Report, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && metadata.IsAudioFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	sort.Strings(files)

	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.Default(int64(len(files)), "hashing")
	}

	report := &Report{Exact: map[string][]string{}}
	byDigest := map[string][]string{}
	for _, f := range files {
		digest, err := hashFile(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not read %s: %v\n", f, err)
		} else {
			byDigest[digest] = append(byDigest[digest], f)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	for digest, paths := range byDigest {
		if len(paths) > 1 {
			report.Exact[digest] = paths
		}
	}

	report.Near = nearMatches(files)
	return report, nil
}

// nearMatches compares normalized basenames pairwise and keeps the pairs
// above the similarity threshold. Quadratic, but bounded by the number of
// audio files an operator points this at.
func nearMatches(files []string) []Pair {
	names := make([]string, len(files))
	for i, f := range files {
		base := filepath.Base(f)
		names[i] = strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	}
	var out []Pair
	for i := 0; i < len(files); i++ {
		for j := i + 1; j < len(files); j++ {
			if names[i] == names[j] {
				continue // same name in different folders is expected
			}
			sim, err := edlib.StringsSimilarity(names[i], names[j], edlib.JaroWinkler)
			if err != nil || sim < NearThreshold {
				continue
			}
			out = append(out, Pair{A: files[i], B: files[j], Similarity: sim})
		}
	}
	return out
}

// WriteLog writes the findings to duplicate_log.txt under root and returns
// the log path.
func (r *Report) WriteLog(root string) (string, error) {
	logPath := filepath.Join(root, logName)
	f, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", logPath, err)
	}
	defer f.Close()

	digests := make([]string, 0, len(r.Exact))
	for d := range r.Exact {
		digests = append(digests, d)
	}
	sort.Strings(digests)
	for _, d := range digests {
		fmt.Fprintf(f, "SHA1 %s\n", d)
		for _, p := range r.Exact[d] {
			fmt.Fprintf(f, "  %s\n", p)
		}
		fmt.Fprintln(f)
	}
	for _, p := range r.Near {
		fmt.Fprintf(f, "NEAR %.2f\n  %s\n  %s\n\n", p.Similarity, p.A, p.B)
	}
	return logPath, nil
}

// hashFile computes the SHA-1 digest of one file.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
