// file: internal/runlog/runlog.go
// version: 1.0.0
// guid: 5e7f9a1b-3c4d-5e6f-7a8b-9c0d1e2f3a4b

// Package runlog maintains the per-run durable logs: an append-only action
// log (tag_log.txt) and a review log (review_log.txt) listing items skipped
// for manual follow-up. Both live next to the chosen root so a later audit
// pass can reconcile unresolved items without re-running lookups.
package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	actionLogName = "tag_log.txt"
	reviewLogName = "review_log.txt"
)

// Logger appends timestamped entries to the two run logs. Safe for use from
// a single orchestrating goroutine; the mutex guards against accidental
// concurrent use.
type Logger struct {
	mu         sync.Mutex
	actionPath string
	reviewPath string
}

// New creates a Logger writing next to baseDir. When baseDir names a file,
// its parent directory is used.
func New(baseDir string) *Logger {
	if info, err := os.Stat(baseDir); err == nil && !info.IsDir() {
		baseDir = filepath.Dir(baseDir)
	}
	return &Logger{
		actionPath: filepath.Join(baseDir, actionLogName),
		reviewPath: filepath.Join(baseDir, reviewLogName),
	}
}

// ActionPath returns the location of the action log.
func (l *Logger) ActionPath() string { return l.actionPath }

// ReviewPath returns the location of the review log.
func (l *Logger) ReviewPath() string { return l.reviewPath }

// Log appends one action entry: timestamp, status tag, message.
func (l *Logger) Log(status, message string) {
	l.append(l.actionPath, fmt.Sprintf("%s  %-7s  %s\n", timestamp(), status, message))
}

// Review appends one review entry: timestamp, skip reason, path.
func (l *Logger) Review(path, reason string) {
	l.append(l.reviewPath, fmt.Sprintf("%s  %-9s  %s\n", timestamp(), reason, path))
}

func (l *Logger) append(path, line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return // logging is best-effort, never fatal
	}
	defer f.Close()
	_, _ = f.WriteString(line)
}

func timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}
