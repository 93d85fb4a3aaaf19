// Package audit maintains the long-lived, append-only audit log. Every
// console line of every run lands here, timestamped; nothing is ever
// rewritten. Concurrent invocations interleave safely because each written
// line is self-contained.
package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Log appends timestamped lines to a single file.
type Log struct {
	f *os.File
}

// Open creates parent directories as needed and opens the log for append.
// The file is owner-only: the audit log is itself a sensitive file.
func Open(path string) (*Log, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}
	return &Log{f: f}, nil
}

// Append writes one timestamped line.
func (l *Log) Append(line string) error {
	_, err := fmt.Fprintf(l.f, "%s %s\n", time.Now().UTC().Format(time.RFC3339), line)
	return err
}

// AppendRaw writes lines verbatim, used for OS audit events that carry
// their own timestamps.
func (l *Log) AppendRaw(lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(l.f, line); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes and closes the underlying file.
func (l *Log) Close() error {
	return l.f.Close()
}
