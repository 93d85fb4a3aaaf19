// Package baseline loads the trust baseline: path:digest:timestamp records
// captured at a point believed uncompromised. The monitor never writes the
// baseline; generation happens out-of-band.
package baseline

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrBaselineUnreadable is returned when the baseline file cannot be read.
// Callers must treat this as fatal: with no trust data every other check is
// meaningless, so the run aborts before any checker executes.
var ErrBaselineUnreadable = errors.New("baseline unreadable")

// fieldsPerLine is fixed by the colon-delimited format. A relative path
// containing a colon cannot be represented; such a line fails the field
// count and is reported as malformed, never reinterpreted.
const fieldsPerLine = 3

var digestRegex = regexp.MustCompile(`^[0-9a-f]{64}$`)

// Store reads the baseline from a fixed path.
type Store struct {
	Path string
}

// NewStore creates a store for the given baseline file.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load parses the baseline file. Blank lines and '#' comments are skipped.
// Lines that do not parse are returned as Malformed rather than aborting;
// only an unreadable file is fatal, wrapped in ErrBaselineUnreadable.
func (s *Store) Load() ([]Entry, []Malformed, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrBaselineUnreadable, s.Path, err)
	}
	defer f.Close()

	var (
		entries   []Entry
		malformed []Malformed
		seen      = make(map[string]bool)
	)

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, reason := parseLine(line)
		if reason != "" {
			malformed = append(malformed, Malformed{Line: lineNo, Text: line, Reason: reason})
			continue
		}
		if seen[entry.RelPath] {
			malformed = append(malformed, Malformed{Line: lineNo, Text: line, Reason: "duplicate path"})
			continue
		}
		seen[entry.RelPath] = true
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrBaselineUnreadable, s.Path, err)
	}

	return entries, malformed, nil
}

// parseLine splits one record into its three fields. The timestamp field is
// Unix seconds; anything else in that position makes the line malformed.
func parseLine(line string) (Entry, string) {
	fields := strings.Split(line, ":")
	if len(fields) != fieldsPerLine {
		return Entry{}, fmt.Sprintf("expected %d colon-delimited fields, got %d", fieldsPerLine, len(fields))
	}

	relPath := fields[0]
	if relPath == "" {
		return Entry{}, "empty path"
	}

	digest := strings.ToLower(fields[1])
	if !digestRegex.MatchString(digest) {
		return Entry{}, "digest is not 64 hex characters"
	}

	secs, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return Entry{}, "timestamp is not unix seconds"
	}

	return Entry{
		RelPath:    relPath,
		Digest:     digest,
		RecordedAt: time.Unix(secs, 0).UTC(),
	}, ""
}
