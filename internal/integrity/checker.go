// Package integrity diffs current file contents against the trust baseline.
package integrity

import (
	"fmt"
	"path/filepath"

	"botguard/internal/baseline"
	"botguard/internal/fsutil"
	"botguard/internal/issue"
)

// Check verifies every baseline entry against the file on disk.
// A file that cannot be hashed yields FileMissing: the checker cannot
// distinguish absent from unreadable, and does not try to. A digest that
// differs yields IntegrityViolation carrying both digests. Results follow
// baseline order, so repeated runs over an unchanged tree report
// identically.
func Check(entries []baseline.Entry, root string, hasher fsutil.FileHasher) []issue.Issue {
	var issues []issue.Issue

	for _, e := range entries {
		path := filepath.Join(root, e.RelPath)

		actual, err := hasher.HashFile(path)
		if err != nil {
			issues = append(issues, issue.New(
				issue.FileMissing,
				issue.SeverityError,
				e.RelPath,
				"baselined file missing or unreadable",
			))
			continue
		}

		if actual != e.Digest {
			issues = append(issues, issue.New(
				issue.IntegrityViolation,
				issue.SeverityError,
				e.RelPath,
				fmt.Sprintf("digest mismatch: expected %s, got %s", e.Digest, actual),
			))
		}
	}

	return issues
}

// MalformedIssues converts parser rejects into reportable warnings so a
// half-edited baseline surfaces in the report instead of being ignored.
func MalformedIssues(malformed []baseline.Malformed) []issue.Issue {
	var issues []issue.Issue
	for _, m := range malformed {
		issues = append(issues, issue.New(
			issue.IntegrityViolation,
			issue.SeverityWarning,
			"",
			fmt.Sprintf("malformed baseline line %d: %s", m.Line, m.Reason),
		))
	}
	return issues
}
