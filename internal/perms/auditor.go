// Package perms audits filesystem permission bits against the environment
// policy.
package perms

import (
	"fmt"
	"path/filepath"

	"botguard/internal/fsutil"
	"botguard/internal/issue"
	"botguard/internal/policy"
)

// Audit compares actual mode bits against every policy rule, directories
// first, in table order, without short-circuiting. A missing path is a
// Warning (optional directories are tolerated) while a present path with
// wrong bits is an Error; both count toward the run total. This asymmetry
// with the ownership auditor, which skips missing files silently, is
// deliberate.
func Audit(pol policy.Policy, root string, reader fsutil.PermissionReader) []issue.Issue {
	var issues []issue.Issue

	rules := make([]policy.ModeRule, 0, len(pol.Dirs)+len(pol.Files))
	rules = append(rules, pol.Dirs...)
	rules = append(rules, pol.Files...)

	for _, r := range rules {
		mode, err := reader.Mode(filepath.Join(root, r.Path))
		if err != nil {
			issues = append(issues, issue.New(
				issue.PermissionMismatch,
				issue.SeverityWarning,
				r.Path,
				"policy path does not exist",
			))
			continue
		}

		if actual := mode.Perm(); actual != r.Mode {
			issues = append(issues, issue.New(
				issue.PermissionMismatch,
				issue.SeverityError,
				r.Path,
				fmt.Sprintf("mode mismatch: expected %04o, got %04o", r.Mode, actual),
			))
		}
	}

	return issues
}
