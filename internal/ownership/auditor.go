// Package ownership audits the owning identity of the project root and its
// sensitive files.
package ownership

import (
	"fmt"
	"path/filepath"

	"botguard/internal/config"
	"botguard/internal/fsutil"
	"botguard/internal/issue"
	"botguard/internal/policy"
)

// Audit checks that the project root and every sensitive file are owned by
// the policy identity. Development is exempt: Owner is nil there and the
// auditor returns nothing. Files that do not exist are skipped silently,
// unlike the permission auditor's missing-path warning.
func Audit(pol policy.Policy, cfg config.Config, reader fsutil.PermissionReader) []issue.Issue {
	if pol.Owner == nil {
		return nil
	}

	var issues []issue.Issue

	targets := []string{"."}
	targets = append(targets, cfg.SensitiveFiles()...)

	for _, rel := range targets {
		path := filepath.Join(cfg.Root, rel)
		usr, grp, err := reader.Owner(path)
		if err != nil {
			continue
		}

		if usr != pol.Owner.User || grp != pol.Owner.Group {
			issues = append(issues, issue.New(
				issue.OwnershipMismatch,
				issue.SeverityError,
				rel,
				fmt.Sprintf("owned by %s:%s, expected %s:%s", usr, grp, pol.Owner.User, pol.Owner.Group),
			))
		}
	}

	return issues
}
